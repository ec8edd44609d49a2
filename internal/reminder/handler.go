package reminder

import (
	"encoding/json"
	"net/http"

	"github.com/SlpAus/habitforge-backend/internal/platform/database"
	"github.com/SlpAus/habitforge-backend/internal/user"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// GetPendingHandler 处理 GET /api/reminders/pending
// 一次性取走当前用户的全部待取提醒（取后即清）。
func GetPendingHandler(c *gin.Context) {
	userUUID := c.GetString(user.UserIDKey)
	key := PendingListKey(userUUID)

	// LPOP整个队列，保证"取后即清"在单命令内完成
	payloads, err := database.RDB.LPopCount(database.Ctx, key, 100).Result()
	if err != nil && err != redis.Nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取提醒失败"})
		return
	}

	notifications := make([]Notification, 0, len(payloads))
	for _, payload := range payloads {
		var n Notification
		if err := json.Unmarshal([]byte(payload), &n); err != nil {
			continue
		}
		notifications = append(notifications, n)
	}
	c.JSON(http.StatusOK, notifications)
}
