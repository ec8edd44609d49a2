package badge

import (
	"net/http"

	"github.com/SlpAus/habitforge-backend/internal/user"
	"github.com/gin-gonic/gin"
)

// GetBadgesHandler 处理 GET /api/user/badges
func GetBadgesHandler(c *gin.Context) {
	userUUID := c.GetString(user.UserIDKey)
	badges, err := ListForUser(userUUID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取徽章列表失败"})
		return
	}
	if badges == nil {
		badges = []Badge{}
	}
	c.JSON(http.StatusOK, badges)
}
