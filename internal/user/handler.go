package user

import (
	"encoding/json"
	"net/http"

	"github.com/SlpAus/habitforge-backend/internal/platform/database"
	"github.com/gin-gonic/gin"
)

// LeaderboardEntryResponse 是积分榜单条记录的API表示
type LeaderboardEntryResponse struct {
	UserID      string `json:"userId"`
	TotalPoints int    `json:"totalPoints"`
	BestStreak  int    `json:"bestStreak"`
	Rank        int    `json:"rank"`
	IsSelf      bool   `json:"isSelf"`
}

const leaderboardSize = 20

// GetLeaderboardHandler 处理 GET /api/user/leaderboard。
// 数据完全来自Redis的积分榜Sorted Set和统计Hash。
func GetLeaderboardHandler(c *gin.Context) {
	if !database.IsRedisHealthy() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "服务暂时不可用，请稍后重试"})
		return
	}

	selfID := c.GetString(UserIDKey)

	RLockRepository()
	defer RUnlockRepository()

	// 1. 从Sorted Set获取积分最高的前N名
	userIDs, err := database.RDB.ZRevRange(database.Ctx, RankingKey, 0, leaderboardSize-1).Result()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取积分榜失败"})
		return
	}
	if len(userIDs) == 0 {
		c.JSON(http.StatusOK, []LeaderboardEntryResponse{})
		return
	}

	// 2. 批量获取这些用户的统计数据
	statsJSONs, err := database.RDB.HMGet(database.Ctx, StatsKey, userIDs...).Result()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取积分榜失败"})
		return
	}

	// 3. 组合响应
	responses := make([]LeaderboardEntryResponse, 0, len(userIDs))
	for i, id := range userIDs {
		var stats UserStats
		if statsJSONs[i] != nil {
			_ = json.Unmarshal([]byte(statsJSONs[i].(string)), &stats)
		}
		responses = append(responses, LeaderboardEntryResponse{
			UserID:      id,
			TotalPoints: stats.TotalPoints,
			BestStreak:  stats.BestStreak,
			Rank:        i + 1,
			IsSelf:      id == selfID,
		})
	}
	c.JSON(http.StatusOK, responses)
}
