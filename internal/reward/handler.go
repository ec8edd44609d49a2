package reward

import (
	"net/http"
	"time"

	"github.com/SlpAus/habitforge-backend/internal/badge"
	"github.com/SlpAus/habitforge-backend/internal/habit"
	"github.com/SlpAus/habitforge-backend/internal/user"
	"github.com/gin-gonic/gin"
)

// --- API响应结构体 ---

// TierResponse 描述用户当前所处的积分档位。
type TierResponse struct {
	Label         string `json:"label"`
	RewardPoints  int    `json:"rewardPoints"`
	PenaltyPoints int    `json:"penaltyPoints"`
}

// ProfileResponse 是 GET /api/user/profile 的响应体。
type ProfileResponse struct {
	UserID         string        `json:"userId"`
	TotalPoints    int           `json:"totalPoints"`
	CurrentStreak  int           `json:"currentStreak"`
	BestStreak     int           `json:"bestStreak"`
	AccountAgeDays int           `json:"accountAgeDays"`
	Tier           TierResponse  `json:"tier"`
	NextMilestone  int           `json:"nextMilestone"`
	Badges         []badge.Badge `json:"badges"`
}

// RewardEventResponse 是积分流水的单条展示格式。
type RewardEventResponse struct {
	Date   string `json:"date"`
	Kind   string `json:"kind"`
	Points int    `json:"points"`
}

// HabitHistoryResponse 是 GET /api/user/history/:habitId 的响应体：
// 习惯的展示信息加上按时间倒序的积分流水。
type HabitHistoryResponse struct {
	HabitID   string                `json:"habitId"`
	HabitName string                `json:"habitName"`
	HabitIcon string                `json:"habitIcon"`
	Events    []RewardEventResponse `json:"events"`
}

// formatHistory 将积分流水和习惯展示信息组装为响应体。
func formatHistory(habitUUID string, info *habit.HabitInfo, events []RewardEvent) HabitHistoryResponse {
	response := HabitHistoryResponse{
		HabitID: habitUUID,
		Events:  make([]RewardEventResponse, 0, len(events)),
	}
	if info != nil {
		response.HabitName = info.Name
		response.HabitIcon = info.Icon
	}
	for _, event := range events {
		response.Events = append(response.Events, RewardEventResponse{
			Date:   event.Day.String(),
			Kind:   string(event.Kind),
			Points: event.Points,
		})
	}
	return response
}

// habitDisplay 读取习惯的展示信息：优先走habit:info缓存，未命中回退SQLite。
func habitDisplay(habitUUID string) *habit.HabitInfo {
	habit.RLockRepository()
	info, err := habit.GetCachedInfo(habitUUID)
	habit.RUnlockRepository()
	if err == nil && info != nil {
		return info
	}

	h, err := habit.GetByUUID(habitUUID)
	if err != nil || h == nil {
		return nil
	}
	return &habit.HabitInfo{
		Name:     h.Name,
		Type:     h.Type,
		Icon:     h.Icon,
		UserUUID: h.UserUUID,
	}
}

// --- 路由处理函数 ---

// GetProfileHandler 处理 GET /api/user/profile
// 汇总用户的奖励统计、当前积分档位、徽章与下一个里程碑。
func GetProfileHandler(c *gin.Context) {
	userUUID := c.GetString(user.UserIDKey)

	user.RLockRepository()
	stats, err := user.GetCachedStats(userUUID)
	user.RUnlockRepository()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取用户统计失败"})
		return
	}
	if stats == nil {
		stats = &user.UserStats{}
	}

	accountAgeDays := 0
	u, err := user.GetByUUID(userUUID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取用户信息失败"})
		return
	}
	if u != nil {
		accountAgeDays = AccountAgeDays(u.CreatedAt, time.Now())
	}

	badges, err := badge.ListForUser(userUUID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取徽章列表失败"})
		return
	}
	if badges == nil {
		badges = []badge.Badge{}
	}

	tier := TierForAccountAge(accountAgeDays)
	c.JSON(http.StatusOK, ProfileResponse{
		UserID:         userUUID,
		TotalPoints:    stats.TotalPoints,
		CurrentStreak:  stats.CurrentStreak,
		BestStreak:     stats.BestStreak,
		AccountAgeDays: accountAgeDays,
		Tier: TierResponse{
			Label:         tier.Label,
			RewardPoints:  tier.RewardPoints,
			PenaltyPoints: tier.PenaltyPoints,
		},
		NextMilestone: badge.NextMilestone(stats.CurrentStreak),
		Badges:        badges,
	})
}

// GetHistoryHandler 处理 GET /api/user/history/:habitId
// 按时间倒序返回当前用户在指定习惯上的积分流水，附带习惯的展示信息。
func GetHistoryHandler(c *gin.Context) {
	userUUID := c.GetString(user.UserIDKey)
	habitUUID := c.Param("habitId")

	events, err := ListEvents(userUUID, habitUUID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取积分流水失败"})
		return
	}

	c.JSON(http.StatusOK, formatHistory(habitUUID, habitDisplay(habitUUID), events))
}
