package checkin

import (
	"errors"
	"net/http"
	"time"

	"github.com/SlpAus/habitforge-backend/internal/user"
	"github.com/SlpAus/habitforge-backend/pkg/civil"
	"github.com/gin-gonic/gin"
)

// --- API请求/响应结构体 ---

// RecordCheckInRequestBody 是打卡请求的请求体
type RecordCheckInRequestBody struct {
	Date                 string `json:"date" binding:"required"`
	Completed            *bool  `json:"completed" binding:"required"`
	CompletionPercentage *int   `json:"completionPercentage"`
	Notes                string `json:"notes"`
}

// ConfirmDayRequestBody 是break类习惯每日确认的请求体
type ConfirmDayRequestBody struct {
	Date    string `json:"date" binding:"required"`
	Avoided *bool  `json:"avoided" binding:"required"`
}

// CheckInResponse 是单条打卡记录的展示格式
type CheckInResponse struct {
	HabitID              string `json:"habitId"`
	Date                 string `json:"date"`
	Completed            bool   `json:"completed"`
	CompletionPercentage *int   `json:"completionPercentage,omitempty"`
	Notes                string `json:"notes,omitempty"`
}

// SettlementResponse 是打卡/确认后的结算结果
type SettlementResponse struct {
	CheckIn       CheckInResponse `json:"checkin"`
	Points        int             `json:"points"`
	TotalPoints   int             `json:"totalPoints"`
	CurrentStreak int             `json:"currentStreak"`
	NewBadges     []string        `json:"newBadges"`
}

// AnalyticsResponse 是 GET /api/habits/:id/analytics 的响应体
type AnalyticsResponse struct {
	CurrentStreak  int     `json:"currentStreak"`
	LongestStreak  int     `json:"longestStreak"`
	AverageStreak  float64 `json:"averageStreak"`
	CompletionRate float64 `json:"completionRate"`
	TotalScheduled int     `json:"totalScheduled"`
	TotalCheckIns  int     `json:"totalCheckIns"`
	TotalCompleted int     `json:"totalCompleted"`
	NextMilestone  int     `json:"nextMilestone"`
}

func formatCheckIn(ci CheckIn) CheckInResponse {
	return CheckInResponse{
		HabitID:              ci.HabitUUID,
		Date:                 ci.Day.String(),
		Completed:            ci.Completed,
		CompletionPercentage: ci.CompletionPercentage,
		Notes:                ci.Notes,
	}
}

func formatSettlement(s *Settlement) SettlementResponse {
	badges := make([]string, 0)
	if s.Reward != nil {
		for _, b := range s.Reward.NewBadges {
			badges = append(badges, b.BadgeID)
		}
	}
	resp := SettlementResponse{
		CheckIn:       formatCheckIn(s.CheckIn),
		Points:        s.Points,
		CurrentStreak: s.CurrentStreak,
		NewBadges:     badges,
	}
	if s.Reward != nil {
		resp.TotalPoints = s.Reward.TotalPoints
	}
	return resp
}

// writeServiceError 把服务层错误映射为HTTP状态码。
func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrHabitNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "找不到指定的习惯"})
	case errors.Is(err, ErrDuplicateCheckIn):
		c.JSON(http.StatusConflict, gin.H{"error": "该日期已有打卡记录"})
	case errors.Is(err, ErrInvalidDay):
		c.JSON(http.StatusBadRequest, gin.H{"error": "日期超出可打卡范围"})
	case errors.Is(err, ErrWrongHabitType):
		c.JSON(http.StatusBadRequest, gin.H{"error": "操作与习惯类型不匹配"})
	case errors.Is(err, ErrInvalidPercentage):
		c.JSON(http.StatusBadRequest, gin.H{"error": "完成度必须在0-100之间"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "服务器内部错误"})
	}
}

// --- 路由处理函数 ---

// RecordCheckInHandler 处理 POST /api/habits/:id/checkins
func RecordCheckInHandler(c *gin.Context) {
	var body RecordCheckInRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
		return
	}
	day, err := civil.ParseDay(body.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "日期格式错误，应为YYYY-MM-DD"})
		return
	}

	userUUID := c.GetString(user.UserIDKey)
	settlement, err := RecordCheckIn(userUUID, c.Param("id"), CheckInInput{
		Day:                  day,
		Completed:            *body.Completed,
		CompletionPercentage: body.CompletionPercentage,
		Notes:                body.Notes,
	}, time.Now())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, formatSettlement(settlement))
}

// ConfirmDayHandler 处理 POST /api/habits/:id/confirmation
func ConfirmDayHandler(c *gin.Context) {
	var body ConfirmDayRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
		return
	}
	day, err := civil.ParseDay(body.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "日期格式错误，应为YYYY-MM-DD"})
		return
	}

	userUUID := c.GetString(user.UserIDKey)
	settlement, err := ConfirmBreakHabitDay(userUUID, c.Param("id"), day, *body.Avoided, time.Now())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, formatSettlement(settlement))
}

// ListCheckInsHandler 处理 GET /api/habits/:id/checkins
// 可选查询参数 start / end（YYYY-MM-DD）限定日期闭区间。
func ListCheckInsHandler(c *gin.Context) {
	var start, end civil.Day
	if s := c.Query("start"); s != "" {
		var err error
		if start, err = civil.ParseDay(s); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "start日期格式错误"})
			return
		}
	}
	if s := c.Query("end"); s != "" {
		var err error
		if end, err = civil.ParseDay(s); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "end日期格式错误"})
			return
		}
	}

	userUUID := c.GetString(user.UserIDKey)
	checkins, err := ListForHabit(userUUID, c.Param("id"), start, end)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	responses := make([]CheckInResponse, 0, len(checkins))
	for _, ci := range checkins {
		responses = append(responses, formatCheckIn(ci))
	}
	c.JSON(http.StatusOK, responses)
}

// GetAnalyticsHandler 处理 GET /api/habits/:id/analytics
func GetAnalyticsHandler(c *gin.Context) {
	userUUID := c.GetString(user.UserIDKey)
	analytics, err := AnalyzeHabit(userUUID, c.Param("id"), civil.DayOf(time.Now()))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, AnalyticsResponse{
		CurrentStreak:  analytics.CurrentStreak,
		LongestStreak:  analytics.LongestStreak,
		AverageStreak:  analytics.AverageStreak,
		CompletionRate: analytics.CompletionRate,
		TotalScheduled: analytics.TotalScheduled,
		TotalCheckIns:  analytics.TotalCheckIns,
		TotalCompleted: analytics.TotalCompleted,
		NextMilestone:  analytics.NextMilestone,
	})
}
