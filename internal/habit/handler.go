package habit

import (
	"errors"
	"net/http"
	"time"

	"github.com/SlpAus/habitforge-backend/internal/user"
	"github.com/SlpAus/habitforge-backend/pkg/civil"
	"github.com/gin-gonic/gin"
)

// --- API 请求/响应模型 ---

type CreateHabitRequestBody struct {
	Name             string   `json:"name" binding:"required"`
	Description      string   `json:"description"`
	Type             string   `json:"type" binding:"required,oneof=positive negative"`
	Icon             string   `json:"icon"`
	Schedule         Schedule `json:"schedule" binding:"required"`
	Reminders        []string `json:"reminders"`
	ConfirmationTime string   `json:"confirmationTime"`
}

type UpdateHabitRequestBody struct {
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	Icon        *string   `json:"icon"`
	Schedule    *Schedule `json:"schedule"`
	Reminders   []string  `json:"reminders"`
}

// HabitResponse 是习惯的完整API表示
type HabitResponse struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Description       string   `json:"description"`
	Type              string   `json:"type"`
	Icon              string   `json:"icon"`
	Schedule          Schedule `json:"schedule"`
	Reminders         []string `json:"reminders,omitempty"`
	ConfirmationTime  string   `json:"confirmationTime,omitempty"`
	CreatedDay        string   `json:"createdDay"`
	StreakCount       int      `json:"streakCount"`
	TotalPointsEarned int      `json:"totalPointsEarned"`
	ScheduledToday    bool     `json:"scheduledToday"`
}

func formatHabit(h *Habit, today civil.Day) HabitResponse {
	schedule, _ := h.Schedule()
	reminders, _ := h.Reminders()
	return HabitResponse{
		ID:                h.UUID,
		Name:              h.Name,
		Description:       h.Description,
		Type:              string(h.Type),
		Icon:              h.Icon,
		Schedule:          schedule,
		Reminders:         reminders,
		ConfirmationTime:  h.ConfirmationTime,
		CreatedDay:        h.CreatedDay.String(),
		StreakCount:       h.StreakCount,
		TotalPointsEarned: h.TotalPointsEarned,
		ScheduledToday:    IsScheduledDay(today, schedule, h.CreatedDay, today),
	}
}

// --- 控制器函数 ---

// CreateHabitHandler 处理 POST /api/habits
func CreateHabitHandler(c *gin.Context) {
	var body CreateHabitRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
		return
	}

	userUUID := c.GetString(user.UserIDKey)
	if err := user.ActivateUser(userUUID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "无法激活用户"})
		return
	}

	h, err := CreateHabit(userUUID, NewHabitInput{
		Name:             body.Name,
		Description:      body.Description,
		Type:             HabitType(body.Type),
		Icon:             body.Icon,
		Schedule:         body.Schedule,
		Reminders:        body.Reminders,
		ConfirmationTime: body.ConfirmationTime,
	}, time.Now())
	if err != nil {
		var vErr *ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "创建习惯失败"})
		return
	}

	c.JSON(http.StatusCreated, formatHabit(h, civil.DayOf(time.Now())))
}

// ListHabitsHandler 处理 GET /api/habits
func ListHabitsHandler(c *gin.Context) {
	userUUID := c.GetString(user.UserIDKey)
	habits, err := ListByUser(userUUID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取习惯列表失败"})
		return
	}

	today := civil.DayOf(time.Now())
	responses := make([]HabitResponse, 0, len(habits))
	for i := range habits {
		responses = append(responses, formatHabit(&habits[i], today))
	}
	c.JSON(http.StatusOK, responses)
}

// GetHabitHandler 处理 GET /api/habits/:id
func GetHabitHandler(c *gin.Context) {
	userUUID := c.GetString(user.UserIDKey)
	h, err := GetByUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "数据库查询失败"})
		return
	}
	if h == nil || h.UserUUID != userUUID {
		c.JSON(http.StatusNotFound, gin.H{"error": "找不到指定的习惯"})
		return
	}
	c.JSON(http.StatusOK, formatHabit(h, civil.DayOf(time.Now())))
}

// UpdateHabitHandler 处理 PUT /api/habits/:id
func UpdateHabitHandler(c *gin.Context) {
	var body UpdateHabitRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
		return
	}

	userUUID := c.GetString(user.UserIDKey)
	h, err := UpdateHabit(userUUID, c.Param("id"), UpdateHabitInput{
		Name:        body.Name,
		Description: body.Description,
		Icon:        body.Icon,
		Schedule:    body.Schedule,
		Reminders:   body.Reminders,
	})
	if err != nil {
		var vErr *ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "更新习惯失败"})
		return
	}
	if h == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "找不到指定的习惯"})
		return
	}
	c.JSON(http.StatusOK, formatHabit(h, civil.DayOf(time.Now())))
}

// DeleteHabitHandler 处理 DELETE /api/habits/:id
func DeleteHabitHandler(c *gin.Context) {
	userUUID := c.GetString(user.UserIDKey)
	deleted, err := DeleteHabit(userUUID, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "删除习惯失败"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "找不到指定的习惯"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "习惯已删除"})
}
