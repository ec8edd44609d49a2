package habit

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/SlpAus/habitforge-backend/pkg/civil"
	"gorm.io/gorm"
)

// HabitType 定义了习惯的类型枚举
type HabitType string

const (
	// TypePositive 表示要养成的习惯（build），通过每日打卡完成
	TypePositive HabitType = "positive"
	// TypeNegative 表示要戒除的习惯（break），通过每日确认"是否忍住"完成
	TypeNegative HabitType = "negative"
)

// Frequency 定义了日程规则的频率枚举
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

// Schedule 定义了习惯的重复日程规则。
// 三种频率中，weekly使用DaysOfWeek，monthly使用DaysOfMonth，daily两者都忽略。
type Schedule struct {
	Frequency Frequency `json:"frequency"`

	// DaysOfWeek 是weekly频率下的打卡日集合，0=周日 .. 6=周六
	DaysOfWeek []int `json:"daysOfWeek,omitempty"`

	// DaysOfMonth 是monthly频率下的打卡日集合，1-31。
	// 短月中不存在的日号会被静默跳过，不做顺延。
	DaysOfMonth []int `json:"daysOfMonth,omitempty"`
}

// Habit 定义了习惯在SQLite数据库中的持久化模型
type Habit struct {
	// UUID 是习惯的业务主键
	UUID string `gorm:"primarykey;type:varchar(36)" json:"id"`

	// UserUUID 是所属用户的UUID，来自客户端Cookie
	UserUUID string `gorm:"index;type:varchar(36)" json:"userId"`

	// Name 是习惯的名称，例如 "晨间冥想"
	Name string `gorm:"not null" json:"name"`

	// Description 是习惯的描述
	Description string `json:"description"`

	// Type 区分build习惯和break习惯
	Type HabitType `gorm:"not null" json:"type"`

	// Icon 是前端展示用的图标（emoji）
	Icon string `json:"icon"`

	// ScheduleJSON 是Schedule的JSON序列化，单列存储随行加载
	ScheduleJSON string `gorm:"column:schedule;not null" json:"-"`

	// RemindersJSON 是提醒时刻列表 ["HH:MM", ...] 的JSON序列化，
	// 仅positive习惯使用
	RemindersJSON string `gorm:"column:reminders" json:"-"`

	// ConfirmationTime 是break习惯的每日确认时刻 "HH:MM"，
	// 仅negative习惯使用
	ConfirmationTime string `json:"confirmationTime,omitempty"`

	// CreatedDay 是习惯创建的日历日，日程计算的下边界
	CreatedDay civil.Day `gorm:"type:varchar(10);not null" json:"createdDay"`

	// StreakCount 是当前连续天数的缓存值，每次打卡写入后重算
	StreakCount int `json:"streakCount"`

	// TotalPointsEarned 是该习惯累计获得的积分，只增不清零，可为负
	TotalPointsEarned int `json:"totalPointsEarned"`

	// 部分gorm.Model，由GORM自动管理
	CreatedAt time.Time      `json:"-"`
	UpdatedAt time.Time      `json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Schedule 反序列化并返回该习惯的日程规则。
func (h *Habit) Schedule() (Schedule, error) {
	var s Schedule
	if err := json.Unmarshal([]byte(h.ScheduleJSON), &s); err != nil {
		return Schedule{}, fmt.Errorf("无法解析习惯 %s 的日程规则: %w", h.UUID, err)
	}
	return s, nil
}

// SetSchedule 序列化并写入该习惯的日程规则。
func (h *Habit) SetSchedule(s Schedule) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("无法序列化日程规则: %w", err)
	}
	h.ScheduleJSON = string(data)
	return nil
}

// Reminders 反序列化并返回提醒时刻列表，空列存储时返回nil。
func (h *Habit) Reminders() ([]string, error) {
	if h.RemindersJSON == "" {
		return nil, nil
	}
	var reminders []string
	if err := json.Unmarshal([]byte(h.RemindersJSON), &reminders); err != nil {
		return nil, fmt.Errorf("无法解析习惯 %s 的提醒时刻: %w", h.UUID, err)
	}
	return reminders, nil
}

// SetReminders 序列化并写入提醒时刻列表。
func (h *Habit) SetReminders(reminders []string) error {
	if len(reminders) == 0 {
		h.RemindersJSON = ""
		return nil
	}
	data, err := json.Marshal(reminders)
	if err != nil {
		return fmt.Errorf("无法序列化提醒时刻: %w", err)
	}
	h.RemindersJSON = string(data)
	return nil
}
