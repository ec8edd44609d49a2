package checkin

import (
	"gorm.io/gorm"

	"github.com/SlpAus/habitforge-backend/pkg/civil"
)

// CheckIn 是一条打卡记录：某个习惯在某个自然日上的一次完成/未完成标记。
// (habit_uuid, day) 上的唯一索引保证每个习惯每天至多一条记录，
// 重复提交在数据库层面被拒绝。
type CheckIn struct {
	gorm.Model
	HabitUUID string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_habit_day"`
	UserUUID  string    `gorm:"type:varchar(36);not null;index"`
	Day       civil.Day `gorm:"type:date;not null;uniqueIndex:idx_habit_day"`
	Completed bool      `gorm:"not null"`

	// CompletionPercentage 是可选的完成度 0-100，仅作展示，不参与连续性分析
	CompletionPercentage *int `gorm:"column:completion_percentage"`

	// Notes 是用户附加的备注
	Notes string
}
