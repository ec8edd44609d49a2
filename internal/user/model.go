package user

import (
	"time"

	"gorm.io/gorm"
)

// User 定义了用户在SQLite数据库中的持久化模型。
// CreatedAt锚定积分档位（账龄越小，单次奖惩越大）。
type User struct {
	// UUID 是用户的主键，来自客户端Cookie。
	UUID string `gorm:"primarykey;type:varchar(36)"`

	// TotalPoints 是用户在所有习惯上累计的积分总和，可以为负。
	TotalPoints int

	// CurrentStreak 是跨习惯的连续完成天数，由奖励模块维护。
	CurrentStreak int

	// BestStreak 是CurrentStreak的历史最高水位，只增不减。
	BestStreak int

	// 部分gorm.Model，由GORM自动管理
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
