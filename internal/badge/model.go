package badge

import (
	"time"

	"gorm.io/gorm"
)

// Badge 定义了用户已获得徽章的持久化模型。
// 每个用户在每个里程碑上至多获得一枚徽章，且徽章一经颁发永不收回。
type Badge struct {
	gorm.Model

	// UserUUID 是徽章所属用户
	UserUUID string `gorm:"index:idx_user_badge,unique;type:varchar(36)" json:"-"`

	// BadgeID 是由里程碑派生的业务ID，例如 "badge-10"
	BadgeID string `gorm:"index:idx_user_badge,unique;type:varchar(32)" json:"id"`

	// MilestoneDays 是对应的连续天数里程碑
	MilestoneDays int `json:"milestoneDays"`

	// Name 是展示名称，例如 "10 Days"
	Name string `json:"name"`

	// Description 是展示描述
	Description string `json:"description"`

	// Icon 是展示图标（emoji）
	Icon string `json:"icon"`

	// DateEarned 是获得徽章的时刻
	DateEarned time.Time `json:"dateEarned"`
}
