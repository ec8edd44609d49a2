package reward

import (
	"gorm.io/gorm"

	"github.com/SlpAus/habitforge-backend/pkg/civil"
)

// EventKind 区分奖励账本中的事件方向。
type EventKind string

const (
	KindCompletion EventKind = "completion" // 完成：build打卡完成 / break忍住
	KindMiss       EventKind = "miss"       // 失败：build未完成 / break破戒
)

// RewardEvent 是只追加的积分流水。
// 每条记录一次事件结算的积分增量，用于历史查询与审计；
// 用户的积分总额在结算时同步更新，不从流水重算。
type RewardEvent struct {
	gorm.Model
	UserUUID  string    `gorm:"type:varchar(36);not null;index"`
	HabitUUID string    `gorm:"type:varchar(36);not null;index"`
	Day       civil.Day `gorm:"type:date;not null"`
	Kind      EventKind `gorm:"type:varchar(16);not null"`
	Points    int       `gorm:"not null"`
}
