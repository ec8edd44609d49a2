package badge

import (
	"fmt"
	"time"
)

// 本文件是徽章引擎：根据当前连续天数和已持有的徽章，
// 计算新跨越的里程碑。纯函数，不做任何I/O。

// Milestones 是固定的升序里程碑表（连续天数）。
var Milestones = []int{10, 15, 30, 75, 150, 300}

// iconForMilestone 返回里程碑对应的固定图标。
func iconForMilestone(milestone int) string {
	switch milestone {
	case 10:
		return "🥉"
	case 15:
		return "🥈"
	case 30:
		return "🥇"
	case 75:
		return "💎"
	case 150:
		return "👑"
	case 300:
		return "🏆"
	default:
		return "⭐"
	}
}

// BadgeIDForMilestone 返回里程碑派生的业务ID。
func BadgeIDForMilestone(milestone int) string {
	return fmt.Sprintf("badge-%d", milestone)
}

// NewBadges 遍历里程碑表，对每个 currentStreak >= m 且尚未持有的里程碑
// 生成一枚新徽章。幂等：已持有的里程碑不会重复颁发，
// 连续天数未变化时第二次调用返回空。
// 一次调用可能产出多枚徽章——算法不假设连续天数只会逐一递增。
func NewBadges(currentStreak int, ownedBadgeIDs map[string]bool, now time.Time) []Badge {
	var earned []Badge
	for _, milestone := range Milestones {
		if currentStreak < milestone {
			continue
		}
		id := BadgeIDForMilestone(milestone)
		if ownedBadgeIDs[id] {
			continue
		}
		earned = append(earned, Badge{
			BadgeID:       id,
			MilestoneDays: milestone,
			Name:          fmt.Sprintf("%d Days", milestone),
			Description:   fmt.Sprintf("连续坚持%d天！", milestone),
			Icon:          iconForMilestone(milestone),
			DateEarned:    now,
		})
	}
	return earned
}

// NextMilestone 返回严格大于当前连续天数的最小里程碑。
// 连续天数已超过全部里程碑时返回最大的里程碑（仅用于进度条展示）。
func NextMilestone(currentStreak int) int {
	for _, milestone := range Milestones {
		if currentStreak < milestone {
			return milestone
		}
	}
	return Milestones[len(Milestones)-1]
}
