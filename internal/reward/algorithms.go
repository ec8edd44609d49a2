package reward

import (
	"fmt"
	"time"

	"github.com/SlpAus/habitforge-backend/internal/user"
)

// 本文件是奖励账本的纯计算部分：账龄→档位→积分增量，
// 以及不可变的用户连续天数更新。不做任何I/O，"现在"由调用方显式传入。

// PointsTier 定义了积分档位表中的一行。
// Boundary是以账龄天数表示的累计上界；Unbounded的档位匹配任意更大的账龄。
type PointsTier struct {
	Label     string
	Boundary  int
	Unbounded bool

	// RewardPoints 是完成事件（build打卡 / break忍住）的积分
	RewardPoints int
	// PenaltyPoints 是失败事件（打卡未完成 / break破戒）的积分，非正数
	PenaltyPoints int
}

// PointsTiers 是固定的积分档位表。
// 边界是累计天数（7, 7+30, 7+30+90, ...），严格递增，最后一档无上界。
// 奖励与惩罚的幅度都随账龄递减：老账号的单次得失更小，
// 既抑制刷分，也让长期习惯中的偶尔失误不至于过于伤人。
var PointsTiers = []PointsTier{
	{Label: "Week 1", Boundary: 7, RewardPoints: 50, PenaltyPoints: -40},
	{Label: "Month 1", Boundary: 37, RewardPoints: 40, PenaltyPoints: -30},
	{Label: "3 Months", Boundary: 127, RewardPoints: 30, PenaltyPoints: -20},
	{Label: "6 Months", Boundary: 307, RewardPoints: 20, PenaltyPoints: -10},
	{Label: "1 Year", Boundary: 672, RewardPoints: 10, PenaltyPoints: -5},
	{Label: "1 Year+", Unbounded: true, RewardPoints: 5, PenaltyPoints: -1},
}

func init() {
	// 档位表是包内常量数据，启动时校验其结构不变量：
	// 边界严格递增，且最后一档必须无上界，保证任何账龄都有档位可匹配。
	prev := 0
	for i, tier := range PointsTiers {
		last := i == len(PointsTiers)-1
		if tier.Unbounded != last {
			panic("积分档位表配置错误: 只有最后一档可以无上界")
		}
		if !tier.Unbounded && tier.Boundary <= prev {
			panic("积分档位表配置错误: 边界必须严格递增")
		}
		prev = tier.Boundary
	}
}

// AccountAgeDays 计算账龄整天数: floor((now - createdAt) / 24h)。
func AccountAgeDays(createdAt, now time.Time) int {
	age := now.Sub(createdAt)
	if age < 0 {
		return 0
	}
	return int(age / (24 * time.Hour))
}

// TierForAccountAge 返回账龄所落入的档位：
// 第一个累计边界 >= accountAgeDays 的档位；最后一档无上界，必然兜底。
func TierForAccountAge(accountAgeDays int) PointsTier {
	for _, tier := range PointsTiers {
		if tier.Unbounded || accountAgeDays <= tier.Boundary {
			return tier
		}
	}
	// init()已保证最后一档无上界，这里不可达
	panic(fmt.Sprintf("积分档位表没有匹配账龄 %d 的档位", accountAgeDays))
}

// PointsForEvent 计算一次事件的积分增量。
// completed=true表示完成（build打卡完成 / break忍住），返回该档位的奖励分；
// 否则返回该档位的惩罚分（非正数）。
func PointsForEvent(accountCreatedAt time.Time, completed bool, now time.Time) int {
	tier := TierForAccountAge(AccountAgeDays(accountCreatedAt, now))
	if completed {
		return tier.RewardPoints
	}
	return tier.PenaltyPoints
}

// ApplyPoints 返回积分累加后的新统计值，不修改传入值。
func ApplyPoints(stats user.UserStats, delta int) user.UserStats {
	stats.TotalPoints += delta
	return stats
}

// ApplyStreak 返回连续天数更新后的新统计值，不修改传入值：
// 完成时+1并推高历史最高水位，失败时清零（最高水位保留）。
func ApplyStreak(stats user.UserStats, completed bool) user.UserStats {
	if completed {
		stats.CurrentStreak++
		if stats.CurrentStreak > stats.BestStreak {
			stats.BestStreak = stats.CurrentStreak
		}
	} else {
		stats.CurrentStreak = 0
	}
	return stats
}
