package reward

import (
	"fmt"
	"time"

	"github.com/SlpAus/habitforge-backend/internal/badge"
	"github.com/SlpAus/habitforge-backend/internal/habit"
	"github.com/SlpAus/habitforge-backend/internal/platform/database"
	"github.com/SlpAus/habitforge-backend/internal/user"
	"github.com/SlpAus/habitforge-backend/pkg/civil"
)

// SettlementResult 汇总一次事件结算的全部产出，供上层组装响应。
type SettlementResult struct {
	Points        int
	TotalPoints   int
	CurrentStreak int
	BestStreak    int
	NewBadges     []badge.Badge
}

// ApplyHabitEvent 结算一次build类习惯的打卡事件：
// 按账龄计算积分增量、追加流水、更新用户积分与连续天数、评估勋章，
// 并把积分增量同步累加到习惯自身的TotalPointsEarned。
// 整个读-改-写序列在user模块的写锁下执行，防止并发打卡重复计分。
func ApplyHabitEvent(userUUID, habitUUID string, day civil.Day, completed bool, now time.Time) (*SettlementResult, error) {
	user.LockRepository()
	defer user.UnlockRepository()

	stats, u, err := loadStats(userUUID)
	if err != nil {
		return nil, err
	}

	points := PointsForEvent(u.CreatedAt, completed, now)
	if err := appendEvent(userUUID, habitUUID, day, completed, points); err != nil {
		return nil, err
	}

	newStats := ApplyStreak(ApplyPoints(*stats, points), completed)
	if err := user.CacheStats(userUUID, newStats); err != nil {
		return nil, err
	}
	if err := habit.AddPoints(habitUUID, points); err != nil {
		return nil, err
	}

	newBadges, err := badge.EvaluateAndAward(userUUID, newStats.CurrentStreak, now)
	if err != nil {
		return nil, err
	}

	return &SettlementResult{
		Points:        points,
		TotalPoints:   newStats.TotalPoints,
		CurrentStreak: newStats.CurrentStreak,
		BestStreak:    newStats.BestStreak,
		NewBadges:     newBadges,
	}, nil
}

// ApplyBreakHabitEvent 结算一次break类习惯的确认事件（忍住/破戒）。
// 积分计算与build类一致，但不更新连续天数、也不评估勋章：
// 连续天数与勋章只由build类打卡驱动。
func ApplyBreakHabitEvent(userUUID, habitUUID string, day civil.Day, avoided bool, now time.Time) (*SettlementResult, error) {
	user.LockRepository()
	defer user.UnlockRepository()

	stats, u, err := loadStats(userUUID)
	if err != nil {
		return nil, err
	}

	points := PointsForEvent(u.CreatedAt, avoided, now)
	if err := appendEvent(userUUID, habitUUID, day, avoided, points); err != nil {
		return nil, err
	}

	newStats := ApplyPoints(*stats, points)
	if err := user.CacheStats(userUUID, newStats); err != nil {
		return nil, err
	}
	if err := habit.AddPoints(habitUUID, points); err != nil {
		return nil, err
	}

	return &SettlementResult{
		Points:        points,
		TotalPoints:   newStats.TotalPoints,
		CurrentStreak: newStats.CurrentStreak,
		BestStreak:    newStats.BestStreak,
	}, nil
}

// ListEvents 按时间倒序返回某个用户在某个习惯上的积分流水。
func ListEvents(userUUID, habitUUID string) ([]RewardEvent, error) {
	var events []RewardEvent
	err := database.DB.
		Where("user_uuid = ? AND habit_uuid = ?", userUUID, habitUUID).
		Order("day DESC, id DESC").
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("无法查询积分流水: %w", err)
	}
	return events, nil
}

// loadStats 读取结算所需的用户实时统计与账号记录。
// 缓存未命中时回退到数据库快照，保证Redis重建期间结算仍然可用。
func loadStats(userUUID string) (*user.UserStats, *user.User, error) {
	u, err := user.GetByUUID(userUUID)
	if err != nil {
		return nil, nil, err
	}
	if u == nil {
		return nil, nil, fmt.Errorf("用户 %s 不存在", userUUID)
	}

	stats, err := user.GetCachedStats(userUUID)
	if err != nil {
		return nil, nil, err
	}
	if stats == nil {
		stats = &user.UserStats{
			TotalPoints:   u.TotalPoints,
			CurrentStreak: u.CurrentStreak,
			BestStreak:    u.BestStreak,
		}
	}
	return stats, u, nil
}

func appendEvent(userUUID, habitUUID string, day civil.Day, completed bool, points int) error {
	kind := KindMiss
	if completed {
		kind = KindCompletion
	}
	event := RewardEvent{
		UserUUID:  userUUID,
		HabitUUID: habitUUID,
		Day:       day,
		Kind:      kind,
		Points:    points,
	}
	if err := database.DB.Create(&event).Error; err != nil {
		return fmt.Errorf("无法写入积分流水: %w", err)
	}
	return nil
}
