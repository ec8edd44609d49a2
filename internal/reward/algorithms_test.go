package reward

import (
	"testing"
	"time"

	"github.com/SlpAus/habitforge-backend/internal/user"
	"github.com/stretchr/testify/assert"
)

func TestAccountAgeDays(t *testing.T) {
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, AccountAgeDays(created, created))
	// 不足整天向下取整
	assert.Equal(t, 0, AccountAgeDays(created, created.Add(23*time.Hour)))
	assert.Equal(t, 1, AccountAgeDays(created, created.Add(24*time.Hour)))
	assert.Equal(t, 40, AccountAgeDays(created, created.Add(40*24*time.Hour)))
	// 时钟回拨不产生负账龄
	assert.Equal(t, 0, AccountAgeDays(created, created.Add(-time.Hour)))
}

func TestTierForAccountAge(t *testing.T) {
	cases := []struct {
		age   int
		label string
	}{
		{0, "Week 1"},
		{7, "Week 1"},
		{8, "Month 1"},
		{37, "Month 1"},
		{38, "3 Months"},
		{40, "3 Months"},
		{127, "3 Months"},
		{128, "6 Months"},
		{307, "6 Months"},
		{672, "1 Year"},
		{673, "1 Year+"},
		{10000, "1 Year+"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.label, TierForAccountAge(tc.age).Label, "账龄 %d 天", tc.age)
	}
}

func TestPointsForEvent(t *testing.T) {
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	// 第一周：奖励50，惩罚-40
	now := created.Add(3 * 24 * time.Hour)
	assert.Equal(t, 50, PointsForEvent(created, true, now))
	assert.Equal(t, -40, PointsForEvent(created, false, now))

	// 40天账龄落入 "3 Months" 档：奖励30，惩罚-20
	now = created.Add(40 * 24 * time.Hour)
	assert.Equal(t, 30, PointsForEvent(created, true, now))
	assert.Equal(t, -20, PointsForEvent(created, false, now))

	// 两年账龄落入无上界档：奖励5，惩罚-1
	now = created.Add(730 * 24 * time.Hour)
	assert.Equal(t, 5, PointsForEvent(created, true, now))
	assert.Equal(t, -1, PointsForEvent(created, false, now))
}

func TestApplyPointsImmutable(t *testing.T) {
	stats := user.UserStats{TotalPoints: 100}
	updated := ApplyPoints(stats, -40)

	assert.Equal(t, 60, updated.TotalPoints)
	assert.Equal(t, 100, stats.TotalPoints, "传入值不被修改")

	// 积分可以为负
	assert.Equal(t, -40, ApplyPoints(user.UserStats{}, -40).TotalPoints)
}

func TestApplyStreakCompleted(t *testing.T) {
	stats := user.UserStats{CurrentStreak: 5, BestStreak: 5}
	updated := ApplyStreak(stats, true)

	assert.Equal(t, 6, updated.CurrentStreak)
	assert.Equal(t, 6, updated.BestStreak, "历史最高水位被推高")
	assert.Equal(t, 5, stats.CurrentStreak, "传入值不被修改")
}

func TestApplyStreakMiss(t *testing.T) {
	stats := user.UserStats{CurrentStreak: 5, BestStreak: 9}
	updated := ApplyStreak(stats, false)

	assert.Equal(t, 0, updated.CurrentStreak)
	assert.Equal(t, 9, updated.BestStreak, "历史最高水位保留")
}

func TestApplyStreakBelowBest(t *testing.T) {
	stats := user.UserStats{CurrentStreak: 2, BestStreak: 9}
	updated := ApplyStreak(stats, true)

	assert.Equal(t, 3, updated.CurrentStreak)
	assert.Equal(t, 9, updated.BestStreak)
}
