package checkin

import (
	"testing"

	"github.com/SlpAus/habitforge-backend/internal/habit"
	"github.com/SlpAus/habitforge-backend/pkg/civil"
	"github.com/stretchr/testify/assert"
)

// mkCheckins 构造一组已完成的打卡记录
func mkCheckins(days ...string) []CheckIn {
	checkins := make([]CheckIn, 0, len(days))
	for _, d := range days {
		checkins = append(checkins, CheckIn{Day: civil.MustParseDay(d), Completed: true})
	}
	return checkins
}

func TestFindRuns(t *testing.T) {
	// 两段连续区间：3天 + 2天
	runs := FindRuns(mkCheckins("2025-03-01", "2025-03-02", "2025-03-03", "2025-03-05", "2025-03-06"))
	assert.Equal(t, []int{3, 2}, runs)
}

func TestFindRunsSingleDays(t *testing.T) {
	runs := FindRuns(mkCheckins("2025-03-01", "2025-03-03", "2025-03-05"))
	assert.Equal(t, []int{1, 1, 1}, runs)
}

func TestFindRunsEmpty(t *testing.T) {
	assert.Nil(t, FindRuns(nil))
	assert.Nil(t, FindRuns([]CheckIn{{Day: civil.MustParseDay("2025-03-01"), Completed: false}}))
}

func TestFindRunsOrderInvariant(t *testing.T) {
	// 输入顺序打乱，结果不变
	shuffled := mkCheckins("2025-03-05", "2025-03-01", "2025-03-03", "2025-03-02", "2025-03-06")
	assert.Equal(t, []int{3, 2}, FindRuns(shuffled))
}

func TestFindRunsIgnoresIncomplete(t *testing.T) {
	checkins := mkCheckins("2025-03-01", "2025-03-02")
	// 3月3日有记录但未完成，不会延续区间
	checkins = append(checkins, CheckIn{Day: civil.MustParseDay("2025-03-03"), Completed: false})
	checkins = append(checkins, mkCheckins("2025-03-04")...)
	assert.Equal(t, []int{2, 1}, FindRuns(checkins))
}

func TestRunsWithGapThenSingle(t *testing.T) {
	// 1月1-5日连续完成，跳空后1月10日再完成一次
	checkins := mkCheckins("2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04",
		"2024-01-05", "2024-01-10")

	assert.Equal(t, []int{5, 1}, FindRuns(checkins))
	assert.Equal(t, 5, LongestStreak(checkins))
	assert.InDelta(t, 3.0, AverageStreak(checkins), 1e-9)
}

func TestCurrentStreakSingleToday(t *testing.T) {
	// 只有今天一条完成记录：锚定今天，向前无可延续 -> 1
	today := civil.MustParseDay("2025-03-06")
	assert.Equal(t, 1, CurrentStreak(mkCheckins("2025-03-06"), today))
}

func TestLongestStreak(t *testing.T) {
	checkins := mkCheckins("2025-03-01", "2025-03-02", "2025-03-03", "2025-03-05", "2025-03-06")
	assert.Equal(t, 3, LongestStreak(checkins))
	assert.Equal(t, 0, LongestStreak(nil))
}

func TestAverageStreak(t *testing.T) {
	// 区间长度 3 和 2，平均 2.5
	checkins := mkCheckins("2025-03-01", "2025-03-02", "2025-03-03", "2025-03-05", "2025-03-06")
	assert.InDelta(t, 2.5, AverageStreak(checkins), 1e-9)
	assert.Zero(t, AverageStreak(nil))
}

func TestAverageStreakRounding(t *testing.T) {
	// 区间长度 1, 1, 2，平均 4/3 = 1.333... -> 1.3
	checkins := mkCheckins("2025-03-01", "2025-03-03", "2025-03-05", "2025-03-06")
	assert.InDelta(t, 1.3, AverageStreak(checkins), 1e-9)

	// 区间长度 1 和 2，平均 1.5 -> 0.05进位保持1.5
	checkins = mkCheckins("2025-03-01", "2025-03-03", "2025-03-04")
	assert.InDelta(t, 1.5, AverageStreak(checkins), 1e-9)
}

func TestCurrentStreakAnchoredToday(t *testing.T) {
	today := civil.MustParseDay("2025-03-06")
	checkins := mkCheckins("2025-03-04", "2025-03-05", "2025-03-06")
	assert.Equal(t, 3, CurrentStreak(checkins, today))
}

func TestCurrentStreakAnchoredYesterday(t *testing.T) {
	// 最近一次完成在昨天，连续尚未断掉
	today := civil.MustParseDay("2025-03-06")
	checkins := mkCheckins("2025-03-03", "2025-03-04", "2025-03-05")
	assert.Equal(t, 3, CurrentStreak(checkins, today))
}

func TestCurrentStreakBroken(t *testing.T) {
	// 最近一次完成在前天，连续已断
	today := civil.MustParseDay("2025-03-06")
	checkins := mkCheckins("2025-03-02", "2025-03-03", "2025-03-04")
	assert.Equal(t, 0, CurrentStreak(checkins, today))
}

func TestCurrentStreakStopsAtGap(t *testing.T) {
	today := civil.MustParseDay("2025-03-06")
	// 3月1-2日的旧区间不计入当前连续
	checkins := mkCheckins("2025-03-01", "2025-03-02", "2025-03-05", "2025-03-06")
	assert.Equal(t, 2, CurrentStreak(checkins, today))
}

func TestCurrentStreakEmpty(t *testing.T) {
	assert.Equal(t, 0, CurrentStreak(nil, civil.MustParseDay("2025-03-06")))
}

func TestCompletionRate(t *testing.T) {
	schedule := habit.Schedule{Frequency: habit.FrequencyDaily}
	created := civil.MustParseDay("2025-03-01")
	today := civil.MustParseDay("2025-03-10")

	// 10个应打卡日，完成7次 -> 70.0
	checkins := mkCheckins("2025-03-01", "2025-03-02", "2025-03-03", "2025-03-04",
		"2025-03-05", "2025-03-06", "2025-03-07")
	assert.InDelta(t, 70.0, CompletionRate(checkins, schedule, created, today), 1e-9)
}

func TestCompletionRateRounding(t *testing.T) {
	schedule := habit.Schedule{Frequency: habit.FrequencyDaily}
	created := civil.MustParseDay("2025-03-01")
	today := civil.MustParseDay("2025-03-03")

	// 3个应打卡日完成1次：33.333... -> 33.3
	assert.InDelta(t, 33.3, CompletionRate(mkCheckins("2025-03-01"), schedule, created, today), 1e-9)
	// 完成2次：66.666... -> 66.7
	assert.InDelta(t, 66.7, CompletionRate(mkCheckins("2025-03-01", "2025-03-02"), schedule, created, today), 1e-9)
}

func TestCompletionRateWeeklyFull(t *testing.T) {
	// 2024-01-01是周一；周一/三/五排程，窗口 [1-01, 1-08] 内
	// 应打卡日为 1,3,5,8 共4天，全部完成 -> 100.0
	schedule := habit.Schedule{Frequency: habit.FrequencyWeekly, DaysOfWeek: []int{1, 3, 5}}
	created := civil.MustParseDay("2024-01-01")
	today := civil.MustParseDay("2024-01-08")

	assert.Equal(t, 4, habit.TotalScheduledDays(schedule, created, today))
	checkins := mkCheckins("2024-01-01", "2024-01-03", "2024-01-05", "2024-01-08")
	assert.InDelta(t, 100.0, CompletionRate(checkins, schedule, created, today), 1e-9)
}

func TestCompletionRateMonotonic(t *testing.T) {
	schedule := habit.Schedule{Frequency: habit.FrequencyDaily}
	created := civil.MustParseDay("2025-03-01")
	today := civil.MustParseDay("2025-03-05")

	days := []string{"2025-03-01", "2025-03-02", "2025-03-03", "2025-03-04", "2025-03-05"}
	prev := -1.0
	for i := 0; i <= len(days); i++ {
		rate := CompletionRate(mkCheckins(days[:i]...), schedule, created, today)
		assert.GreaterOrEqual(t, rate, prev, "完成率随完成次数单调不减")
		prev = rate
	}
	// 一次都没完成时恰好为0
	assert.Zero(t, CompletionRate(nil, schedule, created, today))
}

func TestCompletionRateZeroScheduled(t *testing.T) {
	// 每周一打卡，但观测窗口内还没有出现过周一
	schedule := habit.Schedule{Frequency: habit.FrequencyWeekly, DaysOfWeek: []int{1}}
	created := civil.MustParseDay("2025-03-01") // 周六
	today := civil.MustParseDay("2025-03-02")   // 周日

	assert.Zero(t, CompletionRate(nil, schedule, created, today))
}
