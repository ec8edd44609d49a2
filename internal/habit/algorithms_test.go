package habit

import (
	"testing"

	"github.com/SlpAus/habitforge-backend/pkg/civil"
	"github.com/stretchr/testify/assert"
)

func TestIsScheduledDayDaily(t *testing.T) {
	schedule := Schedule{Frequency: FrequencyDaily}
	created := civil.MustParseDay("2025-03-01")
	today := civil.MustParseDay("2025-03-10")

	assert.True(t, IsScheduledDay(created, schedule, created, today), "创建当天在排程内")
	assert.True(t, IsScheduledDay(today, schedule, created, today), "今天在排程内")
	assert.True(t, IsScheduledDay(civil.MustParseDay("2025-03-05"), schedule, created, today))
}

func TestIsScheduledDayBounds(t *testing.T) {
	schedule := Schedule{Frequency: FrequencyDaily}
	created := civil.MustParseDay("2025-03-01")
	today := civil.MustParseDay("2025-03-10")

	assert.False(t, IsScheduledDay(created.AddDays(-1), schedule, created, today), "创建日之前不在排程内")
	assert.False(t, IsScheduledDay(today.AddDays(1), schedule, created, today), "未来日期不在排程内")
}

func TestIsScheduledDayWeekly(t *testing.T) {
	// 只在周一(1)和周四(4)打卡
	schedule := Schedule{Frequency: FrequencyWeekly, DaysOfWeek: []int{1, 4}}
	created := civil.MustParseDay("2025-03-01")
	today := civil.MustParseDay("2025-03-31")

	assert.True(t, IsScheduledDay(civil.MustParseDay("2025-03-03"), schedule, created, today), "周一")
	assert.True(t, IsScheduledDay(civil.MustParseDay("2025-03-06"), schedule, created, today), "周四")
	assert.False(t, IsScheduledDay(civil.MustParseDay("2025-03-04"), schedule, created, today), "周二")
	assert.False(t, IsScheduledDay(civil.MustParseDay("2025-03-02"), schedule, created, today), "周日")
}

func TestIsScheduledDayMonthly(t *testing.T) {
	schedule := Schedule{Frequency: FrequencyMonthly, DaysOfMonth: []int{1, 15, 31}}
	created := civil.MustParseDay("2025-01-01")
	today := civil.MustParseDay("2025-12-31")

	assert.True(t, IsScheduledDay(civil.MustParseDay("2025-01-15"), schedule, created, today))
	assert.True(t, IsScheduledDay(civil.MustParseDay("2025-01-31"), schedule, created, today))
	assert.False(t, IsScheduledDay(civil.MustParseDay("2025-01-16"), schedule, created, today))
	// 2月没有31号，2月28日不是打卡日，31号被静默跳过
	assert.False(t, IsScheduledDay(civil.MustParseDay("2025-02-28"), schedule, created, today))
}

func TestTotalScheduledDaysDaily(t *testing.T) {
	schedule := Schedule{Frequency: FrequencyDaily}
	created := civil.MustParseDay("2025-03-01")

	// 闭区间 [3-01, 3-10] 共10天
	assert.Equal(t, 10, TotalScheduledDays(schedule, created, civil.MustParseDay("2025-03-10")))
	// 创建当天
	assert.Equal(t, 1, TotalScheduledDays(schedule, created, created))
	// today早于创建日时没有应打卡日
	assert.Equal(t, 0, TotalScheduledDays(schedule, created, created.AddDays(-1)))
}

func TestTotalScheduledDaysWeekly(t *testing.T) {
	// 每周一打卡，2025年3月的周一是 3,10,17,24,31
	schedule := Schedule{Frequency: FrequencyWeekly, DaysOfWeek: []int{1}}
	created := civil.MustParseDay("2025-03-01")
	today := civil.MustParseDay("2025-03-31")

	assert.Equal(t, 5, TotalScheduledDays(schedule, created, today))
}

func TestTotalScheduledDaysMonthlyShortMonth(t *testing.T) {
	// 每月31号打卡：1月和3月各有一次，2月没有31号被跳过
	schedule := Schedule{Frequency: FrequencyMonthly, DaysOfMonth: []int{31}}
	created := civil.MustParseDay("2025-01-01")
	today := civil.MustParseDay("2025-03-31")

	assert.Equal(t, 2, TotalScheduledDays(schedule, created, today))
}
