package checkin

import (
	"math"
	"sort"

	"github.com/SlpAus/habitforge-backend/internal/habit"
	"github.com/SlpAus/habitforge-backend/pkg/civil"
)

// 本文件是连续性分析与完成率计算的纯算法部分。
// 所有函数只依赖传入的打卡记录，不做任何I/O；
// "今天"由调用方显式传入，便于测试与离线重算。

// completedDaysAsc 提取已完成打卡的日期并升序排序。
// 不去重：唯一索引已保证每天至多一条记录。
func completedDaysAsc(checkins []CheckIn) []civil.Day {
	days := make([]civil.Day, 0, len(checkins))
	for _, ci := range checkins {
		if ci.Completed {
			days = append(days, ci.Day)
		}
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}

// FindRuns 把已完成的打卡日期切分成一段段连续区间，返回每段的长度。
// 相邻日期恰好相差1天时延续当前段，其他任何差值都会结束当前段并
// 从1重新开始。输入中未完成的记录被忽略，顺序无关。
func FindRuns(checkins []CheckIn) []int {
	days := completedDaysAsc(checkins)
	if len(days) == 0 {
		return nil
	}

	var runs []int
	current := 1
	for i := 1; i < len(days); i++ {
		if days[i].DaysSince(days[i-1]) == 1 {
			current++
		} else {
			runs = append(runs, current)
			current = 1
		}
	}
	return append(runs, current)
}

// LongestStreak 返回历史上最长的连续完成天数。没有完成记录时为0。
func LongestStreak(checkins []CheckIn) int {
	longest := 0
	for _, run := range FindRuns(checkins) {
		if run > longest {
			longest = run
		}
	}
	return longest
}

// AverageStreak 返回所有连续区间长度的平均值，四舍五入到1位小数。
// 没有完成记录时为0。
func AverageStreak(checkins []CheckIn) float64 {
	runs := FindRuns(checkins)
	if len(runs) == 0 {
		return 0
	}
	total := 0
	for _, run := range runs {
		total += run
	}
	return round1(float64(total) / float64(len(runs)))
}

// CurrentStreak 返回截至today仍然存活的连续完成天数。
// 锚点规则：最近一次完成必须是今天或昨天，否则连续已经断掉，返回0；
// 从锚点开始向过去逐日回溯，日期每差1天计数+1，出现跳空即停止。
func CurrentStreak(checkins []CheckIn, today civil.Day) int {
	days := completedDaysAsc(checkins)
	if len(days) == 0 {
		return 0
	}

	latest := days[len(days)-1]
	gap := today.DaysSince(latest)
	if gap != 0 && gap != 1 {
		return 0
	}

	streak := 1
	for i := len(days) - 2; i >= 0; i-- {
		if days[i+1].DaysSince(days[i]) != 1 {
			break
		}
		streak++
	}
	return streak
}

// CompletionRate 返回完成率百分比，四舍五入到1位小数。
// 分母是排程评估器给出的 [创建日, today] 内应打卡天数，
// 分子是已完成的打卡条数。应打卡天数为0时返回0，避免除零。
func CompletionRate(checkins []CheckIn, schedule habit.Schedule, createdDay, today civil.Day) float64 {
	totalScheduled := habit.TotalScheduledDays(schedule, createdDay, today)
	if totalScheduled == 0 {
		return 0
	}

	completed := 0
	for _, ci := range checkins {
		if ci.Completed {
			completed++
		}
	}
	return round1(100 * float64(completed) / float64(totalScheduled))
}

// round1 四舍五入到1位小数（0.05进位）。
func round1(v float64) float64 {
	return math.Floor(v*10+0.5) / 10
}
