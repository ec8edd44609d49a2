package habit

import "github.com/SlpAus/habitforge-backend/pkg/civil"

// 本文件是日程求值器：一组纯函数，判定某个日历日
// 是否是习惯的"应打卡日"。不做任何I/O，"今天"由调用方显式传入。

// IsScheduledDay 判定day对于给定的日程规则是否是应打卡日。
// 计算被限定在 [createdDay, today] 闭区间内：
// 未来的日子和习惯创建前的日子一律返回false。
// weekly/monthly规则下day集合为空时同样返回false（"永不排程"的宽容默认，
// 上游在创建习惯时应当已经拒绝这种配置）。
func IsScheduledDay(day civil.Day, schedule Schedule, createdDay civil.Day, today civil.Day) bool {
	if day.After(today) {
		return false
	}
	if day.Before(createdDay) {
		return false
	}

	switch schedule.Frequency {
	case FrequencyDaily:
		return true
	case FrequencyWeekly:
		return containsInt(schedule.DaysOfWeek, day.Weekday())
	case FrequencyMonthly:
		// 短月中不存在的日号自然不会匹配，无需特殊处理
		return containsInt(schedule.DaysOfMonth, day.DayOfMonth())
	default:
		return false
	}
}

// TotalScheduledDays 统计 [createdDay, today] 闭区间内应打卡日的总数。
// 逐日迭代，保证与IsScheduledDay逐点一致；today早于createdDay时返回0。
func TotalScheduledDays(schedule Schedule, createdDay civil.Day, today civil.Day) int {
	if createdDay.After(today) {
		return 0
	}

	count := 0
	for day := createdDay; !day.After(today); day = day.AddDays(1) {
		if IsScheduledDay(day, schedule, createdDay, today) {
			count++
		}
	}
	return count
}

func containsInt(set []int, v int) bool {
	for _, member := range set {
		if member == v {
			return true
		}
	}
	return false
}
