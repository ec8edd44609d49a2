package checkin

import (
	"errors"
	"fmt"
	"time"

	"github.com/SlpAus/habitforge-backend/internal/badge"
	"github.com/SlpAus/habitforge-backend/internal/habit"
	"github.com/SlpAus/habitforge-backend/internal/platform/database"
	"github.com/SlpAus/habitforge-backend/internal/reward"
	"github.com/SlpAus/habitforge-backend/pkg/civil"
)

// --- 服务层错误 ---

var (
	// ErrHabitNotFound 表示习惯不存在或不属于当前用户。
	ErrHabitNotFound = errors.New("习惯不存在")
	// ErrDuplicateCheckIn 表示该习惯在该自然日已有记录。
	ErrDuplicateCheckIn = errors.New("该日期已有打卡记录")
	// ErrInvalidDay 表示日期超出 [创建日, 今天] 的可打卡范围。
	ErrInvalidDay = errors.New("日期超出可打卡范围")
	// ErrWrongHabitType 表示操作与习惯类型不匹配。
	ErrWrongHabitType = errors.New("操作与习惯类型不匹配")
	// ErrInvalidPercentage 表示完成度超出0-100。
	ErrInvalidPercentage = errors.New("完成度必须在0-100之间")
)

// CheckInInput 是一次打卡的业务字段。
type CheckInInput struct {
	Day                  civil.Day
	Completed            bool
	CompletionPercentage *int
	Notes                string
}

// Settlement 汇总一次打卡的全部产出。
type Settlement struct {
	CheckIn       CheckIn
	Points        int
	CurrentStreak int
	Reward        *reward.SettlementResult
}

// RecordCheckIn 为build类习惯记录一次打卡（完成或未完成），
// 随后重算该习惯的当前连续天数并结算积分、连续天数与徽章。
func RecordCheckIn(userUUID, habitUUID string, input CheckInInput, now time.Time) (*Settlement, error) {
	h, err := lookupHabit(userUUID, habitUUID)
	if err != nil {
		return nil, err
	}
	if h.Type != habit.TypePositive {
		return nil, ErrWrongHabitType
	}

	ci, err := insertCheckIn(h, userUUID, input, now)
	if err != nil {
		return nil, err
	}

	// 打卡落库后重算该习惯的当前连续天数，同步到数据库与缓存。
	streak, err := recomputeStreak(h, now)
	if err != nil {
		removeCheckIn(ci)
		return nil, err
	}

	result, err := reward.ApplyHabitEvent(userUUID, habitUUID, input.Day, input.Completed, now)
	if err != nil {
		// 结算失败时撤销本次打卡并恢复连续天数，该日期可以重新提交
		removeCheckIn(ci)
		if _, rerr := recomputeStreak(h, now); rerr != nil {
			fmt.Printf("警告: 回滚打卡后无法恢复习惯 %s 的连续天数: %v\n", h.UUID, rerr)
		}
		return nil, err
	}

	return &Settlement{
		CheckIn:       *ci,
		Points:        result.Points,
		CurrentStreak: streak,
		Reward:        result,
	}, nil
}

// ConfirmBreakHabitDay 为break类习惯确认某一天的结果（忍住或破戒）。
// 只结算积分，不触碰连续天数与徽章。
func ConfirmBreakHabitDay(userUUID, habitUUID string, day civil.Day, avoided bool, now time.Time) (*Settlement, error) {
	h, err := lookupHabit(userUUID, habitUUID)
	if err != nil {
		return nil, err
	}
	if h.Type != habit.TypeNegative {
		return nil, ErrWrongHabitType
	}

	ci, err := insertCheckIn(h, userUUID, CheckInInput{Day: day, Completed: avoided}, now)
	if err != nil {
		return nil, err
	}

	result, err := reward.ApplyBreakHabitEvent(userUUID, habitUUID, day, avoided, now)
	if err != nil {
		// 结算失败时撤销本次确认，该日期可以重新提交
		removeCheckIn(ci)
		return nil, err
	}

	return &Settlement{
		CheckIn:       *ci,
		Points:        result.Points,
		CurrentStreak: result.CurrentStreak,
		Reward:        result,
	}, nil
}

// ListForHabit 返回某个习惯的打卡记录，可按日期闭区间过滤。
// start/end为零值时对应端不限制。
func ListForHabit(userUUID, habitUUID string, start, end civil.Day) ([]CheckIn, error) {
	if _, err := lookupHabit(userUUID, habitUUID); err != nil {
		return nil, err
	}

	query := database.DB.Where("habit_uuid = ?", habitUUID)
	if !start.IsZero() {
		query = query.Where("day >= ?", start)
	}
	if !end.IsZero() {
		query = query.Where("day <= ?", end)
	}

	var checkins []CheckIn
	if err := query.Order("day ASC").Find(&checkins).Error; err != nil {
		return nil, fmt.Errorf("无法查询打卡记录: %w", err)
	}
	return checkins, nil
}

// Analytics 是一个习惯的连续性与完成率汇总。
type Analytics struct {
	CurrentStreak  int
	LongestStreak  int
	AverageStreak  float64
	CompletionRate float64
	TotalScheduled int
	TotalCheckIns  int
	TotalCompleted int
	NextMilestone  int
}

// AnalyzeHabit 对单个习惯的全部打卡记录执行一次完整分析。
func AnalyzeHabit(userUUID, habitUUID string, today civil.Day) (*Analytics, error) {
	h, err := lookupHabit(userUUID, habitUUID)
	if err != nil {
		return nil, err
	}
	schedule, err := h.Schedule()
	if err != nil {
		return nil, err
	}

	checkins, err := ListForHabit(userUUID, habitUUID, civil.Day{}, civil.Day{})
	if err != nil {
		return nil, err
	}

	completed := 0
	for _, ci := range checkins {
		if ci.Completed {
			completed++
		}
	}

	current := CurrentStreak(checkins, today)
	return &Analytics{
		CurrentStreak:  current,
		LongestStreak:  LongestStreak(checkins),
		AverageStreak:  AverageStreak(checkins),
		CompletionRate: CompletionRate(checkins, schedule, h.CreatedDay, today),
		TotalScheduled: habit.TotalScheduledDays(schedule, h.CreatedDay, today),
		TotalCheckIns:  len(checkins),
		TotalCompleted: completed,
		NextMilestone:  badge.NextMilestone(current),
	}, nil
}

// --- 内部辅助 ---

func lookupHabit(userUUID, habitUUID string) (*habit.Habit, error) {
	h, err := habit.GetByUUID(habitUUID)
	if err != nil {
		return nil, err
	}
	if h == nil || h.UserUUID != userUUID {
		return nil, ErrHabitNotFound
	}
	return h, nil
}

// insertCheckIn 校验日期范围、完成度与唯一性后写入一条打卡记录。
func insertCheckIn(h *habit.Habit, userUUID string, input CheckInInput, now time.Time) (*CheckIn, error) {
	today := civil.DayOf(now)
	if input.Day.After(today) || input.Day.Before(h.CreatedDay) {
		return nil, ErrInvalidDay
	}
	if input.CompletionPercentage != nil {
		if p := *input.CompletionPercentage; p < 0 || p > 100 {
			return nil, ErrInvalidPercentage
		}
	}

	var count int64
	err := database.DB.Model(&CheckIn{}).
		Where("habit_uuid = ? AND day = ?", h.UUID, input.Day).
		Count(&count).Error
	if err != nil {
		return nil, fmt.Errorf("无法检查打卡记录: %w", err)
	}
	if count > 0 {
		return nil, ErrDuplicateCheckIn
	}

	ci := CheckIn{
		HabitUUID:            h.UUID,
		UserUUID:             userUUID,
		Day:                  input.Day,
		Completed:            input.Completed,
		CompletionPercentage: input.CompletionPercentage,
		Notes:                input.Notes,
	}
	// (habit_uuid, day) 唯一索引兜底并发下的重复提交
	if err := database.DB.Create(&ci).Error; err != nil {
		return nil, fmt.Errorf("无法写入打卡记录: %w", err)
	}
	return &ci, nil
}

// removeCheckIn 物理删除一条打卡记录，释放(habit_uuid, day)唯一索引的占位。
// 这是结算失败时的补偿动作：不留软删除残留，该日期可以立即重新提交。
func removeCheckIn(ci *CheckIn) {
	if err := database.DB.Unscoped().Delete(ci).Error; err != nil {
		fmt.Printf("警告: 无法回滚打卡记录 %d: %v\n", ci.ID, err)
	}
}

// recomputeStreak 从全量打卡记录重算当前连续天数并持久化。
func recomputeStreak(h *habit.Habit, now time.Time) (int, error) {
	var checkins []CheckIn
	err := database.DB.Where("habit_uuid = ?", h.UUID).Find(&checkins).Error
	if err != nil {
		return 0, fmt.Errorf("无法读取打卡记录: %w", err)
	}

	streak := CurrentStreak(checkins, civil.DayOf(now))
	if err := habit.UpdateStreakCount(h.UUID, streak); err != nil {
		return 0, err
	}
	return streak, nil
}
