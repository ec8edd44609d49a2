package reminder

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/SlpAus/habitforge-backend/internal/habit"
	"github.com/SlpAus/habitforge-backend/internal/platform/config"
	"github.com/SlpAus/habitforge-backend/internal/platform/database"
	"github.com/SlpAus/habitforge-backend/pkg/civil"
	"github.com/SlpAus/habitforge-backend/pkg/lifecycle"
)

// --- Redis 键名 ---

const (
	// pendingListPrefix 是每个用户待取提醒的Redis List键前缀。
	// 完整键形如 reminder:pending:<userUUID>，Value是Notification的JSON。
	pendingListPrefix = "reminder:pending:"

	// firedSetPrefix 是提醒去重的Redis Set键前缀。
	// 完整键按自然日分片（reminder:fired:<YYYY-MM-DD>），
	// Member形如 <habitUUID>|<HH:MM>，48小时后自动过期。
	firedSetPrefix = "reminder:fired:"

	firedSetTTL = 48 * time.Hour
)

// Kind 区分提醒的种类。
type Kind string

const (
	// KindReminder 是positive习惯的打卡提醒
	KindReminder Kind = "reminder"
	// KindConfirmation 是negative习惯的每日确认提示
	KindConfirmation Kind = "confirmation"
)

// Notification 是投递给用户的单条提醒。
// Streak 是该习惯当前的连续天数，供前端在提醒文案中展示。
type Notification struct {
	Kind      Kind   `json:"kind"`
	HabitID   string `json:"habitId"`
	HabitName string `json:"habitName"`
	Icon      string `json:"icon"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Streak    int    `json:"streak"`
}

// PendingListKey 返回某个用户待取提醒队列的完整Redis键。
func PendingListKey(userUUID string) string {
	return pendingListPrefix + userUUID
}

// StartPoller 启动提醒巡查器。
// 按配置的间隔轮询，把当前时刻到点的提醒投递到对应用户的待取队列。
// 这是一个阻塞调用，应在独立的Goroutine中运行。
func StartPoller(handle *lifecycle.Handle) {
	defer handle.Close()
	fmt.Println("提醒巡查器已启动...")

	interval := config.Cfg.Reminder.PollInterval
	for {
		if err := handle.Sleep(interval); err != nil {
			fmt.Println("提醒巡查器已停止。")
			return
		}
		if err := pollOnce(time.Now()); err != nil {
			fmt.Printf("警告: 提醒巡查失败: %v\n", err)
		}
	}
}

// pollOnce 执行一轮巡查：遍历所有活跃习惯，找出今天在排程内、
// 且提醒/确认时刻已到的习惯，投递未投递过的提醒。
func pollOnce(now time.Time) error {
	habits, err := habit.ListActive()
	if err != nil {
		return err
	}

	today := civil.DayOf(now)
	clock := now.Format("15:04")

	for i := range habits {
		h := &habits[i]
		schedule, err := h.Schedule()
		if err != nil {
			continue
		}
		if !habit.IsScheduledDay(today, schedule, h.CreatedDay, today) {
			continue
		}

		var due []string
		kind := KindReminder
		switch h.Type {
		case habit.TypePositive:
			due, err = h.Reminders()
			if err != nil {
				continue
			}
		case habit.TypeNegative:
			kind = KindConfirmation
			if h.ConfirmationTime != "" {
				due = []string{h.ConfirmationTime}
			}
		}

		for _, at := range due {
			// 轮询间隔可能跨过提醒时刻，放行所有已到点的提醒，由去重集合兜底
			if at > clock {
				continue
			}
			if err := deliver(h, kind, today, at); err != nil {
				fmt.Printf("警告: 投递提醒失败 (habit=%s): %v\n", h.UUID, err)
			}
		}
	}
	return nil
}

// deliver 在去重集合上做一次原子占位，成功后把提醒推入用户的待取队列。
func deliver(h *habit.Habit, kind Kind, day civil.Day, at string) error {
	firedKey := firedSetPrefix + day.String()
	member := h.UUID + "|" + at

	added, err := database.RDB.SAdd(database.Ctx, firedKey, member).Result()
	if err != nil {
		return fmt.Errorf("无法写入提醒去重集合: %w", err)
	}
	if added == 0 {
		// 本轮之前已投递过
		return nil
	}
	database.RDB.Expire(database.Ctx, firedKey, firedSetTTL)

	// habits列表在本轮巡查开始时加载，连续天数以缓存里的最新值为准
	streak := h.StreakCount
	habit.RLockRepository()
	cached, ok, err := habit.GetCachedStreak(h.UUID)
	habit.RUnlockRepository()
	if err == nil && ok {
		streak = cached
	}

	payload, _ := json.Marshal(Notification{
		Kind:      kind,
		HabitID:   h.UUID,
		HabitName: h.Name,
		Icon:      h.Icon,
		Date:      day.String(),
		Time:      at,
		Streak:    streak,
	})
	if err := database.RDB.RPush(database.Ctx, PendingListKey(h.UserUUID), payload).Err(); err != nil {
		return fmt.Errorf("无法推入待取提醒队列: %w", err)
	}
	return nil
}
