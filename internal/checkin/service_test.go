package checkin

import (
	"testing"
	"time"

	"github.com/SlpAus/habitforge-backend/internal/habit"
	"github.com/SlpAus/habitforge-backend/internal/platform/database"
	"github.com/SlpAus/habitforge-backend/pkg/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB 把全局数据库切换到一个独立的内存SQLite实例。
func newTestDB(t *testing.T) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&CheckIn{}))
	database.DB = db
}

func testHabit() *habit.Habit {
	return &habit.Habit{
		UUID:       "habit-1",
		UserUUID:   "user-1",
		Type:       habit.TypePositive,
		CreatedDay: civil.MustParseDay("2025-03-01"),
	}
}

var testClock = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func TestInsertCheckInRejectsDuplicateDay(t *testing.T) {
	newTestDB(t)
	h := testHabit()
	input := CheckInInput{Day: civil.MustParseDay("2025-03-05"), Completed: true}

	_, err := insertCheckIn(h, h.UserUUID, input, testClock)
	require.NoError(t, err)

	_, err = insertCheckIn(h, h.UserUUID, input, testClock)
	assert.ErrorIs(t, err, ErrDuplicateCheckIn)
}

func TestInsertCheckInDayBounds(t *testing.T) {
	newTestDB(t)
	h := testHabit()

	_, err := insertCheckIn(h, h.UserUUID, CheckInInput{Day: civil.MustParseDay("2025-03-11"), Completed: true}, testClock)
	assert.ErrorIs(t, err, ErrInvalidDay, "未来日期不可打卡")

	_, err = insertCheckIn(h, h.UserUUID, CheckInInput{Day: civil.MustParseDay("2025-02-28"), Completed: true}, testClock)
	assert.ErrorIs(t, err, ErrInvalidDay, "创建日之前不可打卡")
}

func TestInsertCheckInPercentageBounds(t *testing.T) {
	newTestDB(t)
	h := testHabit()

	over := 101
	_, err := insertCheckIn(h, h.UserUUID, CheckInInput{
		Day:                  civil.MustParseDay("2025-03-05"),
		Completed:            true,
		CompletionPercentage: &over,
	}, testClock)
	assert.ErrorIs(t, err, ErrInvalidPercentage)

	negative := -1
	_, err = insertCheckIn(h, h.UserUUID, CheckInInput{
		Day:                  civil.MustParseDay("2025-03-05"),
		Completed:            true,
		CompletionPercentage: &negative,
	}, testClock)
	assert.ErrorIs(t, err, ErrInvalidPercentage)
}

func TestRemoveCheckInFreesDay(t *testing.T) {
	newTestDB(t)
	h := testHabit()
	input := CheckInInput{Day: civil.MustParseDay("2025-03-05"), Completed: true}

	ci, err := insertCheckIn(h, h.UserUUID, input, testClock)
	require.NoError(t, err)

	// 结算失败后的补偿路径：物理删除必须释放该日期的唯一索引占位
	removeCheckIn(ci)

	again, err := insertCheckIn(h, h.UserUUID, input, testClock)
	require.NoError(t, err, "回滚后同一天必须可以重新提交")
	assert.True(t, again.Day.Equal(input.Day))

	var count int64
	require.NoError(t, database.DB.Model(&CheckIn{}).Where("habit_uuid = ?", h.UUID).Count(&count).Error)
	assert.Equal(t, int64(1), count, "回滚的记录不留残留")
}
