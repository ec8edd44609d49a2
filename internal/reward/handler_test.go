package reward

import (
	"testing"

	"github.com/SlpAus/habitforge-backend/internal/habit"
	"github.com/SlpAus/habitforge-backend/pkg/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatHistoryWithHabitInfo(t *testing.T) {
	info := &habit.HabitInfo{
		Name:     "晨间冥想",
		Type:     habit.TypePositive,
		Icon:     "🧘",
		UserUUID: "user-1",
	}
	events := []RewardEvent{
		{HabitUUID: "habit-1", Day: civil.MustParseDay("2025-03-02"), Kind: KindCompletion, Points: 50},
		{HabitUUID: "habit-1", Day: civil.MustParseDay("2025-03-01"), Kind: KindMiss, Points: -40},
	}

	resp := formatHistory("habit-1", info, events)

	assert.Equal(t, "habit-1", resp.HabitID)
	assert.Equal(t, "晨间冥想", resp.HabitName)
	assert.Equal(t, "🧘", resp.HabitIcon)
	require.Len(t, resp.Events, 2)
	assert.Equal(t, "2025-03-02", resp.Events[0].Date)
	assert.Equal(t, "completion", resp.Events[0].Kind)
	assert.Equal(t, 50, resp.Events[0].Points)
	assert.Equal(t, "miss", resp.Events[1].Kind)
	assert.Equal(t, -40, resp.Events[1].Points)
}

// 缓存和SQLite都查不到习惯时，流水仍然可以返回，展示字段留空。
func TestFormatHistoryWithoutHabitInfo(t *testing.T) {
	resp := formatHistory("habit-x", nil, nil)

	assert.Equal(t, "habit-x", resp.HabitID)
	assert.Empty(t, resp.HabitName)
	assert.Empty(t, resp.HabitIcon)
	assert.NotNil(t, resp.Events, "空流水序列化为[]而不是null")
	assert.Empty(t, resp.Events)
}
