package checkin

import (
	"testing"

	"github.com/SlpAus/habitforge-backend/internal/badge"
	"github.com/SlpAus/habitforge-backend/internal/reward"
	"github.com/SlpAus/habitforge-backend/pkg/civil"
	"github.com/stretchr/testify/assert"
)

func TestFormatSettlementBuildHabit(t *testing.T) {
	s := &Settlement{
		CheckIn:       CheckIn{HabitUUID: "habit-1", Day: civil.MustParseDay("2025-03-05"), Completed: true},
		Points:        50,
		CurrentStreak: 3,
		Reward: &reward.SettlementResult{
			Points:      50,
			TotalPoints: 180,
			NewBadges:   []badge.Badge{{BadgeID: "milestone_10"}},
		},
	}

	resp := formatSettlement(s)

	assert.Equal(t, "habit-1", resp.CheckIn.HabitID)
	assert.Equal(t, "2025-03-05", resp.CheckIn.Date)
	assert.Equal(t, 50, resp.Points)
	assert.Equal(t, 180, resp.TotalPoints)
	assert.Equal(t, 3, resp.CurrentStreak)
	assert.Equal(t, []string{"milestone_10"}, resp.NewBadges)
}

// break类习惯确认成功时，结算结果要带上用户当前的连续天数，而不是零值。
func TestFormatSettlementBreakHabitKeepsStreak(t *testing.T) {
	s := &Settlement{
		CheckIn:       CheckIn{HabitUUID: "habit-2", Day: civil.MustParseDay("2025-03-05"), Completed: true},
		Points:        30,
		CurrentStreak: 7,
		Reward: &reward.SettlementResult{
			Points:        30,
			TotalPoints:   210,
			CurrentStreak: 7,
			BestStreak:    9,
		},
	}

	resp := formatSettlement(s)

	assert.Equal(t, 7, resp.CurrentStreak)
	assert.Equal(t, 210, resp.TotalPoints)
	assert.Empty(t, resp.NewBadges)
	assert.NotNil(t, resp.NewBadges, "空徽章列表序列化为[]而不是null")
}

func TestFormatSettlementNoReward(t *testing.T) {
	s := &Settlement{
		CheckIn:       CheckIn{HabitUUID: "habit-3", Day: civil.MustParseDay("2025-03-05"), Completed: false},
		CurrentStreak: 0,
	}

	resp := formatSettlement(s)

	assert.Zero(t, resp.TotalPoints)
	assert.NotNil(t, resp.NewBadges)
}
