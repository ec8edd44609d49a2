package badge

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

func ownedSet(badges []Badge) map[string]bool {
	owned := make(map[string]bool, len(badges))
	for _, b := range badges {
		owned[b.BadgeID] = true
	}
	return owned
}

func TestNewBadgesFirstMilestone(t *testing.T) {
	earned := NewBadges(10, nil, testNow)
	require.Len(t, earned, 1)

	assert.Equal(t, "badge-10", earned[0].BadgeID)
	assert.Equal(t, 10, earned[0].MilestoneDays)
	assert.Equal(t, "10 Days", earned[0].Name)
	assert.Equal(t, "🥉", earned[0].Icon)
	assert.Equal(t, testNow, earned[0].DateEarned)
}

func TestNewBadgesBelowFirstMilestone(t *testing.T) {
	assert.Empty(t, NewBadges(9, nil, testNow))
	assert.Empty(t, NewBadges(0, nil, testNow))
}

func TestNewBadgesMultipleCrossings(t *testing.T) {
	// 一次评估可能跨过多个里程碑（例如缓存重建后补算）
	earned := NewBadges(30, nil, testNow)
	require.Len(t, earned, 3)
	assert.Equal(t, "badge-10", earned[0].BadgeID)
	assert.Equal(t, "badge-15", earned[1].BadgeID)
	assert.Equal(t, "badge-30", earned[2].BadgeID)
}

func TestNewBadgesIdempotent(t *testing.T) {
	first := NewBadges(15, nil, testNow)
	require.Len(t, first, 2)

	// 连续天数不变，第二次评估不再颁发
	second := NewBadges(15, ownedSet(first), testNow)
	assert.Empty(t, second)

	// 连续天数继续增长，只颁发新跨越的里程碑
	third := NewBadges(30, ownedSet(first), testNow)
	require.Len(t, third, 1)
	assert.Equal(t, "badge-30", third[0].BadgeID)
}

func TestNewBadgesAllMilestones(t *testing.T) {
	earned := NewBadges(300, nil, testNow)
	require.Len(t, earned, len(Milestones))
	assert.Equal(t, "🏆", earned[len(earned)-1].Icon)
}

func TestNextMilestone(t *testing.T) {
	assert.Equal(t, 10, NextMilestone(0))
	assert.Equal(t, 10, NextMilestone(9))
	assert.Equal(t, 15, NextMilestone(10))
	assert.Equal(t, 300, NextMilestone(299))
	// 已超过全部里程碑时返回最大的里程碑
	assert.Equal(t, 300, NextMilestone(300))
	assert.Equal(t, 300, NextMilestone(1000))
}
