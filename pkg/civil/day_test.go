package civil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDay(t *testing.T) {
	d, err := ParseDay("2025-03-01")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-01", d.String())

	_, err = ParseDay("2025/03/01")
	assert.Error(t, err)

	_, err = ParseDay("")
	assert.Error(t, err)
}

func TestDayOfDropsClock(t *testing.T) {
	// 同一天的不同时刻必须落到同一个Day
	morning := time.Date(2025, 3, 1, 0, 0, 1, 0, time.UTC)
	night := time.Date(2025, 3, 1, 23, 59, 59, 0, time.UTC)
	assert.True(t, DayOf(morning).Equal(DayOf(night)))
}

func TestAddDaysAndDaysSince(t *testing.T) {
	d := MustParseDay("2025-02-27")

	assert.Equal(t, "2025-02-28", d.AddDays(1).String())
	// 2025年不是闰年
	assert.Equal(t, "2025-03-01", d.AddDays(2).String())
	assert.Equal(t, "2025-02-26", d.AddDays(-1).String())

	assert.Equal(t, 2, MustParseDay("2025-03-01").DaysSince(d))
	assert.Equal(t, -2, d.DaysSince(MustParseDay("2025-03-01")))
	assert.Equal(t, 0, d.DaysSince(d))
}

func TestLeapYearBoundary(t *testing.T) {
	d := MustParseDay("2024-02-28")
	assert.Equal(t, "2024-02-29", d.AddDays(1).String())
	assert.Equal(t, "2024-03-01", d.AddDays(2).String())
}

func TestOrdering(t *testing.T) {
	a := MustParseDay("2025-01-01")
	b := MustParseDay("2025-01-02")

	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.False(t, a.Equal(b))
}

func TestWeekdayAndDayOfMonth(t *testing.T) {
	// 2025-03-02 是周日
	d := MustParseDay("2025-03-02")
	assert.Equal(t, 0, d.Weekday())
	assert.Equal(t, 2, d.DayOfMonth())

	// 2025-03-03 是周一
	assert.Equal(t, 1, MustParseDay("2025-03-03").Weekday())
	assert.Equal(t, 31, MustParseDay("2025-01-31").DayOfMonth())
}

func TestIsZero(t *testing.T) {
	var zero Day
	assert.True(t, zero.IsZero())
	assert.False(t, MustParseDay("2025-01-01").IsZero())
}

func TestScanRoundTrip(t *testing.T) {
	d := MustParseDay("2025-06-15")

	v, err := d.Value()
	require.NoError(t, err)

	var scanned Day
	require.NoError(t, scanned.Scan(v))
	assert.True(t, d.Equal(scanned))

	var fromString Day
	require.NoError(t, fromString.Scan("2025-06-15"))
	assert.True(t, d.Equal(fromString))
}

func TestTextRoundTrip(t *testing.T) {
	d := MustParseDay("2025-06-15")

	text, err := d.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "2025-06-15", string(text))

	var decoded Day
	require.NoError(t, decoded.UnmarshalText(text))
	assert.True(t, d.Equal(decoded))
}
