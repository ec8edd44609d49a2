package habit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateScheduleWeekly(t *testing.T) {
	assert.NoError(t, ValidateSchedule(Schedule{Frequency: FrequencyWeekly, DaysOfWeek: []int{0, 6}}))

	err := ValidateSchedule(Schedule{Frequency: FrequencyWeekly})
	assert.Error(t, err, "weekly频率必须指定打卡日")

	err = ValidateSchedule(Schedule{Frequency: FrequencyWeekly, DaysOfWeek: []int{7}})
	assert.Error(t, err, "星期日号必须在0-6之间")
}

func TestValidateScheduleMonthly(t *testing.T) {
	assert.NoError(t, ValidateSchedule(Schedule{Frequency: FrequencyMonthly, DaysOfMonth: []int{1, 31}}))

	assert.Error(t, ValidateSchedule(Schedule{Frequency: FrequencyMonthly}))
	assert.Error(t, ValidateSchedule(Schedule{Frequency: FrequencyMonthly, DaysOfMonth: []int{0}}))
	assert.Error(t, ValidateSchedule(Schedule{Frequency: FrequencyMonthly, DaysOfMonth: []int{32}}))
}

func TestValidateScheduleUnknownFrequency(t *testing.T) {
	assert.Error(t, ValidateSchedule(Schedule{Frequency: "yearly"}))
}

func TestValidateVariantFields(t *testing.T) {
	// positive习惯可以带提醒，不能带确认时刻
	assert.NoError(t, validateVariantFields(TypePositive, []string{"08:00"}, ""))
	assert.Error(t, validateVariantFields(TypePositive, nil, "21:00"))

	// negative习惯必须带确认时刻，不能带提醒
	assert.NoError(t, validateVariantFields(TypeNegative, nil, "21:00"))
	assert.Error(t, validateVariantFields(TypeNegative, nil, ""))
	assert.Error(t, validateVariantFields(TypeNegative, []string{"08:00"}, "21:00"))
}

func TestClockTimeFormat(t *testing.T) {
	assert.NoError(t, validateVariantFields(TypePositive, []string{"00:00", "23:59"}, ""))
	assert.Error(t, validateVariantFields(TypePositive, []string{"24:00"}, ""))
	assert.Error(t, validateVariantFields(TypePositive, []string{"8:00"}, ""))
	assert.Error(t, validateVariantFields(TypeNegative, nil, "21:60"))
}
