package habit

import "fmt"

// ValidationError 表示习惯配置未通过创建/更新时的校验。
// Handler层据此返回400而不是500。
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("习惯配置无效: %s %s", e.Field, e.Reason)
}

// ValidateSchedule 校验日程规则的结构不变量：
// weekly必须携带非空且取值在0-6内的DaysOfWeek，
// monthly必须携带非空且取值在1-31内的DaysOfMonth。
// 空集合在求值器中只会退化为"永不排程"，因此必须在入口处拒绝。
func ValidateSchedule(s Schedule) error {
	switch s.Frequency {
	case FrequencyDaily:
		return nil
	case FrequencyWeekly:
		if len(s.DaysOfWeek) == 0 {
			return &ValidationError{Field: "daysOfWeek", Reason: "weekly频率下不能为空"}
		}
		for _, d := range s.DaysOfWeek {
			if d < 0 || d > 6 {
				return &ValidationError{Field: "daysOfWeek", Reason: fmt.Sprintf("包含非法取值 %d (合法范围0-6)", d)}
			}
		}
		return nil
	case FrequencyMonthly:
		if len(s.DaysOfMonth) == 0 {
			return &ValidationError{Field: "daysOfMonth", Reason: "monthly频率下不能为空"}
		}
		for _, d := range s.DaysOfMonth {
			if d < 1 || d > 31 {
				return &ValidationError{Field: "daysOfMonth", Reason: fmt.Sprintf("包含非法取值 %d (合法范围1-31)", d)}
			}
		}
		return nil
	default:
		return &ValidationError{Field: "frequency", Reason: fmt.Sprintf("未知的频率 %q", s.Frequency)}
	}
}

// validateVariantFields 校验习惯变体与字段的搭配：
// 只有negative习惯携带ConfirmationTime，只有positive习惯携带提醒时刻。
func validateVariantFields(habitType HabitType, reminders []string, confirmationTime string) error {
	switch habitType {
	case TypePositive:
		if confirmationTime != "" {
			return &ValidationError{Field: "confirmationTime", Reason: "仅用于negative习惯"}
		}
	case TypeNegative:
		if len(reminders) > 0 {
			return &ValidationError{Field: "reminders", Reason: "仅用于positive习惯"}
		}
		if confirmationTime == "" {
			return &ValidationError{Field: "confirmationTime", Reason: "negative习惯必须指定每日确认时刻"}
		}
	default:
		return &ValidationError{Field: "type", Reason: fmt.Sprintf("未知的习惯类型 %q", habitType)}
	}

	for _, t := range append(append([]string{}, reminders...), confirmationTime) {
		if t != "" && !isValidClockTime(t) {
			return &ValidationError{Field: "time", Reason: fmt.Sprintf("时刻 %q 不符合 HH:MM 格式", t)}
		}
	}
	return nil
}

// isValidClockTime 校验 "HH:MM" 格式的挂钟时刻。
func isValidClockTime(s string) bool {
	if len(s) != 5 || s[2] != ':' {
		return false
	}
	hh := int(s[0]-'0')*10 + int(s[1]-'0')
	mm := int(s[3]-'0')*10 + int(s[4]-'0')
	for _, c := range []byte{s[0], s[1], s[3], s[4]} {
		if c < '0' || c > '9' {
			return false
		}
	}
	return hh >= 0 && hh <= 23 && mm >= 0 && mm <= 59
}
