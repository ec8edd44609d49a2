package civil

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// DayFormat 是项目中所有日历日期的统一字符串格式 (YYYY-MM-DD)。
const DayFormat = "2006-01-02"

// Day 表示一个不带时间部分的日历日。
// 它是所有日期运算的唯一载体：内部统一为UTC的零点时刻，
// 以避免时区和时分秒带来的差一天错误。
type Day struct {
	t time.Time
}

// ParseDay 将一个 "YYYY-MM-DD" 格式的字符串解析为Day。
func ParseDay(s string) (Day, error) {
	t, err := time.Parse(DayFormat, s)
	if err != nil {
		return Day{}, fmt.Errorf("无法解析日期 %q: %w", s, err)
	}
	return Day{t: t}, nil
}

// MustParseDay 与ParseDay相同，但在解析失败时panic。
// 仅用于测试和常量场景。
func MustParseDay(s string) Day {
	d, err := ParseDay(s)
	if err != nil {
		panic(err)
	}
	return d
}

// DayOf 将任意时间戳截断为它所在的日历日（取其本地年月日）。
func DayOf(t time.Time) Day {
	y, m, d := t.Date()
	return Day{t: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// String 返回 "YYYY-MM-DD" 形式的字符串。
func (d Day) String() string {
	return d.t.Format(DayFormat)
}

// IsZero 报告Day是否为零值。
func (d Day) IsZero() bool {
	return d.t.IsZero()
}

// AddDays 返回偏移n天后的新Day，n可以为负。
func (d Day) AddDays(n int) Day {
	return Day{t: d.t.AddDate(0, 0, n)}
}

// DaysSince 返回 d - other 的整日差。
// 两个Day都是UTC零点，因此整除不会受夏令时影响。
func (d Day) DaysSince(other Day) int {
	return int(d.t.Sub(other.t) / (24 * time.Hour))
}

// Before 报告d是否早于other。
func (d Day) Before(other Day) bool { return d.t.Before(other.t) }

// After 报告d是否晚于other。
func (d Day) After(other Day) bool { return d.t.After(other.t) }

// Equal 报告两个Day是否为同一天。
func (d Day) Equal(other Day) bool { return d.t.Equal(other.t) }

// Weekday 返回星期几，0=周日 .. 6=周六。
func (d Day) Weekday() int {
	return int(d.t.Weekday())
}

// DayOfMonth 返回该日在当月中的日号 (1-31)。
func (d Day) DayOfMonth() int {
	return d.t.Day()
}

// Value 实现driver.Valuer，使Day可以以字符串形式写入数据库。
func (d Day) Value() (driver.Value, error) {
	return d.String(), nil
}

// Scan 实现sql.Scanner，使Day可以从数据库的字符串列读出。
func (d *Day) Scan(src any) error {
	switch v := src.(type) {
	case string:
		parsed, err := ParseDay(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case []byte:
		return d.Scan(string(v))
	case time.Time:
		*d = DayOf(v)
		return nil
	default:
		return fmt.Errorf("无法将 %T 扫描为civil.Day", src)
	}
}

// MarshalText 实现encoding.TextMarshaler，用于JSON序列化。
func (d Day) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText 实现encoding.TextUnmarshaler，用于JSON反序列化。
func (d *Day) UnmarshalText(text []byte) error {
	parsed, err := ParseDay(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
