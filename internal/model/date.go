package model

import (
	"time"

	"FocusDesk/pkg/errors"
)

// DateLayout 是打卡日期的持久化格式
const DateLayout = "2006-01-02"

// Date 表示一个不带时刻的日历日期，可直接作为 map 的 key 比较
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf 取 t 在其自身时区下的年月日
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

func NewDate(year int, month time.Month, day int) (Date, error) {
	if month < time.January || month > time.December {
		return Date{}, errors.InvalidMonth
	}
	if day < 1 || day > DaysIn(year, month) {
		return Date{}, errors.InvalidDate
	}
	return Date{Year: year, Month: month, Day: day}, nil
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, errors.InvalidDate
	}
	return DateOf(t), nil
}

// Time 返回该日期 UTC 零点
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
}

func (d Date) Weekday() time.Weekday {
	return d.Time().Weekday()
}

func (d Date) Before(o Date) bool {
	return d.Time().Before(o.Time())
}

func (d Date) IsZero() bool {
	return d == Date{}
}

func (d Date) String() string {
	return d.Time().Format(DateLayout)
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(b []byte) error {
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// DaysIn 返回某年某月的天数
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
