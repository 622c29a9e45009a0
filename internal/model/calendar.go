package model

import "encoding/json"

// GridCell 是月历中的一格，空白格没有日期
type GridCell struct {
	Date  Date
	Valid bool
}

func DayCell(d Date) GridCell {
	return GridCell{Date: d, Valid: true}
}

func (c GridCell) Empty() bool {
	return !c.Valid
}

// MarshalJSON 空白格输出 null，其余输出 ISO 日期
func (c GridCell) MarshalJSON() ([]byte, error) {
	if !c.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(c.Date)
}

// CheckinSummary 打卡统计条
type CheckinSummary struct {
	Total        int  `json:"total"`
	Year         int  `json:"year"`
	Month        int  `json:"month"`
	MonthlyTotal int  `json:"monthly_total"`
	Streak       int  `json:"streak"`
	CheckedToday bool `json:"checked_today"`
	Today        Date `json:"today"`
}

// CalendarCell 是带打卡状态的月历格，供展示层使用
type CalendarCell struct {
	Date    *Date `json:"date"`
	Checked bool  `json:"checked"`
	Today   bool  `json:"today"`
}

type MonthCalendar struct {
	Year      int            `json:"year"`
	Month     int            `json:"month"`
	WeekStart string         `json:"week_start"`
	Cells     []CalendarCell `json:"cells"`
}
