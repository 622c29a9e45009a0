package checkin

import (
	"iter"
	"time"

	"FocusDesk/internal/model"
)

// MonthGrid 生成覆盖整月的 5 或 6 周月历：首行前补空白使 1 号落在对应星期，末行后补空白凑满一周。
// 月份非法时序列为空。每次 range 都从头重新生成。
func MonthGrid(year int, month time.Month, weekStart time.Weekday) iter.Seq[model.GridCell] {
	return func(yield func(model.GridCell) bool) {
		if month < time.January || month > time.December {
			return
		}

		days := model.DaysIn(year, month)
		first := model.Date{Year: year, Month: month, Day: 1}
		lead := (int(first.Weekday()) - int(weekStart) + 7) % 7
		rows := max(5, (lead+days+6)/7)

		for i := range rows * 7 {
			day := i - lead + 1
			cell := model.GridCell{}
			if day >= 1 && day <= days {
				cell = model.DayCell(model.Date{Year: year, Month: month, Day: day})
			}
			if !yield(cell) {
				return
			}
		}
	}
}
