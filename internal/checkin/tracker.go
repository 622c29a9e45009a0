// Package checkin keeps the set of checked calendar days and derives the
// calendar statistics shown on the desk: totals, streaks and month grids.
package checkin

import (
	"context"
	"iter"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"

	"FocusDesk/internal/model"
	"FocusDesk/internal/persist"
	"FocusDesk/pkg/clock"
	"FocusDesk/pkg/metrics"
)

// Tracker 不加锁，并发访问由 service.Desk 串行化
type Tracker struct {
	days      map[model.Date]struct{}
	store     persist.Store
	clock     clock.Clock
	log       *zap.Logger
	weekStart time.Weekday
}

type Options struct {
	Store  persist.Store
	Clock  clock.Clock
	Logger *zap.Logger
	// 默认周一开头，置 true 改为周日开头
	SundayFirst bool
}

// New 从存储恢复已打卡日期；读不到或数据损坏时从空集合开始
func New(ctx context.Context, opts Options) *Tracker {
	t := &Tracker{
		days:      make(map[model.Date]struct{}),
		store:     opts.Store,
		clock:     opts.Clock,
		log:       opts.Logger,
		weekStart: time.Monday,
	}
	if opts.SundayFirst {
		t.weekStart = time.Sunday
	}
	if t.clock == nil {
		t.clock = clock.System{}
	}
	if t.log == nil {
		t.log = zap.NewNop()
	}

	saved, ok := persist.LoadJSON[[]model.Date](ctx, t.store, t.log, persist.KeyCheckinDays)
	if ok {
		for _, d := range saved {
			t.days[d] = struct{}{}
		}
	}

	t.log.Debug("Check-in tracker restored", zap.Int("days", len(t.days)))
	return t
}

// Toggle 翻转某天的打卡状态并立即保存，返回翻转后的状态
func (t *Tracker) Toggle(ctx context.Context, d model.Date) bool {
	checked := !t.IsChecked(d)
	if checked {
		t.days[d] = struct{}{}
	} else {
		delete(t.days, d)
	}

	persist.SaveJSON(ctx, t.store, t.log, persist.KeyCheckinDays, t.Dates())
	metrics.GetMetrics().RecordCheckInToggle(ctx, checked)
	return checked
}

func (t *Tracker) IsChecked(d model.Date) bool {
	_, ok := t.days[d]
	return ok
}

func (t *Tracker) Total() int {
	return len(t.days)
}

func (t *Tracker) MonthlyTotal(year int, month time.Month) int {
	n := 0
	for d := range t.days {
		if d.Year == year && d.Month == month {
			n++
		}
	}
	return n
}

// CurrentStreak 从 asOf 向前数连续打卡天数，asOf 当天未打卡则为 0
func (t *Tracker) CurrentStreak(asOf model.Date) int {
	n := 0
	for d := asOf; t.IsChecked(d); d = d.AddDays(-1) {
		n++
	}
	return n
}

func (t *Tracker) Today() model.Date {
	return model.DateOf(t.clock.Now())
}

func (t *Tracker) CheckedToday() bool {
	return t.IsChecked(t.Today())
}

func (t *Tracker) Streak() int {
	return t.CurrentStreak(t.Today())
}

// Dates 按时间升序返回全部已打卡日期
func (t *Tracker) Dates() []model.Date {
	out := make([]model.Date, 0, len(t.days))
	for d := range t.days {
		out = append(out, d)
	}
	slices.SortFunc(out, compareDates)
	return out
}

func (t *Tracker) WeekStart() time.Weekday {
	return t.weekStart
}

func (t *Tracker) MonthGrid(year int, month time.Month) iter.Seq[model.GridCell] {
	return MonthGrid(year, month, t.weekStart)
}

func (t *Tracker) Summary(year int, month time.Month) model.CheckinSummary {
	today := t.Today()
	return model.CheckinSummary{
		Total:        t.Total(),
		Year:         year,
		Month:        int(month),
		MonthlyTotal: t.MonthlyTotal(year, month),
		Streak:       t.CurrentStreak(today),
		CheckedToday: t.IsChecked(today),
		Today:        today,
	}
}

// Calendar 把月历格与打卡状态合并成展示用的视图
func (t *Tracker) Calendar(year int, month time.Month) model.MonthCalendar {
	today := t.Today()
	cal := model.MonthCalendar{
		Year:      year,
		Month:     int(month),
		WeekStart: weekStartName(t.weekStart),
	}

	for cell := range t.MonthGrid(year, month) {
		if cell.Empty() {
			cal.Cells = append(cal.Cells, model.CalendarCell{})
			continue
		}
		d := cell.Date
		cal.Cells = append(cal.Cells, model.CalendarCell{
			Date:    &d,
			Checked: t.IsChecked(d),
			Today:   d == today,
		})
	}
	return cal
}

func compareDates(a, b model.Date) int {
	switch {
	case a.Before(b):
		return -1
	case b.Before(a):
		return 1
	default:
		return 0
	}
}

func weekStartName(w time.Weekday) string {
	return strings.ToLower(w.String())
}
