package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"FocusDesk/internal/checkin"
	"FocusDesk/internal/model"
	"FocusDesk/internal/notes"
	"FocusDesk/internal/notify"
	"FocusDesk/internal/persist"
	"FocusDesk/internal/tasks"
	"FocusDesk/internal/timer"
	"FocusDesk/pkg/clock"
)

// Desk 组合打卡、倒计时、任务和笔记，所有访问都经过同一把锁。
// HTTP 请求和倒计时驱动共享同一个 Desk。
type Desk struct {
	mu sync.Mutex

	checkins  *checkin.Tracker
	countdown *timer.Countdown
	tasks     *tasks.List
	note      *notes.Pad
	clock     clock.Clock
}

type DeskOptions struct {
	Store    persist.Store
	Clock    clock.Clock
	Notifier notify.Notifier
	Logger   *zap.Logger

	SundayFirst     bool
	TimerDefault    int
	TimerMaxSeconds int
	NextTaskID      func() (int64, error)
}

func NewDesk(ctx context.Context, opts DeskOptions) *Desk {
	if opts.Clock == nil {
		opts.Clock = clock.System{}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	log := opts.Logger

	return &Desk{
		checkins: checkin.New(ctx, checkin.Options{
			Store:       opts.Store,
			Clock:       opts.Clock,
			Logger:      log.Named("checkin"),
			SundayFirst: opts.SundayFirst,
		}),
		countdown: timer.New(ctx, timer.Options{
			Store:           opts.Store,
			Notifier:        opts.Notifier,
			Clock:           opts.Clock,
			Logger:          log.Named("timer"),
			DefaultDuration: opts.TimerDefault,
			MaxSeconds:      opts.TimerMaxSeconds,
		}),
		tasks: tasks.New(ctx, tasks.Options{
			Store:  opts.Store,
			Clock:  opts.Clock,
			NextID: opts.NextTaskID,
			Logger: log.Named("tasks"),
		}),
		note:  notes.New(ctx, opts.Store, log.Named("notes")),
		clock: opts.Clock,
	}
}

// Today 按 Desk 时钟所在时区取当天日期
func (d *Desk) Today() model.Date {
	return model.DateOf(d.clock.Now())
}

// ========== 打卡 ==========

func (d *Desk) ToggleCheckIn(ctx context.Context, date model.Date) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.checkins.Toggle(ctx, date)
}

func (d *Desk) IsCheckedIn(date model.Date) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.checkins.IsChecked(date)
}

func (d *Desk) CheckInSummary(year int, month time.Month) (model.CheckinSummary, error) {
	if _, err := model.NewDate(year, month, 1); err != nil {
		return model.CheckinSummary{}, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	return d.checkins.Summary(year, month), nil
}

func (d *Desk) Calendar(year int, month time.Month) (model.MonthCalendar, error) {
	if _, err := model.NewDate(year, month, 1); err != nil {
		return model.MonthCalendar{}, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	return d.checkins.Calendar(year, month), nil
}

// ========== 倒计时 ==========

func (d *Desk) Timer() model.TimerSnapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.countdown.Snapshot()
}

func (d *Desk) ConfigureTimer(ctx context.Context, seconds int) (model.TimerSnapshot, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.countdown.Configure(ctx, seconds); err != nil {
		return model.TimerSnapshot{}, err
	}
	return d.countdown.Snapshot(), nil
}

func (d *Desk) StartTimer(ctx context.Context) model.TimerSnapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.countdown.Start(ctx)
	return d.countdown.Snapshot()
}

func (d *Desk) PauseTimer(ctx context.Context) model.TimerSnapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.countdown.Pause(ctx)
	return d.countdown.Snapshot()
}

func (d *Desk) ResetTimer(ctx context.Context) model.TimerSnapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.countdown.Reset(ctx)
	return d.countdown.Snapshot()
}

func (d *Desk) TimerRun() model.TimerRun {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.countdown.Run()
}

// TickTimer 由 schedule.TimerDriver 调用
func (d *Desk) TickTimer(ctx context.Context, elapsedSeconds int) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.countdown.Tick(ctx, elapsedSeconds)
}

// ========== 任务 ==========

func (d *Desk) Tasks() model.TaskBoard {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.board()
}

func (d *Desk) board() model.TaskBoard {
	return model.TaskBoard{Tasks: d.tasks.All(), Progress: d.tasks.Progress()}
}

func (d *Desk) AddTask(ctx context.Context, text string) (model.Task, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.tasks.Add(ctx, text)
}

func (d *Desk) ToggleTask(ctx context.Context, id int64) (model.Task, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.tasks.Toggle(ctx, id)
}

func (d *Desk) RemoveTask(ctx context.Context, id int64) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.tasks.Remove(ctx, id)
}

// ClearDoneTasks 返回删除数量和清理后的列表
func (d *Desk) ClearDoneTasks(ctx context.Context) (int, model.TaskBoard) {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := d.tasks.ClearDone(ctx)
	return n, d.board()
}

// ========== 笔记 ==========

func (d *Desk) Note() model.Note {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.note.Note()
}

func (d *Desk) SetNote(ctx context.Context, text string) model.Note {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.note.Set(ctx, text)
	return d.note.Note()
}
