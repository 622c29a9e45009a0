// Package timer implements the focus countdown. It never reads the wall clock to
// advance: callers report elapsed whole seconds through Tick.
package timer

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"FocusDesk/internal/model"
	"FocusDesk/internal/notify"
	"FocusDesk/internal/persist"
	"FocusDesk/pkg/clock"
	"FocusDesk/pkg/errors"
	"FocusDesk/pkg/metrics"
)

const (
	DefaultDurationSeconds = 25 * 60
	DefaultMaxSeconds      = 3 * 60 * 60
)

// Countdown 不加锁，并发访问由 service.Desk 串行化
type Countdown struct {
	duration  int
	remaining int
	running   bool

	generation uint64
	startedAt  time.Time

	maxSeconds int
	store      persist.Store
	notifier   notify.Notifier
	clock      clock.Clock
	log        *zap.Logger
}

type Options struct {
	Store           persist.Store
	Notifier        notify.Notifier
	Clock           clock.Clock
	Logger          *zap.Logger
	DefaultDuration int
	MaxSeconds      int
}

// New 恢复上次保存的状态并修正到合法范围；不补算进程停止期间流逝的时间
func New(ctx context.Context, opts Options) *Countdown {
	c := &Countdown{
		maxSeconds: opts.MaxSeconds,
		store:      opts.Store,
		notifier:   opts.Notifier,
		clock:      opts.Clock,
		log:        opts.Logger,
	}
	if c.maxSeconds < 1 {
		c.maxSeconds = DefaultMaxSeconds
	}
	if c.clock == nil {
		c.clock = clock.System{}
	}
	if c.log == nil {
		c.log = zap.NewNop()
	}

	fallback := opts.DefaultDuration
	if !c.inRange(fallback) {
		fallback = min(DefaultDurationSeconds, c.maxSeconds)
	}

	c.duration = fallback
	if d, ok := persist.LoadJSON[int](ctx, c.store, c.log, persist.KeyTimerDuration); ok && c.inRange(d) {
		c.duration = d
	}

	c.remaining = c.duration
	if r, ok := persist.LoadJSON[int](ctx, c.store, c.log, persist.KeyTimerRemaining); ok {
		c.remaining = max(0, min(r, c.duration))
	}

	if r, ok := persist.LoadJSON[bool](ctx, c.store, c.log, persist.KeyTimerRunning); ok {
		c.running = r && c.remaining > 0
	}
	if c.running {
		// 重启后从现在开始算，不补停机时间
		c.beginRun()
	}

	c.log.Debug("Countdown restored",
		zap.Int("duration", c.duration),
		zap.Int("remaining", c.remaining),
		zap.Bool("running", c.running),
	)
	return c
}

func (c *Countdown) inRange(seconds int) bool {
	return seconds >= 1 && seconds <= c.maxSeconds
}

// Configure 设置时长；未运行时同时把剩余时间重置为新时长，运行中只在新时长更短时截断剩余
func (c *Countdown) Configure(ctx context.Context, seconds int) error {
	if !c.inRange(seconds) {
		return fmt.Errorf("%w: %d not within 1..%d", errors.InvalidConfig, seconds, c.maxSeconds)
	}

	c.duration = seconds
	if c.running {
		c.remaining = min(c.remaining, seconds)
	} else {
		c.remaining = seconds
	}
	c.save(ctx)
	return nil
}

// Start 剩余为 0 时重新装填；已在运行时无副作用
func (c *Countdown) Start(ctx context.Context) {
	if c.running {
		return
	}
	if c.remaining == 0 {
		c.remaining = c.duration
	}
	c.running = true
	c.beginRun()
	c.save(ctx)
}

func (c *Countdown) beginRun() {
	c.generation++
	c.startedAt = c.clock.Now()
}

func (c *Countdown) Pause(ctx context.Context) {
	if !c.running {
		return
	}
	c.running = false
	c.save(ctx)
}

func (c *Countdown) Reset(ctx context.Context) {
	c.running = false
	c.remaining = c.duration
	c.save(ctx)
}

// Tick 扣减 elapsed 秒，返回本次是否走完倒计时。未运行或 elapsed <= 0 时什么也不做。
func (c *Countdown) Tick(ctx context.Context, elapsed int) bool {
	if !c.running || elapsed <= 0 {
		return false
	}

	applied := min(elapsed, c.remaining)
	c.remaining -= applied
	metrics.GetMetrics().RecordTimerTick(ctx, applied)

	if c.remaining > 0 {
		c.save(ctx)
		return false
	}

	c.running = false
	c.save(ctx)
	c.complete(ctx)
	return true
}

func (c *Countdown) complete(ctx context.Context) {
	event := model.TimerCompletedEvent{
		EventID:         uuid.NewString(),
		DurationSeconds: c.duration,
		CompletedAt:     c.clock.Now(),
	}
	metrics.GetMetrics().RecordTimerCompleted(ctx, c.duration)

	if c.notifier == nil {
		return
	}
	// 通知失败只记录，计时器状态已经完成
	if err := c.notifier.TimerCompleted(ctx, event); err != nil {
		c.log.Warn("Failed to deliver timer completed notification",
			zap.String("event_id", event.EventID),
			zap.Error(err),
		)
	}
}

func (c *Countdown) save(ctx context.Context) {
	persist.SaveJSON(ctx, c.store, c.log, persist.KeyTimerDuration, c.duration)
	persist.SaveJSON(ctx, c.store, c.log, persist.KeyTimerRemaining, c.remaining)
	persist.SaveJSON(ctx, c.store, c.log, persist.KeyTimerRunning, c.running)
}

func (c *Countdown) Duration() int {
	return c.duration
}

func (c *Countdown) Remaining() int {
	return c.remaining
}

func (c *Countdown) Running() bool {
	return c.running
}

// Run 返回当前运行段；未运行时 Generation 仍是上一段的值
func (c *Countdown) Run() model.TimerRun {
	return model.TimerRun{
		Running:    c.running,
		Generation: c.generation,
		StartedAt:  c.startedAt,
	}
}

func (c *Countdown) MaxSeconds() int {
	return c.maxSeconds
}

// State 运行中为 Running；剩余为 0 为 Completed；其余为 Idle（包括暂停）
func (c *Countdown) State() model.TimerState {
	switch {
	case c.running:
		return model.TimerStateRunning
	case c.remaining == 0:
		return model.TimerStateCompleted
	default:
		return model.TimerStateIdle
	}
}

func (c *Countdown) Snapshot() model.TimerSnapshot {
	return model.TimerSnapshot{
		DurationSeconds:  c.duration,
		RemainingSeconds: c.remaining,
		Running:          c.running,
		State:            c.State(),
		Display:          FormatClock(c.remaining),
		Percent:          percentElapsed(c.duration, c.remaining),
	}
}

// FormatClock 格式化为 MM:SS，分钟数可以超过 99
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

func percentElapsed(duration, remaining int) int {
	if duration <= 0 {
		return 0
	}
	elapsed := duration - remaining
	return (elapsed*100 + duration/2) / duration
}
