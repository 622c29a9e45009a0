package schedule

// 倒计时驱动：按固定间隔采样时钟，把墙钟时间差换算成整秒交给 Tick

import (
	"context"
	"time"

	"go.uber.org/zap"

	"FocusDesk/internal/model"
	"FocusDesk/pkg/clock"
)

// TimerTarget 由 service.Desk 实现
type TimerTarget interface {
	TimerRun() model.TimerRun
	TickTimer(ctx context.Context, elapsedSeconds int) bool
}

type TimerDriver struct {
	target   TimerTarget
	clock    clock.Clock
	interval time.Duration
	logger   *zap.Logger

	anchor     time.Time     // 上一次结算到的时刻
	carry      time.Duration // 不足一秒的余量
	tracking   bool          // 是否正在跟踪某一段运行
	generation uint64        // 正在跟踪的运行段
}

func NewTimerDriver(target TimerTarget, c clock.Clock, interval time.Duration, log *zap.Logger) *TimerDriver {
	if c == nil {
		c = clock.System{}
	}
	if interval <= 0 {
		interval = time.Second
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &TimerDriver{target: target, clock: c, interval: interval, logger: log}
}

// Run 阻塞直到 ctx 取消
func (d *TimerDriver) Run(ctx context.Context) error {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	d.logger.Info("Timer driver started", zap.Duration("interval", d.interval))
	d.Step(ctx)

	for {
		select {
		case <-ctx.Done():
			d.logger.Info("Timer driver stopped")
			return ctx.Err()
		case <-ticker.C:
			d.Step(ctx)
		}
	}
}

// Step 采样一次。运行段变了（两次采样之间暂停后又开始，或刚开始运行）时，
// 锚点移到这一段的开始时刻，暂停的时间不计入，开始后的时间也不丢。
func (d *TimerDriver) Step(ctx context.Context) {
	now := d.clock.Now()

	run := d.target.TimerRun()
	if !run.Running {
		d.anchor, d.carry, d.tracking = now, 0, false
		return
	}
	if !d.tracking || run.Generation != d.generation {
		d.anchor, d.carry = run.StartedAt, 0
		if run.StartedAt.IsZero() || run.StartedAt.After(now) {
			d.anchor = now
		}
		d.tracking, d.generation = true, run.Generation
	}

	delta := now.Sub(d.anchor) + d.carry
	d.anchor = now
	if delta < 0 {
		// 时钟回拨，丢弃这段
		d.carry = 0
		return
	}

	seconds := int(delta / time.Second)
	d.carry = delta - time.Duration(seconds)*time.Second
	if seconds == 0 {
		return
	}

	if d.target.TickTimer(ctx, seconds) {
		d.tracking = false
		d.logger.Debug("Countdown completed by driver", zap.Int("elapsed", seconds))
	}
}
