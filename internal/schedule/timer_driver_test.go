package schedule

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FocusDesk/internal/model"
	"FocusDesk/pkg/clock"
)

type fakeTarget struct {
	mu        sync.Mutex
	clock     clock.Clock
	run       model.TimerRun
	remaining int
	ticks     []int
}

// newTarget 返回已在运行的目标，运行段从时钟当前时刻开始
func newTarget(c clock.Clock, remaining int) *fakeTarget {
	f := &fakeTarget{clock: c, remaining: remaining}
	f.start()
	return f
}

func (f *fakeTarget) TimerRun() model.TimerRun {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.run
}

func (f *fakeTarget) TickTimer(_ context.Context, elapsed int) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ticks = append(f.ticks, elapsed)
	f.remaining -= min(elapsed, f.remaining)
	if f.remaining == 0 {
		f.run.Running = false
		return true
	}
	return false
}

func (f *fakeTarget) start() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.run.Running {
		return
	}
	f.run.Running = true
	f.run.Generation++
	f.run.StartedAt = f.clock.Now()
}

func (f *fakeTarget) pause() {
	f.mu.Lock()
	f.run.Running = false
	f.mu.Unlock()
}

func (f *fakeTarget) running() bool {
	return f.TimerRun().Running
}

func (f *fakeTarget) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, t := range f.ticks {
		n += t
	}
	return n
}

func start() time.Time {
	return time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
}

func TestStepCarriesSubSecondRemainder(t *testing.T) {
	ctx := context.Background()
	c := clock.NewFake(start())
	target := newTarget(c, 100)
	d := NewTimerDriver(target, c, time.Second, nil)

	d.Step(ctx) // 建立锚点
	for range 4 {
		c.Advance(700 * time.Millisecond)
		d.Step(ctx)
	}

	// 2.8s -> 2 整秒，余 0.8s
	assert.Equal(t, 2, target.total())

	c.Advance(200 * time.Millisecond)
	d.Step(ctx)
	assert.Equal(t, 3, target.total())
}

func TestStepCatchesUpAfterDelay(t *testing.T) {
	ctx := context.Background()
	c := clock.NewFake(start())
	target := newTarget(c, 1000)
	d := NewTimerDriver(target, c, time.Second, nil)

	d.Step(ctx)
	c.Advance(90*time.Second + 500*time.Millisecond)
	d.Step(ctx)

	assert.Equal(t, []int{90}, target.ticks)
}

func TestStepIgnoresPausedTime(t *testing.T) {
	ctx := context.Background()
	c := clock.NewFake(start())
	target := newTarget(c, 1000)
	d := NewTimerDriver(target, c, time.Second, nil)

	d.Step(ctx)
	c.Advance(10 * time.Second)
	d.Step(ctx)

	target.pause()
	c.Advance(5 * time.Minute)
	d.Step(ctx)

	target.start()
	d.Step(ctx)
	c.Advance(3 * time.Second)
	d.Step(ctx)

	assert.Equal(t, 13, target.total())
}

func TestStepStopsAfterCompletion(t *testing.T) {
	ctx := context.Background()
	c := clock.NewFake(start())
	target := newTarget(c, 5)
	d := NewTimerDriver(target, c, time.Second, nil)

	d.Step(ctx)
	c.Advance(3 * time.Second)
	d.Step(ctx)
	c.Advance(3 * time.Second)
	d.Step(ctx)
	c.Advance(3 * time.Second)
	d.Step(ctx)

	assert.Equal(t, []int{3, 3}, target.ticks)
	assert.False(t, target.running())
}

func TestStepClockGoesBackwards(t *testing.T) {
	ctx := context.Background()
	c := clock.NewFake(start())
	target := newTarget(c, 100)
	d := NewTimerDriver(target, c, time.Second, nil)

	d.Step(ctx)
	c.Advance(-time.Hour)
	d.Step(ctx)
	c.Advance(2 * time.Second)
	d.Step(ctx)

	assert.Equal(t, []int{2}, target.ticks)
}

func TestStepSkipsPauseBetweenSamples(t *testing.T) {
	ctx := context.Background()
	c := clock.NewFake(start())
	target := newTarget(c, 1000)
	d := NewTimerDriver(target, c, 5*time.Second, nil)

	d.Step(ctx)

	// 两次采样之间：暂停 4 秒，再继续跑 1 秒
	target.pause()
	c.Advance(4 * time.Second)
	target.start()
	c.Advance(time.Second)
	d.Step(ctx)

	assert.Equal(t, []int{1}, target.ticks)
}

func TestStepCountsFromStartBetweenSamples(t *testing.T) {
	ctx := context.Background()
	c := clock.NewFake(start())
	target := &fakeTarget{clock: c, remaining: 1000}
	d := NewTimerDriver(target, c, 5*time.Second, nil)

	d.Step(ctx)
	c.Advance(2 * time.Second)
	target.start()
	c.Advance(3 * time.Second)
	d.Step(ctx)

	assert.Equal(t, []int{3}, target.ticks)
}

func TestStepRestartAfterCompletion(t *testing.T) {
	ctx := context.Background()
	c := clock.NewFake(start())
	target := newTarget(c, 2)
	d := NewTimerDriver(target, c, time.Second, nil)

	d.Step(ctx)
	c.Advance(2 * time.Second)
	d.Step(ctx)
	require.False(t, target.running())

	target.mu.Lock()
	target.remaining = 10
	target.mu.Unlock()

	c.Advance(time.Minute)
	target.start()
	c.Advance(4 * time.Second)
	d.Step(ctx)

	assert.Equal(t, []int{2, 4}, target.ticks)
}

func TestRunStopsOnCancel(t *testing.T) {
	c := clock.NewFake(start())
	target := &fakeTarget{clock: c}
	d := NewTimerDriver(target, c, time.Millisecond, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("driver did not stop")
	}
}
