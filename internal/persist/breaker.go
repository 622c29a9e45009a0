package persist

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	deskerrors "FocusDesk/pkg/errors"
)

// BreakerState 熔断器状态
type BreakerState int

const (
	BreakerClosed   BreakerState = iota // 正常转发
	BreakerOpen                         // 熔断中，直接失败
	BreakerHalfOpen                     // 放行一次试探请求
)

func (s BreakerState) String() string {
	switch s {
	case BreakerClosed:
		return "closed"
	case BreakerOpen:
		return "open"
	case BreakerHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// BreakerStore wraps a Store and stops calling it after maxFailures consecutive
// errors, so a dead backend costs one fast failure per call instead of a timeout.
// ErrNotFound is a normal answer and never counts as a failure.
type BreakerStore struct {
	next         Store
	log          *zap.Logger
	maxFailures  int
	resetTimeout time.Duration
	now          func() time.Time

	mu           sync.Mutex
	state        BreakerState
	failures     int
	lastFailTime time.Time
	probing      bool
}

func NewBreakerStore(next Store, log *zap.Logger, maxFailures int, resetTimeout time.Duration) *BreakerStore {
	if maxFailures < 1 {
		maxFailures = 1
	}
	return &BreakerStore{
		next:         next,
		log:          log,
		maxFailures:  maxFailures,
		resetTimeout: resetTimeout,
		now:          time.Now,
	}
}

func (b *BreakerStore) Load(ctx context.Context, key string) ([]byte, error) {
	if err := b.allow(); err != nil {
		return nil, err
	}
	v, err := b.next.Load(ctx, key)
	b.record(err)
	return v, err
}

func (b *BreakerStore) Save(ctx context.Context, key string, value []byte) error {
	if err := b.allow(); err != nil {
		return err
	}
	err := b.next.Save(ctx, key, value)
	b.record(err)
	return err
}

func (b *BreakerStore) State() BreakerState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

func (b *BreakerStore) allow() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case BreakerOpen:
		if b.now().Sub(b.lastFailTime) < b.resetTimeout {
			return fmt.Errorf("store breaker open: %w", deskerrors.PersistenceUnavailable)
		}
		b.transition(BreakerHalfOpen)
		b.probing = true
		return nil
	case BreakerHalfOpen:
		if b.probing {
			return fmt.Errorf("store breaker probing: %w", deskerrors.PersistenceUnavailable)
		}
		b.probing = true
		return nil
	default:
		return nil
	}
}

func (b *BreakerStore) record(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.probing = false
	if err == nil || errors.Is(err, ErrNotFound) {
		b.failures = 0
		if b.state != BreakerClosed {
			b.transition(BreakerClosed)
		}
		return
	}

	b.failures++
	b.lastFailTime = b.now()

	switch b.state {
	case BreakerClosed:
		if b.failures >= b.maxFailures {
			b.transition(BreakerOpen)
		}
	case BreakerHalfOpen:
		b.transition(BreakerOpen)
	}
}

func (b *BreakerStore) transition(to BreakerState) {
	b.log.Info("Store breaker state changed",
		zap.String("from", b.state.String()),
		zap.String("to", to.String()),
		zap.Int("failures", b.failures),
	)
	b.state = to
}
