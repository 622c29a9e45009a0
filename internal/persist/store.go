// Package persist defines the key/value persistence contract shared by the desk
// components and the helpers that keep persistence failures out of component logic.
package persist

import (
	"context"
	"errors"
	"sync"
)

// 各组件使用的存储 key，沿用原前端 localStorage 的命名
const (
	KeyCheckinDays    = "checkin_days"
	KeyTasks          = "tasks_v1"
	KeyNote           = "review_note_v1"
	KeyTimerDuration  = "timer_duration_v1"
	KeyTimerRemaining = "timer_remaining_v1"
	KeyTimerRunning   = "timer_running_v1"
)

// ErrNotFound is returned by Load when the key has never been saved.
var ErrNotFound = errors.New("persist: key not found")

// Store persists JSON documents by key. Save must store a private copy of value.
type Store interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
}

// Memory is an in-process Store.
type Memory struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

func (m *Memory) Load(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *Memory) Save(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	m.data[key] = append([]byte(nil), value...)
	m.mu.Unlock()
	return nil
}

// Put 直接写入原始字节，测试中用来模拟损坏的数据
func (m *Memory) Put(key string, raw string) {
	m.mu.Lock()
	m.data[key] = []byte(raw)
	m.mu.Unlock()
}
