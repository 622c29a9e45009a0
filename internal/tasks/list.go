// Package tasks is the desk's to-do list.
package tasks

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"

	"FocusDesk/internal/model"
	"FocusDesk/internal/persist"
	"FocusDesk/pkg/clock"
	"FocusDesk/pkg/errors"
	"FocusDesk/pkg/snowflake"
)

// List 保持插入顺序，不加锁
type List struct {
	items  []model.Task
	store  persist.Store
	clock  clock.Clock
	nextID func() (int64, error)
	log    *zap.Logger
}

type Options struct {
	Store  persist.Store
	Clock  clock.Clock
	NextID func() (int64, error) // 默认 snowflake.NextID
	Logger *zap.Logger
}

func New(ctx context.Context, opts Options) *List {
	l := &List{
		store:  opts.Store,
		clock:  opts.Clock,
		nextID: opts.NextID,
		log:    opts.Logger,
	}
	if l.clock == nil {
		l.clock = clock.System{}
	}
	if l.nextID == nil {
		l.nextID = snowflake.NextID
	}
	if l.log == nil {
		l.log = zap.NewNop()
	}

	if saved, ok := persist.LoadJSON[[]model.Task](ctx, l.store, l.log, persist.KeyTasks); ok {
		l.items = saved
	}
	return l
}

func (l *List) Add(ctx context.Context, text string) (model.Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Task{}, errors.TaskTextEmpty
	}

	id, err := l.nextID()
	if err != nil {
		return model.Task{}, fmt.Errorf("failed to generate task id: %w", err)
	}

	task := model.Task{
		ID:        id,
		Text:      text,
		CreatedAt: l.clock.Now(),
	}
	l.items = append(l.items, task)
	l.save(ctx)
	return task, nil
}

func (l *List) Toggle(ctx context.Context, id int64) (model.Task, error) {
	i := l.index(id)
	if i < 0 {
		return model.Task{}, errors.TaskNotFound
	}
	l.items[i].Done = !l.items[i].Done
	l.save(ctx)
	return l.items[i], nil
}

func (l *List) Remove(ctx context.Context, id int64) error {
	i := l.index(id)
	if i < 0 {
		return errors.TaskNotFound
	}
	l.items = slices.Delete(l.items, i, i+1)
	l.save(ctx)
	return nil
}

// ClearDone 删除已完成的任务，返回删除数量
func (l *List) ClearDone(ctx context.Context) int {
	before := len(l.items)
	l.items = slices.DeleteFunc(l.items, func(t model.Task) bool { return t.Done })
	removed := before - len(l.items)
	if removed > 0 {
		l.save(ctx)
	}
	return removed
}

func (l *List) Progress() model.TaskProgress {
	p := model.TaskProgress{Total: len(l.items)}
	for _, t := range l.items {
		if t.Done {
			p.Done++
		}
	}
	if p.Total > 0 {
		p.Percent = (p.Done*100 + p.Total/2) / p.Total
	}
	return p
}

func (l *List) All() []model.Task {
	return slices.Clone(l.items)
}

func (l *List) index(id int64) int {
	return slices.IndexFunc(l.items, func(t model.Task) bool { return t.ID == id })
}

func (l *List) save(ctx context.Context) {
	items := l.items
	if items == nil {
		items = []model.Task{}
	}
	persist.SaveJSON(ctx, l.store, l.log, persist.KeyTasks, items)
}
