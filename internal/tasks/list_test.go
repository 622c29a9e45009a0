package tasks

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FocusDesk/internal/model"
	"FocusDesk/internal/persist"
	"FocusDesk/pkg/clock"
	"FocusDesk/pkg/errors"
)

func sequentialIDs() func() (int64, error) {
	var n int64
	return func() (int64, error) {
		n++
		return n, nil
	}
}

func newList(t *testing.T, store persist.Store) *List {
	t.Helper()
	return New(context.Background(), Options{
		Store:  store,
		Clock:  clock.NewFake(time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)),
		NextID: sequentialIDs(),
	})
}

func TestAddTrimsAndRejectsEmpty(t *testing.T) {
	ctx := context.Background()
	l := newList(t, nil)

	_, err := l.Add(ctx, "   ")
	assert.ErrorIs(t, err, errors.TaskTextEmpty)
	assert.Empty(t, l.All())

	task, err := l.Add(ctx, "  read chapter 3 ")
	require.NoError(t, err)
	assert.Equal(t, "read chapter 3", task.Text)
	assert.False(t, task.Done)
	assert.EqualValues(t, 1, task.ID)
	assert.Equal(t, time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC), task.CreatedAt)
}

func TestToggleRemoveAndProgress(t *testing.T) {
	ctx := context.Background()
	l := newList(t, nil)

	a, _ := l.Add(ctx, "a")
	b, _ := l.Add(ctx, "b")
	_, _ = l.Add(ctx, "c")

	assert.Equal(t, model.TaskProgress{Done: 0, Total: 3, Percent: 0}, l.Progress())

	toggled, err := l.Toggle(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Done)
	assert.Equal(t, model.TaskProgress{Done: 1, Total: 3, Percent: 33}, l.Progress())

	_, err = l.Toggle(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 67, l.Progress().Percent)

	_, err = l.Toggle(ctx, 999)
	assert.ErrorIs(t, err, errors.TaskNotFound)
	assert.ErrorIs(t, l.Remove(ctx, 999), errors.TaskNotFound)

	require.NoError(t, l.Remove(ctx, b.ID))
	texts := []string{}
	for _, task := range l.All() {
		texts = append(texts, task.Text)
	}
	assert.Equal(t, []string{"a", "c"}, texts)
}

func TestClearDone(t *testing.T) {
	ctx := context.Background()
	l := newList(t, nil)

	assert.Zero(t, l.ClearDone(ctx))

	a, _ := l.Add(ctx, "a")
	_, _ = l.Add(ctx, "b")
	c, _ := l.Add(ctx, "c")
	_, _ = l.Toggle(ctx, a.ID)
	_, _ = l.Toggle(ctx, c.ID)

	assert.Equal(t, 2, l.ClearDone(ctx))
	require.Len(t, l.All(), 1)
	assert.Equal(t, "b", l.All()[0].Text)
}

func TestEmptyProgress(t *testing.T) {
	l := newList(t, nil)
	assert.Equal(t, model.TaskProgress{}, l.Progress())
}

func TestAllReturnsCopy(t *testing.T) {
	ctx := context.Background()
	l := newList(t, nil)
	_, _ = l.Add(ctx, "a")

	all := l.All()
	all[0].Text = "changed"
	assert.Equal(t, "a", l.All()[0].Text)
}

func TestPersistAndRestore(t *testing.T) {
	ctx := context.Background()
	store := persist.NewMemory()

	l := newList(t, store)
	a, _ := l.Add(ctx, "a")
	_, _ = l.Add(ctx, "b")
	_, _ = l.Toggle(ctx, a.ID)

	restored := newList(t, store)
	assert.Equal(t, l.All(), restored.All())

	raw, err := store.Load(ctx, persist.KeyTasks)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"id":"1"`)
}

func TestRemoveLastPersistsEmptyArray(t *testing.T) {
	ctx := context.Background()
	store := persist.NewMemory()
	l := newList(t, store)

	a, _ := l.Add(ctx, "a")
	require.NoError(t, l.Remove(ctx, a.ID))

	raw, err := store.Load(ctx, persist.KeyTasks)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(raw))
}
