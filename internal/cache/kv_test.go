package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FocusDesk/internal/persist"
)

func newTestStore(t *testing.T) (*KVStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewKVStore(client, "test"), mr
}

func TestKVStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestStore(t)

	_, err := store.Load(ctx, persist.KeyTasks)
	assert.ErrorIs(t, err, persist.ErrNotFound)

	require.NoError(t, store.Save(ctx, persist.KeyTasks, []byte(`[]`)))
	got, err := store.Load(ctx, persist.KeyTasks)
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))

	raw, err := mr.Get("test:kv:tasks_v1")
	require.NoError(t, err)
	assert.Equal(t, `[]`, raw)
	assert.Zero(t, mr.TTL("test:kv:tasks_v1"))
}

func TestKVStoreUnavailable(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestStore(t)
	mr.Close()

	_, err := store.Load(ctx, persist.KeyNote)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, persist.ErrNotFound)
	assert.Error(t, store.Save(ctx, persist.KeyNote, []byte(`""`)))
}
