package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeduper(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	d := NewDeduper(client, "test")

	first, err := d.TryMark(ctx, "evt-1", time.Hour)
	require.NoError(t, err)
	assert.True(t, first)

	again, err := d.TryMark(ctx, "evt-1", time.Hour)
	require.NoError(t, err)
	assert.False(t, again)

	require.NoError(t, d.MarkDone(ctx, "evt-1", 2*time.Hour))
	v, err := mr.Get("test:message:processed:evt-1")
	require.NoError(t, err)
	assert.Equal(t, "completed", v)
	assert.Equal(t, 2*time.Hour, mr.TTL("test:message:processed:evt-1"))

	require.NoError(t, d.Unmark(ctx, "evt-1"))
	first, err = d.TryMark(ctx, "evt-1", time.Hour)
	require.NoError(t, err)
	assert.True(t, first)
}
