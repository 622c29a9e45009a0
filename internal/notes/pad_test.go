package notes

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"FocusDesk/internal/model"
	"FocusDesk/internal/persist"
)

func TestPadCountsCharacters(t *testing.T) {
	ctx := context.Background()
	p := New(ctx, nil, nil)

	assert.Zero(t, p.Length())

	p.Set(ctx, "今天复习了第三章")
	assert.Equal(t, 8, p.Length())
	assert.Equal(t, model.Note{Text: "今天复习了第三章", Length: 8}, p.Note())
}

func TestPadPersists(t *testing.T) {
	ctx := context.Background()
	store := persist.NewMemory()

	New(ctx, store, nil).Set(ctx, "review: graphs")
	assert.Equal(t, "review: graphs", New(ctx, store, nil).Text())
}

func TestPadIgnoresCorruptValue(t *testing.T) {
	store := persist.NewMemory()
	store.Put(persist.KeyNote, `{"text":1}`)

	assert.Empty(t, New(context.Background(), store, nil).Text())
}
