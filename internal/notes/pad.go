// Package notes holds the desk's free-form review note.
package notes

import (
	"context"
	"unicode/utf8"

	"go.uber.org/zap"

	"FocusDesk/internal/model"
	"FocusDesk/internal/persist"
)

type Pad struct {
	text  string
	store persist.Store
	log   *zap.Logger
}

func New(ctx context.Context, store persist.Store, log *zap.Logger) *Pad {
	if log == nil {
		log = zap.NewNop()
	}
	p := &Pad{store: store, log: log}
	if saved, ok := persist.LoadJSON[string](ctx, store, log, persist.KeyNote); ok {
		p.text = saved
	}
	return p
}

func (p *Pad) Set(ctx context.Context, text string) {
	p.text = text
	persist.SaveJSON(ctx, p.store, p.log, persist.KeyNote, text)
}

func (p *Pad) Text() string {
	return p.text
}

// Length 按字符计数
func (p *Pad) Length() int {
	return utf8.RuneCountInString(p.text)
}

func (p *Pad) Note() model.Note {
	return model.Note{Text: p.text, Length: p.Length()}
}
