package notify

import (
	"context"
	"errors"
	"go/parser"
	"go/token"
	"os"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FocusDesk/internal/model"
)

func TestMultiNotifiesAllAndJoinsErrors(t *testing.T) {
	boom := errors.New("queue down")
	var calls []string

	m := Multi{
		NotifierFunc(func(context.Context, model.TimerCompletedEvent) error {
			calls = append(calls, "first")
			return boom
		}),
		nil,
		NotifierFunc(func(context.Context, model.TimerCompletedEvent) error {
			calls = append(calls, "second")
			return nil
		}),
		NewLogNotifier(nil),
	}

	err := m.TimerCompleted(context.Background(), model.TimerCompletedEvent{EventID: "evt"})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"first", "second"}, calls)
}

// 倒计时依赖本包，本包不能把消息队列的依赖带进去
func TestNotifyStaysFreeOfTransportImports(t *testing.T) {
	entries, err := os.ReadDir(".")
	require.NoError(t, err)

	fset := token.NewFileSet()
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}

		f, err := parser.ParseFile(fset, name, nil, parser.ImportsOnly)
		require.NoError(t, err)

		for _, imp := range f.Imports {
			path, err := strconv.Unquote(imp.Path.Value)
			require.NoError(t, err)
			assert.NotContains(t, path, "amqp", "%s imports %s", name, path)
			assert.NotContains(t, path, "FocusDesk/internal/queue", "%s imports %s", name, path)
			assert.NotContains(t, path, "FocusDesk/storage", "%s imports %s", name, path)
		}
	}
}
