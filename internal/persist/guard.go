package persist

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"

	deskerrors "FocusDesk/pkg/errors"
	"FocusDesk/pkg/metrics"
)

// LoadJSON decodes the value stored under key. It reports false when the key is
// missing, the stored value is corrupt or the store is unavailable; only the last two
// are logged.
func LoadJSON[T any](ctx context.Context, store Store, log *zap.Logger, key string) (T, bool) {
	var zero T
	if store == nil {
		return zero, false
	}
	if log == nil {
		log = zap.NewNop()
	}

	raw, err := store.Load(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return zero, false
	}
	if err != nil {
		log.Warn("Failed to load persisted value, using default",
			zap.String("key", key),
			zap.String("code", deskerrors.PersistenceUnavailable.Code),
			zap.Error(err),
		)
		metrics.GetMetrics().RecordPersistenceFailure(ctx, "load", key)
		return zero, false
	}

	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		log.Warn("Persisted value is corrupt, using default",
			zap.String("key", key),
			zap.Error(err),
		)
		metrics.GetMetrics().RecordPersistenceFailure(ctx, "decode", key)
		return zero, false
	}
	return v, true
}

// SaveJSON encodes value under key. Failures are logged and counted, never returned:
// in-memory state stays authoritative for the session.
func SaveJSON(ctx context.Context, store Store, log *zap.Logger, key string, value any) {
	if store == nil {
		return
	}
	if log == nil {
		log = zap.NewNop()
	}

	raw, err := json.Marshal(value)
	if err != nil {
		log.Error("Failed to encode value for persistence", zap.String("key", key), zap.Error(err))
		return
	}

	if err := store.Save(ctx, key, raw); err != nil {
		log.Warn("Failed to persist value, continuing in memory",
			zap.String("key", key),
			zap.String("code", deskerrors.PersistenceUnavailable.Code),
			zap.Error(err),
		)
		metrics.GetMetrics().RecordPersistenceFailure(ctx, "save", key)
	}
}
