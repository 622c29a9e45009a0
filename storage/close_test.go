package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"FocusDesk/config"
)

func closerNames(cfg *config.Config) []string {
	var names []string
	for _, c := range selectedClosers(cfg) {
		names = append(names, c.name)
	}
	return names
}

func TestSelectedClosersFollowConfig(t *testing.T) {
	tests := []struct {
		name   string
		driver string
		queue  bool
		want   []string
	}{
		{"memory only", "memory", false, nil},
		{"sqlite", "sqlite", false, []string{"sqlite"}},
		{"postgres with queue", "postgres", true, []string{"rabbitmq", "postgres"}},
		{"redis", "redis", false, []string{"redis"}},
		{"memory with queue", "memory", true, []string{"rabbitmq"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{StorageDriver: tt.driver, NotifyQueueEnabled: tt.queue}
			assert.Equal(t, tt.want, closerNames(cfg))
		})
	}
}
