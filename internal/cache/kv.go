package cache

import (
	"context"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"FocusDesk/internal/persist"
	"FocusDesk/storage/redis"
)

const kvPrefix = "kv"

// KVStore 基于 Redis 的键值存储，值为 JSON 文本，不设置过期时间
type KVStore struct {
	client goredis.Cmdable
	prefix string
}

func NewKVStore(client goredis.Cmdable, prefix string) *KVStore {
	return &KVStore{client: client, prefix: prefix}
}

// DefaultKVStore 使用全局 Redis 客户端，需先调用 redis.Init
func DefaultKVStore() *KVStore {
	return NewKVStore(redis.Client(), "")
}

func (s *KVStore) key(key string) string {
	if s.prefix == "" {
		return redis.Key(kvPrefix, key)
	}
	return redis.KeyWithPrefix(s.prefix, kvPrefix, key)
}

func (s *KVStore) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, persist.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s from redis: %w", key, err)
	}
	return data, nil
}

func (s *KVStore) Save(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("failed to save %s to redis: %w", key, err)
	}
	return nil
}
