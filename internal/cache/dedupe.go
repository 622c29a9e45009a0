package cache

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"FocusDesk/storage/redis"
)

const messageProcessedPrefix = "message:processed"

// Deduper 用 SETNX 记录消息处理状态，供消费者做幂等
type Deduper struct {
	client goredis.Cmdable
	prefix string
}

func NewDeduper(client goredis.Cmdable, prefix string) *Deduper {
	return &Deduper{client: client, prefix: prefix}
}

func (d *Deduper) key(messageID string) string {
	return redis.KeyWithPrefix(d.prefix, messageProcessedPrefix, messageID)
}

// TryMark 返回 true 表示首次处理，false 表示已处理或正在处理
func (d *Deduper) TryMark(ctx context.Context, messageID string, ttl time.Duration) (bool, error) {
	ok, err := d.client.SetNX(ctx, d.key(messageID), "processing", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to mark message as processing: %w", err)
	}
	return ok, nil
}

// MarkDone 处理成功后改为 completed 并延长 TTL
func (d *Deduper) MarkDone(ctx context.Context, messageID string, ttl time.Duration) error {
	return d.client.Set(ctx, d.key(messageID), "completed", ttl).Err()
}

// Unmark 处理失败时删除标记，允许重试
func (d *Deduper) Unmark(ctx context.Context, messageID string) error {
	return d.client.Del(ctx, d.key(messageID)).Err()
}
