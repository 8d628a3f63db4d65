package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const DefaultOutboxKey = "villahub:outbox"

// RedisOutbox stores unsent frames in a Redis list so they survive a restart
// of the agent. Head of the list is the oldest frame.
type RedisOutbox struct {
	client   redis.Cmdable
	key      string
	capacity int64
}

// NewRedisClient connects to redisURL (redis://host:port/db) and verifies the
// connection. A non-empty password overrides the one in the URL.
func NewRedisClient(ctx context.Context, redisURL, password string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	if password != "" {
		opts.Password = password
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	rdb := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return rdb, nil
}

// NewRedisOutbox keeps at most capacity frames under key; the oldest are
// trimmed first.
func NewRedisOutbox(client redis.Cmdable, key string, capacity int) *RedisOutbox {
	if key == "" {
		key = DefaultOutboxKey
	}
	if capacity <= 0 {
		capacity = 1000
	}
	return &RedisOutbox{client: client, key: key, capacity: int64(capacity)}
}

func (o *RedisOutbox) Push(ctx context.Context, item OutboxItem) error {
	data, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("marshal outbox item: %w", err)
	}

	_, err = o.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, o.key, data)
		pipe.LTrim(ctx, o.key, -o.capacity, -1)
		return nil
	})
	if err != nil {
		return fmt.Errorf("push outbox item: %w", err)
	}
	return nil
}

func (o *RedisOutbox) Pop(ctx context.Context) (OutboxItem, bool, error) {
	data, err := o.client.LPop(ctx, o.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return OutboxItem{}, false, nil
	}
	if err != nil {
		return OutboxItem{}, false, fmt.Errorf("pop outbox item: %w", err)
	}

	var item OutboxItem
	if err := json.Unmarshal(data, &item); err != nil {
		return OutboxItem{}, false, fmt.Errorf("decode outbox item: %w", err)
	}
	return item, true, nil
}

func (o *RedisOutbox) Requeue(ctx context.Context, item OutboxItem) error {
	data, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("marshal outbox item: %w", err)
	}

	_, err = o.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, o.key, data)
		pipe.LTrim(ctx, o.key, 0, o.capacity-1)
		return nil
	})
	if err != nil {
		return fmt.Errorf("requeue outbox item: %w", err)
	}
	return nil
}

func (o *RedisOutbox) Len(ctx context.Context) (int, error) {
	n, err := o.client.LLen(ctx, o.key).Result()
	if err != nil {
		return 0, fmt.Errorf("outbox length: %w", err)
	}
	return int(n), nil
}
