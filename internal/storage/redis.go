package storage

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"rbconsole/pkg/platform/sentinel"
)

const redisKeyPrefix = "rbconsole:"

// RedisBackend shares console state between machines. Keys live under
// rbconsole:<namespace>: and never expire.
type RedisBackend struct {
	client *redis.Client
	prefix string
	owned  bool
}

// RedisOption configures a RedisBackend.
type RedisOption func(*RedisBackend)

// WithOwnedClient closes the client when the backend is closed.
func WithOwnedClient() RedisOption {
	return func(b *RedisBackend) { b.owned = true }
}

func NewRedisBackend(client *redis.Client, namespace string, opts ...RedisOption) *RedisBackend {
	b := &RedisBackend{client: client, prefix: redisKeyPrefix + namespace + ":"}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	return b
}

func (b *RedisBackend) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := b.client.Get(ctx, b.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (b *RedisBackend) Set(ctx context.Context, key string, value []byte) error {
	return b.client.Set(ctx, b.prefix+key, value, 0).Err()
}

func (b *RedisBackend) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = b.prefix + k
	}
	return b.client.Del(ctx, full...).Err()
}

func (b *RedisBackend) Close() error {
	if b.owned {
		return b.client.Close()
	}
	return nil
}
