package session

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStorage implements Storage on Redis.
// Values live under "<prefix><visitor>:<key>" with TTL refreshed on every write.
type RedisStorage struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStorage creates a Redis-backed gate store. Prefix may be empty.
func NewRedisStorage(client *redis.Client, prefix string, ttl time.Duration) *RedisStorage {
	if prefix == "" {
		prefix = "gate:"
	}
	return &RedisStorage{client: client, prefix: prefix, ttl: ttl}
}

func (r *RedisStorage) key(visitor, key string) string {
	return r.prefix + visitor + ":" + key
}

func (r *RedisStorage) Get(ctx context.Context, visitor, key string) (string, bool, error) {
	v, err := r.client.Get(ctx, r.key(visitor, key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, err
	}
	return v, true, nil
}

func (r *RedisStorage) Set(ctx context.Context, visitor, key, value string) error {
	return r.client.Set(ctx, r.key(visitor, key), value, r.ttl).Err()
}

func (r *RedisStorage) Delete(ctx context.Context, visitor, key string) error {
	return r.client.Del(ctx, r.key(visitor, key)).Err()
}

var _ Storage = (*RedisStorage)(nil)
