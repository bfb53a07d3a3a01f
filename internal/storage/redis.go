package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "huddle:"

var _ KV = (*RedisKV)(nil)

type RedisConfig struct {
	Client *redis.Client
	// Namespace scopes keys, e.g. per backend user, so devices of one user
	// share a seen-set.
	Namespace string
}

type RedisKV struct {
	client *redis.Client
	prefix string
}

func NewRedisKV(cfg RedisConfig) *RedisKV {
	prefix := redisKeyPrefix
	if cfg.Namespace != "" {
		prefix += cfg.Namespace + ":"
	}
	return &RedisKV{client: cfg.Client, prefix: prefix}
}

func (r *RedisKV) key(key string) string {
	return r.prefix + key
}

func (r *RedisKV) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get key %q: %w", key, err)
	}
	return data, nil
}

func (r *RedisKV) Set(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, r.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set key %q: %w", key, err)
	}
	return nil
}

func (r *RedisKV) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
		return fmt.Errorf("failed to delete key %q: %w", key, err)
	}
	return nil
}

func (r *RedisKV) Close() error {
	return r.client.Close()
}
