//go:build !no_redis

package kv

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/yeisme/relicvault/pkg/configs"
)

// RedisKV 基于 Redis 的 KV 实现，TTL 走 Redis 原生过期.
type RedisKV struct {
	client *redis.Client
}

// NewRedisKV 连接 Redis 并做一次 ping 探活.
func NewRedisKV(ctx context.Context, cfg *configs.KVConfig) (KVStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Redis.Addr, err)
	}

	return &RedisKV{client: rdb}, nil
}

// Get 获取键的值.
func (r *RedisKV) Get(ctx context.Context, key string) ([]byte, error) {
	result, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	}

	if err != nil {
		return nil, fmt.Errorf("redis get %q: %w", key, err)
	}

	return result, nil
}

// Set 设置键的值.
func (r *RedisKV) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", key, err)
	}

	return nil
}

// Delete 删除键.
func (r *RedisKV) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del %q: %w", key, err)
	}

	return nil
}

// Exists 检查键是否存在.
func (r *RedisKV) Exists(ctx context.Context, key string) (bool, error) {
	count, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists %q: %w", key, err)
	}

	return count > 0, nil
}

// Keys 获取匹配模式的键；空模式等价于 "*".
func (r *RedisKV) Keys(ctx context.Context, pattern string) ([]string, error) {
	if pattern == "" {
		pattern = "*"
	}

	keys, err := r.client.Keys(ctx, pattern).Result()
	if err != nil {
		return nil, fmt.Errorf("redis keys %q: %w", pattern, err)
	}

	return keys, nil
}

// Close 关闭 Redis 连接.
func (r *RedisKV) Close() error {
	return r.client.Close()
}

func init() {
	RegisterKVFactory(KVTypeRedis, NewRedisKV)
}
