// Package cache 提供基于键值存储的泛型缓存实现.
//
// 该包提供了类型安全的缓存操作，支持任意类型的缓存值.
// 底层使用JSON序列化/反序列化（bytedance/sonic），支持TTL设置.
// 媒体列表查询（按藏品+种类）是主要使用场景，键由 xxhash 压缩.
//
// 基本用法:
//
//	c := cache.NewCache(kvStore)
//
//	// 缓存媒体列表
//	err := cache.Set(ctx, c, cache.MediaListKey(42, "photo"), items, time.Minute)
//
//	// 获取缓存数据
//	items, err := cache.Get[[]MediaItem](ctx, c, cache.MediaListKey(42, "photo"))
//
//	// GetOrSet 模式
//	items, err := cache.GetOrSet(ctx, c, key, func() ([]MediaItem, error) {
//	    return queryFromDB(ctx)
//	}, time.Minute)
//
// 错误处理:
//   - 网络错误、连接错误等会通过error返回
//   - 序列化/反序列化错误会被包装并返回
//   - 缓存未命中不会被视为错误
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cespare/xxhash/v2"

	"github.com/yeisme/relicvault/pkg/internal/storage/kv"
)

// Cache 基于KV存储的缓存实现.
type Cache struct {
	kvStore kv.KVStore
}

// NewCache 创建一个新的缓存实例.
func NewCache(kvStore kv.KVStore) *Cache {
	return &Cache{
		kvStore: kvStore,
	}
}

// MediaListKey 构造媒体列表缓存键；kind 为空表示藏品下全部种类.
// 用 xxhash 压缩避免超长键（部分 KV 后端对键字符有限制）。
func MediaListKey(ownerID uint, kind string) string {
	sum := xxhash.Sum64String(fmt.Sprintf("%d|%s", ownerID, kind))

	return fmt.Sprintf("media-list-%016x", sum)
}

// Get 泛型获取缓存值.
func Get[T any](ctx context.Context, c *Cache, key string) (T, error) {
	var zero T

	data, err := c.kvStore.Get(ctx, key)
	if err != nil {
		return zero, err
	}

	var value T
	if err := sonic.Unmarshal(data, &value); err != nil {
		return zero, fmt.Errorf("failed to unmarshal cache value: %w", err)
	}

	return value, nil
}

// Set 泛型设置缓存值.
func Set[T any](ctx context.Context, c *Cache, key string, value T, ttl time.Duration) error {
	data, err := sonic.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}

	return c.kvStore.Set(ctx, key, data, ttl)
}

// Delete 删除缓存键.
func (c *Cache) Delete(ctx context.Context, key string) error {
	return c.kvStore.Delete(ctx, key)
}

// Exists 检查缓存键是否存在.
func (c *Cache) Exists(ctx context.Context, key string) (bool, error) {
	return c.kvStore.Exists(ctx, key)
}

// GetOrSet 获取缓存值，如果不存在则设置.
func GetOrSet[T any](ctx context.Context, c *Cache, key string, getter func() (T, error), ttl time.Duration) (T, error) {
	var zero T

	// 尝试获取
	if value, err := Get[T](ctx, c, key); err == nil {
		return value, nil
	}

	// 获取新值
	value, err := getter()
	if err != nil {
		return zero, err
	}

	// 设置缓存
	if setErr := Set(ctx, c, key, value, ttl); setErr != nil {
		// 缓存失败，但仍返回值
		return value, nil
	}

	return value, nil
}

// InvalidateOwner 使某藏品的列表缓存全部失效（含按种类的键）.
func (c *Cache) InvalidateOwner(ctx context.Context, ownerID uint, kinds ...string) {
	_ = c.Delete(ctx, MediaListKey(ownerID, ""))

	for _, k := range kinds {
		_ = c.Delete(ctx, MediaListKey(ownerID, k))
	}
}

// Clear 清空缓存（如果支持）.
func (c *Cache) Clear(ctx context.Context) error {
	keys, err := c.kvStore.Keys(ctx, "*")
	if err != nil {
		return err
	}

	for _, key := range keys {
		// 部分KV存储可能不支持删除所有键
		if delErr := c.kvStore.Delete(ctx, key); delErr != nil {
			return delErr
		}
	}

	return nil
}
