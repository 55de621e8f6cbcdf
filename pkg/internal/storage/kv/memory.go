package kv

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/yeisme/relicvault/pkg/configs"
)

// MemoryKV 进程内 KV，开发与单机部署用；TTL 经信封惰性过期.
type MemoryKV struct {
	data sync.Map
}

// NewMemoryKV 创建内存 KV 实例，无需配置.
func NewMemoryKV(_ context.Context, _ *configs.KVConfig) (KVStore, error) {
	return &MemoryKV{}, nil
}

// load 取出条目并处理过期，返回未包装的值.
func (m *MemoryKV) load(key string) ([]byte, bool, error) {
	raw, ok := m.data.Load(key)
	if !ok {
		return nil, false, nil
	}

	data, ok := raw.([]byte)
	if !ok {
		return nil, false, fmt.Errorf("unexpected value type for key %q", key)
	}

	val, expired, err := unwrapTTL(data, time.Now())
	if err != nil {
		return nil, false, err
	}

	if expired {
		m.data.Delete(key)
		return nil, false, nil
	}

	return val, true, nil
}

// Get 获取键的值，返回副本.
func (m *MemoryKV) Get(ctx context.Context, key string) ([]byte, error) {
	val, ok, err := m.load(key)
	if err != nil {
		return nil, err
	}

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	}

	out := make([]byte, len(val))
	copy(out, val)

	return out, nil
}

// Set 设置键的值，存入副本避免调用方后续修改.
func (m *MemoryKV) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	encoded, err := wrapTTL(value, ttl)
	if err != nil {
		return err
	}

	data := make([]byte, len(encoded))
	copy(data, encoded)

	m.data.Store(key, data)

	return nil
}

// Delete 删除键，键不存在时静默成功.
func (m *MemoryKV) Delete(ctx context.Context, key string) error {
	m.data.Delete(key)
	return nil
}

// Exists 检查键是否存在（过期视为不存在）.
func (m *MemoryKV) Exists(ctx context.Context, key string) (bool, error) {
	_, ok, err := m.load(key)

	return ok, err
}

// Keys 返回所有键；pattern 非空时只做精确匹配.
func (m *MemoryKV) Keys(ctx context.Context, pattern string) ([]string, error) {
	keys := make([]string, 0)

	m.data.Range(func(key, _ any) bool {
		k, ok := key.(string)
		if !ok {
			return true
		}

		if pattern == "" || k == pattern {
			keys = append(keys, k)
		}

		return true
	})

	return keys, nil
}

// Close 内存实现无需清理.
func (m *MemoryKV) Close() error {
	return nil
}

func init() {
	RegisterKVFactory(KVTypeMemory, NewMemoryKV)
}
