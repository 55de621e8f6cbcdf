package kv

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/golang/groupcache"

	"github.com/yeisme/relicvault/pkg/configs"
)

// GroupcacheKV 把 groupcache 作为只读热点层挂在本地写入表之上，
// 多实例部署时列表缓存可以从对等节点取热数据.
type GroupcacheKV struct {
	group *groupcache.Group
	peers *groupcache.HTTPPool
	local map[string][]byte
	mu    sync.RWMutex
}

// originGetter 以本地写入表为数据源实现 groupcache.Getter.
type originGetter struct {
	kv *GroupcacheKV
}

func (o *originGetter) Get(_ context.Context, key string, dest groupcache.Sink) error {
	o.kv.mu.RLock()
	value, ok := o.kv.local[key]
	o.kv.mu.RUnlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	}

	if err := dest.SetBytes(value); err != nil {
		return fmt.Errorf("sink set bytes: %w", err)
	}

	return nil
}

// NewGroupcacheKV 创建 groupcache KV；配置了 peers 时加入 HTTP 池.
func NewGroupcacheKV(_ context.Context, cfg *configs.KVConfig) (KVStore, error) {
	gcCfg := cfg.Groupcache

	store := &GroupcacheKV{local: make(map[string][]byte)}
	store.group = groupcache.NewGroup(gcCfg.Name, gcCfg.CacheBytes, &originGetter{kv: store})

	if len(gcCfg.Peers) > 0 {
		store.peers = groupcache.NewHTTPPoolOpts(gcCfg.Self, &groupcache.HTTPPoolOptions{})
		store.peers.Set(gcCfg.Peers...)
	}

	return store, nil
}

// Get 经缓存组读取；过期条目触发本地删除后按未命中处理.
func (g *GroupcacheKV) Get(ctx context.Context, key string) ([]byte, error) {
	var data []byte

	if err := g.group.Get(ctx, key, groupcache.AllocatingByteSliceSink(&data)); err != nil {
		return nil, err
	}

	val, expired, err := unwrapTTL(data, time.Now())
	if err != nil {
		return nil, err
	}

	if expired {
		_ = g.Delete(ctx, key)

		return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	}

	out := make([]byte, len(val))
	copy(out, val)

	return out, nil
}

// Set 写入本地表；groupcache 自身不支持主动失效，旧值靠 TTL 过期.
func (g *GroupcacheKV) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	encoded, err := wrapTTL(value, ttl)
	if err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.local[key] = make([]byte, len(encoded))
	copy(g.local[key], encoded)

	return nil
}

// Delete 从本地表删除.
func (g *GroupcacheKV) Delete(ctx context.Context, key string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	delete(g.local, key)

	return nil
}

// Exists 只看本地表.
func (g *GroupcacheKV) Exists(ctx context.Context, key string) (bool, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	_, ok := g.local[key]

	return ok, nil
}

// Keys 返回本地表的键；pattern 非空时精确匹配.
func (g *GroupcacheKV) Keys(ctx context.Context, pattern string) ([]string, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	keys := make([]string, 0, len(g.local))
	for key := range g.local {
		if pattern == "" || key == pattern {
			keys = append(keys, key)
		}
	}

	return keys, nil
}

// Close groupcache 没有显式关闭入口.
func (g *GroupcacheKV) Close() error {
	return nil
}

func init() {
	RegisterKVFactory(KVTypeGroupcache, NewGroupcacheKV)
}
