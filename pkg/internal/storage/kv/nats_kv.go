package kv

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/yeisme/relicvault/pkg/configs"
)

// NATSKV 基于 NATS JetStream KV bucket 的实现；和 MQ 共用一套 NATS
// 部署时列表缓存不需要额外组件. TTL 经信封惰性过期.
type NATSKV struct {
	conn   *nats.Conn
	kv     nats.KeyValue
	bucket string
}

// NewNATSKV 连接 NATS 并确保 bucket 存在.
func NewNATSKV(_ context.Context, cfg *configs.KVConfig) (KVStore, error) {
	natsCfg := cfg.NATS

	opts := []nats.Option{}
	if natsCfg.User != "" {
		opts = append(opts, nats.UserInfo(natsCfg.User, natsCfg.Password))
	}

	nc, err := nats.Connect(natsCfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("nats connect %s: %w", natsCfg.URL, err)
	}

	js, err := nc.JetStream()
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("jetstream context: %w", err)
	}

	bucket, err := js.CreateKeyValue(&nats.KeyValueConfig{Bucket: natsCfg.Bucket})
	if err != nil {
		// bucket 已存在时转为获取
		bucket, err = js.KeyValue(natsCfg.Bucket)
		if err != nil {
			nc.Close()
			return nil, fmt.Errorf("open kv bucket %q: %w", natsCfg.Bucket, err)
		}
	}

	return &NATSKV{conn: nc, kv: bucket, bucket: natsCfg.Bucket}, nil
}

// fetch 读取条目并处理信封过期；未命中或已过期返回 ok=false.
func (n *NATSKV) fetch(key string) ([]byte, bool, error) {
	entry, err := n.kv.Get(key)
	if errors.Is(err, nats.ErrKeyNotFound) {
		return nil, false, nil
	}

	if err != nil {
		return nil, false, fmt.Errorf("nats kv get %q: %w", key, err)
	}

	val, expired, err := unwrapTTL(entry.Value(), time.Now())
	if err != nil {
		return nil, false, err
	}

	if expired {
		_ = n.kv.Delete(key)
		return nil, false, nil
	}

	return val, true, nil
}

// Get 获取键的值.
func (n *NATSKV) Get(ctx context.Context, key string) ([]byte, error) {
	val, ok, err := n.fetch(key)
	if err != nil {
		return nil, err
	}

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	}

	return val, nil
}

// Set 设置键的值.
func (n *NATSKV) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	encoded, err := wrapTTL(value, ttl)
	if err != nil {
		return err
	}

	if _, err := n.kv.Put(key, encoded); err != nil {
		return fmt.Errorf("nats kv put %q: %w", key, err)
	}

	return nil
}

// Delete 删除键.
func (n *NATSKV) Delete(ctx context.Context, key string) error {
	if err := n.kv.Delete(key); err != nil {
		return fmt.Errorf("nats kv delete %q: %w", key, err)
	}

	return nil
}

// Exists 检查键是否存在（过期视为不存在）.
func (n *NATSKV) Exists(ctx context.Context, key string) (bool, error) {
	_, ok, err := n.fetch(key)

	return ok, err
}

// Keys 枚举 bucket 的键；pattern 非空时精确匹配，同时惰性清理过期条目.
func (n *NATSKV) Keys(ctx context.Context, pattern string) ([]string, error) {
	keys, err := n.kv.Keys()
	if err != nil {
		return nil, fmt.Errorf("nats kv keys: %w", err)
	}

	out := make([]string, 0, len(keys))

	for _, key := range keys {
		if pattern != "" && key != pattern {
			continue
		}

		if _, ok, ferr := n.fetch(key); ferr == nil && !ok {
			continue
		}

		out = append(out, key)
	}

	return out, nil
}

// Close 关闭 NATS 连接.
func (n *NATSKV) Close() error {
	n.conn.Close()
	return nil
}

func init() {
	RegisterKVFactory(KVTypeNATS, NewNATSKV)
}
