package kv

import (
	"bytes"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
)

// 部分后端（memory、groupcache、NATS KV 的旧服务端）没有原生过期能力，
// 写入时把值包进带截止时间的信封，读取时惰性判断并删除.
const ttlEnvelopePrefix = "RVTTL1:"

type ttlEnvelope struct {
	V []byte `json:"v"`
	E int64  `json:"e,omitempty"` // unix 秒；0 表示永不过期
}

// wrapTTL 在 ttl>0 时包装值，否则原样返回.
func wrapTTL(value []byte, ttl time.Duration) ([]byte, error) {
	if ttl <= 0 {
		return value, nil
	}

	env := ttlEnvelope{V: value, E: time.Now().Add(ttl).Unix()}

	b, err := sonic.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("marshal ttl envelope: %w", err)
	}

	return append([]byte(ttlEnvelopePrefix), b...), nil
}

// unwrapTTL 识别信封并判断过期；未包装的值原样返回.
func unwrapTTL(b []byte, now time.Time) (value []byte, expired bool, err error) {
	if !bytes.HasPrefix(b, []byte(ttlEnvelopePrefix)) {
		return b, false, nil
	}

	var env ttlEnvelope
	if err := sonic.Unmarshal(b[len(ttlEnvelopePrefix):], &env); err != nil {
		return nil, false, fmt.Errorf("unmarshal ttl envelope: %w", err)
	}

	if env.E > 0 && now.Unix() >= env.E {
		return nil, true, nil
	}

	return env.V, false, nil
}
