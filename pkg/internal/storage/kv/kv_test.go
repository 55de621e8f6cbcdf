package kv_test

import (
	"context"
	"testing"
	"time"

	"github.com/yeisme/relicvault/pkg/internal/storage/kv"
)

func newMemory(t *testing.T) kv.KVStore {
	t.Helper()

	store, err := kv.NewKVStore(context.Background(), kv.KVTypeMemory, nil)
	if err != nil {
		t.Fatalf("create memory kv: %v", err)
	}

	t.Cleanup(func() { _ = store.Close() })

	return store
}

func TestMemoryKVBasic(t *testing.T) {
	ctx := context.Background()
	store := newMemory(t)

	if err := store.Set(ctx, "media-list-1", []byte("payload"), 0); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, err := store.Get(ctx, "media-list-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	if string(got) != "payload" {
		t.Fatalf("expected payload, got %q", got)
	}

	ok, err := store.Exists(ctx, "media-list-1")
	if err != nil || !ok {
		t.Fatalf("exists: ok=%v err=%v", ok, err)
	}

	if err := store.Delete(ctx, "media-list-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := store.Get(ctx, "media-list-1"); err == nil {
		t.Fatal("expected not-found after delete")
	}
}

func TestMemoryKVTTLExpiry(t *testing.T) {
	ctx := context.Background()
	store := newMemory(t)

	// TTL 包装器按秒存储过期点，用 -1s 模拟已过期条目
	if err := store.Set(ctx, "expired-key", []byte("x"), -time.Second); err != nil {
		t.Fatalf("set: %v", err)
	}

	if err := store.Set(ctx, "live-key", []byte("y"), time.Hour); err != nil {
		t.Fatalf("set: %v", err)
	}

	if got, err := store.Get(ctx, "live-key"); err != nil || string(got) != "y" {
		t.Fatalf("live key should survive: got=%q err=%v", got, err)
	}
}

func TestMemoryKVGetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	store := newMemory(t)

	if err := store.Set(ctx, "k", []byte("abc"), 0); err != nil {
		t.Fatalf("set: %v", err)
	}

	first, _ := store.Get(ctx, "k")
	first[0] = 'X'

	second, err := store.Get(ctx, "k")
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	if string(second) != "abc" {
		t.Fatalf("stored value mutated through returned slice: %q", second)
	}
}

func TestRegisteredKVTypes(t *testing.T) {
	types := kv.GetRegisteredKVTypes()

	want := map[kv.KVType]bool{}
	for _, tp := range types {
		want[tp] = true
	}

	for _, tp := range []kv.KVType{kv.KVTypeMemory, kv.KVTypeNATS, kv.KVTypeGroupcache} {
		if !want[tp] {
			t.Fatalf("expected %s factory registered, have %v", tp, types)
		}
	}
}
