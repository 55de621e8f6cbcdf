package cache_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/yeisme/relicvault/pkg/cache"
)

// mediaItem 测试用的媒体列表条目.
type mediaItem struct {
	ID   string `json:"id"`
	Kind string `json:"kind"`
	URL  string `json:"url"`
}

// mockKVStore 模拟KV存储实现.
type mockKVStore struct {
	data map[string][]byte
}

func newMockKVStore() *mockKVStore {
	return &mockKVStore{
		data: make(map[string][]byte),
	}
}

func (m *mockKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	if value, exists := m.data[key]; exists {
		return value, nil
	}

	return nil, fmt.Errorf("key not found")
}

func (m *mockKVStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.data[key] = value
	return nil
}

func (m *mockKVStore) Delete(ctx context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func (m *mockKVStore) Exists(ctx context.Context, key string) (bool, error) {
	_, exists := m.data[key]
	return exists, nil
}

func (m *mockKVStore) Keys(ctx context.Context, pattern string) ([]string, error) {
	keys := make([]string, 0, len(m.data))
	for key := range m.data {
		keys = append(keys, key)
	}

	return keys, nil
}

func (m *mockKVStore) Close() error {
	return nil
}

// TestMediaListKey 测试列表缓存键的构造.
func TestMediaListKey(t *testing.T) {
	k1 := cache.MediaListKey(42, "photo")
	k2 := cache.MediaListKey(42, "photo")
	k3 := cache.MediaListKey(42, "video")
	k4 := cache.MediaListKey(43, "photo")

	if k1 != k2 {
		t.Errorf("same inputs should produce same key: %s vs %s", k1, k2)
	}

	if k1 == k3 || k1 == k4 {
		t.Error("different inputs should produce different keys")
	}

	if !strings.HasPrefix(k1, "media-list-") {
		t.Errorf("unexpected key format: %s", k1)
	}
}

// TestCacheSetGet 测试 Set/Get 往返.
func TestCacheSetGet(t *testing.T) {
	mockStore := newMockKVStore()
	c := cache.NewCache(mockStore)
	ctx := context.Background()

	// 获取不存在的键
	if _, err := cache.Get[[]mediaItem](ctx, c, "nonexistent"); err == nil {
		t.Error("Expected error for nonexistent key")
	}

	items := []mediaItem{
		{ID: "a1", Kind: "photo", URL: "/backend/protected_media/media/synced/x/a1.jpg"},
		{ID: "a2", Kind: "photo", URL: "/backend/protected_media/media/synced/x/a2.jpg"},
	}

	key := cache.MediaListKey(7, "photo")
	if err := cache.Set(ctx, c, key, items, 0); err != nil {
		t.Fatalf("Failed to set cache: %v", err)
	}

	got, err := cache.Get[[]mediaItem](ctx, c, key)
	if err != nil {
		t.Fatalf("Failed to get cache: %v", err)
	}

	if len(got) != len(items) || got[0].ID != "a1" || got[1].URL != items[1].URL {
		t.Errorf("Retrieved items %+v do not match original %+v", got, items)
	}
}

// TestCacheDeleteExists 测试 Delete 与 Exists.
func TestCacheDeleteExists(t *testing.T) {
	mockStore := newMockKVStore()
	c := cache.NewCache(mockStore)
	ctx := context.Background()

	key := cache.MediaListKey(9, "")
	if err := cache.Set(ctx, c, key, []mediaItem{{ID: "z"}}, 0); err != nil {
		t.Fatalf("Failed to set cache: %v", err)
	}

	exists, err := c.Exists(ctx, key)
	if err != nil || !exists {
		t.Fatalf("Key should exist before deletion: ok=%v err=%v", exists, err)
	}

	if err := c.Delete(ctx, key); err != nil {
		t.Fatalf("Failed to delete cache: %v", err)
	}

	exists, err = c.Exists(ctx, key)
	if err != nil {
		t.Fatalf("Failed to check existence after deletion: %v", err)
	}

	if exists {
		t.Error("Key should not exist after deletion")
	}
}

// TestGetOrSet 测试 GetOrSet 方法.
func TestGetOrSet(t *testing.T) {
	mockStore := newMockKVStore()
	c := cache.NewCache(mockStore)
	ctx := context.Background()

	callCount := 0
	getter := func() ([]mediaItem, error) {
		callCount++
		return []mediaItem{{ID: "g1", Kind: "conservation"}}, nil
	}

	key := cache.MediaListKey(11, "conservation")

	// 第一次调用，应该调用getter
	first, err := cache.GetOrSet(ctx, c, key, getter, 0)
	if err != nil {
		t.Fatalf("Failed to get or set: %v", err)
	}

	if callCount != 1 {
		t.Errorf("Expected getter to be called once, got %d", callCount)
	}

	// 第二次调用，应该从缓存获取
	second, err := cache.GetOrSet(ctx, c, key, getter, 0)
	if err != nil {
		t.Fatalf("Failed to get or set: %v", err)
	}

	if callCount != 1 {
		t.Errorf("Expected getter to be called only once, got %d", callCount)
	}

	if len(first) != len(second) || first[0].ID != second[0].ID {
		t.Errorf("Results don't match: %+v vs %+v", first, second)
	}
}

// TestGetOrSetGetterError 测试 getter 返回错误的情况.
func TestGetOrSetGetterError(t *testing.T) {
	mockStore := newMockKVStore()
	c := cache.NewCache(mockStore)
	ctx := context.Background()

	getter := func() ([]mediaItem, error) {
		return nil, errors.New("getter error")
	}

	_, err := cache.GetOrSet(ctx, c, "error-key", getter, 0)
	if err == nil {
		t.Error("Expected error from getter")
	}
}

// TestInvalidateOwner 测试按藏品失效列表缓存.
func TestInvalidateOwner(t *testing.T) {
	mockStore := newMockKVStore()
	c := cache.NewCache(mockStore)
	ctx := context.Background()

	all := cache.MediaListKey(5, "")
	photo := cache.MediaListKey(5, "photo")
	other := cache.MediaListKey(6, "photo")

	for _, k := range []string{all, photo, other} {
		if err := cache.Set(ctx, c, k, []mediaItem{{ID: "x"}}, 0); err != nil {
			t.Fatalf("Failed to set cache: %v", err)
		}
	}

	c.InvalidateOwner(ctx, 5, "photo")

	for _, k := range []string{all, photo} {
		if exists, _ := c.Exists(ctx, k); exists {
			t.Errorf("key %s should be invalidated", k)
		}
	}

	if exists, _ := c.Exists(ctx, other); !exists {
		t.Error("other owner's cache should survive invalidation")
	}
}

// TestClear 测试 Clear 方法.
func TestClear(t *testing.T) {
	mockStore := newMockKVStore()
	c := cache.NewCache(mockStore)
	ctx := context.Background()

	for i := range 3 {
		key := cache.MediaListKey(uint(i), "photo")
		if err := cache.Set(ctx, c, key, []mediaItem{{ID: fmt.Sprintf("m%d", i)}}, 0); err != nil {
			t.Fatalf("Failed to set cache: %v", err)
		}
	}

	if len(mockStore.data) != 3 {
		t.Errorf("Expected 3 items, got %d", len(mockStore.data))
	}

	if err := c.Clear(ctx); err != nil {
		t.Fatalf("Failed to clear cache: %v", err)
	}

	if len(mockStore.data) != 0 {
		t.Errorf("Expected 0 items after clear, got %d", len(mockStore.data))
	}
}
