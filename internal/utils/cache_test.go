package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGlobalCacheRoundTrip(t *testing.T) {
	InitCache()

	CacheSet("k", "v", time.Minute)
	got, ok := CacheGet("k")
	assert.True(t, ok)
	assert.Equal(t, "v", got)

	CacheClear()
	_, ok = CacheGet("k")
	assert.False(t, ok)
}

func TestGlobalCacheNilSafe(t *testing.T) {
	Cache = nil

	_, ok := CacheGet("k")
	assert.False(t, ok)

	// 未初始化时写入和清空都是 no-op，不会崩
	CacheSet("k", "v", time.Minute)
	CacheClear()

	_, ok = CacheGet("k")
	assert.False(t, ok)
}

func TestSearchCacheExpiry(t *testing.T) {
	c := NewSearchCache[string](8, 10*time.Millisecond)

	c.Set("q", "result")
	got, ok := c.Get("q")
	assert.True(t, ok)
	assert.Equal(t, "result", got)

	time.Sleep(20 * time.Millisecond)
	_, ok = c.Get("q")
	assert.False(t, ok)
	// 过期条目被顺手清掉
	assert.Equal(t, 0, c.Len())
}

func TestSearchCacheEvictsOldest(t *testing.T) {
	c := NewSearchCache[int](2, time.Minute)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3)

	_, ok := c.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 2, c.Len())
}

func TestSearchCacheClear(t *testing.T) {
	c := NewSearchCache[int](8, time.Minute)
	c.Set("a", 1)
	c.Clear()
	assert.Equal(t, 0, c.Len())
}
