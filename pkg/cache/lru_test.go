package cache_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quirkauto/advisorcopilot/pkg/cache"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestLRUCache_Basic(t *testing.T) {
	t.Run("put and get", func(t *testing.T) {
		c := cache.NewLRUCache[string, string](3)

		c.Put("68212345AB", "Latch Clip - Trunk")
		c.Put("82215274", "Cargo Liner, Rear")

		val, ok := c.Get("68212345AB")
		assert.True(t, ok)
		assert.Equal(t, "Latch Clip - Trunk", val)
		assert.Equal(t, 2, c.Len())
	})

	t.Run("get missing", func(t *testing.T) {
		c := cache.NewLRUCache[string, int](3)

		val, ok := c.Get("missing")
		assert.False(t, ok)
		assert.Zero(t, val)
	})

	t.Run("update existing returns previous value", func(t *testing.T) {
		c := cache.NewLRUCache[string, int](3)

		c.Put("a", 1)
		old, existed := c.Put("a", 2)
		assert.True(t, existed)
		assert.Equal(t, 1, old)

		val, _ := c.Get("a")
		assert.Equal(t, 2, val)
		assert.Equal(t, 1, c.Len())
	})
}

func TestLRUCache_Eviction(t *testing.T) {
	t.Run("evicts least recently used", func(t *testing.T) {
		c := cache.NewLRUCache[string, int](3)
		c.Put("a", 1)
		c.Put("b", 2)
		c.Put("c", 3)
		c.Put("d", 4)

		_, ok := c.Get("a")
		assert.False(t, ok, "a should have been evicted")
		assert.Equal(t, 3, c.Len())
	})

	t.Run("get refreshes recency", func(t *testing.T) {
		c := cache.NewLRUCache[string, int](3)
		c.Put("a", 1)
		c.Put("b", 2)
		c.Put("c", 3)

		c.Get("a")
		c.Put("d", 4)

		_, ok := c.Get("b")
		assert.False(t, ok, "b should have been evicted")
		_, ok = c.Get("a")
		assert.True(t, ok)
	})
}

func TestLRUCache_PutIfAbsent(t *testing.T) {
	c := cache.NewLRUCache[string, *int](2)

	first := new(int)
	got, existed := c.PutIfAbsent("session", first)
	assert.False(t, existed)
	assert.Same(t, first, got)

	second := new(int)
	got, existed = c.PutIfAbsent("session", second)
	assert.True(t, existed)
	assert.Same(t, first, got, "existing entry wins")
}

func TestLRUCache_TTL(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := cache.NewLRUCache[string, int](4, cache.WithTTL(time.Minute), cache.WithClock(clock.Now))

	c.Put("a", 1)
	clock.Advance(30 * time.Second)
	val, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, val)

	clock.Advance(30 * time.Second)
	_, ok = c.Get("a")
	assert.False(t, ok, "entry expires once the ttl has elapsed")
	assert.Equal(t, 0, c.Len(), "expired entry is dropped on access")

	c.Put("b", 2)
	clock.Advance(45 * time.Second)
	c.Put("b", 3)
	clock.Advance(45 * time.Second)
	val, ok = c.Get("b")
	require.True(t, ok, "writes push the deadline forward")
	assert.Equal(t, 3, val)

	c.Put("c", 1)
	clock.Advance(time.Minute)
	got, existed := c.PutIfAbsent("c", 5)
	assert.False(t, existed, "expired entries count as absent")
	assert.Equal(t, 5, got)
}

func TestLRUCache_RemoveAndClear(t *testing.T) {
	c := cache.NewLRUCache[string, int](3)
	c.Put("a", 1)
	c.Put("b", 2)

	val, ok := c.Remove("a")
	assert.True(t, ok)
	assert.Equal(t, 1, val)

	_, ok = c.Remove("a")
	assert.False(t, ok)

	c.Clear()
	assert.Equal(t, 0, c.Len())
	_, ok = c.Get("b")
	assert.False(t, ok)
}

func TestLRUCache_EdgeCases(t *testing.T) {
	t.Run("capacity of 1", func(t *testing.T) {
		c := cache.NewLRUCache[string, int](1)
		c.Put("a", 1)
		c.Put("b", 2)

		_, ok := c.Get("a")
		assert.False(t, ok)
		val, ok := c.Get("b")
		assert.True(t, ok)
		assert.Equal(t, 2, val)
	})

	t.Run("panic on zero capacity", func(t *testing.T) {
		assert.Panics(t, func() {
			cache.NewLRUCache[string, int](0)
		})
	})
}

func TestLRUCache_Concurrent(t *testing.T) {
	c := cache.NewLRUCache[int, int](100)

	var wg sync.WaitGroup
	for i := range 100 {
		wg.Add(3)
		go func(v int) { defer wg.Done(); c.Put(v, v*2) }(i)
		go func(v int) { defer wg.Done(); c.Get(v) }(i)
		go func(v int) { defer wg.Done(); c.PutIfAbsent(v, v) }(i)
	}
	wg.Wait()

	assert.LessOrEqual(t, c.Len(), 100)
}

func BenchmarkLRUCache_Mixed(b *testing.B) {
	c := cache.NewLRUCache[int, int](1000)

	b.ResetTimer()
	for i := range b.N {
		if i%2 == 0 {
			c.Put(i%2000, i)
		} else {
			c.Get(i % 2000)
		}
	}
}
