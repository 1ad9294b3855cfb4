package ratelimiter

import (
	"context"
	"sync"
	"time"

	"github.com/quirkauto/advisorcopilot/pkg/cache"
)

// DefaultMaxKeys bounds the number of buckets a MemoryStore tracks.
const DefaultMaxKeys = 10000

type bucket struct {
	tokens     int
	lastRefill time.Time
}

// MemoryStore keeps buckets in a bounded LRU. Buckets idle for longer than
// the idle TTL are dropped; a dropped bucket comes back full.
type MemoryStore struct {
	mu      sync.Mutex
	buckets *cache.LRUCache[string, *bucket]
	now     func() time.Time
}

// MemoryOption configures a MemoryStore.
type MemoryOption func(*memoryOptions)

type memoryOptions struct {
	maxKeys int
	idleTTL time.Duration
	now     func() time.Time
}

// WithMaxKeys caps the number of tracked keys. Least recently used buckets
// are evicted first.
func WithMaxKeys(n int) MemoryOption {
	return func(o *memoryOptions) {
		if n > 0 {
			o.maxKeys = n
		}
	}
}

// WithIdleTTL sets how long an untouched bucket is kept. It should be at
// least the time a bucket needs to refill.
func WithIdleTTL(d time.Duration) MemoryOption {
	return func(o *memoryOptions) {
		if d > 0 {
			o.idleTTL = d
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) MemoryOption {
	return func(o *memoryOptions) {
		if now != nil {
			o.now = now
		}
	}
}

// NewMemoryStore creates an in-process store.
func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	o := memoryOptions{
		maxKeys: DefaultMaxKeys,
		idleTTL: time.Hour,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &MemoryStore{
		buckets: cache.NewLRUCache[string, *bucket](o.maxKeys, cache.WithTTL(o.idleTTL), cache.WithClock(o.now)),
		now:     o.now,
	}
}

func (s *MemoryStore) ConsumeTokens(_ context.Context, key string, n int, cfg Config) (int, time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	b, _ := s.buckets.PutIfAbsent(key, &bucket{tokens: cfg.Capacity, lastRefill: now})

	// Cap the interval count so a long idle bucket cannot overflow.
	maxIntervals := int64(cfg.Capacity/cfg.RefillRate + 1)
	intervals := int(min(int64(now.Sub(b.lastRefill)/cfg.RefillInterval), maxIntervals))
	if intervals > 0 {
		b.tokens = min(b.tokens+intervals*cfg.RefillRate, cfg.Capacity)
		b.lastRefill = now
	}

	remaining := b.tokens - n
	if remaining >= 0 {
		b.tokens = remaining
	}
	// Put refreshes the idle deadline.
	s.buckets.Put(key, b)

	return remaining, b.lastRefill.Add(cfg.RefillInterval), nil
}

func (s *MemoryStore) Reset(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buckets.Remove(key)
	return nil
}

// Len returns the number of tracked buckets.
func (s *MemoryStore) Len() int {
	return s.buckets.Len()
}
