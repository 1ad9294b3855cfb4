package ratelimiter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisPrefix namespaces bucket keys in Redis.
const DefaultRedisPrefix = "copilot:ratelimit:"

// consumeScript refills and takes tokens atomically. Times are unix
// milliseconds. It returns {remaining, last_refill}.
var consumeScript = redis.NewScript(`
local capacity = tonumber(ARGV[1])
local rate = tonumber(ARGV[2])
local interval = tonumber(ARGV[3])
local n = tonumber(ARGV[4])
local now = tonumber(ARGV[5])
local ttl = tonumber(ARGV[6])

local state = redis.call('HMGET', KEYS[1], 'tokens', 'refilled')
local tokens = tonumber(state[1])
local refilled = tonumber(state[2])
if tokens == nil or refilled == nil then
  tokens = capacity
  refilled = now
end

local intervals = math.floor((now - refilled) / interval)
local cap = math.floor(capacity / rate) + 1
if intervals > cap then intervals = cap end
if intervals > 0 then
  tokens = math.min(tokens + intervals * rate, capacity)
  refilled = now
end

local remaining = tokens - n
if remaining >= 0 then tokens = remaining end

redis.call('HSET', KEYS[1], 'tokens', tokens, 'refilled', refilled)
redis.call('PEXPIRE', KEYS[1], ttl)
return {remaining, refilled}
`)

// RedisStore shares buckets between instances through Redis.
type RedisStore struct {
	client redis.Scripter
	prefix string
	now    func() time.Time
}

// RedisOption configures a RedisStore.
type RedisOption func(*RedisStore)

// WithRedisPrefix overrides DefaultRedisPrefix.
func WithRedisPrefix(prefix string) RedisOption {
	return func(s *RedisStore) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// WithRedisClock replaces time.Now. The clock is sent to the script so all
// instances must agree on time.
func WithRedisClock(now func() time.Time) RedisOption {
	return func(s *RedisStore) {
		if now != nil {
			s.now = now
		}
	}
}

// NewRedisStore creates a store on any go-redis client.
func NewRedisStore(client redis.Scripter, opts ...RedisOption) *RedisStore {
	s := &RedisStore{client: client, prefix: DefaultRedisPrefix, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStore) ConsumeTokens(ctx context.Context, key string, n int, cfg Config) (int, time.Time, error) {
	now := s.now()
	out, err := consumeScript.Run(ctx, s.client, []string{s.prefix + key},
		cfg.Capacity,
		cfg.RefillRate,
		cfg.RefillInterval.Milliseconds(),
		n,
		now.UnixMilli(),
		cfg.fullAfter().Milliseconds(),
	).Int64Slice()
	if err != nil {
		return 0, time.Time{}, errors.Join(ErrStoreUnavailable, err)
	}
	if len(out) != 2 {
		return 0, time.Time{}, errors.Join(ErrStoreUnavailable, fmt.Errorf("unexpected script reply %v", out))
	}
	refilled := time.UnixMilli(out[1])
	return int(out[0]), refilled.Add(cfg.RefillInterval), nil
}

// Reset deletes the bucket. The client must also implement Del, as every
// go-redis client does.
func (s *RedisStore) Reset(ctx context.Context, key string) error {
	del, ok := s.client.(interface {
		Del(ctx context.Context, keys ...string) *redis.IntCmd
	})
	if !ok {
		return errors.Join(ErrStoreUnavailable, errors.New("redis client cannot delete keys"))
	}
	if err := del.Del(ctx, s.prefix+key).Err(); err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}
