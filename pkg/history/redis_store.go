package history

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// DefaultKeyPrefix namespaces history lists in Redis.
	DefaultKeyPrefix = "copilot:history:"
	// DefaultTTL is how long an idle session's history is kept.
	DefaultTTL = 24 * time.Hour
)

// RedisClient is the subset of redis.Cmdable used by RedisStore.
type RedisClient interface {
	LPush(ctx context.Context, key string, values ...any) *redis.IntCmd
	LTrim(ctx context.Context, key string, start, stop int64) *redis.StatusCmd
	LRange(ctx context.Context, key string, start, stop int64) *redis.StringSliceCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisStore keeps each session's history in a Redis list, newest at the head.
type RedisStore struct {
	client RedisClient
	size   int
	prefix string
	ttl    time.Duration
}

// RedisOption configures a RedisStore.
type RedisOption func(*RedisStore)

// WithRedisSize sets the number of entries kept per session. Non-positive values are ignored.
func WithRedisSize(n int) RedisOption {
	return func(s *RedisStore) {
		if n > 0 {
			s.size = n
		}
	}
}

// WithKeyPrefix overrides DefaultKeyPrefix.
func WithKeyPrefix(prefix string) RedisOption {
	return func(s *RedisStore) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// WithTTL sets the idle expiry of a session list. Zero disables expiry.
func WithTTL(ttl time.Duration) RedisOption {
	return func(s *RedisStore) {
		if ttl >= 0 {
			s.ttl = ttl
		}
	}
}

// NewRedisStore creates a Redis-backed history store. Any go-redis client
// (*redis.Client, *redis.ClusterClient, redis.UniversalClient) can be passed.
func NewRedisStore(client RedisClient, opts ...RedisOption) *RedisStore {
	s := &RedisStore{
		client: client,
		size:   DefaultSize,
		prefix: DefaultKeyPrefix,
		ttl:    DefaultTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStore) Append(ctx context.Context, sessionID string, e Entry) error {
	if sessionID == "" {
		return ErrEmptySessionID
	}
	payload, err := json.Marshal(e)
	if err != nil {
		return errors.Join(ErrStoreFailed, err)
	}

	key := s.key(sessionID)
	if err := s.client.LPush(ctx, key, payload).Err(); err != nil {
		return errors.Join(ErrStoreFailed, err)
	}
	if err := s.client.LTrim(ctx, key, 0, int64(s.size-1)).Err(); err != nil {
		return errors.Join(ErrStoreFailed, err)
	}
	if s.ttl > 0 {
		if err := s.client.Expire(ctx, key, s.ttl).Err(); err != nil {
			return errors.Join(ErrStoreFailed, err)
		}
	}
	return nil
}

func (s *RedisStore) List(ctx context.Context, sessionID string) ([]Entry, error) {
	if sessionID == "" {
		return nil, ErrEmptySessionID
	}
	raw, err := s.client.LRange(ctx, s.key(sessionID), 0, int64(s.size-1)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, errors.Join(ErrStoreFailed, err)
	}

	entries := make([]Entry, 0, len(raw))
	for _, item := range raw {
		var e Entry
		if err := json.Unmarshal([]byte(item), &e); err != nil {
			return nil, errors.Join(ErrDecodeEntry, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func (s *RedisStore) Clear(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return ErrEmptySessionID
	}
	if err := s.client.Del(ctx, s.key(sessionID)).Err(); err != nil {
		return errors.Join(ErrStoreFailed, err)
	}
	return nil
}

func (s *RedisStore) key(sessionID string) string {
	return s.prefix + sessionID
}
