package ratelimiter

import (
	"context"
	"errors"
	"fmt"
)

// Limiter is a token bucket limiter over a Store.
type Limiter struct {
	store  Store
	config Config
}

// New creates a Limiter. Config.Enabled is not checked here; callers decide
// whether to install the limiter at all.
func New(store Store, cfg Config) (*Limiter, error) {
	if store == nil {
		return nil, errorf(ErrInvalidConfig, "store is required")
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Limiter{store: store, config: cfg}, nil
}

// Config returns the bucket configuration.
func (l *Limiter) Config() Config { return l.config }

// Allow takes one token for key.
func (l *Limiter) Allow(ctx context.Context, key string) (*Result, error) {
	return l.AllowN(ctx, key, 1)
}

// AllowN takes n tokens for key.
func (l *Limiter) AllowN(ctx context.Context, key string, n int) (*Result, error) {
	if n <= 0 {
		return nil, errorf(ErrInvalidTokenCount, "must be positive, got %d", n)
	}
	return l.consume(ctx, key, n)
}

// Status reports key's bucket without taking tokens.
func (l *Limiter) Status(ctx context.Context, key string) (*Result, error) {
	return l.consume(ctx, key, 0)
}

// Reset clears key's bucket.
func (l *Limiter) Reset(ctx context.Context, key string) error {
	return l.store.Reset(ctx, key)
}

func (l *Limiter) consume(ctx context.Context, key string, n int) (*Result, error) {
	remaining, resetAt, err := l.store.ConsumeTokens(ctx, key, n, l.config)
	if err != nil {
		if errors.Is(err, ErrStoreUnavailable) {
			return nil, err
		}
		return nil, errors.Join(ErrStoreUnavailable, err)
	}
	return &Result{
		Limit:     l.config.Capacity,
		Remaining: remaining,
		ResetAt:   resetAt,
	}, nil
}

func errorf(kind error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...))
}
