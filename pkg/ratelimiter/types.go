package ratelimiter

import (
	"context"
	"time"
)

// Config is the token bucket shape, read from RATE_LIMIT_* variables.
type Config struct {
	Enabled bool `env:"RATE_LIMIT_ENABLED" envDefault:"true"`
	// Capacity is the burst size.
	Capacity int `env:"RATE_LIMIT_BURST" envDefault:"30"`
	// RefillRate tokens are added every RefillInterval.
	RefillRate     int           `env:"RATE_LIMIT_REFILL" envDefault:"1"`
	RefillInterval time.Duration `env:"RATE_LIMIT_INTERVAL" envDefault:"2s"`
}

func (c Config) validate() error {
	switch {
	case c.Capacity <= 0:
		return errorf(ErrInvalidConfig, "capacity must be positive, got %d", c.Capacity)
	case c.RefillRate <= 0:
		return errorf(ErrInvalidConfig, "refill rate must be positive, got %d", c.RefillRate)
	case c.RefillInterval <= 0:
		return errorf(ErrInvalidConfig, "refill interval must be positive, got %v", c.RefillInterval)
	}
	return nil
}

// fullAfter is how long an untouched bucket takes to refill completely.
func (c Config) fullAfter() time.Duration {
	return time.Duration(c.Capacity/c.RefillRate+1) * c.RefillInterval
}

// Result is the outcome of a rate limit check.
type Result struct {
	Limit int
	// Remaining is negative when the request was denied.
	Remaining int
	// ResetAt is when the next tokens are added.
	ResetAt time.Time
}

// Allowed reports whether the request may proceed.
func (r *Result) Allowed() bool {
	return r.Remaining >= 0
}

// RetryAfter returns how long to wait, measured from now. Zero if allowed.
func (r *Result) RetryAfter(now time.Time) time.Duration {
	if r.Allowed() || !r.ResetAt.After(now) {
		return 0
	}
	return r.ResetAt.Sub(now)
}

// Store keeps bucket state.
type Store interface {
	// ConsumeTokens takes n tokens from key's bucket when enough are left.
	// A negative remaining count means the request is denied and nothing
	// was taken. n == 0 only refreshes the bucket.
	ConsumeTokens(ctx context.Context, key string, n int, cfg Config) (remaining int, resetAt time.Time, err error)
	// Reset forgets key's bucket.
	Reset(ctx context.Context, key string) error
}
