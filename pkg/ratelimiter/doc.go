// Package ratelimiter throttles lookups with a token bucket per key.
//
// A bucket holds up to Capacity tokens and gains RefillRate tokens every
// RefillInterval. Each request takes one token; a request that finds too few
// tokens is denied without taking any.
//
// Buckets live in a MemoryStore for a single instance or in a RedisStore
// when several instances share limits:
//
//	store := ratelimiter.NewMemoryStore()
//	limiter, err := ratelimiter.New(store, ratelimiter.Config{
//	    Capacity:       30,
//	    RefillRate:     1,
//	    RefillInterval: 2 * time.Second,
//	})
//	if err != nil {
//	    return err
//	}
//	r.Use(ratelimiter.Middleware(limiter, clientip.Key))
//
// Middleware sets X-RateLimit-Limit, X-RateLimit-Remaining and
// X-RateLimit-Reset on every limited response, plus Retry-After when the
// request is denied.
package ratelimiter
