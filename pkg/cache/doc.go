// Package cache provides a generic, thread-safe LRU cache with optional
// time-based expiry.
//
// The cache bounds memory by evicting the least recently used entry once its
// capacity is exceeded. With WithTTL, entries also expire a fixed duration
// after they were last written; expired entries are dropped lazily on access.
//
// It backs two things in this module: the set of sessions tracked by the
// in-memory search history, and the catalog lookup cache in front of slower
// catalog backends.
//
// # Usage
//
//	chains := cache.NewLRUCache[string, catalog.Chain](512, cache.WithTTL(10*time.Minute))
//
//	chains.Put("68212345AB", chain)
//	if c, ok := chains.Get("68212345AB"); ok {
//		// served from memory
//	}
//
//	// Insert only when missing; returns the winner either way.
//	log, existed := sessions.PutIfAbsent(id, history.NewLog[history.Entry](5))
//
// All operations are O(1) and safe for concurrent use.
package cache
