// Package history keeps the most recent parts searches of a session.
//
// Each session owns a bounded, newest-first log: appending to a full log
// drops the oldest entry. The default capacity is five entries, which is what
// the advisor sidebar shows.
//
// Two Store implementations are provided:
//
//   - MemoryStore keeps logs in process. The number of tracked sessions is
//     itself bounded by an LRU cache so abandoned sessions are evicted.
//   - RedisStore keeps each session log in a Redis list trimmed on every
//     append and expired after a period of inactivity.
//
// A session is expected to have a single writer; concurrent appends to the
// same session are safe but their relative order is not defined.
package history
