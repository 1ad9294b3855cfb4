package history

import "sync"

// Log is a thread-safe bounded list that keeps the newest items first.
// When the log is full, pushing a new item discards the oldest one.
type Log[T any] struct {
	mu       sync.RWMutex
	capacity int
	items    []T
}

// NewLog creates a log holding at most capacity items.
// The capacity must be positive, otherwise it panics.
func NewLog[T any](capacity int) *Log[T] {
	if capacity <= 0 {
		panic("history log capacity must be positive")
	}
	return &Log[T]{
		capacity: capacity,
		items:    make([]T, 0, capacity),
	}
}

// Push adds v as the newest item.
func (l *Log[T]) Push(v T) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.items) < l.capacity {
		l.items = append(l.items, v)
	}
	copy(l.items[1:], l.items[:len(l.items)-1])
	l.items[0] = v
}

// Items returns a copy of the items, newest first.
func (l *Log[T]) Items() []T {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]T, len(l.items))
	copy(out, l.items)
	return out
}

// Len returns the number of items held.
func (l *Log[T]) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.items)
}

// Cap returns the most items the log keeps.
func (l *Log[T]) Cap() int {
	return l.capacity
}

// Clear removes all items.
func (l *Log[T]) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	clear(l.items)
	l.items = l.items[:0]
}
