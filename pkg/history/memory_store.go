package history

import (
	"context"

	"github.com/quirkauto/advisorcopilot/pkg/cache"
)

// DefaultMaxSessions bounds the number of sessions a MemoryStore tracks.
const DefaultMaxSessions = 10000

// MemoryStore keeps session logs in process memory.
type MemoryStore struct {
	size     int
	sessions *cache.LRUCache[string, *Log[Entry]]
}

// MemoryOption configures a MemoryStore.
type MemoryOption func(*MemoryStore)

// WithSize sets the number of entries kept per session. Non-positive values are ignored.
func WithSize(n int) MemoryOption {
	return func(s *MemoryStore) {
		if n > 0 {
			s.size = n
		}
	}
}

// WithMaxSessions bounds how many sessions are tracked before the least
// recently used one is evicted. Non-positive values are ignored.
func WithMaxSessions(n int) MemoryOption {
	return func(s *MemoryStore) {
		if n > 0 {
			s.sessions = cache.NewLRUCache[string, *Log[Entry]](n)
		}
	}
}

// NewMemoryStore creates an in-memory history store.
func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{size: DefaultSize}
	for _, opt := range opts {
		opt(s)
	}
	if s.sessions == nil {
		s.sessions = cache.NewLRUCache[string, *Log[Entry]](DefaultMaxSessions)
	}
	return s
}

func (s *MemoryStore) Append(ctx context.Context, sessionID string, e Entry) error {
	if sessionID == "" {
		return ErrEmptySessionID
	}
	log, ok := s.sessions.Get(sessionID)
	if !ok {
		log = NewLog[Entry](s.size)
		if prev, existed := s.sessions.PutIfAbsent(sessionID, log); existed {
			log = prev
		}
	}
	log.Push(e)
	return nil
}

func (s *MemoryStore) List(ctx context.Context, sessionID string) ([]Entry, error) {
	if sessionID == "" {
		return nil, ErrEmptySessionID
	}
	log, ok := s.sessions.Get(sessionID)
	if !ok {
		return []Entry{}, nil
	}
	return log.Items(), nil
}

func (s *MemoryStore) Clear(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return ErrEmptySessionID
	}
	s.sessions.Remove(sessionID)
	return nil
}

// Sessions returns the number of tracked sessions.
func (s *MemoryStore) Sessions() int {
	return s.sessions.Len()
}
