package history

import (
	"context"
	"time"
)

// DefaultSize is the number of entries kept per session.
const DefaultSize = 5

// Entry records one parts search.
type Entry struct {
	VIN        string    `json:"vin,omitempty"`
	Make       string    `json:"make,omitempty"`
	Model      string    `json:"model,omitempty"`
	Year       int       `json:"year,omitempty"`
	Query      string    `json:"query,omitempty"`
	Results    int       `json:"results"`
	TopPart    string    `json:"top_part,omitempty"`
	SearchedAt time.Time `json:"searched_at"`
}

// Store persists per-session search history.
type Store interface {
	// Append adds e as the newest entry of the session, dropping the oldest
	// entries beyond the store's size.
	Append(ctx context.Context, sessionID string, e Entry) error
	// List returns the session's entries, newest first.
	List(ctx context.Context, sessionID string) ([]Entry, error)
	// Clear forgets the session's history.
	Clear(ctx context.Context, sessionID string) error
}
