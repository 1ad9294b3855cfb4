package history

import "errors"

var (
	// ErrEmptySessionID is returned when a store is called without a session ID.
	ErrEmptySessionID = errors.New("history: empty session id")
	// ErrStoreFailed wraps backend failures.
	ErrStoreFailed = errors.New("history: store operation failed")
	// ErrDecodeEntry is returned when a stored entry cannot be decoded.
	ErrDecodeEntry = errors.New("history: failed to decode entry")
)
