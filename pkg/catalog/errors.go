package catalog

import "errors"

var (
	// ErrNotFound is returned when a part has no supersession chain or is unknown.
	ErrNotFound = errors.New("catalog: not found")
	// ErrEmptyPartNumber is returned when a lookup is made without a part number.
	ErrEmptyPartNumber = errors.New("catalog: empty part number")
	// ErrInvalidSeed is returned when seed data cannot be read or is inconsistent.
	ErrInvalidSeed = errors.New("catalog: invalid seed data")
	// ErrBackend wraps failures of the underlying store or search engine.
	ErrBackend = errors.New("catalog: backend failure")
)
