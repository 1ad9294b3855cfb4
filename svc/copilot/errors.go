package copilot

import "errors"

var (
	// ErrInsufficientInput is returned when a lookup names neither make and
	// model nor a VIN with enough known characters.
	ErrInsufficientInput = errors.New("copilot: insufficient vehicle information")
	// ErrInvalidVIN is returned when the VIN fails validation.
	ErrInvalidVIN = errors.New("copilot: invalid VIN")
	// ErrInvalidInput covers the remaining field errors, such as an out of range year.
	ErrInvalidInput = errors.New("copilot: invalid input")
	// ErrEmptySession is returned when history is requested without a session.
	ErrEmptySession = errors.New("copilot: empty session id")
	// ErrCatalogUnavailable wraps catalog backend failures.
	ErrCatalogUnavailable = errors.New("copilot: catalog unavailable")
	// ErrPartNotFound is returned for unknown part numbers.
	ErrPartNotFound = errors.New("copilot: part not found")
)
