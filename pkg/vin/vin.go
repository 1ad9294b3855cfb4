package vin

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	// Length is the number of characters in a fully specified VIN.
	Length = 17
	// Wildcard stands in for unknown characters in a partial VIN.
	Wildcard = '*'
)

// Reasons reported for rejected input.
const (
	ReasonForbiddenLetter  = "VIN cannot contain letters I, O, or Q"
	ReasonInvalidCharacter = "VIN can only contain letters A-Z (except I, O, Q), numbers, and * for wildcards"
	ReasonTooLong          = "VIN cannot exceed 17 characters"
)

// PartialReason returns the reason reported for a wildcard-free VIN of n characters.
func PartialReason(n int) string {
	return fmt.Sprintf("Partial VIN detected (%d chars). Use * for unknown characters or enter full 17-character VIN", n)
}

// Result is the outcome of checking a single VIN input.
type Result struct {
	Raw        string `json:"raw"`
	Normalized string `json:"normalized"`
	Valid      bool   `json:"valid"`
	Reason     string `json:"reason,omitempty"`
	// Known is the number of non-wildcard characters.
	Known     int `json:"known"`
	Wildcards int `json:"wildcards"`

	err error
}

// Empty reports whether no VIN was supplied.
func (r Result) Empty() bool {
	return r.Normalized == ""
}

// Complete reports whether the VIN is a valid, fully specified 17-character VIN.
func (r Result) Complete() bool {
	return r.Valid && r.Wildcards == 0 && r.Known == Length
}

// Err returns nil for valid input, otherwise a *ValidationError carrying the reason.
func (r Result) Err() error {
	if r.Valid {
		return nil
	}
	return &ValidationError{Reason: r.Reason, Kind: r.err}
}

// ValidationError describes why a VIN was rejected.
// Its message is the user-facing reason; Unwrap exposes the sentinel kind.
type ValidationError struct {
	Reason string
	Kind   error
}

func (e *ValidationError) Error() string { return e.Reason }
func (e *ValidationError) Unwrap() error { return e.Kind }

// Normalize trims surrounding whitespace and uppercases the input.
func Normalize(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// IsAllowed reports whether r may appear in a normalized VIN, wildcard included.
func IsAllowed(r rune) bool {
	switch {
	case r >= '0' && r <= '9':
		return true
	case r == Wildcard:
		return true
	case r >= 'A' && r <= 'Z':
		return r != 'I' && r != 'O' && r != 'Q'
	default:
		return false
	}
}

// Validate reports whether raw is acceptable VIN input and, if not, why.
func Validate(raw string) (bool, string) {
	res := Check(raw)
	return res.Valid, res.Reason
}

// Check validates raw and returns the full result.
//
// Wildcard input is accepted regardless of its length; use CheckStrict to
// also cap it at 17 characters.
func Check(raw string) Result {
	return check(raw, false)
}

// CheckStrict behaves like Check but rejects wildcard input longer than 17 characters.
func CheckStrict(raw string) Result {
	return check(raw, true)
}

// KnownChars returns the number of non-wildcard characters in the normalized input.
func KnownChars(raw string) int {
	n := Normalize(raw)
	return utf8.RuneCountInString(n) - strings.Count(n, string(Wildcard))
}

// Err validates raw and returns the rejection as an error, or nil.
func Err(raw string) error {
	return Check(raw).Err()
}

func check(raw string, strict bool) Result {
	res := Result{Raw: raw, Normalized: Normalize(raw)}
	if res.Normalized == "" {
		res.Valid = true
		return res
	}

	length := 0
	for _, r := range res.Normalized {
		length++
		if r == Wildcard {
			res.Wildcards++
		}
	}
	res.Known = length - res.Wildcards

	if strings.ContainsAny(res.Normalized, "IOQ") {
		return res.reject(ErrForbiddenLetter, ReasonForbiddenLetter)
	}
	for _, r := range res.Normalized {
		if !IsAllowed(r) {
			return res.reject(ErrInvalidCharacter, ReasonInvalidCharacter)
		}
	}

	switch {
	case length == Length:
	case res.Wildcards > 0:
		if strict && length > Length {
			return res.reject(ErrTooLong, ReasonTooLong)
		}
	case length > Length:
		return res.reject(ErrTooLong, ReasonTooLong)
	default:
		return res.reject(ErrPartial, PartialReason(length))
	}

	res.Valid = true
	return res
}

func (r Result) reject(kind error, reason string) Result {
	r.Valid = false
	r.Reason = reason
	r.err = kind
	return r
}
