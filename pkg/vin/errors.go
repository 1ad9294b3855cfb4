package vin

import "errors"

var (
	// ErrForbiddenLetter is returned when the VIN contains I, O or Q.
	ErrForbiddenLetter = errors.New("vin: forbidden letter")
	// ErrInvalidCharacter is returned for characters outside the VIN alphabet.
	ErrInvalidCharacter = errors.New("vin: invalid character")
	// ErrTooLong is returned for input longer than 17 characters without wildcards.
	ErrTooLong = errors.New("vin: too long")
	// ErrPartial is returned for input shorter than 17 characters without wildcards.
	ErrPartial = errors.New("vin: partial")
)
