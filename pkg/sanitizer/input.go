package sanitizer

// Field length limits for advisor input.
const (
	MaxQueryLength = 200
	MaxNameLength  = 40
	MaxCodeLength  = 32
)

// FreeText cleans a free-text keyword query.
var FreeText = Compose(
	RemoveControlSequences,
	StripHTML,
	SingleLine,
	Limit(MaxQueryLength),
)

// Name cleans a make or model name and title-cases it.
var Name = Compose(
	RemoveControlSequences,
	StripHTML,
	SingleLine,
	Limit(MaxNameLength),
	ToTitle,
)

// Code cleans an identifier such as a part number.
var Code = Compose(
	RemoveControlSequences,
	SingleLine,
	Limit(MaxCodeLength),
)

// VIN only trims surrounding whitespace. Every other character is left for
// vin.Check to judge, so nothing it would reject is cleaned away first.
var VIN = Compose(Trim)
