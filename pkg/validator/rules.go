package validator

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Required fails for strings that are empty after trimming whitespace.
func Required(field, value string) Rule {
	return Rule{
		Check: func() bool { return strings.TrimSpace(value) != "" },
		Error: ValidationError{Field: field, Message: "field is required", Code: "required"},
	}
}

// MaxLen limits value to max characters.
func MaxLen(field, value string, max int) Rule {
	return Rule{
		Check: func() bool { return utf8.RuneCountInString(value) <= max },
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be at most %d characters long", max),
			Code:    "max_length",
		},
	}
}

// Between requires min <= value <= max.
func Between[T Numeric](field string, value, min, max T) Rule {
	return Rule{
		Check: func() bool { return value >= min && value <= max },
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be between %v and %v", min, max),
			Code:    "range",
		},
	}
}

// OneOf requires value to be one of options, compared case-insensitively.
func OneOf(field, value string, options ...string) Rule {
	return Rule{
		Check: func() bool {
			for _, o := range options {
				if strings.EqualFold(o, value) {
					return true
				}
			}
			return false
		},
		Error: ValidationError{
			Field:   field,
			Message: "must be one of " + strings.Join(options, ", "),
			Code:    "one_of",
		},
	}
}
