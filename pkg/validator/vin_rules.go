package validator

import (
	"fmt"
	"strings"

	"github.com/quirkauto/advisorcopilot/pkg/vin"
)

// ValidVIN passes for an empty VIN or one accepted by vin.Check. The error
// message is the VIN reason, for example vin.ReasonForbiddenLetter.
func ValidVIN(field, raw string) Rule {
	res := vin.Check(raw)
	return Rule{
		Check: func() bool { return res.Valid },
		Error: ValidationError{Field: field, Message: res.Reason, Code: vinCode(res)},
	}
}

// MinKnownVINChars requires at least n non-wildcard characters in a VIN.
func MinKnownVINChars(field, raw string, n int) Rule {
	return Rule{
		Check: func() bool { return vin.KnownChars(raw) >= n },
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("VIN must include at least %d known characters", n),
			Code:    "vin.too_few_known",
		},
	}
}

// RequiredVehicle passes when both make and model are given, or when the VIN
// has at least minKnown non-wildcard characters.
func RequiredVehicle(field, make, model, raw string, minKnown int) Rule {
	return Rule{
		Check: func() bool {
			if strings.TrimSpace(make) != "" && strings.TrimSpace(model) != "" {
				return true
			}
			return vin.KnownChars(raw) >= minKnown
		},
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("provide make and model, or a VIN with at least %d known characters", minKnown),
			Code:    "vehicle.insufficient",
		},
	}
}

func vinCode(res vin.Result) string {
	switch res.Reason {
	case vin.ReasonForbiddenLetter:
		return "vin.forbidden_letter"
	case vin.ReasonInvalidCharacter:
		return "vin.invalid_character"
	case vin.ReasonTooLong:
		return "vin.too_long"
	default:
		return "vin.partial"
	}
}
