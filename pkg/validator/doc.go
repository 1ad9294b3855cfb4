// Package validator composes small validation rules into a single error.
//
// Each rule constructor returns a Rule that pairs a check with the error to
// report. Apply runs all rules and returns ValidationErrors listing every
// failure, so a client sees all problems with its input at once:
//
//	err := validator.Apply(
//	    validator.ValidVIN("vin", req.VIN),
//	    validator.RequiredVehicle("vehicle", req.Make, req.Model, req.VIN, 8),
//	    validator.When(req.Year != 0, validator.Between("year", req.Year, 1990, 2030)),
//	    validator.MaxLen("query", req.Query, 200),
//	)
//
// ValidationErrors unwraps to ErrValidationFailed.
package validator
