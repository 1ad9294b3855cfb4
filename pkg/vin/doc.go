// Package vin validates Vehicle Identification Number input as typed by a
// service advisor.
//
// A fully specified VIN is 17 characters drawn from A-Z (excluding I, O and
// Q) and 0-9. Advisors frequently know only part of a VIN, so the package
// also accepts the wildcard marker '*' for unknown characters. Nothing here
// decodes a VIN (manufacturer, plant, check digit); the package answers a
// single question: is this input acceptable for a parts search, and if not,
// why.
//
// # Usage
//
//	ok, reason := vin.Validate(" 1c4hjxdg9mw***** ")
//	if !ok {
//	    // show reason to the user
//	}
//
//	res := vin.Check(input)
//	if res.Valid && res.Known >= 8 {
//	    // enough of the VIN is known to search by it
//	}
//
// # Rules
//
// Input is trimmed and uppercased before any check. Empty input is valid
// because a search may omit the VIN entirely. The checks run in a fixed
// order and the first failing one supplies the reason:
//
//  1. forbidden letters I, O, Q
//  2. characters outside the VIN alphabet and '*'
//  3. length: exactly 17, or any length when a wildcard is present
//
// All functions are pure and safe for concurrent use.
package vin
