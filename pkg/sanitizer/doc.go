// Package sanitizer cleans user input before it is validated or searched.
//
// Transforms are plain func(string) string values composed into pipelines:
//
//	clean := sanitizer.Compose(sanitizer.Trim, sanitizer.SingleLine)
//	clean("  brake\n pads ") // "brake pads"
//
// FreeText, Name and Code are the pipelines applied to lookup requests.
package sanitizer
