// Package binder fills request structs from HTTP requests.
//
// Each binder reads one source: JSON and Form the body, Query the URL query
// and Path the chi route parameters. Body chooses JSON or Form from the
// Content-Type header. Fields opt in with a struct tag per source:
//
//	type LookupRequest struct {
//	    VIN   string `json:"vin" form:"vin" query:"vin"`
//	    Year  int    `json:"year" form:"year" query:"year"`
//	    Query string `json:"query" form:"query" query:"q"`
//	}
//
// Failures wrap one of the Err* values so callers can map them to 400 or 415.
package binder
