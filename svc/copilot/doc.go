// Package copilot implements the advisor parts lookup.
//
// Lookup takes what an advisor knows about a vehicle (a full or wildcard
// VIN, or make and model, plus an optional year) and a free-text keyword
// query such as "latch clip trunk". It validates the input, asks the
// catalog for candidate parts, ranks them by keyword overlap with the part
// titles and attaches the supersession chain and cross references of the
// best match together with accessory upsell suggestions.
//
// Each lookup is appended to the caller's session history, which keeps the
// five most recent searches.
package copilot
