// Package relevance ranks catalog records against a free-text query.
//
// A query is split into keywords on whitespace, commas and semicolons;
// keywords are lowercased and single-character tokens are dropped. A record
// scores one point for every keyword found as a substring of its lowercased
// title. Matching records are returned best first, ties keeping their input
// order.
//
// The filter never fails and never returns an empty result for a non-empty
// input: an empty query, a query without usable keywords, or a query that
// matches nothing all return the input unchanged.
//
//	parts = relevance.Filter(parts, "brake pads; rotor", func(p Part) string { return p.Title })
//
// Records that are plain maps can be filtered by field name:
//
//	rows = relevance.FilterRecords(rows, "latch clip", "title")
//
// All functions are pure and safe for concurrent use.
package relevance
