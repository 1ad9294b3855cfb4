package copilot

import (
	"time"

	"github.com/quirkauto/advisorcopilot/pkg/catalog"
	"github.com/quirkauto/advisorcopilot/pkg/history"
	"github.com/quirkauto/advisorcopilot/pkg/vin"
)

// Year bounds accepted for a lookup.
const (
	MinYear = 1990
	MaxYear = 2030
)

// DefaultMinKnownVINChars is how many non-wildcard VIN characters identify a
// vehicle when make and model are missing.
const DefaultMinKnownVINChars = 8

// Request is what an advisor types into the lookup form.
type Request struct {
	VIN   string `json:"vin" form:"vin" query:"vin"`
	Make  string `json:"make" form:"make" query:"make"`
	Model string `json:"model" form:"model" query:"model"`
	Year  int    `json:"year" form:"year" query:"year"`
	Query string `json:"query" form:"query" query:"q"`
}

// Result is the parts panel for one lookup.
type Result struct {
	Vehicle catalog.Vehicle `json:"vehicle"`
	VIN     *vin.Result     `json:"vin,omitempty"`
	// Parts are the candidates ranked by the query, or all candidates when
	// the query matched nothing.
	Parts []catalog.Part `json:"parts"`
	// Candidates is the number of parts the catalog returned before ranking.
	Candidates int `json:"candidates"`
	// Matched reports whether the query narrowed the candidates.
	Matched         bool               `json:"matched"`
	TopPart         *catalog.Part      `json:"topPart,omitempty"`
	Supersession    *catalog.Chain     `json:"supersession,omitempty"`
	CrossReferences []catalog.CrossRef `json:"crossReferences"`
	Upsell          []catalog.Part     `json:"upsell"`
	GeneratedAt     time.Time          `json:"generatedAt"`
}

// Entry is one item of a session's search history.
type Entry = history.Entry
