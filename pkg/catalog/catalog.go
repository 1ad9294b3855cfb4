package catalog

import (
	"context"
	"fmt"
	"strings"
)

// Vehicle identifies what a search is for. Any field may be empty; VIN may
// contain wildcards.
type Vehicle struct {
	VIN   string `json:"vin,omitempty"`
	Make  string `json:"make,omitempty"`
	Model string `json:"model,omitempty"`
	Year  int    `json:"year,omitempty"`
}

// Label renders the vehicle the way fitment text shows it, e.g. "2018 Jeep Wrangler".
func (v Vehicle) Label() string {
	parts := make([]string, 0, 3)
	if v.Year > 0 {
		parts = append(parts, fmt.Sprint(v.Year))
	}
	if m := strings.TrimSpace(v.Make); m != "" {
		parts = append(parts, m)
	}
	if m := strings.TrimSpace(v.Model); m != "" {
		parts = append(parts, m)
	}
	return strings.Join(parts, " ")
}

// Unidentified reports whether a VIN was given but neither it nor the other
// fields name both make and model. Fitment cannot be checked for such a
// vehicle, so backends return no candidates for it.
func (v Vehicle) Unidentified() bool {
	return strings.TrimSpace(v.VIN) != "" &&
		(strings.TrimSpace(v.Make) == "" || strings.TrimSpace(v.Model) == "")
}

// Part is a catalog entry.
type Part struct {
	PartNumber string   `json:"partNumber" yaml:"part_number"`
	Title      string   `json:"title" yaml:"title"`
	OEM        string   `json:"oem" yaml:"oem"`
	Price      float64  `json:"price" yaml:"price"`
	ETADays    int      `json:"etaDays" yaml:"eta_days"`
	Fits       []string `json:"fits,omitempty" yaml:"fits"`
}

// TitleOf returns the part title; handy as a relevance title accessor.
func TitleOf(p Part) string { return p.Title }

// Chain is the supersession history of a part: each later entry replaces
// the one before it, Current is the part to order.
type Chain struct {
	Root    string   `json:"root" yaml:"root"`
	Chain   []string `json:"chain" yaml:"chain"`
	Current string   `json:"current" yaml:"current"`
}

// Contains reports whether partNumber is part of the chain.
func (c Chain) Contains(partNumber string) bool {
	for _, pn := range c.Chain {
		if strings.EqualFold(pn, partNumber) {
			return true
		}
	}
	return false
}

// Cross reference types.
const (
	CrossRefAftermarket   = "aftermarket"
	CrossRefOEMEquivalent = "oem-equivalent"
)

// CrossRef maps a part to an equivalent identifier in another catalog.
type CrossRef struct {
	PartNumber string `json:"partNumber" yaml:"part_number"`
	Type       string `json:"type" yaml:"type"`
	Note       string `json:"note" yaml:"note"`
}

// Catalog is the parts data source. Implementations return data for display
// only; callers never modify what they receive.
type Catalog interface {
	// Search returns candidate parts that fit the vehicle.
	Search(ctx context.Context, v Vehicle) ([]Part, error)
	// SupersessionChain returns the chain that contains partNumber.
	SupersessionChain(ctx context.Context, partNumber string) (Chain, error)
	// CrossReferences returns equivalents of partNumber in other catalogs.
	CrossReferences(ctx context.Context, partNumber string) ([]CrossRef, error)
	// Upsell returns accessory kit suggestions for the vehicle.
	Upsell(ctx context.Context, v Vehicle) ([]Part, error)
}
