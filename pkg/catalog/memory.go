package catalog

import (
	"context"
	"slices"
	"strings"
	"sync"
)

// Memory is an in-process Catalog backed by a Seed.
type Memory struct {
	mu        sync.RWMutex
	vehicles  []VehicleRecord
	parts     []Listing
	upsell    []Listing
	chains    map[string]Chain
	crossRefs map[string][]CrossRef
}

// NewMemory returns a catalog holding a deep copy of seed. Every part number
// of a chain is indexed so lookups work from any link.
func NewMemory(seed Seed) *Memory {
	m := &Memory{
		vehicles:  slices.Clone(seed.Vehicles),
		parts:     cloneListings(seed.Parts),
		upsell:    cloneListings(seed.Upsell),
		chains:    make(map[string]Chain),
		crossRefs: make(map[string][]CrossRef, len(seed.CrossReferences)),
	}
	for _, c := range seed.Chains {
		c = cloneChain(c)
		for _, pn := range c.Chain {
			m.chains[normalizePartNumber(pn)] = c
		}
		if c.Root != "" {
			m.chains[normalizePartNumber(c.Root)] = c
		}
	}
	for pn, refs := range seed.CrossReferences {
		m.crossRefs[normalizePartNumber(pn)] = slices.Clone(refs)
	}
	return m
}

// NewDemo returns a Memory catalog with the built-in demo data.
func NewDemo() *Memory {
	return NewMemory(DemoSeed())
}

func (m *Memory) Search(ctx context.Context, v Vehicle) ([]Part, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return matchListings(m.parts, ResolveVehicle(v, m.vehicles)), nil
}

func (m *Memory) Upsell(ctx context.Context, v Vehicle) ([]Part, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return matchListings(m.upsell, ResolveVehicle(v, m.vehicles)), nil
}

func (m *Memory) SupersessionChain(ctx context.Context, partNumber string) (Chain, error) {
	key := normalizePartNumber(partNumber)
	if key == "" {
		return Chain{}, ErrEmptyPartNumber
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.chains[key]
	if !ok {
		return Chain{}, ErrNotFound
	}
	return cloneChain(c), nil
}

func (m *Memory) CrossReferences(ctx context.Context, partNumber string) ([]CrossRef, error) {
	key := normalizePartNumber(partNumber)
	if key == "" {
		return nil, ErrEmptyPartNumber
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.crossRefs[key]), nil
}

// Replace swaps the catalog contents for seed.
func (m *Memory) Replace(seed Seed) {
	fresh := NewMemory(seed)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vehicles = fresh.vehicles
	m.parts = fresh.parts
	m.upsell = fresh.upsell
	m.chains = fresh.chains
	m.crossRefs = fresh.crossRefs
}

// matchListings returns the parts whose fitment matches v. Fitment text is
// the vehicle label when the vehicle names one, otherwise the listing's own.
func matchListings(listings []Listing, v Vehicle) []Part {
	if v.Unidentified() {
		return []Part{}
	}
	label := v.Label()
	out := make([]Part, 0, len(listings))
	for _, l := range listings {
		if !l.Fitment.Fits(v) {
			continue
		}
		p := l.Part
		if label != "" {
			p.Fits = []string{label}
		} else {
			p.Fits = slices.Clone(l.Fits)
		}
		out = append(out, p)
	}
	return out
}

func cloneListings(in []Listing) []Listing {
	out := make([]Listing, len(in))
	for i, l := range in {
		l.Fits = slices.Clone(l.Fits)
		out[i] = l
	}
	return out
}

func cloneChain(c Chain) Chain {
	c.Chain = slices.Clone(c.Chain)
	return c
}

func normalizePartNumber(pn string) string {
	return strings.ToUpper(strings.TrimSpace(pn))
}
