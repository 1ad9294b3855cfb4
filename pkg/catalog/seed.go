package catalog

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/quirkauto/advisorcopilot/pkg/vin"
)

// Fitment restricts a listing to matching vehicles. Empty fields match anything.
type Fitment struct {
	Make     string `yaml:"make,omitempty" json:"make,omitempty"`
	Model    string `yaml:"model,omitempty" json:"model,omitempty"`
	YearFrom int    `yaml:"year_from,omitempty" json:"yearFrom,omitempty"`
	YearTo   int    `yaml:"year_to,omitempty" json:"yearTo,omitempty"`
}

// Fits reports whether v satisfies the fitment. Vehicle fields left empty are
// not used to exclude a listing.
func (f Fitment) Fits(v Vehicle) bool {
	if f.Make != "" && v.Make != "" && !strings.EqualFold(f.Make, strings.TrimSpace(v.Make)) {
		return false
	}
	if f.Model != "" && v.Model != "" && !strings.EqualFold(f.Model, strings.TrimSpace(v.Model)) {
		return false
	}
	if v.Year > 0 {
		if f.YearFrom > 0 && v.Year < f.YearFrom {
			return false
		}
		if f.YearTo > 0 && v.Year > f.YearTo {
			return false
		}
	}
	return true
}

// Listing is a part together with the vehicles it fits.
type Listing struct {
	Part    `yaml:",inline"`
	Fitment Fitment `yaml:"fitment,omitempty"`
}

// VehicleRecord ties a known VIN to its make, model and year.
type VehicleRecord struct {
	VIN   string `yaml:"vin"`
	Make  string `yaml:"make"`
	Model string `yaml:"model"`
	Year  int    `yaml:"year"`
}

// Seed is the full data set of a catalog, as loaded from YAML.
type Seed struct {
	Vehicles        []VehicleRecord       `yaml:"vehicles"`
	Parts           []Listing             `yaml:"parts"`
	Upsell          []Listing             `yaml:"upsell"`
	Chains          []Chain               `yaml:"supersessions"`
	CrossReferences map[string][]CrossRef `yaml:"cross_references"`
}

// Validate checks the seed for missing identifiers and broken chains.
func (s Seed) Validate() error {
	var errs []error
	for i, l := range append(append([]Listing{}, s.Parts...), s.Upsell...) {
		if strings.TrimSpace(l.PartNumber) == "" {
			errs = append(errs, fmt.Errorf("listing %d: empty part number", i))
		}
		if strings.TrimSpace(l.Title) == "" {
			errs = append(errs, fmt.Errorf("listing %s: empty title", l.PartNumber))
		}
	}
	for i, v := range s.Vehicles {
		if res := vin.Check(v.VIN); !res.Valid || res.Empty() {
			errs = append(errs, fmt.Errorf("vehicle %d: invalid vin %q", i, v.VIN))
		}
	}
	for _, c := range s.Chains {
		if len(c.Chain) == 0 {
			errs = append(errs, fmt.Errorf("chain %s: no entries", c.Root))
			continue
		}
		if !c.Contains(c.Current) {
			errs = append(errs, fmt.Errorf("chain %s: current %s is not in the chain", c.Root, c.Current))
		}
	}
	if len(errs) > 0 {
		return errors.Join(ErrInvalidSeed, errors.Join(errs...))
	}
	return nil
}

// LoadSeed decodes and validates a YAML seed document.
func LoadSeed(r io.Reader) (Seed, error) {
	var s Seed
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return Seed{}, errors.Join(ErrInvalidSeed, err)
	}
	if err := s.Validate(); err != nil {
		return Seed{}, err
	}
	return s, nil
}

// LoadSeedFile reads a YAML seed from path.
func LoadSeedFile(path string) (Seed, error) {
	f, err := os.Open(path)
	if err != nil {
		return Seed{}, errors.Join(ErrInvalidSeed, err)
	}
	defer f.Close()
	return LoadSeed(f)
}

// ResolveVehicle fills make, model and year from the first known vehicle whose
// VIN matches v.VIN, when v does not already name a make and model.
func ResolveVehicle(v Vehicle, known []VehicleRecord) Vehicle {
	if strings.TrimSpace(v.VIN) == "" || (v.Make != "" && v.Model != "") {
		return v
	}
	for _, rec := range known {
		if !vin.Matches(v.VIN, rec.VIN) {
			continue
		}
		if v.Make == "" {
			v.Make = rec.Make
		}
		if v.Model == "" {
			v.Model = rec.Model
		}
		if v.Year == 0 {
			v.Year = rec.Year
		}
		return v
	}
	return v
}
