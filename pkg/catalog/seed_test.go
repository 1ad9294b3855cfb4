package catalog_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quirkauto/advisorcopilot/pkg/catalog"
)

func TestLoadSeedFile(t *testing.T) {
	t.Parallel()

	t.Run("valid seed", func(t *testing.T) {
		t.Parallel()
		seed, err := catalog.LoadSeedFile("testdata/seed.yaml")
		require.NoError(t, err)

		require.Len(t, seed.Vehicles, 1)
		assert.Equal(t, "Wrangler", seed.Vehicles[0].Model)

		require.Len(t, seed.Parts, 2)
		assert.Equal(t, "68212345AB", seed.Parts[0].PartNumber)
		assert.InDelta(t, 8.75, seed.Parts[0].Price, 0.001)
		assert.Equal(t, catalog.Fitment{Make: "Jeep", Model: "Wrangler", YearFrom: 2018, YearTo: 2024}, seed.Parts[1].Fitment)

		require.Len(t, seed.Upsell, 1)
		assert.Equal(t, "82215274", seed.Upsell[0].PartNumber)

		require.Len(t, seed.Chains, 1)
		assert.Equal(t, "68212345AC", seed.Chains[0].Current)
		assert.Len(t, seed.CrossReferences["68212345AB"], 1)
	})

	t.Run("broken chain", func(t *testing.T) {
		t.Parallel()
		_, err := catalog.LoadSeedFile("testdata/broken_chain.yaml")
		require.ErrorIs(t, err, catalog.ErrInvalidSeed)
		assert.Contains(t, err.Error(), "68212345ZZ")
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := catalog.LoadSeedFile("testdata/nope.yaml")
		assert.ErrorIs(t, err, catalog.ErrInvalidSeed)
	})
}

func TestLoadSeed(t *testing.T) {
	t.Parallel()

	t.Run("unknown fields rejected", func(t *testing.T) {
		t.Parallel()
		_, err := catalog.LoadSeed(strings.NewReader("parts:\n  - part_number: A1\n    title: Clip\n    colour: red\n"))
		assert.ErrorIs(t, err, catalog.ErrInvalidSeed)
	})

	t.Run("invalid vehicle vin", func(t *testing.T) {
		t.Parallel()
		_, err := catalog.LoadSeed(strings.NewReader("vehicles:\n  - vin: 1C4HJXDG9MW12345I\n    make: Jeep\n    model: Wrangler\n    year: 2021\n"))
		assert.ErrorIs(t, err, catalog.ErrInvalidSeed)
	})

	t.Run("missing title", func(t *testing.T) {
		t.Parallel()
		_, err := catalog.LoadSeed(strings.NewReader("upsell:\n  - part_number: \"82215274\"\n"))
		require.ErrorIs(t, err, catalog.ErrInvalidSeed)
		assert.Contains(t, err.Error(), "empty title")
	})
}

func TestDemoSeed_Valid(t *testing.T) {
	t.Parallel()
	require.NoError(t, catalog.DemoSeed().Validate())
}

func TestFitment_Fits(t *testing.T) {
	t.Parallel()
	f := catalog.Fitment{Make: "Jeep", Model: "Wrangler", YearFrom: 2018, YearTo: 2024}

	tests := []struct {
		name string
		v    catalog.Vehicle
		want bool
	}{
		{name: "exact", v: catalog.Vehicle{Make: "Jeep", Model: "Wrangler", Year: 2020}, want: true},
		{name: "no year", v: catalog.Vehicle{Make: "jeep", Model: "WRANGLER"}, want: true},
		{name: "empty vehicle", v: catalog.Vehicle{}, want: true},
		{name: "lower bound", v: catalog.Vehicle{Make: "Jeep", Model: "Wrangler", Year: 2018}, want: true},
		{name: "upper bound", v: catalog.Vehicle{Make: "Jeep", Model: "Wrangler", Year: 2024}, want: true},
		{name: "too old", v: catalog.Vehicle{Make: "Jeep", Model: "Wrangler", Year: 2017}, want: false},
		{name: "too new", v: catalog.Vehicle{Make: "Jeep", Model: "Wrangler", Year: 2025}, want: false},
		{name: "other model", v: catalog.Vehicle{Make: "Jeep", Model: "Compass"}, want: false},
		{name: "other make", v: catalog.Vehicle{Make: "Dodge"}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, f.Fits(tt.v))
		})
	}

	assert.True(t, catalog.Fitment{}.Fits(catalog.Vehicle{Make: "Ram", Year: 1995}))
}

func TestResolveVehicle(t *testing.T) {
	t.Parallel()
	known := catalog.DemoSeed().Vehicles

	got := catalog.ResolveVehicle(catalog.Vehicle{VIN: "1C4RJFAG5FC625797"}, known)
	assert.Equal(t, catalog.Vehicle{VIN: "1C4RJFAG5FC625797", Make: "Jeep", Model: "Grand Cherokee", Year: 2015}, got)

	got = catalog.ResolveVehicle(catalog.Vehicle{VIN: "1C4RJFAG5FC625797", Year: 2016}, known)
	assert.Equal(t, 2016, got.Year, "caller year wins")

	given := catalog.Vehicle{VIN: "1C4HJXDG9MW123456", Make: "Ram", Model: "1500"}
	assert.Equal(t, given, catalog.ResolveVehicle(given, known), "make and model already set")

	unknown := catalog.Vehicle{VIN: "2T1BURHE0JC000000"}
	assert.Equal(t, unknown, catalog.ResolveVehicle(unknown, known))
}
