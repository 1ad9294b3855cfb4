package catalog

// DemoSeed returns the sample data the advisor demo runs with.
func DemoSeed() Seed {
	wrangler := Fitment{Make: "Jeep", Model: "Wrangler", YearFrom: 2018, YearTo: 2024}
	latchRefs := []CrossRef{
		{PartNumber: "DORMAN-12345", Type: CrossRefAftermarket, Note: "Aftermarket equivalent"},
		{PartNumber: "MOPAR-68212345AA", Type: CrossRefOEMEquivalent, Note: "Earlier supersession"},
	}

	return Seed{
		Vehicles: []VehicleRecord{
			{VIN: "1C4HJXDG9MW123456", Make: "Jeep", Model: "Wrangler", Year: 2021},
			{VIN: "1C4RJFAG5FC625797", Make: "Jeep", Model: "Grand Cherokee", Year: 2015},
		},
		Parts: []Listing{
			{Part: Part{PartNumber: "68212345AB", Title: "Latch Clip - Trunk", OEM: "Mopar", Price: 8.75, ETADays: 0}},
			{Part: Part{PartNumber: "68212345AC", Title: "Latch Clip - Trunk (Superseded)", OEM: "Mopar", Price: 9.25, ETADays: 2}},
			{Part: Part{PartNumber: "68211987AA", Title: "Brake Pad Set - Front", OEM: "Mopar", Price: 64.50, ETADays: 1}, Fitment: wrangler},
			{Part: Part{PartNumber: "68211990AB", Title: "Brake Rotor - Front", OEM: "Mopar", Price: 89.00, ETADays: 3}, Fitment: wrangler},
			{Part: Part{PartNumber: "04861756AA", Title: "Air Filter", OEM: "Mopar", Price: 24.95, ETADays: 0}},
			{Part: Part{PartNumber: "68224345AA", Title: "Wiper Blade Set", OEM: "Mopar", Price: 32.00, ETADays: 1}, Fitment: wrangler},
		},
		Upsell: []Listing{
			{Part: Part{PartNumber: "82215274", Title: "Cargo Liner, Rear", OEM: "Mopar", Price: 129.00}},
			{Part: Part{PartNumber: "82214786", Title: "All-Weather Mats Set", OEM: "Mopar", Price: 179.00}},
		},
		Chains: []Chain{
			{Root: "68212345", Chain: []string{"68212345AA", "68212345AB", "68212345AC"}, Current: "68212345AC"},
		},
		CrossReferences: map[string][]CrossRef{
			"68212345AB": latchRefs,
			"68212345AC": latchRefs,
		},
	}
}
