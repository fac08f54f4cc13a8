package services

import (
	"reflect"
	"testing"
)

func TestQueryCount(t *testing.T) {
	records := fixtureRecords()

	tests := []struct {
		name string
		q    Query
		want int
	}{
		{"no criteria", Query{}, 4},
		{"brand ignores case", Query{Brands: []string{"renault"}}, 2},
		{"brand and model", Query{Brands: []string{"RENAULT"}, Models: []string{"CLIO"}}, 1},
		{"gearbox", Query{Gearboxes: []string{"Automatique"}}, 2},
		{"energy", Query{Energies: []string{"Diesel"}}, 0},
		{"year window", Query{YearMin: 2020, YearMax: 2021}, 2},
		{"open year max", Query{YearMin: 2021}, 2},
		{"mileage cap", Query{MileageMax: 50000}, 2},
		{"price band", Query{PriceMin: 12000, PriceMax: 16000}, 2},
		{"nothing matches", Query{Brands: []string{"TESLA"}}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Count(records, tt.q); got != tt.want {
				t.Errorf("Count = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestQueryAveragePrice(t *testing.T) {
	records := fixtureRecords()
	if got := AveragePrice(records, Query{Brands: []string{"RENAULT"}}); got != 12895 {
		t.Errorf("RENAULT average = %.2f, want 12895", got)
	}
	if got := AveragePrice(records, Query{Brands: []string{"TESLA"}}); got != 0 {
		t.Errorf("empty selection average = %.2f, want 0", got)
	}
}

func TestYearRange(t *testing.T) {
	records := fixtureRecords()

	oldest, newest, ok := YearRange(records, "", "")
	if !ok || oldest != 2019 || newest != 2021 {
		t.Errorf("whole dataset: got %d..%d ok=%v, want 2019..2021", oldest, newest, ok)
	}
	oldest, newest, ok = YearRange(records, "RENAULT", "CAPTUR")
	if !ok || oldest != 2019 || newest != 2019 {
		t.Errorf("CAPTUR: got %d..%d ok=%v, want 2019..2019", oldest, newest, ok)
	}
	if _, _, ok = YearRange(records, "TESLA", "MODEL 3"); ok {
		t.Error("unknown model should report ok=false")
	}
}

func TestUniqueValues(t *testing.T) {
	records := fixtureRecords()
	records[3].EngineCode = nil

	tests := []struct {
		name string
		got  []string
		want []string
	}{
		{"brands", UniqueBrands(records), []string{"CITROEN", "PEUGEOT", "RENAULT"}},
		{"models", UniqueModels(records, "renault"), []string{"CAPTUR", "CLIO"}},
		{"generations", UniqueGenerations(records, "RENAULT", "CLIO"), []string{"V"}},
		{"engine codes skip nulls", UniqueEngineCodes(records, "RENAULT", "CLIO"), []string{}},
		{"displacements", UniqueDisplacements(records, "PEUGEOT", "208"), []string{"1.2"}},
		{"unknown brand", UniqueModels(records, "TESLA"), []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !reflect.DeepEqual(tt.got, tt.want) {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}
