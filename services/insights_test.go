package services

import (
	"testing"

	"listing-cleaner/models"
	"listing-cleaner/utils"
)

func TestInsightCounts(t *testing.T) {
	svc := NewInsightService(utils.NewLogger(false))
	r := svc.Generate(fixtureRecords())
	if r.TotalListings != 4 {
		t.Errorf("TotalListings: got %d, want 4", r.TotalListings)
	}
	if r.ListingsByBrand["RENAULT"] != 2 {
		t.Errorf("RENAULT count: got %d, want 2", r.ListingsByBrand["RENAULT"])
	}
	if r.ListingsByMarket["Bonne affaire"] != 3 {
		t.Errorf("Bonne affaire count: got %d, want 3", r.ListingsByMarket["Bonne affaire"])
	}
	if r.ListingsByEnergy["Essence"] != 4 {
		t.Errorf("Essence count: got %d, want 4", r.ListingsByEnergy["Essence"])
	}
}

func TestInsightPrices(t *testing.T) {
	svc := NewInsightService(utils.NewLogger(false))
	r := svc.Generate(fixtureRecords())
	if r.AveragePrice != 15942.5 {
		t.Errorf("AveragePrice: got %.2f, want 15942.50", r.AveragePrice)
	}
	if r.MinPrice != 11800 {
		t.Errorf("MinPrice: got %d, want 11800", r.MinPrice)
	}
	if r.MaxPrice != 21990 {
		t.Errorf("MaxPrice: got %d, want 21990", r.MaxPrice)
	}
	if r.AverageMileage != 45600 {
		t.Errorf("AverageMileage: got %.2f, want 45600", r.AverageMileage)
	}
}

func TestInsightExtremes(t *testing.T) {
	svc := NewInsightService(utils.NewLogger(false))
	r := svc.Generate(fixtureRecords())
	if r.MostExpensive == nil || r.Cheapest == nil {
		t.Fatal("Cheapest and MostExpensive should not be nil")
	}
	if r.MostExpensive.Model != "208" {
		t.Errorf("MostExpensive: got %q, want %q", r.MostExpensive.Model, "208")
	}
	if r.Cheapest.Model != "CLIO" {
		t.Errorf("Cheapest: got %q, want %q", r.Cheapest.Model, "CLIO")
	}
}

func TestInsightElectrifiedShare(t *testing.T) {
	records := fixtureRecords()
	records = append(records, &models.CleanRecord{
		Brand: "TESLA", Model: "MODEL 3", Generation: GenerationNA, Year: 2022, Price: 35000,
		Horsepower: 320, Battery: strPtr("75kWh"), Energy: "Electrique",
	})
	svc := NewInsightService(utils.NewLogger(false))
	r := svc.Generate(records)
	if r.ElectrifiedShare != 0.2 {
		t.Errorf("ElectrifiedShare: got %.2f, want 0.20", r.ElectrifiedShare)
	}
}

func TestInsightEmptyInput(t *testing.T) {
	svc := NewInsightService(utils.NewLogger(false))
	r := svc.Generate(nil)
	if r.TotalListings != 0 {
		t.Errorf("expected 0 total listings for empty input")
	}
	if r.Cheapest != nil || r.MostExpensive != nil {
		t.Errorf("expected no extremes for empty input")
	}
}

func TestSortedCounts(t *testing.T) {
	got := sortedCounts(map[string]int{"PEUGEOT": 1, "RENAULT": 2, "CITROEN": 1})
	want := []keyCount{{"RENAULT", 2}, {"CITROEN", 1}, {"PEUGEOT", 1}}
	if len(got) != len(want) {
		t.Fatalf("got %d entries, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("CITROEN C3 AIRCROSS", 10); got != "CITROEN..." {
		t.Errorf("truncate: got %q", got)
	}
	if got := truncate("FÉLINE", 10); got != "FÉLINE" {
		t.Errorf("truncate short string: got %q", got)
	}
}
