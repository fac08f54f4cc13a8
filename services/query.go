package services

import (
	"sort"
	"strings"

	"listing-cleaner/models"
)

// Query selects clean records the way the buyer dashboard filters them.
// Empty lists do not restrict; a zero maximum means no upper bound.
type Query struct {
	Brands     []string
	Models     []string
	Gearboxes  []string
	Energies   []string
	YearMin    int32
	YearMax    int32
	MileageMin int64
	MileageMax int64
	PriceMin   int64
	PriceMax   int64
}

// Match reports whether r satisfies every criterion of q.
// Brand and model comparisons ignore case.
func (q Query) Match(r *models.CleanRecord) bool {
	switch {
	case !inFold(q.Brands, r.Brand),
		!inFold(q.Models, r.Model),
		!in(q.Gearboxes, r.Gearbox),
		!in(q.Energies, r.Energy):
		return false
	case r.Year < q.YearMin || (q.YearMax != 0 && r.Year > q.YearMax):
		return false
	case r.Mileage < q.MileageMin || (q.MileageMax != 0 && r.Mileage > q.MileageMax):
		return false
	case r.Price < q.PriceMin || (q.PriceMax != 0 && r.Price > q.PriceMax):
		return false
	}
	return true
}

// Count returns how many records match q.
func Count(records []*models.CleanRecord, q Query) int {
	n := 0
	for _, r := range records {
		if q.Match(r) {
			n++
		}
	}
	return n
}

// AveragePrice is the mean price of the matching records rounded to cents,
// or 0 when nothing matches.
func AveragePrice(records []*models.CleanRecord, q Query) float64 {
	var (
		total int64
		n     int
	)
	for _, r := range records {
		if q.Match(r) {
			total += r.Price
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return round2(float64(total) / float64(n))
}

// YearRange returns the oldest and newest year on sale. An empty brand
// covers the whole dataset; otherwise only that brand and model are used.
func YearRange(records []*models.CleanRecord, brand, model string) (oldest, newest int32, ok bool) {
	for _, r := range records {
		if brand != "" && !(strings.EqualFold(r.Brand, brand) && strings.EqualFold(r.Model, model)) {
			continue
		}
		if !ok || r.Year < oldest {
			oldest = r.Year
		}
		if !ok || r.Year > newest {
			newest = r.Year
		}
		ok = true
	}
	return oldest, newest, ok
}

// UniqueBrands lists the distinct brands, sorted.
func UniqueBrands(records []*models.CleanRecord) []string {
	return distinct(records, func(r *models.CleanRecord) *string { return &r.Brand })
}

// UniqueModels lists the distinct models of brand, sorted.
func UniqueModels(records []*models.CleanRecord, brand string) []string {
	return distinct(records, func(r *models.CleanRecord) *string {
		if !strings.EqualFold(r.Brand, brand) {
			return nil
		}
		return &r.Model
	})
}

// UniqueGenerations lists the distinct generations of a brand and model.
func UniqueGenerations(records []*models.CleanRecord, brand, model string) []string {
	return distinct(records, forModel(brand, model, func(r *models.CleanRecord) *string { return &r.Generation }))
}

// UniqueEngineCodes lists the distinct engine codes of a brand and model.
func UniqueEngineCodes(records []*models.CleanRecord, brand, model string) []string {
	return distinct(records, forModel(brand, model, func(r *models.CleanRecord) *string { return r.EngineCode }))
}

// UniqueDisplacements lists the distinct displacements of a brand and model.
func UniqueDisplacements(records []*models.CleanRecord, brand, model string) []string {
	return distinct(records, forModel(brand, model, func(r *models.CleanRecord) *string { return r.Displacement }))
}

func forModel(brand, model string, field func(*models.CleanRecord) *string) func(*models.CleanRecord) *string {
	return func(r *models.CleanRecord) *string {
		if !strings.EqualFold(r.Brand, brand) || !strings.EqualFold(r.Model, model) {
			return nil
		}
		return field(r)
	}
}

// distinct collects the non-nil, non-empty values of field, sorted.
func distinct(records []*models.CleanRecord, field func(*models.CleanRecord) *string) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, r := range records {
		v := field(r)
		if v == nil || *v == "" {
			continue
		}
		if _, dup := seen[*v]; dup {
			continue
		}
		seen[*v] = struct{}{}
		out = append(out, *v)
	}
	sort.Strings(out)
	return out
}

func inFold(set []string, v string) bool {
	if len(set) == 0 {
		return true
	}
	for _, s := range set {
		if strings.EqualFold(s, v) {
			return true
		}
	}
	return false
}

func in(set []string, v string) bool {
	if len(set) == 0 {
		return true
	}
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
