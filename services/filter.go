package services

import "listing-cleaner/models"

const (
	// energyError is what the scraper writes when a card had no energy type.
	energyError = "erreur"

	placeholderYear       = 2024
	placeholderMaxMileage = 50000
)

// Row is a listing part way through cleaning. Extracted fields stay
// nullable until the filter stage decides whether the row survives.
type Row struct {
	Identity       *Identity
	Year           *int32
	Mileage        *int64
	Price          *int64
	WarrantyMonths *int64
	Engine         Engine
	Gearbox        string
	Energy         string
	MarketPosition string
	URL            string
}

// FilterRows applies the business rules that come before deduplication:
// placeholder rows, energy errors, then rows without horsepower.
func FilterRows(rows []*Row) []*Row {
	rows = DropPlaceholders(rows)
	rows = DropEnergyErrors(rows)
	return DropMissingHorsepower(rows)
}

// DropPlaceholders removes brand-new inventory cards that advertise a 2024
// car with more than 50000 km. Rows whose year, mileage, price or warranty
// could not be parsed go with them.
func DropPlaceholders(rows []*Row) []*Row {
	return keep(rows, func(r *Row) bool {
		if r.Year == nil || r.Mileage == nil || r.Price == nil || r.WarrantyMonths == nil {
			return false
		}
		return !(*r.Year == placeholderYear && *r.Mileage > placeholderMaxMileage)
	})
}

// DropEnergyErrors removes rows whose energy type the scraper could not read.
func DropEnergyErrors(rows []*Row) []*Row {
	return keep(rows, func(r *Row) bool { return r.Energy != energyError })
}

// DropMissingHorsepower removes rows that cannot be priced.
func DropMissingHorsepower(rows []*Row) []*Row {
	return keep(rows, func(r *Row) bool { return r.Engine.Horsepower != nil })
}

// Dedup keeps the first row seen for every URL.
func Dedup(rows []*Row) []*Row {
	seen := make(map[string]struct{}, len(rows))
	return keep(rows, func(r *Row) bool {
		if _, dup := seen[r.URL]; dup {
			return false
		}
		seen[r.URL] = struct{}{}
		return true
	})
}

// DropMissingBrand removes rows whose title matched no catalog brand/model.
func DropMissingBrand(rows []*Row) []*Row {
	return keep(rows, func(r *Row) bool { return r.Identity != nil })
}

func keep(rows []*Row, pred func(*Row) bool) []*Row {
	out := make([]*Row, 0, len(rows))
	for _, r := range rows {
		if pred(r) {
			out = append(out, r)
		}
	}
	return out
}

// Record converts a row that went through every filter. It must only be
// called on rows that survived FilterRows and DropMissingBrand.
func (r *Row) Record() *models.CleanRecord {
	return &models.CleanRecord{
		Brand:          r.Identity.Brand,
		Model:          r.Identity.Model,
		Generation:     r.Identity.Generation,
		Year:           *r.Year,
		Mileage:        *r.Mileage,
		Price:          *r.Price,
		WarrantyMonths: *r.WarrantyMonths,
		Displacement:   r.Engine.Displacement,
		EngineCode:     r.Engine.EngineCode,
		Horsepower:     *r.Engine.Horsepower,
		Trim:           r.Engine.Trim,
		Battery:        r.Engine.Battery,
		Gearbox:        r.Gearbox,
		Energy:         r.Energy,
		MarketPosition: r.MarketPosition,
		URL:            r.URL,
	}
}
