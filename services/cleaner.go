package services

import (
	"context"
	"strings"

	"listing-cleaner/catalog"
	"listing-cleaner/models"
	"listing-cleaner/utils"
)

// Report counts what each cleaning stage removed.
type Report struct {
	Raw               int
	CorruptWarranty   int
	Placeholder       int
	EnergyError       int
	MissingHorsepower int
	Duplicate         int
	MissingBrand      int
	Kept              int
}

// Dropped is the total number of rows removed by the run.
func (r Report) Dropped() int { return r.Raw - r.Kept }

// Cleaner transforms RawListings into clean, typed records.
type Cleaner struct {
	logger  *utils.Logger
	workers int
}

// NewCleaner creates a Cleaner. workers > 1 splits row extraction across
// that many goroutines; the output does not depend on it.
func NewCleaner(logger *utils.Logger, workers int) *Cleaner {
	if workers < 1 {
		workers = 1
	}
	return &Cleaner{logger: logger, workers: workers}
}

// Clean runs the whole pipeline: title, numerics, warranty, engine, then the
// filter chain. Bad rows never cause an error; they are dropped.
// Output order follows input order.
func (c *Cleaner) Clean(raw []*models.RawListing, cat *catalog.Catalog) ([]*models.CleanRecord, Report) {
	var report Report

	extracted := make([]*Row, len(raw))
	corrupt := make([]bool, len(raw))
	_ = utils.ForEachPartition(context.Background(), len(raw), c.workers, func(_ context.Context, lo, hi int) error {
		for i := lo; i < hi; i++ {
			if raw[i] == nil {
				continue
			}
			extracted[i], corrupt[i] = extractRow(raw[i], cat)
		}
		return nil
	})

	rows := make([]*Row, 0, len(raw))
	for i, r := range extracted {
		if raw[i] == nil {
			continue
		}
		report.Raw++
		switch {
		case corrupt[i]:
			report.CorruptWarranty++
			c.logger.Debug("[cleaner] Corrupt warranty %q dropped: %s", raw[i].WarrantyText, raw[i].URL)
		case r != nil:
			rows = append(rows, r)
		}
	}

	rows = dropStep(&report.Placeholder, rows, DropPlaceholders)
	rows = dropStep(&report.EnergyError, rows, DropEnergyErrors)
	rows = dropStep(&report.MissingHorsepower, rows, DropMissingHorsepower)
	rows = dropStep(&report.Duplicate, rows, Dedup)
	rows = dropStep(&report.MissingBrand, rows, DropMissingBrand)

	result := make([]*models.CleanRecord, len(rows))
	for i, r := range rows {
		result[i] = r.Record()
	}
	report.Kept = len(result)

	c.logger.Info("[cleaner] Cleaned %d → %d listings (dropped %d)",
		report.Raw, report.Kept, report.Dropped())
	c.logger.Debug("[cleaner] Drops: warranty=%d placeholder=%d energy=%d horsepower=%d duplicate=%d brand=%d",
		report.CorruptWarranty, report.Placeholder, report.EnergyError,
		report.MissingHorsepower, report.Duplicate, report.MissingBrand)
	return result, report
}

func dropStep(counter *int, rows []*Row, fn func([]*Row) []*Row) []*Row {
	out := fn(rows)
	*counter += len(rows) - len(out)
	return out
}

// extractRow parses every field of one listing. The second result is true
// when the warranty marks the row as corrupt and it must be dropped.
func extractRow(raw *models.RawListing, cat *catalog.Catalog) (*Row, bool) {
	months, status := ParseWarranty(raw.WarrantyText)
	if status == WarrantyCorrupt {
		return nil, true
	}

	row := &Row{
		Engine:         ParseEngine(raw.EngineText),
		Gearbox:        raw.Gearbox,
		Energy:         raw.Energy,
		MarketPosition: raw.MarketPosition,
		URL:            strings.TrimSpace(raw.URL),
	}
	if id, ok := DecomposeTitle(raw.Title, cat); ok {
		row.Identity = &id
	}
	if y, ok := ParseYear(raw.YearText); ok {
		row.Year = &y
	}
	if km, ok := ParseMileage(raw.MileageText); ok {
		row.Mileage = &km
	}
	if p, ok := ParsePrice(raw.PriceText); ok {
		row.Price = &p
	}
	if status == WarrantyOK {
		row.WarrantyMonths = &months
	}
	return row, false
}
