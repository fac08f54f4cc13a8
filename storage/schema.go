package storage

import (
	"database/sql"
	"strconv"
	"strings"

	"listing-cleaner/models"
)

// recordColumns is the column order shared by every backend.
var recordColumns = []string{
	"brand", "model", "generation", "year", "mileage", "price", "warranty_months",
	"displacement", "engine_code", "horsepower", "trim_level", "battery",
	"gearbox", "energy", "market_position", "url",
}

func recordArgs(r *models.CleanRecord) []any {
	return []any{
		r.Brand, r.Model, r.Generation, r.Year, r.Mileage, r.Price, r.WarrantyMonths,
		nullString(r.Displacement), nullString(r.EngineCode), r.Horsepower, nullString(r.Trim), nullString(r.Battery),
		r.Gearbox, r.Energy, r.MarketPosition, r.URL,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(s rowScanner) (*models.CleanRecord, error) {
	r := &models.CleanRecord{}
	var displacement, code, trim, battery sql.NullString
	if err := s.Scan(
		&r.Brand, &r.Model, &r.Generation, &r.Year, &r.Mileage, &r.Price, &r.WarrantyMonths,
		&displacement, &code, &r.Horsepower, &trim, &battery,
		&r.Gearbox, &r.Energy, &r.MarketPosition, &r.URL,
	); err != nil {
		return nil, err
	}
	r.Displacement = stringPtr(displacement)
	r.EngineCode = stringPtr(code)
	r.Trim = stringPtr(trim)
	r.Battery = stringPtr(battery)
	return r, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

// placeholders renders "(?,?,...)" or, with numbered set, "($1,$2,...)"
// starting after offset.
func placeholders(n, offset int, numbered bool) string {
	parts := make([]string, n)
	for i := range parts {
		if numbered {
			parts[i] = "$" + strconv.Itoa(offset+i+1)
		} else {
			parts[i] = "?"
		}
	}
	return "(" + strings.Join(parts, ",") + ")"
}

func selectColumns() string {
	return strings.Join(recordColumns, ", ")
}
