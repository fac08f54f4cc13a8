package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"listing-cleaner/models"
)

// Field names written by the marketplace scraper.
const (
	fieldTitle    = "marque"
	fieldEngine   = "cylindre"
	fieldYear     = "annee"
	fieldMileage  = "kilometrage"
	fieldGearbox  = "boite"
	fieldEnergy   = "energie"
	fieldPrice    = "prix"
	fieldMarket   = "position_marché"
	fieldWarranty = "garantie"
	fieldURL      = "lien"
)

var rawFields = []string{
	fieldTitle, fieldEngine, fieldYear, fieldMileage, fieldGearbox,
	fieldEnergy, fieldPrice, fieldMarket, fieldWarranty, fieldURL,
}

// ErrMissingField is returned when a raw file lacks one of the scraper fields.
var ErrMissingField = errors.New("missing field")

// ReadRawFiles loads raw listings from every path, in order.
// ".json" files hold an array of objects; ".csv" files carry a header row.
func ReadRawFiles(paths []string) ([]*models.RawListing, error) {
	if len(paths) == 0 {
		return nil, errors.New("raw: no input files")
	}

	var all []*models.RawListing
	for _, path := range paths {
		listings, err := readRawFile(path)
		if err != nil {
			return nil, err
		}
		all = append(all, listings...)
	}
	return all, nil
}

func readRawFile(path string) ([]*models.RawListing, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("raw: open %q: %w", path, err)
	}
	defer f.Close()

	var listings []*models.RawListing
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		listings, err = ReadRawJSON(f)
	case ".csv":
		listings, err = ReadRawCSV(f)
	default:
		return nil, fmt.Errorf("raw: %q: unsupported extension %q", path, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("raw: %q: %w", path, err)
	}
	return listings, nil
}

// ReadRawJSON decodes an array of scraper objects. Numbers are kept in
// their textual form and JSON null becomes an empty string.
func ReadRawJSON(r io.Reader) ([]*models.RawListing, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var objects []map[string]any
	if err := dec.Decode(&objects); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}

	listings := make([]*models.RawListing, 0, len(objects))
	for i, obj := range objects {
		values := make(map[string]string, len(rawFields))
		for _, name := range rawFields {
			v, ok := obj[name]
			if !ok {
				return nil, fmt.Errorf("record %d: %w %q", i, ErrMissingField, name)
			}
			values[name] = jsonText(v)
		}
		listings = append(listings, fromFields(values))
	}
	return listings, nil
}

func jsonText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}

// ReadRawCSV reads a header row naming the scraper fields, then one
// listing per record. Extra columns are ignored.
func ReadRawCSV(r io.Reader) ([]*models.RawListing, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimPrefix(strings.TrimSpace(name), "\ufeff")] = i
	}
	for _, name := range rawFields {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("header: %w %q", ErrMissingField, name)
		}
	}

	var listings []*models.RawListing
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record: %w", err)
		}
		values := make(map[string]string, len(rawFields))
		for _, name := range rawFields {
			values[name] = rec[index[name]]
		}
		listings = append(listings, fromFields(values))
	}
	return listings, nil
}

func fromFields(v map[string]string) *models.RawListing {
	return &models.RawListing{
		Title:          v[fieldTitle],
		EngineText:     v[fieldEngine],
		YearText:       v[fieldYear],
		MileageText:    v[fieldMileage],
		Gearbox:        v[fieldGearbox],
		Energy:         v[fieldEnergy],
		PriceText:      v[fieldPrice],
		MarketPosition: v[fieldMarket],
		WarrantyText:   v[fieldWarranty],
		URL:            v[fieldURL],
	}
}
