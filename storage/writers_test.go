package storage

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"listing-cleaner/models"
)

func strPtr(s string) *string { return &s }

func sampleRecords() []*models.CleanRecord {
	return []*models.CleanRecord{
		{
			Brand: "CITROEN", Model: "C3", Generation: "III", Year: 2019, Mileage: 10698, Price: 15990,
			WarrantyMonths: 12, Displacement: strPtr("1.2"), EngineCode: strPtr("PURETECH"), Horsepower: 110,
			Trim: strPtr("FEEL"), Gearbox: "Automatique", Energy: "Essence", MarketPosition: "Bonne affaire",
			URL: "https://www.lacentrale.fr/auto-occasion-annonce-69112858137.html",
		},
		{
			Brand: "TESLA", Model: "MODEL 3", Generation: "NA", Year: 2022, Mileage: 30000, Price: 35000,
			Horsepower: 320, Battery: strPtr("75kWh"), Gearbox: "Automatique", Energy: "Electrique",
			URL: "https://www.lacentrale.fr/auto-occasion-annonce-1.html",
		},
	}
}

func TestCSVWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "clean.csv")
	w, err := NewCSVWriter(path)
	if err != nil {
		t.Fatalf("NewCSVWriter: %v", err)
	}
	if err := w.Write(sampleRecords()); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header + 2", len(rows))
	}
	if strings.Join(rows[0], ",") != strings.Join(recordColumns, ",") {
		t.Errorf("header = %v", rows[0])
	}

	tesla := rows[2]
	want := []string{
		"TESLA", "MODEL 3", "NA", "2022", "30000", "35000", "0",
		"", "", "320", "", "75kWh",
		"Automatique", "Electrique", "", "https://www.lacentrale.fr/auto-occasion-annonce-1.html",
	}
	if !reflect.DeepEqual(tesla, want) {
		t.Errorf("row = %q\nwant  %q", tesla, want)
	}
}

func TestSQLiteWriterRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "listings.db")
	w, err := NewSQLiteWriter(path)
	if err != nil {
		t.Fatalf("NewSQLiteWriter: %v", err)
	}
	defer w.Close()

	records := sampleRecords()
	if err := w.Write(records); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := w.FetchAll()
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	if !reflect.DeepEqual(got, records) {
		t.Errorf("round trip mismatch:\n got  %+v\n want %+v", got, records)
	}
}

func TestSQLiteWriterReplacesContents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "listings.db")
	w, err := NewSQLiteWriter(path)
	if err != nil {
		t.Fatalf("NewSQLiteWriter: %v", err)
	}
	defer w.Close()

	if err := w.Write(sampleRecords()); err != nil {
		t.Fatalf("first Write: %v", err)
	}
	if err := w.Write(sampleRecords()[:1]); err != nil {
		t.Fatalf("second Write: %v", err)
	}
	got, err := w.FetchAll()
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	if len(got) != 1 || got[0].Brand != "CITROEN" {
		t.Errorf("after second run got %d records, want only the CITROEN", len(got))
	}
}

func TestInsertBatchQuery(t *testing.T) {
	query, args := insertBatchQuery(sampleRecords())
	if len(args) != 2*len(recordColumns) {
		t.Fatalf("got %d args, want %d", len(args), 2*len(recordColumns))
	}
	if !strings.Contains(query, "($17,$18,") || !strings.Contains(query, ",$32)") {
		t.Errorf("second row placeholders are not numbered from 17: %s", query)
	}
	if !strings.Contains(query, "ON CONFLICT (url) DO NOTHING") {
		t.Errorf("query lacks conflict clause: %s", query)
	}
}

var (
	_ RecordWriter  = (*CSVWriter)(nil)
	_ RecordWriter  = (*SQLiteWriter)(nil)
	_ RecordFetcher = (*SQLiteWriter)(nil)
	_ RecordWriter  = (*PostgresWriter)(nil)
	_ RecordFetcher = (*PostgresWriter)(nil)
)
