package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadRawFilesMergesInOrder(t *testing.T) {
	listings, err := ReadRawFiles([]string{
		filepath.Join("testdata", "raw_listings.json"),
		filepath.Join("testdata", "raw_listings.csv"),
	})
	if err != nil {
		t.Fatalf("ReadRawFiles: %v", err)
	}
	if len(listings) != 3 {
		t.Fatalf("got %d listings, want 3", len(listings))
	}

	first := listings[0]
	if first.Title != "CITROEN C3 III" || first.MileageText != "10 698 km" || first.PriceText != "15 990 €" {
		t.Errorf("first listing decoded wrong: %+v", *first)
	}
	if first.MarketPosition != "Bonne affaire" || first.Gearbox != "Automatique" {
		t.Errorf("first listing decoded wrong: %+v", *first)
	}

	second := listings[1]
	if second.YearText != "2021" {
		t.Errorf("numeric year: got %q, want %q", second.YearText, "2021")
	}
	if second.MarketPosition != "" {
		t.Errorf("null field: got %q, want empty", second.MarketPosition)
	}

	third := listings[2]
	if third.Title != "RENAULT CLIO V" || third.WarrantyText != "Garantie 12 mois" {
		t.Errorf("csv listing decoded wrong: %+v", *third)
	}
	if !strings.HasSuffix(third.URL, "69113055717.html") {
		t.Errorf("csv url: got %q", third.URL)
	}
}

func TestReadRawFilesErrors(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
		return path
	}

	tests := []struct {
		name    string
		paths   []string
		missing bool
	}{
		{"no paths", nil, false},
		{"missing file", []string{filepath.Join(dir, "nope.json")}, false},
		{"unsupported extension", []string{write("raw.parquet", "")}, false},
		{"malformed json", []string{write("bad.json", `[{"marque": `)}, false},
		{"json object missing a field", []string{write("short.json", `[{"marque": "CITROEN C3"}]`)}, true},
		{"csv header missing a field", []string{write("short.csv", "marque,cylindre\nCITROEN C3,1.2\n")}, true},
		{"empty csv", []string{write("empty.csv", "")}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadRawFiles(tt.paths)
			if err == nil {
				t.Fatal("expected an error")
			}
			if got := errors.Is(err, ErrMissingField); got != tt.missing {
				t.Errorf("errors.Is(err, ErrMissingField) = %v; want %v (err: %v)", got, tt.missing, err)
			}
		})
	}
}

func TestReadRawJSONEmptyArray(t *testing.T) {
	listings, err := ReadRawJSON(strings.NewReader("[]"))
	if err != nil {
		t.Fatalf("ReadRawJSON: %v", err)
	}
	if len(listings) != 0 {
		t.Errorf("got %d listings, want 0", len(listings))
	}
}
