package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"listing-cleaner/models"
)

// CSVWriter writes clean records to a CSV file. Null fields are empty cells.
// It is safe for concurrent use.
type CSVWriter struct {
	mu     sync.Mutex
	file   *os.File
	writer *csv.Writer
}

// NewCSVWriter creates (or truncates) the CSV file at the given path and
// writes the header row. Intermediate directories are created automatically.
func NewCSVWriter(path string) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(recordColumns); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("csv: write header: %w", err)
	}
	w.Flush()

	return &CSVWriter{file: f, writer: w}, nil
}

// Write appends one row per record.
func (c *CSVWriter) Write(records []*models.CleanRecord) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, r := range records {
		row := []string{
			r.Brand,
			r.Model,
			r.Generation,
			strconv.FormatInt(int64(r.Year), 10),
			strconv.FormatInt(r.Mileage, 10),
			strconv.FormatInt(r.Price, 10),
			strconv.FormatInt(r.WarrantyMonths, 10),
			cell(r.Displacement),
			cell(r.EngineCode),
			strconv.FormatInt(r.Horsepower, 10),
			cell(r.Trim),
			cell(r.Battery),
			r.Gearbox,
			r.Energy,
			r.MarketPosition,
			r.URL,
		}
		if err := c.writer.Write(row); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	c.writer.Flush()
	return c.writer.Error()
}

// Close flushes and closes the underlying file.
func (c *CSVWriter) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.writer.Flush()
	return c.file.Close()
}

func cell(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
