package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"listing-cleaner/models"
)

// SQLiteWriter persists clean records to a local SQLite file.
type SQLiteWriter struct {
	db *sql.DB
}

// NewSQLiteWriter opens (or creates) the database at path and migrates the
// listings table.
func NewSQLiteWriter(path string) (*SQLiteWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("sqlite: create output dir: %w", err)
	}

	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", path))
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	db.SetMaxOpenConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: ping: %w", err)
	}

	sw := &SQLiteWriter{db: db}
	if err := sw.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: migrate: %w", err)
	}
	return sw, nil
}

func (sw *SQLiteWriter) migrate() error {
	_, err := sw.db.Exec(`
		CREATE TABLE IF NOT EXISTS listings (
			brand           TEXT    NOT NULL,
			model           TEXT    NOT NULL,
			generation      TEXT    NOT NULL,
			year            INTEGER NOT NULL,
			mileage         INTEGER NOT NULL,
			price           INTEGER NOT NULL,
			warranty_months INTEGER NOT NULL,
			displacement    TEXT,
			engine_code     TEXT,
			horsepower      INTEGER NOT NULL,
			trim_level      TEXT,
			battery         TEXT,
			gearbox         TEXT    NOT NULL DEFAULT '',
			energy          TEXT    NOT NULL DEFAULT '',
			market_position TEXT    NOT NULL DEFAULT '',
			url             TEXT    PRIMARY KEY
		);

		CREATE INDEX IF NOT EXISTS idx_listings_brand_model ON listings(brand, model);
		CREATE INDEX IF NOT EXISTS idx_listings_price       ON listings(price);
	`)
	return err
}

// Write replaces the table contents with records in a single transaction.
func (sw *SQLiteWriter) Write(records []*models.CleanRecord) error {
	tx, err := sw.db.Begin()
	if err != nil {
		return fmt.Errorf("sqlite: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM listings"); err != nil {
		return fmt.Errorf("sqlite: clear: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO listings (` + selectColumns() + `) VALUES ` +
		placeholders(len(recordColumns), 0, false) + ` ON CONFLICT(url) DO NOTHING`)
	if err != nil {
		return fmt.Errorf("sqlite: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.Exec(recordArgs(r)...); err != nil {
			return fmt.Errorf("sqlite: insert %q: %w", r.URL, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: commit: %w", err)
	}
	return nil
}

// FetchAll returns every stored record in insertion order.
func (sw *SQLiteWriter) FetchAll() ([]*models.CleanRecord, error) {
	rows, err := sw.db.Query(`SELECT ` + selectColumns() + ` FROM listings ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: fetch all: %w", err)
	}
	defer rows.Close()

	var records []*models.CleanRecord
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scan row: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func (sw *SQLiteWriter) Close() error {
	if sw == nil || sw.db == nil {
		return nil
	}
	return sw.db.Close()
}
