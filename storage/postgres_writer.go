package storage

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"

	"listing-cleaner/models"
	"listing-cleaner/utils"
)

// PostgresWriter persists clean records to PostgreSQL.
type PostgresWriter struct {
	db *sql.DB
}

// NewPostgresWriter opens a connection to PostgreSQL, retrying the ping with
// retry, runs schema migrations, and returns a ready-to-use PostgresWriter.
func NewPostgresWriter(dsn string, retry utils.RetryConfig) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	if err := retry.Do("postgres ping", db.Ping); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: %w", err)
	}

	pw := &PostgresWriter{db: db}
	if err := pw.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return pw, nil
}

func (pw *PostgresWriter) migrate() error {
	_, err := pw.db.Exec(`
		CREATE TABLE IF NOT EXISTS listings (
			id              SERIAL PRIMARY KEY,
			brand           VARCHAR(64) NOT NULL,
			model           VARCHAR(64) NOT NULL,
			generation      TEXT        NOT NULL,
			year            INTEGER     NOT NULL,
			mileage         BIGINT      NOT NULL,
			price           BIGINT      NOT NULL,
			warranty_months BIGINT      NOT NULL,
			displacement    TEXT,
			engine_code     TEXT,
			horsepower      BIGINT      NOT NULL,
			trim_level      TEXT,
			battery         TEXT,
			gearbox         TEXT        NOT NULL DEFAULT '',
			energy          TEXT        NOT NULL DEFAULT '',
			market_position TEXT        NOT NULL DEFAULT '',
			url             TEXT        UNIQUE NOT NULL,
			created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_listings_brand_model ON listings(brand, model);
		CREATE INDEX IF NOT EXISTS idx_listings_price       ON listings(price);
		CREATE INDEX IF NOT EXISTS idx_listings_year        ON listings(year);
	`)
	return err
}

// Clear deletes all existing records from the table.
func (pw *PostgresWriter) Clear() error {
	_, err := pw.db.Exec("DELETE FROM listings")
	if err != nil {
		return fmt.Errorf("postgres: clear: %w", err)
	}
	return nil
}

// Write batch-inserts all clean records, clearing old data first.
func (pw *PostgresWriter) Write(records []*models.CleanRecord) error {
	if len(records) == 0 {
		return nil
	}

	if err := pw.Clear(); err != nil {
		return err
	}

	const batchSize = 50
	for i := 0; i < len(records); i += batchSize {
		end := i + batchSize
		if end > len(records) {
			end = len(records)
		}
		if err := pw.insertBatch(records[i:end]); err != nil {
			return fmt.Errorf("postgres: insert batch at %d: %w", i, err)
		}
	}
	return nil
}

func (pw *PostgresWriter) insertBatch(batch []*models.CleanRecord) error {
	query, args := insertBatchQuery(batch)
	_, err := pw.db.Exec(query, args...)
	return err
}

// insertBatchQuery builds one multi-row INSERT with numbered placeholders.
func insertBatchQuery(batch []*models.CleanRecord) (string, []any) {
	width := len(recordColumns)
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]any, 0, len(batch)*width)

	for idx, r := range batch {
		valueStrings = append(valueStrings, placeholders(width, idx*width, true))
		valueArgs = append(valueArgs, recordArgs(r)...)
	}

	query := fmt.Sprintf(`
		INSERT INTO listings (%s)
		VALUES %s
		ON CONFLICT (url) DO NOTHING
	`, selectColumns(), strings.Join(valueStrings, ","))
	return query, valueArgs
}

func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}

// FetchAll retrieves all stored records, used by the insight service.
func (pw *PostgresWriter) FetchAll() ([]*models.CleanRecord, error) {
	rows, err := pw.db.Query(`SELECT ` + selectColumns() + ` FROM listings ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("postgres: fetch all: %w", err)
	}
	defer rows.Close()

	var records []*models.CleanRecord
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres: scan row: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
