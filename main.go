package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"listing-cleaner/catalog"
	"listing-cleaner/config"
	"listing-cleaner/models"
	"listing-cleaner/services"
	"listing-cleaner/storage"
	"listing-cleaner/utils"
)

func main() {
	cfg := config.Load()
	logger := utils.NewLogger(cfg.LogDebug)

	logger.Info("=== Listing Cleaner starting (run %s) ===", uuid.NewString())
	logger.Info("Config: catalog %s | inputs %s | workers %d",
		cfg.CatalogPath, strings.Join(cfg.RawInputPaths, ","), cfg.Workers)

	if err := run(cfg, logger); err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *utils.Logger) error {
	outDir := filepath.Dir(cfg.CSVOutputPath)
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	lock := flock.New(filepath.Join(outDir, ".listing-cleaner.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire run lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("another run is writing to %s", outDir)
	}
	defer lock.Unlock()

	if cfg.CatalogHTMLPath != "" {
		if err := rebuildCatalog(cfg.CatalogHTMLPath, cfg.CatalogPath, logger); err != nil {
			return err
		}
	}

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return err
	}
	logger.Info("[catalog] Loaded %d brands from %s", cat.Len(), cfg.CatalogPath)

	raw, err := storage.ReadRawFiles(cfg.RawInputPaths)
	if err != nil {
		return err
	}
	logger.Info("[raw] Read %d raw listings", len(raw))

	cleaner := services.NewCleaner(logger, cfg.Workers)
	records, report := cleaner.Clean(raw, cat)
	if len(records) == 0 {
		logger.Warn("All %d listings were dropped during cleaning", report.Raw)
	}

	csvWriter, err := storage.NewCSVWriter(cfg.CSVOutputPath)
	if err != nil {
		return err
	}
	defer csvWriter.Close()
	if err := csvWriter.Write(records); err != nil {
		return err
	}
	logger.Info("[storage] Clean listings saved to %s", cfg.CSVOutputPath)

	var fetcher storage.RecordFetcher

	if cfg.SQLitePath != "" {
		sqliteWriter, err := storage.NewSQLiteWriter(cfg.SQLitePath)
		if err != nil {
			return err
		}
		defer sqliteWriter.Close()
		if err := sqliteWriter.Write(records); err != nil {
			return err
		}
		logger.Info("[storage] Clean listings stored in %s (table: listings)", cfg.SQLitePath)
		fetcher = sqliteWriter
	}

	if cfg.PostgresEnabled {
		pgWriter, err := storage.NewPostgresWriter(cfg.DSN(), utils.RetryConfig{
			MaxAttempts: cfg.MaxRetries,
			BaseDelay:   2 * time.Second,
			Logger:      logger,
		})
		if err != nil {
			logger.Error("Make sure PostgreSQL is running: docker compose up -d")
			return err
		}
		defer pgWriter.Close()
		if err := pgWriter.Write(records); err != nil {
			logger.Error("PostgreSQL write failed: %v", err)
		} else {
			logger.Info("[storage] Clean listings stored in PostgreSQL (table: listings)")
			fetcher = pgWriter
		}
	}

	insightSvc := services.NewInsightService(logger)
	insightSvc.Print(insightSvc.Generate(insightRecords(fetcher, records, logger)))

	fmt.Printf("  Done. %d kept, %d dropped. Clean CSV → %s\n\n",
		report.Kept, report.Dropped(), cfg.CSVOutputPath)
	return nil
}

// rebuildCatalog extracts brands and models from a saved marketplace home
// page and overwrites the catalog file with them.
func rebuildCatalog(htmlPath, catalogPath string, logger *utils.Logger) error {
	f, err := os.Open(htmlPath)
	if err != nil {
		return fmt.Errorf("catalog: open %q: %w", htmlPath, err)
	}
	defer f.Close()

	cat, err := catalog.FromHTML(f)
	if err != nil {
		return err
	}
	if err := cat.Save(catalogPath); err != nil {
		return err
	}
	logger.Info("[catalog] Rebuilt %s from %s (%d brands)", catalogPath, htmlPath, cat.Len())
	return nil
}

// insightRecords prefers what the database holds and falls back to the
// in-memory result.
func insightRecords(fetcher storage.RecordFetcher, records []*models.CleanRecord, logger *utils.Logger) []*models.CleanRecord {
	if fetcher == nil {
		return records
	}
	stored, err := fetcher.FetchAll()
	if err != nil {
		logger.Error("Failed to fetch listings from DB for insights: %v", err)
		return records
	}
	return stored
}
