package storage

import "listing-cleaner/models"

// RecordWriter is the interface any clean-output backend must satisfy.
type RecordWriter interface {
	Write(records []*models.CleanRecord) error
	Close() error
}

// RecordFetcher reads back what a database backend stored.
// Used by the insight service.
type RecordFetcher interface {
	FetchAll() ([]*models.CleanRecord, error)
}
