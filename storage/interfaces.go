package storage

import "housing-dashboard/models"

// DatasetWriter is the interface any storage backend must satisfy.
type DatasetWriter interface {
	Write(listings []*models.Listing) error
	Close() error
}

// DatasetSource can hand the full dataset back, e.g. as an alternative to
// re-reading the CSV.
type DatasetSource interface {
	FetchAll() ([]*models.Listing, error)
}
