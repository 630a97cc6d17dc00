package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"housing-dashboard/models"
)

// PostgresWriter persists the loaded dataset to PostgreSQL.
type PostgresWriter struct {
	db *sql.DB
}

// NewPostgresWriter opens a connection to PostgreSQL, runs schema migrations,
// and returns a ready-to-use PostgresWriter.
func NewPostgresWriter(dsn string) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	for i := 0; i < 10; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: ping failed after retries: %w", err)
	}

	pw := &PostgresWriter{db: db}
	if err := pw.migrate(); err != nil {
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return pw, nil
}

func (pw *PostgresWriter) migrate() error {
	_, err := pw.db.Exec(`
		CREATE TABLE IF NOT EXISTS listings (
			id          SERIAL PRIMARY KEY,
			address     TEXT          NOT NULL DEFAULT '',
			city        TEXT          NOT NULL,
			price       NUMERIC(12,2) NOT NULL DEFAULT 0,
			beds        NUMERIC(4,1)  NOT NULL DEFAULT 0,
			baths       NUMERIC(4,1)  NOT NULL DEFAULT 0,
			square_feet NUMERIC(10,1) NOT NULL DEFAULT 0,
			latitude    NUMERIC(9,6),
			longitude   NUMERIC(9,6)
		);

		CREATE INDEX IF NOT EXISTS idx_listings_price ON listings(price);
		CREATE INDEX IF NOT EXISTS idx_listings_city  ON listings(city);
	`)
	return err
}

// Clear deletes all existing listings from the table.
func (pw *PostgresWriter) Clear() error {
	_, err := pw.db.Exec("DELETE FROM listings")
	if err != nil {
		return fmt.Errorf("postgres: clear: %w", err)
	}
	return nil
}

// Write batch-inserts the full dataset, clearing old data first.
func (pw *PostgresWriter) Write(listings []*models.Listing) error {
	if len(listings) == 0 {
		return nil
	}

	if err := pw.Clear(); err != nil {
		return err
	}

	const batchSize = 50
	for i := 0; i < len(listings); i += batchSize {
		end := i + batchSize
		if end > len(listings) {
			end = len(listings)
		}
		if err := pw.insertBatch(listings[i:end]); err != nil {
			return err
		}
	}
	return nil
}

func (pw *PostgresWriter) insertBatch(batch []*models.Listing) error {
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*8)

	for idx, l := range batch {
		base := idx * 8
		valueStrings = append(valueStrings,
			fmt.Sprintf("($%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d)",
				base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8))

		var lat, lng interface{}
		if l.HasCoords {
			lat, lng = l.Latitude, l.Longitude
		}
		valueArgs = append(valueArgs,
			l.Address, l.City, l.Price, l.Beds, l.Baths, l.SquareFeet, lat, lng)
	}

	query := fmt.Sprintf(`
		INSERT INTO listings (address, city, price, beds, baths, square_feet, latitude, longitude)
		VALUES %s
	`, strings.Join(valueStrings, ","))

	_, err := pw.db.Exec(query, valueArgs...)
	return err
}

func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}

// FetchAll retrieves all stored listings in insertion order, as an alternate
// dataset source.
func (pw *PostgresWriter) FetchAll() ([]*models.Listing, error) {
	rows, err := pw.db.Query(`
		SELECT address, city, price, beds, baths, square_feet, latitude, longitude
		FROM listings
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("postgres: fetch all: %w", err)
	}
	defer rows.Close()

	var listings []*models.Listing
	for rows.Next() {
		l := &models.Listing{}
		var lat, lng sql.NullFloat64
		if err := rows.Scan(
			&l.Address, &l.City, &l.Price, &l.Beds, &l.Baths, &l.SquareFeet, &lat, &lng,
		); err != nil {
			return nil, fmt.Errorf("postgres: scan row: %w", err)
		}
		if lat.Valid && lng.Valid {
			l.Latitude = lat.Float64
			l.Longitude = lng.Float64
			l.HasCoords = true
		}
		listings = append(listings, l)
	}
	return listings, rows.Err()
}
