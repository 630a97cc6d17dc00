package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"housing-dashboard/models"
	"housing-dashboard/utils"
)

// Required dataset columns (normalized header names). Address and the
// coordinate columns are optional.
var requiredColumns = []string{"price", "city", "beds", "baths", "square_feet"}

// LoadError is the fatal, startup-only failure of the one-shot dataset load.
// There is no retry: callers surface the message and exit.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loader: cannot load dataset %q: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Loader reads the housing dataset into memory.
type Loader struct {
	logger *utils.Logger
}

// New creates a Loader with the given logger.
func New(logger *utils.Logger) *Loader {
	return &Loader{logger: logger}
}

// Load reads the CSV at path into an ordered, typed slice of listings.
// It fails with *LoadError when the file is missing, unreadable as CSV, or
// lacking a required column. Rows whose required numeric fields do not parse
// are skipped with a warning; the dataset order otherwise matches the file.
func (l *Loader) Load(path string) ([]*models.Listing, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer f.Close()

	reader := csv.NewReader(f)
	headers, err := reader.Read()
	if err != nil {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("read header: %w", err)}
	}

	cols := make(map[string]int, len(headers))
	for i, h := range headers {
		cols[normalizeHeader(h)] = i
	}
	for _, required := range requiredColumns {
		if _, ok := cols[required]; !ok {
			return nil, &LoadError{Path: path, Err: fmt.Errorf("missing required column %q", required)}
		}
	}

	var listings []*models.Listing
	dropped := 0
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &LoadError{Path: path, Err: fmt.Errorf("line %d: %w", line, err)}
		}

		listing, ok := l.parseRow(row, cols, line)
		if !ok {
			dropped++
			continue
		}
		listings = append(listings, listing)
	}

	l.logger.Info("[loader] Loaded %d listings from %s (dropped %d)", len(listings), path, dropped)
	return listings, nil
}

func (l *Loader) parseRow(row []string, cols map[string]int, line int) (*models.Listing, bool) {
	price, ok := l.numericField(row, cols, "price", line)
	if !ok {
		return nil, false
	}
	beds, ok := l.numericField(row, cols, "beds", line)
	if !ok {
		return nil, false
	}
	baths, ok := l.numericField(row, cols, "baths", line)
	if !ok {
		return nil, false
	}
	sqft, ok := l.numericField(row, cols, "square_feet", line)
	if !ok {
		return nil, false
	}

	city := normalizeText(cell(row, cols, "city"))
	if city == "" {
		l.logger.Warn("[loader] Line %d: empty city, row skipped", line)
		return nil, false
	}

	listing := &models.Listing{
		Address:    normalizeText(cell(row, cols, "address")),
		City:       city,
		Price:      price,
		Beds:       beds,
		Baths:      baths,
		SquareFeet: sqft,
	}

	// Coordinates are optional; a listing without both lat and lng is
	// simply excluded from map views.
	lat, latErr := strconv.ParseFloat(strings.TrimSpace(cell(row, cols, "latitude")), 64)
	lng, lngErr := strconv.ParseFloat(strings.TrimSpace(cell(row, cols, "longitude")), 64)
	if latErr == nil && lngErr == nil {
		listing.Latitude = lat
		listing.Longitude = lng
		listing.HasCoords = true
	}

	return listing, true
}

func (l *Loader) numericField(row []string, cols map[string]int, key string, line int) (float64, bool) {
	raw := strings.TrimSpace(cell(row, cols, key))
	raw = strings.ReplaceAll(raw, ",", "")
	raw = strings.TrimPrefix(raw, "$")
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		l.logger.Warn("[loader] Line %d: unparseable %s %q, row skipped", line, key, raw)
		return 0, false
	}
	return v, true
}

func cell(row []string, cols map[string]int, key string) string {
	i, ok := cols[key]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

// normalizeHeader converts "Square Feet" → "square_feet".
func normalizeHeader(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	return s
}

// normalizeText strips leading/trailing whitespace and collapses internal whitespace.
func normalizeText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
