package storage

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"housing-dashboard/models"
)

// csvHeader matches the dataset's own column names so an exported view can be
// re-loaded without loss.
var csvHeader = []string{
	"Address", "City", "Price", "Beds", "Baths", "Square Feet", "Latitude", "Longitude",
}

// ExportCSV writes the given listings as CSV, header first, in the order
// given. Coordinates are left blank for listings that have none, mirroring
// the source file.
func ExportCSV(w io.Writer, listings []*models.Listing) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("csv: write header: %w", err)
	}

	for _, l := range listings {
		lat, lng := "", ""
		if l.HasCoords {
			lat = formatFloat(l.Latitude)
			lng = formatFloat(l.Longitude)
		}
		row := []string{
			l.Address,
			l.City,
			formatFloat(l.Price),
			formatFloat(l.Beds),
			formatFloat(l.Baths),
			formatFloat(l.SquareFeet),
			lat,
			lng,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// formatFloat renders the shortest exact representation so values round-trip
// through the loader unchanged.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
