package storage

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"housing-dashboard/loader"
	"housing-dashboard/models"
	"housing-dashboard/utils"
)

func exportSample() []*models.Listing {
	return []*models.Listing{
		{Address: "1 Oak St", City: "Irvine", Price: 750000, Beds: 3, Baths: 2, SquareFeet: 1800,
			Latitude: 33.68, Longitude: -117.82, HasCoords: true},
		{Address: "2 Elm St", City: "Anaheim", Price: 550000.5, Beds: 2, Baths: 1.5, SquareFeet: 1200},
	}
}

func TestExportCSVHeader(t *testing.T) {
	var buf bytes.Buffer
	if err := ExportCSV(&buf, exportSample()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("line count: got %d, want 3", len(lines))
	}
	if lines[0] != "Address,City,Price,Beds,Baths,Square Feet,Latitude,Longitude" {
		t.Errorf("header mismatch: %q", lines[0])
	}
}

func TestExportCSVRoundTrip(t *testing.T) {
	original := exportSample()

	var buf bytes.Buffer
	if err := ExportCSV(&buf, original); err != nil {
		t.Fatalf("export: %v", err)
	}

	path := filepath.Join(t.TempDir(), "export.csv")
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}

	reloaded, err := loader.New(utils.NewLogger()).Load(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(reloaded) != len(original) {
		t.Fatalf("row count: got %d, want %d", len(reloaded), len(original))
	}

	for i := range original {
		if *reloaded[i] != *original[i] {
			t.Errorf("row %d did not round-trip:\n got %+v\nwant %+v", i, reloaded[i], original[i])
		}
	}
}

func TestExportCSVEmptyView(t *testing.T) {
	var buf bytes.Buffer
	if err := ExportCSV(&buf, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Errorf("empty view should export header only, got %d lines", len(lines))
	}
}
