package engine

import (
	"math"
	"testing"

	"housing-dashboard/models"
)

func TestPriceHistogramCountsEveryListing(t *testing.T) {
	listings := sampleListings()
	data := PriceHistogram(listings, 4)

	if len(data.Bins) != 4 {
		t.Fatalf("bin count: got %d, want 4", len(data.Bins))
	}

	total := 0
	for _, b := range data.Bins {
		total += b.Count
	}
	if total != len(listings) {
		t.Errorf("binned total: got %d, want %d", total, len(listings))
	}

	// The dataset maximum lands in the last bin, not off the end.
	if data.Bins[3].Count == 0 {
		t.Error("last bin should contain the maximum-priced listing")
	}
}

func TestPriceHistogramSingleValue(t *testing.T) {
	listings := []*models.Listing{
		{City: "A", Price: 500},
		{City: "A", Price: 500},
	}
	data := PriceHistogram(listings, 10)

	if len(data.Bins) != 1 {
		t.Fatalf("uniform prices should collapse to one bin, got %d", len(data.Bins))
	}
	if data.Bins[0].Count != 2 {
		t.Errorf("bin count: got %d, want 2", data.Bins[0].Count)
	}
}

func TestPriceHistogramEmptyView(t *testing.T) {
	data := PriceHistogram(nil, 20)
	if len(data.Bins) != 0 {
		t.Errorf("empty view should yield no bins, got %d", len(data.Bins))
	}
}

func TestScatterPointsCarryHoverFields(t *testing.T) {
	points := ScatterPoints(sampleListings())
	if len(points) != 3 {
		t.Fatalf("point count: got %d, want 3", len(points))
	}
	if points[0].Address != "1 Oak St" || points[0].Beds != 2 || points[0].Baths != 1 {
		t.Errorf("hover fields wrong: %+v", points[0])
	}
	if points[1].SquareFeet != 1500 || points[1].Price != 200 {
		t.Errorf("axes wrong: %+v", points[1])
	}
}

func TestTrendScatterFitsLine(t *testing.T) {
	// Price = 2 * SquareFeet exactly.
	listings := []*models.Listing{
		{City: "A", SquareFeet: 1000, Price: 2000},
		{City: "A", SquareFeet: 2000, Price: 4000},
		{City: "A", SquareFeet: 3000, Price: 6000},
	}

	data := TrendScatter(listings, 8000, 10_000_000)
	if data.Trend == nil {
		t.Fatal("expected a trendline")
	}
	if math.Abs(data.Trend.Slope-2) > 1e-9 {
		t.Errorf("slope: got %.6f, want 2", data.Trend.Slope)
	}
	if math.Abs(data.Trend.Intercept) > 1e-6 {
		t.Errorf("intercept: got %.6f, want 0", data.Trend.Intercept)
	}
}

func TestTrendScatterTrimsOutliers(t *testing.T) {
	listings := []*models.Listing{
		{City: "A", SquareFeet: 1000, Price: 2000},
		{City: "A", SquareFeet: 9000, Price: 3000},       // over sqft cap
		{City: "A", SquareFeet: 2000, Price: 20_000_000}, // over price cap
	}

	data := TrendScatter(listings, 8000, 10_000_000)
	if len(data.Points) != 1 {
		t.Fatalf("trimmed points: got %d, want 1", len(data.Points))
	}
	if data.Trend != nil {
		t.Error("one point cannot carry a trendline")
	}
}

func TestCityAverageBarOrdering(t *testing.T) {
	listings := append(sampleListings(), &models.Listing{City: "C", Price: 950})

	points, err := CityAverageBar(listings)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if points[0].Label != "C" || points[0].Value != 950 {
		t.Errorf("highest average first: got %+v", points[0])
	}
}

func TestMarketSharePieRoundsAndSums(t *testing.T) {
	points, err := MarketSharePie(sampleListings(), 40)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if points[0].Value != 66.67 {
		t.Errorf("kept share: got %.2f, want 66.67", points[0].Value)
	}
	if points[1].Label != OtherLabel || points[1].Value != 33.33 {
		t.Errorf("Other share: got %+v", points[1])
	}

	var total float64
	for _, p := range points {
		total += p.Value
	}
	if math.Abs(total-100) > 0.05 {
		t.Errorf("rounded shares sum to %.2f, want ≈100", total)
	}
}
