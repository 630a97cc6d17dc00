package engine

import (
	"housing-dashboard/models"
)

// Chart builders turn engine output into render-ready data. The presentation
// layer owns all display concerns (colors, tooltips, axis cosmetics); these
// only carry values.

// ChartPoint is a single labeled value in a bar or pie chart.
type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// HistogramBin is one equal-width price bucket.
type HistogramBin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

// HistogramData is the price-distribution chart payload.
type HistogramData struct {
	Bins     []HistogramBin `json:"bins"`
	BinWidth float64        `json:"binWidth"`
}

// ScatterPoint is one listing in a price-vs-square-feet scatter, carrying the
// fields the dashboard shows on hover.
type ScatterPoint struct {
	SquareFeet float64 `json:"squareFeet"`
	Price      float64 `json:"price"`
	Address    string  `json:"address"`
	City       string  `json:"city"`
	Beds       float64 `json:"beds"`
	Baths      float64 `json:"baths"`
}

// TrendLine is a least-squares fit over scatter points.
type TrendLine struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
}

// TrendScatterData is the outlier-trimmed scatter with its fitted trendline.
type TrendScatterData struct {
	Points []ScatterPoint `json:"points"`
	Trend  *TrendLine     `json:"trend,omitempty"`
}

// PriceHistogram buckets the view's prices into equal-width bins. The last
// bin's upper bound is inclusive so the dataset maximum is always counted.
// An empty view yields an empty histogram.
func PriceHistogram(view []*models.Listing, bins int) *HistogramData {
	if len(view) == 0 || bins <= 0 {
		return &HistogramData{Bins: []HistogramBin{}}
	}

	lo, hi := view[0].Price, view[0].Price
	for _, l := range view {
		lo = min2(lo, l.Price)
		hi = max2(hi, l.Price)
	}

	if hi == lo {
		return &HistogramData{
			Bins:     []HistogramBin{{Lower: lo, Upper: hi, Count: len(view)}},
			BinWidth: 0,
		}
	}

	width := (hi - lo) / float64(bins)
	data := &HistogramData{BinWidth: width}
	for i := 0; i < bins; i++ {
		data.Bins = append(data.Bins, HistogramBin{
			Lower: lo + float64(i)*width,
			Upper: lo + float64(i+1)*width,
		})
	}

	for _, l := range view {
		idx := int((l.Price - lo) / width)
		if idx >= bins {
			idx = bins - 1
		}
		data.Bins[idx].Count++
	}
	return data
}

// ScatterPoints projects the view onto price-vs-square-feet points.
func ScatterPoints(view []*models.Listing) []ScatterPoint {
	points := make([]ScatterPoint, 0, len(view))
	for _, l := range view {
		points = append(points, ScatterPoint{
			SquareFeet: l.SquareFeet,
			Price:      l.Price,
			Address:    l.Address,
			City:       l.City,
			Beds:       l.Beds,
			Baths:      l.Baths,
		})
	}
	return points
}

// TrendScatter builds the outlier-trimmed price-vs-square-feet scatter with a
// least-squares trendline, dropping listings at or above the given caps.
// The trendline is omitted when fewer than two points remain or the points
// are vertically stacked.
func TrendScatter(listings []*models.Listing, maxSqft, maxPrice float64) *TrendScatterData {
	trimmed := make([]*models.Listing, 0, len(listings))
	for _, l := range listings {
		if l.SquareFeet < maxSqft && l.Price < maxPrice {
			trimmed = append(trimmed, l)
		}
	}

	data := &TrendScatterData{Points: ScatterPoints(trimmed)}
	data.Trend = fitLine(trimmed)
	return data
}

// fitLine computes an ordinary least-squares fit of price on square feet.
func fitLine(view []*models.Listing) *TrendLine {
	n := float64(len(view))
	if n < 2 {
		return nil
	}

	var sumX, sumY, sumXX, sumXY float64
	for _, l := range view {
		sumX += l.SquareFeet
		sumY += l.Price
		sumXX += l.SquareFeet * l.SquareFeet
		sumXY += l.SquareFeet * l.Price
	}

	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return nil
	}

	slope := (n*sumXY - sumX*sumY) / denom
	return &TrendLine{
		Slope:     slope,
		Intercept: (sumY - slope*sumX) / n,
	}
}

// CityAverageBar is the "average price by city" comparison, computed over the
// full dataset and ordered by descending average.
func CityAverageBar(listings []*models.Listing) ([]ChartPoint, error) {
	stats, err := GroupAverage(listings, "city", "price")
	if err != nil {
		return nil, err
	}

	points := make([]ChartPoint, 0, len(stats))
	for _, s := range stats {
		points = append(points, ChartPoint{Label: s.Key, Value: s.Average})
	}
	return points, nil
}

// MarketSharePie is the listings-by-city share distribution with the "Other"
// bucket applied at the given threshold.
func MarketSharePie(listings []*models.Listing, thresholdPercent float64) ([]ChartPoint, error) {
	slices, err := MarketShare(listings, "city", thresholdPercent)
	if err != nil {
		return nil, err
	}

	points := make([]ChartPoint, 0, len(slices))
	for _, s := range slices {
		points = append(points, ChartPoint{Label: s.Label, Value: round2(s.Percentage)})
	}
	return points, nil
}
