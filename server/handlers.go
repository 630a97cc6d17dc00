package server

import (
	"errors"
	"net/http"
	"strconv"

	"housing-dashboard/engine"
	"housing-dashboard/storage"
)

// Outlier caps for the trend chart, matching the comparison tab's
// "no outliers" scatter.
const (
	trendMaxSqft  = 8000
	trendMaxPrice = 10_000_000
)

// handleHealth => GET /api/health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}

// handleMeta => GET /api/meta
// Dataset bounds and city vocabulary, for building the filter controls.
func (s *Server) handleMeta(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.bounds)
}

// handleListings => GET /api/listings
func (s *Server) handleListings(w http.ResponseWriter, r *http.Request) {
	view := s.filteredView(r)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":    len(view),
		"listings": view,
	})
}

// handleExport => GET /api/listings/export
// The filtered view as a CSV attachment, column-compatible with the source
// dataset.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	view := s.filteredView(r)

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="filtered_housing_data.csv"`)
	if err := storage.ExportCSV(w, view); err != nil {
		s.logger.Error("[server] CSV export failed: %v", err)
	}
}

// handleSummary => GET /api/summary
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := engine.Summarize(s.filteredView(r))
	if errors.Is(err, engine.ErrEmptyView) {
		respondJSON(w, http.StatusOK, noDataResponse())
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

// handlePriceHistogram => GET /api/charts/price-histogram
func (s *Server) handlePriceHistogram(w http.ResponseWriter, r *http.Request) {
	view := s.filteredView(r)
	if len(view) == 0 {
		respondJSON(w, http.StatusOK, noDataResponse())
		return
	}
	respondJSON(w, http.StatusOK, engine.PriceHistogram(view, s.cfg.HistogramBins))
}

// handlePriceSqft => GET /api/charts/price-sqft
func (s *Server) handlePriceSqft(w http.ResponseWriter, r *http.Request) {
	view := s.filteredView(r)
	if len(view) == 0 {
		respondJSON(w, http.StatusOK, noDataResponse())
		return
	}
	respondJSON(w, http.StatusOK, engine.ScatterPoints(view))
}

// handlePriceSqftTrend => GET /api/charts/price-sqft-trend
// Outlier-trimmed scatter with trendline over the full dataset.
func (s *Server) handlePriceSqftTrend(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, engine.TrendScatter(s.listings, trendMaxSqft, trendMaxPrice))
}

// handleCityAverages => GET /api/charts/city-averages
func (s *Server) handleCityAverages(w http.ResponseWriter, r *http.Request) {
	points, err := engine.CityAverageBar(s.listings)
	if err != nil {
		s.logger.Error("[server] City averages failed: %v", err)
		respondError(w, http.StatusInternalServerError, "could not compute city averages")
		return
	}
	respondJSON(w, http.StatusOK, points)
}

// handleMarketShare => GET /api/charts/market-share
// Optional ?threshold= overrides the configured "Other" cutoff.
func (s *Server) handleMarketShare(w http.ResponseWriter, r *http.Request) {
	threshold := s.cfg.SharePercentThreshold
	if raw := r.URL.Query().Get("threshold"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 || v > 100 {
			respondError(w, http.StatusBadRequest, "threshold must be a percentage between 0 and 100")
			return
		}
		threshold = v
	}

	points, err := engine.MarketSharePie(s.listings, threshold)
	if err != nil {
		s.logger.Error("[server] Market share failed: %v", err)
		respondError(w, http.StatusInternalServerError, "could not compute market share")
		return
	}
	respondJSON(w, http.StatusOK, points)
}

// handleMapPoints => GET /api/map/points
// The full dataset plotted and colored by membership in the selected cities.
func (s *Server) handleMapPoints(w http.ResponseWriter, r *http.Request) {
	tagged := engine.ClassifySelection(s.listings, s.selectedCities(r))
	respondJSON(w, http.StatusOK, engine.BuildMapData(tagged))
}

// handleHeatmap => GET /api/map/heatmap
func (s *Server) handleHeatmap(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, engine.BuildHeatmapData(s.listings))
}

// handleNearby => GET /api/map/nearby?lat=&lng=&radius_km=
func (s *Server) handleNearby(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	lat, latErr := strconv.ParseFloat(q.Get("lat"), 64)
	lng, lngErr := strconv.ParseFloat(q.Get("lng"), 64)
	radius, radErr := strconv.ParseFloat(q.Get("radius_km"), 64)
	if latErr != nil || lngErr != nil || radErr != nil || radius <= 0 {
		respondError(w, http.StatusBadRequest, "lat, lng and a positive radius_km are required")
		return
	}

	nearby := engine.WithinRadius(s.listings, lat, lng, radius)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":    len(nearby),
		"listings": nearby,
	})
}
