package server

import (
	"net/http"
	"strconv"
	"strings"

	"housing-dashboard/engine"
	"housing-dashboard/models"
)

// parseConstraints builds the render cycle's constraint set from query
// parameters. Every bound defaults to the dataset's own min/max, the same way
// the dashboard seeds its sliders. An absent cities parameter defaults to the
// configured seed city; an explicitly empty one means "all cities".
func (s *Server) parseConstraints(r *http.Request) models.ConstraintSet {
	q := r.URL.Query()

	c := engine.DefaultConstraints(s.bounds, []string{s.cfg.DefaultCity})

	c.PriceMin = floatParam(q.Get("price_min"), c.PriceMin)
	c.PriceMax = floatParam(q.Get("price_max"), c.PriceMax)
	c.BedsMin = floatParam(q.Get("beds_min"), c.BedsMin)
	c.BedsMax = floatParam(q.Get("beds_max"), c.BedsMax)
	c.BathsMin = floatParam(q.Get("baths_min"), c.BathsMin)
	c.BathsMax = floatParam(q.Get("baths_max"), c.BathsMax)
	c.SqftMin = floatParam(q.Get("sqft_min"), c.SqftMin)
	c.SqftMax = floatParam(q.Get("sqft_max"), c.SqftMax)

	if q.Has("cities") {
		c.Cities = splitCities(q.Get("cities"))
	}

	return c
}

// filteredView runs one filter cycle. A constraint set the UI should never
// produce (e.g. inverted bounds) is logged and answered with an empty view,
// never an error.
func (s *Server) filteredView(r *http.Request) []*models.Listing {
	c := s.parseConstraints(r)

	if err := s.validate.Struct(c); err != nil {
		s.logger.Warn("[server] Malformed constraints from %s: %v", r.RemoteAddr, err)
		return nil
	}

	return engine.Filter(s.listings, c)
}

// selectedCities reports the current city selection without the rest of the
// constraint set, for the views that classify rather than filter.
func (s *Server) selectedCities(r *http.Request) []string {
	q := r.URL.Query()
	if q.Has("cities") {
		return splitCities(q.Get("cities"))
	}
	return []string{s.cfg.DefaultCity}
}

func floatParam(raw string, fallback float64) float64 {
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return v
}

func splitCities(raw string) []string {
	parts := strings.Split(raw, ",")
	cities := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			cities = append(cities, p)
		}
	}
	return cities
}
