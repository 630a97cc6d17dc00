package server

import (
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"housing-dashboard/config"
	"housing-dashboard/engine"
	"housing-dashboard/models"
	"housing-dashboard/utils"
)

// Server owns the loaded dataset and serves the dashboard API. The dataset is
// read-only after construction, so handlers share it without locking.
type Server struct {
	cfg      *config.Config
	logger   *utils.Logger
	listings []*models.Listing
	bounds   *models.Bounds
	validate *validator.Validate
}

// New builds a Server for the given dataset. Fails when the dataset is empty,
// since every constraint default derives from its bounds.
func New(cfg *config.Config, logger *utils.Logger, listings []*models.Listing) (*Server, error) {
	bounds, err := engine.Bounds(listings)
	if err != nil {
		return nil, fmt.Errorf("server: dataset has no rows: %w", err)
	}

	return &Server{
		cfg:      cfg,
		logger:   logger,
		listings: listings,
		bounds:   bounds,
		validate: validator.New(),
	}, nil
}

// Router builds the API routes with CORS applied.
func (s *Server) Router() http.Handler {
	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	api.HandleFunc("/meta", s.handleMeta).Methods(http.MethodGet)
	api.HandleFunc("/listings", s.handleListings).Methods(http.MethodGet)
	api.HandleFunc("/listings/export", s.handleExport).Methods(http.MethodGet)
	api.HandleFunc("/summary", s.handleSummary).Methods(http.MethodGet)

	api.HandleFunc("/charts/price-histogram", s.handlePriceHistogram).Methods(http.MethodGet)
	api.HandleFunc("/charts/price-sqft", s.handlePriceSqft).Methods(http.MethodGet)
	api.HandleFunc("/charts/price-sqft-trend", s.handlePriceSqftTrend).Methods(http.MethodGet)
	api.HandleFunc("/charts/city-averages", s.handleCityAverages).Methods(http.MethodGet)
	api.HandleFunc("/charts/market-share", s.handleMarketShare).Methods(http.MethodGet)

	api.HandleFunc("/map/points", s.handleMapPoints).Methods(http.MethodGet)
	api.HandleFunc("/map/heatmap", s.handleHeatmap).Methods(http.MethodGet)
	api.HandleFunc("/map/nearby", s.handleNearby).Methods(http.MethodGet)

	return cors.Default().Handler(r)
}

// Start binds the listen address and serves until the process exits.
func (s *Server) Start() error {
	s.logger.Info("[server] Listening on %s (%d listings, %d cities)",
		s.cfg.ListenAddr, len(s.listings), len(s.bounds.Cities))
	return http.ListenAndServe(s.cfg.ListenAddr, s.Router())
}
