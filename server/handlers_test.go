package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"housing-dashboard/config"
	"housing-dashboard/models"
	"housing-dashboard/utils"
)

func testServer(t *testing.T) *Server {
	t.Helper()

	listings := []*models.Listing{
		{Address: "1 Oak St", City: "Irvine", Price: 100, Beds: 2, Baths: 1, SquareFeet: 1000,
			Latitude: 33.68, Longitude: -117.82, HasCoords: true},
		{Address: "2 Elm St", City: "Anaheim", Price: 200, Beds: 3, Baths: 2, SquareFeet: 1500,
			Latitude: 33.83, Longitude: -117.91, HasCoords: true},
		{Address: "3 Pine St", City: "Irvine", Price: 300, Beds: 4, Baths: 3, SquareFeet: 2000},
	}

	cfg := &config.Config{
		DefaultCity:           "Irvine",
		SharePercentThreshold: 2,
		HistogramBins:         20,
	}

	srv, err := New(cfg, utils.NewLogger(), listings)
	require.NoError(t, err)
	return srv
}

func doGet(t *testing.T, srv *Server, url string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, into interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), into))
}

func TestMetaReturnsBounds(t *testing.T) {
	rec := doGet(t, testServer(t), "/api/meta")
	require.Equal(t, http.StatusOK, rec.Code)

	var bounds models.Bounds
	decode(t, rec, &bounds)
	assert.Equal(t, 100.0, bounds.PriceMin)
	assert.Equal(t, 300.0, bounds.PriceMax)
	assert.Equal(t, []string{"Irvine", "Anaheim"}, bounds.Cities)
}

func TestListingsDefaultsToSeedCity(t *testing.T) {
	rec := doGet(t, testServer(t), "/api/listings")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Count    int               `json:"count"`
		Listings []*models.Listing `json:"listings"`
	}
	decode(t, rec, &body)
	assert.Equal(t, 2, body.Count)
	for _, l := range body.Listings {
		assert.Equal(t, "Irvine", l.City)
	}
}

func TestListingsExplicitEmptyCitiesMatchesAll(t *testing.T) {
	rec := doGet(t, testServer(t), "/api/listings?cities=")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Count int `json:"count"`
	}
	decode(t, rec, &body)
	assert.Equal(t, 3, body.Count)
}

func TestListingsPriceFilter(t *testing.T) {
	rec := doGet(t, testServer(t), "/api/listings?cities=Irvine,Anaheim&price_min=150&price_max=250")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Count    int               `json:"count"`
		Listings []*models.Listing `json:"listings"`
	}
	decode(t, rec, &body)
	require.Equal(t, 1, body.Count)
	assert.Equal(t, "2 Elm St", body.Listings[0].Address)
}

func TestMalformedConstraintsYieldEmptyNot500(t *testing.T) {
	rec := doGet(t, testServer(t), "/api/listings?price_min=500&price_max=100")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Count int `json:"count"`
	}
	decode(t, rec, &body)
	assert.Equal(t, 0, body.Count)
}

func TestSummary(t *testing.T) {
	rec := doGet(t, testServer(t), "/api/summary")
	require.Equal(t, http.StatusOK, rec.Code)

	var summary models.Summary
	decode(t, rec, &summary)
	assert.Equal(t, 2, summary.Count)
	assert.Equal(t, 200.0, summary.AveragePrice)
	assert.Equal(t, 3.0, summary.AverageBeds)
}

func TestSummaryNoData(t *testing.T) {
	rec := doGet(t, testServer(t), "/api/summary?cities=Nowhere")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Empty   bool   `json:"empty"`
		Message string `json:"message"`
	}
	decode(t, rec, &body)
	assert.True(t, body.Empty)
	assert.NotEmpty(t, body.Message)
}

func TestPriceHistogramNoData(t *testing.T) {
	rec := doGet(t, testServer(t), "/api/charts/price-histogram?cities=Nowhere")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Empty bool `json:"empty"`
	}
	decode(t, rec, &body)
	assert.True(t, body.Empty)
}

func TestMarketShareThresholdValidation(t *testing.T) {
	rec := doGet(t, testServer(t), "/api/charts/market-share?threshold=200")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doGet(t, testServer(t), "/api/charts/market-share?threshold=40")
	require.Equal(t, http.StatusOK, rec.Code)

	var points []struct {
		Label string  `json:"label"`
		Value float64 `json:"value"`
	}
	decode(t, rec, &points)
	require.Len(t, points, 2)
	assert.Equal(t, "Irvine", points[0].Label)
	assert.Equal(t, "Other", points[1].Label)
}

func TestMapPointsClassifiedBySelection(t *testing.T) {
	rec := doGet(t, testServer(t), "/api/map/points?cities=Anaheim")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Points []struct {
			City     string `json:"city"`
			Selected bool   `json:"selected"`
		} `json:"points"`
	}
	decode(t, rec, &body)
	// The third listing has no coordinates and is not plotted.
	require.Len(t, body.Points, 2)
	assert.False(t, body.Points[0].Selected)
	assert.True(t, body.Points[1].Selected)
}

func TestNearbyRequiresCoordinates(t *testing.T) {
	rec := doGet(t, testServer(t), "/api/map/nearby")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doGet(t, testServer(t), "/api/map/nearby?lat=33.68&lng=-117.82&radius_km=5")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Count int `json:"count"`
	}
	decode(t, rec, &body)
	assert.Equal(t, 1, body.Count)
}

func TestExportIsCSVAttachment(t *testing.T) {
	rec := doGet(t, testServer(t), "/api/listings/export?cities=Anaheim")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "filtered_housing_data.csv")
	assert.Contains(t, rec.Body.String(), "Address,City,Price,Beds,Baths,Square Feet,Latitude,Longitude")
	assert.Contains(t, rec.Body.String(), "2 Elm St")
}

func TestHealth(t *testing.T) {
	rec := doGet(t, testServer(t), "/api/health")
	assert.Equal(t, http.StatusOK, rec.Code)
}
