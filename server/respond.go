package server

import (
	"encoding/json"
	"net/http"
)

type errorResponse struct {
	Error string `json:"error"`
}

// emptyViewResponse is the explicit "no data for selection" payload. The
// presentation layer renders its message instead of an empty chart.
type emptyViewResponse struct {
	Empty   bool   `json:"empty"`
	Message string `json:"message"`
}

func noDataResponse() emptyViewResponse {
	return emptyViewResponse{
		Empty:   true,
		Message: "No data available for the selected filters.",
	}
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Error: message})
}
