// Package api provides HTTP handlers for the DevTrack API.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/ashureev/devtrack/internal/tracker"
)

// Handler provides common handler utilities.
type Handler struct {
	svc *tracker.Service
	agg *tracker.Aggregator
}

// NewHandler creates a new Handler with common dependencies.
func NewHandler(svc *tracker.Service, agg *tracker.Aggregator) *Handler {
	return &Handler{svc: svc, agg: agg}
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error": "failed to encode response"}`, http.StatusInternalServerError)
	}
}

// Error writes a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}
