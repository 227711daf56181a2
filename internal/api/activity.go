package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/ashureev/devtrack/internal/domain"
	"github.com/go-chi/chi/v5"
)

// ActivityHandler handles ingestion and reporting endpoints.
type ActivityHandler struct {
	*Handler
}

// NewActivityHandler creates a new activity handler.
func NewActivityHandler(base *Handler) *ActivityHandler {
	return &ActivityHandler{Handler: base}
}

// RegisterRoutes registers ingestion and insights routes.
func (h *ActivityHandler) RegisterRoutes(r chi.Router) {
	r.Post("/log", h.LogWeb)
	r.Post("/app_log", h.LogApp)
	r.Route("/insights", func(r chi.Router) {
		r.Get("/daily", h.Daily)
		r.Get("/history", h.History)
	})
}

type logWebRequest struct {
	URL      string  `json:"url"`
	Title    string  `json:"title"`
	Duration float64 `json:"duration"`
}

type logAppRequest struct {
	App      string  `json:"app"`
	Duration float64 `json:"duration"`
	Category string  `json:"category"`
}

type logResponse struct {
	Status   string `json:"status"`
	Category string `json:"category"`
}

// LogWeb records a website visit reported by the browser probe.
func (h *ActivityHandler) LogWeb(w http.ResponseWriter, r *http.Request) {
	var req logWebRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	category, err := h.svc.LogWeb(r.Context(), req.URL, req.Title, req.Duration)
	if err != nil {
		slog.Error("Failed to log web activity", "error", err, "url", req.URL)
		Error(w, http.StatusServiceUnavailable, "storage unavailable")
		return
	}

	JSON(w, http.StatusOK, logResponse{Status: "ok", Category: string(category)})
}

// LogApp records an application usage pulse reported by the desktop probe.
func (h *ActivityHandler) LogApp(w http.ResponseWriter, r *http.Request) {
	var req logAppRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	category, err := h.svc.LogApp(r.Context(), req.App, req.Duration, req.Category)
	if err != nil {
		slog.Error("Failed to log app activity", "error", err, "app", req.App)
		Error(w, http.StatusServiceUnavailable, "storage unavailable")
		return
	}

	JSON(w, http.StatusOK, logResponse{Status: "ok", Category: string(category)})
}

// Daily returns the productivity insights for one local calendar day.
// An optional date=YYYY-MM-DD query parameter selects a past day for
// recomputation; the default is today.
func (h *ActivityHandler) Daily(w http.ResponseWriter, r *http.Request) {
	day := time.Now()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			Error(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
			return
		}
		day = parsed
	}

	insights, err := h.agg.Daily(r.Context(), day)
	if err != nil {
		slog.Error("Failed to compute daily insights", "error", err, "date", day.Format("2006-01-02"))
		Error(w, http.StatusInternalServerError, "failed to compute insights")
		return
	}

	JSON(w, http.StatusOK, insights)
}

// History returns the most recent activity of both kinds, newest first.
func (h *ActivityHandler) History(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			Error(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	entries, err := h.svc.History(r.Context(), limit)
	if err != nil {
		slog.Error("Failed to query history", "error", err)
		Error(w, http.StatusInternalServerError, "failed to query history")
		return
	}
	if entries == nil {
		entries = []domain.HistoryEntry{}
	}

	JSON(w, http.StatusOK, map[string]interface{}{"history": entries})
}
