package web

import (
	"net/http"

	"grid-supply/internal/app"
	"grid-supply/internal/core"

	"github.com/go-chi/chi/v5"
)

// listForecasts handles GET /api/forecasts?project_id=&material_id=&month=.
func (h *Handler) listForecasts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	result, err := h.svc.ListForecasts(r.Context(), core.ForecastFilter{
		ProjectID:  q.Get("project_id"),
		MaterialID: q.Get("material_id"),
		Month:      q.Get("month"),
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result.Entries)
}

// forecastAccuracy handles GET /api/forecasts/accuracy.
func (h *Handler) forecastAccuracy(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.GetForecastAccuracy(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// forecastSchema handles GET /api/forecasts/schema.
func (h *Handler) forecastSchema(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.svc.ForecastRequestSchema())
}

// generateForecast handles POST /api/forecasts/generate.
// The response carries the source (remote or heuristic) next to the forecast.
func (h *Handler) generateForecast(w http.ResponseWriter, r *http.Request) {
	var req core.ForecastRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	result, err := h.svc.GenerateForecast(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, result)
}

// recordActual handles POST /api/forecasts/entries/{id}/actual.
// Body: { actual_qty }
func (h *Handler) recordActual(w http.ResponseWriter, r *http.Request) {
	var req app.RecordActualRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	result, err := h.svc.RecordForecastActual(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result.Entry)
}
