package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"grid-supply/internal/app"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler holds the ApplicationService and the chi router.
type Handler struct {
	svc    app.ApplicationService
	logger *zap.Logger
}

// NewHandler creates and wires the chi router with all routes.
func NewHandler(svc app.ApplicationService, allowedOrigins []string, logger *zap.Logger) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &Handler{svc: svc, logger: logger}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger(logger))
	r.Use(Recoverer(logger))
	r.Use(CORS(allowedOrigins))
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, "route not found", "NOT_FOUND", http.StatusNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, "method not allowed", "METHOD_NOT_ALLOWED", http.StatusMethodNotAllowed)
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(RequestBodyLimit(1 << 20)) // 1 MB

		r.Get("/health", h.health)

		// ── Dashboard ─────────────────────────────────────────────────────────
		r.Get("/dashboard/stats", h.dashboardStats)
		r.Get("/analytics", h.analytics)

		// ── Inventory ─────────────────────────────────────────────────────────
		r.Get("/materials", h.listMaterials)
		r.Get("/shortfalls", h.listShortfalls)
		r.Get("/shortfalls/{materialId}", h.materialShortfall)
		r.Get("/suppliers", h.listSuppliers)

		// ── Projects ──────────────────────────────────────────────────────────
		r.Get("/projects", h.listProjects)
		r.Post("/projects", h.createProject)
		r.Get("/projects/{id}", h.getProject)
		r.Patch("/projects/{id}", h.updateProject)
		r.Get("/projects/{id}/fulfillment", h.projectFulfillment)

		// ── Forecasts ─────────────────────────────────────────────────────────
		r.Get("/forecasts", h.listForecasts)
		r.Get("/forecasts/accuracy", h.forecastAccuracy)
		r.Get("/forecasts/schema", h.forecastSchema)
		r.Post("/forecasts/generate", h.generateForecast)
		r.Post("/forecasts/entries/{id}/actual", h.recordActual)

		// ── Procurement ───────────────────────────────────────────────────────
		r.Get("/procurement-orders", h.listProcurementOrders)
		r.Post("/procurement-orders", h.createProcurementOrder)
		r.Post("/procurement-orders/{id}/status", h.advanceProcurementOrder)
	})

	return r
}

// health returns service status, the store in use and the forecast model state.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.Health(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// decodeJSON decodes the request body into v and returns false + writes an appropriate
// error response on failure. Returns HTTP 413 when the body exceeds the size limit set
// by RequestBodyLimit middleware; HTTP 400 for all other decode errors.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, r, "request body too large", "REQUEST_TOO_LARGE", http.StatusRequestEntityTooLarge)
			return false
		}
		writeError(w, r, "invalid JSON body: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return false
	}
	return true
}
