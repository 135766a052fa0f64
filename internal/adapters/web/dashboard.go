package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// dashboardStats handles GET /api/dashboard/stats.
func (h *Handler) dashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.GetDashboardStats(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, stats)
}

// analytics handles GET /api/analytics.
func (h *Handler) analytics(w http.ResponseWriter, r *http.Request) {
	report, err := h.svc.GetAnalytics(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, report)
}

// listMaterials handles GET /api/materials.
func (h *Handler) listMaterials(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListMaterials(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result.Materials)
}

// listShortfalls handles GET /api/shortfalls.
func (h *Handler) listShortfalls(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListShortfalls(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// materialShortfall handles GET /api/shortfalls/{materialId}.
func (h *Handler) materialShortfall(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.GetMaterialShortfall(r.Context(), chi.URLParam(r, "materialId"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result.Shortfall)
}

// listSuppliers handles GET /api/suppliers.
func (h *Handler) listSuppliers(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListSuppliers(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result.Suppliers)
}
