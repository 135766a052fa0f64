package web

import (
	"net/http"

	"grid-supply/internal/app"

	"github.com/go-chi/chi/v5"
)

// listProcurementOrders handles GET /api/procurement-orders.
func (h *Handler) listProcurementOrders(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListProcurementOrders(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result.Orders)
}

// createProcurementOrder handles POST /api/procurement-orders.
// Body: { material_id, supplier_id, quantity, unit_cost?, expected_date?, project_id?, trigger_reason? }
func (h *Handler) createProcurementOrder(w http.ResponseWriter, r *http.Request) {
	var req app.CreateProcurementOrderRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	result, err := h.svc.CreateProcurementOrder(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, result.Order)
}

// advanceProcurementOrder handles POST /api/procurement-orders/{id}/status.
// Body: { status }
func (h *Handler) advanceProcurementOrder(w http.ResponseWriter, r *http.Request) {
	var req app.AdvanceOrderRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	result, err := h.svc.AdvanceProcurementOrder(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result.Order)
}
