package web

import (
	"net/http"

	"grid-supply/internal/app"

	"github.com/go-chi/chi/v5"
)

// listProjects handles GET /api/projects.
func (h *Handler) listProjects(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListProjects(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result.Projects)
}

// getProject handles GET /api/projects/{id}.
func (h *Handler) getProject(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.GetProject(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result.Project)
}

// createProject handles POST /api/projects.
// Body: { name, region, location, budget, priority, project_type, line_length?, start_date, end_date,
// material_requirements: [{material_id, quantity, allocated, pending}] }
func (h *Handler) createProject(w http.ResponseWriter, r *http.Request) {
	var req app.CreateProjectRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	result, err := h.svc.CreateProject(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, result.Project)
}

// updateProject handles PATCH /api/projects/{id}. Absent fields are left untouched.
func (h *Handler) updateProject(w http.ResponseWriter, r *http.Request) {
	var req app.UpdateProjectRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	result, err := h.svc.UpdateProject(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result.Project)
}

// projectFulfillment handles GET /api/projects/{id}/fulfillment.
func (h *Handler) projectFulfillment(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.GetProjectFulfillment(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}
