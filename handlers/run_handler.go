package handlers

import (
	"net/http"

	"github.com/lawrencemparker/Stride4Stride/middleware"
	"github.com/lawrencemparker/Stride4Stride/services"
)

type RunHandler struct {
	runService       services.RunService
	dashboardService services.DashboardService
}

func NewRunHandler(runService services.RunService, dashboardService services.DashboardService) *RunHandler {
	return &RunHandler{
		runService:       runService,
		dashboardService: dashboardService,
	}
}

func (h *RunHandler) CreateRun(w http.ResponseWriter, r *http.Request) {
	currentUserID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return
	}

	var input services.RunInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	run, err := h.runService.CreateRun(r.Context(), currentUserID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"run": run}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *RunHandler) ListRuns(w http.ResponseWriter, r *http.Request) {
	currentUserID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return
	}

	runs, err := h.runService.ListRuns(r.Context(), currentUserID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"runs": runs}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *RunHandler) UpdateRun(w http.ResponseWriter, r *http.Request) {
	runID, err := getIDFromURL(r, "runID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	currentUserID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return
	}

	var input services.RunInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	run, err := h.runService.UpdateRun(r.Context(), runID, currentUserID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"run": run}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *RunHandler) DeleteRun(w http.ResponseWriter, r *http.Request) {
	runID, err := getIDFromURL(r, "runID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	currentUserID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return
	}

	if err := h.runService.DeleteRun(r.Context(), runID, currentUserID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"message": "run deleted"}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetDashboard returns the home-screen aggregates, recomputed from the
// latest records on every call.
func (h *RunHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	currentUserID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return
	}

	dashboard, err := h.dashboardService.GetDashboard(r.Context(), currentUserID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"dashboard": dashboard}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
