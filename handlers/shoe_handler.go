package handlers

import (
	"net/http"

	"github.com/lawrencemparker/Stride4Stride/middleware"
	"github.com/lawrencemparker/Stride4Stride/services"
)

type ShoeHandler struct {
	shoeService services.ShoeService
}

func NewShoeHandler(shoeService services.ShoeService) *ShoeHandler {
	return &ShoeHandler{shoeService: shoeService}
}

func (h *ShoeHandler) AddShoe(w http.ResponseWriter, r *http.Request) {
	currentUserID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return
	}

	var input struct {
		Name string `json:"name"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	shoe, err := h.shoeService.AddShoe(r.Context(), currentUserID, input.Name)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"shoe": shoe}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ShoeHandler) ListShoes(w http.ResponseWriter, r *http.Request) {
	currentUserID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return
	}

	shoes, err := h.shoeService.ListShoes(r.Context(), currentUserID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"shoes": shoes}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ShoeHandler) RenameShoe(w http.ResponseWriter, r *http.Request) {
	shoeID, err := getIDFromURL(r, "shoeID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	currentUserID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return
	}

	var input struct {
		Name string `json:"name"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	shoe, err := h.shoeService.RenameShoe(r.Context(), shoeID, currentUserID, input.Name)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"shoe": shoe}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ShoeHandler) SetRetired(w http.ResponseWriter, r *http.Request) {
	shoeID, err := getIDFromURL(r, "shoeID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	currentUserID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return
	}

	var input struct {
		Retired bool `json:"retired"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	shoe, err := h.shoeService.SetRetired(r.Context(), shoeID, currentUserID, input.Retired)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"shoe": shoe}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ShoeHandler) DeleteShoe(w http.ResponseWriter, r *http.Request) {
	shoeID, err := getIDFromURL(r, "shoeID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	currentUserID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return
	}

	if err := h.shoeService.DeleteShoe(r.Context(), shoeID, currentUserID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"message": "shoe deleted"}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
