package handlers

import (
	"net/http"

	"places-api/internal/models"
	"places-api/internal/services"

	"github.com/go-chi/chi/v5"
)

// PlaceResponse wraps a single place
type PlaceResponse struct {
	Place *models.Place `json:"place"`
}

// PlacesResponse wraps a list of places
type PlacesResponse struct {
	Places []*models.Place `json:"places"`
}

// MessageResponse carries a confirmation message
type MessageResponse struct {
	Message string `json:"message"`
}

// PlaceHandler handles place-related HTTP requests
type PlaceHandler struct {
	placeService *services.PlaceService
}

// NewPlaceHandler creates a new place handler
func NewPlaceHandler(placeService *services.PlaceService) *PlaceHandler {
	return &PlaceHandler{
		placeService: placeService,
	}
}

// GetPlaceByID handles GET /api/places/{pid}
func (h *PlaceHandler) GetPlaceByID(w http.ResponseWriter, r *http.Request) {
	place, err := h.placeService.GetPlaceByID(r.Context(), chi.URLParam(r, "pid"))
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, PlaceResponse{Place: place})
}

// GetPlacesByUserID handles GET /api/users/{uid}/places
func (h *PlaceHandler) GetPlacesByUserID(w http.ResponseWriter, r *http.Request) {
	places, err := h.placeService.GetPlacesByUserID(r.Context(), chi.URLParam(r, "uid"))
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, PlacesResponse{Places: places})
}

// CreatePlace handles POST /api/places
func (h *PlaceHandler) CreatePlace(w http.ResponseWriter, r *http.Request) {
	var input services.CreatePlaceInput
	if err := decodeJSON(r, &input); err != nil {
		respondError(w, r, err)
		return
	}

	place, err := h.placeService.CreatePlace(r.Context(), input)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, PlaceResponse{Place: place})
}

// UpdatePlace handles PATCH /api/places/{pid}
func (h *PlaceHandler) UpdatePlace(w http.ResponseWriter, r *http.Request) {
	var input services.UpdatePlaceInput
	if err := decodeJSON(r, &input); err != nil {
		respondError(w, r, err)
		return
	}

	place, err := h.placeService.UpdatePlace(r.Context(), chi.URLParam(r, "pid"), input)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, PlaceResponse{Place: place})
}

// DeletePlace handles DELETE /api/places/{pid}
func (h *PlaceHandler) DeletePlace(w http.ResponseWriter, r *http.Request) {
	if err := h.placeService.DeletePlace(r.Context(), chi.URLParam(r, "pid")); err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, MessageResponse{Message: services.MsgDeletedPlace})
}
