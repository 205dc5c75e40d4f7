package handler

import (
	"encoding/json"
	"net/http"

	"github.com/ghostduel/server/internal/api/apierr"
	"github.com/ghostduel/server/internal/api/request"
	"github.com/ghostduel/server/internal/api/response"
	"github.com/ghostduel/server/internal/services/identity"
)

// ProfileHandler handles profile-related endpoints
type ProfileHandler struct {
	identityService *identity.Service
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(identityService *identity.Service) *ProfileHandler {
	return &ProfileHandler{
		identityService: identityService,
	}
}

// CreateGuest handles POST /api/v1/profiles/guest
func (h *ProfileHandler) CreateGuest(w http.ResponseWriter, r *http.Request) {
	var req request.CreateGuestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	if req.DisplayName == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("display_name is required"))
		return
	}

	profile, err := h.identityService.CreateGuestProfile(r.Context(), req.DisplayName)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.ProfileFromModel(profile))
}
