package handlers

import (
	"errors"
	"net/http"

	"github.com/Dosada05/youth-cup/services"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(as *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: as}
}

// Authenticate handles POST /tournaments/{tournamentID}/auth and exchanges the PIN for an admin token.
func (h *AuthHandler) Authenticate(w http.ResponseWriter, r *http.Request) {
	id, err := urlParam(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		Pin string `json:"pin"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.Pin == "" {
		badRequestResponse(w, r, errors.New("pin is required"))
		return
	}

	token, err := h.authService.Authenticate(r.Context(), id, input.Pin)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeOK(w, r, http.StatusOK, jsonResponse{"admin": token})
}
