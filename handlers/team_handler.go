package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Dosada05/youth-cup/services"
)

const maxLogoBytes = 5 << 20

type TeamHandler struct {
	tournamentService *services.TournamentService
}

func NewTeamHandler(ts *services.TournamentService) *TeamHandler {
	return &TeamHandler{tournamentService: ts}
}

func teamParams(r *http.Request) (tournamentID, teamID string, err error) {
	if tournamentID, err = urlParam(r, "tournamentID"); err != nil {
		return "", "", err
	}
	if teamID, err = urlParam(r, "teamID"); err != nil {
		return "", "", err
	}
	return tournamentID, teamID, nil
}

// RenameTeam handles PATCH /tournaments/{tournamentID}/teams/{teamID}.
func (h *TeamHandler) RenameTeam(w http.ResponseWriter, r *http.Request) {
	tournamentID, teamID, err := teamParams(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		Name string `json:"name"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tournament, err := h.tournamentService.RenameTeam(r.Context(), tournamentID, teamID, input.Name)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeOK(w, r, http.StatusOK, jsonResponse{"tournament": tournament})
}

// UploadLogo handles PUT /tournaments/{tournamentID}/teams/{teamID}/logo with a multipart "logo" field.
func (h *TeamHandler) UploadLogo(w http.ResponseWriter, r *http.Request) {
	tournamentID, teamID, err := teamParams(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxLogoBytes+1024)
	if err := r.ParseMultipartForm(maxLogoBytes); err != nil {
		badRequestResponse(w, r, fmt.Errorf("failed to parse multipart form: %w", err))
		return
	}

	file, header, err := r.FormFile("logo")
	if err != nil {
		badRequestResponse(w, r, fmt.Errorf("failed to get logo file from form: %w", err))
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		badRequestResponse(w, r, errors.New("content-type header is required for logo"))
		return
	}

	tournament, err := h.tournamentService.UploadTeamLogo(r.Context(), tournamentID, teamID, contentType, file)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeOK(w, r, http.StatusOK, jsonResponse{"tournament": tournament})
}

// AddPlayer handles POST /tournaments/{tournamentID}/teams/{teamID}/players.
func (h *TeamHandler) AddPlayer(w http.ResponseWriter, r *http.Request) {
	tournamentID, teamID, err := teamParams(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.PlayerInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tournament, err := h.tournamentService.AddPlayer(r.Context(), tournamentID, teamID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeOK(w, r, http.StatusCreated, jsonResponse{"tournament": tournament})
}

// UpdatePlayer handles PATCH /tournaments/{tournamentID}/teams/{teamID}/players/{playerID}.
func (h *TeamHandler) UpdatePlayer(w http.ResponseWriter, r *http.Request) {
	tournamentID, teamID, err := teamParams(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	playerID, err := urlParam(r, "playerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.UpdatePlayerInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tournament, err := h.tournamentService.UpdatePlayer(r.Context(), tournamentID, teamID, playerID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeOK(w, r, http.StatusOK, jsonResponse{"tournament": tournament})
}

// RemovePlayer handles DELETE /tournaments/{tournamentID}/teams/{teamID}/players/{playerID}.
func (h *TeamHandler) RemovePlayer(w http.ResponseWriter, r *http.Request) {
	tournamentID, teamID, err := teamParams(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	playerID, err := urlParam(r, "playerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tournament, err := h.tournamentService.RemovePlayer(r.Context(), tournamentID, teamID, playerID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeOK(w, r, http.StatusOK, jsonResponse{"tournament": tournament})
}
