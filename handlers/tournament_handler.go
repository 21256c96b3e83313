package handlers

import (
	"net/http"

	"github.com/Dosada05/youth-cup/services"
)

type TournamentHandler struct {
	tournamentService *services.TournamentService
	authService       *services.AuthService
}

func NewTournamentHandler(ts *services.TournamentService, as *services.AuthService) *TournamentHandler {
	return &TournamentHandler{
		tournamentService: ts,
		authService:       as,
	}
}

// CreateHandler handles POST /tournaments. The response carries an admin token so the creator
// does not have to enter the PIN again.
func (h *TournamentHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var input services.CreateTournamentInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tournament, err := h.tournamentService.Create(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	token, err := h.authService.IssueToken(tournament.ID)
	if err != nil {
		serverErrorResponse(w, r, err)
		return
	}

	writeOK(w, r, http.StatusCreated, jsonResponse{"tournament": tournament, "admin": token})
}

// ListHandler handles GET /tournaments.
func (h *TournamentHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	tournaments, err := h.tournamentService.List(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeOK(w, r, http.StatusOK, jsonResponse{"tournaments": tournaments})
}

// GetByIDHandler handles GET /tournaments/{tournamentID}.
func (h *TournamentHandler) GetByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlParam(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tournament, err := h.tournamentService.Get(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeOK(w, r, http.StatusOK, jsonResponse{"tournament": tournament})
}

// DeleteHandler handles DELETE /tournaments/{tournamentID}.
func (h *TournamentHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlParam(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.tournamentService.Delete(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
