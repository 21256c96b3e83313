package handlers

import (
	"net/http"

	"github.com/Dosada05/youth-cup/services"
)

// PublicHandler serves the read-only view shared with parents and spectators.
type PublicHandler struct {
	tournamentService *services.TournamentService
}

func NewPublicHandler(ts *services.TournamentService) *PublicHandler {
	return &PublicHandler{tournamentService: ts}
}

// GetTournament handles GET /public/tournaments/{tournamentID}?team={teamID}.
func (h *PublicHandler) GetTournament(w http.ResponseWriter, r *http.Request) {
	id, err := urlParam(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	view, err := h.tournamentService.GetPublic(r.Context(), id, r.URL.Query().Get("team"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeOK(w, r, http.StatusOK, jsonResponse{"view": view})
}

// GetStandings handles GET /public/tournaments/{tournamentID}/standings.
func (h *PublicHandler) GetStandings(w http.ResponseWriter, r *http.Request) {
	id, err := urlParam(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	standings, err := h.tournamentService.Standings(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeOK(w, r, http.StatusOK, jsonResponse{"standings": standings})
}
