package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/Dosada05/youth-cup/middleware"
	"github.com/Dosada05/youth-cup/services"
)

type MatchHandler struct {
	matchService *services.MatchService
}

func NewMatchHandler(ms *services.MatchService) *MatchHandler {
	return &MatchHandler{matchService: ms}
}

// matchParams resolves the acting tournament from the admin claims and the match from the URL.
// It writes the error response itself and returns ok=false on failure.
func matchParams(w http.ResponseWriter, r *http.Request) (tournamentID, matchID string, ok bool) {
	claims, err := middleware.AdminClaimsFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, services.ErrAuthenticationFailed.Error())
		return "", "", false
	}
	matchID, err = urlParam(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return "", "", false
	}
	slog.DebugContext(r.Context(), "match edit",
		slog.String("tournament_id", claims.TournamentID),
		slog.String("match_id", matchID),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path))
	return claims.TournamentID, matchID, true
}

// Transition handles POST /tournaments/{tournamentID}/matches/{matchID}/{action}.
// An action that is not legal in the match's current state returns the unchanged tournament.
func (h *MatchHandler) Transition(w http.ResponseWriter, r *http.Request) {
	tournamentID, matchID, ok := matchParams(w, r)
	if !ok {
		return
	}
	action, err := urlParam(r, "action")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if !services.IsAction(action) {
		notFoundResponse(w, r, fmt.Sprintf("unknown match action %q", action))
		return
	}

	tournament, err := h.matchService.Apply(r.Context(), tournamentID, matchID, action)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeOK(w, r, http.StatusOK, jsonResponse{"tournament": tournament})
}

// RecordGoal handles POST /tournaments/{tournamentID}/matches/{matchID}/goals.
func (h *MatchHandler) RecordGoal(w http.ResponseWriter, r *http.Request) {
	tournamentID, matchID, ok := matchParams(w, r)
	if !ok {
		return
	}

	var input services.GoalInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tournament, err := h.matchService.RecordGoal(r.Context(), tournamentID, matchID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeOK(w, r, http.StatusCreated, jsonResponse{"tournament": tournament})
}

// RemoveLastGoal handles DELETE /tournaments/{tournamentID}/matches/{matchID}/goals/last.
func (h *MatchHandler) RemoveLastGoal(w http.ResponseWriter, r *http.Request) {
	tournamentID, matchID, ok := matchParams(w, r)
	if !ok {
		return
	}

	tournament, err := h.matchService.RemoveLastGoal(r.Context(), tournamentID, matchID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeOK(w, r, http.StatusOK, jsonResponse{"tournament": tournament})
}

// RemoveGoal handles DELETE /tournaments/{tournamentID}/matches/{matchID}/goals/{goalID}.
func (h *MatchHandler) RemoveGoal(w http.ResponseWriter, r *http.Request) {
	tournamentID, matchID, ok := matchParams(w, r)
	if !ok {
		return
	}
	goalID, err := urlParam(r, "goalID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tournament, err := h.matchService.RemoveGoal(r.Context(), tournamentID, matchID, goalID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeOK(w, r, http.StatusOK, jsonResponse{"tournament": tournament})
}

// UpdateGoal handles PATCH /tournaments/{tournamentID}/matches/{matchID}/goals/{goalID}.
// A null player_id clears the attribution.
func (h *MatchHandler) UpdateGoal(w http.ResponseWriter, r *http.Request) {
	tournamentID, matchID, ok := matchParams(w, r)
	if !ok {
		return
	}
	goalID, err := urlParam(r, "goalID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		PlayerID *string `json:"player_id"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tournament, err := h.matchService.UpdateGoalPlayer(r.Context(), tournamentID, matchID, goalID, input.PlayerID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeOK(w, r, http.StatusOK, jsonResponse{"tournament": tournament})
}
