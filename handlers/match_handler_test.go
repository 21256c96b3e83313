package handlers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Dosada05/youth-cup/middleware"
	"github.com/Dosada05/youth-cup/models"
	"github.com/Dosada05/youth-cup/services"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticTokens map[string]*services.AdminClaims

func (s staticTokens) ParseToken(token string) (*services.AdminClaims, error) {
	if c, ok := s[token]; ok {
		return c, nil
	}
	return nil, services.ErrAuthenticationFailed
}

func TestMatchHandlerActsOnClaimedTournament(t *testing.T) {
	env := newWSEnv(t)
	tour := env.createTournament(t)
	match := tour.Matches[0]
	_, err := env.matches.Start(context.Background(), tour.ID, match.ID)
	require.NoError(t, err)

	h := NewMatchHandler(env.matches)
	tokens := staticTokens{"admin": {TournamentID: tour.ID, Role: services.RoleAdmin}}
	router := chi.NewRouter()
	router.With(middleware.RequireTournamentAdmin(tokens, slog.New(slog.NewTextHandler(io.Discard, nil)))).
		Post("/tournaments/{tournamentID}/matches/{matchID}/goals", h.RecordGoal)
	router.Post("/open/{tournamentID}/matches/{matchID}/goals", h.RecordGoal)

	body := `{"team_id":"` + match.HomeTeamID + `","minute":3}`

	t.Run("admin token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/tournaments/"+tour.ID+"/matches/"+match.ID+"/goals", strings.NewReader(body))
		req.Header.Set("Authorization", "Bearer admin")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		var resp struct {
			Tournament models.Tournament `json:"tournament"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, 1, resp.Tournament.Matches[0].HomeScore)
	})

	t.Run("route without admin middleware", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/open/"+tour.ID+"/matches/"+match.ID+"/goals", strings.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		stored, err := env.tournaments.Get(context.Background(), tour.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, stored.Matches[0].HomeScore)
	})
}
