package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Dosada05/youth-cup/brackets"
	"github.com/Dosada05/youth-cup/models"
	"github.com/Dosada05/youth-cup/repositories"
	"github.com/Dosada05/youth-cup/services"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type wsEnv struct {
	server      *httptest.Server
	tournaments *services.TournamentService
	matches     *services.MatchService
}

func newWSEnv(t *testing.T) *wsEnv {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	hub := brackets.NewHub(logger)
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	store := services.NewStore(services.Dependencies{
		Repo:        repositories.NewMemoryTournamentRepository(),
		Mirror:      repositories.NewMemoryPublicMirror(),
		Broadcaster: hub,
		Logger:      logger,
	})
	env := &wsEnv{
		tournaments: services.NewTournamentService(store),
		matches:     services.NewMatchService(store),
	}

	router := chi.NewRouter()
	router.Get("/ws/tournaments/{tournamentID}", NewWebSocketHandler(hub, env.tournaments, nil).ServeWs)
	env.server = httptest.NewServer(router)
	t.Cleanup(func() {
		env.server.Close()
		cancel()
	})
	return env
}

func (e *wsEnv) createTournament(t *testing.T) *models.Tournament {
	t.Helper()
	tour, err := e.tournaments.Create(context.Background(), services.CreateTournamentInput{
		Name: "Autumn Cup",
		Settings: models.Settings{
			MatchDurationMinutes: 10,
			StartDate:            "2025-09-01",
			StartTime:            "10:00",
		},
		Teams: []services.TeamInput{{Name: "Bohemians"}, {Name: "Slavia"}},
		Pin:   "2468",
	})
	require.NoError(t, err)
	return tour
}

func (e *wsEnv) dial(t *testing.T, id string) (*websocket.Conn, *http.Response, error) {
	t.Helper()
	url := "ws" + strings.TrimPrefix(e.server.URL, "http") + "/ws/tournaments/" + id
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if conn != nil {
		t.Cleanup(func() { conn.Close() })
	}
	return conn, resp, err
}

type wsFrame struct {
	Type    string            `json:"type"`
	Payload models.Tournament `json:"payload"`
}

// readFrame returns the next message, or ok=false when nothing arrives within wait.
func readFrame(t *testing.T, conn *websocket.Conn, wait time.Duration) (msg wsFrame, ok bool) {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(wait)))
	_, raw, err := conn.ReadMessage()
	if err != nil {
		var netErr net.Error
		require.True(t, errors.As(err, &netErr) && netErr.Timeout(), "unexpected read error: %v", err)
		return msg, false
	}
	require.NoError(t, json.Unmarshal(raw, &msg))
	return msg, true
}

func TestServeWsSendsSnapshotThenUpdates(t *testing.T) {
	env := newWSEnv(t)
	tour := env.createTournament(t)

	conn, _, err := env.dial(t, tour.ID)
	require.NoError(t, err)

	first, ok := readFrame(t, conn, 2*time.Second)
	require.True(t, ok)
	assert.Equal(t, brackets.MessageTournamentUpdated, first.Type)
	assert.Equal(t, tour.ID, first.Payload.ID)
	assert.Empty(t, first.Payload.PinHash)
	assert.Equal(t, models.MatchStatusScheduled, first.Payload.Matches[0].Status)

	_, err = env.matches.Start(context.Background(), tour.ID, tour.Matches[0].ID)
	require.NoError(t, err)

	next, ok := readFrame(t, conn, 2*time.Second)
	require.True(t, ok)
	assert.Equal(t, brackets.MessageTournamentUpdated, next.Type)
	assert.Equal(t, models.MatchStatusLive, next.Payload.Matches[0].Status)
}

func TestServeWsUnknownTournament(t *testing.T) {
	env := newWSEnv(t)

	_, resp, err := env.dial(t, "missing")
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServeWsLastFrameMatchesStoredRecordUnderConcurrentWrites(t *testing.T) {
	env := newWSEnv(t)
	tour := env.createTournament(t)
	match := tour.Matches[0]
	ctx := context.Background()
	_, err := env.matches.Start(ctx, tour.ID, match.ID)
	require.NoError(t, err)

	const goals = 25
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < goals; i++ {
			_, err := env.matches.RecordGoal(ctx, tour.ID, match.ID, services.GoalInput{TeamID: match.HomeTeamID, Minute: 1})
			assert.NoError(t, err)
		}
	}()

	conn, _, err := env.dial(t, tour.ID)
	require.NoError(t, err)
	wg.Wait()

	var last *models.Tournament
	for {
		msg, ok := readFrame(t, conn, 300*time.Millisecond)
		if !ok {
			break
		}
		payload := msg.Payload
		last = &payload
	}
	require.NotNil(t, last)
	assert.Equal(t, goals, last.Matches[0].HomeScore)
}
