package repositories

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/Dosada05/youth-cup/db"
	"github.com/Dosada05/youth-cup/models"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTournament(id string, created time.Time) *models.Tournament {
	return &models.Tournament{
		ID:     id,
		Name:   "Cup " + id,
		Status: models.StatusDraft,
		Settings: models.Settings{
			MatchDurationMinutes:       12,
			BreakBetweenMatchesMinutes: 3,
			StartDate:                  "2025-05-10",
			StartTime:                  "10:00",
		},
		Teams: []models.Team{
			{ID: "a", Name: "A", Players: []models.Player{{ID: "p1", Name: "Eva", JerseyNumber: 4}}},
			{ID: "b", Name: "B"},
		},
		Matches: []models.Match{
			{ID: "m0", HomeTeamID: "a", AwayTeamID: "b", Status: models.MatchStatusScheduled, Goals: []models.Goal{}},
		},
		PinHash:   "hash",
		CreatedAt: created,
		UpdatedAt: created,
	}
}

func exerciseRepository(t *testing.T, repo TournamentRepository) {
	t.Helper()
	ctx := context.Background()
	base := time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)

	_, err := repo.Load(ctx, "missing")
	assert.ErrorIs(t, err, ErrTournamentNotFound)

	older := sampleTournament("older", base)
	newer := sampleTournament("newer", base.Add(time.Hour))
	require.NoError(t, repo.Save(ctx, older))
	require.NoError(t, repo.Save(ctx, newer))

	loaded, err := repo.Load(ctx, "older")
	require.NoError(t, err)
	assert.Equal(t, "hash", loaded.PinHash)
	assert.Equal(t, older.Teams, loaded.Teams)

	// Last write wins.
	loaded.Matches[0].Status = models.MatchStatusLive
	loaded.Matches = append(loaded.Matches, models.Match{ID: "m1", HomeTeamID: "b", AwayTeamID: "a", Status: models.MatchStatusFinished})
	loaded.Status = models.StatusActive
	loaded.UpdatedAt = base.Add(2 * time.Hour)
	require.NoError(t, repo.Save(ctx, loaded))
	again, err := repo.Load(ctx, "older")
	require.NoError(t, err)
	assert.Equal(t, models.MatchStatusLive, again.Matches[0].Status)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "newer", list[0].ID)
	assert.Equal(t, 1, list[0].MatchCount)
	assert.Zero(t, list[0].FinishedCount)

	summary := list[1]
	assert.Equal(t, "older", summary.ID)
	assert.Equal(t, "Cup older", summary.Name)
	assert.Equal(t, models.StatusActive, summary.Status)
	assert.Equal(t, "2025-05-10", summary.StartDate)
	assert.Equal(t, 2, summary.TeamCount)
	assert.Equal(t, 2, summary.MatchCount)
	assert.Equal(t, 1, summary.FinishedCount)
	assert.True(t, base.Add(2*time.Hour).Equal(summary.UpdatedAt))

	// Records written without teams or matches still list.
	empty := sampleTournament("empty", base.Add(-time.Hour))
	empty.Teams, empty.Matches = nil, nil
	require.NoError(t, repo.Save(ctx, empty))
	list, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "empty", list[2].ID)
	assert.Zero(t, list[2].TeamCount)
	assert.Zero(t, list[2].MatchCount)
	require.NoError(t, repo.Delete(ctx, "empty"))

	require.NoError(t, repo.Delete(ctx, "older"))
	assert.ErrorIs(t, repo.Delete(ctx, "older"), ErrTournamentNotFound)
}

func TestMemoryTournamentRepository(t *testing.T) {
	exerciseRepository(t, NewMemoryTournamentRepository())
}

func TestMemoryRepositoryDoesNotAlias(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryTournamentRepository()
	tour := sampleTournament("x", time.Now())
	require.NoError(t, repo.Save(ctx, tour))

	tour.Teams[0].Players[0].Name = "changed"
	loaded, err := repo.Load(ctx, "x")
	require.NoError(t, err)
	assert.Equal(t, "Eva", loaded.Teams[0].Players[0].Name)

	loaded.Matches[0].HomeScore = 5
	reloaded, err := repo.Load(ctx, "x")
	require.NoError(t, err)
	assert.Zero(t, reloaded.Matches[0].HomeScore)
}

func TestPostgresTournamentRepository(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	conn, err := db.Connect(dsn, 5*time.Second)
	require.NoError(t, err)
	defer conn.Close()

	ctx := context.Background()
	require.NoError(t, db.Migrate(ctx, conn))
	_, err = conn.ExecContext(ctx, `DELETE FROM tournaments WHERE id IN ('older', 'newer')`)
	require.NoError(t, err)

	exerciseRepository(t, NewPostgresTournamentRepository(conn))
}

func exerciseMirror(t *testing.T, mirror PublicMirror) {
	t.Helper()
	ctx := context.Background()

	_, err := mirror.Fetch(ctx, "mirror-test")
	assert.ErrorIs(t, err, ErrTournamentNotFound)

	tour := sampleTournament("mirror-test", time.Now().UTC())
	require.NoError(t, mirror.Publish(ctx, tour))
	assert.Equal(t, "hash", tour.PinHash)

	got, err := mirror.Fetch(ctx, "mirror-test")
	require.NoError(t, err)
	assert.Empty(t, got.PinHash)
	assert.Equal(t, tour.Name, got.Name)
	assert.Len(t, got.Matches, 1)

	require.NoError(t, mirror.Remove(ctx, "mirror-test"))
	_, err = mirror.Fetch(ctx, "mirror-test")
	assert.ErrorIs(t, err, ErrTournamentNotFound)
}

func TestMemoryPublicMirror(t *testing.T) {
	exerciseMirror(t, NewMemoryPublicMirror())
}

func TestRedisPublicMirror(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	mirror, closeFn, err := NewRedisPublicMirror(context.Background(), RedisMirrorConfig{Addr: addr}, logger)
	require.NoError(t, err)
	defer closeFn()

	exerciseMirror(t, mirror)
}

func TestMapPostgresError(t *testing.T) {
	assert.NoError(t, mapPostgresError(nil))

	err := mapPostgresError(&pq.Error{Code: pqCheckViolation, Message: "status check"})
	assert.ErrorIs(t, err, ErrTournamentInvalidRecord)

	other := &pq.Error{Code: "08006"}
	assert.Same(t, other, mapPostgresError(other))

	_, err = decodeTournament([]byte("{not json"))
	assert.Error(t, err)
}
