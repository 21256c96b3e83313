package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func sampleTournament() *Tournament {
	started := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	return &Tournament{
		ID:      "t1",
		Name:    "Spring Cup",
		PinHash: "hash",
		Teams: []Team{{
			ID:      "a",
			Name:    "A",
			LogoKey: ptr("teams/a/logo.png"),
			LogoURL: ptr("https://cdn.test/teams/a/logo.png"),
			Players: []Player{{ID: "p1", Name: "Adam", JerseyNumber: 9, BirthYear: ptr(2014)}},
		}, {ID: "b", Name: "B"}},
		Matches: []Match{{
			ID:         "m1",
			HomeTeamID: "a",
			AwayTeamID: "b",
			Status:     MatchStatusLive,
			StartedAt:  &started,
			Goals:      []Goal{{ID: "g1", TeamID: "a", PlayerID: ptr("p1"), Minute: 4}},
		}},
	}
}

func TestCloneDoesNotAliasOriginal(t *testing.T) {
	orig := sampleTournament()
	c := orig.Clone()
	require.Equal(t, orig, c)

	*c.Teams[0].LogoKey = "changed"
	*c.Teams[0].LogoURL = "changed"
	*c.Teams[0].Players[0].BirthYear = 2000
	c.Teams[0].Players[0].Name = "changed"
	*c.Matches[0].Goals[0].PlayerID = "changed"
	*c.Matches[0].StartedAt = time.Time{}
	c.Matches[0].Goals[0].Minute = 99

	assert.Equal(t, sampleTournament(), orig)
}

func TestCloneNil(t *testing.T) {
	var tour *Tournament
	assert.Nil(t, tour.Clone())
	assert.Nil(t, tour.Public())
}

func TestPublicDropsPinHash(t *testing.T) {
	orig := sampleTournament()
	pub := orig.Public()
	assert.Empty(t, pub.PinHash)
	assert.Equal(t, "hash", orig.PinHash)
}

func TestSummary(t *testing.T) {
	tour := sampleTournament()
	tour.Settings.StartDate = "2025-01-01"
	tour.Matches = append(tour.Matches, Match{ID: "m2", Status: MatchStatusFinished})

	s := tour.Summary()
	assert.Equal(t, "t1", s.ID)
	assert.Equal(t, "2025-01-01", s.StartDate)
	assert.Equal(t, 2, s.TeamCount)
	assert.Equal(t, 2, s.MatchCount)
	assert.Equal(t, 1, s.FinishedCount)
}
