package brackets

import (
	"testing"

	"github.com/Dosada05/youth-cup/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func finished(id, home, away string, homeScore, awayScore int) models.Match {
	return models.Match{
		ID:         id,
		HomeTeamID: home,
		AwayTeamID: away,
		Status:     models.MatchStatusFinished,
		HomeScore:  homeScore,
		AwayScore:  awayScore,
	}
}

func byName(rows []models.Standing) map[string]models.Standing {
	out := make(map[string]models.Standing, len(rows))
	for _, r := range rows {
		out[r.TeamName] = r
	}
	return out
}

func TestStandingsEmpty(t *testing.T) {
	teams := makeTeams("B", "A")
	rows := ComputeStandings(nil, teams)
	require.Len(t, rows, 2)
	for _, r := range rows {
		assert.Zero(t, r.Played)
		assert.Zero(t, r.Points)
	}
	assert.Equal(t, "A", rows[0].TeamName)
	assert.Equal(t, 1, rows[0].Position)
	assert.Equal(t, 2, rows[1].Position)
}

func TestStandingsIgnoreUnfinishedMatches(t *testing.T) {
	teams := makeTeams("A", "B")
	live := finished("m0", "id-A", "id-B", 3, 0)
	live.Status = models.MatchStatusLive
	rows := ComputeStandings([]models.Match{live}, teams)
	for _, r := range rows {
		assert.Zero(t, r.Points)
		assert.Zero(t, r.Played)
	}
}

func TestStandingsPointsPerMatch(t *testing.T) {
	tests := []struct {
		name           string
		home, away     int
		wantHomePoints int
		wantAwayPoints int
	}{
		{"home win", 2, 1, 3, 0},
		{"away win", 0, 4, 0, 3},
		{"draw", 1, 1, 1, 1},
		{"goalless draw", 0, 0, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := byName(ComputeStandings(
				[]models.Match{finished("m0", "id-A", "id-B", tt.home, tt.away)},
				makeTeams("A", "B"),
			))
			assert.Equal(t, tt.wantHomePoints, rows["A"].Points)
			assert.Equal(t, tt.wantAwayPoints, rows["B"].Points)
			assert.Equal(t, tt.home-tt.away, rows["A"].GoalDifference)
			assert.Equal(t, 1, rows["A"].Played)
			assert.Equal(t, 1, rows["B"].Played)
		})
	}
}

func TestStandingsTieBreakOrder(t *testing.T) {
	teams := makeTeams("Comet", "Barrandov", "Aston", "Dukla")
	// Comet and Barrandov both win twice 2:0 and draw each other 1:1: 7 points, +4, 5 goals.
	matches := []models.Match{
		finished("m0", "id-Comet", "id-Aston", 2, 0),
		finished("m1", "id-Barrandov", "id-Dukla", 2, 0),
		finished("m2", "id-Comet", "id-Dukla", 2, 0),
		finished("m3", "id-Barrandov", "id-Aston", 2, 0),
		finished("m4", "id-Comet", "id-Barrandov", 1, 1),
		finished("m5", "id-Aston", "id-Dukla", 3, 1),
	}
	rows := ComputeStandings(matches, teams)
	require.Len(t, rows, 4)

	assert.Equal(t, "Barrandov", rows[0].TeamName)
	assert.Equal(t, "Comet", rows[1].TeamName)
	assert.Equal(t, rows[0].Points, rows[1].Points)
	assert.Equal(t, rows[0].GoalDifference, rows[1].GoalDifference)
	assert.Equal(t, rows[0].GoalsFor, rows[1].GoalsFor)
	assert.Equal(t, "Aston", rows[2].TeamName)
	assert.Equal(t, "Dukla", rows[3].TeamName)
	for i, r := range rows {
		assert.Equal(t, i+1, r.Position)
	}
}

func TestStandingsGoalDifferenceBeforeGoalsFor(t *testing.T) {
	teams := makeTeams("A", "B", "C", "D")
	matches := []models.Match{
		finished("m0", "id-A", "id-C", 1, 0), // A: 3 pts, +1, 1 GF
		finished("m1", "id-B", "id-D", 4, 3), // B: 3 pts, +1, 4 GF
	}
	rows := ComputeStandings(matches, teams)
	assert.Equal(t, "B", rows[0].TeamName)
	assert.Equal(t, "A", rows[1].TeamName)
}

func TestStandingsCzechCollation(t *testing.T) {
	// In Czech "ch" sorts after "h", so Hradec precedes Chrudim; "Č" follows "C".
	teams := makeTeams("Chrudim", "Hradec", "Čáslav", "Cheb", "Cvikov")
	rows := ComputeStandingsLocale(language.Czech, nil, teams)
	names := make([]string, len(rows))
	for i, r := range rows {
		names[i] = r.TeamName
	}
	assert.Equal(t, []string{"Cvikov", "Čáslav", "Hradec", "Cheb", "Chrudim"}, names)
}

func TestStandingsOwnGoalScoreCreditsOpponent(t *testing.T) {
	teams := makeTeams("A", "B")
	m := finished("m0", "id-A", "id-B", 0, 0)
	own := models.Goal{ID: "g1", TeamID: "id-A", IsOwnGoal: true}
	m.Goals = []models.Goal{own}
	assert.Equal(t, "id-B", m.Beneficiary(own))
	m.AwayScore = 1

	rows := byName(ComputeStandings([]models.Match{m}, teams))
	assert.Equal(t, 3, rows["B"].Points)
	assert.Equal(t, 0, rows["A"].Points)
	assert.Equal(t, 1, rows["B"].GoalsFor)
}

func TestStandingsDoNotMutateInput(t *testing.T) {
	teams := makeTeams("B", "A")
	matches := []models.Match{finished("m0", "id-B", "id-A", 0, 2)}
	teamsCopy := append([]models.Team(nil), teams...)
	matchesCopy := append([]models.Match(nil), matches...)

	first := ComputeStandings(matches, teams)
	second := ComputeStandings(matches, teams)

	assert.Equal(t, first, second)
	assert.Equal(t, teamsCopy, teams)
	assert.Equal(t, matchesCopy, matches)
}
