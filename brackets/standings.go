package brackets

import (
	"sort"

	"github.com/Dosada05/youth-cup/models"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

const (
	pointsForWin  = 3
	pointsForDraw = 1
)

// DefaultStandingsLocale orders tied team names the way the league table is read locally.
var DefaultStandingsLocale = language.Czech

// ComputeStandings builds the league table with the default locale.
func ComputeStandings(matches []models.Match, teams []models.Team) []models.Standing {
	return ComputeStandingsLocale(DefaultStandingsLocale, matches, teams)
}

// ComputeStandingsLocale builds the league table from finished matches only.
//
// Every team gets a row, including teams with no finished match. Rows are ordered by points,
// goal difference and goals for (all descending), then by team name under the locale's
// collation. Inputs are never modified.
func ComputeStandingsLocale(tag language.Tag, matches []models.Match, teams []models.Team) []models.Standing {
	standings := make([]models.Standing, len(teams))
	index := make(map[string]*models.Standing, len(teams))
	for i, team := range teams {
		standings[i] = models.Standing{TeamID: team.ID, TeamName: team.Name}
		index[team.ID] = &standings[i]
	}

	for i := range matches {
		m := &matches[i]
		if m.Status != models.MatchStatusFinished {
			continue
		}
		home, away := index[m.HomeTeamID], index[m.AwayTeamID]
		if home == nil || away == nil {
			continue
		}
		applyResult(home, away, m.HomeScore, m.AwayScore)
	}

	// Collators keep internal buffers, so each call gets its own.
	col := collate.New(tag)
	sort.SliceStable(standings, func(i, j int) bool {
		a, b := &standings[i], &standings[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.GoalDifference != b.GoalDifference {
			return a.GoalDifference > b.GoalDifference
		}
		if a.GoalsFor != b.GoalsFor {
			return a.GoalsFor > b.GoalsFor
		}
		return col.CompareString(a.TeamName, b.TeamName) < 0
	})

	for i := range standings {
		standings[i].Position = i + 1
	}
	return standings
}

func applyResult(home, away *models.Standing, homeScore, awayScore int) {
	home.Played++
	away.Played++
	home.GoalsFor += homeScore
	home.GoalsAgainst += awayScore
	away.GoalsFor += awayScore
	away.GoalsAgainst += homeScore

	switch {
	case homeScore > awayScore:
		home.Won++
		home.Points += pointsForWin
		away.Lost++
	case homeScore < awayScore:
		away.Won++
		away.Points += pointsForWin
		home.Lost++
	default:
		home.Drawn++
		away.Drawn++
		home.Points += pointsForDraw
		away.Points += pointsForDraw
	}

	home.GoalDifference = home.GoalsFor - home.GoalsAgainst
	away.GoalDifference = away.GoalsFor - away.GoalsAgainst
}
