package models

import "time"

type MatchStatus string

const (
	MatchStatusScheduled MatchStatus = "scheduled"
	MatchStatusLive      MatchStatus = "live"
	MatchStatusFinished  MatchStatus = "finished"
)

// Match is a single fixture. RoundIndex and MatchIndex are assigned by the generator and never change.
//
// StartedAt is reset to the resume instant after every pause, so it is not the true kickoff time
// once the match has been paused. PausedElapsed holds the seconds banked before the latest start.
type Match struct {
	ID              string      `json:"id"`
	HomeTeamID      string      `json:"home_team_id"`
	AwayTeamID      string      `json:"away_team_id"`
	ScheduledTime   time.Time   `json:"scheduled_time"`
	DurationMinutes int         `json:"duration_minutes"`
	Status          MatchStatus `json:"status"`
	HomeScore       int         `json:"home_score"`
	AwayScore       int         `json:"away_score"`
	Goals           []Goal      `json:"goals"`
	StartedAt       *time.Time  `json:"started_at"`
	FinishedAt      *time.Time  `json:"finished_at"`
	PausedAt        *time.Time  `json:"paused_at"`
	PausedElapsed   int         `json:"paused_elapsed"`
	RoundIndex      int         `json:"round_index"`
	MatchIndex      int         `json:"match_index"`
}

// Goal is recorded against TeamID. An own goal credits the opponent of TeamID.
type Goal struct {
	ID         string    `json:"id"`
	TeamID     string    `json:"team_id"`
	PlayerID   *string   `json:"player_id"`
	IsOwnGoal  bool      `json:"is_own_goal"`
	Minute     int       `json:"minute"`
	RecordedAt time.Time `json:"recorded_at"`
}

// Involves reports whether teamID plays in the match.
func (m *Match) Involves(teamID string) bool {
	return m.HomeTeamID == teamID || m.AwayTeamID == teamID
}

// Opponent returns the other side of the match, or "" when teamID does not play in it.
func (m *Match) Opponent(teamID string) string {
	switch teamID {
	case m.HomeTeamID:
		return m.AwayTeamID
	case m.AwayTeamID:
		return m.HomeTeamID
	}
	return ""
}

// Beneficiary is the team whose score a goal increases.
func (m *Match) Beneficiary(g Goal) string {
	if g.IsOwnGoal {
		return m.Opponent(g.TeamID)
	}
	return g.TeamID
}

func (m *Match) clone() Match {
	c := *m
	c.Goals = append([]Goal(nil), m.Goals...)
	for i := range c.Goals {
		c.Goals[i].PlayerID = clonePtr(m.Goals[i].PlayerID)
	}
	c.StartedAt = clonePtr(m.StartedAt)
	c.FinishedAt = clonePtr(m.FinishedAt)
	c.PausedAt = clonePtr(m.PausedAt)
	return c
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
