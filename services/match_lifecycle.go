package services

import (
	"time"

	"github.com/Dosada05/youth-cup/matchclock"
	"github.com/Dosada05/youth-cup/models"
)

// The transition functions below mutate the tournament in place and report whether anything
// changed. An illegal transition leaves the record untouched and returns false.

func startMatch(t *models.Tournament, m *models.Match, now time.Time) bool {
	if m.Status != models.MatchStatusScheduled {
		return false
	}
	m.Status = models.MatchStatusLive
	m.StartedAt = timePtr(now)
	m.PausedAt = nil
	m.PausedElapsed = 0
	m.FinishedAt = nil
	if t.Status == models.StatusDraft {
		t.Status = models.StatusActive
	}
	return true
}

func pauseMatch(_ *models.Tournament, m *models.Match, now time.Time) bool {
	if m.Status != models.MatchStatusLive || m.PausedAt != nil {
		return false
	}
	m.PausedElapsed = matchclock.ElapsedSeconds(m.StartedAt, nil, m.PausedElapsed, now)
	m.PausedAt = timePtr(now)
	return true
}

func resumeMatch(_ *models.Tournament, m *models.Match, now time.Time) bool {
	if m.Status != models.MatchStatusLive || m.PausedAt == nil {
		return false
	}
	m.StartedAt = timePtr(now)
	m.PausedAt = nil
	return true
}

// finishMatch resumes a paused match at the same instant first, so the banked time is the final time.
func finishMatch(t *models.Tournament, m *models.Match, now time.Time) bool {
	if m.Status != models.MatchStatusLive {
		return false
	}
	if m.PausedAt != nil {
		resumeMatch(t, m, now)
	}
	m.Status = models.MatchStatusFinished
	m.FinishedAt = timePtr(now)
	recomputeTournamentStatus(t)
	return true
}

func reopenMatch(t *models.Tournament, m *models.Match, now time.Time) bool {
	if m.Status != models.MatchStatusFinished {
		return false
	}
	m.Status = models.MatchStatusLive
	m.StartedAt = timePtr(now)
	m.FinishedAt = nil
	m.PausedAt = nil
	m.PausedElapsed = 0
	recomputeTournamentStatus(t)
	return true
}

func resetMatch(t *models.Tournament, m *models.Match, _ time.Time) bool {
	if m.Status == models.MatchStatusScheduled && m.StartedAt == nil && len(m.Goals) == 0 &&
		m.HomeScore == 0 && m.AwayScore == 0 {
		return false
	}
	m.Status = models.MatchStatusScheduled
	m.HomeScore = 0
	m.AwayScore = 0
	m.Goals = []models.Goal{}
	m.StartedAt = nil
	m.FinishedAt = nil
	m.PausedAt = nil
	m.PausedElapsed = 0
	recomputeTournamentStatus(t)
	return true
}

// recomputeTournamentStatus is finished iff every match is finished, otherwise active.
func recomputeTournamentStatus(t *models.Tournament) {
	if len(t.Matches) == 0 {
		return
	}
	for i := range t.Matches {
		if t.Matches[i].Status != models.MatchStatusFinished {
			t.Status = models.StatusActive
			return
		}
	}
	t.Status = models.StatusFinished
}

// recordGoal appends g and credits its beneficiary. A zero minute is filled from the match clock.
func recordGoal(m *models.Match, g models.Goal, now time.Time) bool {
	if m.Status == models.MatchStatusScheduled || !m.Involves(g.TeamID) {
		return false
	}
	if g.Minute == 0 {
		g.Minute = matchclock.MatchMinute(m, now)
	}
	if g.Minute < 1 {
		g.Minute = 1
	}
	if g.RecordedAt.IsZero() {
		g.RecordedAt = now
	}
	m.Goals = append(m.Goals, g)
	adjustScore(m, m.Beneficiary(g), 1)
	return true
}

func removeLastGoal(m *models.Match) bool {
	if len(m.Goals) == 0 {
		return false
	}
	return removeGoalAt(m, len(m.Goals)-1)
}

func removeGoal(m *models.Match, goalID string) bool {
	idx := goalIndex(m, goalID)
	if idx < 0 {
		return false
	}
	return removeGoalAt(m, idx)
}

func updateGoalPlayer(m *models.Match, goalID string, playerID *string) bool {
	idx := goalIndex(m, goalID)
	if idx < 0 {
		return false
	}
	m.Goals[idx].PlayerID = playerID
	return true
}

func removeGoalAt(m *models.Match, idx int) bool {
	g := m.Goals[idx]
	m.Goals = append(m.Goals[:idx:idx], m.Goals[idx+1:]...)
	adjustScore(m, m.Beneficiary(g), -1)
	return true
}

func goalIndex(m *models.Match, goalID string) int {
	for i := range m.Goals {
		if m.Goals[i].ID == goalID {
			return i
		}
	}
	return -1
}

// adjustScore floors at zero.
func adjustScore(m *models.Match, teamID string, delta int) {
	var score *int
	switch teamID {
	case m.HomeTeamID:
		score = &m.HomeScore
	case m.AwayTeamID:
		score = &m.AwayScore
	default:
		return
	}
	*score += delta
	if *score < 0 {
		*score = 0
	}
}

func timePtr(t time.Time) *time.Time {
	return &t
}
