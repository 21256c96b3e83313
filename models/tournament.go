package models

import (
	"fmt"
	"time"
)

// TournamentStatus is derived from the statuses of the tournament's matches.
type TournamentStatus string

const (
	StatusDraft    TournamentStatus = "draft"
	StatusActive   TournamentStatus = "active"
	StatusFinished TournamentStatus = "finished"
)

const (
	settingsDateLayout = "2006-01-02"
	settingsTimeLayout = "15:04"
)

// Settings holds the scheduling parameters chosen when the tournament is created.
type Settings struct {
	MatchDurationMinutes       int    `json:"match_duration_minutes"`
	BreakBetweenMatchesMinutes int    `json:"break_between_matches_minutes"`
	StartDate                  string `json:"start_date"` // YYYY-MM-DD
	StartTime                  string `json:"start_time"` // HH:MM
	TimeZone                   string `json:"time_zone,omitempty"`
	Rules                      string `json:"rules,omitempty"`
}

// StartDateTime resolves StartDate and StartTime in the configured time zone (UTC when empty).
func (s Settings) StartDateTime() (time.Time, error) {
	loc := time.UTC
	if s.TimeZone != "" {
		l, err := time.LoadLocation(s.TimeZone)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid time zone %q: %w", s.TimeZone, err)
		}
		loc = l
	}
	start, err := time.ParseInLocation(settingsDateLayout+" "+settingsTimeLayout, s.StartDate+" "+s.StartTime, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid start date/time %q %q: %w", s.StartDate, s.StartTime, err)
	}
	return start, nil
}

// SlotMinutes is the distance between two consecutive kickoffs.
func (s Settings) SlotMinutes() int {
	return s.MatchDurationMinutes + s.BreakBetweenMatchesMinutes
}

// Tournament is the full persisted record. Standings and clock values are never stored on it.
type Tournament struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Status    TournamentStatus `json:"status"`
	Settings  Settings         `json:"settings"`
	Teams     []Team           `json:"teams"`
	Matches   []Match          `json:"matches"`
	PinHash   string           `json:"pin_hash,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// TournamentSummary is the list view of a tournament.
type TournamentSummary struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Status        TournamentStatus `json:"status"`
	StartDate     string           `json:"start_date"`
	TeamCount     int              `json:"team_count"`
	MatchCount    int              `json:"match_count"`
	FinishedCount int              `json:"finished_count"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

func (t *Tournament) Summary() TournamentSummary {
	finished := 0
	for i := range t.Matches {
		if t.Matches[i].Status == MatchStatusFinished {
			finished++
		}
	}
	return TournamentSummary{
		ID:            t.ID,
		Name:          t.Name,
		Status:        t.Status,
		StartDate:     t.Settings.StartDate,
		TeamCount:     len(t.Teams),
		MatchCount:    len(t.Matches),
		FinishedCount: finished,
		UpdatedAt:     t.UpdatedAt,
	}
}

// FindMatch returns a pointer into t.Matches so callers can mutate in place.
func (t *Tournament) FindMatch(matchID string) *Match {
	for i := range t.Matches {
		if t.Matches[i].ID == matchID {
			return &t.Matches[i]
		}
	}
	return nil
}

func (t *Tournament) FindTeam(teamID string) *Team {
	for i := range t.Teams {
		if t.Teams[i].ID == teamID {
			return &t.Teams[i]
		}
	}
	return nil
}

// Clone returns a deep copy, so a record handed to readers is never aliased by a writer.
func (t *Tournament) Clone() *Tournament {
	if t == nil {
		return nil
	}
	c := *t
	c.Teams = make([]Team, len(t.Teams))
	for i := range t.Teams {
		c.Teams[i] = t.Teams[i].clone()
	}
	c.Matches = make([]Match, len(t.Matches))
	for i := range t.Matches {
		c.Matches[i] = t.Matches[i].clone()
	}
	return &c
}

// Public is a deep copy safe to hand to unauthenticated viewers.
func (t *Tournament) Public() *Tournament {
	c := t.Clone()
	if c != nil {
		c.PinHash = ""
	}
	return c
}
