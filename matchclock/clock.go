// Package matchclock derives match time from the timestamps stored on a match.
//
// Nothing here keeps state: every answer is recomputed from StartedAt, PausedAt and
// PausedElapsed against a caller-supplied "now", so any polling cadence reads the same value.
package matchclock

import (
	"fmt"
	"time"

	"github.com/Dosada05/youth-cup/models"
)

// Clock supplies the single "now" used for one computation.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock reads the wall clock.
func SystemClock() Clock { return systemClock{} }

// FixedClock always returns the same instant.
type FixedClock time.Time

func (c FixedClock) Now() time.Time { return time.Time(c) }

// ElapsedSeconds is the playing time in whole seconds.
// Not started: 0. Paused: the banked value. Running: seconds since start plus the banked value.
func ElapsedSeconds(startedAt, pausedAt *time.Time, pausedElapsed int, now time.Time) int {
	if startedAt == nil {
		return 0
	}
	if pausedAt != nil {
		return pausedElapsed
	}
	since := int(now.Sub(*startedAt) / time.Second)
	if since < 0 {
		since = 0
	}
	return since + pausedElapsed
}

// CurrentMinute is 1-based: seconds 0-59 are minute 1.
func CurrentMinute(startedAt, pausedAt *time.Time, pausedElapsed int, now time.Time) int {
	return ElapsedSeconds(startedAt, pausedAt, pausedElapsed, now)/60 + 1
}

// MatchElapsed applies ElapsedSeconds to m. A finished match is read at its finish time.
func MatchElapsed(m *models.Match, now time.Time) int {
	if m.Status == models.MatchStatusFinished && m.FinishedAt != nil {
		now = *m.FinishedAt
	}
	return ElapsedSeconds(m.StartedAt, m.PausedAt, m.PausedElapsed, now)
}

// MatchMinute applies CurrentMinute to m.
func MatchMinute(m *models.Match, now time.Time) int {
	return MatchElapsed(m, now)/60 + 1
}

// Remaining is the countdown in seconds; negative means overtime.
func Remaining(durationMinutes, elapsedSeconds int) int {
	return durationMinutes*60 - elapsedSeconds
}

// FormatElapsed renders MM:SS, or +MM:SS counting the time played beyond the duration.
func FormatElapsed(elapsedSeconds, durationMinutes int) string {
	remaining := Remaining(durationMinutes, elapsedSeconds)
	if remaining < 0 {
		over := -remaining
		return fmt.Sprintf("+%02d:%02d", over/60, over%60)
	}
	return fmt.Sprintf("%02d:%02d", elapsedSeconds/60, elapsedSeconds%60)
}

// Snapshot is the clock state of one match at one instant.
type Snapshot struct {
	MatchID          string             `json:"match_id"`
	Status           models.MatchStatus `json:"status"`
	ElapsedSeconds   int                `json:"elapsed_seconds"`
	CurrentMinute    int                `json:"current_minute"`
	RemainingSeconds int                `json:"remaining_seconds"`
	Overtime         bool               `json:"overtime"`
	Paused           bool               `json:"paused"`
	Display          string             `json:"display"`
}

func TakeSnapshot(m *models.Match, now time.Time) Snapshot {
	elapsed := MatchElapsed(m, now)
	remaining := Remaining(m.DurationMinutes, elapsed)
	return Snapshot{
		MatchID:          m.ID,
		Status:           m.Status,
		ElapsedSeconds:   elapsed,
		CurrentMinute:    elapsed/60 + 1,
		RemainingSeconds: remaining,
		Overtime:         remaining < 0,
		Paused:           m.PausedAt != nil,
		Display:          FormatElapsed(elapsed, m.DurationMinutes),
	}
}
