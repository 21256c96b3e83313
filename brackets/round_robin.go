package brackets

import (
	"fmt"
	"time"

	"github.com/Dosada05/youth-cup/models"
)

type RoundRobinGenerator struct{}

func NewRoundRobinGenerator() ScheduleGenerator {
	return &RoundRobinGenerator{}
}

func (g *RoundRobinGenerator) GetName() string {
	return "RoundRobin"
}

// rotationSlot is one position in the circle. A bye slot never carries a team.
type rotationSlot struct {
	team int
	bye  bool
}

// Generate builds a single round robin with the circle method.
//
// Position 0 is fixed and the remaining positions rotate one step to the right per round.
// With an odd team count a bye slot is added; pairings against it are dropped before a match
// is built, so the team drawn against it sits that round out.
func (g *RoundRobinGenerator) Generate(teams []models.Team, settings models.Settings) ([]models.Match, error) {
	if len(teams) < 2 {
		return []models.Match{}, nil
	}

	start, err := settings.StartDateTime()
	if err != nil {
		return nil, fmt.Errorf("RoundRobinGenerator: %w", err)
	}

	slots := make([]rotationSlot, 0, len(teams)+1)
	for i := range teams {
		slots = append(slots, rotationSlot{team: i})
	}
	if len(slots)%2 != 0 {
		slots = append(slots, rotationSlot{bye: true})
	}

	n := len(slots)
	rounds := n - 1
	matchesPerRound := n / 2

	matches := make([]models.Match, 0, CountMatches(len(teams)))
	matchIndex := 0

	for round := 0; round < rounds; round++ {
		rotated := make([]rotationSlot, 0, n)
		rotated = append(rotated, slots[0])
		rotated = append(rotated, rotateRight(slots[1:], round)...)

		for i := 0; i < matchesPerRound; i++ {
			home := rotated[i]
			away := rotated[n-1-i]
			if home.bye || away.bye {
				continue
			}

			matches = append(matches, models.Match{
				ID:              matchID(matchIndex),
				HomeTeamID:      teams[home.team].ID,
				AwayTeamID:      teams[away.team].ID,
				ScheduledTime:   KickoffTime(start, matchIndex, settings),
				DurationMinutes: settings.MatchDurationMinutes,
				Status:          models.MatchStatusScheduled,
				Goals:           []models.Goal{},
				RoundIndex:      round,
				MatchIndex:      matchIndex,
			})
			matchIndex++
		}
	}

	return matches, nil
}

// GenerateRoundRobin is a convenience wrapper around RoundRobinGenerator.
func GenerateRoundRobin(teams []models.Team, settings models.Settings) ([]models.Match, error) {
	return (&RoundRobinGenerator{}).Generate(teams, settings)
}

// KickoffTime places matches back to back: start + index*(duration+break).
func KickoffTime(start time.Time, matchIndex int, settings models.Settings) time.Time {
	return start.Add(time.Duration(matchIndex*settings.SlotMinutes()) * time.Minute)
}

// CountMatches is the number of real matches for n teams: every pair once.
func CountMatches(n int) int {
	if n < 2 {
		return 0
	}
	return n * (n - 1) / 2
}

// EstimateDuration is the total tournament length in minutes, breaks included.
func EstimateDuration(n int, settings models.Settings) int {
	return CountMatches(n) * settings.SlotMinutes()
}

func rotateRight(s []rotationSlot, k int) []rotationSlot {
	l := len(s)
	if l == 0 {
		return nil
	}
	shift := k % l
	out := make([]rotationSlot, 0, l)
	out = append(out, s[l-shift:]...)
	out = append(out, s[:l-shift]...)
	return out
}

func matchID(matchIndex int) string {
	return fmt.Sprintf("m%d", matchIndex)
}
