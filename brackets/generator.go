package brackets

import "github.com/Dosada05/youth-cup/models"

// ScheduleGenerator turns the tournament's teams and settings into its fixture list.
// Implementations must be deterministic and free of side effects.
type ScheduleGenerator interface {
	Generate(teams []models.Team, settings models.Settings) ([]models.Match, error)

	GetName() string
}
