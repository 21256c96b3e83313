package services

import (
	"log/slog"

	"github.com/Dosada05/youth-cup/brackets"
	"github.com/Dosada05/youth-cup/matchclock"
	"github.com/Dosada05/youth-cup/metrics"
	"github.com/Dosada05/youth-cup/repositories"
	"github.com/Dosada05/youth-cup/storage"
	"golang.org/x/text/language"
)

// Dependencies are shared by every service. Repo is required; Mirror, Broadcaster, Uploader,
// Clock and Logger fall back to in-memory, no-op, disabled, system and default values.
type Dependencies struct {
	Repo            repositories.TournamentRepository
	Mirror          repositories.PublicMirror
	Broadcaster     Broadcaster
	Uploader        storage.FileUploader
	Metrics         metrics.Metrics
	Clock           matchclock.Clock
	StandingsLocale language.Tag
	Logger          *slog.Logger
}

func (d Dependencies) clock() matchclock.Clock {
	if d.Clock == nil {
		return matchclock.SystemClock()
	}
	return d.Clock
}

func (d Dependencies) metrics() metrics.Metrics {
	if d.Metrics == nil {
		return metrics.NewMock()
	}
	return d.Metrics
}

func (d Dependencies) standingsLocale() language.Tag {
	if d.StandingsLocale == language.Und {
		return brackets.DefaultStandingsLocale
	}
	return d.StandingsLocale
}
