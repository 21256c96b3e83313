package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Dosada05/youth-cup/models"
	"gopkg.in/yaml.v3"
)

// draft is a tournament sketched in YAML before it is created on the server.
type draft struct {
	Name     string      `yaml:"name"`
	Settings draftConfig `yaml:"settings"`
	Teams    []draftTeam `yaml:"teams"`
}

type draftConfig struct {
	MatchDuration int    `yaml:"match_duration_minutes"`
	Break         int    `yaml:"break_between_matches_minutes"`
	StartDate     string `yaml:"start_date"`
	StartTime     string `yaml:"start_time"`
	TimeZone      string `yaml:"time_zone"`
}

type draftTeam struct {
	Name  string `yaml:"name"`
	Color string `yaml:"color"`
}

func readDraft(r io.Reader) (*draft, error) {
	var d draft
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&d); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("draft is empty")
		}
		return nil, fmt.Errorf("parsing draft: %w", err)
	}
	d.applyDefaults()
	return &d, nil
}

func (d *draft) applyDefaults() {
	if d.Settings.MatchDuration == 0 {
		d.Settings.MatchDuration = 15
	}
	if d.Settings.StartTime == "" {
		d.Settings.StartTime = "09:00"
	}
}

func (d *draft) settings() models.Settings {
	return models.Settings{
		MatchDurationMinutes:       d.Settings.MatchDuration,
		BreakBetweenMatchesMinutes: d.Settings.Break,
		StartDate:                  d.Settings.StartDate,
		StartTime:                  d.Settings.StartTime,
		TimeZone:                   d.Settings.TimeZone,
	}
}

// teams numbers the draft's teams t1..tN; names must be unique so the printed fixtures are unambiguous.
func (d *draft) teams() ([]models.Team, error) {
	seen := make(map[string]bool, len(d.Teams))
	out := make([]models.Team, 0, len(d.Teams))
	for i, t := range d.Teams {
		name := strings.TrimSpace(t.Name)
		if name == "" {
			return nil, fmt.Errorf("team %d has no name", i+1)
		}
		if seen[strings.ToLower(name)] {
			return nil, fmt.Errorf("team %q is listed twice", name)
		}
		seen[strings.ToLower(name)] = true
		out = append(out, models.Team{ID: fmt.Sprintf("t%d", i+1), Name: name, Color: t.Color})
	}
	if len(out) < 2 {
		return nil, errors.New("a tournament needs at least two teams")
	}
	return out, nil
}
