package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/Dosada05/youth-cup/brackets"
	"github.com/Dosada05/youth-cup/matchclock"
	"github.com/Dosada05/youth-cup/models"
	"github.com/Dosada05/youth-cup/storage"
	"github.com/Dosada05/youth-cup/utils"
	"golang.org/x/sync/errgroup"
)

const (
	minMatchDuration = 1
	maxMatchDuration = 120
	maxBreakMinutes  = 15
	minJerseyNumber  = 1
	maxJerseyNumber  = 99

	maxParallelLogoDeletes = 4
)

type PlayerInput struct {
	Name         string `json:"name"`
	JerseyNumber int    `json:"jersey_number"`
	BirthYear    *int   `json:"birth_year,omitempty"`
}

type TeamInput struct {
	Name    string        `json:"name"`
	Color   string        `json:"color"`
	Players []PlayerInput `json:"players"`
}

type CreateTournamentInput struct {
	Name     string          `json:"name"`
	Settings models.Settings `json:"settings"`
	Teams    []TeamInput     `json:"teams"`
	Pin      string          `json:"pin"`
}

// UpdatePlayerInput changes only the fields that are set.
type UpdatePlayerInput struct {
	Name         *string `json:"name"`
	JerseyNumber *int    `json:"jersey_number"`
	BirthYear    *int    `json:"birth_year"`
}

// PublicTournamentView is what unauthenticated viewers receive: the record without its PIN hash
// plus the derived standings and the clock of every started match.
type PublicTournamentView struct {
	Tournament  *models.Tournament    `json:"tournament"`
	Standings   []models.Standing     `json:"standings"`
	Clocks      []matchclock.Snapshot `json:"clocks"`
	TeamFilter  string                `json:"team_filter,omitempty"`
	GeneratedAt time.Time             `json:"generated_at"`
}

type TournamentService struct {
	store     *Store
	generator brackets.ScheduleGenerator
}

func NewTournamentService(store *Store) *TournamentService {
	return &TournamentService{
		store:     store,
		generator: brackets.NewRoundRobinGenerator(),
	}
}

// Create validates the input, generates the fixture list once and stores a draft tournament.
func (s *TournamentService) Create(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error) {
	if err := validateCreateInput(input); err != nil {
		return nil, err
	}

	pinHash, err := utils.HashPin(input.Pin)
	if err != nil {
		return nil, fmt.Errorf("hashing pin: %w", err)
	}

	now := s.store.clock.Now().UTC()
	t := &models.Tournament{
		ID:        utils.NewID(),
		Name:      strings.TrimSpace(input.Name),
		Status:    models.StatusDraft,
		Settings:  input.Settings,
		Teams:     make([]models.Team, 0, len(input.Teams)),
		PinHash:   pinHash,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, ti := range input.Teams {
		team := models.Team{
			ID:      utils.NewID(),
			Name:    strings.TrimSpace(ti.Name),
			Color:   ti.Color,
			Players: make([]models.Player, 0, len(ti.Players)),
		}
		for _, pi := range ti.Players {
			team.Players = append(team.Players, models.Player{
				ID:           utils.NewID(),
				Name:         strings.TrimSpace(pi.Name),
				JerseyNumber: pi.JerseyNumber,
				BirthYear:    pi.BirthYear,
			})
		}
		t.Teams = append(t.Teams, team)
	}

	matches, err := s.generator.Generate(t.Teams, t.Settings)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSettings, err)
	}
	t.Matches = matches

	if err := s.store.save(ctx, t); err != nil {
		return nil, err
	}
	s.store.metrics.IncTournamentsCreated()
	s.store.logger.InfoContext(ctx, "tournament created",
		slog.String("tournament_id", t.ID),
		slog.Int("teams", len(t.Teams)),
		slog.Int("matches", len(t.Matches)),
		slog.String("generator", s.generator.GetName()))

	return s.store.publicView(t), nil
}

// Get returns the full record for the admin view, without the PIN hash.
func (s *TournamentService) Get(ctx context.Context, id string) (*models.Tournament, error) {
	t, err := s.store.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.store.publicView(t), nil
}

func (s *TournamentService) List(ctx context.Context) ([]models.TournamentSummary, error) {
	list, err := s.store.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing tournaments: %w", err)
	}
	if list == nil {
		return []models.TournamentSummary{}, nil
	}
	return list, nil
}

func (s *TournamentService) Delete(ctx context.Context, id string) error {
	unlock := s.store.lock(id)
	defer unlock()

	t, err := s.store.load(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.remove(ctx, id); err != nil {
		return err
	}
	s.deleteLogos(ctx, t)
	s.store.metrics.IncTournamentsDeleted()
	s.store.logger.InfoContext(ctx, "tournament deleted", slog.String("tournament_id", id))
	return nil
}

// deleteLogos removes every team logo of t in parallel. Failures are logged; the tournament is
// already gone at this point.
func (s *TournamentService) deleteLogos(ctx context.Context, t *models.Tournament) {
	if s.store.uploader == nil {
		return
	}
	var g errgroup.Group
	g.SetLimit(maxParallelLogoDeletes)
	for _, team := range t.Teams {
		if team.LogoKey == nil || *team.LogoKey == "" {
			continue
		}
		key := *team.LogoKey
		g.Go(func() error {
			if err := s.store.uploader.Delete(ctx, key); err != nil {
				s.store.logger.WarnContext(ctx, "failed to delete team logo",
					slog.String("tournament_id", t.ID), slog.String("key", key), slog.Any("error", err))
			}
			return nil
		})
	}
	_ = g.Wait()
}

// GetPublic builds the viewer payload. teamID only narrows the returned match list; standings
// always cover the whole tournament.
func (s *TournamentService) GetPublic(ctx context.Context, id, teamID string) (*PublicTournamentView, error) {
	t, err := s.store.fetchPublic(ctx, id)
	if err != nil {
		return nil, err
	}
	now := s.store.clock.Now()

	view := &PublicTournamentView{
		Standings:   brackets.ComputeStandingsLocale(s.store.locale, t.Matches, t.Teams),
		Clocks:      clockSnapshots(t.Matches, now),
		GeneratedAt: now.UTC(),
	}

	if teamID != "" {
		if t.FindTeam(teamID) == nil {
			return nil, ErrTeamNotFound
		}
		filtered := make([]models.Match, 0, len(t.Teams))
		for _, m := range t.Matches {
			if m.Involves(teamID) {
				filtered = append(filtered, m)
			}
		}
		t.Matches = filtered
		view.TeamFilter = teamID
	}
	view.Tournament = t
	return view, nil
}

// WatchPublic calls deliver with the current public view while holding the tournament's write
// lock, so no update is broadcast between reading the view and deliver returning. Viewers
// subscribe inside deliver to receive every later change exactly after this snapshot.
func (s *TournamentService) WatchPublic(ctx context.Context, id string, deliver func(view *PublicTournamentView) error) error {
	unlock := s.store.lock(id)
	defer unlock()

	view, err := s.GetPublic(ctx, id, "")
	if err != nil {
		return err
	}
	return deliver(view)
}

func (s *TournamentService) Standings(ctx context.Context, id string) ([]models.Standing, error) {
	t, err := s.store.fetchPublic(ctx, id)
	if err != nil {
		return nil, err
	}
	return brackets.ComputeStandingsLocale(s.store.locale, t.Matches, t.Teams), nil
}

func (s *TournamentService) RenameTeam(ctx context.Context, tournamentID, teamID, name string) (*models.Tournament, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrTeamNameRequired
	}
	return s.updateTeam(ctx, tournamentID, teamID, func(team *models.Team) (bool, error) {
		if team.Name == name {
			return false, nil
		}
		team.Name = name
		return true, nil
	})
}

func (s *TournamentService) AddPlayer(ctx context.Context, tournamentID, teamID string, input PlayerInput) (*models.Tournament, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return nil, ErrPlayerNameRequired
	}
	if !validJersey(input.JerseyNumber) {
		return nil, ErrInvalidJerseyNumber
	}
	return s.updateTeam(ctx, tournamentID, teamID, func(team *models.Team) (bool, error) {
		if team.JerseyTaken(input.JerseyNumber, "") {
			return false, ErrJerseyNumberTaken
		}
		team.Players = append(team.Players, models.Player{
			ID:           utils.NewID(),
			Name:         input.Name,
			JerseyNumber: input.JerseyNumber,
			BirthYear:    input.BirthYear,
		})
		return true, nil
	})
}

func (s *TournamentService) UpdatePlayer(ctx context.Context, tournamentID, teamID, playerID string, input UpdatePlayerInput) (*models.Tournament, error) {
	return s.updateTeam(ctx, tournamentID, teamID, func(team *models.Team) (bool, error) {
		player := team.FindPlayer(playerID)
		if player == nil {
			return false, ErrPlayerNotFound
		}
		if input.Name != nil {
			name := strings.TrimSpace(*input.Name)
			if name == "" {
				return false, ErrPlayerNameRequired
			}
			player.Name = name
		}
		if input.JerseyNumber != nil {
			if !validJersey(*input.JerseyNumber) {
				return false, ErrInvalidJerseyNumber
			}
			if team.JerseyTaken(*input.JerseyNumber, playerID) {
				return false, ErrJerseyNumberTaken
			}
			player.JerseyNumber = *input.JerseyNumber
		}
		if input.BirthYear != nil {
			by := *input.BirthYear
			player.BirthYear = &by
		}
		return true, nil
	})
}

// RemovePlayer keeps goals already attributed to the player.
func (s *TournamentService) RemovePlayer(ctx context.Context, tournamentID, teamID, playerID string) (*models.Tournament, error) {
	return s.updateTeam(ctx, tournamentID, teamID, func(team *models.Team) (bool, error) {
		for i := range team.Players {
			if team.Players[i].ID == playerID {
				team.Players = append(team.Players[:i:i], team.Players[i+1:]...)
				return true, nil
			}
		}
		return false, ErrPlayerNotFound
	})
}

// UploadTeamLogo stores the image and replaces the team's previous logo.
func (s *TournamentService) UploadTeamLogo(ctx context.Context, tournamentID, teamID, contentType string, reader io.Reader) (*models.Tournament, error) {
	if s.store.uploader == nil {
		return nil, ErrUploadsDisabled
	}
	ext, err := GetExtensionFromContentType(contentType)
	if err != nil {
		return nil, err
	}

	current, err := s.store.load(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if current.FindTeam(teamID) == nil {
		return nil, ErrTeamNotFound
	}

	key := storage.TeamLogoKey(tournamentID, teamID, utils.NewID(), ext)
	if _, err := s.store.uploader.Upload(ctx, key, contentType, reader); err != nil {
		return nil, fmt.Errorf("uploading team logo: %w", err)
	}

	var previous *string
	updated, err := s.updateTeam(ctx, tournamentID, teamID, func(team *models.Team) (bool, error) {
		previous = team.LogoKey
		team.LogoKey = &key
		team.LogoURL = nil
		return true, nil
	})
	if err != nil {
		if delErr := s.store.uploader.Delete(ctx, key); delErr != nil {
			s.store.logger.WarnContext(ctx, "failed to delete orphaned logo", slog.String("key", key), slog.Any("error", delErr))
		}
		return nil, err
	}
	if previous != nil && *previous != "" && *previous != key {
		if err := s.store.uploader.Delete(ctx, *previous); err != nil {
			s.store.logger.WarnContext(ctx, "failed to delete previous logo", slog.String("key", *previous), slog.Any("error", err))
		}
	}
	return updated, nil
}

func (s *TournamentService) updateTeam(ctx context.Context, tournamentID, teamID string, fn func(team *models.Team) (bool, error)) (*models.Tournament, error) {
	unlock := s.store.lock(tournamentID)
	defer unlock()

	t, err := s.store.load(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	team := t.FindTeam(teamID)
	if team == nil {
		return nil, ErrTeamNotFound
	}
	changed, err := fn(team)
	if err != nil {
		return nil, err
	}
	if changed {
		t.UpdatedAt = s.store.clock.Now().UTC()
		if err := s.store.save(ctx, t); err != nil {
			return nil, err
		}
	}
	return s.store.publicView(t), nil
}

func clockSnapshots(matches []models.Match, now time.Time) []matchclock.Snapshot {
	snapshots := make([]matchclock.Snapshot, 0)
	for i := range matches {
		if matches[i].Status == models.MatchStatusScheduled {
			continue
		}
		snapshots = append(snapshots, matchclock.TakeSnapshot(&matches[i], now))
	}
	return snapshots
}

func validJersey(n int) bool {
	return n >= minJerseyNumber && n <= maxJerseyNumber
}

// ValidationError carries per-field messages and matches ErrValidationFailed.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %d invalid field(s)", ErrValidationFailed, len(e.Fields))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}

func validateCreateInput(input CreateTournamentInput) error {
	fields := make(map[string]string)

	if strings.TrimSpace(input.Name) == "" {
		fields["name"] = ErrTournamentNameRequired.Error()
	}
	if !utils.IsValidPin(input.Pin) {
		fields["pin"] = ErrInvalidPin.Error()
	}

	st := input.Settings
	if st.MatchDurationMinutes < minMatchDuration || st.MatchDurationMinutes > maxMatchDuration {
		fields["settings.match_duration_minutes"] = fmt.Sprintf("must be between %d and %d", minMatchDuration, maxMatchDuration)
	}
	if st.BreakBetweenMatchesMinutes < 0 || st.BreakBetweenMatchesMinutes > maxBreakMinutes {
		fields["settings.break_between_matches_minutes"] = fmt.Sprintf("must be between 0 and %d", maxBreakMinutes)
	}
	if _, err := time.Parse("2006-01-02", st.StartDate); err != nil {
		fields["settings.start_date"] = "must be YYYY-MM-DD"
	}
	if _, err := time.Parse("15:04", st.StartTime); err != nil {
		fields["settings.start_time"] = "must be HH:MM"
	}
	if st.TimeZone != "" {
		if _, err := time.LoadLocation(st.TimeZone); err != nil {
			fields["settings.time_zone"] = "unknown time zone"
		}
	}

	if len(input.Teams) < 2 {
		fields["teams"] = ErrNotEnoughTeams.Error()
	}
	for i, team := range input.Teams {
		if strings.TrimSpace(team.Name) == "" {
			fields[fmt.Sprintf("teams[%d].name", i)] = ErrTeamNameRequired.Error()
		}
		seen := make(map[int]bool, len(team.Players))
		for j, p := range team.Players {
			key := fmt.Sprintf("teams[%d].players[%d]", i, j)
			switch {
			case strings.TrimSpace(p.Name) == "":
				fields[key+".name"] = ErrPlayerNameRequired.Error()
			case !validJersey(p.JerseyNumber):
				fields[key+".jersey_number"] = ErrInvalidJerseyNumber.Error()
			case seen[p.JerseyNumber]:
				fields[key+".jersey_number"] = ErrJerseyNumberTaken.Error()
			}
			seen[p.JerseyNumber] = true
		}
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
