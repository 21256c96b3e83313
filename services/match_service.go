package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/Dosada05/youth-cup/models"
	"github.com/Dosada05/youth-cup/utils"
)

// Lifecycle actions, also used as the metrics label.
const (
	ActionStart  = "start"
	ActionPause  = "pause"
	ActionResume = "resume"
	ActionFinish = "finish"
	ActionReopen = "reopen"
	ActionReset  = "reset"
)

type GoalInput struct {
	TeamID    string  `json:"team_id"`
	PlayerID  *string `json:"player_id"`
	IsOwnGoal bool    `json:"is_own_goal"`
	Minute    int     `json:"minute"`
}

// MatchService applies lifecycle transitions and goal edits. Every method returns the
// tournament as it is after the call; an illegal transition returns it unchanged and writes nothing.
type MatchService struct {
	store *Store
}

func NewMatchService(store *Store) *MatchService {
	return &MatchService{store: store}
}

type transitionFunc func(t *models.Tournament, m *models.Match, now time.Time) bool

var transitions = map[string]transitionFunc{
	ActionStart:  startMatch,
	ActionPause:  pauseMatch,
	ActionResume: resumeMatch,
	ActionFinish: finishMatch,
	ActionReopen: reopenMatch,
	ActionReset:  resetMatch,
}

// IsAction reports whether action names a lifecycle transition.
func IsAction(action string) bool {
	_, ok := transitions[action]
	return ok
}

func (s *MatchService) Start(ctx context.Context, tournamentID, matchID string) (*models.Tournament, error) {
	return s.Apply(ctx, tournamentID, matchID, ActionStart)
}

func (s *MatchService) Pause(ctx context.Context, tournamentID, matchID string) (*models.Tournament, error) {
	return s.Apply(ctx, tournamentID, matchID, ActionPause)
}

func (s *MatchService) Resume(ctx context.Context, tournamentID, matchID string) (*models.Tournament, error) {
	return s.Apply(ctx, tournamentID, matchID, ActionResume)
}

func (s *MatchService) Finish(ctx context.Context, tournamentID, matchID string) (*models.Tournament, error) {
	return s.Apply(ctx, tournamentID, matchID, ActionFinish)
}

func (s *MatchService) Reopen(ctx context.Context, tournamentID, matchID string) (*models.Tournament, error) {
	return s.Apply(ctx, tournamentID, matchID, ActionReopen)
}

func (s *MatchService) Reset(ctx context.Context, tournamentID, matchID string) (*models.Tournament, error) {
	return s.Apply(ctx, tournamentID, matchID, ActionReset)
}

// Apply runs the named transition. Unknown actions fail with ErrValidationFailed.
func (s *MatchService) Apply(ctx context.Context, tournamentID, matchID, action string) (*models.Tournament, error) {
	fn, ok := transitions[action]
	if !ok {
		return nil, ErrValidationFailed
	}
	t, applied, err := s.mutate(ctx, tournamentID, matchID, func(t *models.Tournament, m *models.Match, now time.Time) (bool, error) {
		return fn(t, m, now), nil
	})
	if err != nil {
		return nil, err
	}
	if applied {
		s.store.metrics.IncMatchTransition(action)
		s.store.logger.InfoContext(ctx, "match transition applied",
			slog.String("tournament_id", tournamentID),
			slog.String("match_id", matchID),
			slog.String("action", action),
			slog.String("tournament_status", string(t.Status)))
	} else {
		s.store.logger.DebugContext(ctx, "match transition ignored",
			slog.String("tournament_id", tournamentID),
			slog.String("match_id", matchID),
			slog.String("action", action))
	}
	return t, nil
}

// RecordGoal validates the team and player against the match and appends the goal.
func (s *MatchService) RecordGoal(ctx context.Context, tournamentID, matchID string, input GoalInput) (*models.Tournament, error) {
	if input.Minute < 0 {
		return nil, &ValidationError{Fields: map[string]string{"minute": "must not be negative"}}
	}
	t, applied, err := s.mutate(ctx, tournamentID, matchID, func(t *models.Tournament, m *models.Match, now time.Time) (bool, error) {
		if !m.Involves(input.TeamID) {
			return false, ErrGoalTeamNotInMatch
		}
		if input.PlayerID != nil {
			team := t.FindTeam(input.TeamID)
			if team == nil || team.FindPlayer(*input.PlayerID) == nil {
				return false, ErrPlayerNotFound
			}
		}
		return recordGoal(m, models.Goal{
			ID:        utils.NewID(),
			TeamID:    input.TeamID,
			PlayerID:  input.PlayerID,
			IsOwnGoal: input.IsOwnGoal,
			Minute:    input.Minute,
		}, now), nil
	})
	if err != nil {
		return nil, err
	}
	if applied {
		s.store.metrics.IncGoalsRecorded()
	}
	return t, nil
}

// RemoveLastGoal does nothing when the match has no goals.
func (s *MatchService) RemoveLastGoal(ctx context.Context, tournamentID, matchID string) (*models.Tournament, error) {
	t, _, err := s.mutate(ctx, tournamentID, matchID, func(_ *models.Tournament, m *models.Match, _ time.Time) (bool, error) {
		return removeLastGoal(m), nil
	})
	return t, err
}

func (s *MatchService) RemoveGoal(ctx context.Context, tournamentID, matchID, goalID string) (*models.Tournament, error) {
	t, _, err := s.mutate(ctx, tournamentID, matchID, func(_ *models.Tournament, m *models.Match, _ time.Time) (bool, error) {
		if !removeGoal(m, goalID) {
			return false, ErrGoalNotFound
		}
		return true, nil
	})
	return t, err
}

// UpdateGoalPlayer sets or clears (nil) the player credited with a goal.
func (s *MatchService) UpdateGoalPlayer(ctx context.Context, tournamentID, matchID, goalID string, playerID *string) (*models.Tournament, error) {
	t, _, err := s.mutate(ctx, tournamentID, matchID, func(t *models.Tournament, m *models.Match, _ time.Time) (bool, error) {
		idx := goalIndex(m, goalID)
		if idx < 0 {
			return false, ErrGoalNotFound
		}
		if playerID != nil {
			team := t.FindTeam(m.Goals[idx].TeamID)
			if team == nil || team.FindPlayer(*playerID) == nil {
				return false, ErrPlayerNotFound
			}
		}
		return updateGoalPlayer(m, goalID, playerID), nil
	})
	return t, err
}

// mutate loads the tournament, applies fn to one match and saves only when fn reports a change.
func (s *MatchService) mutate(
	ctx context.Context,
	tournamentID, matchID string,
	fn func(t *models.Tournament, m *models.Match, now time.Time) (bool, error),
) (*models.Tournament, bool, error) {
	unlock := s.store.lock(tournamentID)
	defer unlock()

	t, err := s.store.load(ctx, tournamentID)
	if err != nil {
		return nil, false, err
	}
	m := t.FindMatch(matchID)
	if m == nil {
		return nil, false, ErrMatchNotFound
	}

	now := s.store.clock.Now().UTC()
	changed, err := fn(t, m, now)
	if err != nil {
		return nil, false, err
	}
	if !changed {
		return s.store.publicView(t), false, nil
	}

	t.UpdatedAt = now
	if err := s.store.save(ctx, t); err != nil {
		return nil, false, err
	}
	return s.store.publicView(t), true, nil
}
