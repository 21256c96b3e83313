package repositories

import (
	"context"
	"sort"
	"sync"

	"github.com/Dosada05/youth-cup/models"
)

// memoryTournamentRepository keeps deep copies so callers never share memory with the store.
type memoryTournamentRepository struct {
	mu          sync.RWMutex
	tournaments map[string]*models.Tournament
}

func NewMemoryTournamentRepository() TournamentRepository {
	return &memoryTournamentRepository{tournaments: make(map[string]*models.Tournament)}
}

func (r *memoryTournamentRepository) Load(_ context.Context, id string) (*models.Tournament, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tournaments[id]
	if !ok {
		return nil, ErrTournamentNotFound
	}
	return t.Clone(), nil
}

func (r *memoryTournamentRepository) Save(_ context.Context, tournament *models.Tournament) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tournaments[tournament.ID] = tournament.Clone()
	return nil
}

func (r *memoryTournamentRepository) List(_ context.Context) ([]models.TournamentSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]*models.Tournament, 0, len(r.tournaments))
	for _, t := range r.tournaments {
		all = append(all, t)
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID < all[j].ID
	})
	summaries := make([]models.TournamentSummary, 0, len(all))
	for _, t := range all {
		summaries = append(summaries, t.Summary())
	}
	return summaries, nil
}

func (r *memoryTournamentRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tournaments[id]; !ok {
		return ErrTournamentNotFound
	}
	delete(r.tournaments, id)
	return nil
}
