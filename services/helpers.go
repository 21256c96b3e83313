package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Dosada05/youth-cup/brackets"
	"github.com/Dosada05/youth-cup/matchclock"
	"github.com/Dosada05/youth-cup/metrics"
	"github.com/Dosada05/youth-cup/models"
	"github.com/Dosada05/youth-cup/repositories"
	"github.com/Dosada05/youth-cup/storage"
	"golang.org/x/text/language"
)

// Broadcaster pushes messages to the websocket room of a tournament.
type Broadcaster interface {
	BroadcastToRoom(roomID string, message interface{})
}

type noopBroadcaster struct{}

func (noopBroadcaster) BroadcastToRoom(string, interface{}) {}

// Store is the persistence path shared by all services: it loads records, saves the full record
// together with its public mirror and notifies viewers. Services built on the same Store
// serialize their writes per tournament.
type Store struct {
	repo        repositories.TournamentRepository
	mirror      repositories.PublicMirror
	broadcaster Broadcaster
	uploader    storage.FileUploader
	metrics     metrics.Metrics
	logger      *slog.Logger
	clock       matchclock.Clock
	locale      language.Tag
	locks       sync.Map
}

func NewStore(d Dependencies) *Store {
	s := &Store{
		repo:        d.Repo,
		mirror:      d.Mirror,
		broadcaster: d.Broadcaster,
		uploader:    d.Uploader,
		metrics:     d.metrics(),
		logger:      d.Logger,
		clock:       d.clock(),
		locale:      d.standingsLocale(),
	}
	if s.mirror == nil {
		s.mirror = repositories.NewMemoryPublicMirror()
	}
	if s.broadcaster == nil {
		s.broadcaster = noopBroadcaster{}
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// lock serializes writers of one tournament inside this process.
func (s *Store) lock(id string) func() {
	v, _ := s.locks.LoadOrStore(id, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

func (s *Store) load(ctx context.Context, id string) (*models.Tournament, error) {
	t, err := s.repo.Load(ctx, id)
	if err != nil {
		return nil, handleRepositoryError(err, "tournament", id)
	}
	return t, nil
}

// save writes the record and then the public mirror. The mirror is only published once the
// record is stored; a mirror failure is logged and does not fail the write.
func (s *Store) save(ctx context.Context, t *models.Tournament) error {
	started := time.Now()
	err := s.repo.Save(ctx, t)
	s.metrics.ObservePersistDuration(time.Since(started).Seconds())
	if err != nil {
		return handleRepositoryError(err, "tournament", t.ID)
	}

	if err := s.mirror.Publish(ctx, t); err != nil {
		s.logger.WarnContext(ctx, "failed to publish public mirror",
			slog.String("tournament_id", t.ID), slog.Any("error", err))
		// Drop the stale copy so public reads fall back to the stored record.
		if rmErr := s.mirror.Remove(ctx, t.ID); rmErr != nil && !errors.Is(rmErr, repositories.ErrTournamentNotFound) {
			s.logger.WarnContext(ctx, "failed to drop stale public mirror",
				slog.String("tournament_id", t.ID), slog.Any("error", rmErr))
		}
	}

	s.broadcaster.BroadcastToRoom(brackets.RoomID(t.ID), brackets.WebSocketMessage{
		Type:    brackets.MessageTournamentUpdated,
		Payload: s.publicView(t),
		RoomID:  brackets.RoomID(t.ID),
	})
	return nil
}

// fetchPublic reads the public mirror and falls back to the repository.
func (s *Store) fetchPublic(ctx context.Context, id string) (*models.Tournament, error) {
	t, err := s.mirror.Fetch(ctx, id)
	if err == nil {
		populateLogoURLs(t, s.uploader)
		return t, nil
	}
	if !errors.Is(err, repositories.ErrTournamentNotFound) {
		s.logger.WarnContext(ctx, "public mirror read failed, falling back to repository",
			slog.String("tournament_id", id), slog.Any("error", err))
	}
	t, err = s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.publicView(t), nil
}

func (s *Store) remove(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return handleRepositoryError(err, "tournament", id)
	}
	if err := s.mirror.Remove(ctx, id); err != nil {
		s.logger.WarnContext(ctx, "failed to remove public mirror",
			slog.String("tournament_id", id), slog.Any("error", err))
	}
	s.broadcaster.BroadcastToRoom(brackets.RoomID(id), brackets.WebSocketMessage{
		Type:    brackets.MessageTournamentDeleted,
		Payload: map[string]string{"id": id},
		RoomID:  brackets.RoomID(id),
	})
	return nil
}

// publicView strips the PIN hash and fills logo URLs.
func (s *Store) publicView(t *models.Tournament) *models.Tournament {
	p := t.Public()
	populateLogoURLs(p, s.uploader)
	return p
}

func populateLogoURLs(t *models.Tournament, uploader storage.FileUploader) {
	if t == nil || uploader == nil {
		return
	}
	for i := range t.Teams {
		team := &t.Teams[i]
		if team.LogoKey == nil || *team.LogoKey == "" {
			continue
		}
		if url := uploader.GetPublicURL(*team.LogoKey); url != "" {
			team.LogoURL = &url
		}
	}
}

func handleRepositoryError(err error, entity, id string) error {
	if errors.Is(err, repositories.ErrTournamentNotFound) {
		return ErrTournamentNotFound
	}
	if errors.Is(err, repositories.ErrTournamentInvalidRecord) {
		return fmt.Errorf("%w: %s %s: %w", ErrValidationFailed, entity, id, err)
	}
	return fmt.Errorf("%s %s: %w", entity, id, err)
}

// GetExtensionFromContentType maps an image content type to a file extension.
func GetExtensionFromContentType(contentType string) (string, error) {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return ".jpg", nil
	case "image/png":
		return ".png", nil
	case "image/gif":
		return ".gif", nil
	case "image/webp":
		return ".webp", nil
	case "image/svg+xml":
		return ".svg", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLogoType, contentType)
	}
}
