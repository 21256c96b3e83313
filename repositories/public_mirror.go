package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Dosada05/youth-cup/models"
	"github.com/redis/go-redis/v9"
)

// PublicMirror is the read-only replica public viewers read from. Records are stored without
// the PIN hash. Readers must tolerate a mirror that lags the admin record.
type PublicMirror interface {
	Publish(ctx context.Context, tournament *models.Tournament) error
	Fetch(ctx context.Context, id string) (*models.Tournament, error)
	Remove(ctx context.Context, id string) error
}

type RedisMirrorConfig struct {
	Addr         string
	Password     string
	DB           int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type redisPublicMirror struct {
	client *redis.Client
	logger *slog.Logger
}

// NewRedisPublicMirror connects and pings Redis before returning.
func NewRedisPublicMirror(ctx context.Context, cfg RedisMirrorConfig, logger *slog.Logger) (PublicMirror, func() error, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("connecting to redis: %w", err)
	}

	return &redisPublicMirror{client: client, logger: logger}, client.Close, nil
}

func publicKey(id string) string {
	return fmt.Sprintf("public:tournament:%s", id)
}

func (m *redisPublicMirror) Publish(ctx context.Context, tournament *models.Tournament) error {
	data, err := json.Marshal(tournament.Public())
	if err != nil {
		return fmt.Errorf("encoding public record: %w", err)
	}
	if err := m.client.Set(ctx, publicKey(tournament.ID), data, 0).Err(); err != nil {
		return fmt.Errorf("publishing tournament %s: %w", tournament.ID, err)
	}
	m.logger.Debug("public mirror updated", slog.String("tournament_id", tournament.ID))
	return nil
}

func (m *redisPublicMirror) Fetch(ctx context.Context, id string) (*models.Tournament, error) {
	data, err := m.client.Get(ctx, publicKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("fetching tournament %s: %w", id, err)
	}
	return decodeTournament(data)
}

func (m *redisPublicMirror) Remove(ctx context.Context, id string) error {
	if err := m.client.Del(ctx, publicKey(id)).Err(); err != nil {
		return fmt.Errorf("removing tournament %s: %w", id, err)
	}
	return nil
}

type memoryPublicMirror struct {
	mu          sync.RWMutex
	tournaments map[string]*models.Tournament
}

func NewMemoryPublicMirror() PublicMirror {
	return &memoryPublicMirror{tournaments: make(map[string]*models.Tournament)}
}

func (m *memoryPublicMirror) Publish(_ context.Context, tournament *models.Tournament) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tournaments[tournament.ID] = tournament.Public()
	return nil
}

func (m *memoryPublicMirror) Fetch(_ context.Context, id string) (*models.Tournament, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.tournaments[id]
	if !ok {
		return nil, ErrTournamentNotFound
	}
	return t.Clone(), nil
}

func (m *memoryPublicMirror) Remove(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tournaments, id)
	return nil
}
