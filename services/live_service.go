package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/Dosada05/youth-cup/brackets"
	"github.com/Dosada05/youth-cup/matchclock"
	"github.com/Dosada05/youth-cup/models"
)

// RoomLister reports the websocket rooms that have viewers.
type RoomLister interface {
	ActiveRooms() []string
}

type ClockTick struct {
	TournamentID string                `json:"tournament_id"`
	At           time.Time             `json:"at"`
	Clocks       []matchclock.Snapshot `json:"clocks"`
}

// LiveService pushes clock snapshots of live matches to every watched tournament on a fixed interval.
type LiveService struct {
	store  *Store
	rooms  RoomLister
	poller *matchclock.Poller
}

func NewLiveService(store *Store, rooms RoomLister, interval time.Duration) *LiveService {
	s := &LiveService{
		store: store,
		rooms: rooms,
	}
	s.poller = matchclock.NewPoller(interval, store.clock, s.Tick)
	return s
}

func (s *LiveService) Start(ctx context.Context) {
	s.poller.Start(ctx)
	s.store.logger.InfoContext(ctx, "clock broadcast started")
}

func (s *LiveService) Stop() {
	s.poller.Stop()
}

// Tick broadcasts one CLOCK_TICK per watched tournament that has a live match.
func (s *LiveService) Tick(ctx context.Context, now time.Time) {
	for _, room := range s.rooms.ActiveRooms() {
		id, ok := brackets.TournamentIDFromRoom(room)
		if !ok {
			continue
		}
		t, err := s.store.fetchPublic(ctx, id)
		if err != nil {
			s.store.logger.DebugContext(ctx, "clock tick skipped",
				slog.String("tournament_id", id), slog.Any("error", err))
			continue
		}

		clocks := liveSnapshots(t.Matches, now)
		if len(clocks) == 0 {
			continue
		}
		s.store.broadcaster.BroadcastToRoom(room, brackets.WebSocketMessage{
			Type:    brackets.MessageClockTick,
			Payload: ClockTick{TournamentID: id, At: now.UTC(), Clocks: clocks},
			RoomID:  room,
		})
		s.store.metrics.IncClockTicks()
	}
}

func liveSnapshots(matches []models.Match, now time.Time) []matchclock.Snapshot {
	var out []matchclock.Snapshot
	for i := range matches {
		if matches[i].Status != models.MatchStatusLive {
			continue
		}
		out = append(out, matchclock.TakeSnapshot(&matches[i], now))
	}
	return out
}
