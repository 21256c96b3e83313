package brackets

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoomID(t *testing.T) {
	room := RoomID("abc")
	assert.Equal(t, "tournament_abc", room)

	id, ok := TournamentIDFromRoom(room)
	assert.True(t, ok)
	assert.Equal(t, "abc", id)

	_, ok = TournamentIDFromRoom("lobby")
	assert.False(t, ok)
	_, ok = TournamentIDFromRoom("tournament_")
	assert.False(t, ok)
}

func TestHubBroadcastToRoom(t *testing.T) {
	hub := NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
	counts := make(chan int, 4)
	hub.OnClientsChanged(func(n int) { counts <- n })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	watcher := &Client{Hub: hub, Send: make(chan []byte, 1), Room: RoomID("t1")}
	other := &Client{Hub: hub, Send: make(chan []byte, 1), Room: RoomID("t2")}
	require.True(t, hub.Join(watcher))
	require.True(t, hub.Join(other))
	assert.Equal(t, 1, <-counts)
	assert.Equal(t, 2, <-counts)
	assert.ElementsMatch(t, []string{RoomID("t1"), RoomID("t2")}, hub.ActiveRooms())

	hub.BroadcastToRoom(RoomID("t1"), WebSocketMessage{Type: MessageTournamentUpdated, Payload: "x"})

	select {
	case raw := <-watcher.Send:
		var msg WebSocketMessage
		require.NoError(t, json.Unmarshal(raw, &msg))
		assert.Equal(t, MessageTournamentUpdated, msg.Type)
	case <-time.After(time.Second):
		t.Fatal("watcher did not receive the message")
	}
	assert.Empty(t, other.Send)

	// A full buffer drops the message instead of blocking.
	hub.BroadcastToRoom(RoomID("t1"), WebSocketMessage{Type: MessageClockTick})
	hub.BroadcastToRoom(RoomID("t1"), WebSocketMessage{Type: MessageClockTick})
	assert.Len(t, watcher.Send, 1)

	hub.Leave(other)
	assert.Equal(t, 1, <-counts)
	assert.Equal(t, []string{RoomID("t1")}, hub.ActiveRooms())

	cancel()
	assert.Eventually(t, func() bool {
		watcher.Mu.Lock()
		defer watcher.Mu.Unlock()
		return watcher.IsClosed
	}, time.Second, 10*time.Millisecond)
	assert.False(t, hub.Join(&Client{Hub: hub, Send: make(chan []byte), Room: "late"}))
}

func TestHubSendToSkipsClosedClient(t *testing.T) {
	hub := NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
	client := &Client{Hub: hub, Send: make(chan []byte, 1), Room: RoomID("t1")}

	hub.SendTo(client, WebSocketMessage{Type: MessageTournamentUpdated})
	require.Len(t, client.Send, 1)

	<-client.Send
	client.close()
	assert.NotPanics(t, func() {
		hub.SendTo(client, WebSocketMessage{Type: MessageTournamentUpdated})
	})
}

func TestHubJoinIsVisibleToNextBroadcast(t *testing.T) {
	hub := NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	for i := 0; i < 50; i++ {
		client := &Client{Hub: hub, Send: make(chan []byte, 1), Room: RoomID("t1")}
		require.True(t, hub.Join(client))
		hub.BroadcastToRoom(RoomID("t1"), WebSocketMessage{Type: MessageTournamentUpdated})
		require.Len(t, client.Send, 1, "join %d", i)
		hub.Leave(client)
	}
}
