package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/Dosada05/youth-cup/brackets"
	"github.com/Dosada05/youth-cup/services"
	"github.com/gorilla/websocket"
)

const clientSendBuffer = 256

var errHubStopped = errors.New("websocket hub stopped")

type WebSocketHandler struct {
	hub               *brackets.Hub
	tournamentService *services.TournamentService
	upgrader          websocket.Upgrader
}

// NewWebSocketHandler accepts connections from any origin when allowedOrigins is empty or contains "*".
func NewWebSocketHandler(hub *brackets.Hub, ts *services.TournamentService, allowedOrigins []string) *WebSocketHandler {
	return &WebSocketHandler{
		hub:               hub,
		tournamentService: ts,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		if o == "*" {
			return func(*http.Request) bool { return true }
		}
		set[o] = struct{}{}
	}
	if len(set) == 0 {
		return func(*http.Request) bool { return true }
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := set[origin]
		return ok
	}
}

// ServeWs handles GET /ws/tournaments/{tournamentID}. The first frame carries the current public
// record; later frames are TOURNAMENT_UPDATED, TOURNAMENT_DELETED and CLOCK_TICK messages.
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := urlParam(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if _, err := h.tournamentService.Standings(r.Context(), tournamentID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied to the client.
		slog.WarnContext(r.Context(), "websocket upgrade failed",
			slog.String("tournament_id", tournamentID), slog.Any("error", err))
		return
	}

	roomID := brackets.RoomID(tournamentID)
	client := &brackets.Client{
		Hub:  h.hub,
		Conn: conn,
		Send: make(chan []byte, clientSendBuffer),
		Room: roomID,
	}

	// Joining and queueing the snapshot happen under the tournament's write lock, so the first
	// frame is never older than a broadcast the client receives after it.
	err = h.tournamentService.WatchPublic(r.Context(), tournamentID, func(view *services.PublicTournamentView) error {
		if !h.hub.Join(client) {
			return errHubStopped
		}
		h.hub.SendTo(client, brackets.WebSocketMessage{
			Type:    brackets.MessageTournamentUpdated,
			Payload: view.Tournament,
			RoomID:  roomID,
		})
		return nil
	})
	if err != nil {
		slog.DebugContext(r.Context(), "websocket subscription failed",
			slog.String("tournament_id", tournamentID), slog.Any("error", err))
		if !errors.Is(err, errHubStopped) {
			h.hub.Leave(client)
		}
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "tournament unavailable"),
			time.Now().Add(time.Second))
		conn.Close()
		return
	}

	go client.WritePump()
	go client.ReadPump()
	slog.DebugContext(r.Context(), "websocket client joined", slog.String("room", roomID))
}
