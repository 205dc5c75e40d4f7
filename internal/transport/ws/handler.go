package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/ghostduel/server/internal/dependencies/random"
	"github.com/ghostduel/server/internal/model"
	"github.com/ghostduel/server/internal/services/arena"
)

const (
	// ConnIDLength is the length of generated connection ids
	ConnIDLength = 12
	// ConnIDAlphabet is the characters used in connection ids
	ConnIDAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
)

// Handler upgrades HTTP requests to websocket connections and dispatches
// inbound events into the arena coordinator.
type Handler struct {
	coordinator *arena.Coordinator
	random      random.Random
	logger      *slog.Logger
	upgrader    websocket.Upgrader
}

// NewHandler creates a new websocket handler. An empty allowedOrigins list
// accepts any origin, which matches the open-CORS posture of the game
// clients this serves.
func NewHandler(coordinator *arena.Coordinator, rnd random.Random, allowedOrigins []string, logger *slog.Logger) *Handler {
	h := &Handler{
		coordinator: coordinator,
		random:      rnd,
		logger:      logger.With(slog.String("component", "ws")),
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if allowed == "*" || strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
	return h
}

// ServeHTTP upgrades the connection and runs its pumps. The request returns
// when the client disconnects.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", slog.Any("error", err))
		return
	}

	id := model.ConnectionID("c_" + h.random.String(ConnIDLength, ConnIDAlphabet))
	client := newClient(id, conn, h.logger)

	h.logger.Info("client connected", slog.String("conn_id", string(id)))

	go client.writePump()
	client.readPump(h)
}

// dispatch decodes one inbound envelope and hands it to the coordinator.
// Malformed payloads are answered or dropped at this edge so decode errors
// never propagate into matchmaking logic.
func (h *Handler) dispatch(c *Client, raw []byte) {
	var envelope model.Envelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		c.Send(model.ErrorEvent{Reason: "malformed message"})
		return
	}

	switch envelope.Event {
	case model.EventJoinGame:
		var ev model.JoinGame
		if err := json.Unmarshal(envelope.Data, &ev); err != nil || ev.Token == "" {
			c.Send(model.ErrorEvent{Reason: "malformed join_game"})
			return
		}
		h.coordinator.Join(context.Background(), c, ev.Token)

	case model.EventSendGhost:
		var ev model.SendGhost
		if err := json.Unmarshal(envelope.Data, &ev); err != nil || ev.SessionID == "" {
			h.logger.Debug("malformed send_ghost dropped", slog.String("conn_id", string(c.id)))
			return
		}
		h.coordinator.RouteGhostSpawn(c, ev)

	case model.EventUpdateGhostPosition:
		var ev model.UpdateGhostPosition
		if err := json.Unmarshal(envelope.Data, &ev); err != nil || ev.SessionID == "" {
			h.logger.Debug("malformed update_ghost_position dropped", slog.String("conn_id", string(c.id)))
			return
		}
		h.coordinator.RouteGhostPosition(c, ev)

	case model.EventGhostKilled:
		var ev model.GhostKilled
		if err := json.Unmarshal(envelope.Data, &ev); err != nil || ev.SessionID == "" || ev.By == "" {
			h.logger.Debug("malformed ghost_killed dropped", slog.String("conn_id", string(c.id)))
			return
		}
		h.coordinator.RecordKill(c, ev)

	default:
		h.logger.Debug("unknown event dropped",
			slog.String("conn_id", string(c.id)),
			slog.String("event", envelope.Event))
	}
}
