package model

import "encoding/json"

// Inbound event names.
const (
	EventJoinGame            = "join_game"
	EventSendGhost           = "send_ghost"
	EventUpdateGhostPosition = "update_ghost_position"
	EventGhostKilled         = "ghost_killed"
)

// Outbound event names.
const (
	EventWaitingForOpponent   = "waiting_for_opponent"
	EventGameStart            = "game_start"
	EventEnemyGhost           = "enemy_ghost"
	EventEnemyGhostPosition   = "enemy_ghost_position"
	EventScoreUpdate          = "score_update"
	EventGameOver             = "game_over"
	EventOpponentDisconnected = "opponent_disconnected"
	EventError                = "error"
)

// Envelope is the wire framing for every message in both directions.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Inbound payloads. One type per event name; unknown events and payloads
// that fail to decode are rejected at the transport edge.

// JoinGame is a request to enter matchmaking with an identity token.
type JoinGame struct {
	Token string `json:"token"`
}

// SendGhost announces a ghost spawn to be relayed to the opponent.
type SendGhost struct {
	SessionID SessionID `json:"session_id"`
	GhostType string    `json:"ghost_type"`
	GhostID   string    `json:"ghost_id"`
	Position  float64   `json:"position"`
	Lane      int       `json:"lane"`
}

// UpdateGhostPosition moves a previously spawned ghost.
type UpdateGhostPosition struct {
	SessionID SessionID `json:"session_id"`
	GhostID   string    `json:"ghost_id"`
	Position  float64   `json:"position"`
}

// GhostKilled credits a kill to the named identity.
type GhostKilled struct {
	SessionID SessionID `json:"session_id"`
	By        Identity  `json:"by"`
}

// Outbound is implemented by every server-to-client event variant.
type Outbound interface {
	EventName() string
}

// WaitingForOpponent tells a client it occupies the waiting slot.
type WaitingForOpponent struct{}

func (WaitingForOpponent) EventName() string { return EventWaitingForOpponent }

// OpponentInfo is the cross-referenced opponent view inside GameStart.
type OpponentInfo struct {
	Identity    Identity `json:"identity"`
	DisplayName string   `json:"display_name"`
}

// GameStart is sent individually to each member with that member's own
// connection id and the other member's info.
type GameStart struct {
	SessionID       SessionID    `json:"session_id"`
	ConnectionID    ConnectionID `json:"connection_id"`
	Opponent        OpponentInfo `json:"opponent"`
	DurationSeconds int          `json:"duration_seconds"`
}

func (GameStart) EventName() string { return EventGameStart }

// EnemyGhost relays an opponent's ghost spawn unchanged.
type EnemyGhost struct {
	GhostType string       `json:"ghost_type"`
	GhostID   string       `json:"ghost_id"`
	Position  float64      `json:"position"`
	Lane      int          `json:"lane"`
	From      ConnectionID `json:"from"`
}

func (EnemyGhost) EventName() string { return EventEnemyGhost }

// EnemyGhostPosition relays an opponent's ghost movement unchanged.
type EnemyGhostPosition struct {
	GhostID  string  `json:"ghost_id"`
	Position float64 `json:"position"`
}

func (EnemyGhostPosition) EventName() string { return EventEnemyGhostPosition }

// ScoreUpdate broadcasts the session scoreboard after a kill.
type ScoreUpdate struct {
	Scores ScoreBoard `json:"scores"`
}

func (ScoreUpdate) EventName() string { return EventScoreUpdate }

// GameOver carries the final outcome. Winner is nil for a draw.
type GameOver struct {
	Winner *Identity  `json:"winner"`
	Scores ScoreBoard `json:"scores"`
}

func (GameOver) EventName() string { return EventGameOver }

// OpponentDisconnected tells the remaining member its opponent is gone.
type OpponentDisconnected struct{}

func (OpponentDisconnected) EventName() string { return EventOpponentDisconnected }

// ErrorEvent reports a rejected request back to the client that sent it.
type ErrorEvent struct {
	Reason string `json:"reason"`
}

func (ErrorEvent) EventName() string { return EventError }
