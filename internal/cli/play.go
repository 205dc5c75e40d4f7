package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"
)

func newPlayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Join the matchmaking queue and play a match",
		Long: `Connect to the websocket endpoint, join matchmaking with the saved
identity token, and print game events as they arrive.

Events include:
  - waiting_for_opponent: Queued, waiting for a second player
  - game_start: Matched with an opponent
  - enemy_ghost / enemy_ghost_position: Opponent ghost activity
  - score_update: A ghost was killed
  - game_over: Match finished
  - opponent_disconnected: Opponent left the match

Press Ctrl+C to disconnect.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.Token == "" {
				return errors.New("no identity token; run 'ghostduel register' first")
			}
			return play()
		},
	}
}

// wsEnvelope mirrors the server's wire format
type wsEnvelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

func play() error {
	out := NewOutput(cfg.Output)

	conn, _, err := websocket.DefaultDialer.Dial(client.WebsocketURL(), nil)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer func() { _ = conn.Close() }()

	// Handle interrupt with a clean close
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		_ = conn.Close()
	}()

	joinData, err := json.Marshal(map[string]string{"token": cfg.Token})
	if err != nil {
		return err
	}
	if err := conn.WriteJSON(wsEnvelope{Event: "join_game", Data: joinData}); err != nil {
		return fmt.Errorf("failed to join: %w", err)
	}

	for {
		var envelope wsEnvelope
		if err := conn.ReadJSON(&envelope); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return fmt.Errorf("connection lost: %w", err)
		}

		done, err := printEvent(out, envelope)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

// printEvent renders one event; it reports whether the match is over
func printEvent(out *Output, envelope wsEnvelope) (bool, error) {
	switch envelope.Event {
	case "waiting_for_opponent":
		out.PrintMessage("Waiting for an opponent...")
	case "game_start":
		var start GameStart
		if err := json.Unmarshal(envelope.Data, &start); err != nil {
			return false, err
		}
		out.Print(start)
	case "score_update":
		var update ScoreUpdate
		if err := json.Unmarshal(envelope.Data, &update); err != nil {
			return false, err
		}
		out.Print(update)
	case "game_over":
		var over GameOver
		if err := json.Unmarshal(envelope.Data, &over); err != nil {
			return false, err
		}
		out.Print(over)
		return true, nil
	case "opponent_disconnected":
		out.PrintMessage("Opponent disconnected")
		return true, nil
	case "error":
		var errEvent struct {
			Reason string `json:"reason"`
		}
		if err := json.Unmarshal(envelope.Data, &errEvent); err != nil {
			return false, err
		}
		return false, errors.New(errEvent.Reason)
	default:
		// Ghost traffic and anything new: raw event line
		fmt.Printf("[%s] %s\n", envelope.Event, string(envelope.Data))
	}
	return false, nil
}
