package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Profile:
		o.printProfile(v)
	case HealthResult:
		o.printHealthResult(v)
	case GameStart:
		o.printGameStart(v)
	case ScoreUpdate:
		o.printScores("Scores", v.Scores)
	case GameOver:
		o.printGameOver(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Profile response type (matches API)
type Profile struct {
	Identity    string `json:"identity"`
	DisplayName string `json:"display_name"`
	Token       string `json:"token"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

// OpponentInfo is the opponent half of a game_start event
type OpponentInfo struct {
	Identity    string `json:"identity"`
	DisplayName string `json:"display_name"`
}

// GameStart event payload
type GameStart struct {
	SessionID       string       `json:"session_id"`
	ConnectionID    string       `json:"connection_id"`
	Opponent        OpponentInfo `json:"opponent"`
	DurationSeconds int          `json:"duration_seconds"`
}

// ScoreUpdate event payload
type ScoreUpdate struct {
	Scores map[string]int `json:"scores"`
}

// GameOver event payload
type GameOver struct {
	Winner *string        `json:"winner"`
	Scores map[string]int `json:"scores"`
}

func (o *Output) printProfile(p Profile) {
	fmt.Printf("Profile: %s (%s)\n", p.DisplayName, p.Identity)
	fmt.Printf("Token: %s\n", p.Token)
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}

func (o *Output) printGameStart(g GameStart) {
	fmt.Printf("Game started: %s\n", g.SessionID)
	fmt.Printf("Opponent: %s (%s)\n", g.Opponent.DisplayName, g.Opponent.Identity)
	fmt.Printf("Duration: %ds\n", g.DurationSeconds)
}

func (o *Output) printScores(label string, scores map[string]int) {
	fmt.Printf("%s:\n", label)
	ids := make([]string, 0, len(scores))
	for id := range scores {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		fmt.Printf("  %s: %d\n", id, scores[id])
	}
}

func (o *Output) printGameOver(g GameOver) {
	fmt.Println("Game over!")
	if g.Winner != nil {
		fmt.Printf("Winner: %s\n", *g.Winner)
	} else {
		fmt.Println("Draw")
	}
	o.printScores("Final scores", g.Scores)
}
