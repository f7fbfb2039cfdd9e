package websocket

import (
	"encoding/json"
	"time"

	"github.com/rocketscienceinc/tictactoe-session/internal/entity"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type SessionPayload struct {
	Session struct {
		ID string `json:"id"`
	} `json:"session"`
}

type TurnPayload struct {
	Session struct {
		ID string `json:"id"`
	} `json:"session"`
	Cell int `json:"cell"`
}

// Game represents the state of the game, including the board, current turn
// and status. WinningLine is present only for a won game.
type Game struct {
	Board       [9]string `json:"board"`
	Turn        string    `json:"turn,omitempty"`
	Status      string    `json:"status"`
	Winner      string    `json:"winner,omitempty"`
	WinningLine *[3]int   `json:"winning_line,omitempty"`
}

type HistoryEntry struct {
	Timestamp string `json:"timestamp"`
	Winner    string `json:"winner"`
}

type Stats struct {
	WinsX int `json:"wins_x"`
	WinsO int `json:"wins_o"`
	Draws int `json:"draws"`
}

type Session struct {
	ID      string         `json:"id"`
	Game    *Game          `json:"game"`
	History []HistoryEntry `json:"history,omitempty"`
	Stats   Stats          `json:"stats"`
}

type ResponsePayload struct {
	Session *Session `json:"session,omitempty"`
	Error   string   `json:"error,omitempty"`
}

// newSessionPayload - maps a session snapshot onto the wire model. The UI
// re-reads this after every operation instead of receiving deltas.
func newSessionPayload(sess *entity.Session) ResponsePayload {
	wireSession := &Session{
		ID: sess.ID,
		Game: &Game{
			Board:       sess.Game.Board,
			Turn:        sess.Game.Turn,
			Status:      sess.Game.Status,
			Winner:      sess.Game.Winner,
			WinningLine: sess.Game.WinningLine,
		},
		Stats: Stats{
			WinsX: sess.Stats.WinsX,
			WinsO: sess.Stats.WinsO,
			Draws: sess.Stats.Draws,
		},
	}

	for _, record := range sess.History {
		wireSession.History = append(wireSession.History, HistoryEntry{
			Timestamp: record.Timestamp.Format(time.RFC3339),
			Winner:    record.Winner,
		})
	}

	return ResponsePayload{Session: wireSession}
}
