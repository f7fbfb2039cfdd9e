package entity

import "time"

// HistoryEntry is one record per completed game. Winner holds the winning
// mark, or PlayerTie for a draw. Immutable once appended.
type HistoryEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Winner    string    `json:"winner"`
}

func (that *HistoryEntry) IsDraw() bool {
	return that.Winner == PlayerTie
}

// Stats is the running tally over the history log.
type Stats struct {
	WinsX int `json:"wins_x"`
	WinsO int `json:"wins_o"`
	Draws int `json:"draws"`
}

func (that *Stats) Total() int {
	return that.WinsX + that.WinsO + that.Draws
}

// Session owns one active game plus the append-only outcome log and the
// tally derived from it. It spans multiple games within one play period.
type Session struct {
	ID      string         `json:"id"`
	Game    *Game          `json:"game"`
	History []HistoryEntry `json:"history,omitempty"`
	Stats   Stats          `json:"stats"`
}
