package session

import (
	"fmt"
	"time"

	"github.com/rocketscienceinc/tictactoe-session/internal/entity"
	"github.com/rocketscienceinc/tictactoe-session/internal/tictactoe"
)

// New - creates a session with a fresh game, empty history and zero stats.
func New(id string) *entity.Session {
	return &entity.Session{
		ID:   id,
		Game: tictactoe.NewGame(),
	}
}

// SubmitMove - applies a move to the active game. When the move finishes
// the game, the outcome is appended to the history and the matching counter
// is bumped in the same step, so the tally can never drift from the log.
// On error the session is left untouched.
func SubmitMove(sess *entity.Session, cell int) error {
	next, err := tictactoe.ApplyMove(sess.Game, cell)
	if err != nil {
		return fmt.Errorf("failed to apply move: %w", err)
	}

	sess.Game = next

	if next.IsFinished() {
		recordOutcome(sess, next)
	}

	return nil
}

// StartNewGame - replaces the active game; history and stats are untouched.
func StartNewGame(sess *entity.Session) {
	sess.Game = tictactoe.NewGame()
}

// ResetStats - clears the history and zeroes the tally. The active game,
// finished or not, is untouched.
func ResetStats(sess *entity.Session) {
	sess.History = nil
	sess.Stats = entity.Stats{}
}

// StatsFromHistory - re-derives the tally from the log.
func StatsFromHistory(history []entity.HistoryEntry) entity.Stats {
	var stats entity.Stats

	for _, record := range history {
		switch record.Winner {
		case entity.PlayerX:
			stats.WinsX++
		case entity.PlayerO:
			stats.WinsO++
		case entity.PlayerTie:
			stats.Draws++
		}
	}

	return stats
}

func recordOutcome(sess *entity.Session, finished *entity.Game) {
	winner := finished.Winner
	if finished.IsDraw() {
		winner = entity.PlayerTie
	}

	sess.History = append(sess.History, entity.HistoryEntry{
		Timestamp: time.Now().UTC(),
		Winner:    winner,
	})

	switch winner {
	case entity.PlayerX:
		sess.Stats.WinsX++
	case entity.PlayerO:
		sess.Stats.WinsO++
	case entity.PlayerTie:
		sess.Stats.Draws++
	}
}
