package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-session/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-session/internal/entity"
)

// NewGame - creates a fresh game: empty board, X to move.
func NewGame() *entity.Game {
	return &entity.Game{
		Board:  [9]string{},
		Turn:   entity.PlayerX,
		Status: entity.StatusOngoing,
	}
}

// ApplyMove - places the current turn's mark at cell and returns the
// resulting state. The input state is never mutated: on any error the
// caller keeps exactly what it had.
func ApplyMove(state *entity.Game, cell int) (*entity.Game, error) {
	if err := Validate(state); err != nil {
		return nil, err
	}

	if state.IsFinished() {
		return nil, apperror.ErrGameFinished
	}

	if cell < 0 || cell >= len(state.Board) {
		return nil, fmt.Errorf("%w: cell %d", apperror.ErrCellOutOfRange, cell)
	}

	if state.Board[cell] != entity.EmptyCell {
		return nil, fmt.Errorf("%w: cell %d", apperror.ErrCellOccupied, cell)
	}

	next := *state
	next.Board[cell] = state.Turn

	line, winner, err := winningLine(next.Board)
	if err != nil {
		return nil, err
	}

	switch {
	case winner != entity.EmptyCell:
		next.Status = entity.StatusWon
		next.Winner = winner
		next.WinningLine = &line
	case boardFull(next.Board):
		next.Status = entity.StatusDraw
		next.Turn = entity.EmptyCell
	default:
		next.Turn = entity.ToggleMark(state.Turn)
	}

	return &next, nil
}

// Validate - rejects states that cannot arise from legal play. Boards built
// outside the engine (e.g. a malformed stored snapshot) surface here as
// ErrCorruptState instead of producing a silently wrong result.
func Validate(state *entity.Game) error {
	for i, cellValue := range state.Board {
		if cellValue != entity.EmptyCell && cellValue != entity.PlayerX && cellValue != entity.PlayerO {
			return fmt.Errorf("%w: cell %d holds %q", apperror.ErrCorruptState, i, cellValue)
		}
	}

	xCount, oCount := state.MarkCounts()
	if diff := xCount - oCount; diff < 0 || diff > 1 {
		return fmt.Errorf("%w: %d X marks vs %d O marks", apperror.ErrCorruptState, xCount, oCount)
	}

	if _, _, err := winningLine(state.Board); err != nil {
		return err
	}

	if state.IsOngoing() {
		if state.Turn != entity.PlayerX && state.Turn != entity.PlayerO {
			return fmt.Errorf("%w: unknown turn %q", apperror.ErrCorruptState, state.Turn)
		}

		// X moves first, so the mark counts pin whose turn it is.
		if (xCount == oCount) != (state.Turn == entity.PlayerX) {
			return fmt.Errorf("%w: turn %s does not match board", apperror.ErrCorruptState, state.Turn)
		}
	}

	return nil
}

// winningLine - returns the first completed triple in canonical order and
// its mark. A single move can legally complete two lines of the same mark;
// completed lines for both marks cannot arise from play and are corrupt.
func winningLine(board [9]string) ([3]int, string, error) {
	var line [3]int
	winner := entity.EmptyCell

	for _, combo := range entity.WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a == entity.EmptyCell || a != b || b != c {
			continue
		}

		if winner == entity.EmptyCell {
			line = combo
			winner = a
			continue
		}

		if winner != a {
			return [3]int{}, "", fmt.Errorf("%w: winning lines for both %s and %s", apperror.ErrCorruptState, winner, a)
		}
	}

	return line, winner, nil
}

func boardFull(board [9]string) bool {
	for _, cell := range board {
		if cell == entity.EmptyCell {
			return false
		}
	}

	return true
}
