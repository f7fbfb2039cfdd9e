package apperror

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidMove covers every rejected move; the session stays unchanged.
	ErrInvalidMove = errors.New("invalid move")

	// ErrCorruptState signals a structurally impossible board. It is a
	// programming-defect signal, not a user-recoverable condition.
	ErrCorruptState = errors.New("corrupt game state")

	ErrSessionNotFound = errors.New("session not found")
)

var (
	ErrCellOutOfRange = fmt.Errorf("%w: cell index out of range", ErrInvalidMove)
	ErrCellOccupied   = fmt.Errorf("%w: cell is already occupied", ErrInvalidMove)
	ErrGameFinished   = fmt.Errorf("%w: game is already finished", ErrInvalidMove)
)
