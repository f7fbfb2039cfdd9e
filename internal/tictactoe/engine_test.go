package tictactoe

import (
	"testing"

	"github.com/rocketscienceinc/tictactoe-session/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-session/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// playMoves applies a sequence of moves, requiring each to succeed.
func playMoves(t *testing.T, moves ...int) *entity.Game {
	t.Helper()

	state := NewGame()
	for _, cell := range moves {
		next, err := ApplyMove(state, cell)
		require.NoError(t, err)
		state = next
	}

	return state
}

func TestNewGame(t *testing.T) {
	// When: creating a new game
	game := NewGame()

	// Then: the board is empty, X moves first, the game is ongoing
	expectedGame := &entity.Game{
		Board:  [9]string{},
		Turn:   entity.PlayerX,
		Status: entity.StatusOngoing,
	}

	require.Equal(t, expectedGame, game)
}

func TestApplyMove(t *testing.T) {
	t.Run("Places mark and flips turn", func(t *testing.T) {
		// Given: a new game
		game := NewGame()

		// When: X plays cell 4
		next, err := ApplyMove(game, 4)

		// Then: the mark is placed, the turn flips and the input is untouched
		require.NoError(t, err)
		assert.Equal(t, entity.PlayerX, next.Board[4])
		assert.Equal(t, entity.PlayerO, next.Turn)
		assert.Equal(t, entity.StatusOngoing, next.Status)
		assert.Equal(t, NewGame(), game)
	})

	t.Run("Turn alternates starting with X and marks equal moves", func(t *testing.T) {
		// Given: a new game
		state := NewGame()
		moves := []int{0, 4, 1, 5, 8}

		// When: applying moves one by one
		for i, cell := range moves {
			expectedMark := entity.PlayerX
			if i%2 == 1 {
				expectedMark = entity.PlayerO
			}
			assert.Equal(t, expectedMark, state.Turn)

			next, err := ApplyMove(state, cell)
			require.NoError(t, err)
			state = next

			// Then: occupied cells match the number of moves applied
			xCount, oCount := state.MarkCounts()
			assert.Equal(t, i+1, xCount+oCount)
		}
	})

	t.Run("Error on cell out of range", func(t *testing.T) {
		// Given: a new game
		game := NewGame()

		// When: playing an out-of-range cell
		next, err := ApplyMove(game, 9)

		// Then: the move is rejected as invalid
		require.ErrorIs(t, err, apperror.ErrInvalidMove)
		require.ErrorIs(t, err, apperror.ErrCellOutOfRange)
		assert.Nil(t, next)

		next, err = ApplyMove(game, -1)
		require.ErrorIs(t, err, apperror.ErrCellOutOfRange)
		assert.Nil(t, next)
	})

	t.Run("Error on occupied cell", func(t *testing.T) {
		// Given: a game where cell 0 is taken
		game := playMoves(t, 0)

		// When: playing cell 0 again
		next, err := ApplyMove(game, 0)

		// Then: the move is rejected and the state is unchanged
		require.ErrorIs(t, err, apperror.ErrInvalidMove)
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
		assert.Nil(t, next)
		assert.Equal(t, entity.PlayerX, game.Board[0])
		assert.Equal(t, entity.PlayerO, game.Turn)
	})

	t.Run("Error on finished game", func(t *testing.T) {
		// Given: a game X already won
		game := playMoves(t, 0, 4, 1, 5, 2)
		require.True(t, game.IsWon())

		// When: playing any free cell
		next, err := ApplyMove(game, 8)

		// Then: the move is rejected as invalid
		require.ErrorIs(t, err, apperror.ErrInvalidMove)
		require.ErrorIs(t, err, apperror.ErrGameFinished)
		assert.Nil(t, next)
	})

	t.Run("X wins the top row", func(t *testing.T) {
		// Given: X takes 0,1,2 while O takes 4,5
		game := playMoves(t, 0, 4, 1, 5, 2)

		// Then: the game is won by X over {0,1,2} and the turn stays with X
		assert.Equal(t, entity.StatusWon, game.Status)
		assert.Equal(t, entity.PlayerX, game.Winner)
		require.NotNil(t, game.WinningLine)
		assert.Equal(t, [3]int{0, 1, 2}, *game.WinningLine)
		assert.Equal(t, entity.PlayerX, game.Turn)
	})

	t.Run("O wins a column", func(t *testing.T) {
		// Given: O takes 1,4,7 while X takes 0,2,6
		game := playMoves(t, 0, 1, 2, 4, 6, 7)

		// Then: the game is won by O over {1,4,7}
		assert.Equal(t, entity.StatusWon, game.Status)
		assert.Equal(t, entity.PlayerO, game.Winner)
		require.NotNil(t, game.WinningLine)
		assert.Equal(t, [3]int{1, 4, 7}, *game.WinningLine)
	})

	t.Run("Winning line cells all hold the winner's mark", func(t *testing.T) {
		// Given: a finished game won on the diagonal
		game := playMoves(t, 0, 1, 4, 2, 8)

		// Then: every cell of the winning line holds the winner's mark
		require.True(t, game.IsWon())
		for _, cell := range *game.WinningLine {
			assert.Equal(t, game.Winner, game.Board[cell])
		}
	})

	t.Run("Draw when the board fills with no winner", func(t *testing.T) {
		// Given: a full board with no completed triple
		game := playMoves(t, 0, 2, 1, 3, 5, 4, 6, 7, 8)

		// Then: the game is a draw with every cell occupied
		assert.Equal(t, entity.StatusDraw, game.Status)
		assert.Empty(t, game.Winner)
		assert.Nil(t, game.WinningLine)

		xCount, oCount := game.MarkCounts()
		assert.Equal(t, 9, xCount+oCount)
	})

	t.Run("Double line by one mark is a single win", func(t *testing.T) {
		// Given: X completes {3,4,5} and {1,4,7} with one move on 4
		game := playMoves(t, 1, 0, 7, 2, 3, 6, 5, 8, 4)

		// Then: X wins and the first canonical triple is reported
		assert.Equal(t, entity.StatusWon, game.Status)
		assert.Equal(t, entity.PlayerX, game.Winner)
		require.NotNil(t, game.WinningLine)
		assert.Equal(t, [3]int{3, 4, 5}, *game.WinningLine)
	})
}

func TestValidate(t *testing.T) {
	t.Run("Accepts a game built from legal moves", func(t *testing.T) {
		// Given: a game mid-play
		game := playMoves(t, 0, 4, 8)

		// Then: validation passes
		require.NoError(t, Validate(game))
	})

	t.Run("Rejects unknown cell values", func(t *testing.T) {
		// Given: a board with a junk cell
		game := NewGame()
		game.Board[3] = "Z"

		// Then: the state is reported corrupt
		require.ErrorIs(t, Validate(game), apperror.ErrCorruptState)
	})

	t.Run("Rejects mark count imbalance", func(t *testing.T) {
		// Given: a board with two extra X marks
		game := NewGame()
		game.Board = [9]string{"X", "X", "X", "", "", "", "", "", "O"}

		// Then: the state is reported corrupt
		require.ErrorIs(t, Validate(game), apperror.ErrCorruptState)
	})

	t.Run("Rejects winning lines for both marks", func(t *testing.T) {
		// Given: a board where X and O both hold completed triples
		game := &entity.Game{
			Board: [9]string{
				"X", "X", "X",
				"O", "O", "O",
				"", "", "",
			},
			Turn:   entity.PlayerX,
			Status: entity.StatusOngoing,
		}

		// Then: the state is reported corrupt, no winner is picked
		require.ErrorIs(t, Validate(game), apperror.ErrCorruptState)
	})

	t.Run("Rejects turn inconsistent with the board", func(t *testing.T) {
		// Given: an ongoing board with equal marks but O to move
		game := &entity.Game{
			Board:  [9]string{"X", "O", "", "", "", "", "", "", ""},
			Turn:   entity.PlayerO,
			Status: entity.StatusOngoing,
		}

		// Then: the state is reported corrupt
		require.ErrorIs(t, Validate(game), apperror.ErrCorruptState)
	})

	t.Run("Corrupt state propagates through ApplyMove", func(t *testing.T) {
		// Given: a board with completed triples for both marks
		game := &entity.Game{
			Board: [9]string{
				"X", "X", "X",
				"O", "O", "O",
				"", "", "",
			},
			Turn:   entity.PlayerX,
			Status: entity.StatusOngoing,
		}

		// When: applying a move on the corrupt board
		next, err := ApplyMove(game, 6)

		// Then: the engine refuses instead of guessing a winner
		require.ErrorIs(t, err, apperror.ErrCorruptState)
		assert.Nil(t, next)
	})
}
