package entity

const (
	StatusOngoing = "ongoing"
	StatusWon     = "won"
	StatusDraw    = "draw"

	PlayerX   = "X"
	PlayerO   = "O"
	PlayerTie = "-"

	EmptyCell = ""
)

// WinCombos lists the 8 winning triples in canonical order:
// 3 rows, 3 columns, 2 diagonals.
var WinCombos = [][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Game represents the state of a single game: the board, current turn and
// terminal status. Board cells are row-major, indexed 0..8.
type Game struct {
	Board       [9]string `json:"board"`
	Turn        string    `json:"turn,omitempty"`
	Status      string    `json:"status"`
	Winner      string    `json:"winner,omitempty"`
	WinningLine *[3]int   `json:"winning_line,omitempty"`
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) IsWon() bool {
	return that.Status == StatusWon
}

func (that *Game) IsDraw() bool {
	return that.Status == StatusDraw
}

// IsFinished reports whether the game reached a terminal status.
func (that *Game) IsFinished() bool {
	return that.IsWon() || that.IsDraw()
}

// MarkCounts returns the number of X and O marks on the board.
func (that *Game) MarkCounts() (int, int) {
	var xCount, oCount int

	for _, cell := range that.Board {
		switch cell {
		case PlayerX:
			xCount++
		case PlayerO:
			oCount++
		}
	}

	return xCount, oCount
}

func ToggleMark(mark string) string {
	if mark == PlayerX {
		return PlayerO
	}
	return PlayerX
}
