package reversi

// Board is a square grid of cell owners, indexed [row][col].
type Board struct {
	Size  int          `json:"size"`
	Cells [][]PlayerID `json:"cells"`
}

// NewBoard returns a board with the centre seeded for the mode.
func NewBoard(size int, mode Mode) *Board {
	board := emptyBoard(size)
	c := size / 2

	if mode == TwoPlayer {
		board.Cells[c-1][c-1] = Player2
		board.Cells[c-1][c] = Player1
		board.Cells[c][c-1] = Player1
		board.Cells[c][c] = Player2
		return board
	}

	board.Cells[c-1][c-1] = Player1
	board.Cells[c-1][c] = Player2
	board.Cells[c][c-1] = Player3
	// boards below 8 start with three discs only
	if size >= 8 {
		board.Cells[c][c] = Player1
	}

	return board
}

func emptyBoard(size int) *Board {
	cells := make([][]PlayerID, size)
	for row := range cells {
		cells[row] = make([]PlayerID, size)
	}
	return &Board{Size: size, Cells: cells}
}

func (that *Board) InBounds(row, col int) bool {
	return row >= 0 && row < that.Size && col >= 0 && col < that.Size
}

// At returns the owner of the cell; out of bounds cells read as Empty.
func (that *Board) At(row, col int) PlayerID {
	if !that.InBounds(row, col) {
		return Empty
	}
	return that.Cells[row][col]
}

func (that *Board) set(pos Position, player PlayerID) {
	that.Cells[pos.Row][pos.Col] = player
}

func (that *Board) EmptyCount() int {
	count := 0
	for _, row := range that.Cells {
		for _, cell := range row {
			if cell == Empty {
				count++
			}
		}
	}
	return count
}

// Clone creates a deep copy of the board.
func (that *Board) Clone() *Board {
	board := emptyBoard(that.Size)
	for row := range that.Cells {
		copy(board.Cells[row], that.Cells[row])
	}
	return board
}
