package reversi

import "fmt"

// IsLegalMove reports whether player may place a disc at (row, col).
func IsLegalMove(board *Board, mode Mode, row, col int, player PlayerID) bool {
	return checkMove(board, mode, row, col, player) == nil
}

// LegalMoves lists every legal move for player in row-major order.
func LegalMoves(board *Board, mode Mode, player PlayerID) []Position {
	moves := []Position{}
	for row := 0; row < board.Size; row++ {
		for col := 0; col < board.Size; col++ {
			if board.Cells[row][col] == Empty && IsLegalMove(board, mode, row, col, player) {
				moves = append(moves, Position{Row: row, Col: col})
			}
		}
	}
	return moves
}

func hasLegalMove(board *Board, mode Mode, player PlayerID) bool {
	for row := 0; row < board.Size; row++ {
		for col := 0; col < board.Size; col++ {
			if board.Cells[row][col] == Empty && IsLegalMove(board, mode, row, col, player) {
				return true
			}
		}
	}
	return false
}

// checkMove returns nil for a legal move, otherwise ErrIllegalMove wrapped
// with the reason.
func checkMove(board *Board, mode Mode, row, col int, player PlayerID) error {
	if !board.InBounds(row, col) {
		return &MoveError{Row: row, Col: col, Reason: ErrOutOfBounds}
	}

	if board.Cells[row][col] != Empty {
		return &MoveError{Row: row, Col: col, Reason: ErrCellOccupied}
	}

	if len(board.ResolveCaptures(mode, row, col, player)) == 0 {
		return &MoveError{Row: row, Col: col, Reason: ErrNoCaptures}
	}

	return nil
}

// MoveError describes a rejected move. It matches both ErrIllegalMove and
// its Reason under errors.Is.
type MoveError struct {
	Row    int
	Col    int
	Reason error
}

func (that *MoveError) Error() string {
	return fmt.Sprintf("%s at (%d, %d): %s", ErrIllegalMove, that.Row, that.Col, that.Reason)
}

func (that *MoveError) Unwrap() []error {
	return []error{ErrIllegalMove, that.Reason}
}
