package reversi

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// boardFrom builds a board from rows of '.', '1', '2' and '3'.
func boardFrom(t *testing.T, rows ...string) *Board {
	t.Helper()

	board := emptyBoard(len(rows))
	for row, line := range rows {
		require.Len(t, line, len(rows), "row %d is not square", row)
		for col, char := range line {
			switch char {
			case '.':
				board.Cells[row][col] = Empty
			case '1', '2', '3':
				board.Cells[row][col] = PlayerID(char - '0')
			default:
				t.Fatalf("unexpected cell %q at (%d, %d)", char, row, col)
			}
		}
	}

	return board
}

// gameFrom builds an active game around a prepared board, the same way
// NewGame finishes its setup.
func gameFrom(t *testing.T, mode Mode, rows ...string) *Game {
	t.Helper()

	game := &Game{
		Board:  boardFrom(t, rows...),
		Mode:   mode,
		Scores: newScores(mode),
		Active: true,
	}
	game.recomputeScores()
	game.selectPlayer(Player1)

	return game
}
