package reversi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/reversi-backend/internal/apperror"
)

func TestNewGame(t *testing.T) {
	t.Run("Two player opening", func(t *testing.T) {
		// When: a 2-player game of size 8 is created
		game, err := NewGame(8, TwoPlayer)
		require.NoError(t, err)

		// Then: Player1 opens with four moves and two discs each
		assert.True(t, game.IsActive())
		assert.Equal(t, Player1, game.CurrentPlayer)
		assert.Equal(t, Scores{Player1: 2, Player2: 2}, game.Score())
		assert.Len(t, game.LegalMoves(), 4)
	})

	t.Run("Three player opening", func(t *testing.T) {
		// When: a 3-player game of size 8 is created
		game, err := NewGame(8, ThreePlayer)
		require.NoError(t, err)

		// Then: the fourth seed disc belongs to Player1
		assert.Equal(t, Scores{Player1: 2, Player2: 1, Player3: 1}, game.Score())
		assert.Equal(t, Player1, game.CurrentPlayer)
		assert.Equal(t, 4, game.Score().Total())
	})

	t.Run("Three player small board opening", func(t *testing.T) {
		// When: a 3-player game of size 6 is created
		game, err := NewGame(6, ThreePlayer)
		require.NoError(t, err)

		// Then: every seat starts with one disc
		assert.Equal(t, Scores{Player1: 1, Player2: 1, Player3: 1}, game.Score())
		assert.NotEmpty(t, game.LegalMoves())
	})

	t.Run("Rejects invalid configurations", func(t *testing.T) {
		configs := []struct {
			size int
			mode Mode
		}{
			{size: 7, mode: TwoPlayer},
			{size: 2, mode: TwoPlayer},
			{size: 0, mode: ThreePlayer},
			{size: 28, mode: TwoPlayer},
			{size: 8, mode: Mode(1)},
			{size: 8, mode: Mode(4)},
		}

		for _, cfg := range configs {
			game, err := NewGame(cfg.size, cfg.mode)
			require.ErrorIs(t, err, ErrInvalidConfig, "size %d mode %d", cfg.size, cfg.mode)
			assert.Nil(t, game)
		}
	})
}

func TestGame_ApplyMove(t *testing.T) {
	t.Run("Single flip passes the turn", func(t *testing.T) {
		// Given: a fresh 2-player game
		game, err := NewGame(8, TwoPlayer)
		require.NoError(t, err)

		// When: Player1 plays the move that flips exactly one disc
		err = game.ApplyMove(2, 3)
		require.NoError(t, err)

		// Then: one disc was placed, one flipped and Player2 is on turn
		assert.Equal(t, Player1, game.Board.At(2, 3))
		assert.Equal(t, Player1, game.Board.At(3, 3))
		assert.Equal(t, Scores{Player1: 4, Player2: 1}, game.Score())
		assert.Equal(t, 5, game.Score().Total())
		assert.Equal(t, Player2, game.CurrentPlayer)
		assert.True(t, game.IsActive())
		assert.Equal(t, LegalMoves(game.Board, TwoPlayer, Player2), game.LegalMoves())
	})

	t.Run("Illegal move leaves the game unchanged", func(t *testing.T) {
		// Given: a fresh 2-player game
		game, err := NewGame(8, TwoPlayer)
		require.NoError(t, err)
		before := game.Clone()

		// When: Player1 tries an occupied cell, a cell without captures and an off-board cell
		occupied := game.ApplyMove(3, 3)
		noCaptures := game.ApplyMove(0, 0)
		offBoard := game.ApplyMove(-1, 9)

		// Then: every attempt is rejected and nothing changed
		require.ErrorIs(t, occupied, ErrCellOccupied)
		require.ErrorIs(t, noCaptures, ErrNoCaptures)
		require.ErrorIs(t, offBoard, ErrOutOfBounds)
		require.ErrorIs(t, offBoard, ErrIllegalMove)
		require.Equal(t, before, game)
	})

	t.Run("Player without moves is skipped", func(t *testing.T) {
		// Given: a board where Player2 will have nothing to capture
		game := gameFrom(t, TwoPlayer,
			".21.",
			"....",
			"..2.",
			"...1",
		)
		require.Equal(t, Player1, game.CurrentPlayer)

		// When: Player1 plays
		require.NoError(t, game.ApplyMove(0, 0))

		// Then: Player2 is skipped and Player1 moves again
		assert.True(t, game.IsActive())
		assert.Equal(t, Player1, game.CurrentPlayer)
		assert.Equal(t, []Position{{1, 1}}, game.LegalMoves())
	})

	t.Run("Three players rotate and skip in order", func(t *testing.T) {
		// Given: a fresh 3-player game
		game, err := NewGame(8, ThreePlayer)
		require.NoError(t, err)

		// When: Player1 captures Player2's only disc
		require.NoError(t, game.ApplyMove(2, 4))

		// Then: Player2 has no disc left and Player3 is on turn
		assert.Equal(t, Scores{Player1: 4, Player2: 0, Player3: 1}, game.Score())
		assert.Equal(t, Player3, game.CurrentPlayer)
		assert.Contains(t, game.LegalMoves(), Position{Row: 2, Col: 3})
	})

	t.Run("Game ends when nobody can move", func(t *testing.T) {
		// Given: a board where Player1 captures Player2's last disc
		game := gameFrom(t, TwoPlayer,
			".21.",
			"....",
			"....",
			"....",
		)

		// When: Player1 plays
		require.NoError(t, game.ApplyMove(0, 0))

		// Then: the game is over with empty cells left
		assert.False(t, game.IsActive())
		assert.Empty(t, game.LegalMoves())
		assert.Equal(t, 13, game.Board.EmptyCount())

		outcome, err := game.Outcome()
		require.NoError(t, err)
		assert.Equal(t, Player1, outcome.Winner())
	})

	t.Run("Move after the end is rejected", func(t *testing.T) {
		// Given: a finished game
		game := gameFrom(t, TwoPlayer, ".21.", "....", "....", "....")
		require.NoError(t, game.ApplyMove(0, 0))

		// When: another move is attempted
		err := game.ApplyMove(1, 1)

		// Then: ErrGameFinished is returned
		require.ErrorIs(t, err, apperror.ErrGameFinished)
	})

	t.Run("Stalled board ends without changes", func(t *testing.T) {
		// Given: an active game in which no seat has a legal move
		game := &Game{
			Board:         boardFrom(t, "1...", "....", "....", "...2"),
			Mode:          TwoPlayer,
			CurrentPlayer: Player1,
			Scores:        Scores{Player1: 1, Player2: 1},
			ValidMoves:    []Position{},
			Active:        true,
		}
		board := game.Board.Clone()

		// When: any move is attempted
		err := game.ApplyMove(0, 1)

		// Then: the game ends and neither board nor scores change
		require.ErrorIs(t, err, apperror.ErrGameFinished)
		assert.False(t, game.IsActive())
		assert.Equal(t, board, game.Board)
		assert.Equal(t, Scores{Player1: 1, Player2: 1}, game.Score())
	})
}

func TestGame_FullBoard(t *testing.T) {
	t.Run("Filling the board ends in a tie", func(t *testing.T) {
		// Given: a board with a single empty cell
		game := gameFrom(t, TwoPlayer,
			"1112",
			"1122",
			"1222",
			"222.",
		)

		// When: Player1 fills it
		require.NoError(t, game.ApplyMove(3, 3))

		// Then: the game ends level
		assert.False(t, game.IsActive())
		assert.Equal(t, Scores{Player1: 8, Player2: 8}, game.Score())

		outcome, err := game.Outcome()
		require.NoError(t, err)
		assert.True(t, outcome.IsTie())
		assert.Equal(t, []PlayerID{Player1, Player2}, outcome.Winners)
		assert.Equal(t, Empty, outcome.Winner())
	})

	t.Run("Filling the board declares a single winner", func(t *testing.T) {
		// Given: a board with a single empty cell
		game := gameFrom(t, TwoPlayer,
			"1111",
			"1122",
			"1222",
			"222.",
		)

		// When: Player1 fills it
		require.NoError(t, game.ApplyMove(3, 3))

		// Then: Player1 wins
		assert.False(t, game.IsActive())
		assert.Equal(t, Scores{Player1: 11, Player2: 5}, game.Score())

		outcome, err := game.Outcome()
		require.NoError(t, err)
		assert.False(t, outcome.IsTie())
		assert.Equal(t, Player1, outcome.Winner())
	})
}

// TestGame_Invariants plays whole games choosing the first legal move and
// checks the rules after every step.
func TestGame_Invariants(t *testing.T) {
	configs := []struct {
		name string
		size int
		mode Mode
	}{
		{name: "two players on 8", size: 8, mode: TwoPlayer},
		{name: "two players on 6", size: 6, mode: TwoPlayer},
		{name: "three players on 8", size: 8, mode: ThreePlayer},
		{name: "three players on 6", size: 6, mode: ThreePlayer},
		{name: "three players on 10", size: 10, mode: ThreePlayer},
	}

	for _, cfg := range configs {
		t.Run(cfg.name, func(t *testing.T) {
			game, err := NewGame(cfg.size, cfg.mode)
			require.NoError(t, err)

			for turn := 0; game.IsActive(); turn++ {
				require.Less(t, turn, cfg.size*cfg.size, "game did not terminate")

				assertLegalityMatchesCaptures(t, game)

				moves := game.LegalMoves()
				require.NotEmpty(t, moves)
				move := moves[0]
				mover := game.CurrentPlayer

				assertRunsAreCapturable(t, game, move, mover)

				before := game.Score().Total()
				require.NoError(t, game.ApplyMove(move.Row, move.Col))
				require.Equal(t, before+1, game.Score().Total(), "turn %d", turn)
				require.Equal(t, cfg.size*cfg.size-game.Board.EmptyCount(), game.Score().Total())
			}

			_, err = game.Outcome()
			require.NoError(t, err)
		})
	}
}

func assertLegalityMatchesCaptures(t *testing.T, game *Game) {
	t.Helper()

	for _, player := range game.Mode.Players() {
		for row := 0; row < game.Board.Size; row++ {
			for col := 0; col < game.Board.Size; col++ {
				expected := game.Board.At(row, col) == Empty &&
					len(game.Board.ResolveCaptures(game.Mode, row, col, player)) > 0
				require.Equal(t, expected, IsLegalMove(game.Board, game.Mode, row, col, player),
					"player %d at (%d, %d)", player, row, col)
			}
		}
	}
}

func assertRunsAreCapturable(t *testing.T, game *Game, move Position, mover PlayerID) {
	t.Helper()

	for _, dir := range Directions {
		run := game.Board.captureRun(game.Mode, move.Row, move.Col, dir, mover)
		if len(run) == 0 {
			continue
		}

		color := game.Board.At(run[0].Row, run[0].Col)
		for _, pos := range run {
			cell := game.Board.At(pos.Row, pos.Col)
			require.NotEqual(t, Empty, cell)
			require.NotEqual(t, mover, cell)
			if game.Mode == ThreePlayer {
				require.Equal(t, color, cell, "mixed run at %v", pos)
			}
		}
	}
}
