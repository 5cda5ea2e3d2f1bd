package reversi

import (
	"fmt"

	"github.com/rocketscienceinc/reversi-backend/internal/apperror"
)

// Game is the mutable state of one match. Only ApplyMove mutates it.
type Game struct {
	Board         *Board     `json:"board"`
	Mode          Mode       `json:"mode"`
	CurrentPlayer PlayerID   `json:"current_player"`
	Scores        Scores     `json:"scores"`
	ValidMoves    []Position `json:"valid_moves"`
	Active        bool       `json:"active"`
}

// NewGame seeds a board of the given size and hands the first turn to
// Player1, or to the first seat after it that can move.
func NewGame(size int, mode Mode) (*Game, error) {
	if err := ValidateConfig(size, mode); err != nil {
		return nil, err
	}

	game := &Game{
		Board:  NewBoard(size, mode),
		Mode:   mode,
		Scores: newScores(mode),
		Active: true,
	}

	game.recomputeScores()
	game.selectPlayer(Player1)

	return game, nil
}

// ApplyMove places a disc for the current player, flips the captured runs and
// passes the turn. A rejected move leaves the game untouched.
func (that *Game) ApplyMove(row, col int) error {
	if !that.Active {
		return apperror.ErrGameFinished
	}

	if err := checkMove(that.Board, that.Mode, row, col, that.CurrentPlayer); err != nil {
		if !that.anyPlayerCanMove() {
			that.end()
			return fmt.Errorf("%w: no player can move", apperror.ErrGameFinished)
		}
		return err
	}

	captures := that.Board.ResolveCaptures(that.Mode, row, col, that.CurrentPlayer)

	that.Board.set(Position{Row: row, Col: col}, that.CurrentPlayer)
	for _, pos := range captures {
		that.Board.set(pos, that.CurrentPlayer)
	}

	that.recomputeScores()
	that.selectPlayer(that.Mode.next(that.CurrentPlayer))

	if that.Board.EmptyCount() == 0 {
		that.end()
	}

	return nil
}

// selectPlayer probes up to one full round starting at first and hands the
// turn to the first seat with a legal move. The game ends when none has one.
func (that *Game) selectPlayer(first PlayerID) {
	candidate := first
	for i := 0; i < int(that.Mode); i++ {
		moves := LegalMoves(that.Board, that.Mode, candidate)
		if len(moves) > 0 {
			that.CurrentPlayer = candidate
			that.ValidMoves = moves
			return
		}
		candidate = that.Mode.next(candidate)
	}

	that.end()
}

func (that *Game) anyPlayerCanMove() bool {
	for _, player := range that.Mode.Players() {
		if hasLegalMove(that.Board, that.Mode, player) {
			return true
		}
	}
	return false
}

func (that *Game) end() {
	that.Active = false
	that.ValidMoves = []Position{}
}

func (that *Game) IsActive() bool {
	return that.Active
}

// LegalMoves returns a copy of the cached moves of the current player.
func (that *Game) LegalMoves() []Position {
	moves := make([]Position, len(that.ValidMoves))
	copy(moves, that.ValidMoves)
	return moves
}

// Score returns a copy of the per-seat disc counts.
func (that *Game) Score() Scores {
	scores := make(Scores, len(that.Scores))
	for player, count := range that.Scores {
		scores[player] = count
	}
	return scores
}

// Clone creates a deep copy of the game.
func (that *Game) Clone() *Game {
	clone := *that
	clone.Board = that.Board.Clone()
	clone.Scores = that.Score()
	clone.ValidMoves = that.LegalMoves()
	return &clone
}
