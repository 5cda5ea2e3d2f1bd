package reversi

import (
	"errors"
	"fmt"
)

// PlayerID is the owner of a cell. Empty marks an unoccupied cell.
type PlayerID int

const (
	Empty PlayerID = iota
	Player1
	Player2
	Player3
)

// Mode is the number of seated players; it also selects the seed layout and
// the capture rule.
type Mode int

const (
	TwoPlayer   Mode = 2
	ThreePlayer Mode = 3
)

const (
	MinBoardSize = 4
	MaxBoardSize = 26
)

var (
	ErrInvalidConfig = errors.New("invalid game configuration")
	ErrIllegalMove   = errors.New("illegal move")
	ErrOutOfBounds   = errors.New("cell is out of bounds")
	ErrCellOccupied  = errors.New("cell is already occupied")
	ErrNoCaptures    = errors.New("move captures nothing")
)

// Position is a board coordinate.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (that Mode) Valid() bool {
	return that == TwoPlayer || that == ThreePlayer
}

// Players returns the seats of the mode in turn order.
func (that Mode) Players() []PlayerID {
	players := make([]PlayerID, 0, int(that))
	for id := Player1; id <= PlayerID(that); id++ {
		players = append(players, id)
	}
	return players
}

// next returns the seat after p in round-robin order.
func (that Mode) next(p PlayerID) PlayerID {
	return p%PlayerID(that) + 1
}

// ValidateConfig reports whether a board of the given size can host a game
// in the given mode.
func ValidateConfig(size int, mode Mode) error {
	switch {
	case !mode.Valid():
		return fmt.Errorf("%w: players must be 2 or 3, got %d", ErrInvalidConfig, int(mode))
	case size%2 != 0:
		return fmt.Errorf("%w: board size %d is odd", ErrInvalidConfig, size)
	case size < MinBoardSize || size > MaxBoardSize:
		return fmt.Errorf("%w: board size %d is outside [%d, %d]", ErrInvalidConfig, size, MinBoardSize, MaxBoardSize)
	}
	return nil
}
