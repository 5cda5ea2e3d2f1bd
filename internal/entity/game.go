package entity

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/reversi-backend/internal/apperror"
	"github.com/rocketscienceinc/reversi-backend/internal/reversi"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"
	StatusWaiting  = "waiting"
)

var ErrUnknownGameStatus = errors.New("unknown game status")

type Game struct {
	ID      string           `json:"id"`
	Status  string           `json:"status"`
	Size    int              `json:"size"`
	Mode    reversi.Mode     `json:"players_count"`
	Players []*Player        `json:"players,omitempty"`
	State   *reversi.Game    `json:"state"`
	Outcome *reversi.Outcome `json:"outcome,omitempty"`
}

func NewGame(id string, size int, mode reversi.Mode) (*Game, error) {
	state, err := reversi.NewGame(size, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to set up board: %w", err)
	}

	return &Game{
		ID:     id,
		Status: StatusWaiting,
		Size:   size,
		Mode:   mode,
		State:  state,
	}, nil
}

// MakeTurn applies a move for the given seat.
func (that *Game) MakeTurn(seat reversi.PlayerID, row, col int) error {
	if err := that.ConfirmOngoingState(); err != nil {
		return err
	}

	if that.State.CurrentPlayer != seat {
		return apperror.ErrNotYourTurn
	}

	err := that.State.ApplyMove(row, col)

	// the engine may end a stalled game while rejecting the move
	that.UpdateGameState()

	if err != nil {
		return fmt.Errorf("seat %d: %w", seat, err)
	}

	return nil
}

// UpdateGameState marks the game finished and records the outcome once the
// board has no move left.
func (that *Game) UpdateGameState() {
	if that.State.IsActive() {
		return
	}

	outcome, err := that.State.Outcome()
	if err != nil {
		return
	}

	that.Status = StatusFinished
	that.Outcome = &outcome
}

// Join seats the player on the next free seat. The game starts once every
// seat is taken.
func (that *Game) Join(player *Player) error {
	if !that.IsWaiting() {
		return apperror.ErrGameIsFull
	}

	seat := that.NextSeat()
	if seat == reversi.Empty {
		return apperror.ErrGameIsFull
	}

	player.GameID = that.ID
	player.Seat = seat
	that.Players = append(that.Players, player)

	if that.IsFull() {
		that.Status = StatusOngoing
	}

	return nil
}

// NextSeat returns the first free seat, or reversi.Empty when none is left.
func (that *Game) NextSeat() reversi.PlayerID {
	for _, seat := range that.Mode.Players() {
		if that.PlayerBySeat(seat) == nil {
			return seat
		}
	}
	return reversi.Empty
}

func (that *Game) PlayerBySeat(seat reversi.PlayerID) *Player {
	for _, player := range that.Players {
		if player.Seat == seat {
			return player
		}
	}
	return nil
}

func (that *Game) PlayerByID(id string) *Player {
	for _, player := range that.Players {
		if player.ID == id {
			return player
		}
	}
	return nil
}

func (that *Game) IsFull() bool {
	return len(that.Players) >= int(that.Mode)
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) IsWaiting() bool {
	return that.Status == StatusWaiting
}

func (that *Game) ConfirmOngoingState() error {
	switch {
	case that.IsWaiting():
		return apperror.ErrGameIsNotStarted
	case that.IsFinished():
		return apperror.ErrGameFinished
	case that.IsOngoing():
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownGameStatus, that.Status)
	}
}
