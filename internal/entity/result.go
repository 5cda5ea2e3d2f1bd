package entity

import (
	"errors"
	"time"

	"github.com/rocketscienceinc/reversi-backend/internal/reversi"
)

var ErrGameNotFinished = errors.New("game has no outcome yet")

// Result is the archived final position of a finished game.
type Result struct {
	GameID     string             `json:"game_id"`
	Size       int                `json:"size"`
	Mode       reversi.Mode       `json:"players_count"`
	Board      *reversi.Board     `json:"board"`
	Scores     reversi.Scores     `json:"scores"`
	Winners    []reversi.PlayerID `json:"winners"`
	PlayerIDs  []string           `json:"player_ids"`
	FinishedAt time.Time          `json:"finished_at"`
}

func NewResult(game *Game, finishedAt time.Time) (*Result, error) {
	if game.Outcome == nil {
		return nil, ErrGameNotFinished
	}

	playerIDs := make([]string, len(game.Players))
	for i, player := range game.Players {
		playerIDs[i] = player.ID
	}

	return &Result{
		GameID:     game.ID,
		Size:       game.Size,
		Mode:       game.Mode,
		Board:      game.State.Board.Clone(),
		Scores:     game.Outcome.Scores,
		Winners:    game.Outcome.Winners,
		PlayerIDs:  playerIDs,
		FinishedAt: finishedAt,
	}, nil
}

func (that *Result) IsTie() bool {
	return len(that.Winners) > 1
}
