package entity

import "github.com/rocketscienceinc/reversi-backend/internal/reversi"

type Player struct {
	ID     string           `json:"id"`
	Seat   reversi.PlayerID `json:"seat,omitempty"`
	GameID string           `json:"game_id,omitempty"`
}

func (that *Player) InGame() bool {
	return that.GameID != ""
}

// Leave frees the player's seat.
func (that *Player) Leave() {
	that.GameID = ""
	that.Seat = reversi.Empty
}
