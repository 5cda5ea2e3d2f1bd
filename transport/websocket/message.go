package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/reversi-backend/internal/entity"
	"github.com/rocketscienceinc/reversi-backend/internal/reversi"
)

const (
	actionConnect  = "connect"
	actionGameNew  = "game:new"
	actionGameJoin = "game:join"
	actionGameTurn = "game:turn"
	actionMoves    = "game:moves"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type Payload struct {
	Player *entity.Player `json:"player,omitempty"`
	Game   *entity.Game   `json:"game,omitempty"`

	Size    int  `json:"size,omitempty"`
	Players int  `json:"players,omitempty"`
	Row     *int `json:"row,omitempty"`
	Col     *int `json:"col,omitempty"`

	Moves []reversi.Position `json:"moves,omitempty"`
	Error string             `json:"error,omitempty"`
}
