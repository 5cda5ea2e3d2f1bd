package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/reversi-backend/internal/apperror"
	"github.com/rocketscienceinc/reversi-backend/internal/entity"
)

func (that *Server) handleConnect(ctx context.Context, msg *Message, c *client) error {
	log := that.logger.With("method", "handleConnect")

	payloadReq, err := decodePayload(msg)
	if err != nil {
		return err
	}

	var playerID string
	if payloadReq.Player != nil {
		playerID = payloadReq.Player.ID
	}

	player, err := that.gameUseCase.GetOrCreatePlayer(ctx, playerID)
	if err != nil {
		log.Error("failed to create or get player", "error", err)
		return c.send(msg.Action, Payload{Error: "failed to create a new player"})
	}

	that.register(player.ID, c)

	payloadResp := Payload{Player: player}

	if player.InGame() {
		game, err := that.gameUseCase.GetGame(ctx, player.GameID)
		if err != nil {
			log.Warn("failed to get current game", "gameID", player.GameID, "error", err)
		} else {
			payloadResp.Game = game
		}
	}

	if err = c.send(msg.Action, payloadResp); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	log.Info("successfully connected player", "playerID", player.ID)

	return nil
}

func (that *Server) handleNewGame(ctx context.Context, msg *Message, c *client) error {
	log := that.logger.With("method", "handleNewGame")

	payloadReq, err := that.decodeWithPlayer(msg, c)
	if payloadReq == nil {
		return err
	}

	game, err := that.gameUseCase.CreateGame(ctx, payloadReq.Player.ID, payloadReq.Size, payloadReq.Players)
	if err != nil {
		log.Error("failed to create game", "error", err)
		return c.send(msg.Action, Payload{Error: err.Error()})
	}

	that.broadcast(msg.Action, game)

	log.Info("game created", "gameID", game.ID)

	return nil
}

func (that *Server) handleJoinGame(ctx context.Context, msg *Message, c *client) error {
	log := that.logger.With("method", "handleJoinGame")

	payloadReq, err := that.decodeWithPlayer(msg, c)
	if payloadReq == nil {
		return err
	}

	if payloadReq.Game == nil || payloadReq.Game.ID == "" {
		return c.send(msg.Action, Payload{Error: "Game is required"})
	}

	log = log.With("playerID", payloadReq.Player.ID, "gameID", payloadReq.Game.ID)

	game, err := that.gameUseCase.JoinGame(ctx, payloadReq.Game.ID, payloadReq.Player.ID)
	if err != nil {
		log.Error("failed to join game", "error", err)
		return c.send(msg.Action, Payload{Error: fmt.Sprintf("game %s: %v", payloadReq.Game.ID, err)})
	}

	that.broadcast(msg.Action, game)

	log.Info("Player joined game")

	return nil
}

func (that *Server) handleGameTurn(ctx context.Context, msg *Message, c *client) error {
	log := that.logger.With("method", "handleGameTurn")

	payloadReq, err := that.decodeWithPlayer(msg, c)
	if payloadReq == nil {
		return err
	}

	if payloadReq.Row == nil || payloadReq.Col == nil {
		return c.send(msg.Action, Payload{Error: "row and col are required"})
	}

	log = log.With("playerID", payloadReq.Player.ID)

	game, err := that.gameUseCase.MakeTurn(ctx, payloadReq.Player.ID, *payloadReq.Row, *payloadReq.Col)
	if errors.Is(err, apperror.ErrGameFinished) && game != nil {
		that.broadcast(msg.Action, game)
		log.Info("Game finished", "gameID", game.ID)
		return nil
	}

	if err != nil {
		log.Info("turn rejected", "error", err)
		return c.send(msg.Action, Payload{Error: err.Error(), Game: game})
	}

	that.broadcast(msg.Action, game)

	log.Info("Player made a turn", "gameID", game.ID)

	return nil
}

func (that *Server) handleMoves(ctx context.Context, msg *Message, c *client) error {
	payloadReq, err := that.decodeWithPlayer(msg, c)
	if payloadReq == nil {
		return err
	}

	moves, err := that.gameUseCase.LegalMoves(ctx, payloadReq.Player.ID)
	if err != nil {
		return c.send(msg.Action, Payload{Error: err.Error()})
	}

	return c.send(msg.Action, Payload{Player: payloadReq.Player, Moves: moves})
}

// decodeWithPlayer parses the payload and checks the sender is the player bound
// by connect. A nil payload with nil error means the client was already told
// what is wrong.
func (that *Server) decodeWithPlayer(msg *Message, c *client) (*Payload, error) {
	payloadReq, err := decodePayload(msg)
	if err != nil {
		return nil, err
	}

	if c.playerID == "" {
		return nil, c.send(msg.Action, Payload{Error: "connect first"})
	}

	if payloadReq.Player == nil || payloadReq.Player.ID == "" {
		return nil, c.send(msg.Action, Payload{Error: "Player is required"})
	}

	if payloadReq.Player.ID != c.playerID {
		that.logger.Warn("player does not match connection",
			"action", msg.Action, "playerID", payloadReq.Player.ID, "bound", c.playerID)
		return nil, c.send(msg.Action, Payload{Error: "player does not match connection"})
	}

	return &payloadReq, nil
}

func decodePayload(msg *Message) (Payload, error) {
	var payload Payload
	if len(msg.Payload) == 0 {
		return payload, nil
	}

	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return payload, fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	return payload, nil
}

// broadcast sends the game to every seated player with an open connection.
func (that *Server) broadcast(action string, game *entity.Game) {
	log := that.logger.With("method", "broadcast", "gameID", game.ID)

	for _, player := range game.Players {
		conn, ok := that.connection(player.ID)
		if !ok {
			log.Warn("connection not found for player", "playerID", player.ID)
			continue
		}

		if err := conn.send(action, Payload{Player: player, Game: game}); err != nil {
			log.Error("failed to send game update", "playerID", player.ID, "error", err)
		}
	}
}
