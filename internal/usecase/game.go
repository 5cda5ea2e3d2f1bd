package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/reversi-backend/internal/apperror"
	"github.com/rocketscienceinc/reversi-backend/internal/entity"
	"github.com/rocketscienceinc/reversi-backend/internal/reversi"
)

type GameUseCase interface {
	GetOrCreatePlayer(ctx context.Context, playerID string) (*entity.Player, error)

	CreateGame(ctx context.Context, playerID string, size, players int) (*entity.Game, error)
	JoinGame(ctx context.Context, gameID, playerID string) (*entity.Game, error)
	GetGame(ctx context.Context, gameID string) (*entity.Game, error)

	MakeTurn(ctx context.Context, playerID string, row, col int) (*entity.Game, error)
	LegalMoves(ctx context.Context, playerID string) ([]reversi.Position, error)

	GetResult(ctx context.Context, gameID string) (*entity.Result, error)
}

type playerService interface {
	CreatePlayer(ctx context.Context) (*entity.Player, error)
	GetPlayerByID(ctx context.Context, id string) (*entity.Player, error)
}

type gameService interface {
	GetGameByID(ctx context.Context, id string) (*entity.Game, error)
}

type gamePlayService interface {
	CreateGame(ctx context.Context, player *entity.Player, size int, mode reversi.Mode) (*entity.Game, error)
	JoinGameByID(ctx context.Context, gameID, playerID string) (*entity.Game, error)
	MakeTurn(ctx context.Context, playerID string, row, col int) (*entity.Game, error)
	LegalMoves(ctx context.Context, playerID string) ([]reversi.Position, error)
}

type resultRepo interface {
	GetByID(ctx context.Context, gameID string) (*entity.Result, error)
}

// ErrArchiveDisabled is returned by GetResult when no result archive is configured.
var ErrArchiveDisabled = errors.New("result archive is disabled")

// Defaults fill in the board size and player count a request leaves out.
type Defaults struct {
	Size    int
	Players int
}

type gameUseCase struct {
	playerService   playerService
	gameService     gameService
	gamePlayService gamePlayService
	results         resultRepo

	defaults Defaults
}

func NewGameUseCase(
	playerService playerService,
	gameService gameService,
	gamePlayService gamePlayService,
	results resultRepo,
	defaults Defaults,
) GameUseCase {
	return &gameUseCase{
		playerService:   playerService,
		gameService:     gameService,
		gamePlayService: gamePlayService,
		results:         results,
		defaults:        defaults,
	}
}

func (that *gameUseCase) GetOrCreatePlayer(ctx context.Context, playerID string) (*entity.Player, error) {
	if playerID == "" {
		player, err := that.playerService.CreatePlayer(ctx)
		if err != nil {
			return nil, fmt.Errorf("could not create player: %w", err)
		}

		return player, nil
	}

	player, err := that.playerService.GetPlayerByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	return player, nil
}

// CreateGame opens a game for the player, or returns the one they are
// already seated in. Zero size or players fall back to the defaults.
func (that *gameUseCase) CreateGame(ctx context.Context, playerID string, size, players int) (*entity.Game, error) {
	if size == 0 {
		size = that.defaults.Size
	}
	if players == 0 {
		players = that.defaults.Players
	}

	mode := reversi.Mode(players)
	if err := reversi.ValidateConfig(size, mode); err != nil {
		return nil, err
	}

	player, err := that.playerService.GetPlayerByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	game, err := that.gamePlayService.CreateGame(ctx, player, size, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	return game, nil
}

func (that *gameUseCase) JoinGame(ctx context.Context, gameID, playerID string) (*entity.Game, error) {
	game, err := that.gamePlayService.JoinGameByID(ctx, gameID, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to game: %w", err)
	}

	return game, nil
}

func (that *gameUseCase) GetGame(ctx context.Context, gameID string) (*entity.Game, error) {
	game, err := that.gameService.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

// MakeTurn plays a move. A move that ends the game returns the final game
// together with apperror.ErrGameFinished; the game is already archived and
// removed by then.
func (that *gameUseCase) MakeTurn(ctx context.Context, playerID string, row, col int) (*entity.Game, error) {
	game, err := that.gamePlayService.MakeTurn(ctx, playerID, row, col)
	if err != nil && (game == nil || !game.IsFinished()) {
		return game, fmt.Errorf("failed to make turn: %w", err)
	}

	if game.IsFinished() {
		return game, apperror.ErrGameFinished
	}

	return game, nil
}

func (that *gameUseCase) LegalMoves(ctx context.Context, playerID string) ([]reversi.Position, error) {
	moves, err := that.gamePlayService.LegalMoves(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list moves: %w", err)
	}

	return moves, nil
}

func (that *gameUseCase) GetResult(ctx context.Context, gameID string) (*entity.Result, error) {
	if that.results == nil {
		return nil, ErrArchiveDisabled
	}

	result, err := that.results.GetByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get result: %w", err)
	}

	return result, nil
}
