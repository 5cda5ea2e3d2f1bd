package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/reversi-backend/internal/apperror"
	"github.com/rocketscienceinc/reversi-backend/internal/entity"
	"github.com/rocketscienceinc/reversi-backend/internal/reversi"
)

type GamePlayService interface {
	CreateGame(ctx context.Context, player *entity.Player, size int, mode reversi.Mode) (*entity.Game, error)
	JoinGameByID(ctx context.Context, gameID, playerID string) (*entity.Game, error)

	MakeTurn(ctx context.Context, playerID string, row, col int) (*entity.Game, error)
	LegalMoves(ctx context.Context, playerID string) ([]reversi.Position, error)
}

type resultRepo interface {
	Save(ctx context.Context, result *entity.Result) error
}

type gamePlayService struct {
	logger *slog.Logger

	playerService PlayerService
	gameService   GameService
	results       resultRepo

	locks *gameLocks
	now   func() time.Time
}

// NewGamePlayService wires the gameplay rules to storage. results may be nil,
// in which case finished games are not archived.
func NewGamePlayService(logger *slog.Logger, playerService PlayerService, gameService GameService, results resultRepo) GamePlayService {
	return &gamePlayService{
		logger:        logger.With("component", "gameplay"),
		playerService: playerService,
		gameService:   gameService,
		results:       results,
		locks:         newGameLocks(),
		now:           time.Now,
	}
}

// CreateGame opens a game with the player on the first seat, or returns the
// game the player already sits in. The stored player record is authoritative
// and is copied back into player.
func (that *gamePlayService) CreateGame(ctx context.Context, player *entity.Player, size int, mode reversi.Mode) (*entity.Game, error) {
	unlock := that.locks.Lock(playerLockKey(player.ID))
	defer unlock()

	current, err := that.playerService.GetPlayerByID(ctx, player.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}
	*player = *current

	if player.InGame() {
		game, err := that.gameService.GetGameByID(ctx, player.GameID)
		if err == nil {
			return game, nil
		}

		// the game expired or was cleaned up under the player
		that.logger.Warn("dropping stale game reference", "playerID", player.ID, "gameID", player.GameID, "error", err)
		player.Leave()
	}

	game, err := that.gameService.CreateGame(ctx, player, size, mode)
	if err != nil {
		player.Leave()
		return nil, fmt.Errorf("failed to create new game: %w", err)
	}

	if err = that.playerService.UpdatePlayer(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to update player: %w", err)
	}

	return game, nil
}

// JoinGameByID seats the player on the next free seat. The player lock is
// always taken before the game lock.
func (that *gamePlayService) JoinGameByID(ctx context.Context, gameID, playerID string) (*entity.Game, error) {
	unlockPlayer := that.locks.Lock(playerLockKey(playerID))
	defer unlockPlayer()

	unlockGame := that.locks.Lock(gameLockKey(gameID))
	defer unlockGame()

	game, err := that.gameService.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	player, err := that.playerService.GetPlayerByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	if player.GameID == game.ID {
		return game, nil
	}

	if player.InGame() {
		return nil, fmt.Errorf("%w: game id %s", apperror.ErrAlreadyInGame, player.GameID)
	}

	if err = game.Join(player); err != nil {
		return nil, fmt.Errorf("game id %s: %w", gameID, err)
	}

	if err = that.playerService.UpdatePlayer(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to update player: %w", err)
	}

	if err = that.gameService.UpdateGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	return game, nil
}

// MakeTurn plays a move for the player's seat. A rejected move returns the
// unchanged game together with the reason. A game finished by the move is
// archived and removed before the lock is released.
func (that *gamePlayService) MakeTurn(ctx context.Context, playerID string, row, col int) (*entity.Game, error) {
	player, err := that.playerService.GetPlayerByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	if !player.InGame() {
		return nil, apperror.ErrNotAPlayer
	}

	unlock := that.locks.Lock(gameLockKey(player.GameID))
	defer unlock()

	game, err := that.gameService.GetGameByID(ctx, player.GameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	turnErr := game.MakeTurn(player.Seat, row, col)
	if turnErr != nil && !game.IsFinished() {
		return game, fmt.Errorf("failed to make turn: %w", turnErr)
	}

	if game.IsFinished() {
		that.cleanupGame(ctx, game)
	} else if err = that.gameService.UpdateGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	if turnErr != nil && !errors.Is(turnErr, apperror.ErrGameFinished) {
		return game, fmt.Errorf("failed to make turn: %w", turnErr)
	}

	return game, nil
}

// LegalMoves lists the cells the player may play now. It is empty unless it
// is the player's turn.
func (that *gamePlayService) LegalMoves(ctx context.Context, playerID string) ([]reversi.Position, error) {
	player, err := that.playerService.GetPlayerByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	if !player.InGame() {
		return nil, apperror.ErrNotAPlayer
	}

	game, err := that.gameService.GetGameByID(ctx, player.GameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	if err = game.ConfirmOngoingState(); err != nil {
		return nil, err
	}

	if game.State.CurrentPlayer != player.Seat {
		return []reversi.Position{}, nil
	}

	return game.State.LegalMoves(), nil
}

// cleanupGame archives a finished game, deletes it and frees its players.
// The caller holds the game lock.
func (that *gamePlayService) cleanupGame(ctx context.Context, game *entity.Game) {
	log := that.logger.With("method", "cleanupGame", "gameID", game.ID)

	if that.results != nil && game.IsFinished() {
		if err := that.archive(ctx, game); err != nil {
			log.Error("failed to archive result", "error", err)
		}
	}

	if err := that.gameService.DeleteGame(ctx, game.ID); err != nil && !errors.Is(err, apperror.ErrNotFound) {
		log.Error("failed to delete game", "error", err)
	}

	for _, player := range game.Players {
		freed := *player
		freed.Leave()
		if err := that.playerService.UpdatePlayer(ctx, &freed); err != nil {
			log.Error("failed to update", "player", player.ID, "error", err)
		}
	}

	log.Info("game cleaned up")
}

func (that *gamePlayService) archive(ctx context.Context, game *entity.Game) error {
	result, err := entity.NewResult(game, that.now())
	if err != nil {
		return fmt.Errorf("failed to build result: %w", err)
	}

	if err = that.results.Save(ctx, result); err != nil {
		return fmt.Errorf("failed to save result: %w", err)
	}

	return nil
}

func playerLockKey(playerID string) string {
	return "player:" + playerID
}

func gameLockKey(gameID string) string {
	return "game:" + gameID
}
