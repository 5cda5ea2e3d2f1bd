package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/reversi-backend/internal/apperror"
	"github.com/rocketscienceinc/reversi-backend/internal/entity"
	"github.com/rocketscienceinc/reversi-backend/internal/reversi"
	"github.com/rocketscienceinc/reversi-backend/internal/usecase"
)

type gameUseCase interface {
	GetOrCreatePlayer(ctx context.Context, playerID string) (*entity.Player, error)

	CreateGame(ctx context.Context, playerID string, size, players int) (*entity.Game, error)
	JoinGame(ctx context.Context, gameID, playerID string) (*entity.Game, error)
	GetGame(ctx context.Context, gameID string) (*entity.Game, error)

	MakeTurn(ctx context.Context, playerID string, row, col int) (*entity.Game, error)
	LegalMoves(ctx context.Context, playerID string) ([]reversi.Position, error)

	GetResult(ctx context.Context, gameID string) (*entity.Result, error)
}

type playerRequest struct {
	PlayerID string `json:"player_id"`
}

type createGameRequest struct {
	PlayerID string `json:"player_id"`
	Size     int    `json:"size"`
	Players  int    `json:"players"`
}

type turnRequest struct {
	PlayerID string `json:"player_id"`
	Row      *int   `json:"row"`
	Col      *int   `json:"col"`
}

type movesResponse struct {
	Moves []reversi.Position `json:"moves"`
}

type errorResponse struct {
	Error string `json:"error"`
}

var (
	errBadRequest      = errors.New("malformed request body")
	errPlayerRequired  = errors.New("player_id is required")
	errPositionMissing = errors.New("row and col are required")
)

type handlers struct {
	logger  *slog.Logger
	useCase gameUseCase
}

func newHandlers(logger *slog.Logger, useCase gameUseCase) *handlers {
	return &handlers{
		logger:  logger.With("component", "rest"),
		useCase: useCase,
	}
}

func (that *handlers) ping(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		that.logger.Error("failed to write pong", "error", err)
	}
}

func (that *handlers) createPlayer(w http.ResponseWriter, r *http.Request) {
	var req playerRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			that.writeError(w, errBadRequest)
			return
		}
	}

	player, err := that.useCase.GetOrCreatePlayer(r.Context(), req.PlayerID)
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, player)
}

func (that *handlers) createGame(w http.ResponseWriter, r *http.Request) {
	var req createGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.writeError(w, errBadRequest)
		return
	}

	if req.PlayerID == "" {
		that.writeError(w, errPlayerRequired)
		return
	}

	game, err := that.useCase.CreateGame(r.Context(), req.PlayerID, req.Size, req.Players)
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusCreated, game)
}

func (that *handlers) getGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.useCase.GetGame(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, game)
}

func (that *handlers) joinGame(w http.ResponseWriter, r *http.Request) {
	var req playerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.writeError(w, errBadRequest)
		return
	}

	if req.PlayerID == "" {
		that.writeError(w, errPlayerRequired)
		return
	}

	game, err := that.useCase.JoinGame(r.Context(), chi.URLParam(r, "id"), req.PlayerID)
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, game)
}

func (that *handlers) legalMoves(w http.ResponseWriter, r *http.Request) {
	playerID := r.URL.Query().Get("player_id")
	if playerID == "" {
		that.writeError(w, errPlayerRequired)
		return
	}

	if err := that.confirmSeated(r.Context(), chi.URLParam(r, "id"), playerID); err != nil {
		that.writeError(w, err)
		return
	}

	moves, err := that.useCase.LegalMoves(r.Context(), playerID)
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, movesResponse{Moves: moves})
}

func (that *handlers) makeTurn(w http.ResponseWriter, r *http.Request) {
	var req turnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.writeError(w, errBadRequest)
		return
	}

	if req.PlayerID == "" {
		that.writeError(w, errPlayerRequired)
		return
	}

	if req.Row == nil || req.Col == nil {
		that.writeError(w, errPositionMissing)
		return
	}

	if err := that.confirmSeated(r.Context(), chi.URLParam(r, "id"), req.PlayerID); err != nil {
		that.writeError(w, err)
		return
	}

	game, err := that.useCase.MakeTurn(r.Context(), req.PlayerID, *req.Row, *req.Col)
	if errors.Is(err, apperror.ErrGameFinished) && game != nil {
		// the move that ended the game
		that.writeJSON(w, http.StatusOK, game)
		return
	}

	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, game)
}

func (that *handlers) getResult(w http.ResponseWriter, r *http.Request) {
	result, err := that.useCase.GetResult(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, result)
}

// confirmSeated checks that the player sits at the game named in the path.
func (that *handlers) confirmSeated(ctx context.Context, gameID, playerID string) error {
	game, err := that.useCase.GetGame(ctx, gameID)
	if err != nil {
		return err
	}

	if game.PlayerByID(playerID) == nil {
		return apperror.ErrNotAPlayer
	}

	return nil
}

func (that *handlers) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to encode response", "error", err)
	}
}

func (that *handlers) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "error", err)
	}

	that.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, errBadRequest),
		errors.Is(err, errPlayerRequired),
		errors.Is(err, errPositionMissing),
		errors.Is(err, reversi.ErrInvalidConfig):
		return http.StatusBadRequest
	case errors.Is(err, reversi.ErrIllegalMove):
		return http.StatusUnprocessableEntity
	case errors.Is(err, apperror.ErrNotAPlayer):
		return http.StatusForbidden
	case errors.Is(err, apperror.ErrNotYourTurn),
		errors.Is(err, apperror.ErrGameIsNotStarted),
		errors.Is(err, apperror.ErrGameFinished),
		errors.Is(err, apperror.ErrGameIsFull),
		errors.Is(err, apperror.ErrAlreadyInGame):
		return http.StatusConflict
	case errors.Is(err, apperror.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, usecase.ErrArchiveDisabled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
