package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/reversi-backend/internal/apperror"
	"github.com/rocketscienceinc/reversi-backend/internal/entity"
	"github.com/rocketscienceinc/reversi-backend/internal/reversi"
)

type mockGameUseCase struct {
	mock.Mock
}

func (that *mockGameUseCase) GetOrCreatePlayer(ctx context.Context, playerID string) (*entity.Player, error) {
	args := that.Called(ctx, playerID)
	player, _ := args.Get(0).(*entity.Player)
	return player, args.Error(1)
}

func (that *mockGameUseCase) CreateGame(ctx context.Context, playerID string, size, players int) (*entity.Game, error) {
	args := that.Called(ctx, playerID, size, players)
	game, _ := args.Get(0).(*entity.Game)
	return game, args.Error(1)
}

func (that *mockGameUseCase) JoinGame(ctx context.Context, gameID, playerID string) (*entity.Game, error) {
	args := that.Called(ctx, gameID, playerID)
	game, _ := args.Get(0).(*entity.Game)
	return game, args.Error(1)
}

func (that *mockGameUseCase) GetGame(ctx context.Context, gameID string) (*entity.Game, error) {
	args := that.Called(ctx, gameID)
	game, _ := args.Get(0).(*entity.Game)
	return game, args.Error(1)
}

func (that *mockGameUseCase) MakeTurn(ctx context.Context, playerID string, row, col int) (*entity.Game, error) {
	args := that.Called(ctx, playerID, row, col)
	game, _ := args.Get(0).(*entity.Game)
	return game, args.Error(1)
}

func (that *mockGameUseCase) LegalMoves(ctx context.Context, playerID string) ([]reversi.Position, error) {
	args := that.Called(ctx, playerID)
	moves, _ := args.Get(0).([]reversi.Position)
	return moves, args.Error(1)
}

func (that *mockGameUseCase) GetResult(ctx context.Context, gameID string) (*entity.Result, error) {
	args := that.Called(ctx, gameID)
	result, _ := args.Get(0).(*entity.Result)
	return result, args.Error(1)
}

func newTestRouter() (*mockGameUseCase, http.Handler) {
	useCase := &mockGameUseCase{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return useCase, NewRouter(logger, useCase)
}

func serve(router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

func seatedGame(t *testing.T) *entity.Game {
	t.Helper()

	game, err := entity.NewGame("g1", 8, reversi.TwoPlayer)
	require.NoError(t, err)
	require.NoError(t, game.Join(&entity.Player{ID: "p1"}))
	require.NoError(t, game.Join(&entity.Player{ID: "p2"}))

	return game
}

func TestRouter_Ping(t *testing.T) {
	_, router := newTestRouter()

	rec := serve(router, http.MethodGet, "/ping", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())
}

func TestRouter_CreatePlayer(t *testing.T) {
	t.Run("Creates a player without a body", func(t *testing.T) {
		// Given: a use case creating players
		useCase, router := newTestRouter()
		useCase.On("GetOrCreatePlayer", mock.Anything, "").Return(&entity.Player{ID: "fresh"}, nil).Once()

		// When: POST /players is called with no body
		rec := serve(router, http.MethodPost, "/players", "")

		// Then: the new player is returned
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"id":"fresh"}`, rec.Body.String())
	})
}

func TestRouter_CreateGame(t *testing.T) {
	t.Run("Creates a three player game", func(t *testing.T) {
		// Given: a use case creating games
		useCase, router := newTestRouter()
		game, err := entity.NewGame("g1", 8, reversi.ThreePlayer)
		require.NoError(t, err)
		useCase.On("CreateGame", mock.Anything, "p1", 8, 3).Return(game, nil).Once()

		// When: POST /games is called
		rec := serve(router, http.MethodPost, "/games", `{"player_id":"p1","size":8,"players":3}`)

		// Then: the game is created
		require.Equal(t, http.StatusCreated, rec.Code)

		var body entity.Game
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "g1", body.ID)
		assert.Equal(t, reversi.ThreePlayer, body.Mode)
	})

	t.Run("Maps an invalid configuration to 400", func(t *testing.T) {
		// Given: a use case rejecting the configuration
		useCase, router := newTestRouter()
		useCase.On("CreateGame", mock.Anything, "p1", 7, 2).Return(nil, reversi.ErrInvalidConfig).Once()

		// When: an odd board is requested
		rec := serve(router, http.MethodPost, "/games", `{"player_id":"p1","size":7,"players":2}`)

		// Then: the request is rejected
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Requires a player id", func(t *testing.T) {
		_, router := newTestRouter()

		rec := serve(router, http.MethodPost, "/games", `{"size":8}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestRouter_MakeTurn(t *testing.T) {
	t.Run("Returns the updated game", func(t *testing.T) {
		// Given: a seated player
		useCase, router := newTestRouter()
		game := seatedGame(t)
		useCase.On("GetGame", mock.Anything, "g1").Return(game, nil).Once()
		useCase.On("MakeTurn", mock.Anything, "p1", 2, 3).Return(game, nil).Once()

		// When: the turn is posted
		rec := serve(router, http.MethodPost, "/games/g1/turn", `{"player_id":"p1","row":2,"col":3}`)

		// Then: the game comes back
		assert.Equal(t, http.StatusOK, rec.Code)
		useCase.AssertExpectations(t)
	})

	t.Run("Accepts row and column zero", func(t *testing.T) {
		// Given: a move at the corner
		useCase, router := newTestRouter()
		game := seatedGame(t)
		useCase.On("GetGame", mock.Anything, "g1").Return(game, nil).Once()
		useCase.On("MakeTurn", mock.Anything, "p1", 0, 0).
			Return(game, fmt.Errorf("failed to make turn: %w", &reversi.MoveError{Row: 0, Col: 0, Reason: reversi.ErrNoCaptures})).
			Once()

		// When: the turn is posted
		rec := serve(router, http.MethodPost, "/games/g1/turn", `{"player_id":"p1","row":0,"col":0}`)

		// Then: the illegal move is reported as 422
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, rec.Body.String(), "move captures nothing")
	})

	t.Run("Maps the usual failures", func(t *testing.T) {
		cases := []struct {
			err    error
			status int
		}{
			{err: apperror.ErrNotYourTurn, status: http.StatusConflict},
			{err: apperror.ErrGameIsNotStarted, status: http.StatusConflict},
			{err: apperror.ErrNotFound, status: http.StatusNotFound},
			{err: errSomeFailure, status: http.StatusInternalServerError},
		}

		for _, tc := range cases {
			useCase, router := newTestRouter()
			game := seatedGame(t)
			useCase.On("GetGame", mock.Anything, "g1").Return(game, nil).Once()
			useCase.On("MakeTurn", mock.Anything, "p2", 2, 3).Return(nil, tc.err).Once()

			rec := serve(router, http.MethodPost, "/games/g1/turn", `{"player_id":"p2","row":2,"col":3}`)

			assert.Equal(t, tc.status, rec.Code, tc.err.Error())
		}
	})

	t.Run("Finishing move answers with the final game", func(t *testing.T) {
		// Given: a move that ends the game
		useCase, router := newTestRouter()
		game := seatedGame(t)
		game.Status = entity.StatusFinished
		useCase.On("GetGame", mock.Anything, "g1").Return(game, nil).Once()
		useCase.On("MakeTurn", mock.Anything, "p1", 3, 3).Return(game, apperror.ErrGameFinished).Once()

		// When: the turn is posted
		rec := serve(router, http.MethodPost, "/games/g1/turn", `{"player_id":"p1","row":3,"col":3}`)

		// Then: the final state is returned
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"finished"`)
	})

	t.Run("Rejects a player from another game", func(t *testing.T) {
		// Given: a game the player is not seated in
		useCase, router := newTestRouter()
		useCase.On("GetGame", mock.Anything, "g1").Return(seatedGame(t), nil).Once()

		// When: a stranger posts a turn
		rec := serve(router, http.MethodPost, "/games/g1/turn", `{"player_id":"p9","row":2,"col":3}`)

		// Then: access is forbidden
		assert.Equal(t, http.StatusForbidden, rec.Code)
		useCase.AssertNotCalled(t, "MakeTurn", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Requires a position", func(t *testing.T) {
		_, router := newTestRouter()

		rec := serve(router, http.MethodPost, "/games/g1/turn", `{"player_id":"p1"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestRouter_LegalMoves(t *testing.T) {
	// Given: a seated player on turn
	useCase, router := newTestRouter()
	game := seatedGame(t)
	useCase.On("GetGame", mock.Anything, "g1").Return(game, nil).Once()
	useCase.On("LegalMoves", mock.Anything, "p1").Return(game.State.LegalMoves(), nil).Once()

	// When: the moves are requested
	rec := serve(router, http.MethodGet, "/games/g1/moves?player_id=p1", "")

	// Then: the four opening moves are listed
	require.Equal(t, http.StatusOK, rec.Code)

	var body movesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Moves, 4)
}

var errSomeFailure = fmt.Errorf("redis down")
