package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/rocketscienceinc/reversi-backend/internal/apperror"
	"github.com/rocketscienceinc/reversi-backend/internal/entity"
	"github.com/rocketscienceinc/reversi-backend/internal/reversi"
)

var ErrResultNotFound = fmt.Errorf("result %w", apperror.ErrNotFound)

type ResultRepository interface {
	Save(ctx context.Context, result *entity.Result) error
	GetByID(ctx context.Context, gameID string) (*entity.Result, error)
}

type dbResult struct {
	conn *sql.DB
}

func NewResultRepository(conn *sql.DB) ResultRepository {
	return &dbResult{
		conn: conn,
	}
}

func (that *dbResult) Save(ctx context.Context, result *entity.Result) error {
	board, err := json.Marshal(result.Board)
	if err != nil {
		return fmt.Errorf("could not marshal board: %w", err)
	}

	scores, err := json.Marshal(result.Scores)
	if err != nil {
		return fmt.Errorf("could not marshal scores: %w", err)
	}

	winners := make([]int64, len(result.Winners))
	for i, winner := range result.Winners {
		winners[i] = int64(winner)
	}

	query := `
	INSERT INTO game_results (game_id, board_size, players_count, board_state, scores, winners, player_ids, finished_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT (game_id) DO UPDATE SET
		board_state = EXCLUDED.board_state,
		scores = EXCLUDED.scores,
		winners = EXCLUDED.winners,
		player_ids = EXCLUDED.player_ids,
		finished_at = EXCLUDED.finished_at;
	`

	_, err = that.conn.ExecContext(ctx, query,
		result.GameID,
		result.Size,
		int(result.Mode),
		board,
		scores,
		pq.Array(winners),
		pq.Array(result.PlayerIDs),
		result.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("can't save result: %w", err)
	}

	return nil
}

func (that *dbResult) GetByID(ctx context.Context, gameID string) (*entity.Result, error) {
	query := `
	SELECT game_id, board_size, players_count, board_state, scores, winners, player_ids, finished_at
	FROM game_results
	WHERE game_id = $1;
	`

	var (
		result  entity.Result
		mode    int
		board   []byte
		scores  []byte
		winners []int64
	)

	err := that.conn.QueryRowContext(ctx, query, gameID).Scan(
		&result.GameID,
		&result.Size,
		&mode,
		&board,
		&scores,
		pq.Array(&winners),
		pq.Array(&result.PlayerIDs),
		&result.FinishedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrResultNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("can't find result: %w", err)
	}

	result.Mode = reversi.Mode(mode)

	if err = json.Unmarshal(board, &result.Board); err != nil {
		return nil, fmt.Errorf("failed to unmarshal board: %w", err)
	}

	if err = json.Unmarshal(scores, &result.Scores); err != nil {
		return nil, fmt.Errorf("failed to unmarshal scores: %w", err)
	}

	result.Winners = make([]reversi.PlayerID, len(winners))
	for i, winner := range winners {
		result.Winners[i] = reversi.PlayerID(winner)
	}

	return &result, nil
}
