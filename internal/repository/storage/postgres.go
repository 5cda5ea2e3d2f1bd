package storage

import (
	"context"
	"database/sql"
	"fmt"

	// import the postgres driver to register it with the database/sql package.
	_ "github.com/lib/pq"
)

type Storage struct {
	Connection *sql.DB
}

func NewPostgres(ctx context.Context, dsn string) (*Storage, error) {
	conn, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("can't open database: %w", err)
	}

	if err = conn.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("can't connect to database: %w", err)
	}

	return &Storage{Connection: conn}, nil
}

// Init creates the tables the repositories rely on.
func (that *Storage) Init(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS game_results (
		game_id       TEXT PRIMARY KEY,
		board_size    INTEGER NOT NULL,
		players_count INTEGER NOT NULL,
		board_state   JSONB NOT NULL,
		scores        JSONB NOT NULL,
		winners       BIGINT[] NOT NULL,
		player_ids    TEXT[] NOT NULL,
		finished_at   TIMESTAMPTZ NOT NULL
	);
	`

	if _, err := that.Connection.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("can't create table: %w", err)
	}

	return nil
}

func (that *Storage) Close() error {
	return that.Connection.Close()
}
