package alerts

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/albapepper/comeback-scout/internal/config"
	"github.com/albapepper/comeback-scout/internal/model"
)

type postgresStore struct {
	pool   *pgxpool.Pool
	schema string
	table  string // sanitized, schema-qualified
}

// NewPostgres returns a store over an existing pool. The table lives in the
// given schema; an empty schema means public. Close does not close the pool.
func NewPostgres(pool *pgxpool.Pool, schema string) Store {
	if schema == "" {
		schema = "public"
	}
	return &postgresStore{
		pool:   pool,
		schema: schema,
		table:  pgx.Identifier{schema, config.AlertsTable}.Sanitize(),
	}
}

func (s *postgresStore) Init(ctx context.Context) error {
	stmts := []string{
		fmt.Sprintf(`CREATE SCHEMA IF NOT EXISTS %s`, pgx.Identifier{s.schema}.Sanitize()),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			match_id TEXT NOT NULL,
			team_name TEXT NOT NULL,
			opponent TEXT NOT NULL,
			score TEXT NOT NULL,
			probability DOUBLE PRECISION NOT NULL,
			minute INTEGER NOT NULL,
			reason TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			read BOOLEAN NOT NULL DEFAULT FALSE
		)`, s.table),
		fmt.Sprintf(`CREATE UNIQUE INDEX IF NOT EXISTS idx_comeback_alerts_match_team ON %s (match_id, team_name)`, s.table),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_comeback_alerts_created_at ON %s (created_at DESC)`, s.table),
	}
	for _, stmt := range stmts {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init alerts schema: %w", err)
		}
	}
	return nil
}

func (s *postgresStore) Ping(ctx context.Context) error {
	var n int
	return s.pool.QueryRow(ctx, "health_check").Scan(&n)
}

func (s *postgresStore) Close() error { return nil }

func (s *postgresStore) Exists(ctx context.Context, matchID, teamName string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE match_id = $1 AND team_name = $2)`, s.table),
		matchID, teamName,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check existing alert: %w", err)
	}
	return exists, nil
}

func (s *postgresStore) Insert(ctx context.Context, a model.ComebackAlert) (bool, error) {
	tag, err := s.pool.Exec(ctx, fmt.Sprintf(`
		INSERT INTO %s (
			id, match_id, team_name, opponent, score,
			probability, minute, reason, created_at, read
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		ON CONFLICT (match_id, team_name) DO NOTHING`, s.table),
		a.ID, a.MatchID, a.TeamName, a.Opponent, a.Score,
		a.Probability, a.Minute, a.Reason, a.Timestamp.UTC(), a.Read,
	)
	if err != nil {
		return false, fmt.Errorf("insert alert: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (s *postgresStore) List(ctx context.Context, limit int) ([]model.ComebackAlert, error) {
	rows, err := s.pool.Query(ctx, fmt.Sprintf(`
		SELECT id, match_id, team_name, opponent, score,
		       probability, minute, reason, created_at, read
		FROM %s
		ORDER BY created_at DESC
		LIMIT $1`, s.table), listLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}
	defer rows.Close()

	out := make([]model.ComebackAlert, 0, listLimit(limit))
	for rows.Next() {
		var a model.ComebackAlert
		if err := rows.Scan(
			&a.ID, &a.MatchID, &a.TeamName, &a.Opponent, &a.Score,
			&a.Probability, &a.Minute, &a.Reason, &a.Timestamp, &a.Read,
		); err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		a.Timestamp = a.Timestamp.UTC()
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *postgresStore) MarkRead(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx,
		fmt.Sprintf(`UPDATE %s SET read = TRUE WHERE id = $1`, s.table), id)
	if err != nil {
		return fmt.Errorf("mark alert read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
