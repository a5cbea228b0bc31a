package alerts

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/albapepper/comeback-scout/internal/model"
)

type sqliteStore struct {
	db *sql.DB
}

// NewSQLite opens a sqlite-backed store. Timestamps are stored as unix
// nanoseconds so ordering stays exact.
func NewSQLite(dsn string) (Store, error) {
	if strings.TrimSpace(dsn) == "" {
		dsn = "file:comeback_scout.db?_pragma=busy_timeout(5000)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// single writer; also keeps ":memory:" databases on one connection
	db.SetMaxOpenConns(1)
	return &sqliteStore{db: db}, nil
}

func (s *sqliteStore) Init(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS comeback_alerts (
			id TEXT PRIMARY KEY,
			match_id TEXT NOT NULL,
			team_name TEXT NOT NULL,
			opponent TEXT NOT NULL,
			score TEXT NOT NULL,
			probability REAL NOT NULL,
			minute INTEGER NOT NULL,
			reason TEXT NOT NULL,
			created_at INTEGER NOT NULL,
			read INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_comeback_alerts_match_team ON comeback_alerts(match_id, team_name)`,
		`CREATE INDEX IF NOT EXISTS idx_comeback_alerts_created_at ON comeback_alerts(created_at DESC)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init alerts schema: %w", err)
		}
	}
	return nil
}

func (s *sqliteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *sqliteStore) Close() error {
	return s.db.Close()
}

func (s *sqliteStore) Exists(ctx context.Context, matchID, teamName string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM comeback_alerts WHERE match_id = ? AND team_name = ?`,
		matchID, teamName,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("check existing alert: %w", err)
	}
	return n > 0, nil
}

func (s *sqliteStore) Insert(ctx context.Context, a model.ComebackAlert) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO comeback_alerts (
			id, match_id, team_name, opponent, score,
			probability, minute, reason, created_at, read
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (match_id, team_name) DO NOTHING`,
		a.ID, a.MatchID, a.TeamName, a.Opponent, a.Score,
		a.Probability, a.Minute, a.Reason, a.Timestamp.UTC().UnixNano(), a.Read,
	)
	if err != nil {
		return false, fmt.Errorf("insert alert: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("insert alert: %w", err)
	}
	return n == 1, nil
}

func (s *sqliteStore) List(ctx context.Context, limit int) ([]model.ComebackAlert, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, match_id, team_name, opponent, score,
		        probability, minute, reason, created_at, read
		FROM comeback_alerts
		ORDER BY created_at DESC
		LIMIT ?`, listLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}
	defer rows.Close()

	out := make([]model.ComebackAlert, 0, listLimit(limit))
	for rows.Next() {
		var (
			a  model.ComebackAlert
			ns int64
		)
		if err := rows.Scan(
			&a.ID, &a.MatchID, &a.TeamName, &a.Opponent, &a.Score,
			&a.Probability, &a.Minute, &a.Reason, &ns, &a.Read,
		); err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		a.Timestamp = time.Unix(0, ns).UTC()
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *sqliteStore) MarkRead(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE comeback_alerts SET read = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("mark alert read: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark alert read: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
