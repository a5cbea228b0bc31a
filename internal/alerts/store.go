// Package alerts decides which comeback scenarios warrant a persisted alert,
// keeps at most one alert per (match, team) and exposes read-state changes.
package alerts

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/albapepper/comeback-scout/internal/config"
	"github.com/albapepper/comeback-scout/internal/db"
	"github.com/albapepper/comeback-scout/internal/model"
)

// ErrNotFound is returned when an alert id does not exist.
var ErrNotFound = errors.New("alert not found")

// Store persists comeback alerts.
//
// Insert is a conditional write keyed on (match id, team name): it reports
// false, without error, when an alert for that pair already exists.
type Store interface {
	Init(ctx context.Context) error
	Ping(ctx context.Context) error
	Exists(ctx context.Context, matchID, teamName string) (bool, error)
	Insert(ctx context.Context, alert model.ComebackAlert) (bool, error)
	List(ctx context.Context, limit int) ([]model.ComebackAlert, error)
	MarkRead(ctx context.Context, id string) error
	Close() error
}

// NewStore builds the store selected by cfg.StorageDriver. pool is only used
// by the postgres driver and stays owned by the caller.
func NewStore(cfg *config.Config, pool *pgxpool.Pool) (Store, error) {
	switch cfg.StorageDriver {
	case config.DriverPostgres:
		if pool == nil {
			return nil, errors.New("postgres store requires a connection pool")
		}
		return NewPostgres(pool, cfg.DBName), nil
	case config.DriverSQLite:
		return NewSQLite(cfg.SQLiteDSN())
	case config.DriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}
}

// Open connects the configured backend, opening a pgx pool first when the
// driver is postgres. The returned close func releases the store and pool.
func Open(ctx context.Context, cfg *config.Config) (Store, func(), error) {
	var pool *db.Pool
	if cfg.StorageDriver == config.DriverPostgres {
		p, err := db.New(ctx, cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to database: %w", err)
		}
		pool = p
	}

	var raw *pgxpool.Pool
	if pool != nil {
		raw = pool.Pool
	}
	store, err := NewStore(cfg, raw)
	if err != nil {
		if pool != nil {
			pool.Close()
		}
		return nil, nil, err
	}

	return store, func() {
		_ = store.Close()
		if pool != nil {
			pool.Close()
		}
	}, nil
}
