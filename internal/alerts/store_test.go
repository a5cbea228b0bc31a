package alerts

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albapepper/comeback-scout/internal/config"
	"github.com/albapepper/comeback-scout/internal/model"
)

var base = time.Date(2026, 10, 18, 19, 30, 0, 0, time.UTC)

func storeFactories(t *testing.T) map[string]func() Store {
	return map[string]func() Store{
		"memory": NewMemory,
		"sqlite": func() Store {
			dsn := "file:" + filepath.Join(t.TempDir(), "alerts.db") + "?_pragma=busy_timeout(5000)"
			s, err := NewSQLite(dsn)
			require.NoError(t, err)
			t.Cleanup(func() { s.Close() })
			return s
		},
	}
}

func sampleAlert(i int) model.ComebackAlert {
	return model.ComebackAlert{
		ID:          fmt.Sprintf("alert-%02d", i),
		MatchID:     fmt.Sprintf("match-%02d", i),
		TeamName:    "Liverpool",
		Opponent:    "Arsenal",
		Score:       "0-1",
		Probability: 72.5,
		Minute:      60 + i,
		Reason:      "xG superior (2.1 vs 0.8)",
		Timestamp:   base.Add(time.Duration(i) * time.Minute),
	}
}

func TestStoreContract(t *testing.T) {
	for name, factory := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := factory()
			require.NoError(t, s.Init(ctx))
			require.NoError(t, s.Init(ctx), "init is idempotent")
			require.NoError(t, s.Ping(ctx))

			for i := 0; i < 5; i++ {
				ok, err := s.Insert(ctx, sampleAlert(i))
				require.NoError(t, err)
				assert.True(t, ok)
			}

			exists, err := s.Exists(ctx, "match-03", "Liverpool")
			require.NoError(t, err)
			assert.True(t, exists)
			exists, err = s.Exists(ctx, "match-03", "Arsenal")
			require.NoError(t, err)
			assert.False(t, exists)

			dup := sampleAlert(3)
			dup.ID = "alert-dup"
			ok, err := s.Insert(ctx, dup)
			require.NoError(t, err)
			assert.False(t, ok, "second alert for the same (match, team) is rejected")

			list, err := s.List(ctx, 3)
			require.NoError(t, err)
			require.Len(t, list, 3)
			assert.Equal(t, "alert-04", list[0].ID)
			assert.Equal(t, "alert-03", list[1].ID)
			assert.Equal(t, "alert-02", list[2].ID)
			assert.True(t, list[0].Timestamp.Equal(sampleAlert(4).Timestamp))
			assert.Equal(t, sampleAlert(4).Reason, list[0].Reason)
			assert.False(t, list[0].Read)

			all, err := s.List(ctx, 0)
			require.NoError(t, err)
			assert.Len(t, all, 5)

			require.NoError(t, s.MarkRead(ctx, "alert-02"))
			require.NoError(t, s.MarkRead(ctx, "alert-02"), "already read is still found")
			assert.ErrorIs(t, s.MarkRead(ctx, "missing"), ErrNotFound)

			list, err = s.List(ctx, 10)
			require.NoError(t, err)
			for _, a := range list {
				assert.Equal(t, a.ID == "alert-02", a.Read, a.ID)
			}
		})
	}
}

func TestStoreConcurrentInsertSamePair(t *testing.T) {
	for name, factory := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := factory()
			require.NoError(t, s.Init(ctx))

			var (
				wg      sync.WaitGroup
				mu      sync.Mutex
				created int
			)
			for i := 0; i < 8; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					a := sampleAlert(1)
					a.ID = fmt.Sprintf("racer-%d", i)
					ok, err := s.Insert(ctx, a)
					assert.NoError(t, err)
					if ok {
						mu.Lock()
						created++
						mu.Unlock()
					}
				}(i)
			}
			wg.Wait()
			assert.Equal(t, 1, created)
		})
	}
}

func TestNewStoreSelectsDriver(t *testing.T) {
	s, err := NewStore(&config.Config{StorageDriver: config.DriverMemory}, nil)
	require.NoError(t, err)
	assert.IsType(t, &memoryStore{}, s)

	s, err = NewStore(&config.Config{
		StorageDriver: config.DriverSQLite,
		DatabaseURL:   "file:" + filepath.Join(t.TempDir(), "x.db"),
	}, nil)
	require.NoError(t, err)
	assert.IsType(t, &sqliteStore{}, s)
	require.NoError(t, s.Close())

	_, err = NewStore(&config.Config{StorageDriver: config.DriverPostgres}, nil)
	assert.Error(t, err)

	_, err = NewStore(&config.Config{StorageDriver: "mongo"}, nil)
	assert.Error(t, err)
}

func TestOpen(t *testing.T) {
	store, closeFn, err := Open(context.Background(), &config.Config{StorageDriver: config.DriverMemory})
	require.NoError(t, err)
	require.NoError(t, store.Ping(context.Background()))
	closeFn()

	_, _, err = Open(context.Background(), &config.Config{
		StorageDriver: config.DriverPostgres,
		DatabaseURL:   "postgres://%zz",
	})
	assert.Error(t, err)
}
