package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albapepper/comeback-scout/internal/config"
	"github.com/albapepper/comeback-scout/internal/model"
	"github.com/albapepper/comeback-scout/internal/notifications"
)

func setupEnv(t *testing.T) {
	t.Helper()
	dsn := "file:" + filepath.Join(t.TempDir(), "scout.db") + "?_pragma=busy_timeout(5000)"
	t.Setenv("STORAGE_DRIVER", "sqlite")
	t.Setenv("DATABASE_URL", dsn)
	t.Setenv("MONGO_URL", "")
	t.Setenv("ROSTER_FILE", "")
	t.Setenv("KAFKA_BROKERS", "")
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	t.Setenv("LOG_LEVEL", "error")
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := rootCmd(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSimulateCommand(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "simulate", "--batch", "2")
	require.NoError(t, err)

	var matches []model.MatchSnapshot
	require.NoError(t, json.Unmarshal([]byte(out), &matches))
	assert.Len(t, matches, 2)
}

func TestCheckAndListCommands(t *testing.T) {
	setupEnv(t)

	_, err := run(t, "migrate")
	require.NoError(t, err)

	out, err := run(t, "check")
	require.NoError(t, err)
	var res struct {
		AlertsCreated int `json:"alerts_created"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))

	out, err = run(t, "alerts", "list")
	require.NoError(t, err)
	var list []model.ComebackAlert
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	assert.Len(t, list, res.AlertsCreated)
}

func TestMarkReadMissingAlertFails(t *testing.T) {
	setupEnv(t)

	_, err := run(t, "migrate")
	require.NoError(t, err)

	_, err = run(t, "alerts", "mark-read", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	_, err = run(t, "alerts", "mark-read")
	assert.Error(t, err)
}

type recordingSender struct {
	mu     sync.Mutex
	got    []model.ComebackAlert
	closed int
}

func (r *recordingSender) Name() string { return "recording" }

func (r *recordingSender) Send(_ context.Context, a model.ComebackAlert) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, a)
	return nil
}

func (r *recordingSender) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed++
	return nil
}

func TestCheckDeliversCreatedAlerts(t *testing.T) {
	setupEnv(t)

	sender := &recordingSender{}
	orig := newSenders
	newSenders = func(*config.Config) ([]notifications.Sender, error) {
		return []notifications.Sender{sender}, nil
	}
	t.Cleanup(func() { newSenders = orig })

	total := 0
	for range 10 {
		out, err := run(t, "check")
		require.NoError(t, err)
		var res struct {
			AlertsCreated int `json:"alerts_created"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &res))
		total += res.AlertsCreated
	}

	sender.mu.Lock()
	defer sender.mu.Unlock()
	assert.Len(t, sender.got, total)
	assert.Equal(t, 10, sender.closed)

	out, err := run(t, "alerts", "list", "--limit", "100")
	require.NoError(t, err)
	var list []model.ComebackAlert
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	assert.Len(t, list, total)
}

func TestCommandsWorkWithoutMigrate(t *testing.T) {
	setupEnv(t)

	_, err := run(t, "alerts", "list")
	require.NoError(t, err)

	_, err = run(t, "check")
	require.NoError(t, err)
}
