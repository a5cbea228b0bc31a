package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albapepper/comeback-scout/internal/alerts"
	"github.com/albapepper/comeback-scout/internal/api/respond"
	"github.com/albapepper/comeback-scout/internal/cache"
	"github.com/albapepper/comeback-scout/internal/config"
	"github.com/albapepper/comeback-scout/internal/model"
	"github.com/albapepper/comeback-scout/internal/roster"
	"github.com/albapepper/comeback-scout/internal/simulator"
)

func testConfig() *config.Config {
	return &config.Config{
		StorageDriver:    config.DriverMemory,
		CORSAllowOrigins: []string{"*"},
		MatchBatchSize:   simulator.DefaultBatchSize,
		AlertsLimit:      alerts.DefaultListLimit,
	}
}

func newTestRouter(t *testing.T, store alerts.Store, cfg *config.Config) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := roster.Default()
	return NewRouter(Deps{
		Matches: simulator.New(r, simulator.WithRand(rand.New(rand.NewPCG(7, 11)))),
		Alerts:  alerts.NewManager(store, logger),
		Roster:  r,
		Cache:   cache.New(t.Context(), true),
		Logger:  logger,
	}, cfg)
}

func do(t *testing.T, h http.Handler, method, path string, hdr map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) respond.ErrorResponse {
	t.Helper()
	var body respond.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestRoot(t *testing.T) {
	h := newTestRouter(t, alerts.NewMemory(), testConfig())

	rec := do(t, h, http.MethodGet, "/api/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Comeback Scout API"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("ETag"))
	assert.NotEmpty(t, rec.Header().Get("X-Process-Time"))
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))

	rec = do(t, h, http.MethodGet, "/api/", nil)
	assert.Equal(t, "HIT", rec.Header().Get("X-Cache"))
}

func TestLiveMatches(t *testing.T) {
	h := newTestRouter(t, alerts.NewMemory(), testConfig())

	rec := do(t, h, http.MethodGet, "/api/matches/live", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

	var matches []model.MatchSnapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &matches))
	require.Len(t, matches, simulator.DefaultBatchSize)
	for _, m := range matches {
		assert.NotEmpty(t, m.ID)
		assert.Equal(t, model.StatusLive, m.Status)
		assert.Equal(t, 100, m.HomeTeam.Possession+m.AwayTeam.Possession)
		if m.LosingTeam == nil {
			assert.Zero(t, m.ComebackProbability)
		}
	}
}

func TestGetMatchNotFound(t *testing.T) {
	h := newTestRouter(t, alerts.NewMemory(), testConfig())

	rec := do(t, h, http.MethodGet, "/api/matches/does-not-exist", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, respond.CodeNotFound, body.Error.Code)
	assert.Equal(t, "Match not found", body.Error.Message)
}

func TestCheckComebacksPersistsAlerts(t *testing.T) {
	h := newTestRouter(t, alerts.NewMemory(), testConfig())

	total := 0
	for range 5 {
		rec := do(t, h, http.MethodPost, "/api/matches/check-comebacks", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var body struct {
			AlertsCreated int `json:"alerts_created"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.GreaterOrEqual(t, body.AlertsCreated, 0)
		total += body.AlertsCreated
	}

	rec := do(t, h, http.MethodGet, "/api/alerts", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []model.ComebackAlert
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list, total)
	for _, a := range list {
		assert.Greater(t, a.Probability, 60.0)
		assert.False(t, a.Read)
	}
}

func TestMarkAlertRead(t *testing.T) {
	store := alerts.NewMemory()
	inserted, err := store.Insert(context.Background(), model.ComebackAlert{
		ID:          "alert-1",
		MatchID:     "m-1",
		TeamName:    "Real Madrid",
		Opponent:    "Sevilla",
		Score:       "0-1",
		Probability: 72,
		Minute:      40,
		Timestamp:   time.Now().UTC(),
	})
	require.NoError(t, err)
	require.True(t, inserted)

	h := newTestRouter(t, store, testConfig())

	rec := do(t, h, http.MethodPost, "/api/alerts/mark-read/alert-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/api/alerts", nil)
	var list []model.ComebackAlert
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.True(t, list[0].Read)

	rec = do(t, h, http.MethodPost, "/api/alerts/mark-read/missing", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Alert not found", decodeError(t, rec).Error.Message)
}

func TestSuperteamsETag(t *testing.T) {
	h := newTestRouter(t, alerts.NewMemory(), testConfig())

	rec := do(t, h, http.MethodGet, "/api/superteams", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var teams []model.SuperteamProfile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &teams))
	assert.Len(t, teams, len(roster.Default().Superteams))

	etag := rec.Header().Get("ETag")
	require.NotEmpty(t, etag)
	rec = do(t, h, http.MethodGet, "/api/superteams", map[string]string{"If-None-Match": etag})
	assert.Equal(t, http.StatusNotModified, rec.Code)
}

type downStore struct{ alerts.Store }

func (downStore) Ping(context.Context) error { return errors.New("connection refused") }

func TestHealthEndpoints(t *testing.T) {
	h := newTestRouter(t, alerts.NewMemory(), testConfig())
	for _, path := range []string{"/health", "/health/db", "/health/cache"} {
		rec := do(t, h, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}

	down := newTestRouter(t, downStore{alerts.NewMemory()}, testConfig())
	rec := do(t, down, http.MethodGet, "/health/db", nil)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, respond.CodeUnavailable, decodeError(t, rec).Error.Code)
}

func TestCORSPreflight(t *testing.T) {
	h := newTestRouter(t, alerts.NewMemory(), testConfig())

	rec := do(t, h, http.MethodOptions, "/api/matches/check-comebacks", map[string]string{
		"Origin":                        "http://localhost:5173",
		"Access-Control-Request-Method": http.MethodPost,
	})
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitEnabled = true
	cfg.RateLimitRequests = 2
	cfg.RateLimitWindow = time.Minute
	h := newTestRouter(t, alerts.NewMemory(), cfg)

	rec := do(t, h, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))
	assert.Equal(t, respond.CodeRateLimited, decodeError(t, rec).Error.Code)
}

func TestGetSuperteam(t *testing.T) {
	h := newTestRouter(t, alerts.NewMemory(), testConfig())

	rec := do(t, h, http.MethodGet, "/api/superteams/Real%20Madrid", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var team model.SuperteamProfile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &team))
	assert.Equal(t, "Real Madrid", team.Name)
	assert.InDelta(t, 0.75, team.ComebackRate, 1e-9)

	rec = do(t, h, http.MethodGet, "/api/superteams/Sevilla", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Superteam not found", decodeError(t, rec).Error.Message)
}
