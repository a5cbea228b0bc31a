package alerts

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/albapepper/comeback-scout/internal/comeback"
	"github.com/albapepper/comeback-scout/internal/model"
)

// --------------------------------------------------------------------------
// Constants
// --------------------------------------------------------------------------

// DefaultListLimit bounds ListAlerts when the caller passes no limit.
const DefaultListLimit = 50

// rationaleRate is the historical comeback rate assumed when rebuilding an
// alert's reason, regardless of the team's own profile rate.
const rationaleRate = 0.7

func listLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return limit
}

// Notifier receives every newly created alert. Delivery is best-effort.
type Notifier interface {
	Notify(ctx context.Context, alert model.ComebackAlert) error
}

// --------------------------------------------------------------------------
// Manager
// --------------------------------------------------------------------------

// Manager runs the alert workflow over an injected Store. The store's
// connection lifecycle belongs to the caller.
type Manager struct {
	store    Store
	notifier Notifier
	logger   *slog.Logger
	now      func() time.Time
	newID    func() string
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithNotifier fans created alerts out to n.
func WithNotifier(n Notifier) ManagerOption {
	return func(m *Manager) { m.notifier = n }
}

// WithClock overrides time.Now for alert timestamps.
func WithClock(now func() time.Time) ManagerOption {
	return func(m *Manager) { m.now = now }
}

// WithIDGenerator overrides the uuid generator for alert ids.
func WithIDGenerator(f func() string) ManagerOption {
	return func(m *Manager) { m.newID = f }
}

// NewManager creates a Manager. logger may be nil.
func NewManager(store Store, logger *slog.Logger, opts ...ManagerOption) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	m := &Manager{
		store:  store,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// EvaluateAndAlert persists an alert for every snapshot that is a comeback
// scenario above the alert threshold, unless one already exists for the same
// (match id, losing team). Returns the number of alerts created.
func (m *Manager) EvaluateAndAlert(ctx context.Context, snapshots []model.MatchSnapshot) (int, error) {
	created := 0
	for _, snap := range snapshots {
		if !snap.IsComebackScenario || !comeback.AlertEligible(snap.ComebackProbability) {
			continue
		}
		team, opponent, ok := snap.Trailing()
		if !ok {
			continue
		}

		exists, err := m.store.Exists(ctx, snap.ID, team.Name)
		if err != nil {
			return created, err
		}
		if exists {
			m.logger.Debug("Alert already exists", "match_id", snap.ID, "team", team.Name)
			continue
		}

		_, reason := comeback.Evaluate(team, opponent, true, rationaleRate)
		alert := model.ComebackAlert{
			ID:          m.newID(),
			MatchID:     snap.ID,
			TeamName:    team.Name,
			Opponent:    opponent.Name,
			Score:       snap.ScoreLine(),
			Probability: snap.ComebackProbability,
			Minute:      snap.Minute,
			Reason:      reason,
			Timestamp:   m.now().UTC(),
		}

		inserted, err := m.store.Insert(ctx, alert)
		if err != nil {
			return created, err
		}
		if !inserted {
			// lost a race with a concurrent trigger for the same pair
			continue
		}
		created++

		m.logger.Info("Comeback alert created",
			"alert_id", alert.ID,
			"match_id", alert.MatchID,
			"team", alert.TeamName,
			"score", alert.Score,
			"minute", alert.Minute,
			"probability", alert.Probability)

		if m.notifier != nil {
			if err := m.notifier.Notify(ctx, alert); err != nil {
				m.logger.Warn("Alert notification failed", "alert_id", alert.ID, "error", err)
			}
		}
	}
	return created, nil
}

// ListAlerts returns stored alerts newest first. limit <= 0 means
// DefaultListLimit.
func (m *Manager) ListAlerts(ctx context.Context, limit int) ([]model.ComebackAlert, error) {
	return m.store.List(ctx, listLimit(limit))
}

// MarkRead flags the alert as read. Returns ErrNotFound for unknown ids.
func (m *Manager) MarkRead(ctx context.Context, id string) error {
	err := m.store.MarkRead(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return fmt.Errorf("mark read %s: %w", id, ErrNotFound)
	}
	return err
}

// Ping checks the underlying store is reachable.
func (m *Manager) Ping(ctx context.Context) error {
	return m.store.Ping(ctx)
}
