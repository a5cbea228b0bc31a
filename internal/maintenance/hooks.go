package maintenance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/albapepper/comeback-scout/internal/model"
)

// MatchSource produces a batch of live match snapshots.
type MatchSource interface {
	Generate() []model.MatchSnapshot
}

// AlertEvaluator persists alerts for qualifying snapshots.
type AlertEvaluator interface {
	EvaluateAndAlert(ctx context.Context, snapshots []model.MatchSnapshot) (int, error)
}

// RunCheck draws one batch and evaluates it for alerts.
// Shared by the background ticker and `scout check`.
func RunCheck(ctx context.Context, src MatchSource, eval AlertEvaluator, logger *slog.Logger) (int, error) {
	start := time.Now()
	batch := src.Generate()
	created, err := eval.EvaluateAndAlert(ctx, batch)
	dur := time.Since(start).Round(time.Millisecond)

	if err != nil {
		logger.Warn("Comeback check failed", "matches", len(batch), "duration", dur, "error", err)
		return created, fmt.Errorf("comeback check: %w", err)
	}
	logger.Info("Comeback check finished",
		"matches", len(batch), "alerts_created", created, "duration", dur)
	return created, nil
}
