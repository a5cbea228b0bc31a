// Package maintenance runs periodic background tasks as Go tickers.
// The API process is long-running, so scheduled comeback checks are driven
// from here instead of an external cron.
package maintenance

import (
	"context"
	"log/slog"
	"time"
)

// Config controls task intervals. Zero duration disables a task.
type Config struct {
	CheckInterval time.Duration // simulate + evaluate-and-alert
}

// Start launches all configured tickers. Blocks until ctx is cancelled.
// Intended to be called with `go`.
func Start(ctx context.Context, src MatchSource, eval AlertEvaluator, cfg Config, logger *slog.Logger) {
	if cfg.CheckInterval <= 0 {
		logger.Info("Maintenance tickers disabled")
		return
	}
	logger.Info("Maintenance tickers started", "check", cfg.CheckInterval)

	t := time.NewTicker(cfg.CheckInterval)
	defer t.Stop()

	runLoop(ctx, t.C, func() {
		// Failures are logged by RunCheck; the next tick retries.
		_, _ = RunCheck(ctx, src, eval, logger)
	})
	logger.Info("Maintenance tickers stopped")
}

func runLoop(ctx context.Context, ch <-chan time.Time, fn func()) {
	for {
		select {
		case <-ch:
			fn()
		case <-ctx.Done():
			return
		}
	}
}
