// Command scout is the Comeback Scout operations CLI.
//
// Usage:
//
//	scout migrate
//	scout simulate --batch 6
//	scout check
//	scout alerts list --limit 20
//	scout alerts mark-read 3f0c9a52-...
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/albapepper/comeback-scout/internal/alerts"
	"github.com/albapepper/comeback-scout/internal/config"
	"github.com/albapepper/comeback-scout/internal/logging"
	"github.com/albapepper/comeback-scout/internal/maintenance"
	"github.com/albapepper/comeback-scout/internal/notifications"
	"github.com/albapepper/comeback-scout/internal/roster"
	"github.com/albapepper/comeback-scout/internal/simulator"
)

// newSenders is swapped in tests.
var newSenders = notifications.FromConfig

// Logs go to stderr so stdout stays pipeable JSON.
var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	if err := rootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd(out io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:          "scout",
		Short:        "Comeback Scout operations CLI",
		SilenceUsage: true,
	}
	root.SetOut(out)

	root.AddCommand(migrateCmd())
	root.AddCommand(simulateCmd())
	root.AddCommand(checkCmd())
	root.AddCommand(alertsCmd())
	return root
}

// --------------------------------------------------------------------------
// migrate / simulate / check
// --------------------------------------------------------------------------

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the alert table and indexes",
		RunE: func(cmd *cobra.Command, args []string) error {
			// runWithStore applies the schema; nothing else to do.
			return runWithStore(func(ctx context.Context, cfg *config.Config, store alerts.Store) error {
				logger.Info("Alert storage migrated", "driver", cfg.StorageDriver, "table", config.AlertsTable)
				return nil
			})
		},
	}
}

func simulateCmd() *cobra.Command {
	var batch int
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Print one simulated batch of live matches as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if batch <= 0 {
				batch = cfg.MatchBatchSize
			}
			rs, err := roster.Load(cfg.RosterFile)
			if err != nil {
				return err
			}
			gen := simulator.New(rs, simulator.WithBatchSize(batch))
			return writeJSON(cmd.OutOrStdout(), gen.Generate())
		},
	}
	cmd.Flags().IntVar(&batch, "batch", 0, "Matches per batch (default MATCH_BATCH_SIZE)")
	return cmd
}

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Run one evaluate-and-alert pass over a fresh batch",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithStore(func(ctx context.Context, cfg *config.Config, store alerts.Store) error {
				rs, err := roster.Load(cfg.RosterFile)
				if err != nil {
					return err
				}
				gen := simulator.New(rs, simulator.WithBatchSize(cfg.MatchBatchSize))

				senders, err := newSenders(cfg)
				if err != nil {
					return fmt.Errorf("configure notification senders: %w", err)
				}
				var opts []alerts.ManagerOption
				dispatcher := notifications.NewDispatcher(logger, senders...)
				if dispatcher != nil {
					opts = append(opts, alerts.WithNotifier(dispatcher))
				}

				// The worker drains the queue once stopWorker is called, so every
				// alert created below is delivered before the command exits.
				workerCtx, stopWorker := context.WithCancel(ctx)
				done := make(chan struct{})
				go func() {
					defer close(done)
					dispatcher.StartWorker(workerCtx)
				}()

				created, err := maintenance.RunCheck(ctx, gen, alerts.NewManager(store, logger, opts...), logger)
				stopWorker()
				<-done
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), map[string]int{"alerts_created": created})
			})
		},
	}
}

// --------------------------------------------------------------------------
// alerts command
// --------------------------------------------------------------------------

func alertsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alerts",
		Short: "Inspect and update stored comeback alerts",
	}
	cmd.AddCommand(alertsListCmd())
	cmd.AddCommand(alertsMarkReadCmd())
	return cmd
}

func alertsListCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print stored alerts, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithStore(func(ctx context.Context, cfg *config.Config, store alerts.Store) error {
				if limit <= 0 {
					limit = cfg.AlertsLimit
				}
				list, err := alerts.NewManager(store, logger).ListAlerts(ctx, limit)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), list)
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum alerts to print (default ALERTS_LIMIT)")
	return cmd
}

func alertsMarkReadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mark-read <id>",
		Short: "Mark an alert as read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithStore(func(ctx context.Context, cfg *config.Config, store alerts.Store) error {
				err := alerts.NewManager(store, logger).MarkRead(ctx, args[0])
				if errors.Is(err, alerts.ErrNotFound) {
					return fmt.Errorf("alert %q not found", args[0])
				}
				if err != nil {
					return err
				}
				logger.Info("Alert marked read", "id", args[0])
				return nil
			})
		},
	}
}

// --------------------------------------------------------------------------
// Shared setup
// --------------------------------------------------------------------------

// runWithStore handles config loading, storage connection, schema setup and
// context cancellation. Init is idempotent, so every command works against a
// fresh database.
func runWithStore(fn func(ctx context.Context, cfg *config.Config, store alerts.Store) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger = logging.NewLoggerTo(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	store, closeStore, err := alerts.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	if err := store.Init(ctx); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return fn(ctx, cfg, store)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
