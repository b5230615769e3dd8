// Package main is herdctl, the Herdbook operator CLI. It shares the
// configuration and wiring of the API server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/herdbook/herdbook/internal/app"
	"github.com/herdbook/herdbook/internal/config"
)

// cli carries what every subcommand needs. open is replaced in tests.
type cli struct {
	log  *slog.Logger
	open func(ctx context.Context) (*app.App, config.Config, error)
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	c := &cli{log: logger, open: openFromEnv(logger)}
	if err := c.rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// openFromEnv loads the environment configuration and builds the App from it.
func openFromEnv(log *slog.Logger) func(ctx context.Context) (*app.App, config.Config, error) {
	return func(ctx context.Context) (*app.App, config.Config, error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, config.Config{}, err
		}
		a, err := app.New(ctx, cfg, log, nil)
		if err != nil {
			return nil, config.Config{}, err
		}
		return a, cfg, nil
	}
}

func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "herdctl",
		Short: "Operate a Herdbook farm store",
		Long: `herdctl works directly against the store configured for the API server
(STORE_DRIVER, SQLITE_PATH, DATABASE_URL, S3_BUCKET, ...).

Available subcommands:
  migrate - Prepare the store and report how many records it holds
  backup  - Write every collection as one JSON document
  restore - Replace every collection from a backup document
  ask     - Ask the advice provider a free-form question
  launch  - Resolve the attribution shell start URL`,
		SilenceUsage: true,
	}
	root.AddCommand(c.migrateCmd(), c.backupCmd(), c.restoreCmd(), c.askCmd(), c.launchCmd())
	return root
}

// withApp opens the App for the duration of fn.
func (c *cli) withApp(cmd *cobra.Command, fn func(a *app.App, cfg config.Config) error) error {
	a, cfg, err := c.open(cmd.Context())
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			c.log.Warn("store close error", "error", err)
		}
	}()
	return fn(a, cfg)
}

func (c *cli) migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Prepare the configured store",
		Long: `Open the configured store. SQL drivers apply any pending schema
migrations on open; the collections are then loaded and counted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withApp(cmd, func(a *app.App, _ config.Config) error {
				s := a.Farm.Snapshot()
				fmt.Fprintf(cmd.OutOrStdout(),
					"store ready (%s): %d goats, %d feeding schedules, %d breeding records, %d equipment, %d pastures, %d consumption records\n",
					a.Store.Driver(), len(s.Goats), len(s.FeedingSchedules), len(s.BreedingRecords),
					len(s.Equipment), len(s.Pastures), len(s.FeedConsumption))
				return nil
			})
		},
	}
}
