// Command mlactl inspects and seeds an MLA Connect database from the shell.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/rpggio/mlaconnect/internal/app"
	"github.com/rpggio/mlaconnect/internal/config"
	"github.com/rpggio/mlaconnect/internal/dashboard"
	"github.com/rpggio/mlaconnect/internal/sqlite"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// rootOptions carries the persistent flags and the loaded config to every
// subcommand.
type rootOptions struct {
	dbPath string
	tenant string
	cfg    config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "mlactl",
		Short: "Inspect and seed an MLA Connect database",
		Long: `mlactl works directly against the SQLite database used by the server.

Available subcommands:
  tables - List the dashboard tables and their columns
  query  - Filter, sort and page through a table
  seed   - Load a YAML fixture
  apikey - Manage API keys`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			opts.cfg = cfg
			if opts.dbPath == "" {
				opts.dbPath = cfg.DB.Path
			}
			opts.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
				Level: slog.LevelWarn,
			}))
			return nil
		},
	}

	root.PersistentFlags().StringVar(&opts.dbPath, "db", "", "database path (default from MLACONNECT_DB_PATH or config)")
	root.PersistentFlags().StringVar(&opts.tenant, "tenant", "default", "tenant ID")

	root.AddCommand(
		newTablesCmd(opts),
		newQueryCmd(opts),
		newSeedCmd(opts),
		newAPIKeyCmd(opts),
	)
	return root
}

// open migrates the database and wires the services. The caller closes
// a.DB.
func (o *rootOptions) open() (*app.App, error) {
	db, err := sqlite.New(o.dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.RunMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return app.New(db, o.logger,
		dashboard.WithPageSize(o.cfg.Table.PageSize),
		dashboard.WithLocale(o.cfg.Table.Tag()),
	), nil
}
