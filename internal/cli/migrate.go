package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"thewall/internal/database"
	"thewall/internal/logger"
)

// NewMigrateCommand creates the migrate command.
func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate <up|down|status>",
		Short: "Apply, roll back or inspect database migrations",
		Long: `Run the embedded schema migrations against the configured database.

  up      apply all pending migrations
  down    roll back the most recent migration
  status  list migrations and whether they are applied

Example:
  thewall migrate up
  thewall migrate status --env-file ./prod.env`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{database.MigrateUp, database.MigrateDown, database.MigrateStatus},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(cmd, rootOpts, args[0])
		},
	}
	return cmd
}

func runMigrate(cmd *cobra.Command, rootOpts *RootOptions, direction string) error {
	switch direction {
	case database.MigrateUp, database.MigrateDown, database.MigrateStatus:
	default:
		return fmt.Errorf("unknown migration direction %q: must be up, down or status", direction)
	}

	cfg, err := rootOpts.loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.New(cfg.Log)

	db, err := database.Open(cfg.Database, log)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.Migrate(cmd.Context(), db, direction, log); err != nil {
		return err
	}

	version, err := database.SchemaVersion(cmd.Context(), db)
	if err != nil {
		return err
	}
	log.Info().Str("direction", direction).Int64("version", version).Msg("migration finished")
	return nil
}
