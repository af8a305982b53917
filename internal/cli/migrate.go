package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"trivia-challenge/internal/config"
	"trivia-challenge/internal/infra/postgres"
	"trivia-challenge/internal/infra/sqlite"
)

// NewMigrateCmd applies database migrations for the configured SQL backend.
func NewMigrateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(*configPath)
			if err != nil {
				return err
			}
			defer rt.Close()

			switch rt.cfg.Leaderboard.Backend {
			case config.BackendPostgres:
				err = postgres.Migrate(cmd.Context(), rt.cfg.Postgres.URL, rt.log)
			case config.BackendSQLite:
				db, openErr := sqlite.Open(cmd.Context(), rt.cfg.SQLite.Path, rt.log)
				if openErr != nil {
					return openErr
				}
				err = db.Close()
			default:
				return fmt.Errorf("backend %q has no migrations", rt.cfg.Leaderboard.Backend)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}
}
