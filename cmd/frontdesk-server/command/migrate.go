package command

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/BrandonDHaskell/Frontdesk/server/internal/config"
	"github.com/BrandonDHaskell/Frontdesk/server/internal/db"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations and exit",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if cfg.Store != config.StoreSQLite {
			return fmt.Errorf("migrate needs store=%s, configured store is %q", config.StoreSQLite, cfg.Store)
		}

		conn, err := db.Open(cmd.Context(), db.Config{Path: cfg.DBPath, Logger: logger, SkipMigrations: true})
		if err != nil {
			return err
		}
		defer conn.Close()

		applied, err := db.Migrate(cmd.Context(), conn)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "applied %d migrations to %s\n", applied, cfg.DBPath)
		return nil
	},
}
