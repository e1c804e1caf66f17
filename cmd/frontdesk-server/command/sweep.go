package command

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/BrandonDHaskell/Frontdesk/server/internal/clock"
	"github.com/BrandonDHaskell/Frontdesk/server/internal/frontdesk/service"
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Remove expired parking passes once and exit",
	Long: `Remove every parking pass whose expiry has been reached, using the
configured store, then print how many were removed. Useful from an
external scheduler when the server's own sweep is disabled.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		st, err := openStores(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		defer st.Close()

		sweeper := service.NewExpirySweeper(st.passes, clock.System, service.WithLogger(logger))
		removed, err := sweeper.Sweep(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "removed %d expired passes\n", removed)
		return nil
	},
}
