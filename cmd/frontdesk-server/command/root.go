// Package command holds the frontdesk-server CLI.  The root command runs
// the server; sub-commands perform one-off maintenance against the
// configured store.
//
//	frontdesk-server [-c config.yaml] [--env-file .env]   # serve
//	frontdesk-server sweep                               # one expiry sweep
//	frontdesk-server migrate                             # apply migrations
package command

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/BrandonDHaskell/Frontdesk/server/internal/config"
)

var (
	cfgPath string
	envFile string

	// Populated by PersistentPreRunE for every sub-command.
	cfg    config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "frontdesk-server",
	Short: "Front desk service for parking passes, visitors and violations",
	Long: `Front desk service for a residential property.
It issues temporary parking passes and sweeps them once they expire,
keeps the visitor log and the violation log, and maintains the
resident roster. The root command starts the HTTP API, the optional
gRPC health server and the hourly expiry sweep.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
	RunE:              runServe,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "YAML config file path")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	rootCmd.AddCommand(sweepCmd, migrateCmd)
}

func loadConfig(_ *cobra.Command, _ []string) error {
	if envFile != "" {
		// godotenv never overrides variables that are already set.
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	c, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	cfg = c
	logger = newLogger(c)
	return nil
}

// newLogger logs JSON in prod and human-readable text in dev.
func newLogger(c config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.LogLevel}
	var h slog.Handler
	if c.Dev() {
		h = slog.NewTextHandler(os.Stdout, opts)
	} else {
		h = slog.NewJSONHandler(os.Stdout, opts)
	}
	return slog.New(h).With("service", "frontdesk")
}
