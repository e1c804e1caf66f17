// Package config loads server settings from defaults, an optional YAML
// file and FRONTDESK_* environment variables, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "FRONTDESK"

const (
	StoreSQLite = "sqlite"
	StoreMemory = "memory"
)

type Config struct {
	HTTPAddr string
	GRPCAddr string // empty disables the gRPC health server

	Env    string // "dev" | "prod"
	Store  string // "sqlite" | "memory"
	DBPath string // e.g. "./data/frontdesk.db"

	// Expiry sweep
	SweepInterval time.Duration
	SweepAlign    bool // run on interval boundaries (top of the hour)
	SweepOnStart  bool

	HealthInterval     time.Duration
	CORSAllowedOrigins []string
	LogLevel           slog.Level
}

func (c Config) Dev() bool { return c.Env == "dev" }

func setDefaults(v *viper.Viper) {
	v.SetDefault("http_addr", ":3000")
	v.SetDefault("grpc_addr", ":9090")
	v.SetDefault("env", "dev")
	v.SetDefault("store", StoreSQLite)
	v.SetDefault("db_path", "./data/frontdesk.db")
	v.SetDefault("sweep_interval", time.Hour)
	v.SetDefault("sweep_align", true)
	v.SetDefault("sweep_on_start", true)
	v.SetDefault("health_interval", 30*time.Second)
	v.SetDefault("cors_allowed_origins", []string{"*"})
	v.SetDefault("log_level", "info")
}

// Load reads the configuration.  path may be empty, in which case only
// defaults and the environment are used.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	env := strings.ToLower(strings.TrimSpace(v.GetString("env")))
	if env != "dev" && env != "prod" {
		// fail-soft: treat unknown as dev
		env = "dev"
	}

	cfg := Config{
		HTTPAddr:           strings.TrimSpace(v.GetString("http_addr")),
		GRPCAddr:           strings.TrimSpace(v.GetString("grpc_addr")),
		Env:                env,
		Store:              strings.ToLower(strings.TrimSpace(v.GetString("store"))),
		DBPath:             strings.TrimSpace(v.GetString("db_path")),
		SweepInterval:      v.GetDuration("sweep_interval"),
		SweepAlign:         v.GetBool("sweep_align"),
		SweepOnStart:       v.GetBool("sweep_on_start"),
		HealthInterval:     v.GetDuration("health_interval"),
		CORSAllowedOrigins: splitCSV(v.GetStringSlice("cors_allowed_origins")),
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(v.GetString("log_level"))); err != nil {
		return Config{}, fmt.Errorf("log_level: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	var errs []error
	if c.HTTPAddr == "" {
		errs = append(errs, errors.New("http_addr must be set"))
	}
	switch c.Store {
	case StoreSQLite:
		if c.DBPath == "" {
			errs = append(errs, errors.New("db_path must be set when store is sqlite"))
		}
	case StoreMemory:
	default:
		errs = append(errs, fmt.Errorf("store must be %q or %q, got %q", StoreSQLite, StoreMemory, c.Store))
	}
	if c.SweepInterval <= 0 {
		errs = append(errs, fmt.Errorf("sweep_interval must be positive, got %s", c.SweepInterval))
	}
	if c.HealthInterval <= 0 {
		errs = append(errs, fmt.Errorf("health_interval must be positive, got %s", c.HealthInterval))
	}
	return errors.Join(errs...)
}

// splitCSV flattens values that may themselves be comma separated, as
// they are when they come from a single environment variable.
func splitCSV(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		for _, p := range strings.Split(v, ",") {
			p = strings.TrimSpace(p)
			if p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
