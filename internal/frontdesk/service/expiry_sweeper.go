package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/BrandonDHaskell/Frontdesk/server/internal/clock"
	"github.com/BrandonDHaskell/Frontdesk/server/internal/frontdesk/store"
	"github.com/BrandonDHaskell/Frontdesk/server/internal/metrics"
	"github.com/BrandonDHaskell/Frontdesk/server/internal/schedule"
)

// SweepSchedule controls how often the background sweep runs.
type SweepSchedule struct {
	Interval time.Duration

	// Aligned puts runs on interval boundaries (top of the hour for the
	// default hourly interval).
	Aligned bool

	RunOnStart bool
}

// ExpirySweeper deletes passes whose expiry has been reached.
type ExpirySweeper struct {
	store   store.PassStore
	clock   clock.Clock
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewExpirySweeper(ps store.PassStore, clk clock.Clock, opts ...Option) *ExpirySweeper {
	o := buildOptions(opts)
	return &ExpirySweeper{
		store:   ps,
		clock:   clk,
		logger:  o.logger,
		metrics: o.metrics,
	}
}

// Sweep removes, in one batch, every pass with ExpiresAt <= now and
// returns how many were removed.
func (s *ExpirySweeper) Sweep(ctx context.Context) (int64, error) {
	started := time.Now()
	now := s.clock.Now()

	removed, err := s.store.DeleteExpiredPasses(ctx, now)
	s.metrics.SweepFinished(removed, time.Since(started), err)
	if err != nil {
		return 0, storageError("sweep expired passes", err)
	}

	if removed > 0 {
		s.logger.Info("removed expired passes", "removed", removed, "cutoff", now)
	} else {
		s.logger.Info("no expired passes found", "cutoff", now)
	}
	return removed, nil
}

// Job wraps Sweep in a schedule.Job.  Failed runs are logged by the job
// and retried on the next tick.
func (s *ExpirySweeper) Job(cfg SweepSchedule) *schedule.Job {
	opts := []schedule.Option{
		schedule.WithLogger(s.logger),
		schedule.WithClock(s.clock),
	}
	if cfg.Aligned {
		opts = append(opts, schedule.WithAlignment())
	}
	if cfg.RunOnStart {
		opts = append(opts, schedule.WithRunOnStart())
	}

	return schedule.New("expiry-sweep", cfg.Interval, func(ctx context.Context) error {
		_, err := s.Sweep(ctx)
		return err
	}, opts...)
}
