package command

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/BrandonDHaskell/Frontdesk/server/internal/clock"
	"github.com/BrandonDHaskell/Frontdesk/server/internal/frontdesk/service"
	"github.com/BrandonDHaskell/Frontdesk/server/internal/grpcapi"
	"github.com/BrandonDHaskell/Frontdesk/server/internal/httpapi"
	"github.com/BrandonDHaskell/Frontdesk/server/internal/metrics"
)

const shutdownTimeout = 5 * time.Second

func runServe(cmd *cobra.Command, _ []string) (err error) {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Bind the gRPC port first so a bad address fails before anything
	// else is running.
	var grpcLis net.Listener
	if cfg.GRPCAddr != "" {
		grpcLis, err = net.Listen("tcp", cfg.GRPCAddr)
		if err != nil {
			return fmt.Errorf("grpc listen: %w", err)
		}
		defer grpcLis.Close()
	}

	st, err := openStores(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer st.Close()

	clk := clock.System
	if cfg.Dev() {
		if err := st.seedDev(ctx, logger, clk.Now()); err != nil {
			return fmt.Errorf("seed dev data: %w", err)
		}
	}

	m := metrics.New()
	opts := []service.Option{service.WithLogger(logger), service.WithMetrics(m)}

	sweeper := service.NewExpirySweeper(st.passes, clk, opts...)
	sweepJob := sweeper.Job(service.SweepSchedule{
		Interval:   cfg.SweepInterval,
		Aligned:    cfg.SweepAlign,
		RunOnStart: cfg.SweepOnStart,
	})

	srv := httpapi.NewServer(httpapi.Dependencies{
		Logger:             logger,
		Addr:               cfg.HTTPAddr,
		Clock:              clk,
		Metrics:            m,
		Passes:             service.NewPassService(st.passes, clk, opts...),
		Sweeper:            sweeper,
		SweepJob:           sweepJob,
		Visitors:           service.NewVisitorService(st.visitors, clk, opts...),
		Violations:         service.NewViolationService(st.violations, clk, opts...),
		Residents:          service.NewResidentService(st.residents, clk, opts...),
		Reports:            service.NewReportService(st.passes, st.violations, clk),
		Health:             st.pinger,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	sweepJob.Start(ctx)
	defer sweepJob.Stop()

	errCh := make(chan error, 2)

	go func() {
		logger.Info("http listening", "addr", cfg.HTTPAddr, "env", cfg.Env, "store", cfg.Store)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	var health *grpcapi.Server
	if grpcLis != nil {
		health = grpcapi.NewServer(grpcapi.Config{
			Pinger:   st.pinger,
			Interval: cfg.HealthInterval,
			Logger:   logger,
		})
		go func() {
			if err := health.Serve(ctx, grpcLis); err != nil {
				errCh <- fmt.Errorf("grpc server: %w", err)
			}
		}()
	}

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case err = <-errCh:
		logger.Error("server failed, shutting down", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if serr := srv.Shutdown(shutdownCtx); serr != nil {
		logger.Warn("http shutdown", "error", serr)
	}
	if health != nil {
		health.Stop()
	}
	return err
}
