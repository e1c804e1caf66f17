// Package grpcapi serves the standard grpc.health.v1 service so load
// balancers and orchestrators can probe the front desk over gRPC.
package grpcapi

import (
	"context"
	"log/slog"
	"net"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/BrandonDHaskell/Frontdesk/server/internal/frontdesk/store"
	"github.com/BrandonDHaskell/Frontdesk/server/internal/schedule"
)

// ServiceName is the name clients pass in HealthCheckRequest.Service.
const ServiceName = "frontdesk"

const pingTimeout = 2 * time.Second

type Config struct {
	Pinger   store.Pinger
	Interval time.Duration
	Logger   *slog.Logger
}

type Server struct {
	grpc    *grpc.Server
	health  *health.Server
	pinger  store.Pinger
	logger  *slog.Logger
	checker *schedule.Job
}

// NewServer registers the health service.  Both ServiceName and the
// overall "" service start NOT_SERVING until the first check passes.
func NewServer(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	s := &Server{
		grpc:   grpc.NewServer(),
		health: health.NewServer(),
		pinger: cfg.Pinger,
		logger: logger,
	}
	healthpb.RegisterHealthServer(s.grpc, s.health)
	s.setStatus(healthpb.HealthCheckResponse_NOT_SERVING)

	s.checker = schedule.New("health-check", cfg.Interval, s.Check,
		schedule.WithRunOnStart(),
		schedule.WithLogger(logger),
	)
	return s
}

// Check pings the store once and publishes the result.  The returned error
// is the ping failure, if any.
func (s *Server) Check(ctx context.Context) error {
	if s.pinger == nil {
		s.setStatus(healthpb.HealthCheckResponse_SERVING)
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := s.pinger.Ping(ctx); err != nil {
		s.setStatus(healthpb.HealthCheckResponse_NOT_SERVING)
		return err
	}
	s.setStatus(healthpb.HealthCheckResponse_SERVING)
	return nil
}

func (s *Server) setStatus(st healthpb.HealthCheckResponse_ServingStatus) {
	s.health.SetServingStatus(ServiceName, st)
	s.health.SetServingStatus("", st)
}

// Serve starts the periodic checker and blocks serving lis until Stop.
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	s.checker.Start(ctx)
	s.logger.Info("grpc health listening", "addr", lis.Addr().String())
	return s.grpc.Serve(lis)
}

// Stop marks every service NOT_SERVING, stops the checker and drains
// in-flight RPCs.
func (s *Server) Stop() {
	s.health.Shutdown()
	s.checker.Stop()
	s.grpc.GracefulStop()
}
