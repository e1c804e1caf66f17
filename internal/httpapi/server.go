package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/BrandonDHaskell/Frontdesk/server/internal/clock"
	"github.com/BrandonDHaskell/Frontdesk/server/internal/frontdesk/service"
	"github.com/BrandonDHaskell/Frontdesk/server/internal/frontdesk/store"
	"github.com/BrandonDHaskell/Frontdesk/server/internal/frontdesk/types"
	"github.com/BrandonDHaskell/Frontdesk/server/internal/metrics"
	"github.com/BrandonDHaskell/Frontdesk/server/internal/schedule"
)

const healthTimeout = 2 * time.Second

type Dependencies struct {
	Logger  *slog.Logger
	Addr    string
	Clock   clock.Clock
	Metrics *metrics.Metrics

	Passes     *service.PassService
	Sweeper    *service.ExpirySweeper
	Visitors   *service.VisitorService
	Violations *service.ViolationService
	Residents  *service.ResidentService
	Reports    *service.ReportService

	// SweepJob, when set, guards POST /v1/admin/sweep so a manual sweep
	// never overlaps a scheduled one.
	SweepJob *schedule.Job

	// Health is pinged by /healthz.  Nil means always healthy.
	Health store.Pinger

	CORSAllowedOrigins []string
}

type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
	clock      clock.Clock
	metrics    *metrics.Metrics

	passes     *service.PassService
	sweeper    *service.ExpirySweeper
	sweepJob   *schedule.Job
	visitors   *service.VisitorService
	violations *service.ViolationService
	residents  *service.ResidentService
	reports    *service.ReportService
	health     store.Pinger
}

func NewServer(d Dependencies) *Server {
	logger := d.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	clk := d.Clock
	if clk == nil {
		clk = clock.System
	}

	s := &Server{
		logger:     logger,
		clock:      clk,
		metrics:    d.Metrics,
		passes:     d.Passes,
		sweeper:    d.Sweeper,
		sweepJob:   d.SweepJob,
		visitors:   d.Visitors,
		violations: d.Violations,
		residents:  d.Residents,
		reports:    d.Reports,
		health:     d.Health,
	}

	mux := http.NewServeMux()

	mux.HandleFunc("POST /v1/passes", s.handleIssuePass)
	mux.HandleFunc("GET /v1/passes", s.handleListPasses)
	mux.HandleFunc("GET /v1/passes/lookup/{plate}", s.handleLookupPass)
	mux.HandleFunc("DELETE /v1/passes/{id}", s.handleRevokePass)
	mux.HandleFunc("DELETE /v1/passes/plate/{plate}", s.handleRevokeByPlate)

	mux.HandleFunc("POST /v1/visitors", s.handleCheckIn)
	mux.HandleFunc("GET /v1/visitors", s.handleListVisitors)
	mux.HandleFunc("POST /v1/visitors/{id}/checkout", s.handleCheckOut)

	mux.HandleFunc("POST /v1/violations", s.handleRecordViolation)
	mux.HandleFunc("GET /v1/violations/{plate}", s.handleViolationHistory)

	mux.HandleFunc("GET /v1/residents", s.handleListResidents)
	mux.HandleFunc("PUT /v1/residents/{unit}", s.handleSaveResident)
	mux.HandleFunc("DELETE /v1/residents/{unit}", s.handleDeleteResident)

	mux.HandleFunc("GET /v1/reports/violations", s.handleViolationSummary)
	mux.HandleFunc("GET /v1/reports/expirations", s.handleExpirationForecast)

	mux.HandleFunc("POST /v1/admin/sweep", s.handleSweep)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("GET /metrics", d.Metrics.Handler())

	handler := corsMiddleware(d.CORSAllowedOrigins, loggingMiddleware(logger, d.Metrics, mux))

	s.httpServer = &http.Server{
		Addr:              d.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return s
}

func (s *Server) Handler() http.Handler { return s.httpServer.Handler }

func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) now() string { return formatTime(s.clock.Now()) }

// decode reads the body into dst and answers 400 itself on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := decodeBody(r, dst); err != nil {
		if errors.Is(err, errBodyTooLarge) {
			writeError(w, r, http.StatusRequestEntityTooLarge, "body_too_large", err.Error())
			return false
		}
		writeError(w, r, http.StatusBadRequest, "bad_body", "invalid request body")
		return false
	}
	return true
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code, msg string) {
	writeResponse(w, r, status, types.ErrorResponse{Error: code, Message: msg})
}

// writeInvalidField answers 400 for a malformed path or query value, in the
// same shape as a service validation failure.
func writeInvalidField(w http.ResponseWriter, r *http.Request, field, msg string) {
	ve := &service.ValidationError{FieldErrors: map[string]string{field: msg}}
	writeResponse(w, r, http.StatusBadRequest, types.ErrorResponse{
		Error:   "validation_failed",
		Message: ve.Error(),
		Fields:  ve.FieldErrors,
	})
}

// writeServiceError maps service errors onto status codes.  Anything it
// does not recognise is logged and reported as a 500 without detail.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		writeResponse(w, r, http.StatusBadRequest, types.ErrorResponse{
			Error:   "validation_failed",
			Message: ve.Error(),
			Fields:  ve.FieldErrors,
		})
	case errors.Is(err, service.ErrNotFound):
		writeError(w, r, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, service.ErrAlreadyCheckedOut):
		writeError(w, r, http.StatusConflict, "already_checked_out", err.Error())
	case errors.Is(err, schedule.ErrAlreadyRunning):
		writeError(w, r, http.StatusConflict, "sweep_running", "a sweep is already in progress")
	case errors.Is(err, service.ErrStorageUnavailable):
		s.logger.Error(op+" failed", "error", err)
		writeError(w, r, http.StatusInternalServerError, "storage_unavailable", "storage is unavailable, try again")
	default:
		s.logger.Error(op+" failed", "error", err)
		writeError(w, r, http.StatusInternalServerError, "internal_error", "unexpected server error")
	}
}

func (s *Server) handleSweep(w http.ResponseWriter, r *http.Request) {
	var removed int64
	sweep := func(ctx context.Context) error {
		n, err := s.sweeper.Sweep(ctx)
		removed = n
		return err
	}

	var err error
	if s.sweepJob != nil {
		err = s.sweepJob.TriggerFunc(r.Context(), sweep)
	} else {
		err = sweep(r.Context())
	}
	if err != nil {
		s.writeServiceError(w, r, "manual sweep", err)
		return
	}

	writeResponse(w, r, http.StatusOK, types.SweepResponse{Removed: removed, ServerTime: s.now()})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.health != nil {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()
		if err := s.health.Ping(ctx); err != nil {
			s.logger.Warn("health check failed", "error", err)
			writeResponse(w, r, http.StatusServiceUnavailable, types.HealthResponse{Status: "unavailable", ServerTime: s.now()})
			return
		}
	}
	writeResponse(w, r, http.StatusOK, types.HealthResponse{Status: "ok", ServerTime: s.now()})
}
