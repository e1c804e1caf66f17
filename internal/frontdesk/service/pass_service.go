package service

import (
	"context"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/BrandonDHaskell/Frontdesk/server/internal/clock"
	"github.com/BrandonDHaskell/Frontdesk/server/internal/frontdesk/store"
	"github.com/BrandonDHaskell/Frontdesk/server/internal/metrics"
)

// MaxPassHours caps a single pass at one year.  Keep in sync with the
// lte tag on IssuePassParams.DurationHours.
const MaxPassHours = 24 * 365

type IssuePassParams struct {
	Plate         string  `json:"plate" validate:"required"`
	Unit          string  `json:"unit" validate:"required"`
	DurationHours float64 `json:"duration" validate:"gt=0,lte=8760"`
}

// PassStatus is a pass together with its validity at the time it was read.
type PassStatus struct {
	store.PassRecord
	Expired bool
}

func statusAt(p store.PassRecord, now time.Time) PassStatus {
	return PassStatus{PassRecord: p, Expired: !now.Before(p.ExpiresAt)}
}

type PassService struct {
	store   store.PassStore
	clock   clock.Clock
	newID   func() string
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewPassService(ps store.PassStore, clk clock.Clock, opts ...Option) *PassService {
	o := buildOptions(opts)
	return &PassService{
		store:   ps,
		clock:   clk,
		newID:   o.newID,
		logger:  o.logger,
		metrics: o.metrics,
	}
}

// Issue validates p and stores a new pass that expires DurationHours after
// now.
func (s *PassService) Issue(ctx context.Context, p IssuePassParams) (store.PassRecord, error) {
	p.Plate = strings.TrimSpace(p.Plate)
	p.Unit = strings.TrimSpace(p.Unit)
	if err := validateParams(p); err != nil {
		return store.PassRecord{}, err
	}

	issued := stamp(s.clock)
	rec := store.PassRecord{
		ID:        s.newID(),
		Plate:     normalizePlate(p.Plate),
		Unit:      p.Unit,
		IssuedAt:  issued,
		ExpiresAt: issued.Add(hoursToDuration(p.DurationHours)),
	}

	rec, err := s.store.InsertPass(ctx, rec)
	if err != nil {
		return store.PassRecord{}, storageError("insert pass", err)
	}

	s.metrics.PassIssued()
	s.logger.Info("parking pass issued",
		"pass_id", rec.ID,
		"plate", rec.Plate,
		"unit", rec.Unit,
		"expires_at", rec.ExpiresAt,
	)
	return rec, nil
}

// List returns every pass ordered by expiry, each evaluated against a single
// reading of the clock.
func (s *PassService) List(ctx context.Context) ([]PassStatus, error) {
	passes, err := s.store.ListPasses(ctx)
	if err != nil {
		return nil, storageError("list passes", err)
	}

	now := s.clock.Now()
	out := make([]PassStatus, 0, len(passes))
	for _, p := range passes {
		out = append(out, statusAt(p, now))
	}
	return out, nil
}

// Lookup reports the newest pass for plate.  found is false when the plate
// has no pass at all; an expired pass is still returned with Expired set.
func (s *PassService) Lookup(ctx context.Context, plate string) (PassStatus, bool, error) {
	plate = normalizePlate(plate)
	if plate == "" {
		return PassStatus{}, false, invalidField("plate", "is required")
	}

	p, found, err := s.store.FindPassByPlate(ctx, plate)
	if err != nil {
		return PassStatus{}, false, storageError("find pass", err)
	}
	if !found {
		return PassStatus{}, false, nil
	}
	return statusAt(p, s.clock.Now()), true, nil
}

func (s *PassService) Revoke(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return invalidField("id", "is required")
	}

	deleted, err := s.store.DeletePass(ctx, id)
	if err != nil {
		return storageError("delete pass", err)
	}
	if !deleted {
		return ErrNotFound
	}

	s.metrics.PassesRevoked(1)
	s.logger.Info("parking pass revoked", "pass_id", id)
	return nil
}

// RevokeByPlate removes every pass for plate and returns how many there
// were.
func (s *PassService) RevokeByPlate(ctx context.Context, plate string) (int64, error) {
	plate = normalizePlate(plate)
	if plate == "" {
		return 0, invalidField("plate", "is required")
	}

	n, err := s.store.DeletePassesByPlate(ctx, plate)
	if err != nil {
		return 0, storageError("delete passes by plate", err)
	}
	if n == 0 {
		return 0, ErrNotFound
	}

	s.metrics.PassesRevoked(n)
	s.logger.Info("parking passes revoked by plate", "plate", plate, "count", n)
	return n, nil
}

// hoursToDuration rounds to the millisecond, the precision passes are
// stored at.  Callers bound h first.
func hoursToDuration(h float64) time.Duration {
	ms := math.Round(h * float64(time.Hour/time.Millisecond))
	if ms < 1 {
		ms = 1
	}
	return time.Duration(ms) * time.Millisecond
}
