package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/BrandonDHaskell/Frontdesk/server/internal/clock"
	"github.com/BrandonDHaskell/Frontdesk/server/internal/frontdesk/store"
)

type CheckInParams struct {
	Name      string `json:"name" validate:"required"`
	Unit      string `json:"unit" validate:"required"`
	Type      string `json:"type" validate:"required"`
	GuestPass string `json:"guest_pass"`
	Notes     string `json:"notes"`
}

type VisitorService struct {
	store  store.VisitorStore
	clock  clock.Clock
	logger *slog.Logger
}

func NewVisitorService(vs store.VisitorStore, clk clock.Clock, opts ...Option) *VisitorService {
	o := buildOptions(opts)
	return &VisitorService{store: vs, clock: clk, logger: o.logger}
}

func (s *VisitorService) CheckIn(ctx context.Context, p CheckInParams) (store.VisitorRecord, error) {
	p.Name = strings.TrimSpace(p.Name)
	p.Unit = strings.TrimSpace(p.Unit)
	p.Type = strings.TrimSpace(p.Type)
	if err := validateParams(p); err != nil {
		return store.VisitorRecord{}, err
	}

	rec, err := s.store.InsertVisitor(ctx, store.VisitorRecord{
		Name:      p.Name,
		Unit:      p.Unit,
		Type:      p.Type,
		GuestPass: strings.TrimSpace(p.GuestPass),
		Notes:     strings.TrimSpace(p.Notes),
		CheckInAt: stamp(s.clock),
	})
	if err != nil {
		return store.VisitorRecord{}, storageError("insert visitor", err)
	}

	s.logger.Info("visitor checked in", "visitor_id", rec.ID, "unit", rec.Unit, "type", rec.Type)
	return rec, nil
}

// CheckOut closes an open visit.  A visit can be closed only once; later
// attempts return ErrAlreadyCheckedOut and leave the stored time alone.
func (s *VisitorService) CheckOut(ctx context.Context, id int64) (store.VisitorRecord, error) {
	if id <= 0 {
		return store.VisitorRecord{}, invalidField("id", "must be a positive integer")
	}

	v, found, err := s.store.FindVisitor(ctx, id)
	if err != nil {
		return store.VisitorRecord{}, storageError("find visitor", err)
	}
	if !found {
		return store.VisitorRecord{}, ErrNotFound
	}
	if v.CheckedOut() {
		return store.VisitorRecord{}, ErrAlreadyCheckedOut
	}

	now := stamp(s.clock)
	changed, err := s.store.SetCheckOutTime(ctx, id, now)
	if err != nil {
		return store.VisitorRecord{}, storageError("check out visitor", err)
	}
	if !changed {
		// Another check-out got there between the read and the update.
		return store.VisitorRecord{}, ErrAlreadyCheckedOut
	}

	v.CheckOutAt = &now
	s.logger.Info("visitor checked out", "visitor_id", id)
	return v, nil
}

func (s *VisitorService) List(ctx context.Context) ([]store.VisitorRecord, error) {
	vs, err := s.store.ListVisitors(ctx)
	if err != nil {
		return nil, storageError("list visitors", err)
	}
	return vs, nil
}
