package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/BrandonDHaskell/Frontdesk/server/internal/clock"
	"github.com/BrandonDHaskell/Frontdesk/server/internal/frontdesk/store"
)

const (
	ActionTowed   = "towed"
	ActionBooted  = "booted"
	ActionWarning = "warning"
)

// Actions lists every violation action in display order.
var Actions = []string{ActionTowed, ActionBooted, ActionWarning}

type RecordViolationParams struct {
	Plate  string `json:"plate" validate:"required"`
	Reason string `json:"reason" validate:"required"`
	Action string `json:"action" validate:"required,oneof=towed booted warning"`
	Notes  string `json:"notes"`
}

type ViolationService struct {
	store  store.ViolationStore
	clock  clock.Clock
	logger *slog.Logger
}

func NewViolationService(vs store.ViolationStore, clk clock.Clock, opts ...Option) *ViolationService {
	o := buildOptions(opts)
	return &ViolationService{store: vs, clock: clk, logger: o.logger}
}

func (s *ViolationService) Record(ctx context.Context, p RecordViolationParams) (store.ViolationRecord, error) {
	p.Plate = normalizePlate(p.Plate)
	p.Reason = strings.TrimSpace(p.Reason)
	p.Action = strings.ToLower(strings.TrimSpace(p.Action))
	if err := validateParams(p); err != nil {
		return store.ViolationRecord{}, err
	}

	rec, err := s.store.InsertViolation(ctx, store.ViolationRecord{
		Plate:      p.Plate,
		Reason:     p.Reason,
		Action:     p.Action,
		Notes:      strings.TrimSpace(p.Notes),
		RecordedAt: stamp(s.clock),
	})
	if err != nil {
		return store.ViolationRecord{}, storageError("insert violation", err)
	}

	s.logger.Info("violation recorded", "violation_id", rec.ID, "plate", rec.Plate, "action", rec.Action)
	return rec, nil
}

// History returns the violations logged against plate, newest first.
func (s *ViolationService) History(ctx context.Context, plate string) ([]store.ViolationRecord, error) {
	plate = normalizePlate(plate)
	if plate == "" {
		return nil, invalidField("plate", "is required")
	}

	vs, err := s.store.ListViolationsByPlate(ctx, plate)
	if err != nil {
		return nil, storageError("list violations", err)
	}
	return vs, nil
}
