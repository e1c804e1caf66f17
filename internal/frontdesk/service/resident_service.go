package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/BrandonDHaskell/Frontdesk/server/internal/clock"
	"github.com/BrandonDHaskell/Frontdesk/server/internal/frontdesk/store"
)

type SaveResidentParams struct {
	Unit         string `json:"unit" validate:"required"`
	Name         string `json:"name" validate:"required"`
	Phone        string `json:"phone"`
	Email        string `json:"email" validate:"omitempty,email"`
	PrimaryPlate string `json:"primary_plate" validate:"required"`
}

type ResidentService struct {
	store  store.ResidentStore
	clock  clock.Clock
	logger *slog.Logger
}

func NewResidentService(rs store.ResidentStore, clk clock.Clock, opts ...Option) *ResidentService {
	o := buildOptions(opts)
	return &ResidentService{store: rs, clock: clk, logger: o.logger}
}

// Save creates or replaces the resident of p.Unit.  created reports which
// of the two happened.
func (s *ResidentService) Save(ctx context.Context, p SaveResidentParams) (store.ResidentRecord, bool, error) {
	p.Unit = strings.TrimSpace(p.Unit)
	p.Name = strings.TrimSpace(p.Name)
	p.Phone = strings.TrimSpace(p.Phone)
	p.Email = strings.TrimSpace(p.Email)
	p.PrimaryPlate = normalizePlate(p.PrimaryPlate)
	if err := validateParams(p); err != nil {
		return store.ResidentRecord{}, false, err
	}

	now := stamp(s.clock)
	rec, created, err := s.store.UpsertResident(ctx, store.ResidentRecord{
		Unit:         p.Unit,
		Name:         p.Name,
		Phone:        p.Phone,
		Email:        p.Email,
		PrimaryPlate: p.PrimaryPlate,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return store.ResidentRecord{}, false, storageError("upsert resident", err)
	}

	s.logger.Info("resident saved", "unit", rec.Unit, "created", created)
	return rec, created, nil
}

func (s *ResidentService) List(ctx context.Context) ([]store.ResidentRecord, error) {
	rs, err := s.store.ListResidents(ctx)
	if err != nil {
		return nil, storageError("list residents", err)
	}
	return rs, nil
}

// Search matches query against unit, name and primary plate.  An empty
// query is the same as List.
func (s *ResidentService) Search(ctx context.Context, query string) ([]store.ResidentRecord, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.List(ctx)
	}
	rs, err := s.store.SearchResidents(ctx, query)
	if err != nil {
		return nil, storageError("search residents", err)
	}
	return rs, nil
}

func (s *ResidentService) Delete(ctx context.Context, unit string) error {
	unit = strings.TrimSpace(unit)
	if unit == "" {
		return invalidField("unit", "is required")
	}

	deleted, err := s.store.DeleteResident(ctx, unit)
	if err != nil {
		return storageError("delete resident", err)
	}
	if !deleted {
		return ErrNotFound
	}

	s.logger.Info("resident deleted", "unit", unit)
	return nil
}
