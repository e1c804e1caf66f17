package store

import (
	"context"
	"time"
)

// PassRecord is a temporary parking pass.  ExpiresAt is fixed at issuance;
// whether a pass is still valid is always derived from it at read time.
type PassRecord struct {
	ID        string
	Plate     string
	Unit      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// PassStore persists parking passes.  Implementations must serialize
// mutations so a batch expiry delete and a concurrent delete-by-id never
// both remove (and report) the same pass.
type PassStore interface {
	InsertPass(ctx context.Context, rec PassRecord) (PassRecord, error)

	// ListPasses returns every pass ordered by ExpiresAt, then IssuedAt,
	// then ID, all ascending.
	ListPasses(ctx context.Context) ([]PassRecord, error)

	// FindPassByPlate returns the newest pass (greatest IssuedAt) for an
	// already-normalized plate.
	FindPassByPlate(ctx context.Context, plate string) (PassRecord, bool, error)

	DeletePass(ctx context.Context, id string) (bool, error)
	DeletePassesByPlate(ctx context.Context, plate string) (int64, error)

	// DeleteExpiredPasses removes every pass with ExpiresAt <= at in one
	// batch and returns how many were removed.
	DeleteExpiredPasses(ctx context.Context, at time.Time) (int64, error)
}
