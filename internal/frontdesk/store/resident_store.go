package store

import (
	"context"
	"time"
)

type ResidentRecord struct {
	Unit         string
	Name         string
	Phone        string
	Email        string
	PrimaryPlate string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ResidentStore keeps one resident per unit.
type ResidentStore interface {
	// UpsertResident replaces any resident for rec.Unit, keeping the
	// original CreatedAt, and reports whether a new row was created.
	UpsertResident(ctx context.Context, rec ResidentRecord) (ResidentRecord, bool, error)

	// ListResidents returns residents ordered by unit.
	ListResidents(ctx context.Context) ([]ResidentRecord, error)

	// SearchResidents matches query case-insensitively as a substring of
	// unit, name or primary plate.
	SearchResidents(ctx context.Context, query string) ([]ResidentRecord, error)

	DeleteResident(ctx context.Context, unit string) (bool, error)
}
