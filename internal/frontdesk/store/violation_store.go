package store

import (
	"context"
	"time"
)

// ViolationRecord is an append-only log entry; there is no update or
// delete path.
type ViolationRecord struct {
	ID         int64
	Plate      string
	Reason     string
	Action     string
	RecordedAt time.Time
	Notes      string
}

type ViolationStore interface {
	InsertViolation(ctx context.Context, rec ViolationRecord) (ViolationRecord, error)

	// ListViolationsByPlate returns the plate's history, newest first.
	ListViolationsByPlate(ctx context.Context, plate string) ([]ViolationRecord, error)

	CountViolationsByAction(ctx context.Context) (map[string]int64, error)
}
