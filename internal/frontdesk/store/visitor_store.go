package store

import (
	"context"
	"sort"
	"time"
)

type VisitorRecord struct {
	ID         int64
	Name       string
	Unit       string
	Type       string
	GuestPass  string
	Notes      string
	CheckInAt  time.Time
	CheckOutAt *time.Time // nil while the visitor is on site
}

func (v VisitorRecord) CheckedOut() bool { return v.CheckOutAt != nil }

type VisitorStore interface {
	// InsertVisitor assigns the ID and returns the stored record.
	InsertVisitor(ctx context.Context, rec VisitorRecord) (VisitorRecord, error)

	// ListVisitors returns visitors in SortVisitors order.
	ListVisitors(ctx context.Context) ([]VisitorRecord, error)

	FindVisitor(ctx context.Context, id int64) (VisitorRecord, bool, error)

	// SetCheckOutTime sets CheckOutAt only if it is still unset.  It
	// reports whether the transition happened; false means the visitor is
	// missing or already checked out.
	SetCheckOutTime(ctx context.Context, id int64, t time.Time) (bool, error)
}

// SortVisitors orders visitors still on site before those who have left,
// most recent check-in first within each group.
func SortVisitors(vs []VisitorRecord) {
	sort.SliceStable(vs, func(i, j int) bool {
		a, b := vs[i], vs[j]
		if a.CheckedOut() != b.CheckedOut() {
			return !a.CheckedOut()
		}
		if !a.CheckInAt.Equal(b.CheckInAt) {
			return a.CheckInAt.After(b.CheckInAt)
		}
		return a.ID > b.ID
	})
}
