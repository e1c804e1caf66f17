// Package sqlite implements the store interfaces on top of SQLite.
// Reads use *sql.DB directly; every write goes through the db.Worker so
// mutations are applied one transaction at a time.
package sqlite

import (
	"database/sql"
	"time"

	"github.com/BrandonDHaskell/Frontdesk/server/internal/frontdesk/store"
)

var (
	_ store.PassStore      = (*PassStore)(nil)
	_ store.VisitorStore   = (*VisitorStore)(nil)
	_ store.ViolationStore = (*ViolationStore)(nil)
	_ store.ResidentStore  = (*ResidentStore)(nil)
	_ store.Pinger         = (*PassStore)(nil)
)

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// Instants are stored as unix milliseconds.
func toMs(t time.Time) int64 { return t.UTC().UnixMilli() }

func fromMs(ms int64) time.Time { return time.UnixMilli(ms).UTC() }

func nullableMs(t *time.Time) any {
	if t == nil {
		return nil
	}
	return toMs(*t)
}

func timeFromNull(n sql.NullInt64) *time.Time {
	if !n.Valid {
		return nil
	}
	t := fromMs(n.Int64)
	return &t
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
