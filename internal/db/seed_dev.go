package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type SeedResident struct {
	Unit         string
	Name         string
	Phone        string
	Email        string
	PrimaryPlate string
}

// DevResidents is the starter roster used when running with env=dev.
var DevResidents = []SeedResident{
	{Unit: "101", Name: "John Doe", Phone: "(555) 123-4567", Email: "john@example.com", PrimaryPlate: "XYZ 789"},
	{Unit: "205", Name: "Jane Smith", Email: "jane@example.com", PrimaryPlate: "ABC 123"},
}

// SeedDev inserts the dev residents that are not there yet.  Existing rows
// are left alone so edits made during a dev session survive a restart.
// New rows are stamped with now.  It returns how many rows were inserted.
func SeedDev(ctx context.Context, db *sql.DB, residents []SeedResident, now time.Time) (int64, error) {
	ms := now.UTC().UnixMilli()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("seed begin tx: %w", err)
	}

	var inserted int64
	for _, r := range residents {
		res, err := tx.ExecContext(ctx, `
INSERT OR IGNORE INTO residents(
  unit, name, phone, email, primary_plate, created_at_ms, updated_at_ms
) VALUES (?, ?, ?, ?, ?, ?, ?);
`, r.Unit, r.Name, r.Phone, r.Email, r.PrimaryPlate, ms, ms)
		if err != nil {
			_ = tx.Rollback()
			return 0, fmt.Errorf("seed resident %s: %w", r.Unit, err)
		}
		n, _ := res.RowsAffected()
		inserted += n
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("seed commit: %w", err)
	}
	return inserted, nil
}
