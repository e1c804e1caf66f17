package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	dbpkg "github.com/BrandonDHaskell/Frontdesk/server/internal/db"
	"github.com/BrandonDHaskell/Frontdesk/server/internal/frontdesk/store"
)

type VisitorStore struct {
	db     *sql.DB
	writer *dbpkg.Worker
}

func NewVisitorStore(db *sql.DB, writer *dbpkg.Worker) *VisitorStore {
	return &VisitorStore{db: db, writer: writer}
}

const visitorColumns = `visitor_id, name, unit, visitor_type, guest_pass, notes, check_in_at_ms, check_out_at_ms`

func (s *VisitorStore) InsertVisitor(ctx context.Context, rec store.VisitorRecord) (store.VisitorRecord, error) {
	rec.CheckInAt = fromMs(toMs(rec.CheckInAt))
	if rec.CheckOutAt != nil {
		t := fromMs(toMs(*rec.CheckOutAt))
		rec.CheckOutAt = &t
	}

	err := s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
INSERT INTO visitor_log(name, unit, visitor_type, guest_pass, notes, check_in_at_ms, check_out_at_ms)
VALUES (?, ?, ?, ?, ?, ?, ?);
`, rec.Name, rec.Unit, rec.Type, nullableString(rec.GuestPass), nullableString(rec.Notes),
			toMs(rec.CheckInAt), nullableMs(rec.CheckOutAt))
		if err != nil {
			return fmt.Errorf("InsertVisitor: %w", err)
		}
		rec.ID, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("InsertVisitor last id: %w", err)
		}
		return nil
	})
	if err != nil {
		return store.VisitorRecord{}, err
	}
	return rec, nil
}

// ListVisitors: open visits first, then most recent check-in first.
func (s *VisitorStore) ListVisitors(ctx context.Context) ([]store.VisitorRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT `+visitorColumns+`
FROM visitor_log
ORDER BY
  CASE WHEN check_out_at_ms IS NULL THEN 0 ELSE 1 END,
  check_in_at_ms DESC,
  visitor_id DESC;
`)
	if err != nil {
		return nil, fmt.Errorf("ListVisitors query: %w", err)
	}
	defer rows.Close()

	var out []store.VisitorRecord
	for rows.Next() {
		v, err := scanVisitor(rows)
		if err != nil {
			return nil, fmt.Errorf("ListVisitors scan: %w", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListVisitors rows: %w", err)
	}
	return out, nil
}

func (s *VisitorStore) FindVisitor(ctx context.Context, id int64) (store.VisitorRecord, bool, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT `+visitorColumns+`
FROM visitor_log
WHERE visitor_id = ?;
`, id)

	v, err := scanVisitor(row)
	if errors.Is(err, sql.ErrNoRows) {
		return store.VisitorRecord{}, false, nil
	}
	if err != nil {
		return store.VisitorRecord{}, false, fmt.Errorf("FindVisitor: %w", err)
	}
	return v, true, nil
}

// SetCheckOutTime is a conditional update: a row that already has a
// check-out time is never overwritten.
func (s *VisitorStore) SetCheckOutTime(ctx context.Context, id int64, t time.Time) (bool, error) {
	var changed int64
	err := s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
UPDATE visitor_log
SET check_out_at_ms = ?
WHERE visitor_id = ? AND check_out_at_ms IS NULL;
`, toMs(t), id)
		if err != nil {
			return fmt.Errorf("SetCheckOutTime: %w", err)
		}
		changed, err = res.RowsAffected()
		if err != nil {
			return fmt.Errorf("SetCheckOutTime rows affected: %w", err)
		}
		return nil
	})
	return changed > 0, err
}

func scanVisitor(sc scanner) (store.VisitorRecord, error) {
	var (
		v                store.VisitorRecord
		guestPass, notes sql.NullString
		checkInMs        int64
		checkOutMs       sql.NullInt64
	)
	if err := sc.Scan(&v.ID, &v.Name, &v.Unit, &v.Type, &guestPass, &notes, &checkInMs, &checkOutMs); err != nil {
		return store.VisitorRecord{}, err
	}
	v.GuestPass = guestPass.String
	v.Notes = notes.String
	v.CheckInAt = fromMs(checkInMs)
	v.CheckOutAt = timeFromNull(checkOutMs)
	return v, nil
}
