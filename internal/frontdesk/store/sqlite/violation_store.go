package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	dbpkg "github.com/BrandonDHaskell/Frontdesk/server/internal/db"
	"github.com/BrandonDHaskell/Frontdesk/server/internal/frontdesk/store"
)

type ViolationStore struct {
	db     *sql.DB
	writer *dbpkg.Worker
}

func NewViolationStore(db *sql.DB, writer *dbpkg.Worker) *ViolationStore {
	return &ViolationStore{db: db, writer: writer}
}

func (s *ViolationStore) InsertViolation(ctx context.Context, rec store.ViolationRecord) (store.ViolationRecord, error) {
	rec.RecordedAt = fromMs(toMs(rec.RecordedAt))

	err := s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
INSERT INTO violation_log(plate, reason, action, recorded_at_ms, notes)
VALUES (?, ?, ?, ?, ?);
`, rec.Plate, rec.Reason, rec.Action, toMs(rec.RecordedAt), nullableString(rec.Notes))
		if err != nil {
			return fmt.Errorf("InsertViolation: %w", err)
		}
		rec.ID, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("InsertViolation last id: %w", err)
		}
		return nil
	})
	if err != nil {
		return store.ViolationRecord{}, err
	}
	return rec, nil
}

func (s *ViolationStore) ListViolationsByPlate(ctx context.Context, plate string) ([]store.ViolationRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT violation_id, plate, reason, action, recorded_at_ms, notes
FROM violation_log
WHERE plate = ?
ORDER BY recorded_at_ms DESC, violation_id DESC;
`, plate)
	if err != nil {
		return nil, fmt.Errorf("ListViolationsByPlate query: %w", err)
	}
	defer rows.Close()

	var out []store.ViolationRecord
	for rows.Next() {
		var (
			v          store.ViolationRecord
			recordedMs int64
			notes      sql.NullString
		)
		if err := rows.Scan(&v.ID, &v.Plate, &v.Reason, &v.Action, &recordedMs, &notes); err != nil {
			return nil, fmt.Errorf("ListViolationsByPlate scan: %w", err)
		}
		v.RecordedAt = fromMs(recordedMs)
		v.Notes = notes.String
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListViolationsByPlate rows: %w", err)
	}
	return out, nil
}

func (s *ViolationStore) CountViolationsByAction(ctx context.Context) (map[string]int64, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT action, COUNT(*)
FROM violation_log
GROUP BY action;
`)
	if err != nil {
		return nil, fmt.Errorf("CountViolationsByAction query: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var (
			action string
			n      int64
		)
		if err := rows.Scan(&action, &n); err != nil {
			return nil, fmt.Errorf("CountViolationsByAction scan: %w", err)
		}
		counts[action] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("CountViolationsByAction rows: %w", err)
	}
	return counts, nil
}
