package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	dbpkg "github.com/BrandonDHaskell/Frontdesk/server/internal/db"
	"github.com/BrandonDHaskell/Frontdesk/server/internal/frontdesk/store"
)

type ResidentStore struct {
	db     *sql.DB
	writer *dbpkg.Worker
}

func NewResidentStore(db *sql.DB, writer *dbpkg.Worker) *ResidentStore {
	return &ResidentStore{db: db, writer: writer}
}

func (s *ResidentStore) UpsertResident(ctx context.Context, rec store.ResidentRecord) (store.ResidentRecord, bool, error) {
	rec.CreatedAt = fromMs(toMs(rec.CreatedAt))
	rec.UpdatedAt = fromMs(toMs(rec.UpdatedAt))

	var created bool
	err := s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		var createdMs int64
		err := tx.QueryRowContext(ctx,
			`SELECT created_at_ms FROM residents WHERE unit = ?;`, rec.Unit,
		).Scan(&createdMs)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			created = true
		case err != nil:
			return fmt.Errorf("UpsertResident lookup: %w", err)
		default:
			rec.CreatedAt = fromMs(createdMs)
		}

		if _, err := tx.ExecContext(ctx, `
INSERT INTO residents(unit, name, phone, email, primary_plate, created_at_ms, updated_at_ms)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(unit) DO UPDATE SET
  name          = excluded.name,
  phone         = excluded.phone,
  email         = excluded.email,
  primary_plate = excluded.primary_plate,
  updated_at_ms = excluded.updated_at_ms;
`, rec.Unit, rec.Name, rec.Phone, rec.Email, rec.PrimaryPlate,
			toMs(rec.CreatedAt), toMs(rec.UpdatedAt)); err != nil {
			return fmt.Errorf("UpsertResident: %w", err)
		}
		return nil
	})
	if err != nil {
		return store.ResidentRecord{}, false, err
	}
	return rec, created, nil
}

func (s *ResidentStore) ListResidents(ctx context.Context) ([]store.ResidentRecord, error) {
	return s.SearchResidents(ctx, "")
}

func (s *ResidentStore) SearchResidents(ctx context.Context, query string) ([]store.ResidentRecord, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	pattern := "%" + escapeLike(q) + "%"

	rows, err := s.db.QueryContext(ctx, `
SELECT unit, name, phone, email, primary_plate, created_at_ms, updated_at_ms
FROM residents
WHERE ? = ''
   OR lower(unit)          LIKE ? ESCAPE '\'
   OR lower(name)          LIKE ? ESCAPE '\'
   OR lower(primary_plate) LIKE ? ESCAPE '\'
ORDER BY unit ASC;
`, q, pattern, pattern, pattern)
	if err != nil {
		return nil, fmt.Errorf("SearchResidents query: %w", err)
	}
	defer rows.Close()

	var out []store.ResidentRecord
	for rows.Next() {
		var (
			r                    store.ResidentRecord
			createdMs, updatedMs int64
		)
		if err := rows.Scan(&r.Unit, &r.Name, &r.Phone, &r.Email, &r.PrimaryPlate, &createdMs, &updatedMs); err != nil {
			return nil, fmt.Errorf("SearchResidents scan: %w", err)
		}
		r.CreatedAt = fromMs(createdMs)
		r.UpdatedAt = fromMs(updatedMs)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("SearchResidents rows: %w", err)
	}
	return out, nil
}

func (s *ResidentStore) DeleteResident(ctx context.Context, unit string) (bool, error) {
	var deleted int64
	err := s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM residents WHERE unit = ?;`, unit)
		if err != nil {
			return fmt.Errorf("DeleteResident: %w", err)
		}
		deleted, _ = res.RowsAffected()
		return nil
	})
	return deleted > 0, err
}

// escapeLike escapes LIKE wildcards so a search for "10%" is literal.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
