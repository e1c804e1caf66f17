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

type PassStore struct {
	db     *sql.DB
	writer *dbpkg.Worker
}

func NewPassStore(db *sql.DB, writer *dbpkg.Worker) *PassStore {
	return &PassStore{db: db, writer: writer}
}

func (s *PassStore) InsertPass(ctx context.Context, rec store.PassRecord) (store.PassRecord, error) {
	rec.IssuedAt = fromMs(toMs(rec.IssuedAt))
	rec.ExpiresAt = fromMs(toMs(rec.ExpiresAt))

	err := s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO parking_passes(pass_id, plate, unit, issued_at_ms, expires_at_ms)
VALUES (?, ?, ?, ?, ?);
`, rec.ID, rec.Plate, rec.Unit, toMs(rec.IssuedAt), toMs(rec.ExpiresAt)); err != nil {
			return fmt.Errorf("InsertPass: %w", err)
		}
		return nil
	})
	if err != nil {
		return store.PassRecord{}, err
	}
	return rec, nil
}

func (s *PassStore) ListPasses(ctx context.Context) ([]store.PassRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT pass_id, plate, unit, issued_at_ms, expires_at_ms
FROM parking_passes
ORDER BY expires_at_ms ASC, issued_at_ms ASC, pass_id ASC;
`)
	if err != nil {
		return nil, fmt.Errorf("ListPasses query: %w", err)
	}
	defer rows.Close()

	var out []store.PassRecord
	for rows.Next() {
		p, err := scanPass(rows)
		if err != nil {
			return nil, fmt.Errorf("ListPasses scan: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListPasses rows: %w", err)
	}
	return out, nil
}

func (s *PassStore) FindPassByPlate(ctx context.Context, plate string) (store.PassRecord, bool, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT pass_id, plate, unit, issued_at_ms, expires_at_ms
FROM parking_passes
WHERE plate = ?
ORDER BY issued_at_ms DESC, pass_id DESC
LIMIT 1;
`, plate)

	p, err := scanPass(row)
	if errors.Is(err, sql.ErrNoRows) {
		return store.PassRecord{}, false, nil
	}
	if err != nil {
		return store.PassRecord{}, false, fmt.Errorf("FindPassByPlate: %w", err)
	}
	return p, true, nil
}

func (s *PassStore) DeletePass(ctx context.Context, id string) (bool, error) {
	n, err := s.exec(ctx, "DeletePass", `DELETE FROM parking_passes WHERE pass_id = ?;`, id)
	return n > 0, err
}

func (s *PassStore) DeletePassesByPlate(ctx context.Context, plate string) (int64, error) {
	return s.exec(ctx, "DeletePassesByPlate", `DELETE FROM parking_passes WHERE plate = ?;`, plate)
}

// DeleteExpiredPasses removes passes whose expiry is at or before at.
// Uses idx_passes_expires for the range scan.
func (s *PassStore) DeleteExpiredPasses(ctx context.Context, at time.Time) (int64, error) {
	return s.exec(ctx, "DeleteExpiredPasses",
		`DELETE FROM parking_passes WHERE expires_at_ms <= ?;`, toMs(at))
}

func (s *PassStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// exec runs a single statement through the writer and returns rows affected.
func (s *PassStore) exec(ctx context.Context, op, query string, args ...any) (int64, error) {
	var affected int64
	err := s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		affected, err = res.RowsAffected()
		if err != nil {
			return fmt.Errorf("%s rows affected: %w", op, err)
		}
		return nil
	})
	return affected, err
}

func scanPass(sc scanner) (store.PassRecord, error) {
	var (
		p                   store.PassRecord
		issuedMs, expiresMs int64
	)
	if err := sc.Scan(&p.ID, &p.Plate, &p.Unit, &issuedMs, &expiresMs); err != nil {
		return store.PassRecord{}, err
	}
	p.IssuedAt = fromMs(issuedMs)
	p.ExpiresAt = fromMs(expiresMs)
	return p, nil
}
