package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"
)

func openMemDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:dbtest_%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", t.Name())
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("sql.Open: %v", err)
	}
	configurePool(conn)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestMigrate_AppliesOnceAndIsIdempotent(t *testing.T) {
	conn := openMemDB(t)
	ctx := context.Background()

	applied, err := Migrate(ctx, conn)
	if err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	ms, err := loadMigrations()
	if err != nil {
		t.Fatalf("loadMigrations: %v", err)
	}
	if applied != len(ms) {
		t.Errorf("expected %d migrations applied, got %d", len(ms), applied)
	}

	again, err := Migrate(ctx, conn)
	if err != nil {
		t.Fatalf("second Migrate: %v", err)
	}
	if again != 0 {
		t.Errorf("expected 0 migrations on second run, got %d", again)
	}

	for _, table := range []string{"parking_passes", "visitor_log", "violation_log", "residents"} {
		var name string
		err := conn.QueryRowContext(ctx,
			`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s missing: %v", table, err)
		}
	}
}

func TestParseVersion(t *testing.T) {
	cases := map[string]int{
		"0001_passes.sql": 1,
		"0012_more.sql":   12,
		"0000_zero.sql":   0,
	}
	for name, want := range cases {
		got, err := parseVersion(name)
		if err != nil {
			t.Errorf("parseVersion(%q): %v", name, err)
			continue
		}
		if got != want {
			t.Errorf("parseVersion(%q) = %d, want %d", name, got, want)
		}
	}

	if _, err := parseVersion("nounderscore.sql"); err == nil {
		t.Error("expected error for filename without version prefix")
	}
	if _, err := parseVersion("abc_x.sql"); err == nil {
		t.Error("expected error for non-numeric version")
	}
}

func TestWorker_CommitsAndRollsBack(t *testing.T) {
	conn := openMemDB(t)
	ctx := context.Background()
	if _, err := conn.ExecContext(ctx, `CREATE TABLE t (v INTEGER NOT NULL)`); err != nil {
		t.Fatalf("create table: %v", err)
	}

	w := NewWorker(conn)
	t.Cleanup(w.Close)

	if err := w.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO t(v) VALUES (1)`)
		return err
	}); err != nil {
		t.Fatalf("Do commit: %v", err)
	}

	sentinel := errors.New("abort")
	err := w.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `INSERT INTO t(v) VALUES (2)`); err != nil {
			return err
		}
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel error, got %v", err)
	}

	var count int
	if err := conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM t`).Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 row after rollback, got %d", count)
	}
}

func TestWorker_PanicRollsBack(t *testing.T) {
	conn := openMemDB(t)
	ctx := context.Background()
	w := NewWorker(conn)
	t.Cleanup(w.Close)

	err := w.Do(ctx, func(context.Context, *sql.Tx) error { panic("bad tx") })
	if err == nil {
		t.Fatal("expected error from panicking tx")
	}

	// The worker keeps serving after a panic.
	if err := w.Do(ctx, func(context.Context, *sql.Tx) error { return nil }); err != nil {
		t.Fatalf("Do after panic: %v", err)
	}
}

func TestWorker_DoAfterClose(t *testing.T) {
	conn := openMemDB(t)
	w := NewWorker(conn)
	w.Close()
	w.Close()

	err := w.Do(context.Background(), func(context.Context, *sql.Tx) error { return nil })
	if !errors.Is(err, ErrWorkerClosed) {
		t.Fatalf("expected ErrWorkerClosed, got %v", err)
	}
}

func TestOpen_CreatesFileAndSeeds(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "frontdesk.db")

	conn, err := Open(ctx, Config{Path: path})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	seededAt := time.Date(2026, 2, 15, 12, 0, 0, 0, time.UTC)
	n, err := SeedDev(ctx, conn, DevResidents, seededAt)
	if err != nil {
		t.Fatalf("SeedDev: %v", err)
	}
	if n != int64(len(DevResidents)) {
		t.Errorf("expected %d seeded, got %d", len(DevResidents), n)
	}

	var created, updated int64
	if err := conn.QueryRowContext(ctx,
		`SELECT created_at_ms, updated_at_ms FROM residents WHERE unit = ?`, DevResidents[0].Unit,
	).Scan(&created, &updated); err != nil {
		t.Fatalf("read seeded resident: %v", err)
	}
	if created != seededAt.UnixMilli() || updated != seededAt.UnixMilli() {
		t.Errorf("expected timestamps %d, got created=%d updated=%d", seededAt.UnixMilli(), created, updated)
	}

	n, err = SeedDev(ctx, conn, DevResidents, seededAt.Add(time.Hour))
	if err != nil {
		t.Fatalf("second SeedDev: %v", err)
	}
	if n != 0 {
		t.Errorf("expected reseed to insert nothing, got %d", n)
	}
}
