package command

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/BrandonDHaskell/Frontdesk/server/internal/config"
	"github.com/BrandonDHaskell/Frontdesk/server/internal/db"
	"github.com/BrandonDHaskell/Frontdesk/server/internal/frontdesk/store"
	"github.com/BrandonDHaskell/Frontdesk/server/internal/frontdesk/store/memory"
	"github.com/BrandonDHaskell/Frontdesk/server/internal/frontdesk/store/sqlite"
)

// stores is the backend selected by config, plus whatever has to be
// released on shutdown.
type stores struct {
	passes     store.PassStore
	visitors   store.VisitorStore
	violations store.ViolationStore
	residents  store.ResidentStore
	pinger     store.Pinger

	conn   *sql.DB
	writer *db.Worker
}

func openStores(ctx context.Context, c config.Config, log *slog.Logger) (*stores, error) {
	switch c.Store {
	case config.StoreMemory:
		passes := memory.NewPassStore()
		s := &stores{
			passes:     passes,
			visitors:   memory.NewVisitorStore(),
			violations: memory.NewViolationStore(),
			residents:  memory.NewResidentStore(),
			pinger:     passes,
		}
		log.Warn("using in-memory store; data is lost on restart")
		return s, nil

	case config.StoreSQLite:
		conn, err := db.Open(ctx, db.Config{Path: c.DBPath, Logger: log})
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		writer := db.NewWorker(conn)
		passes := sqlite.NewPassStore(conn, writer)
		return &stores{
			passes:     passes,
			visitors:   sqlite.NewVisitorStore(conn, writer),
			violations: sqlite.NewViolationStore(conn, writer),
			residents:  sqlite.NewResidentStore(conn, writer),
			pinger:     passes,
			conn:       conn,
			writer:     writer,
		}, nil

	default:
		return nil, fmt.Errorf("unknown store %q", c.Store)
	}
}

// seedDev loads the sample residents used for local development.  Units
// that already have a resident are left alone.
func (s *stores) seedDev(ctx context.Context, log *slog.Logger, now time.Time) error {
	var inserted int64
	if s.conn != nil {
		n, err := db.SeedDev(ctx, s.conn, db.DevResidents, now)
		if err != nil {
			return err
		}
		inserted = n
	} else {
		for _, r := range db.DevResidents {
			_, created, err := s.residents.UpsertResident(ctx, store.ResidentRecord{
				Unit:         r.Unit,
				Name:         r.Name,
				Phone:        r.Phone,
				Email:        r.Email,
				PrimaryPlate: r.PrimaryPlate,
				CreatedAt:    now,
				UpdatedAt:    now,
			})
			if err != nil {
				return err
			}
			if created {
				inserted++
			}
		}
	}
	if inserted > 0 {
		log.Info("seeded dev residents", "count", inserted)
	}
	return nil
}

// Close drains pending writes before closing the database.
func (s *stores) Close() {
	if s.writer != nil {
		s.writer.Close()
	}
	if s.conn != nil {
		_ = s.conn.Close()
	}
}
