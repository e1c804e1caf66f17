package service_test

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/BrandonDHaskell/Frontdesk/server/internal/clock"
	"github.com/BrandonDHaskell/Frontdesk/server/internal/frontdesk/service"
	"github.com/BrandonDHaskell/Frontdesk/server/internal/frontdesk/store"
	"github.com/BrandonDHaskell/Frontdesk/server/internal/frontdesk/store/memory"
)

var t0 = time.Date(2026, 3, 1, 10, 20, 0, 0, time.UTC)

var errDiskGone = errors.New("disk I/O error")

// seqIDs returns GP-1, GP-2, ... in call order.
func seqIDs() func() string {
	var n atomic.Int64
	return func() string { return fmt.Sprintf("GP-%d", n.Add(1)) }
}

type passFixture struct {
	clock   *clock.Manual
	store   *memory.PassStore
	passes  *service.PassService
	sweeper *service.ExpirySweeper
}

func newPassFixture() passFixture {
	clk := clock.NewManual(t0)
	ps := memory.NewPassStore()
	return passFixture{
		clock:   clk,
		store:   ps,
		passes:  service.NewPassService(ps, clk, service.WithIDGenerator(seqIDs())),
		sweeper: service.NewExpirySweeper(ps, clk),
	}
}

// failingPassStore fails inserts, listings and sweeps with err.  Other
// calls reach the embedded store.
type failingPassStore struct {
	*memory.PassStore
	err error
}

func (f failingPassStore) InsertPass(context.Context, store.PassRecord) (store.PassRecord, error) {
	return store.PassRecord{}, f.err
}

func (f failingPassStore) ListPasses(context.Context) ([]store.PassRecord, error) {
	return nil, f.err
}

func (f failingPassStore) DeleteExpiredPasses(context.Context, time.Time) (int64, error) {
	return 0, f.err
}
