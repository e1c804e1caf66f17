package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/BrandonDHaskell/Frontdesk/server/internal/frontdesk/store"
)

// PassStore keeps passes in a slice guarded by one mutex.  It is intended
// for tests and store=memory dev runs.
type PassStore struct {
	mu     sync.RWMutex
	passes []store.PassRecord
}

func NewPassStore() *PassStore {
	return &PassStore{}
}

func (s *PassStore) InsertPass(_ context.Context, rec store.PassRecord) (store.PassRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.passes = append(s.passes, rec)
	return rec, nil
}

func (s *PassStore) ListPasses(_ context.Context) ([]store.PassRecord, error) {
	s.mu.RLock()
	out := make([]store.PassRecord, len(s.passes))
	copy(out, s.passes)
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.ExpiresAt.Equal(b.ExpiresAt) {
			return a.ExpiresAt.Before(b.ExpiresAt)
		}
		if !a.IssuedAt.Equal(b.IssuedAt) {
			return a.IssuedAt.Before(b.IssuedAt)
		}
		return a.ID < b.ID
	})
	return out, nil
}

func (s *PassStore) FindPassByPlate(_ context.Context, plate string) (store.PassRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		newest store.PassRecord
		found  bool
	)
	for _, p := range s.passes {
		if p.Plate != plate {
			continue
		}
		if !found || p.IssuedAt.After(newest.IssuedAt) ||
			(p.IssuedAt.Equal(newest.IssuedAt) && p.ID > newest.ID) {
			newest, found = p, true
		}
	}
	return newest, found, nil
}

func (s *PassStore) DeletePass(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.removeWhere(func(p store.PassRecord) bool { return p.ID == id })
	return n > 0, nil
}

func (s *PassStore) DeletePassesByPlate(_ context.Context, plate string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.removeWhere(func(p store.PassRecord) bool { return p.Plate == plate }), nil
}

func (s *PassStore) DeleteExpiredPasses(_ context.Context, at time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.removeWhere(func(p store.PassRecord) bool { return !p.ExpiresAt.After(at) }), nil
}

// Ping always succeeds; there is nothing to reach.
func (s *PassStore) Ping(context.Context) error { return nil }

// removeWhere filters passes in place.  Caller holds s.mu.
func (s *PassStore) removeWhere(match func(store.PassRecord) bool) int64 {
	kept := s.passes[:0]
	var removed int64
	for _, p := range s.passes {
		if match(p) {
			removed++
			continue
		}
		kept = append(kept, p)
	}
	// Clear the tail so removed records are not retained by the backing array.
	for i := len(kept); i < len(s.passes); i++ {
		s.passes[i] = store.PassRecord{}
	}
	s.passes = kept
	return removed
}
