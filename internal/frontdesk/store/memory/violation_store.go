package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/BrandonDHaskell/Frontdesk/server/internal/frontdesk/store"
)

// ViolationStore is an in-memory append-only violation log.
type ViolationStore struct {
	mu     sync.RWMutex
	nextID int64
	events []store.ViolationRecord
}

func NewViolationStore() *ViolationStore {
	return &ViolationStore{}
}

func (s *ViolationStore) InsertViolation(_ context.Context, rec store.ViolationRecord) (store.ViolationRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	rec.ID = s.nextID
	s.events = append(s.events, rec)
	return rec, nil
}

func (s *ViolationStore) ListViolationsByPlate(_ context.Context, plate string) ([]store.ViolationRecord, error) {
	s.mu.RLock()
	var out []store.ViolationRecord
	for _, v := range s.events {
		if v.Plate == plate {
			out = append(out, v)
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].RecordedAt.Equal(out[j].RecordedAt) {
			return out[i].RecordedAt.After(out[j].RecordedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (s *ViolationStore) CountViolationsByAction(_ context.Context) (map[string]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[string]int64)
	for _, v := range s.events {
		counts[v.Action]++
	}
	return counts, nil
}
