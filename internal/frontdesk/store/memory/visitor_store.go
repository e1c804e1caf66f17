package memory

import (
	"context"
	"sync"
	"time"

	"github.com/BrandonDHaskell/Frontdesk/server/internal/frontdesk/store"
)

type VisitorStore struct {
	mu       sync.RWMutex
	nextID   int64
	visitors map[int64]store.VisitorRecord
}

func NewVisitorStore() *VisitorStore {
	return &VisitorStore{visitors: make(map[int64]store.VisitorRecord)}
}

func (s *VisitorStore) InsertVisitor(_ context.Context, rec store.VisitorRecord) (store.VisitorRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	rec.ID = s.nextID
	rec.CheckOutAt = copyTime(rec.CheckOutAt)
	s.visitors[rec.ID] = rec
	return rec, nil
}

func (s *VisitorStore) ListVisitors(_ context.Context) ([]store.VisitorRecord, error) {
	s.mu.RLock()
	out := make([]store.VisitorRecord, 0, len(s.visitors))
	for _, v := range s.visitors {
		v.CheckOutAt = copyTime(v.CheckOutAt)
		out = append(out, v)
	}
	s.mu.RUnlock()

	store.SortVisitors(out)
	return out, nil
}

func (s *VisitorStore) FindVisitor(_ context.Context, id int64) (store.VisitorRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.visitors[id]
	v.CheckOutAt = copyTime(v.CheckOutAt)
	return v, ok, nil
}

func (s *VisitorStore) SetCheckOutTime(_ context.Context, id int64, t time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.visitors[id]
	if !ok || v.CheckOutAt != nil {
		return false, nil
	}
	t = t.UTC()
	v.CheckOutAt = &t
	s.visitors[id] = v
	return true, nil
}

// copyTime keeps callers from mutating stored check-out times through the
// returned pointer.
func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
