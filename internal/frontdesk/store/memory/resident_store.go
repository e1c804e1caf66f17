package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/BrandonDHaskell/Frontdesk/server/internal/frontdesk/store"
)

type ResidentStore struct {
	mu        sync.RWMutex
	residents map[string]store.ResidentRecord
}

func NewResidentStore() *ResidentStore {
	return &ResidentStore{residents: make(map[string]store.ResidentRecord)}
}

func (s *ResidentStore) UpsertResident(_ context.Context, rec store.ResidentRecord) (store.ResidentRecord, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, exists := s.residents[rec.Unit]
	if exists {
		rec.CreatedAt = prev.CreatedAt
	}
	s.residents[rec.Unit] = rec
	return rec, !exists, nil
}

func (s *ResidentStore) ListResidents(ctx context.Context) ([]store.ResidentRecord, error) {
	return s.SearchResidents(ctx, "")
}

func (s *ResidentStore) SearchResidents(_ context.Context, query string) ([]store.ResidentRecord, error) {
	q := strings.ToLower(strings.TrimSpace(query))

	s.mu.RLock()
	out := make([]store.ResidentRecord, 0, len(s.residents))
	for _, r := range s.residents {
		if q == "" ||
			strings.Contains(strings.ToLower(r.Unit), q) ||
			strings.Contains(strings.ToLower(r.Name), q) ||
			strings.Contains(strings.ToLower(r.PrimaryPlate), q) {
			out = append(out, r)
		}
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Unit < out[j].Unit })
	return out, nil
}

func (s *ResidentStore) DeleteResident(_ context.Context, unit string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.residents[unit]; !ok {
		return false, nil
	}
	delete(s.residents, unit)
	return true, nil
}
