package service

import (
	"context"
	"time"

	"github.com/BrandonDHaskell/Frontdesk/server/internal/clock"
	"github.com/BrandonDHaskell/Frontdesk/server/internal/frontdesk/store"
)

// MaxForecastWindow bounds ExpirationForecast to one week of hourly
// buckets.
const MaxForecastWindow = 7 * 24 * time.Hour

// ForecastBucket counts passes expiring in [Start, Start+1h).
type ForecastBucket struct {
	Start time.Time
	Count int
}

type ReportService struct {
	passes     store.PassStore
	violations store.ViolationStore
	clock      clock.Clock
}

func NewReportService(ps store.PassStore, vs store.ViolationStore, clk clock.Clock) *ReportService {
	return &ReportService{passes: ps, violations: vs, clock: clk}
}

// ViolationSummary counts violations per action.  Every known action is
// present in the result, with zero when nothing was logged for it.
func (s *ReportService) ViolationSummary(ctx context.Context) (map[string]int64, error) {
	counts, err := s.violations.CountViolationsByAction(ctx)
	if err != nil {
		return nil, storageError("count violations", err)
	}

	out := make(map[string]int64, len(Actions))
	for _, a := range Actions {
		out[a] = 0
	}
	for a, n := range counts {
		out[a] += n
	}
	return out, nil
}

// ExpirationForecast buckets the passes that are still valid now and expire
// before now+window by the hour they expire in.  Buckets start at the
// current hour and are returned in order, including empty ones.
func (s *ReportService) ExpirationForecast(ctx context.Context, window time.Duration) ([]ForecastBucket, error) {
	if window <= 0 {
		return nil, invalidField("hours", "must be greater than 0")
	}
	if window > MaxForecastWindow {
		return nil, invalidField("hours", "must be at most 168")
	}

	passes, err := s.passes.ListPasses(ctx)
	if err != nil {
		return nil, storageError("list passes", err)
	}

	now := s.clock.Now().UTC()
	end := now.Add(window)
	first := now.Truncate(time.Hour)

	n := int(end.Sub(first) / time.Hour)
	if end.Sub(first)%time.Hour != 0 {
		n++
	}
	buckets := make([]ForecastBucket, n)
	for i := range buckets {
		buckets[i].Start = first.Add(time.Duration(i) * time.Hour)
	}

	for _, p := range passes {
		if !now.Before(p.ExpiresAt) || !p.ExpiresAt.Before(end) {
			continue
		}
		buckets[int(p.ExpiresAt.Sub(first)/time.Hour)].Count++
	}
	return buckets, nil
}
