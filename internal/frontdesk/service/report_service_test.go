package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BrandonDHaskell/Frontdesk/server/internal/clock"
	"github.com/BrandonDHaskell/Frontdesk/server/internal/frontdesk/service"
	"github.com/BrandonDHaskell/Frontdesk/server/internal/frontdesk/store/memory"
)

func TestViolationSummary_AllActionsPresent(t *testing.T) {
	ctx := context.Background()
	clk := clock.NewManual(t0)
	vs := memory.NewViolationStore()
	violations := service.NewViolationService(vs, clk)
	reports := service.NewReportService(memory.NewPassStore(), vs, clk)

	empty, err := reports.ViolationSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"towed": 0, "booted": 0, "warning": 0}, empty)

	for _, a := range []string{"towed", "warning", "warning"} {
		_, err := violations.Record(ctx, service.RecordViolationParams{Plate: "A", Reason: "r", Action: a})
		require.NoError(t, err)
	}

	got, err := reports.ViolationSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"towed": 1, "booted": 0, "warning": 2}, got)
}

func TestExpirationForecast(t *testing.T) {
	ctx := context.Background()
	f := newPassFixture() // t0 is 10:20
	reports := service.NewReportService(f.store, memory.NewViolationStore(), f.clock)

	for _, h := range []float64{0.5, 1, 1.5, 2.5, 5} {
		_, err := f.passes.Issue(ctx, service.IssuePassParams{Plate: "F", Unit: "1", DurationHours: h})
		require.NoError(t, err)
	}
	// Expiries: 10:50, 11:20, 11:50, 12:50, 15:20.

	f.clock.Advance(time.Hour) // 11:20, the 10:50 and 11:20 passes are expired
	got, err := reports.ExpirationForecast(ctx, 3*time.Hour)
	require.NoError(t, err)

	// Buckets 11:00 through 14:00 cover [11:20, 14:20).
	require.Len(t, got, 4)
	assert.Equal(t, t0.Truncate(time.Hour).Add(time.Hour), got[0].Start)
	counts := []int{got[0].Count, got[1].Count, got[2].Count, got[3].Count}
	assert.Equal(t, []int{1, 1, 0, 0}, counts)
}

func TestExpirationForecast_Window(t *testing.T) {
	f := newPassFixture()
	reports := service.NewReportService(f.store, memory.NewViolationStore(), f.clock)

	var ve *service.ValidationError
	_, err := reports.ExpirationForecast(context.Background(), 0)
	assert.ErrorAs(t, err, &ve)

	_, err = reports.ExpirationForecast(context.Background(), 8*24*time.Hour)
	assert.ErrorAs(t, err, &ve)
}
