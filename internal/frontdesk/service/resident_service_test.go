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

func TestResidentSave_CreateThenUpdate(t *testing.T) {
	ctx := context.Background()
	clk := clock.NewManual(t0)
	svc := service.NewResidentService(memory.NewResidentStore(), clk)

	r, created, err := svc.Save(ctx, service.SaveResidentParams{
		Unit: "101", Name: "John Doe", Email: "john@example.com", PrimaryPlate: "xyz 789",
	})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "XYZ 789", r.PrimaryPlate)

	clk.Advance(time.Hour)
	r, created, err = svc.Save(ctx, service.SaveResidentParams{
		Unit: "101", Name: "John Q. Doe", PrimaryPlate: "XYZ 789",
	})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, t0, r.CreatedAt)
	assert.Equal(t, t0.Add(time.Hour), r.UpdatedAt)
}

func TestResidentSave_Validation(t *testing.T) {
	svc := service.NewResidentService(memory.NewResidentStore(), clock.NewManual(t0))

	_, _, err := svc.Save(context.Background(), service.SaveResidentParams{
		Unit: "1", Email: "not-an-email",
	})

	var ve *service.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, map[string]string{
		"name":          "is required",
		"email":         "must be a valid email address",
		"primary_plate": "is required",
	}, ve.FieldErrors)
}

func TestResidentSearchAndDelete(t *testing.T) {
	ctx := context.Background()
	svc := service.NewResidentService(memory.NewResidentStore(), clock.NewManual(t0))

	for _, p := range []service.SaveResidentParams{
		{Unit: "205", Name: "Jane Smith", PrimaryPlate: "ABC 123"},
		{Unit: "101", Name: "John Doe", PrimaryPlate: "XYZ 789"},
	} {
		_, _, err := svc.Save(ctx, p)
		require.NoError(t, err)
	}

	all, err := svc.Search(ctx, "  ")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "101", all[0].Unit)

	hits, err := svc.Search(ctx, "jane")
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "205", hits[0].Unit)

	hits, err = svc.Search(ctx, "xyz")
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "101", hits[0].Unit)

	require.NoError(t, svc.Delete(ctx, "205"))
	assert.ErrorIs(t, svc.Delete(ctx, "205"), service.ErrNotFound)
}
