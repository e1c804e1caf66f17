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

func newVisitorService() (*service.VisitorService, *clock.Manual) {
	clk := clock.NewManual(t0)
	return service.NewVisitorService(memory.NewVisitorStore(), clk), clk
}

func TestCheckIn(t *testing.T) {
	svc, _ := newVisitorService()

	v, err := svc.CheckIn(context.Background(), service.CheckInParams{
		Name: " Ana Ruiz ", Unit: "205", Type: "guest", GuestPass: "GP-1",
	})
	require.NoError(t, err)

	assert.Positive(t, v.ID)
	assert.Equal(t, "Ana Ruiz", v.Name)
	assert.Equal(t, t0, v.CheckInAt)
	assert.Nil(t, v.CheckOutAt)
}

func TestCheckIn_Validation(t *testing.T) {
	svc, _ := newVisitorService()

	_, err := svc.CheckIn(context.Background(), service.CheckInParams{Name: "x"})

	var ve *service.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, map[string]string{"unit": "is required", "type": "is required"}, ve.FieldErrors)
}

func TestCheckOut_Twice(t *testing.T) {
	ctx := context.Background()
	svc, clk := newVisitorService()

	v, err := svc.CheckIn(ctx, service.CheckInParams{Name: "Sam", Unit: "101", Type: "delivery"})
	require.NoError(t, err)

	clk.Advance(20 * time.Minute)
	out, err := svc.CheckOut(ctx, v.ID)
	require.NoError(t, err)
	require.NotNil(t, out.CheckOutAt)
	first := *out.CheckOutAt
	assert.Equal(t, t0.Add(20*time.Minute), first)

	clk.Advance(time.Hour)
	_, err = svc.CheckOut(ctx, v.ID)
	assert.ErrorIs(t, err, service.ErrAlreadyCheckedOut)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, first, *all[0].CheckOutAt, "second check-out must not move the time")
}

func TestCheckOut_Unknown(t *testing.T) {
	svc, _ := newVisitorService()

	_, err := svc.CheckOut(context.Background(), 42)
	assert.ErrorIs(t, err, service.ErrNotFound)

	var ve *service.ValidationError
	_, err = svc.CheckOut(context.Background(), 0)
	assert.ErrorAs(t, err, &ve)
}

func TestListVisitors_OpenFirstThenNewest(t *testing.T) {
	ctx := context.Background()
	svc, clk := newVisitorService()

	checkIn := func(name string) int64 {
		v, err := svc.CheckIn(ctx, service.CheckInParams{Name: name, Unit: "1", Type: "guest"})
		require.NoError(t, err)
		clk.Advance(time.Minute)
		return v.ID
	}
	checkIn("a")
	b := checkIn("b")
	checkIn("c")

	_, err := svc.CheckOut(ctx, b)
	require.NoError(t, err)

	got, err := svc.List(ctx)
	require.NoError(t, err)

	names := make([]string, 0, len(got))
	for _, v := range got {
		names = append(names, v.Name)
	}
	assert.Equal(t, []string{"c", "a", "b"}, names)
}
