package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/BrandonDHaskell/Frontdesk/server/internal/frontdesk/store"
	sqlitestore "github.com/BrandonDHaskell/Frontdesk/server/internal/frontdesk/store/sqlite"
)

func TestVisitorStore_InsertAssignsIDAndRoundTrips(t *testing.T) {
	conn := openTestDB(t)
	vs := sqlitestore.NewVisitorStore(conn, newTestWriter(t, conn))
	ctx := context.Background()

	rec, err := vs.InsertVisitor(ctx, store.VisitorRecord{
		Name:      "J Doe",
		Unit:      "205",
		Type:      "Guest",
		GuestPass: "GP-1",
		CheckInAt: t0,
	})
	if err != nil {
		t.Fatalf("InsertVisitor: %v", err)
	}
	if rec.ID == 0 {
		t.Fatal("expected an assigned id")
	}

	got, ok, err := vs.FindVisitor(ctx, rec.ID)
	if err != nil || !ok {
		t.Fatalf("FindVisitor: ok=%v err=%v", ok, err)
	}
	if got.Name != "J Doe" || got.Unit != "205" || got.Type != "Guest" || got.GuestPass != "GP-1" {
		t.Errorf("unexpected record: %+v", got)
	}
	if got.Notes != "" {
		t.Errorf("expected empty notes, got %q", got.Notes)
	}
	if !got.CheckInAt.Equal(t0) {
		t.Errorf("expected check-in %v, got %v", t0, got.CheckInAt)
	}
	if got.CheckOutAt != nil {
		t.Errorf("expected no check-out, got %v", got.CheckOutAt)
	}
}

func TestVisitorStore_SetCheckOutTime_OnlyOnce(t *testing.T) {
	conn := openTestDB(t)
	vs := sqlitestore.NewVisitorStore(conn, newTestWriter(t, conn))
	ctx := context.Background()

	rec, _ := vs.InsertVisitor(ctx, store.VisitorRecord{Name: "A", Unit: "1", Type: "Guest", CheckInAt: t0})

	first := t0.Add(time.Hour)
	ok, err := vs.SetCheckOutTime(ctx, rec.ID, first)
	if err != nil || !ok {
		t.Fatalf("first check-out: ok=%v err=%v", ok, err)
	}

	ok, err = vs.SetCheckOutTime(ctx, rec.ID, first.Add(time.Hour))
	if err != nil {
		t.Fatalf("second check-out: %v", err)
	}
	if ok {
		t.Error("second check-out must not transition")
	}

	got, _, _ := vs.FindVisitor(ctx, rec.ID)
	if got.CheckOutAt == nil || !got.CheckOutAt.Equal(first) {
		t.Errorf("expected check-out to stay at %v, got %v", first, got.CheckOutAt)
	}

	ok, err = vs.SetCheckOutTime(ctx, 9999, first)
	if err != nil {
		t.Fatalf("unknown id: %v", err)
	}
	if ok {
		t.Error("unknown id must not report a transition")
	}
}

func TestVisitorStore_ListVisitors_OpenFirstThenNewest(t *testing.T) {
	conn := openTestDB(t)
	vs := sqlitestore.NewVisitorStore(conn, newTestWriter(t, conn))
	ctx := context.Background()

	insert := func(name string, in time.Time) int64 {
		rec, err := vs.InsertVisitor(ctx, store.VisitorRecord{Name: name, Unit: "1", Type: "Guest", CheckInAt: in})
		if err != nil {
			t.Fatalf("InsertVisitor %s: %v", name, err)
		}
		return rec.ID
	}

	_ = insert("old-open", t0)
	newClosed := insert("new-closed", t0.Add(3*time.Hour))
	_ = insert("new-open", t0.Add(2*time.Hour))
	oldClosed := insert("old-closed", t0.Add(time.Hour))

	if ok, _ := vs.SetCheckOutTime(ctx, newClosed, t0.Add(4*time.Hour)); !ok {
		t.Fatal("check-out new-closed")
	}
	if ok, _ := vs.SetCheckOutTime(ctx, oldClosed, t0.Add(4*time.Hour)); !ok {
		t.Fatal("check-out old-closed")
	}

	got, err := vs.ListVisitors(ctx)
	if err != nil {
		t.Fatalf("ListVisitors: %v", err)
	}

	want := []string{"new-open", "old-open", "new-closed", "old-closed"}
	if len(got) != len(want) {
		t.Fatalf("expected %d visitors, got %d", len(want), len(got))
	}
	for i, name := range want {
		if got[i].Name != name {
			t.Errorf("position %d: expected %s, got %s", i, name, got[i].Name)
		}
	}
}
