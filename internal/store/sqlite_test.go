package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/d-olmeda/dockside-tui/internal/models"
)

func testSnapshot(t *testing.T) models.Snapshot {
	t.Helper()

	arrival := time.Date(2025, 3, 10, 10, 7, 0, 0, time.Local)
	wait := 3
	week := 11
	hour := 10

	return models.Snapshot{
		Credentials: []models.CredentialRow{
			{Payload: `{"site":"warehouse-7"}`},
		},
		Reservations: []models.Reservation{
			{
				Date:        time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local),
				OrderID:     "PO-1001",
				Provider:    "Acme Foods",
				BookedSlot:  "10:00-10:30",
				BundleCount: 12,
			},
		},
		Management: []models.ManagementRecord{
			{
				OrderID:         "PO-1001",
				Provider:        "Acme Foods",
				BundleCount:     12,
				ArrivalTime:     &arrival,
				WaitMinutes:     &wait,
				WeekNumber:      &week,
				ReservationHour: &hour,
			},
		},
	}
}

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "dockside.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	want := testSnapshot(t)
	if err := s.Write(ctx, want); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := s.Read(ctx)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	if len(got.Credentials) != 1 || got.Credentials[0].Payload != want.Credentials[0].Payload {
		t.Errorf("credentials = %+v, want %+v", got.Credentials, want.Credentials)
	}
	if len(got.Reservations) != 1 {
		t.Fatalf("reservations = %d rows, want 1", len(got.Reservations))
	}
	res := got.Reservations[0]
	if res.OrderID != "PO-1001" || res.Provider != "Acme Foods" || res.BookedSlot != "10:00-10:30" || res.BundleCount != 12 {
		t.Errorf("reservation = %+v", res)
	}
	if !res.Date.Equal(want.Reservations[0].Date) {
		t.Errorf("reservation date = %v, want %v", res.Date, want.Reservations[0].Date)
	}

	if len(got.Management) != 1 {
		t.Fatalf("management = %d rows, want 1", len(got.Management))
	}
	rec := got.Management[0]
	if rec.ArrivalTime == nil || !rec.ArrivalTime.Equal(*want.Management[0].ArrivalTime) {
		t.Errorf("arrival = %v, want %v", rec.ArrivalTime, want.Management[0].ArrivalTime)
	}
	if rec.ServiceStart != nil || rec.ServiceEnd != nil {
		t.Errorf("service times should stay nil, got start=%v end=%v", rec.ServiceStart, rec.ServiceEnd)
	}
	if rec.WaitMinutes == nil || *rec.WaitMinutes != 3 {
		t.Errorf("wait = %v, want 3", rec.WaitMinutes)
	}
	if rec.ServiceMinutes != nil || rec.TotalMinutes != nil || rec.DelayMinutes != nil {
		t.Errorf("unset minutes should stay nil, got %+v", rec)
	}
	if rec.WeekNumber == nil || *rec.WeekNumber != 11 {
		t.Errorf("week = %v, want 11", rec.WeekNumber)
	}
}

func TestSQLiteStoreWriteReplacesDocument(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.Write(ctx, testSnapshot(t)); err != nil {
		t.Fatalf("first Write: %v", err)
	}

	replacement := models.Snapshot{
		Reservations: []models.Reservation{
			{
				Date:       time.Date(2025, 3, 11, 0, 0, 0, 0, time.Local),
				OrderID:    "PO-2002",
				Provider:   "Beta Logistics",
				BookedSlot: "14:00",
			},
		},
	}
	if err := s.Write(ctx, replacement); err != nil {
		t.Fatalf("second Write: %v", err)
	}

	got, err := s.Read(ctx)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(got.Credentials) != 0 || len(got.Management) != 0 {
		t.Errorf("old datasets survived replace: %+v", got)
	}
	if len(got.Reservations) != 1 || got.Reservations[0].OrderID != "PO-2002" {
		t.Errorf("reservations = %+v", got.Reservations)
	}
}

func TestSQLiteStoreEmptyDatabase(t *testing.T) {
	s := openTestStore(t)

	got, err := s.Read(context.Background())
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(got.Credentials) != 0 || len(got.Reservations) != 0 || len(got.Management) != 0 {
		t.Errorf("fresh store should be empty, got %+v", got)
	}
}

func TestSQLiteStoreUnavailable(t *testing.T) {
	s := openTestStore(t)
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if _, err := s.Read(context.Background()); !errors.Is(err, ErrStoreUnavailable) {
		t.Errorf("Read after close = %v, want ErrStoreUnavailable", err)
	}
	if err := s.Write(context.Background(), models.Snapshot{}); !errors.Is(err, ErrStoreUnavailable) {
		t.Errorf("Write after close = %v, want ErrStoreUnavailable", err)
	}
}
