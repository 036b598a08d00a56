package store

import (
	"context"
	"os"
	"reflect"
	"testing"

	"cinema-booking-cli/model"
)

func openTestPostgres(t *testing.T) *PostgresStore {
	t.Helper()
	url := os.Getenv("CINEMA_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("CINEMA_TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	s, err := OpenPostgresStore(ctx, url)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	t.Cleanup(s.Close)
	if err := s.SaveAll(ctx, nil); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	return s
}

func TestPostgresStore_AppendAndSaveAll(t *testing.T) {
	s := openTestPostgres(t)
	ctx := context.Background()

	first := sampleBooking()
	if err := s.Append(ctx, first); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	bookings, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !reflect.DeepEqual(bookings, []model.Booking{first}) {
		t.Fatalf("unexpected bookings: %+v", bookings)
	}

	replacement := []model.Booking{
		{Timestamp: "2026-01-01 10:00:00", Name: "Only", Contact: "one", Movie: "Inception", Showtime: "9:00 PM", Seats: []string{"D5"}, Total: 22400},
	}
	if err := s.SaveAll(ctx, replacement); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	bookings, err = s.Load(ctx)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !reflect.DeepEqual(bookings, replacement) {
		t.Fatalf("expected %+v, got %+v", replacement, bookings)
	}
}

var _ BookingStore = (*PostgresStore)(nil)
var _ BookingStore = (*FileStore)(nil)
