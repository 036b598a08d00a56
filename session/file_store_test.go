package session

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cinema-booking-cli/catalog"
	"cinema-booking-cli/store"
)

func TestSession_FileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "home", "cinema_bookings.csv")

	first := New(catalog.Default(), store.NewFileStore(path, nil), testClock(), nil)
	require.NoError(t, first.Open(ctx))

	_, err := first.Book(ctx, Request{Movie: "Inception", Showtime: "12:00 PM", Seats: []string{"E1", "E2"}, Name: "Ada", Contact: "ada@example.com"})
	require.NoError(t, err)
	_, err = first.Book(ctx, Request{Movie: "Inception", Showtime: "12:00 PM", Seats: []string{"E3"}, Name: "Grace", Contact: "555-0100"})
	require.NoError(t, err)
	require.NoError(t, first.ExportAll(ctx))

	second := New(catalog.Default(), store.NewFileStore(path, nil), testClock(), nil)
	require.NoError(t, second.Open(ctx))

	assert.Equal(t, first.Bookings(), second.Bookings())
	assert.Equal(t, []string{"E1", "E2", "E3"}, second.Occupied("Inception", "12:00 PM").Sorted())

	_, err = second.Book(ctx, Request{Movie: "Inception", Showtime: "12:00 PM", Seats: []string{"E2"}, Name: "Late", Contact: "x"})
	assert.ErrorIs(t, err, ErrSeatTaken)
}
