package checkout

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cinema-booking-cli/model"
	"cinema-booking-cli/seats"
)

func fixedClock() Clock {
	return ClockFunc(func() time.Time {
		return time.Date(2026, 3, 14, 19, 5, 9, 0, time.UTC)
	})
}

func TestPriceQuote(t *testing.T) {
	q := PriceQuote(10000, 3)

	assert.Equal(t, model.Cents(30000), q.Subtotal)
	assert.Equal(t, model.Cents(3600), q.Tax)
	assert.Equal(t, model.Cents(33600), q.Total)
}

func TestPriceQuote_RoundsTaxHalfUp(t *testing.T) {
	// 0.12 * 1.04 = 0.1248
	q := PriceQuote(104, 1)
	assert.Equal(t, model.Cents(12), q.Tax)

	// 0.12 * 1.25 = 0.15
	q = PriceQuote(125, 1)
	assert.Equal(t, model.Cents(15), q.Tax)

	// 0.12 * 0.21 = 0.0252, 0.12 * 0.29 = 0.0348
	assert.Equal(t, model.Cents(3), PriceQuote(21, 1).Tax)
	assert.Equal(t, model.Cents(3), PriceQuote(29, 1).Tax)
}

func TestPriceQuote_CatalogPrices(t *testing.T) {
	q := PriceQuote(24000, 2)
	assert.Equal(t, "537.60", q.Total.String())
}

func TestFinalize_Success(t *testing.T) {
	b, err := Finalize(Request{
		Name:     "  Ada Lovelace ",
		Contact:  "ada@example.com",
		Movie:    "Inception",
		Showtime: "9:00 PM",
		Seats:    []string{"C3", "C4"},
		Total:    44800,
	}, fixedClock())

	require.NoError(t, err)
	assert.Equal(t, "2026-03-14 19:05:09", b.Timestamp)
	assert.Equal(t, "Ada Lovelace", b.Name)
	assert.Equal(t, "ada@example.com", b.Contact)
	assert.Equal(t, "Inception", b.Movie)
	assert.Equal(t, "9:00 PM", b.Showtime)
	assert.Equal(t, []string{"C3", "C4"}, b.Seats)
	assert.Equal(t, model.Cents(44800), b.Total)
}

func TestFinalize_RejectsEmptyIdentity(t *testing.T) {
	_, err := Finalize(Request{Name: "   ", Contact: "x", Seats: []string{"A1"}}, fixedClock())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyName)
	assert.True(t, IsValidation(err))

	_, err = Finalize(Request{Name: "Ada", Contact: "\t", Seats: []string{"A1"}}, fixedClock())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyContact)
}

func TestFinalize_RejectsEmptySeats(t *testing.T) {
	_, err := Finalize(Request{Name: "Ada", Contact: "x"}, fixedClock())
	assert.ErrorIs(t, err, ErrNoSeats)
}

func TestValidateSelection(t *testing.T) {
	occupied := seats.NewSet("A1")

	assert.NoError(t, ValidateSelection([]string{"A2", "B1"}, occupied))
	assert.ErrorIs(t, ValidateSelection(nil, occupied), ErrNoSeats)
	assert.ErrorIs(t, ValidateSelection([]string{"G1"}, occupied), ErrInvalidSeat)
	assert.ErrorIs(t, ValidateSelection([]string{"A2", "A2"}, occupied), ErrInvalidSeat)
	assert.ErrorIs(t, ValidateSelection([]string{"A2", "A1"}, occupied), ErrSeatTaken)
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{Field: "name", Err: ErrEmptyName}
	assert.Equal(t, "name: name is required", err.Error())
}
