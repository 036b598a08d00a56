// Package checkout prices a seat selection and turns a confirmed selection
// into a booking.
package checkout

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"cinema-booking-cli/model"
	"cinema-booking-cli/seats"
)

// TaxPercent is applied to the subtotal of every order.
const TaxPercent = 12

var (
	ErrEmptyName    = errors.New("name is required")
	ErrEmptyContact = errors.New("contact is required")
	ErrNoSeats      = errors.New("select at least one seat")
	ErrInvalidSeat  = errors.New("invalid seat")
	ErrSeatTaken    = errors.New("seat already booked")
)

// ValidationError reports user input that was rejected before anything was
// stored.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

type Quote struct {
	Subtotal model.Cents
	Tax      model.Cents
	Total    model.Cents
}

// PriceQuote computes subtotal, tax and total for n seats. Tax is rounded
// half up to the nearest cent.
func PriceQuote(pricePerSeat model.Cents, seatCount int) Quote {
	if seatCount < 0 {
		seatCount = 0
	}
	subtotal := pricePerSeat.Mul(seatCount)
	tax := (subtotal*TaxPercent + 50) / 100
	return Quote{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal + tax,
	}
}

type Clock interface {
	Now() time.Time
}

type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads the wall clock.
var SystemClock Clock = ClockFunc(time.Now)

type Request struct {
	Name     string
	Contact  string
	Movie    string
	Showtime string
	Seats    []string
	Total    model.Cents
}

// ValidateSelection checks a seat selection against the grid and the seats
// already taken for the screening.
func ValidateSelection(selected []string, occupied seats.Set) error {
	if len(selected) == 0 {
		return &ValidationError{Field: "seats", Err: ErrNoSeats}
	}
	seen := seats.Set{}
	for _, id := range selected {
		if !seats.Valid(id) || seen.Has(id) {
			return &ValidationError{Field: "seats", Err: fmt.Errorf("%w: %q", ErrInvalidSeat, id)}
		}
		seen.Add(id)
		if occupied.Has(id) {
			return &ValidationError{Field: "seats", Err: fmt.Errorf("%w: %s", ErrSeatTaken, id)}
		}
	}
	return nil
}

// Finalize builds the booking for a paid order. It has no side effects.
func Finalize(req Request, clock Clock) (model.Booking, error) {
	name := strings.TrimSpace(req.Name)
	contact := strings.TrimSpace(req.Contact)
	if name == "" {
		return model.Booking{}, &ValidationError{Field: "name", Err: ErrEmptyName}
	}
	if contact == "" {
		return model.Booking{}, &ValidationError{Field: "contact", Err: ErrEmptyContact}
	}
	if len(req.Seats) == 0 {
		return model.Booking{}, &ValidationError{Field: "seats", Err: ErrNoSeats}
	}
	if clock == nil {
		clock = SystemClock
	}
	return model.Booking{
		Timestamp: clock.Now().Format(model.TimestampLayout),
		Name:      name,
		Contact:   contact,
		Movie:     req.Movie,
		Showtime:  req.Showtime,
		Seats:     append([]string(nil), req.Seats...),
		Total:     req.Total,
	}, nil
}

// IsValidation reports whether err was caused by rejected user input.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
