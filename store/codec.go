package store

import (
	"errors"
	"fmt"
	"strings"

	"cinema-booking-cli/model"
	"cinema-booking-cli/seats"
)

const (
	fieldSeparator = "|"
	seatSeparator  = ","
	fieldCount     = 7
)

var (
	ErrMalformedLine = errors.New("malformed booking line")
	ErrUnsafeField   = errors.New("field contains a reserved character")
)

// Encode renders a booking as one line of the bookings file, without the
// trailing newline:
//
//	timestamp|name|contact|movie|showtime|A1,A2|336.00
func Encode(b model.Booking) (string, error) {
	fields := []string{b.Timestamp, b.Name, b.Contact, b.Movie, b.Showtime}
	for _, f := range fields {
		if strings.ContainsAny(f, fieldSeparator+"\r\n") {
			return "", fmt.Errorf("%w: %q", ErrUnsafeField, f)
		}
	}
	for _, seat := range b.Seats {
		if strings.ContainsAny(seat, fieldSeparator+seatSeparator+"\r\n") {
			return "", fmt.Errorf("%w: seat %q", ErrUnsafeField, seat)
		}
	}
	fields = append(fields, strings.Join(b.Seats, seatSeparator), b.Total.String())
	return strings.Join(fields, fieldSeparator), nil
}

// Decode parses one line of the bookings file. Every seat must be on the
// grid. Fields past the seventh are ignored.
func Decode(line string) (model.Booking, error) {
	parts := strings.Split(strings.TrimRight(line, "\r\n"), fieldSeparator)
	if len(parts) < fieldCount {
		return model.Booking{}, fmt.Errorf("%w: expected %d fields, got %d", ErrMalformedLine, fieldCount, len(parts))
	}
	total, err := model.ParseCents(parts[6])
	if err != nil {
		return model.Booking{}, fmt.Errorf("%w: %v", ErrMalformedLine, err)
	}
	if parts[5] == "" {
		return model.Booking{}, fmt.Errorf("%w: no seats", ErrMalformedLine)
	}
	seatList := strings.Split(parts[5], seatSeparator)
	for _, id := range seatList {
		if !seats.Valid(id) {
			return model.Booking{}, fmt.Errorf("%w: seat %q", ErrMalformedLine, id)
		}
	}
	return model.Booking{
		Timestamp: parts[0],
		Name:      parts[1],
		Contact:   parts[2],
		Movie:     parts[3],
		Showtime:  parts[4],
		Seats:     seatList,
		Total:     total,
	}, nil
}
