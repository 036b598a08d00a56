package model

import "time"

// TimestampLayout is the format bookings are stamped with at checkout.
const TimestampLayout = time.DateTime

type Booking struct {
	Timestamp string   `json:"timestamp"`
	Name      string   `json:"name"`
	Contact   string   `json:"contact"`
	Movie     string   `json:"movie"`
	Showtime  string   `json:"showtime"`
	Seats     []string `json:"seats"`
	Total     Cents    `json:"total"`
}

// Matches reports whether the booking belongs to the given screening.
func (b Booking) Matches(movie string, showtime string) bool {
	return b.Movie == movie && b.Showtime == showtime
}
