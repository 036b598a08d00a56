// Package session ties the catalog, seat availability, checkout and booking
// storage together for one user of the application.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"cinema-booking-cli/catalog"
	"cinema-booking-cli/checkout"
	"cinema-booking-cli/logger"
	"cinema-booking-cli/model"
	"cinema-booking-cli/seats"
	"cinema-booking-cli/store"
)

var (
	ErrUnknownMovie    = errors.New("movie not found")
	ErrUnknownShowtime = errors.New("showtime not found")
	ErrSeatTaken       = checkout.ErrSeatTaken
)

// Session owns the in-memory catalog and bookings. It is not safe for
// concurrent use.
type Session struct {
	catalog  *catalog.Catalog
	store    store.BookingStore
	clock    checkout.Clock
	log      *slog.Logger
	bookings []model.Booking
}

type Request struct {
	Movie    string
	Showtime string
	Seats    []string
	Name     string
	Contact  string
}

func New(c *catalog.Catalog, s store.BookingStore, clock checkout.Clock, log *slog.Logger) *Session {
	if c == nil {
		c = catalog.Default()
	}
	if clock == nil {
		clock = checkout.SystemClock
	}
	if log == nil {
		log = logger.Discard()
	}
	return &Session{catalog: c, store: s, clock: clock, log: log}
}

// Open loads the persisted bookings. On failure the session keeps whatever
// could be read and the error is returned for the caller to report.
func (s *Session) Open(ctx context.Context) error {
	bookings, err := s.store.Load(ctx)
	s.bookings = bookings
	if err != nil {
		s.log.Error("failed to load bookings", slog.String("error", err.Error()))
		return fmt.Errorf("load bookings: %w", err)
	}
	s.log.Info("session opened", slog.Int("bookings", len(bookings)), slog.Int("movies", s.catalog.Len()))
	return nil
}

func (s *Session) Movies() []model.Movie {
	return s.catalog.List()
}

func (s *Session) SortByRating() {
	s.catalog.SortByRatingDescending()
}

func (s *Session) Movie(title string) (model.Movie, error) {
	m, ok := s.catalog.Find(title)
	if !ok {
		return model.Movie{}, fmt.Errorf("%w: %q", ErrUnknownMovie, title)
	}
	return m, nil
}

// Occupied returns the seats already booked for a screening.
func (s *Session) Occupied(movie string, showtime string) seats.Set {
	return seats.Occupied(movie, showtime, s.bookings)
}

func (s *Session) Quote(movie string, seatCount int) (checkout.Quote, error) {
	m, err := s.Movie(movie)
	if err != nil {
		return checkout.Quote{}, err
	}
	return checkout.PriceQuote(m.Price, seatCount), nil
}

// Book validates and prices the request, persists the booking and then adds
// it to the session. Seats already taken in this session are rejected.
func (s *Session) Book(ctx context.Context, req Request) (model.Booking, error) {
	m, err := s.Movie(req.Movie)
	if err != nil {
		return model.Booking{}, err
	}
	if !m.HasShowtime(req.Showtime) {
		return model.Booking{}, fmt.Errorf("%w: %q for %q", ErrUnknownShowtime, req.Showtime, m.Title)
	}
	if err := checkout.ValidateSelection(req.Seats, s.Occupied(m.Title, req.Showtime)); err != nil {
		return model.Booking{}, err
	}

	quote := checkout.PriceQuote(m.Price, len(req.Seats))
	b, err := checkout.Finalize(checkout.Request{
		Name:     req.Name,
		Contact:  req.Contact,
		Movie:    m.Title,
		Showtime: req.Showtime,
		Seats:    req.Seats,
		Total:    quote.Total,
	}, s.clock)
	if err != nil {
		return model.Booking{}, err
	}

	if err := s.store.Append(ctx, b); err != nil {
		s.log.Error("failed to save booking", slog.String("movie", b.Movie), slog.String("error", err.Error()))
		return model.Booking{}, fmt.Errorf("save booking: %w", err)
	}
	s.bookings = append(s.bookings, b)
	s.log.Info("booking saved",
		slog.String("movie", b.Movie),
		slog.String("showtime", b.Showtime),
		slog.Int("seats", len(b.Seats)),
		slog.String("total", b.Total.String()),
	)
	return b, nil
}

// Bookings returns the bookings in the order they were made.
func (s *Session) Bookings() []model.Booking {
	out := make([]model.Booking, len(s.bookings))
	copy(out, s.bookings)
	return out
}

// ExportAll rewrites the store from the in-memory bookings.
func (s *Session) ExportAll(ctx context.Context) error {
	if err := s.store.SaveAll(ctx, s.bookings); err != nil {
		s.log.Error("failed to export bookings", slog.String("error", err.Error()))
		return fmt.Errorf("export bookings: %w", err)
	}
	s.log.Info("bookings exported", slog.Int("count", len(s.bookings)))
	return nil
}
