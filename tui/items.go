package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"cinema-booking-cli/model"
	"cinema-booking-cli/seats"
	"cinema-booking-cli/session"
)

type movieItem struct {
	movie model.Movie
}

func (m movieItem) Title() string {
	return m.movie.Title
}

func (m movieItem) Description() string {
	return fmt.Sprintf("%s • ★ %.1f • %s per seat", m.movie.Genre, m.movie.Rating, m.movie.Price)
}

func (m movieItem) FilterValue() string {
	return strings.ToLower(strings.Join([]string{m.movie.Title, m.movie.Genre}, " "))
}

func buildMovieItems(movies []model.Movie) []list.Item {
	items := make([]list.Item, 0, len(movies))
	for _, mv := range movies {
		items = append(items, movieItem{movie: mv})
	}
	return items
}

type showtimeItem struct {
	showtime string
	free     int
}

func (s showtimeItem) Title() string {
	return s.showtime
}

func (s showtimeItem) Description() string {
	if s.free == 0 {
		return "Sold out"
	}
	return fmt.Sprintf("%d seats available", s.free)
}

func (s showtimeItem) FilterValue() string {
	return strings.ToLower(s.showtime)
}

func buildShowtimeItems(mv model.Movie, sess *session.Session) []list.Item {
	items := make([]list.Item, 0, len(mv.Showtimes))
	for _, st := range mv.Showtimes {
		items = append(items, showtimeItem{
			showtime: st,
			free:     seats.Available(sess.Occupied(mv.Title, st)),
		})
	}
	return items
}

func newBookingsTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 3},
		{Title: "Timestamp", Width: 19},
		{Title: "Name", Width: 16},
		{Title: "Contact", Width: 18},
		{Title: "Movie", Width: 18},
		{Title: "Showtime", Width: 9},
		{Title: "Seats", Width: 14},
		{Title: "Total", Width: 10},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57"))
	t.SetStyles(styles)
	return t
}

func buildBookingRows(bookings []model.Booking) []table.Row {
	rows := make([]table.Row, 0, len(bookings))
	for i, b := range bookings {
		rows = append(rows, table.Row{
			strconv.Itoa(i + 1),
			b.Timestamp,
			b.Name,
			b.Contact,
			b.Movie,
			b.Showtime,
			strings.Join(b.Seats, ","),
			b.Total.String(),
		})
	}
	return rows
}

func (m appModel) pastBookingsView() string {
	bookings := m.session.Bookings()
	if len(bookings) == 0 {
		return "No bookings yet.\n\n" + hint("Book a movie first, then come back here.")
	}
	var sum model.Cents
	for _, b := range bookings {
		sum += b.Total
	}
	footer := fmt.Sprintf("%d booking(s) • %s collected", len(bookings), sum)
	return m.bookingsTbl.View() + "\n\n" + hint(footer)
}
