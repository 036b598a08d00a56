package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"cinema-booking-cli/model"
)

func renderMovies(w io.Writer, movies []model.Movie) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Movie Title", "Genre", "Rating", "Showtime", "Price"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, WidthMax: 28},
		{Number: 3, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
	})
	for _, m := range movies {
		show := m.DefaultShowtime()
		if show == "" {
			show = "-"
		}
		t.AppendRow(table.Row{m.Title, m.Genre, fmt.Sprintf("%.1f", m.Rating), show, m.Price.String()})
	}
	t.Render()
}

func renderBookings(w io.Writer, bookings []model.Booking) {
	if len(bookings) == 0 {
		fmt.Fprintln(w, "No bookings yet.")
		return
	}
	rowConfigAutoMerge := table.RowConfig{AutoMerge: true}
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"#", "Timestamp", "Name", "Contact", "Movie", "Showtime", "Seats", "Total"}, rowConfigAutoMerge)
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 5, AutoMerge: true, WidthMax: 24},
		{Number: 8, Align: text.AlignRight},
	})
	var total model.Cents
	for i, b := range bookings {
		t.AppendRow(table.Row{i + 1, b.Timestamp, b.Name, b.Contact, b.Movie, b.Showtime, strings.Join(b.Seats, ","), b.Total.String()})
		total += b.Total
	}
	t.AppendFooter(table.Row{"", "", "", "", "", "", "Total", total.String()})
	t.Render()
}
