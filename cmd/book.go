package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"cinema-booking-cli/checkout"
	"cinema-booking-cli/model"
	"cinema-booking-cli/seats"
	"cinema-booking-cli/session"
	"cinema-booking-cli/store"
)

var errAbandoned = errors.New("booking abandoned")

func newBookCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "book",
		Short: "Book seats with interactive prompts",
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			b, err := runBookingPrompts(cmd, a)
			if errors.Is(err, errAbandoned) {
				fmt.Fprintln(cmd.OutOrStdout(), "Booking cancelled.")
				return nil
			}
			if err != nil {
				return err
			}
			if err := store.RememberCustomer(b.Name, b.Contact); err != nil {
				a.log.Warn("failed to remember customer", "error", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Booking completed!")
			fmt.Fprint(cmd.OutOrStdout(), store.RenderReceipt(b))
			return nil
		}),
	}
}

func runBookingPrompts(cmd *cobra.Command, a *app) (model.Booking, error) {
	out := cmd.OutOrStdout()

	movies := a.session.Movies()
	movieSelect := promptui.Select{
		Label: "Select a movie to book",
		Items: movieLabels(movies),
		Size:  10,
	}
	idx, _, err := movieSelect.Run()
	if err != nil {
		return model.Booking{}, promptErr(err)
	}
	movie := movies[idx]

	showSelect := promptui.Select{
		Label: "Select showtime",
		Items: movie.Showtimes,
	}
	_, showtime, err := showSelect.Run()
	if err != nil {
		return model.Booking{}, promptErr(err)
	}

	occupied := a.session.Occupied(movie.Title, showtime)
	fmt.Fprintf(out, "\n%s (%s)\n", movie.Title, showtime)
	renderSeatGrid(out, occupied)

	seatPrompt := promptui.Prompt{
		Label: "Seats (e.g. A1 A2)",
		Validate: func(input string) error {
			return checkout.ValidateSelection(seats.ParseList(input), occupied)
		},
	}
	seatInput, err := seatPrompt.Run()
	if err != nil {
		return model.Booking{}, promptErr(err)
	}
	selected := seats.ParseList(seatInput)
	seats.Sort(selected)

	quote := checkout.PriceQuote(movie.Price, len(selected))
	fmt.Fprintf(out, "\nSeats: %s\n", strings.Join(selected, ", "))
	fmt.Fprintf(out, "Price per seat: %s\n", movie.Price)
	fmt.Fprintf(out, "Subtotal: %s\n", quote.Subtotal)
	fmt.Fprintf(out, "Tax (%d%%): %s\n", checkout.TaxPercent, quote.Tax)
	fmt.Fprintf(out, "TOTAL: %s\n\n", quote.Total)

	var last store.RecentCustomer
	if recents, err := store.LoadRecentCustomers(); err == nil && len(recents) > 0 {
		last = recents[0]
	}
	name, err := (&promptui.Prompt{Label: "Your name", Default: last.Name, Validate: required("name")}).Run()
	if err != nil {
		return model.Booking{}, promptErr(err)
	}
	contact, err := (&promptui.Prompt{Label: "Contact (phone/email)", Default: last.Contact, Validate: required("contact")}).Run()
	if err != nil {
		return model.Booking{}, promptErr(err)
	}

	confirm := promptui.Prompt{
		Label:     fmt.Sprintf("Pay %s (mock)", quote.Total),
		IsConfirm: true,
	}
	if _, err := confirm.Run(); err != nil {
		return model.Booking{}, errAbandoned
	}

	return a.session.Book(cmd.Context(), session.Request{
		Movie:    movie.Title,
		Showtime: showtime,
		Seats:    selected,
		Name:     name,
		Contact:  contact,
	})
}

func movieLabels(movies []model.Movie) []string {
	labels := make([]string, 0, len(movies))
	for _, m := range movies {
		labels = append(labels, fmt.Sprintf("%s • %s • %.1f • %s", m.Title, m.Genre, m.Rating, m.Price))
	}
	return labels
}

func required(field string) promptui.ValidateFunc {
	return func(input string) error {
		if strings.TrimSpace(input) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func promptErr(err error) error {
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) || errors.Is(err, promptui.ErrAbort) {
		return errAbandoned
	}
	return err
}

// renderSeatGrid prints the auditorium with taken seats marked XX.
func renderSeatGrid(w io.Writer, occupied seats.Set) {
	var b strings.Builder
	b.WriteString("   ")
	for c := 1; c <= seats.Columns; c++ {
		fmt.Fprintf(&b, "%3d", c)
	}
	b.WriteString("\n")
	for r := seats.FirstRow; r <= seats.LastRow; r++ {
		fmt.Fprintf(&b, " %c ", r)
		for c := 1; c <= seats.Columns; c++ {
			if occupied.Has(seats.ID(r, c)) {
				b.WriteString(" XX")
			} else {
				b.WriteString(" []")
			}
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "   %s\n", strings.Repeat("-", seats.Columns*3))
	fmt.Fprintf(&b, "   %s\n", centerText("SCREEN", seats.Columns*3))
	fmt.Fprintf(&b, "   [] free • XX taken • %d of %d free\n\n", seats.Available(occupied), seats.Rows*seats.Columns)
	fmt.Fprint(w, b.String())
}

func centerText(s string, width int) string {
	if len(s) >= width {
		return s
	}
	left := (width - len(s)) / 2
	return strings.Repeat(" ", left) + s
}
