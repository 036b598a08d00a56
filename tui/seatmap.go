package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"cinema-booking-cli/seats"
)

const cellWidth = 3

func (m appModel) renderSeatMap() string {
	var b strings.Builder
	seatStyleAvailable := lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	seatStyleOccupied := lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	seatStyleSelected := lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("2")).Bold(true)
	cursorStyle := lipgloss.NewStyle().Reverse(true)

	b.WriteString("   ")
	for c := 1; c <= seats.Columns; c++ {
		b.WriteString(padCell(fmt.Sprintf("%d", c), cellWidth))
	}
	b.WriteString("\n")

	for r := 0; r < seats.Rows; r++ {
		row := seats.FirstRow + rune(r)
		b.WriteString(fmt.Sprintf("%c  ", row))
		for c := 0; c < seats.Columns; c++ {
			id := seats.ID(row, c+1)
			var rendered string
			switch {
			case m.occupied.Has(id):
				rendered = seatStyleOccupied.Render(padCell("XX", cellWidth))
			case m.selected.Has(id):
				rendered = seatStyleSelected.Render(padCell("[]", cellWidth))
			default:
				rendered = seatStyleAvailable.Render(padCell("[]", cellWidth))
			}
			if r == m.cursorRow && c == m.cursorCol {
				rendered = cursorStyle.Render(rendered)
			}
			b.WriteString(rendered)
		}
		b.WriteString("\n")
	}

	gridWidth := 3 + seats.Columns*cellWidth
	b.WriteString("\n")
	b.WriteString(centerLabel("SCREEN", gridWidth))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Faint(true).Render(strings.Repeat("‾", gridWidth)))
	b.WriteString("\n\n")

	free := seats.Available(m.occupied)
	legend := fmt.Sprintf("%s free • %s taken • %s selected",
		seatStyleAvailable.Render("[]"),
		seatStyleOccupied.Render("XX"),
		seatStyleSelected.Render("[]"),
	)
	b.WriteString(legend)
	b.WriteString("\n")
	b.WriteString(hint(fmt.Sprintf("%d of %d seats available • cursor on %s", free, seats.Rows*seats.Columns, m.cursorSeat())))
	if n := m.selected.Len(); n > 0 {
		quote := m.seatQuote()
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("%d seat(s) selected • total %s (incl. tax)", n, quote))
	}
	return b.String()
}

func (m appModel) seatQuote() string {
	q, err := m.session.Quote(m.movie.Title, m.selected.Len())
	if err != nil {
		return "-"
	}
	return q.Total.String()
}

func padCell(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return text + strings.Repeat(" ", width-w)
}

func centerLabel(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	left := (width - w) / 2
	return strings.Repeat(" ", left) + text
}
