package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"cinema-booking-cli/checkout"
	"cinema-booking-cli/logger"
	"cinema-booking-cli/model"
	"cinema-booking-cli/seats"
	"cinema-booking-cli/session"
	"cinema-booking-cli/store"
)

type appState int

const (
	stateSelectMovie appState = iota
	stateMovieDetails
	stateSelectShowtime
	stateSelectSeats
	stateCheckout
	stateSaving
	stateExporting
	stateReceipt
	stateSaveReceipt
	statePastBookings
	stateError
)

// Options configures the parts of the UI that depend on the environment.
type Options struct {
	// Context bounds storage calls made from the UI.
	Context         context.Context
	Log             *slog.Logger
	ReceiptDir      string
	StorageLocation string
}

type appModel struct {
	session *session.Session
	opts    Options

	state     appState
	lastState appState
	err       error

	width  int
	height int

	movieList    list.Model
	showtimeList list.Model

	movie    model.Movie
	showtime string

	occupied  seats.Set
	selected  seats.Set
	cursorRow int
	cursorCol int

	nameInput    textinput.Model
	contactInput textinput.Model
	pathInput    textinput.Model
	focusContact bool

	booking        model.Booking
	bookingsTbl    table.Model
	receiptHistory bool

	spinner spinner.Model

	notice      string
	noticeIsErr bool
}

type errMsg struct {
	err            error
	returnState    appState
	returnStateSet bool
}

type bookingMsg struct {
	booking model.Booking
	err     error
}

type receiptSavedMsg struct {
	path string
	err  error
}

type exportMsg struct {
	err error
}

func New(sess *session.Session, opts Options) tea.Model {
	if strings.TrimSpace(opts.ReceiptDir) == "" {
		opts.ReceiptDir = "."
	}
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Log == nil {
		opts.Log = logger.Discard()
	}
	m := appModel{
		session:  sess,
		opts:     opts,
		state:    stateSelectMovie,
		occupied: seats.Set{},
		selected: seats.Set{},
	}

	m.movieList = newList("Movies")
	m.showtimeList = newList("Select Showtime")
	m.movieList.SetItems(buildMovieItems(sess.Movies()))

	m.nameInput = newInput("Your name", 64)
	m.contactInput = newInput("Contact (phone/email)", 64)
	m.pathInput = newInput("receipt.txt", 256)

	m.bookingsTbl = newBookingsTable()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	m.spinner = sp

	return m
}

func (m appModel) Init() tea.Cmd {
	return nil
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeViews()
		return m, nil

	case tea.KeyMsg:
		if m.handleFilterInput(msg) {
			return m, nil
		}
		next, cmd, handled := m.handleKey(msg)
		if handled {
			return next, cmd
		}
		m = next

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.state == stateSaving || m.state == stateExporting {
			return m, cmd
		}
		return m, nil

	case errMsg:
		m.err = msg.err
		if msg.returnStateSet {
			m.lastState = msg.returnState
		} else {
			m.lastState = recoverStateFrom(m.state)
		}
		m.state = stateError
		return m, nil

	case bookingMsg:
		if msg.err != nil {
			if checkout.IsValidation(msg.err) || errors.Is(msg.err, session.ErrSeatTaken) {
				m.refreshOccupied()
				m.state = stateSelectSeats
				m.setNotice(msg.err.Error(), true)
				return m, nil
			}
			return m, errWithReturnCmd(fmt.Errorf("booking failed: %w", msg.err), stateCheckout)
		}
		m.booking = msg.booking
		m.receiptHistory = false
		m.selected = seats.Set{}
		m.state = stateReceipt
		m.setNotice("Booking completed!", false)
		return m, nil

	case receiptSavedMsg:
		if msg.err != nil {
			return m, errWithReturnCmd(fmt.Errorf("failed to save receipt: %w", msg.err), stateReceipt)
		}
		m.state = stateReceipt
		m.setNotice("Receipt saved to "+msg.path, false)
		return m, nil

	case exportMsg:
		m.state = stateSelectMovie
		if msg.err != nil {
			return m, errWithReturnCmd(fmt.Errorf("failed to save bookings: %w", msg.err), stateSelectMovie)
		}
		m.setNotice("All bookings saved to: "+m.opts.StorageLocation, false)
		return m, nil
	}

	var cmd tea.Cmd
	switch m.state {
	case stateSelectMovie:
		m.movieList, cmd = m.movieList.Update(msg)
	case stateSelectShowtime:
		m.showtimeList, cmd = m.showtimeList.Update(msg)
	case stateCheckout:
		if m.focusContact {
			m.contactInput, cmd = m.contactInput.Update(msg)
		} else {
			m.nameInput, cmd = m.nameInput.Update(msg)
		}
	case stateSaveReceipt:
		m.pathInput, cmd = m.pathInput.Update(msg)
	case statePastBookings:
		m.bookingsTbl, cmd = m.bookingsTbl.Update(msg)
	}
	return m, cmd
}

func (m appModel) View() string {
	header := m.headerView()
	body := ""
	switch m.state {
	case stateSelectMovie:
		body = m.movieList.View()
	case stateMovieDetails:
		body = m.movieDetailsView()
	case stateSelectShowtime:
		body = m.showtimeList.View()
	case stateSelectSeats:
		body = m.renderSeatMap()
	case stateCheckout:
		body = m.checkoutView()
	case stateSaving:
		body = fmt.Sprintf("%s Processing payment\n\n%s", m.spinner.View(), hint("Saving booking..."))
	case stateExporting:
		body = fmt.Sprintf("%s Saving all bookings\n\n%s", m.spinner.View(), hint(m.opts.StorageLocation))
	case stateReceipt:
		body = receiptStyle.Render(store.RenderReceipt(m.booking))
	case stateSaveReceipt:
		body = receiptStyle.Render(store.RenderReceipt(m.booking)) + "\n\nSave receipt as:\n" + m.pathInput.View()
	case statePastBookings:
		body = m.pastBookingsView()
	case stateError:
		body = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Render(m.err.Error()) + "\n\n" + hint("Press esc to go back or ctrl+c to quit.")
	}
	out := header + "\n\n" + body
	if m.notice != "" && m.state != stateError {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
		if m.noticeIsErr {
			style = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
		}
		out += "\n\n" + style.Render(m.notice)
	}
	return out
}

var receiptStyle = lipgloss.NewStyle().
	Padding(0, 2).
	Border(lipgloss.NormalBorder()).
	BorderForeground(lipgloss.Color("63"))

func (m appModel) headerView() string {
	title := lipgloss.NewStyle().Bold(true).Render("Movie Booking System")
	sub := []string{}
	if m.movie.Title != "" && m.state != stateSelectMovie && m.state != statePastBookings {
		sub = append(sub, fmt.Sprintf("Movie: %s", m.movie.Title))
	}
	if m.showtime != "" && (m.state == stateSelectSeats || m.state == stateCheckout || m.state == stateSaving) {
		sub = append(sub, fmt.Sprintf("Showtime: %s", m.showtime))
	}
	if m.selected.Len() > 0 && (m.state == stateSelectSeats || m.state == stateCheckout) {
		sub = append(sub, fmt.Sprintf("Seats: %s", strings.Join(m.selected.Sorted(), ", ")))
	}
	meta := strings.Join(sub, " • ")
	if meta != "" {
		meta = "\n" + lipgloss.NewStyle().Faint(true).Render(meta)
	}
	hints := "ctrl+c quit • esc back"
	switch m.state {
	case stateSelectMovie:
		hints = "ctrl+c quit • type to filter • enter book • ctrl+o details • ctrl+r sort by rating • ctrl+b past bookings • ctrl+e save all"
	case stateSelectShowtime:
		hints = "ctrl+c quit • esc back • enter select showtime"
	case stateSelectSeats:
		hints = "ctrl+c quit • esc back • arrows move • space toggle seat • enter checkout"
	case stateCheckout:
		hints = "ctrl+c quit • esc back • tab next field • enter pay (mock)"
	case stateReceipt:
		hints = "ctrl+c quit • esc/enter done • ctrl+s save receipt as txt"
	case stateSaveReceipt:
		hints = "ctrl+c quit • esc cancel • enter save"
	case statePastBookings:
		hints = "ctrl+c quit • esc back • up/down scroll • enter open receipt"
	}
	filterLine := ""
	if listPtr := m.activeList(); listPtr != nil {
		if filter := listPtr.FilterValue(); filter != "" {
			filterLine = "\n" + hint(fmt.Sprintf("Filter: %s", filter))
		}
	}
	return title + meta + filterLine + "\n" + hint(hints)
}

func (m appModel) movieDetailsView() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Title: %s\n", m.movie.Title)
	fmt.Fprintf(&b, "Genre: %s\n", m.movie.Genre)
	fmt.Fprintf(&b, "Rating: %.1f\n", m.movie.Rating)
	fmt.Fprintf(&b, "Showtimes: %s\n", strings.Join(m.movie.Showtimes, ", "))
	fmt.Fprintf(&b, "Price per seat: %s\n", m.movie.Price)
	return receiptStyle.Render(b.String()) + "\n\n" + hint("enter book • esc back")
}

func (m appModel) checkoutView() string {
	quote := checkout.PriceQuote(m.movie.Price, m.selected.Len())
	var b strings.Builder
	fmt.Fprintf(&b, "Movie: %s\n", m.movie.Title)
	fmt.Fprintf(&b, "Showtime: %s\n", m.showtime)
	fmt.Fprintf(&b, "Seats: %s\n\n", strings.Join(m.selected.Sorted(), ", "))
	fmt.Fprintf(&b, "Price per seat: %s\n", m.movie.Price)
	fmt.Fprintf(&b, "Subtotal: %s\n", quote.Subtotal)
	fmt.Fprintf(&b, "Tax (%d%%): %s\n", checkout.TaxPercent, quote.Tax)
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("TOTAL: %s", quote.Total)))
	b.WriteString("\n\n")
	b.WriteString("Your name:\n" + m.nameInput.View() + "\n\n")
	b.WriteString("Contact (phone/email):\n" + m.contactInput.View())
	return b.String()
}

func (m appModel) handleKey(msg tea.KeyMsg) (appModel, tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit, true
	case "q":
		switch m.state {
		case stateMovieDetails, stateSelectSeats, stateReceipt, statePastBookings, stateError:
			return m, tea.Quit, true
		}
	case "esc":
		if listPtr := m.activeList(); listPtr != nil {
			if listPtr.SettingFilter() || listPtr.IsFiltered() {
				listPtr.ResetFilter()
				return m, nil, true
			}
		}
		next, cmd := m.goBack()
		return next, cmd, true
	}

	switch m.state {
	case stateSelectMovie:
		return m.handleMovieListKey(msg)
	case stateMovieDetails:
		if msg.Type == tea.KeyEnter {
			return m.openShowtimes()
		}
	case stateSelectShowtime:
		if msg.Type == tea.KeyEnter {
			item, ok := m.showtimeList.SelectedItem().(showtimeItem)
			if !ok {
				return m, nil, true
			}
			m.showtime = item.showtime
			m.selected = seats.Set{}
			m.cursorRow, m.cursorCol = 0, 0
			m.refreshOccupied()
			m.clearNotice()
			m.state = stateSelectSeats
			return m, nil, true
		}
	case stateSelectSeats:
		return m.handleSeatKey(msg)
	case stateCheckout:
		return m.handleCheckoutKey(msg)
	case stateReceipt:
		switch msg.String() {
		case "ctrl+s":
			m.pathInput.SetValue(filepath.Join(m.opts.ReceiptDir, store.ReceiptFileName(m.booking)))
			m.pathInput.CursorEnd()
			m.clearNotice()
			m.state = stateSaveReceipt
			cmd := m.pathInput.Focus()
			return m, cmd, true
		case "enter":
			next, cmd := m.goBack()
			return next, cmd, true
		}
	case stateSaveReceipt:
		if msg.Type == tea.KeyEnter {
			path := strings.TrimSpace(m.pathInput.Value())
			if path == "" {
				m.setNotice("Enter a file name for the receipt.", true)
				return m, nil, true
			}
			m.pathInput.Blur()
			return m, saveReceiptCmd(path, m.booking), true
		}
	case statePastBookings:
		if msg.Type == tea.KeyEnter {
			bookings := m.session.Bookings()
			i := m.bookingsTbl.Cursor()
			if i < 0 || i >= len(bookings) {
				return m, nil, true
			}
			m.booking = bookings[i]
			m.clearNotice()
			m.receiptHistory = true
			m.state = stateReceipt
			return m, nil, true
		}
	case stateError:
		return m, nil, true
	}
	return m, nil, false
}

func (m appModel) handleMovieListKey(msg tea.KeyMsg) (appModel, tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+r":
		m.session.SortByRating()
		m.movieList.SetItems(buildMovieItems(m.session.Movies()))
		m.movieList.Select(0)
		m.setNotice("Movies sorted by rating (highest → lowest)", false)
		return m, nil, true
	case "ctrl+o":
		item, ok := m.movieList.SelectedItem().(movieItem)
		if !ok {
			return m, nil, true
		}
		m.movie = item.movie
		m.clearNotice()
		m.state = stateMovieDetails
		return m, nil, true
	case "ctrl+b":
		m.bookingsTbl.SetRows(buildBookingRows(m.session.Bookings()))
		m.bookingsTbl.GotoTop()
		m.clearNotice()
		m.state = statePastBookings
		return m, nil, true
	case "ctrl+e":
		m.clearNotice()
		m.state = stateExporting
		return m, tea.Batch(m.exportCmd(), m.spinner.Tick), true
	case "enter":
		item, ok := m.movieList.SelectedItem().(movieItem)
		if !ok {
			return m, nil, true
		}
		m.movie = item.movie
		return m.openShowtimes()
	}
	return m, nil, false
}

func (m appModel) openShowtimes() (appModel, tea.Cmd, bool) {
	if len(m.movie.Showtimes) == 0 {
		return m, errCmd(fmt.Errorf("no showtimes for %s", m.movie.Title)), true
	}
	m.showtimeList.Title = fmt.Sprintf("Select Showtime • %s", m.movie.Title)
	m.showtimeList.SetItems(buildShowtimeItems(m.movie, m.session))
	m.showtimeList.Select(0)
	m.clearNotice()
	m.state = stateSelectShowtime
	return m, nil, true
}

func (m appModel) handleSeatKey(msg tea.KeyMsg) (appModel, tea.Cmd, bool) {
	switch msg.String() {
	case "up", "k":
		m.cursorRow = max(0, m.cursorRow-1)
	case "down", "j":
		m.cursorRow = min(seats.Rows-1, m.cursorRow+1)
	case "left", "h":
		m.cursorCol = max(0, m.cursorCol-1)
	case "right", "l":
		m.cursorCol = min(seats.Columns-1, m.cursorCol+1)
	case " ", "x":
		m.toggleSeat(m.cursorSeat())
	case "enter":
		return m.openCheckout()
	default:
		return m, nil, false
	}
	return m, nil, true
}

func (m *appModel) toggleSeat(id string) {
	if m.occupied.Has(id) {
		m.setNotice(fmt.Sprintf("Seat %s is already booked.", id), true)
		return
	}
	m.clearNotice()
	if m.selected.Has(id) {
		delete(m.selected, id)
		return
	}
	m.selected.Add(id)
}

func (m appModel) cursorSeat() string {
	return seats.ID(seats.FirstRow+rune(m.cursorRow), m.cursorCol+1)
}

func (m appModel) openCheckout() (appModel, tea.Cmd, bool) {
	if err := checkout.ValidateSelection(m.selected.Sorted(), m.occupied); err != nil {
		if errors.Is(err, checkout.ErrNoSeats) {
			m.setNotice("Please select at least one seat.", true)
		} else {
			m.setNotice(err.Error(), true)
		}
		return m, nil, true
	}
	if m.nameInput.Value() == "" && m.contactInput.Value() == "" {
		if recents, err := store.LoadRecentCustomers(); err == nil && len(recents) > 0 {
			m.nameInput.SetValue(recents[0].Name)
			m.contactInput.SetValue(recents[0].Contact)
		}
	}
	m.focusContact = false
	m.contactInput.Blur()
	m.clearNotice()
	m.state = stateCheckout
	cmd := m.nameInput.Focus()
	return m, cmd, true
}

func (m appModel) handleCheckoutKey(msg tea.KeyMsg) (appModel, tea.Cmd, bool) {
	switch msg.String() {
	case "tab", "shift+tab", "up", "down":
		cmd := m.switchCheckoutFocus()
		return m, cmd, true
	case "enter":
		if !m.focusContact {
			cmd := m.switchCheckoutFocus()
			return m, cmd, true
		}
		name := strings.TrimSpace(m.nameInput.Value())
		contact := strings.TrimSpace(m.contactInput.Value())
		if name == "" || contact == "" {
			m.setNotice("Please enter name and contact.", true)
			return m, nil, true
		}
		m.clearNotice()
		m.state = stateSaving
		req := session.Request{
			Movie:    m.movie.Title,
			Showtime: m.showtime,
			Seats:    m.selected.Sorted(),
			Name:     name,
			Contact:  contact,
		}
		return m, tea.Batch(m.bookCmd(req), m.spinner.Tick), true
	}
	return m, nil, false
}

func (m *appModel) switchCheckoutFocus() tea.Cmd {
	m.focusContact = !m.focusContact
	if m.focusContact {
		m.nameInput.Blur()
		return m.contactInput.Focus()
	}
	m.contactInput.Blur()
	return m.nameInput.Focus()
}

func (m appModel) goBack() (appModel, tea.Cmd) {
	m.clearNotice()
	switch m.state {
	case stateMovieDetails, stateSelectShowtime, statePastBookings:
		m.state = stateSelectMovie
	case stateSelectSeats:
		m.selected = seats.Set{}
		m.state = stateSelectShowtime
	case stateCheckout:
		m.nameInput.Blur()
		m.contactInput.Blur()
		m.state = stateSelectSeats
	case stateReceipt:
		if m.receiptHistory {
			m.receiptHistory = false
			m.state = statePastBookings
			return m, nil
		}
		m.movie = model.Movie{}
		m.showtime = ""
		m.state = stateSelectMovie
	case stateSaveReceipt:
		m.pathInput.Blur()
		m.state = stateReceipt
	case stateError:
		m.state = m.lastState
	default:
		return m, nil
	}
	return m, nil
}

func (m *appModel) handleFilterInput(msg tea.KeyMsg) bool {
	listPtr := m.activeList()
	if listPtr == nil {
		return false
	}
	if !listPtr.FilteringEnabled() {
		return false
	}
	switch msg.Type {
	case tea.KeyRunes:
		if len(msg.Runes) == 0 {
			return false
		}
		m.appendFilter(listPtr, string(msg.Runes))
		return true
	case tea.KeySpace:
		m.appendFilter(listPtr, " ")
		return true
	case tea.KeyBackspace, tea.KeyDelete:
		if listPtr.FilterValue() == "" {
			return false
		}
		m.popFilter(listPtr)
		return true
	default:
		return false
	}
}

func (m *appModel) appendFilter(listPtr *list.Model, value string) {
	if value == "" {
		return
	}
	current := listPtr.FilterValue()
	listPtr.SetFilterText(current + value)
}

func (m *appModel) popFilter(listPtr *list.Model) {
	value := listPtr.FilterValue()
	if value == "" {
		return
	}
	value = trimLastRune(value)
	if value == "" {
		listPtr.ResetFilter()
		return
	}
	listPtr.SetFilterText(value)
}

func trimLastRune(value string) string {
	runes := []rune(value)
	if len(runes) <= 1 {
		return ""
	}
	return string(runes[:len(runes)-1])
}

func (m *appModel) activeList() *list.Model {
	switch m.state {
	case stateSelectMovie:
		return &m.movieList
	case stateSelectShowtime:
		return &m.showtimeList
	default:
		return nil
	}
}

func (m *appModel) refreshOccupied() {
	m.occupied = m.session.Occupied(m.movie.Title, m.showtime)
	for id := range m.selected {
		if m.occupied.Has(id) {
			delete(m.selected, id)
		}
	}
}

func (m *appModel) setNotice(text string, isErr bool) {
	m.notice = text
	m.noticeIsErr = isErr
}

func (m *appModel) clearNotice() {
	m.notice = ""
	m.noticeIsErr = false
}

func (m *appModel) resizeViews() {
	if m.width == 0 || m.height == 0 {
		return
	}
	h := m.height - 6
	if h < 6 {
		h = 6
	}
	m.movieList.SetSize(m.width, h)
	m.showtimeList.SetSize(m.width, h)
	m.bookingsTbl.SetHeight(max(3, h-2))
	m.bookingsTbl.SetWidth(m.width)
}

func newList(title string) list.Model {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = true
	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = title
	l.Filter = caseInsensitiveFilter
	l.SetFilteringEnabled(true)
	l.SetShowFilter(true)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	return l
}

func newInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = 40
	return ti
}

func hint(text string) string {
	return lipgloss.NewStyle().Faint(true).Render(text)
}

func errCmd(err error) tea.Cmd {
	return func() tea.Msg {
		return errMsg{err: err}
	}
}

func errWithReturnCmd(err error, returnState appState) tea.Cmd {
	return func() tea.Msg {
		return errMsg{
			err:            err,
			returnState:    returnState,
			returnStateSet: true,
		}
	}
}

func recoverStateFrom(state appState) appState {
	switch state {
	case stateSaving:
		return stateCheckout
	case stateExporting:
		return stateSelectMovie
	case stateError:
		return stateSelectMovie
	default:
		return state
	}
}

func caseInsensitiveFilter(term string, targets []string) []list.Rank {
	term = strings.ToLower(term)
	lower := make([]string, len(targets))
	for i, t := range targets {
		lower[i] = strings.ToLower(t)
	}
	return list.DefaultFilter(term, lower)
}

// bookCmd commits the booking off the update loop. Only one storage call is
// in flight at a time because the UI stays busy until its message returns.
func (m appModel) bookCmd(req session.Request) tea.Cmd {
	sess, ctx, log := m.session, m.opts.Context, m.opts.Log
	return func() tea.Msg {
		b, err := sess.Book(ctx, req)
		if err != nil {
			return bookingMsg{err: err}
		}
		if err := store.RememberCustomer(b.Name, b.Contact); err != nil {
			log.Warn("failed to remember customer", slog.String("error", err.Error()))
		}
		return bookingMsg{booking: b}
	}
}

func (m appModel) exportCmd() tea.Cmd {
	sess, ctx := m.session, m.opts.Context
	return func() tea.Msg {
		return exportMsg{err: sess.ExportAll(ctx)}
	}
}

func saveReceiptCmd(path string, b model.Booking) tea.Cmd {
	return func() tea.Msg {
		return receiptSavedMsg{path: path, err: store.WriteReceipt(path, b)}
	}
}
