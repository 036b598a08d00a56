// Package seats describes the auditorium grid and derives which seats are
// already taken for a screening.
package seats

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/exp/maps"

	"cinema-booking-cli/model"
)

const (
	FirstRow = 'A'
	LastRow  = 'F'
	Rows     = int(LastRow-FirstRow) + 1
	Columns  = 8
)

var ErrInvalidSeat = errors.New("invalid seat")

// All enumerates every seat row by row: A1..A8, B1..B8, ...
func All() []string {
	out := make([]string, 0, Rows*Columns)
	for r := FirstRow; r <= LastRow; r++ {
		for c := 1; c <= Columns; c++ {
			out = append(out, ID(r, c))
		}
	}
	return out
}

func ID(row rune, column int) string {
	return string(row) + strconv.Itoa(column)
}

// Parse splits a seat identifier such as "C7" into its row and column.
func Parse(id string) (rune, int, error) {
	if len(id) != 2 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidSeat, id)
	}
	row := rune(id[0])
	if row < FirstRow || row > LastRow {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidSeat, id)
	}
	column := int(id[1] - '0')
	if column < 1 || column > Columns {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidSeat, id)
	}
	return row, column, nil
}

func Valid(id string) bool {
	_, _, err := Parse(id)
	return err == nil
}

// ParseList splits free-form input such as "a1, A2 b3" into upper-cased seat
// identifiers. It does not validate them.
func ParseList(input string) []string {
	fields := strings.FieldsFunc(input, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		out = append(out, strings.ToUpper(f))
	}
	return out
}

type Set map[string]struct{}

func NewSet(ids ...string) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

func (s Set) Add(id string) {
	s[id] = struct{}{}
}

func (s Set) Has(id string) bool {
	_, ok := s[id]
	return ok
}

func (s Set) Len() int {
	return len(s)
}

// Sorted returns the members in grid order.
func (s Set) Sorted() []string {
	ids := maps.Keys(s)
	Sort(ids)
	return ids
}

// Sort orders seat identifiers by row, then numerically by column.
// Identifiers that do not parse sort after valid ones, lexically.
func Sort(ids []string) {
	sort.SliceStable(ids, func(i, j int) bool {
		ri, ci, erri := Parse(ids[i])
		rj, cj, errj := Parse(ids[j])
		switch {
		case erri != nil && errj != nil:
			return ids[i] < ids[j]
		case erri != nil:
			return false
		case errj != nil:
			return true
		case ri != rj:
			return ri < rj
		default:
			return ci < cj
		}
	})
}

// Occupied returns every seat claimed by a booking for exactly this movie
// title and showtime.
func Occupied(movie string, showtime string, bookings []model.Booking) Set {
	taken := Set{}
	for _, b := range bookings {
		if !b.Matches(movie, showtime) {
			continue
		}
		for _, id := range b.Seats {
			taken.Add(id)
		}
	}
	return taken
}

// Available counts the free seats of a screening.
func Available(occupied Set) int {
	free := 0
	for _, id := range All() {
		if !occupied.Has(id) {
			free++
		}
	}
	return free
}
