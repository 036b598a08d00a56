package seats

import (
	"errors"
	"reflect"
	"testing"

	"cinema-booking-cli/model"
)

func TestAll(t *testing.T) {
	all := All()
	if len(all) != 48 {
		t.Fatalf("expected 48 seats, got %d", len(all))
	}
	if all[0] != "A1" || all[7] != "A8" || all[8] != "B1" || all[47] != "F8" {
		t.Fatalf("unexpected seat order: %v", all)
	}
}

func TestParse(t *testing.T) {
	row, col, err := Parse("C7")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if row != 'C' || col != 7 {
		t.Fatalf("expected C7, got %c%d", row, col)
	}

	for _, id := range []string{"", "A", "A0", "A9", "G1", "a1", "A10", "A01", " A1", "11"} {
		if _, _, err := Parse(id); !errors.Is(err, ErrInvalidSeat) {
			t.Fatalf("expected ErrInvalidSeat for %q, got %v", id, err)
		}
	}
}

func TestOccupied_NoMatches(t *testing.T) {
	bookings := []model.Booking{
		{Movie: "Joker", Showtime: "6:30 PM", Seats: []string{"A1"}},
		{Movie: "Inception", Showtime: "10:00 PM", Seats: []string{"A2"}},
	}
	if got := Occupied("Joker", "10:00 PM", bookings); got.Len() != 0 {
		t.Fatalf("expected no occupied seats, got %v", got.Sorted())
	}
	if got := Occupied("Joker", "6:30 PM", nil); got.Len() != 0 {
		t.Fatalf("expected no occupied seats for empty input, got %v", got.Sorted())
	}
}

func TestOccupied_UnionOfMatches(t *testing.T) {
	bookings := []model.Booking{
		{Movie: "Joker", Showtime: "6:30 PM", Seats: []string{"B2", "A1"}},
		{Movie: "joker", Showtime: "6:30 PM", Seats: []string{"F8"}},
		{Movie: "Joker", Showtime: "6:30 PM", Seats: []string{"C10", "A2"}},
		{Movie: "Joker", Showtime: "10:00 PM", Seats: []string{"D4"}},
	}
	got := Occupied("Joker", "6:30 PM", bookings).Sorted()
	want := []string{"A1", "A2", "B2", "C10"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestSort(t *testing.T) {
	ids := []string{"B1", "A8", "zz", "A10", "A2"}
	Sort(ids)
	want := []string{"A2", "A8", "B1", "A10", "zz"}
	if !reflect.DeepEqual(ids, want) {
		t.Fatalf("expected %v, got %v", want, ids)
	}
}

func TestAvailable(t *testing.T) {
	if got := Available(NewSet("A1", "B2", "nope")); got != 46 {
		t.Fatalf("expected 46 free seats, got %d", got)
	}
}

func TestParseList(t *testing.T) {
	got := ParseList(" a1, A2  b3,,c4 ")
	want := []string{"A1", "A2", "B3", "C4"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if got := ParseList("   "); len(got) != 0 {
		t.Fatalf("expected no seats, got %v", got)
	}
}
