package catalog

import (
	"reflect"
	"testing"

	"cinema-booking-cli/model"
)

func ratings(c *Catalog) []float64 {
	var out []float64
	for _, m := range c.List() {
		out = append(out, m.Rating)
	}
	return out
}

func TestSortByRatingDescending_AlreadySorted(t *testing.T) {
	c := Default()
	before := c.Titles()
	c.SortByRatingDescending()
	if got := c.Titles(); !reflect.DeepEqual(got, before) {
		t.Fatalf("expected no-op sort, got %v", got)
	}
}

func TestSortByRatingDescending_Reorders(t *testing.T) {
	c := New([]model.Movie{
		{Title: "d", Rating: 7.9},
		{Title: "a", Rating: 9.1},
		{Title: "c", Rating: 8.5},
		{Title: "b", Rating: 8.8},
	})
	c.SortByRatingDescending()
	want := []float64{9.1, 8.8, 8.5, 7.9}
	if got := ratings(c); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestSortByRatingDescending_StableOnTies(t *testing.T) {
	c := New([]model.Movie{
		{Title: "first", Rating: 8.0},
		{Title: "top", Rating: 9.0},
		{Title: "second", Rating: 8.0},
		{Title: "third", Rating: 8.0},
	})
	c.SortByRatingDescending()
	want := []string{"top", "first", "second", "third"}
	if got := c.Titles(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestListReturnsCopy(t *testing.T) {
	c := Default()
	list := c.List()
	list[0].Title = "changed"
	if c.List()[0].Title == "changed" {
		t.Fatal("expected List to return a copy")
	}
}

func TestFind(t *testing.T) {
	c := Default()
	m, ok := c.Find("Inception")
	if !ok {
		t.Fatal("expected Inception to be found")
	}
	if m.Price != 20000 || m.DefaultShowtime() != "12:00 PM" {
		t.Fatalf("unexpected movie: %+v", m)
	}
	if _, ok := c.Find("inception"); ok {
		t.Fatal("expected case-sensitive lookup")
	}
}
