// Package catalog holds the bookable movies for the lifetime of a session.
package catalog

import (
	"sort"

	"cinema-booking-cli/model"
)

type Catalog struct {
	movies []model.Movie
}

// Default returns the house catalog.
func Default() *Catalog {
	return New([]model.Movie{
		{Title: "Avengers: Endgame", Genre: "Action", Rating: 9.1, Showtimes: []string{"2:00 PM", "7:00 PM"}, Price: 24000},
		{Title: "Inception", Genre: "Sci-Fi", Rating: 8.8, Showtimes: []string{"12:00 PM", "9:00 PM"}, Price: 20000},
		{Title: "Joker", Genre: "Drama", Rating: 8.5, Showtimes: []string{"6:30 PM", "10:00 PM"}, Price: 18000},
		{Title: "Moana 2", Genre: "Animation", Rating: 7.9, Showtimes: []string{"11:00 AM", "5:00 PM"}, Price: 15000},
	})
}

func New(movies []model.Movie) *Catalog {
	c := &Catalog{movies: make([]model.Movie, 0, len(movies))}
	for _, m := range movies {
		m.Showtimes = append([]string(nil), m.Showtimes...)
		c.movies = append(c.movies, m)
	}
	return c
}

// List returns the movies in their current order.
func (c *Catalog) List() []model.Movie {
	out := make([]model.Movie, len(c.movies))
	copy(out, c.movies)
	return out
}

func (c *Catalog) Len() int {
	return len(c.movies)
}

// SortByRatingDescending reorders the catalog in place, keeping the prior
// relative order of movies with equal ratings.
func (c *Catalog) SortByRatingDescending() {
	sort.SliceStable(c.movies, func(i, j int) bool {
		return c.movies[i].Rating > c.movies[j].Rating
	})
}

func (c *Catalog) Find(title string) (model.Movie, bool) {
	for _, m := range c.movies {
		if m.Title == title {
			return m, true
		}
	}
	return model.Movie{}, false
}

func (c *Catalog) Titles() []string {
	titles := make([]string, 0, len(c.movies))
	for _, m := range c.movies {
		titles = append(titles, m.Title)
	}
	return titles
}
