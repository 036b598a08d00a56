package model

type Movie struct {
	Title     string   `json:"title"`
	Genre     string   `json:"genre"`
	Rating    float64  `json:"rating"`
	Showtimes []string `json:"showtimes"`
	Price     Cents    `json:"price"`
}

// DefaultShowtime returns the first listed showtime, or "" when the movie has none.
func (m Movie) DefaultShowtime() string {
	if len(m.Showtimes) == 0 {
		return ""
	}
	return m.Showtimes[0]
}

func (m Movie) HasShowtime(showtime string) bool {
	for _, s := range m.Showtimes {
		if s == showtime {
			return true
		}
	}
	return false
}
