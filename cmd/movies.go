package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newMoviesCmd() *cobra.Command {
	var sortByRating bool
	var details string

	moviesCmd := &cobra.Command{
		Use:   "movies",
		Short: "List the movie catalog",
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			if sortByRating {
				a.session.SortByRating()
			}
			if details != "" {
				m, err := a.session.Movie(details)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Title: %s\n", m.Title)
				fmt.Fprintf(out, "Genre: %s\n", m.Genre)
				fmt.Fprintf(out, "Rating: %.1f\n", m.Rating)
				fmt.Fprintf(out, "Showtimes: %s\n", strings.Join(m.Showtimes, ", "))
				fmt.Fprintf(out, "Price per seat: %s\n", m.Price)
				return nil
			}
			renderMovies(cmd.OutOrStdout(), a.session.Movies())
			return nil
		}),
	}
	moviesCmd.Flags().BoolVar(&sortByRating, "sort", false, "sort by rating, highest first")
	moviesCmd.Flags().StringVar(&details, "details", "", "show the details of one movie")
	return moviesCmd
}
