package main

import (
	"fmt"
	"strings"

	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/service"
	"github.com/spf13/cobra"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	var openIMDb, openPoster bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show the full record for a movie ID (e.g. tt0372784)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withApp(func(a *application) error {
				reqCtx, cancel := a.requestContext(cmd.Context(), 1)
				defer cancel()

				details, err := a.details.Open(reqCtx, args[0])
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				colorize := shouldColorize(out)
				fmt.Fprintln(out, paint(details.Title, ansiBold, colorize))
				fmt.Fprintln(out, renderFields(detailRows(details, a.store.State().Rating(details.ID)), 72))

				if openIMDb {
					if err := a.browse.OpenIMDb(details.ID); err != nil {
						return fmt.Errorf("open imdb page: %w", err)
					}
				}
				if openPoster {
					if err := a.browse.OpenPoster(details.Movie); err != nil {
						return fmt.Errorf("open poster: %w", err)
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&openIMDb, "open", "o", false, "Open the IMDb page in a browser")
	cmd.Flags().BoolVar(&openPoster, "poster", false, "Open the poster image in a browser")
	return cmd
}

// detailRows lists the record's fields, leaving out "N/A" values
func detailRows(d *domain.MovieDetails, rating int) [][]string {
	rows := [][]string{
		{"ID", d.ID},
		{"Your Rating", formatRating(rating)},
	}
	add := func(label, value string) {
		if domain.Available(value) {
			rows = append(rows, []string{label, value})
		}
	}

	add("Year", d.Year)
	add("Type", formatType(d.Type))
	add("Rated", d.Rated)
	add("Runtime", d.Runtime)
	add("Genre", strings.Join(d.Genres(), ", "))
	add("IMDb", imdbScore(d))
	add("Metascore", d.Metascore)
	add("Plot", d.Plot)
	add("Director", d.Director)
	add("Writer", d.Writer)
	add("Actors", d.Actors)
	add("Released", d.Released)
	add("Country", d.Country)
	add("Language", d.Language)
	add("Box Office", d.BoxOffice)
	add("Awards", d.Awards)
	add("IMDb Page", service.IMDbURL(d.ID))
	if d.HasPoster() {
		add("Poster", d.Poster)
	}
	return rows
}

func imdbScore(d *domain.MovieDetails) string {
	if !domain.Available(d.IMDbRating) {
		return ""
	}
	if domain.Available(d.IMDbVotes) {
		return fmt.Sprintf("%s/10 (%s votes)", d.IMDbRating, d.IMDbVotes)
	}
	return d.IMDbRating + "/10"
}
