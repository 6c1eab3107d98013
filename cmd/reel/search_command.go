package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newSearchCommand(ctx *commandContext) *cobra.Command {
	var pages int

	cmd := &cobra.Command{
		Use:   "search <title>",
		Short: "Search movies by title",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.TrimSpace(strings.Join(args, " "))
			return ctx.withApp(func(a *application) error {
				if n := len([]rune(query)); n < a.cfg.Search.MinQueryLength {
					return fmt.Errorf("search needs at least %d characters (got %q)", a.cfg.Search.MinQueryLength, query)
				}

				reqCtx, cancel := a.requestContext(cmd.Context(), pages)
				defer cancel()

				page, err := a.search.SearchAll(reqCtx, query, pages)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				colorize := shouldColorize(out)
				if !page.Response {
					msg := strings.TrimSpace(page.Error)
					if msg == "" {
						msg = "No movies found"
					}
					fmt.Fprintln(out, paint(msg, ansiYellow, colorize))
					return nil
				}

				state := a.store.State()
				rows := make([][]string, 0, len(page.Movies))
				for i, m := range page.Movies {
					rows = append(rows, []string{
						strconv.Itoa(i + 1),
						m.Title,
						orDash(m.Year),
						formatType(m.Type),
						m.ID,
						formatRating(state.Rating(m.ID)),
					})
				}

				fmt.Fprintln(out, paint(fmt.Sprintf("Search Results (%d movies)", len(page.Movies)), ansiBold, colorize))
				fmt.Fprintf(out, "Found movies for %q (%d total)\n", query, page.TotalResults)
				fmt.Fprintln(out, renderTable(
					[]string{"#", "Title", "Year", "Type", "ID", "Your Rating"},
					rows,
					[]columnAlignment{alignRight},
				))
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&pages, "pages", "p", 1, "Number of result pages to fetch (10 results per page)")
	return cmd
}
