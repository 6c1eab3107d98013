package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/service"
	"github.com/spf13/cobra"
)

func newRateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "rate <id> <1-5>",
		Short: "Rate a movie from 1 to 5 stars",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := strings.TrimSpace(args[0])
			if !service.ValidID(id) {
				return domain.ErrInvalidID
			}
			rating, err := strconv.Atoi(strings.TrimSpace(args[1]))
			if err != nil {
				return fmt.Errorf("%w: %q is not a number", domain.ErrInvalidRating, args[1])
			}

			return ctx.withApp(func(a *application) error {
				if err := a.requirePersistentStorage(); err != nil {
					return err
				}
				if err := a.ratings.Rate(id, rating); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Rated %s %s\n", id, formatRating(rating))
				return nil
			})
		},
	}
}

func newRatingsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "ratings",
		Short: "List your saved ratings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withApp(func(a *application) error {
				ratings := a.store.State().UserRatings
				out := cmd.OutOrStdout()
				if len(ratings) == 0 {
					fmt.Fprintln(out, "No ratings yet. Rate a movie with `reel rate <id> <1-5>`.")
					return nil
				}

				ids := make([]string, 0, len(ratings))
				for id := range ratings {
					ids = append(ids, id)
				}
				sort.Strings(ids)

				rows := make([][]string, 0, len(ids))
				for _, id := range ids {
					rows = append(rows, []string{id, formatRating(ratings[id])})
				}
				fmt.Fprintln(out, renderTable([]string{"ID", "Rating"}, rows, nil))
				return nil
			})
		},
	}
}
