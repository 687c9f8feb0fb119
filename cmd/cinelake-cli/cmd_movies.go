package main

import (
	"fmt"
	"strconv"

	"github.com/cinelake/cinelake/internal/models"
	"github.com/spf13/cobra"
)

func newMoviesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "movies",
		Short: "Browse the movie catalog",
	}
	cmd.AddCommand(newMoviesListCmd())
	cmd.AddCommand(newMoviesGetCmd())
	return cmd
}

func newMoviesListCmd() *cobra.Command {
	var limit, offset int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List movies, newest first",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			page, err := apiClient.Movies(cmd.Context(), limit, offset)
			if err != nil {
				fatal("movies list", err)
			}
			if flagFmt == "table" {
				printMovieTable(page.Movies)
				return
			}
			output(page, fmt.Sprintf("%d", page.Total))
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Page size")
	cmd.Flags().IntVar(&offset, "offset", 0, "Rows to skip")
	return cmd
}

func newMoviesGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Fetch one movie with its genres",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid movie id %q", args[0])
			}
			m, err := apiClient.Movie(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("movies get: %w", err)
			}
			if flagFmt == "table" {
				printMovieTable([]models.Movie{*m})
				return nil
			}
			output(m, fmt.Sprintf("%d", m.ID))
			return nil
		},
	}
}

func newGenresCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "genres",
		Short: "List all genres",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			list, err := apiClient.Genres(cmd.Context())
			if err != nil {
				fatal("genres", err)
			}
			if flagFmt == "table" {
				headers := []string{"ID", "NAME"}
				rows := make([][]string, 0, len(list.Genres))
				for _, g := range list.Genres {
					rows = append(rows, []string{fmt.Sprintf("%d", g.ID), g.Name})
				}
				formatTable(headers, rows)
				return
			}
			output(list, fmt.Sprintf("%d", list.Count))
		},
	}
}

func printMovieTable(movies []models.Movie) {
	headers := []string{"ID", "TITLE", "RELEASED", "RATING"}
	rows := make([][]string, 0, len(movies))
	for _, m := range movies {
		released := ""
		if m.ReleaseDate != nil {
			released = m.ReleaseDate.Format("2006-01-02")
		}
		rating := ""
		if m.VoteAverage != nil {
			rating = fmt.Sprintf("%.1f", *m.VoteAverage)
		}
		rows = append(rows, []string{fmt.Sprintf("%d", m.ID), m.Title, released, rating})
	}
	formatTable(headers, rows)
}
