package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAskCmd() *cobra.Command {
	var showSQL bool

	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask the catalog a question in plain language",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			res, err := apiClient.Ask(cmd.Context(), args[0])
			if err != nil {
				fatal("ask", err)
			}

			if showSQL {
				fmt.Fprintf(cmd.ErrOrStderr(), "-- strategy: %s\n%s\n", res.Strategy, res.SQL)
			}

			if flagFmt == "table" {
				rows := make([][]string, 0, len(res.Rows))
				for _, r := range res.Rows {
					cells := make([]string, len(res.Columns))
					for i, col := range res.Columns {
						cells[i] = fmt.Sprintf("%v", r[col])
					}
					rows = append(rows, cells)
				}
				formatTable(res.Columns, rows)
				return
			}
			output(res, res.SQL)
		},
	}

	cmd.Flags().BoolVar(&showSQL, "show-sql", false, "Print the translated SQL to stderr")
	return cmd
}
