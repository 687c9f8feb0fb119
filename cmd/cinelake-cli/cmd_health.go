package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check server health",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			h, err := apiClient.Health(cmd.Context())
			if err != nil {
				fatal("health", err)
			}
			if flagFmt == "table" {
				formatTable(
					[]string{"STATUS", "VERSION", "SCHEMA", "DATABASE", "PREDICTOR"},
					[][]string{{h.Status, h.Version, fmt.Sprintf("%d", h.SchemaVersion), h.Database, h.Predictor}},
				)
				return
			}
			output(h, h.Status)
		},
	}
}
