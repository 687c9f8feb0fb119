package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cinelake/cinelake/internal/models"
	"github.com/spf13/cobra"
)

func newPredictCmd() *cobra.Command {
	var features []string

	cmd := &cobra.Command{
		Use:   "predict <title>",
		Short: "Score a movie's success potential",
		Long: `Score a prospective movie against the loaded prediction model.
Features are passed as repeated --feature name=value flags, for example:

  cinelake predict "Untitled Heist Movie" --feature budget=40000000 --feature runtime=118`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := models.PredictRequest{
				Title:    args[0],
				Features: make(map[string]float64, len(features)),
			}
			for _, f := range features {
				name, raw, ok := strings.Cut(f, "=")
				if !ok || name == "" {
					return fmt.Errorf("invalid feature %q: expected name=value", f)
				}
				v, err := strconv.ParseFloat(raw, 64)
				if err != nil {
					return fmt.Errorf("invalid feature %q: %w", f, err)
				}
				req.Features[name] = v
			}

			res, err := apiClient.Predict(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("predict failed: %w", err)
			}

			if flagFmt == "table" {
				formatTable(
					[]string{"TITLE", "PROBABILITY", "VERDICT", "CONFIDENCE"},
					[][]string{{res.Title, fmt.Sprintf("%.3f", res.Probability), res.Verdict, res.Confidence}},
				)
				return nil
			}
			output(res, fmt.Sprintf("%.3f", res.Probability))
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&features, "feature", nil, "Model feature as name=value (repeatable)")
	return cmd
}
