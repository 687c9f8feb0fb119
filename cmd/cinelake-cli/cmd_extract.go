package main

import (
	"fmt"
	"os"

	"cloud.google.com/go/storage"
	"github.com/cinelake/cinelake/internal/tmdb"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newExtractCmd() *cobra.Command {
	var (
		bucket  string
		baseURL string
		rate    float64
	)

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Pull new movies from TMDB into the batch bucket",
		Long: `Fetch movies added to TMDB since the last run and write them as a
batch object to the bucket. The last fetched id is checkpointed in the
bucket, so repeated runs resume where the previous one stopped.

Requires TMDB_API_KEY in the environment and credentials for the bucket.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			apiKey := os.Getenv("TMDB_API_KEY")
			if apiKey == "" {
				return fmt.Errorf("TMDB_API_KEY is not set")
			}
			if bucket == "" {
				bucket = os.Getenv("BATCH_BUCKET")
			}
			if bucket == "" {
				return fmt.Errorf("no bucket: set --bucket or BATCH_BUCKET")
			}

			ctx := cmd.Context()
			sc, err := storage.NewClient(ctx)
			if err != nil {
				return fmt.Errorf("storage client: %w", err)
			}
			defer sc.Close() //nolint:errcheck

			log := logrus.New()
			log.SetOutput(cmd.ErrOrStderr())
			log.SetFormatter(&logrus.TextFormatter{})

			extractor := tmdb.NewExtractor(tmdb.NewClient(apiKey, baseURL, rate), sc, bucket, log)
			res, err := extractor.Run(ctx)
			if err != nil {
				return fmt.Errorf("extract: %w", err)
			}

			if flagFmt == "table" {
				formatTable(
					[]string{"FROM", "TO", "FETCHED", "OBJECT"},
					[][]string{{
						fmt.Sprintf("%d", res.FromID),
						fmt.Sprintf("%d", res.ToID),
						fmt.Sprintf("%d", res.Fetched),
						res.Object,
					}},
				)
				return nil
			}
			output(res, res.Object)
			return nil
		},
	}

	cmd.Flags().StringVar(&bucket, "bucket", "", "Batch bucket name (env: BATCH_BUCKET)")
	cmd.Flags().StringVar(&baseURL, "base-url", tmdb.DefaultBaseURL, "TMDB API base URL")
	cmd.Flags().Float64Var(&rate, "rate", 4, "TMDB request rate limit, requests per second")
	return cmd
}
