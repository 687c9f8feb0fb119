package main

import (
	"fmt"
	"os"

	"github.com/cinelake/cinelake/internal/models"
	"github.com/cinelake/cinelake/internal/source"
	"github.com/spf13/cobra"
)

func newImportCmd() *cobra.Command {
	var (
		object string
		policy string
	)

	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import a batch of movie records",
		Long: `Import movie records from a local JSON file or from an object already
in the batch bucket (--object). The file may be a JSON array of records
or an object with a "results" array.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if (len(args) == 0) == (object == "") {
				return fmt.Errorf("provide either a file argument or --object, not both")
			}

			req := models.ImportRequest{Policy: models.UpsertPolicy(policy)}
			if !req.Policy.Valid() {
				return fmt.Errorf("invalid policy %q: must be overwrite or ignore", policy)
			}

			if object != "" {
				req.Object = object
			} else {
				raw, err := os.ReadFile(args[0])
				if err != nil {
					return fmt.Errorf("reading file: %w", err)
				}
				records, err := source.DecodeBatch(raw)
				if err != nil {
					return fmt.Errorf("parsing batch file: %w", err)
				}
				req.Records = records
			}

			res, err := apiClient.Import(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("import failed: %w", err)
			}

			if flagFmt == "table" {
				formatTable(
					[]string{"PROCESSED", "INSERTED", "UPDATED", "SKIPPED"},
					[][]string{{
						fmt.Sprintf("%d", res.Processed),
						fmt.Sprintf("%d", res.Inserted),
						fmt.Sprintf("%d", res.Updated),
						fmt.Sprintf("%d", res.Skipped),
					}},
				)
				return nil
			}
			output(res, fmt.Sprintf("%d", res.Processed))
			return nil
		},
	}

	cmd.Flags().StringVar(&object, "object", "", "Import an object from the batch bucket instead of a local file")
	cmd.Flags().StringVar(&policy, "policy", "ignore", "Conflict policy: overwrite|ignore")
	return cmd
}
