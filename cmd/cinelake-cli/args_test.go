package main

import (
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

// executeArgs runs the given root command with args and returns any error.
// It suppresses cobra's usage/error output so test output stays clean.
func executeArgs(t *testing.T, root *cobra.Command, args ...string) error {
	t.Helper()
	root.SetOut(&strings.Builder{})
	root.SetErr(&strings.Builder{})
	root.SetArgs(args)
	_, err := root.ExecuteC()
	return err
}

// newTestRoot builds a root command tree identical to main() but with
// PersistentPreRun stubbed out so the API client is never initialised.
func newTestRoot() *cobra.Command {
	root := &cobra.Command{
		Use:          "cinelake",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Skip client initialisation in tests.
		},
	}
	root.PersistentFlags().StringVar(&flagURL, "url", defaultURL, "")
	root.PersistentFlags().StringVar(&flagFmt, "format", "json", "")

	root.AddCommand(newHealthCmd())
	root.AddCommand(newImportCmd())
	root.AddCommand(newAskCmd())
	root.AddCommand(newPredictCmd())
	root.AddCommand(newMoviesCmd())
	root.AddCommand(newExtractCmd())
	return root
}

func TestImportArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{
			name: "requires a file or --object",
			args: []string{"import"},
		},
		{
			name: "rejects file and --object together",
			args: []string{"import", "batch.json", "--object", "movies_1_to_2.json"},
		},
		{
			name: "rejects unknown policy",
			args: []string{"import", "batch.json", "--policy", "merge"},
		},
		{
			name: "rejects a missing file before calling the server",
			args: []string{"import", "does-not-exist.json"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := executeArgs(t, newTestRoot(), tt.args...); err == nil {
				t.Fatalf("expected error for %v", tt.args)
			}
		})
	}
}

func TestAskArgs(t *testing.T) {
	if err := executeArgs(t, newTestRoot(), "ask"); err == nil {
		t.Fatal("expected error when question is missing")
	}
	if err := executeArgs(t, newTestRoot(), "ask", "one", "two"); err == nil {
		t.Fatal("expected error for extra positional args")
	}
}

func TestPredictArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{
			name: "requires a title",
			args: []string{"predict"},
		},
		{
			name: "rejects feature without value",
			args: []string{"predict", "Heat 2", "--feature", "budget"},
		},
		{
			name: "rejects feature with empty name",
			args: []string{"predict", "Heat 2", "--feature", "=3"},
		},
		{
			name: "rejects non-numeric feature value",
			args: []string{"predict", "Heat 2", "--feature", "budget=lots"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := executeArgs(t, newTestRoot(), tt.args...); err == nil {
				t.Fatalf("expected error for %v", tt.args)
			}
		})
	}
}

func TestMoviesGetArgs(t *testing.T) {
	for _, bad := range []string{"abc", "-5", "0"} {
		if err := executeArgs(t, newTestRoot(), "movies", "get", bad); err == nil {
			t.Fatalf("expected error for id %q", bad)
		}
	}
}

func TestExtractArgs(t *testing.T) {
	t.Setenv("TMDB_API_KEY", "")
	if err := executeArgs(t, newTestRoot(), "extract"); err == nil {
		t.Fatal("expected error when TMDB_API_KEY is not set")
	}
}
