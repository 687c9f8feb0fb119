package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cinelake/cinelake/client"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Build-time variables set via ldflags.
var (
	version   = "0.2.0"
	commit    = ""
	buildDate = ""
)

var (
	apiClient *client.Client
	flagURL   string
	flagFmt   string
)

const defaultURL = "http://localhost:8080"

func versionString() string {
	if commit != "" && buildDate != "" {
		return fmt.Sprintf("cinelake version %s (commit: %s, built: %s)", version, commit, buildDate)
	}
	return fmt.Sprintf("cinelake version %s-dev", version)
}

type configFile struct {
	URL string `yaml:"url"`
}

func main() {
	rootCmd := &cobra.Command{
		Use:     "cinelake",
		Short:   "Cinelake CLI — movie catalog imports, queries and predictions",
		Version: versionString(),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			resolveConfig()
			apiClient = client.New(flagURL)
		},
		SilenceUsage: true,
	}
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&flagURL, "url", defaultURL, "Cinelake server URL (env: CINELAKE_URL)")
	rootCmd.PersistentFlags().StringVar(&flagFmt, "format", "json", "Output format: json|table|quiet")

	extractCmd := newExtractCmd()
	extractCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {} // talks to TMDB and the bucket, not the server

	rootCmd.AddCommand(newHealthCmd())
	rootCmd.AddCommand(newImportCmd())
	rootCmd.AddCommand(newAskCmd())
	rootCmd.AddCommand(newPredictCmd())
	rootCmd.AddCommand(newMoviesCmd())
	rootCmd.AddCommand(newGenresCmd())
	rootCmd.AddCommand(extractCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func resolveConfig() {
	// Flag takes precedence, then env, then config file.
	if flagURL == defaultURL {
		if v := os.Getenv("CINELAKE_URL"); v != "" {
			flagURL = v
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	cfgPath := filepath.Join(home, ".cinelake", "config.yaml")
	data, err := os.ReadFile(cfgPath)
	if err != nil {
		return
	}
	var cfg configFile
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return
	}
	if flagURL == defaultURL && cfg.URL != "" {
		flagURL = cfg.URL
	}
}

func fatal(msg string, err error) {
	fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
	os.Exit(1)
}
