// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-radar/internal/history"
	"github.com/pdiddy/paper-radar/internal/httputil"
	"github.com/pdiddy/paper-radar/internal/pipeline"
	"github.com/pdiddy/paper-radar/internal/profile"
	"github.com/pdiddy/paper-radar/internal/research"
	"github.com/pdiddy/paper-radar/internal/secrets"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Run one generation pass and persist the papers document",
	Long: `Generate asks the AI model (with web search) for recent papers relevant
to the researcher profile, normalizes the response, and writes the JSON
document the render side consumes.

A failed run exits non-zero but still leaves a readable document behind:
the previous document annotated with the error, or a minimal empty one.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()

		apiKey, _ := cmd.Flags().GetString("api-key")
		cfg.AI.APIKey = secretDefault(secrets.AnthropicAPIKey, firstNonEmpty(apiKey, cfg.AI.APIKey))
		if cfg.AI.APIKey == "" {
			return fmt.Errorf("API key required: use --api-key, the PAPER_RADAR_AI_API_KEY environment variable, or .secrets/%s", secrets.AnthropicAPIKey)
		}

		prof, err := profile.Load(cfg.Profile.Path)
		if err != nil {
			return err
		}

		scholarURL := firstNonEmpty(prof.ScholarURL, cfg.Profile.ScholarURL)

		var recorder pipeline.RunRecorder
		store, err := history.NewStore(cfg.History)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: run history disabled: %v\n", err)
		} else {
			defer store.Close()
			recorder = store
		}

		runner := &pipeline.Runner{
			Researcher: &research.ClaudeResearcher{
				Profile:   prof,
				AI:        cfg.AI,
				Timeframe: cfg.Profile.Timeframe,
				Client:    httputil.NewClient(cfg.HTTP),
			},
			Output:     cfg.Output,
			Timeframe:  cfg.Profile.Timeframe,
			ScholarURL: scholarURL,
			History:    recorder,
		}

		if _, err := runner.Run(cmd.Context(), os.Stdout); err != nil {
			return fmt.Errorf("generation failed (degraded document persisted): %w", err)
		}
		return nil
	},
}

// firstNonEmpty returns the first non-empty string.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func init() {
	generateCmd.Flags().String("api-key", "", "Claude API key")

	rootCmd.AddCommand(generateCmd)
}
