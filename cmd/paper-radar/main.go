// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the paper-radar CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/paper-radar/internal/secrets"
	"github.com/pdiddy/paper-radar/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns fallback when set, else the named secret, else "".
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the paper-radar CLI.
var rootCmd = &cobra.Command{
	Use:   "paper-radar",
	Short: "Scheduled AI scout for recent academic papers",
	Long: `paper-radar runs a scheduled pipeline that asks an AI model (with web
search) for recent academic papers relevant to a researcher profile,
normalizes the response into a JSON document, and renders it as a page of
cards.

Each stage is a subcommand: generate produces the document, render and serve
present it, fetch downloads the linked PDFs, and history lists past runs.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./paper-radar.yaml or ~/.config/paper-radar/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("paper-radar")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "paper-radar"))
		}
	}

	viper.SetEnvPrefix("PAPER_RADAR")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig assembles the pipeline configuration from viper, applying
// defaults for anything the config file leaves out.
func loadConfig() types.PipelineConfig {
	viper.SetDefault("http.timeout", "2m")
	viper.SetDefault("http.user_agent", "paper-radar/"+version)
	viper.SetDefault("ai.model", "claude-sonnet-4-5-20250929")
	viper.SetDefault("ai.max_tokens", 8192)
	viper.SetDefault("ai.max_retries", 3)
	viper.SetDefault("profile.path", "profile.yaml")
	viper.SetDefault("profile.timeframe", "last 30 days")
	viper.SetDefault("output.dir", "output")
	viper.SetDefault("output.file", "papers.json")
	viper.SetDefault("serve.addr", ":8080")
	viper.SetDefault("history.dir", "history")
	viper.SetDefault("fetch.dir", filepath.Join("papers", "pdf"))
	viper.SetDefault("fetch.download_delay", "1s")

	return types.PipelineConfig{
		HTTP: types.HTTPConfig{
			Timeout:   viper.GetDuration("http.timeout"),
			UserAgent: viper.GetString("http.user_agent"),
		},
		AI: types.AIConfig{
			Model:      viper.GetString("ai.model"),
			APIKey:     viper.GetString("ai.api_key"),
			MaxTokens:  viper.GetInt("ai.max_tokens"),
			MaxRetries: viper.GetInt("ai.max_retries"),
		},
		Profile: types.ProfileConfig{
			Path:       viper.GetString("profile.path"),
			ScholarURL: viper.GetString("profile.scholar_url"),
			Timeframe:  viper.GetString("profile.timeframe"),
		},
		Output: types.OutputConfig{
			Dir:  viper.GetString("output.dir"),
			File: viper.GetString("output.file"),
		},
		Serve: types.ServeConfig{
			Addr: viper.GetString("serve.addr"),
		},
		History: types.HistoryConfig{
			Dir: viper.GetString("history.dir"),
		},
		Fetch: types.FetchConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("http.timeout"),
				UserAgent: viper.GetString("http.user_agent"),
			},
			Dir:           viper.GetString("fetch.dir"),
			DownloadDelay: viper.GetDuration("fetch.download_delay"),
		},
	}
}

// artifactPath returns the persisted document location for a config.
func artifactPath(cfg types.PipelineConfig) string {
	return filepath.Join(cfg.Output.Dir, cfg.Output.File)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
