// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-radar/internal/fetchpdf"
	"github.com/pdiddy/paper-radar/internal/httputil"
	"github.com/pdiddy/paper-radar/pkg/types"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download the PDFs linked from the current document",
	Long: `Fetch downloads the PDF of every paper in the persisted document that
carries a download link. Existing files are skipped; individual failures
do not stop the batch.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()

		data, err := os.ReadFile(artifactPath(cfg))
		if err != nil {
			return fmt.Errorf("reading document (run generate first?): %w", err)
		}
		var doc types.PapersDocument
		if err := json.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("decoding document: %w", err)
		}

		result, err := fetchpdf.DownloadAll(httputil.NewClient(cfg.Fetch.HTTPConfig), doc.Papers, cfg.Fetch, os.Stdout)
		if err != nil {
			return err
		}

		fmt.Printf("%d downloaded, %d skipped, %d failed\n", result.Downloaded, result.Skipped, result.Failed)
		if result.HasFailures() {
			return fmt.Errorf("%d of %d downloads failed", result.Failed, result.Total())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fetchCmd)
}
