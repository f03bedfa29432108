// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-radar/internal/httputil"
	"github.com/pdiddy/paper-radar/internal/render"
	"github.com/pdiddy/paper-radar/pkg/types"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Write a static HTML page from the papers document",
	Long: `Render reads the persisted papers document (from disk, or over HTTP with
--url) and writes a static HTML page of cards. A document that cannot be
read renders as an error page rather than failing the command, mirroring
how the live page degrades.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()

		srcURL, _ := cmd.Flags().GetString("url")
		outPath, _ := cmd.Flags().GetString("out")

		doc, err := loadDocument(cmd, srcURL, artifactPath(cfg))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		}

		out, createErr := os.Create(outPath)
		if createErr != nil {
			return fmt.Errorf("creating %s: %w", outPath, createErr)
		}
		defer out.Close()

		if err != nil {
			if renderErr := render.ErrorPage(err, out); renderErr != nil {
				return renderErr
			}
			fmt.Printf("wrote error page to %s\n", outPath)
			return nil
		}

		if err := render.Page(doc, out); err != nil {
			return fmt.Errorf("rendering page: %w", err)
		}
		fmt.Printf("wrote %s (%d papers)\n", outPath, len(doc.Papers))
		return nil
	},
}

// loadDocument reads the papers document from a URL or a local path.
func loadDocument(cmd *cobra.Command, srcURL, path string) (*types.PapersDocument, error) {
	if srcURL != "" {
		cfg := loadConfig()
		return render.Fetch(cmd.Context(), httputil.NewClient(cfg.HTTP), srcURL)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}
	var doc types.PapersDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding document: %w", err)
	}
	return &doc, nil
}

func init() {
	renderCmd.Flags().String("url", "", "fetch the document over HTTP instead of reading the artifact")
	renderCmd.Flags().String("out", "output/index.html", "output HTML path")

	rootCmd.AddCommand(renderCmd)
}
