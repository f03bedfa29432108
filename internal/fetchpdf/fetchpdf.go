// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetchpdf downloads the PDFs referenced by a papers document.
package fetchpdf

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/pdiddy/paper-radar/pkg/types"
)

// BatchResult holds the outcome of a batch download run.
type BatchResult struct {
	Downloaded int
	Skipped    int
	Failed     int
}

// Total returns the number of papers with a download link.
func (r BatchResult) Total() int {
	return r.Downloaded + r.Skipped + r.Failed
}

// HasFailures reports whether any downloads failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// DownloadAll fetches the PDF of every paper whose DownloadURL is set,
// printing per-item status and continuing after individual failures. PDFs
// already on disk are skipped, and a delay applies between consecutive
// downloads.
func DownloadAll(client *http.Client, papers []types.Paper, cfg types.FetchConfig, w io.Writer) (BatchResult, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = filepath.Join("papers", "pdf")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return BatchResult{}, fmt.Errorf("creating download directory: %w", err)
	}

	var result BatchResult
	downloaded := 0
	for _, p := range papers {
		if p.DownloadURL == "" {
			continue
		}

		name := Filename(p.DownloadURL)
		dest := filepath.Join(dir, name)

		if _, err := os.Stat(dest); err == nil {
			fmt.Fprintf(w, "skipped %s (already exists)\n", name)
			result.Skipped++
			continue
		}

		if downloaded > 0 && cfg.DownloadDelay > 0 {
			time.Sleep(cfg.DownloadDelay)
		}
		downloaded++

		fmt.Fprintf(w, "downloading %s\n", name)
		if err := downloadFile(client, p.DownloadURL, dest, cfg); err != nil {
			fmt.Fprintf(w, "failed %s: %v\n", name, err)
			result.Failed++
			continue
		}
		result.Downloaded++
	}

	return result, nil
}

// Filename derives a local filename from a download URL, falling back to
// "paper.pdf" when the URL has no usable path segment.
func Filename(url string) string {
	base := path.Base(strings.TrimSuffix(url, "/"))
	if base == "" || base == "." || base == "/" {
		return "paper.pdf"
	}
	if !strings.HasSuffix(base, ".pdf") {
		base += ".pdf"
	}
	return base
}

// downloadFile streams the URL to a temp file and renames it into place on
// success, so a partial download never shows up at the destination.
func downloadFile(client *http.Client, url, dest string, cfg types.FetchConfig) error {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if cfg.UserAgent != "" {
		req.Header.Set("User-Agent", cfg.UserAgent)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("requesting %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	tmp := dest + ".part"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("creating %s: %w", tmp, err)
	}

	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("writing %s: %w", tmp, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("closing %s: %w", tmp, err)
	}

	if err := os.Rename(tmp, dest); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("renaming %s: %w", tmp, err)
	}
	return nil
}
