// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package enrich derives secondary paper fields from primary ones.
package enrich

import (
	"strings"

	"github.com/pdiddy/paper-radar/pkg/types"
)

const (
	absSegment = "/abs/"
	pdfSegment = "/pdf/"
	pdfSuffix  = ".pdf"
)

// DownloadURL derives a direct PDF link from an arXiv abstract URL
// ("…/abs/2501.12345" → "…/pdf/2501.12345.pdf"). URLs that do not match the
// abstract pattern yield "". Pure: same input, same output.
func DownloadURL(url string) string {
	idx := strings.Index(url, absSegment)
	if idx < 0 || !strings.Contains(url, "arxiv.org") {
		return ""
	}

	id := strings.TrimSuffix(url[idx+len(absSegment):], "/")
	if id == "" {
		return ""
	}
	return url[:idx] + pdfSegment + id + pdfSuffix
}

// Papers returns a new slice with DownloadURL recomputed for every paper.
// The field is always a function of URL: stale values are overwritten and
// papers without a matching URL get an empty one. Input papers are not
// mutated.
func Papers(papers []types.Paper) []types.Paper {
	if papers == nil {
		return nil
	}
	out := make([]types.Paper, len(papers))
	for i, p := range papers {
		p.DownloadURL = DownloadURL(p.URL)
		out[i] = p
	}
	return out
}
