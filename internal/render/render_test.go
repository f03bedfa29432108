// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/paper-radar/pkg/types"
)

func renderPage(t *testing.T, doc *types.PapersDocument) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Page(doc, &buf))
	return buf.String()
}

func TestPageEmptyState(t *testing.T) {
	out := renderPage(t, &types.PapersDocument{Papers: []types.Paper{}})

	assert.Contains(t, out, "No papers in the current document.")
	assert.NotContains(t, out, "<article")
	assert.NotContains(t, out, "Last run failed")
	// Missing timeframe falls back to the placeholder badge.
	assert.Contains(t, out, `<span class="badge">N/A</span>`)
}

func TestPageCardWithViewButNoPDF(t *testing.T) {
	out := renderPage(t, &types.PapersDocument{
		Papers: []types.Paper{{
			Rank:  1,
			Title: "A Paper",
			URL:   "https://example.org/a",
		}},
	})

	assert.Contains(t, out, `<a href="https://example.org/a">View</a>`)
	assert.NotContains(t, out, ">PDF</a>")
	// Fallback strings for missing descriptive fields.
	assert.Contains(t, out, "Unknown")
	assert.Contains(t, out, "N/A")
}

func TestPageCardWithoutURL(t *testing.T) {
	out := renderPage(t, &types.PapersDocument{
		Papers: []types.Paper{{Rank: 1, Title: "Unlinked Paper"}},
	})

	assert.Contains(t, out, "Unlinked Paper")
	// No dead links: neither the title nor the actions row links anywhere.
	assert.NotContains(t, out, ">View</a>")
	assert.NotContains(t, out, `<a href=""`)
}

func TestPageCardOrderAndPDF(t *testing.T) {
	out := renderPage(t, &types.PapersDocument{
		GeneratedAt: "2026-08-20T06:00:00Z",
		Timeframe:   "last 30 days",
		Papers: []types.Paper{
			{Rank: 1, Title: "First", URL: "https://arxiv.org/abs/1", DownloadURL: "https://arxiv.org/pdf/1.pdf"},
			{Rank: 2, Title: "Second"},
		},
	})

	assert.Less(t, strings.Index(out, "First"), strings.Index(out, "Second"))
	assert.Contains(t, out, `<a href="https://arxiv.org/pdf/1.pdf">PDF</a>`)
	assert.Contains(t, out, "Generated Aug 20, 2026 06:00 UTC")
	assert.Contains(t, out, "last 30 days")
}

func TestPageErrorBannerAlongsideContent(t *testing.T) {
	out := renderPage(t, &types.PapersDocument{
		Error:  "model call: upstream unavailable",
		Papers: []types.Paper{{Rank: 1, Title: "Survivor"}},
	})

	// Error and content are not mutually exclusive.
	assert.Contains(t, out, "Last run failed: model call: upstream unavailable")
	assert.Contains(t, out, "Survivor")
}

func TestPageSummaryPanel(t *testing.T) {
	tests := []struct {
		name      string
		summary   *types.Summary
		wantPanel bool
	}{
		{"nil summary", nil, false},
		{"empty summary", &types.Summary{}, false},
		{"trends only", &types.Summary{Trends: "graph learning"}, true},
		{"recommendations only", &types.Summary{Recommendations: "read more"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := renderPage(t, &types.PapersDocument{Summary: tt.summary, Papers: []types.Paper{}})
			if tt.wantPanel {
				assert.Contains(t, out, "<section>")
			} else {
				assert.NotContains(t, out, "<section>")
			}
		})
	}
}

func TestPageEscapesUserText(t *testing.T) {
	out := renderPage(t, &types.PapersDocument{
		PreSummary: `pre <b>bold</b> & "quotes"`,
		Papers: []types.Paper{{
			Rank:        1,
			Title:       `<script>alert("xss")</script>`,
			Authors:     `Eve <img src=x>`,
			Description: `a & b < c`,
			URL:         `https://example.org/?q="><script>`,
		}},
	})

	assert.NotContains(t, out, `<script>alert`)
	assert.NotContains(t, out, `<img src=x>`)
	assert.Contains(t, out, "&lt;script&gt;")
	// The URL's quote must not close the href attribute.
	assert.NotContains(t, out, `href="https://example.org/?q=""`)
}

func TestErrorPage(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ErrorPage(errors.New("fetch exploded"), &buf))

	out := buf.String()
	assert.Contains(t, out, "Last run failed: fetch exploded")
	assert.Contains(t, out, "No papers in the current document.")
}

func TestFetch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"generatedAt": "2026-08-20T06:00:00Z", "papers": [{"title": "Fetched"}]}`))
	}))
	defer ts.Close()

	doc, err := Fetch(context.Background(), ts.Client(), ts.URL)
	require.NoError(t, err)
	require.Len(t, doc.Papers, 1)
	assert.Equal(t, "Fetched", doc.Papers[0].Title)
}

func TestFetchFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		errMsg  string
	}{
		{
			name:    "non-success status",
			handler: func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNotFound) },
			errMsg:  "HTTP 404",
		},
		{
			name:    "malformed body",
			handler: func(w http.ResponseWriter, _ *http.Request) { w.Write([]byte("<html>not json")) },
			errMsg:  "decoding document",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(tt.handler)
			defer ts.Close()

			_, err := Fetch(context.Background(), ts.Client(), ts.URL)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestFetchNetworkError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	ts.Close() // closed on purpose

	_, err := Fetch(context.Background(), http.DefaultClient, ts.URL)
	require.Error(t, err)
}
