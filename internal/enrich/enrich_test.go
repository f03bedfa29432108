// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package enrich

import (
	"testing"

	"github.com/pdiddy/paper-radar/pkg/types"
)

func TestDownloadURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{
			name: "arxiv abstract",
			url:  "https://arxiv.org/abs/2501.12345",
			want: "https://arxiv.org/pdf/2501.12345.pdf",
		},
		{
			name: "arxiv abstract with trailing slash",
			url:  "https://arxiv.org/abs/2501.12345/",
			want: "https://arxiv.org/pdf/2501.12345.pdf",
		},
		{
			name: "arxiv abstract with version",
			url:  "http://arxiv.org/abs/1706.03762v5",
			want: "http://arxiv.org/pdf/1706.03762v5.pdf",
		},
		{"publisher page", "https://dl.acm.org/doi/10.1145/3292500", ""},
		{"abs path on another host", "https://example.org/abs/2501.12345", ""},
		{"empty id", "https://arxiv.org/abs/", ""},
		{"empty url", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DownloadURL(tt.url); got != tt.want {
				t.Errorf("DownloadURL(%q) = %q, want %q", tt.url, got, tt.want)
			}
			// Pure: a second call must agree with the first.
			if again := DownloadURL(tt.url); again != tt.want {
				t.Errorf("DownloadURL(%q) second call = %q", tt.url, again)
			}
		})
	}
}

func TestPapers(t *testing.T) {
	in := []types.Paper{
		{Rank: 1, Title: "A", URL: "https://arxiv.org/abs/2501.00001"},
		{Rank: 2, Title: "B", URL: "https://dl.acm.org/doi/10.1145/1"},
		{Rank: 3, Title: "C"},
		{Rank: 4, Title: "D", URL: "https://example.org/x", DownloadURL: "https://stale.example.org/old.pdf"},
	}

	out := Papers(in)

	if len(out) != len(in) {
		t.Fatalf("len(out) = %d, want %d", len(out), len(in))
	}
	if out[0].DownloadURL != "https://arxiv.org/pdf/2501.00001.pdf" {
		t.Errorf("out[0].DownloadURL = %q", out[0].DownloadURL)
	}
	if out[1].DownloadURL != "" || out[2].DownloadURL != "" {
		t.Errorf("non-matching papers must have no download URL: %+v", out[1:3])
	}
	// Stale derived values are recomputed, not preserved.
	if out[3].DownloadURL != "" {
		t.Errorf("out[3].DownloadURL = %q, want empty", out[3].DownloadURL)
	}
	// Input is not mutated.
	if in[3].DownloadURL != "https://stale.example.org/old.pdf" {
		t.Errorf("input mutated: %+v", in[3])
	}
	// Order is preserved.
	for i, title := range []string{"A", "B", "C", "D"} {
		if out[i].Title != title {
			t.Errorf("out[%d].Title = %q, want %q", i, out[i].Title, title)
		}
	}
}

func TestPapersNil(t *testing.T) {
	if out := Papers(nil); out != nil {
		t.Errorf("Papers(nil) = %v, want nil", out)
	}
}
