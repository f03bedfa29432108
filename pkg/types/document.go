// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"encoding/json"
	"strconv"
	"strings"
)

// PapersDocument is the persisted artifact produced by a generation run and
// consumed by the render side. It is the sole contract between the two
// halves of the system.
type PapersDocument struct {
	// GeneratedAt is the RFC 3339 timestamp set when the document is written.
	GeneratedAt string `json:"generatedAt,omitempty"`

	// Timeframe is the human-readable search window (e.g. "last 30 days").
	Timeframe string `json:"timeframe,omitempty"`

	// ScholarURL references the researcher profile the run was scoped to.
	ScholarURL string `json:"scholarUrl,omitempty"`

	// PreSummary is the free text the model emitted before the structured
	// block, kept for diagnostic display.
	PreSummary string `json:"preSummary,omitempty"`

	// Summary holds the model's trend and recommendation notes, when present.
	Summary *Summary `json:"summary"`

	// Papers is the ranked list. Slice order is display order.
	Papers []Paper `json:"papers"`

	// Error is set only when the most recent run failed; the rest of the
	// document is then the last known-good state.
	Error string `json:"error,omitempty"`
}

// Summary holds the free-text summary sections of a document.
type Summary struct {
	Trends          string `json:"trends,omitempty"`
	Recommendations string `json:"recommendations,omitempty"`
}

// Paper is a single ranked recommendation.
type Paper struct {
	// Rank is advisory display metadata. Papers are never re-sorted by it.
	Rank Rank `json:"rank,omitempty"`

	Title   string `json:"title,omitempty"`
	Authors string `json:"authors,omitempty"`
	Source  string `json:"source,omitempty"`
	Date    string `json:"date,omitempty"`

	// URL is the abstract or landing page. Empty means the title is not a link.
	URL string `json:"url,omitempty"`

	// DownloadURL is derived from URL, never supplied by the model.
	DownloadURL string `json:"downloadUrl,omitempty"`

	Description string `json:"description,omitempty"`
}

// Rank is an integer that tolerates the loose typing of model output: it
// accepts a JSON number or a numeric string and decodes anything else as 0.
type Rank int

// UnmarshalJSON implements lenient decoding for Rank.
func (r *Rank) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if s == "" || s == "null" {
		*r = 0
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*r = 0
		return nil
	}
	*r = Rank(int(f))
	return nil
}

// MarshalJSON writes Rank as a plain JSON number.
func (r Rank) MarshalJSON() ([]byte, error) {
	return json.Marshal(int(r))
}
