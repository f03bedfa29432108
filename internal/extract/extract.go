// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract recovers a structured papers document from raw model
// output. Model output formatting is not contractually guaranteed even when
// instructed, so extraction runs an ordered cascade of strategies and takes
// the first success: marker-delimited block, fenced JSON code block, then a
// scan for brace-delimited candidates.
package extract

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/pdiddy/paper-radar/pkg/types"
)

// MarkerStart and MarkerEnd delimit the structured block the prompt asks the
// model to emit. The marker pair is the most-trusted encoding.
const (
	MarkerStart = "PAPERS_JSON_START"
	MarkerEnd   = "PAPERS_JSON_END"
)

const fenceOpen = "```json"

// ErrNoExtractableData reports that no strategy produced a document. The
// caller treats this as terminal for the run; extraction never retries.
var ErrNoExtractableData = errors.New("could not extract valid structured data from model response")

// strategy attempts to recover a document from raw text. A false return
// means the next strategy should be tried; strategies share no state.
type strategy func(raw string, w io.Writer) (*types.PapersDocument, bool)

var strategies = []strategy{fromMarkers, fromFence, fromBraceScan}

// Document extracts a papers document from raw model output. Warnings from
// partial matches (markers present but unparseable) go to w. When every
// strategy fails the error wraps ErrNoExtractableData.
func Document(raw string, w io.Writer) (*types.PapersDocument, error) {
	for _, s := range strategies {
		if doc, ok := s(raw, w); ok {
			return doc, nil
		}
	}
	return nil, ErrNoExtractableData
}

// PreSummary returns the free text preceding the structured block, for
// diagnostic display. Empty string when no marker or fence exists.
func PreSummary(raw string) string {
	if idx := strings.Index(raw, MarkerStart); idx >= 0 {
		return strings.TrimSpace(raw[:idx])
	}
	if idx := strings.Index(raw, fenceOpen); idx >= 0 {
		return strings.TrimSpace(raw[:idx])
	}
	return ""
}

// fromMarkers parses the text between MarkerStart and MarkerEnd. A marker
// pair that encloses unparseable text logs a warning and falls through
// rather than failing the cascade.
func fromMarkers(raw string, w io.Writer) (*types.PapersDocument, bool) {
	start := strings.Index(raw, MarkerStart)
	if start < 0 {
		return nil, false
	}
	rest := raw[start+len(MarkerStart):]
	end := strings.Index(rest, MarkerEnd)
	if end < 0 {
		return nil, false
	}

	doc, err := parseDocument(rest[:end])
	if err != nil {
		fmt.Fprintf(w, "warning: marker-delimited block failed to parse: %v\n", err)
		return nil, false
	}
	return doc, true
}

// fromFence parses the contents of the first ```json fenced code block.
func fromFence(raw string, _ io.Writer) (*types.PapersDocument, bool) {
	start := strings.Index(raw, fenceOpen)
	if start < 0 {
		return nil, false
	}
	rest := raw[start+len(fenceOpen):]
	end := strings.Index(rest, "```")
	if end < 0 {
		return nil, false
	}

	doc, err := parseDocument(rest[:end])
	if err != nil {
		return nil, false
	}
	return doc, true
}

// fromBraceScan collects non-overlapping balanced-brace substrings, tries
// the longest first (longer blocks are more likely the complete payload),
// and accepts the first candidate that parses and carries a "papers" array.
// The papers check keeps the scan from picking an unrelated brace block.
func fromBraceScan(raw string, _ io.Writer) (*types.PapersDocument, bool) {
	candidates := braceBlocks(raw)
	sort.SliceStable(candidates, func(i, j int) bool {
		return len(candidates[i]) > len(candidates[j])
	})

	for _, c := range candidates {
		doc, err := parseDocument(c)
		if err != nil || doc.Papers == nil {
			continue
		}
		return doc, true
	}
	return nil, false
}

// braceBlocks returns candidate {...} substrings from raw: every top-level
// balanced block, with braces inside double-quoted JSON strings ignored so a
// brace in a title cannot split a block. The greedy first-{-to-last-} span is
// added last as a safety net when stray braces in surrounding prose confuse
// the scan.
func braceBlocks(raw string) []string {
	var blocks []string
	depth := 0
	start := -1
	inString := false
	escaped := false
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			// String tracking only matters inside a candidate block;
			// quotes in surrounding prose are unbalanced too often.
			if depth > 0 {
				inString = true
			}
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth == 0 {
				continue
			}
			depth--
			if depth == 0 && start >= 0 {
				blocks = append(blocks, raw[start:i+1])
				start = -1
			}
		}
	}

	first := strings.Index(raw, "{")
	last := strings.LastIndex(raw, "}")
	if first >= 0 && last > first {
		span := raw[first : last+1]
		seen := false
		for _, b := range blocks {
			if b == span {
				seen = true
				break
			}
		}
		if !seen {
			blocks = append(blocks, span)
		}
	}
	return blocks
}

// parseDocument strictly decodes s as a papers document. Shape validation
// is minimal: papers, when present, must be a JSON array; the remaining
// fields stay loosely typed.
func parseDocument(s string) (*types.PapersDocument, error) {
	var doc types.PapersDocument
	if err := json.Unmarshal([]byte(strings.TrimSpace(s)), &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}
