// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline coordinates one end-to-end generation run: model call,
// extraction, enrichment, persistence. A failed run still leaves a readable
// document behind so the render side always has something to show.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/pdiddy/paper-radar/internal/enrich"
	"github.com/pdiddy/paper-radar/internal/extract"
	"github.com/pdiddy/paper-radar/internal/history"
	"github.com/pdiddy/paper-radar/internal/research"
	"github.com/pdiddy/paper-radar/pkg/types"
)

// RunRecorder logs run outcomes. *history.Store implements it; a nil
// recorder disables logging.
type RunRecorder interface {
	Record(run history.Run) error
}

// Runner holds the collaborators for a generation run.
type Runner struct {
	Researcher research.Researcher
	Output     types.OutputConfig
	// Timeframe and ScholarURL are stamped into every successful document.
	Timeframe  string
	ScholarURL string
	History    RunRecorder
}

// ArtifactPath returns the location of the persisted document.
func (r *Runner) ArtifactPath() string {
	file := r.Output.File
	if file == "" {
		file = "papers.json"
	}
	return filepath.Join(r.Output.Dir, file)
}

// Run executes one generation run. On success the returned document has no
// error field and has been persisted. On failure Run persists a degraded
// document (previous state plus an error annotation, or a minimal
// empty-papers document) and returns the failure; it never retries and
// never leaves the artifact missing.
func (r *Runner) Run(ctx context.Context, w io.Writer) (*types.PapersDocument, error) {
	startedAt := time.Now()

	if err := os.MkdirAll(r.Output.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	prev := loadPrevious(r.ArtifactPath())

	doc, err := r.generate(ctx, w)
	if err != nil {
		return r.fail(w, prev, startedAt, err)
	}

	if err := persist(r.ArtifactPath(), doc); err != nil {
		return r.fail(w, prev, startedAt, fmt.Errorf("persisting document: %w", err))
	}

	fmt.Fprintf(w, "generated %s (%d papers)\n", r.ArtifactPath(), len(doc.Papers))
	r.record(w, history.Run{StartedAt: startedAt, Status: history.StatusOK, PaperCount: len(doc.Papers)})
	return doc, nil
}

// fail handles the degraded path shared by every failure mode: persist the
// previous document annotated with the error (best-effort), record the run
// as failed, and hand the error back to the caller.
func (r *Runner) fail(w io.Writer, prev *types.PapersDocument, startedAt time.Time, err error) (*types.PapersDocument, error) {
	deg := Degrade(prev, err.Error())
	if persistErr := persist(r.ArtifactPath(), deg); persistErr != nil {
		fmt.Fprintf(w, "warning: persisting degraded document: %v\n", persistErr)
	}
	r.record(w, history.Run{StartedAt: startedAt, Status: history.StatusFailed, Error: err.Error(), PaperCount: len(deg.Papers)})
	return deg, err
}

// generate performs the model call and normalization, without touching the
// artifact.
func (r *Runner) generate(ctx context.Context, w io.Writer) (*types.PapersDocument, error) {
	fmt.Fprintln(w, "querying model...")
	raw, err := r.Researcher.Research(ctx)
	if err != nil {
		return nil, fmt.Errorf("model call: %w", err)
	}

	parsed, err := extract.Document(raw, w)
	if err != nil {
		return nil, err
	}

	papers := enrich.Papers(parsed.Papers)
	if papers == nil {
		papers = []types.Paper{}
	}

	return &types.PapersDocument{
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Timeframe:   r.Timeframe,
		ScholarURL:  r.ScholarURL,
		PreSummary:  extract.PreSummary(raw),
		Summary:     parsed.Summary,
		Papers:      papers,
	}, nil
}

// Degrade builds the document persisted after a failed run: the previous
// document annotated with the error, or a minimal empty-papers document
// when no previous state exists. Pure; prev is not mutated.
func Degrade(prev *types.PapersDocument, msg string) *types.PapersDocument {
	if prev == nil {
		return &types.PapersDocument{Papers: []types.Paper{}, Error: msg}
	}
	deg := *prev
	deg.Error = msg
	return &deg
}

// loadPrevious reads the prior artifact best-effort. A missing, unreadable,
// or corrupt file means "no previous document", never a hard failure.
func loadPrevious(path string) *types.PapersDocument {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var doc types.PapersDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil
	}
	return &doc
}

// persist writes the document atomically: temp file in the same directory,
// then rename over the artifact.
func persist(path string, doc *types.PapersDocument) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling document: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}

// record logs the run outcome. History failures are warnings, not run
// failures.
func (r *Runner) record(w io.Writer, run history.Run) {
	if r.History == nil {
		return
	}
	if err := r.History.Record(run); err != nil {
		fmt.Fprintf(w, "warning: recording run history: %v\n", err)
	}
}
