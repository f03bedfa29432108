// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package serve exposes the persisted document over HTTP: the rendered card
// page at / and the raw JSON artifact at /papers.json. The artifact is read
// from disk on every request; the file is the only state.
package serve

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/pdiddy/paper-radar/internal/render"
	"github.com/pdiddy/paper-radar/pkg/types"
)

// Handler builds the HTTP handler for the given artifact path.
func Handler(artifactPath string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", pageHandler(artifactPath))
	mux.HandleFunc("/papers.json", artifactHandler(artifactPath))
	return mux
}

// pageHandler renders the document as cards. A missing or unreadable
// artifact renders the error page instead of an unstyled failure.
func pageHandler(artifactPath string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")

		doc, err := readArtifact(artifactPath)
		if err != nil {
			if renderErr := render.ErrorPage(err, w); renderErr != nil {
				fmt.Fprintf(os.Stderr, "warning: rendering error page: %v\n", renderErr)
			}
			return
		}
		if err := render.Page(doc, w); err != nil {
			fmt.Fprintf(os.Stderr, "warning: rendering page: %v\n", err)
		}
	}
}

// artifactHandler serves the raw JSON document.
func artifactHandler(artifactPath string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := os.ReadFile(artifactPath)
		if err != nil {
			http.Error(w, "no document has been generated yet", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
	}
}

// readArtifact loads and decodes the persisted document.
func readArtifact(path string) (*types.PapersDocument, error) {
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
