// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render materializes a papers document as an HTML page of cards.
// All user-supplied text flows through html/template's contextual escaping,
// so model output can never introduce markup or attribute boundaries.
package render

import (
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"time"

	"github.com/pdiddy/paper-radar/pkg/types"
)

// timeframePlaceholder is shown in the badge when the document carries no
// timeframe.
const timeframePlaceholder = "N/A"

// pageTmpl renders the whole page. Field fallbacks: authors "Unknown",
// source and date "N/A", description empty. A link is rendered only when
// its source field is present; there are no dead links.
var pageTmpl = template.Must(template.New("page").Funcs(template.FuncMap{
	"fallback": func(s, def string) string {
		if s == "" {
			return def
		}
		return s
	},
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>paper-radar</title>
<style>
body { font-family: sans-serif; max-width: 48rem; margin: 2rem auto; padding: 0 1rem; }
.banner { background: #fdd; border: 1px solid #c66; padding: .5rem 1rem; margin-bottom: 1rem; }
.badge { background: #eef; border-radius: .5rem; padding: .1rem .6rem; font-size: .85rem; }
.card { border: 1px solid #ddd; border-radius: .5rem; padding: .75rem 1rem; margin: .75rem 0; }
.card h2 { margin: 0 0 .25rem; font-size: 1.1rem; }
.meta { color: #666; font-size: .85rem; }
.actions a { margin-right: .75rem; }
.empty { color: #666; font-style: italic; }
</style>
</head>
<body>
<h1>paper-radar</h1>
{{- if .Doc.Error}}
<div class="banner">Last run failed: {{.Doc.Error}}</div>
{{- end}}
<p class="meta">
{{- if .GeneratedAt}}Generated {{.GeneratedAt}} &middot; {{end -}}
<span class="badge">{{.Timeframe}}</span>
{{- if .Doc.ScholarURL}} &middot; <a href="{{.Doc.ScholarURL}}">scholar profile</a>{{end -}}
</p>
{{- if .Doc.PreSummary}}
<details><summary>Model notes</summary><p>{{.Doc.PreSummary}}</p></details>
{{- end}}
{{- if .HasSummary}}
<section>
{{- with .Doc.Summary}}
{{- if .Trends}}<h2>Trends</h2><p>{{.Trends}}</p>{{end}}
{{- if .Recommendations}}<h2>Recommendations</h2><p>{{.Recommendations}}</p>{{end}}
{{- end}}
</section>
{{- end}}
{{- if .Doc.Papers}}
{{- range .Doc.Papers}}
<article class="card">
{{- if .URL}}
<h2>{{if gt .Rank 0}}{{.Rank}}. {{end}}<a href="{{.URL}}">{{.Title}}</a></h2>
{{- else}}
<h2>{{if gt .Rank 0}}{{.Rank}}. {{end}}{{.Title}}</h2>
{{- end}}
<p class="meta">{{fallback .Authors "Unknown"}} &middot; {{fallback .Source "N/A"}} &middot; {{fallback .Date "N/A"}}</p>
<p>{{.Description}}</p>
<p class="actions">
{{- if .URL}}<a href="{{.URL}}">View</a>{{end}}
{{- if .DownloadURL}}<a href="{{.DownloadURL}}">PDF</a>{{end -}}
</p>
</article>
{{- end}}
{{- else}}
<p class="empty">No papers in the current document.</p>
{{- end}}
</body>
</html>
`))

// pageData feeds pageTmpl.
type pageData struct {
	Doc         *types.PapersDocument
	GeneratedAt string
	Timeframe   string
	HasSummary  bool
}

// Page renders doc to w. Error banner and content are not mutually
// exclusive: a degraded document shows both the failure and the last
// known-good papers.
func Page(doc *types.PapersDocument, w io.Writer) error {
	data := pageData{
		Doc:         doc,
		GeneratedAt: formatGeneratedAt(doc.GeneratedAt),
		Timeframe:   doc.Timeframe,
	}
	if data.Timeframe == "" {
		data.Timeframe = timeframePlaceholder
	}
	if s := doc.Summary; s != nil && (s.Trends != "" || s.Recommendations != "") {
		data.HasSummary = true
	}
	return pageTmpl.Execute(w, data)
}

// ErrorPage renders the total-failure state: the error banner plus the
// empty-state indicator, with no document data.
func ErrorPage(err error, w io.Writer) error {
	return Page(&types.PapersDocument{Error: err.Error()}, w)
}

// Fetch retrieves the persisted document over HTTP. A non-2xx status or an
// undecodable body is a total fetch failure.
func Fetch(ctx context.Context, client *http.Client, url string) (*types.PapersDocument, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetching document: HTTP %d", resp.StatusCode)
	}

	var doc types.PapersDocument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding document: %w", err)
	}
	return &doc, nil
}

// formatGeneratedAt formats an RFC 3339 timestamp for display, passing the
// raw string through when it does not parse.
func formatGeneratedAt(s string) string {
	if s == "" {
		return ""
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return s
	}
	return t.UTC().Format("Jan 2, 2006 15:04 UTC")
}
