// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package research

import (
	"bytes"
	"text/template"

	"github.com/pdiddy/paper-radar/internal/extract"
	"github.com/pdiddy/paper-radar/internal/profile"
)

// systemPrompt frames the model as a literature scout. The actual search is
// delegated to the model's web search tool.
const systemPrompt = `You are an academic literature scout. You search the web for recently
published papers and rank them by relevance to a specific researcher's
interests. You always report real papers with verifiable URLs; you never
invent titles, authors, or links.`

// userPromptTmpl asks for a ranked list wrapped in the marker pair that the
// extraction cascade trusts most. The example response pins the exact field
// names the document schema expects.
var userPromptTmpl = template.Must(template.New("research").Parse(`Find recent academic papers ({{.Timeframe}}) relevant to this researcher:

Name: {{.Name}}
Research interests:
{{- range .Interests}}
- {{.}}
{{- end}}
{{- if .Publications}}
Representative publications:
{{- range .Publications}}
- {{.}}
{{- end}}
{{- end}}

Use web search to find candidate papers, then rank the best matches (at most
10) by relevance. You may write a short prose summary of your search first.

Then output the result as a JSON object between the literal lines
{{.MarkerStart}} and {{.MarkerEnd}}, like this:

{{.MarkerStart}}
{"summary": {"trends": "...", "recommendations": "..."}, "papers": [{"rank": 1, "title": "...", "authors": "...", "source": "...", "date": "...", "url": "...", "description": "..."}]}
{{.MarkerEnd}}

Every field is plain text. Omit fields you could not determine rather than
guessing. Do not put anything else between the markers.`))

// promptData feeds userPromptTmpl.
type promptData struct {
	Name         string
	Interests    []string
	Publications []string
	Timeframe    string
	MarkerStart  string
	MarkerEnd    string
}

// BuildPrompt renders the user prompt for a profile and timeframe.
func BuildPrompt(p *profile.Profile, timeframe string) (string, error) {
	var buf bytes.Buffer
	err := userPromptTmpl.Execute(&buf, promptData{
		Name:         p.Name,
		Interests:    p.Interests,
		Publications: p.Publications,
		Timeframe:    timeframe,
		MarkerStart:  extract.MarkerStart,
		MarkerEnd:    extract.MarkerEnd,
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
