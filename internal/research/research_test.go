// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package research

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pdiddy/paper-radar/internal/extract"
	"github.com/pdiddy/paper-radar/internal/profile"
	"github.com/pdiddy/paper-radar/pkg/types"
)

func testProfile() *profile.Profile {
	return &profile.Profile{
		Name:         "Ada Lovelace",
		Interests:    []string{"program synthesis", "analytical engines"},
		Publications: []string{"Notes on the Analytical Engine"},
	}
}

func TestBuildPrompt(t *testing.T) {
	prompt, err := BuildPrompt(testProfile(), "last 30 days")
	if err != nil {
		t.Fatalf("BuildPrompt() error = %v", err)
	}

	for _, want := range []string{
		"Ada Lovelace",
		"program synthesis",
		"Notes on the Analytical Engine",
		"last 30 days",
		extract.MarkerStart,
		extract.MarkerEnd,
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestBuildPromptNoPublications(t *testing.T) {
	p := testProfile()
	p.Publications = nil

	prompt, err := BuildPrompt(p, "last 30 days")
	if err != nil {
		t.Fatalf("BuildPrompt() error = %v", err)
	}
	if strings.Contains(prompt, "Representative publications") {
		t.Error("publications section rendered for empty list")
	}
}

// newAPIServer points claudeAPIURL at a test server for the duration of the
// test and returns the server.
func newAPIServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(handler)
	orig := claudeAPIURL
	claudeAPIURL = ts.URL
	t.Cleanup(func() {
		claudeAPIURL = orig
		ts.Close()
	})
	return ts
}

func TestResearchConcatenatesTextBlocks(t *testing.T) {
	var gotReq claudeRequest
	newAPIServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-api-key") != "sk-test" {
			t.Errorf("x-api-key = %q", r.Header.Get("x-api-key"))
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		// Tool-use blocks interleaved with text must be skipped.
		resp := claudeResponse{Content: []claudeContent{
			{Type: "text", Text: "I searched the web. "},
			{Type: "server_tool_use"},
			{Type: "web_search_tool_result"},
			{Type: "text", Text: "Here are the papers."},
		}}
		json.NewEncoder(w).Encode(resp)
	})

	r := &ClaudeResearcher{
		Profile:   testProfile(),
		AI:        types.AIConfig{Model: "test-model", APIKey: "sk-test"},
		Timeframe: "last 30 days",
	}

	got, err := r.Research(context.Background())
	if err != nil {
		t.Fatalf("Research() error = %v", err)
	}
	if got != "I searched the web. Here are the papers." {
		t.Errorf("Research() = %q", got)
	}

	if gotReq.Model != "test-model" {
		t.Errorf("request model = %q", gotReq.Model)
	}
	if len(gotReq.Tools) != 1 || gotReq.Tools[0].Name != "web_search" {
		t.Errorf("request tools = %+v", gotReq.Tools)
	}
}

func TestResearchAPIError(t *testing.T) {
	newAPIServer(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error": "overloaded"}`, http.StatusServiceUnavailable)
	})

	r := &ClaudeResearcher{
		Profile: testProfile(),
		AI:      types.AIConfig{Model: "test-model", APIKey: "sk-test"},
	}

	_, err := r.Research(context.Background())
	if err == nil || !strings.Contains(err.Error(), "503") {
		t.Fatalf("Research() error = %v, want 503", err)
	}
}

func TestResearchEmptyContent(t *testing.T) {
	newAPIServer(t, func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(claudeResponse{Content: []claudeContent{{Type: "server_tool_use"}}})
	})

	r := &ClaudeResearcher{
		Profile: testProfile(),
		AI:      types.AIConfig{Model: "test-model", APIKey: "sk-test"},
	}

	_, err := r.Research(context.Background())
	if err == nil || !strings.Contains(err.Error(), "no text content") {
		t.Fatalf("Research() error = %v, want no text content", err)
	}
}
