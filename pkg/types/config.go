package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "paper-radar/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// AIConfig holds settings for the upstream model call.
type AIConfig struct {
	// Model is the AI model identifier (e.g. "claude-sonnet-4-5-20250929").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the AI API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxTokens caps the response length (default 8192).
	MaxTokens int `json:"max_tokens" yaml:"max_tokens"`

	// MaxRetries is the number of transport-level retries on HTTP 429
	// (default 3). A failed call is never re-issued by the pipeline itself.
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// ProfileConfig holds settings describing the researcher the run is scoped to.
type ProfileConfig struct {
	// Path is the researcher profile YAML file (default "profile.yaml").
	Path string `json:"path" yaml:"path"`

	// ScholarURL is the public profile reference stamped into each document.
	ScholarURL string `json:"scholar_url" yaml:"scholar_url"`

	// Timeframe is the human-readable search window (default "last 30 days").
	Timeframe string `json:"timeframe" yaml:"timeframe"`
}

// OutputConfig holds settings for the persisted document.
type OutputConfig struct {
	// Dir is the directory holding the artifact (default "output").
	Dir string `json:"dir" yaml:"dir"`

	// File is the artifact filename (default "papers.json").
	File string `json:"file" yaml:"file"`
}

// ServeConfig holds settings for the HTTP server.
type ServeConfig struct {
	// Addr is the listen address (default ":8080").
	Addr string `json:"addr" yaml:"addr"`
}

// HistoryConfig holds settings for the run-history log.
type HistoryConfig struct {
	// Dir is the directory holding the SQLite database (default "history").
	Dir string `json:"dir" yaml:"dir"`
}

// FetchConfig holds settings for PDF downloads.
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`

	// Dir is the directory PDFs are downloaded into (default "papers/pdf").
	Dir string `json:"dir" yaml:"dir"`

	// DownloadDelay is the delay between consecutive downloads (default 1s).
	DownloadDelay time.Duration `json:"download_delay" yaml:"download_delay"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	HTTP    HTTPConfig    `json:"http" yaml:"http"`
	AI      AIConfig      `json:"ai" yaml:"ai"`
	Profile ProfileConfig `json:"profile" yaml:"profile"`
	Output  OutputConfig  `json:"output" yaml:"output"`
	Serve   ServeConfig   `json:"serve" yaml:"serve"`
	History HistoryConfig `json:"history" yaml:"history"`
	Fetch   FetchConfig   `json:"fetch" yaml:"fetch"`
}
