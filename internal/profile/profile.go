// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package profile loads and validates the researcher profile that scopes a
// generation run.
package profile

import (
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"
)

// Profile describes the researcher whose interests drive the search prompt.
type Profile struct {
	// Name is the researcher's display name.
	Name string `yaml:"name"`

	// ScholarURL is the public profile page (overrides the config value
	// when set).
	ScholarURL string `yaml:"scholar_url"`

	// Interests lists the research areas the model should search for.
	Interests []string `yaml:"interests"`

	// Publications lists representative paper titles used to anchor the
	// profile.
	Publications []string `yaml:"publications"`
}

// Load reads and validates a profile YAML file.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profile: %w", err)
	}

	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing profile %s: %w", path, err)
	}

	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid profile %s: %w", path, err)
	}
	return &p, nil
}

// Validate checks that the profile can produce a meaningful search prompt.
func (p *Profile) Validate() error {
	if len(p.Interests) == 0 {
		return fmt.Errorf("profile must list at least one research interest")
	}
	for i, interest := range p.Interests {
		if strings.TrimSpace(interest) == "" {
			return fmt.Errorf("interest %d is blank", i)
		}
	}
	return nil
}
