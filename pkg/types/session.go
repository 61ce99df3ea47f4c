// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Session carries the state of one generate-then-search interaction. Callers
// pass it explicitly between the generation and dataset steps.
type Session struct {
	// ID is a random UUID assigned when the session is created.
	ID string `json:"id" yaml:"id"`

	// Industry and Trends are the user inputs the prompt was built from.
	Industry string `json:"industry" yaml:"industry"`
	Trends   string `json:"trends" yaml:"trends"`

	// Generation is the raw text the generator produced, including the echoed
	// prompt when enabled.
	Generation string `json:"generation" yaml:"generation"`

	// UseCases is the ordered list extracted from Generation (at most the configured limit).
	UseCases []string `json:"use_cases" yaml:"use_cases"`

	// Keywords are the search keywords derived from UseCases, in first-seen order.
	Keywords []string `json:"keywords" yaml:"keywords"`

	// Model identifies the generator backend and model, e.g. "ollama/llama3.2".
	Model string `json:"model" yaml:"model"`

	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// HasUseCases reports whether the session holds any use cases.
func (s Session) HasUseCases() bool {
	return len(s.UseCases) > 0
}
