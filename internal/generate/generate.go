// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package generate produces raw use-case text from a prompt. Each model
// service (local Ollama, OpenAI, Anthropic) implements Generator.
package generate

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/pdiddy/usecase-scout/internal/secrets"
	"github.com/pdiddy/usecase-scout/pkg/types"
)

// DefaultMaxTokens bounds the continuation when a request leaves MaxTokens unset.
const DefaultMaxTokens = 300

// Request is one generation call.
type Request struct {
	Prompt    string
	MaxTokens int
}

func (r Request) maxTokens() int {
	if r.MaxTokens <= 0 {
		return DefaultMaxTokens
	}
	return r.MaxTokens
}

// Generator returns the model's text for a prompt. Implementations return
// only the continuation, not the prompt.
type Generator interface {
	Name() string
	Generate(ctx context.Context, req Request) (string, error)
}

// New builds the generator selected by cfg.Backend, wrapped with retries.
func New(cfg types.GenerationConfig, s secrets.Secrets) (Generator, error) {
	client := &http.Client{Timeout: cfg.Timeout}

	var g Generator
	switch cfg.Backend {
	case types.GeneratorOllama, "":
		og, err := NewOllama(cfg.BaseURL, cfg.Model, client)
		if err != nil {
			return nil, err
		}
		g = og
	case types.GeneratorOpenAI:
		key := s.Or(cfg.APIKey, secrets.OpenAIAPIKey)
		if key == "" {
			return nil, fmt.Errorf("openai generator: API key is required")
		}
		g = NewOpenAI(key, cfg.BaseURL, cfg.Model, client)
	case types.GeneratorAnthropic:
		key := s.Or(cfg.APIKey, secrets.AnthropicAPIKey)
		if key == "" {
			return nil, fmt.Errorf("anthropic generator: API key is required")
		}
		g = &ClaudeGenerator{APIKey: key, Model: cfg.Model, BaseURL: cfg.BaseURL, Client: client}
	default:
		return nil, fmt.Errorf("unknown generation backend %q", cfg.Backend)
	}

	return WithRetry(g, cfg.MaxRetries), nil
}

// RetryBaseDelay is the first backoff between failed generation attempts.
// Tests override it.
var RetryBaseDelay = 2 * time.Second

type retrying struct {
	next       Generator
	maxRetries int
}

// WithRetry retries failed calls up to maxRetries times with exponential
// backoff. A maxRetries of 0 returns g unchanged.
func WithRetry(g Generator, maxRetries int) Generator {
	if maxRetries <= 0 {
		return g
	}
	return &retrying{next: g, maxRetries: maxRetries}
}

func (r *retrying) Name() string { return r.next.Name() }

func (r *retrying) Generate(ctx context.Context, req Request) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= r.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(math.Pow(2, float64(attempt-1))) * RetryBaseDelay
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(backoff):
			}
		}

		text, err := r.next.Generate(ctx, req)
		if err == nil {
			return text, nil
		}
		lastErr = err
	}
	return "", fmt.Errorf("after %d retries: %w", r.maxRetries, lastErr)
}
