// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"net/http"

	"github.com/pdiddy/usecase-scout/internal/cache"
	"github.com/pdiddy/usecase-scout/pkg/types"
)

// NewProviders builds the enabled providers from cfg in display order
// (Hugging Face, then Kaggle). Each gets its own rate limiter when
// RequestsPerSecond is set, and shares c when CacheTTL is set and c is non-nil.
func NewProviders(cfg types.SearchConfig, c cache.Cache) []Provider {
	client := &http.Client{Timeout: cfg.Timeout}

	var providers []Provider
	if cfg.EnableHuggingFace {
		providers = append(providers, &HuggingFaceProvider{
			Client:     client,
			Kind:       cfg.HuggingFaceKind,
			Token:      cfg.HuggingFaceToken,
			UserAgent:  cfg.UserAgent,
			MaxResults: cfg.MaxResults,
		})
	}
	if cfg.EnableKaggle {
		providers = append(providers, &KaggleProvider{
			Client:     client,
			Username:   cfg.KaggleUsername,
			Key:        cfg.KaggleKey,
			UserAgent:  cfg.UserAgent,
			MaxResults: cfg.MaxResults,
		})
	}

	for i, p := range providers {
		if cfg.RequestsPerSecond > 0 {
			p = RateLimited(p, NewLimiter(cfg.RequestsPerSecond, 1))
		}
		// The cache wraps the limiter so hits skip the wait.
		if c != nil && cfg.CacheTTL > 0 {
			p = Cached(p, c, cfg.CacheTTL)
		}
		providers[i] = p
	}
	return providers
}

// DisplayName returns the heading used for a provider in formatted output.
func DisplayName(provider string) string {
	switch provider {
	case "huggingface":
		return "HuggingFace"
	case "kaggle":
		return "Kaggle"
	default:
		return provider
	}
}
