// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search queries dataset catalogs by keyword and groups the results
// per keyword and provider.
package search

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/pdiddy/usecase-scout/pkg/types"
)

// DefaultMaxResults is the per-provider cap when configuration leaves it unset.
const DefaultMaxResults = 5

// Provider searches a single dataset catalog. Hugging Face and Kaggle each
// implement it.
type Provider interface {
	Name() string
	Search(ctx context.Context, keyword string) ([]types.DatasetRecord, error)
}

// StatusError reports a non-success HTTP status from a provider.
type StatusError struct {
	Provider   string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s API returned HTTP %d", e.Provider, e.StatusCode)
}

// ErrNoProviders is returned by Fetch when no provider is configured.
var ErrNoProviders = errors.New("no dataset providers configured")

// ProviderResults holds one provider's records for one keyword.
type ProviderResults struct {
	Provider string                `json:"provider" yaml:"provider"`
	Records  []types.DatasetRecord `json:"records" yaml:"records"`
}

// KeywordResults holds every provider's records for one keyword, in provider order.
type KeywordResults struct {
	Keyword   string            `json:"keyword" yaml:"keyword"`
	Providers []ProviderResults `json:"providers" yaml:"providers"`
}

// Output is the result of a Fetch.
type Output struct {
	Keywords []string         `json:"keywords" yaml:"keywords"`
	Groups   []KeywordResults `json:"groups" yaml:"groups"`
	// Warnings lists provider failures that were degraded to empty results.
	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// Records returns the records a provider returned for keyword, or nil.
func (o Output) Records(keyword, provider string) []types.DatasetRecord {
	for _, g := range o.Groups {
		if g.Keyword != keyword {
			continue
		}
		for _, p := range g.Providers {
			if p.Provider == provider {
				return p.Records
			}
		}
	}
	return nil
}

// Total returns the number of records across all groups.
func (o Output) Total() int {
	n := 0
	for _, g := range o.Groups {
		for _, p := range g.Providers {
			n += len(p.Records)
		}
	}
	return n
}

// Fetch queries every provider for every keyword concurrently. A provider
// failure never fails the whole fetch: the affected slot is left empty and
// a warning is recorded. Groups follow keyword order, and within a group,
// provider order.
func Fetch(ctx context.Context, keywords []string, providers []Provider, cfg types.SearchConfig, logger *zap.Logger) (Output, error) {
	if len(providers) == 0 {
		return Output{}, ErrNoProviders
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	out := Output{
		Keywords: append([]string{}, keywords...),
		Groups:   make([]KeywordResults, len(keywords)),
	}
	for i, kw := range keywords {
		out.Groups[i] = KeywordResults{Keyword: kw, Providers: make([]ProviderResults, len(providers))}
		for j, p := range providers {
			out.Groups[i].Providers[j] = ProviderResults{Provider: p.Name(), Records: []types.DatasetRecord{}}
		}
	}

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	for i, kw := range keywords {
		for j, p := range providers {
			wg.Add(1)
			go func(i, j int, kw string, p Provider) {
				defer wg.Done()
				records, err := p.Search(ctx, kw)
				if err != nil {
					logger.Warn("dataset search failed",
						zap.String("provider", p.Name()),
						zap.String("keyword", kw),
						zap.Error(err))
					mu.Lock()
					out.Warnings = append(out.Warnings, fmt.Sprintf("%s %q: %v", p.Name(), kw, err))
					mu.Unlock()
					return
				}
				if len(records) == 0 {
					return
				}
				if len(records) > maxResults {
					records = records[:maxResults]
				}
				// Slots are disjoint per goroutine.
				out.Groups[i].Providers[j].Records = records
			}(i, j, kw, p)
		}
	}
	wg.Wait()
	sort.Strings(out.Warnings)

	if err := ctx.Err(); err != nil {
		return out, err
	}
	return out, nil
}
