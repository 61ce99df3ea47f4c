// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs the two user-facing steps: generating use cases for
// an industry and searching dataset catalogs for them. Session state is
// passed explicitly between the steps.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pdiddy/usecase-scout/internal/generate"
	"github.com/pdiddy/usecase-scout/internal/search"
	"github.com/pdiddy/usecase-scout/internal/usecase"
	"github.com/pdiddy/usecase-scout/pkg/types"
)

var (
	// ErrEmptyQuery is returned when neither an industry nor trends are given.
	ErrEmptyQuery = errors.New("industry or trends is required")

	// ErrNoUseCases is returned when a dataset search is requested for a
	// session that holds no use cases.
	ErrNoUseCases = errors.New("no use cases to search; generate use cases first")
)

// SessionStore persists sessions and their dataset results. *store.Store
// implements it.
type SessionStore interface {
	SaveSession(ctx context.Context, sess types.Session) error
	SaveDatasets(ctx context.Context, sessionID string, out search.Output) error
}

// Pipeline wires a generator and dataset providers together. Store is optional.
type Pipeline struct {
	Generator generate.Generator
	Providers []search.Provider
	Store     SessionStore
	Config    types.AppConfig
	Logger    *zap.Logger
}

// Overridden in tests.
var (
	newID = uuid.NewString
	now   = time.Now
)

func (p *Pipeline) logger() *zap.Logger {
	if p.Logger == nil {
		return zap.NewNop()
	}
	return p.Logger
}

// GenerateUseCases renders the prompt, calls the generator, and returns a new
// session holding the extracted use cases and their keywords. The session is
// saved when a store is configured; a save failure is logged, not returned.
func (p *Pipeline) GenerateUseCases(ctx context.Context, industry, trends string) (types.Session, error) {
	industry, trends = strings.TrimSpace(industry), strings.TrimSpace(trends)
	if industry == "" && trends == "" {
		return types.Session{}, ErrEmptyQuery
	}
	if p.Generator == nil {
		return types.Session{}, fmt.Errorf("no generator configured")
	}

	prompt, err := usecase.RenderPrompt(industry, trends)
	if err != nil {
		return types.Session{}, fmt.Errorf("rendering prompt: %w", err)
	}

	log := p.logger().With(zap.String("generator", p.Generator.Name()))
	log.Debug("generating use cases", zap.String("industry", industry), zap.String("trends", trends))

	start := now()
	text, err := p.Generator.Generate(ctx, generate.Request{
		Prompt:    prompt,
		MaxTokens: p.Config.Generation.MaxTokens,
	})
	if err != nil {
		return types.Session{}, fmt.Errorf("generating use cases: %w", err)
	}

	generation := joinGeneration(prompt, text, p.Config.Generation.EchoPrompt)
	cases := usecase.ExtractWith(generation, usecase.Options{
		Limit:     p.Config.Extract.Limit,
		SkipBlank: p.Config.Extract.SkipBlank,
	})
	keywords := usecase.Derive(cases)

	sess := types.Session{
		ID:         newID(),
		Industry:   industry,
		Trends:     trends,
		Generation: generation,
		UseCases:   cases,
		Keywords:   keywords.Keywords(),
		Model:      p.Generator.Name(),
		CreatedAt:  now().UTC(),
	}
	log.Info("generated use cases",
		zap.String("session", sess.ID),
		zap.Int("use_cases", len(cases)),
		zap.Strings("keywords", sess.Keywords),
		zap.Duration("elapsed", now().Sub(start)))

	if p.Store != nil {
		if err := p.Store.SaveSession(ctx, sess); err != nil {
			log.Warn("saving session failed", zap.String("session", sess.ID), zap.Error(err))
		}
	}
	return sess, nil
}

// FetchDatasets derives keywords from the session's use cases and searches
// every provider for each one. Results are saved against the session when a
// store is configured and the session has an ID.
func (p *Pipeline) FetchDatasets(ctx context.Context, sess types.Session) (search.Output, error) {
	if !sess.HasUseCases() {
		return search.Output{}, ErrNoUseCases
	}

	keywords := usecase.Derive(sess.UseCases).Keywords()
	out, err := search.Fetch(ctx, keywords, p.Providers, p.Config.Search, p.logger())
	if err != nil {
		return out, fmt.Errorf("searching datasets: %w", err)
	}
	p.logger().Info("fetched datasets",
		zap.String("session", sess.ID),
		zap.Int("keywords", len(keywords)),
		zap.Int("records", out.Total()),
		zap.Int("warnings", len(out.Warnings)))

	if p.Store != nil && sess.ID != "" {
		if err := p.Store.SaveDatasets(ctx, sess.ID, out); err != nil {
			p.logger().Warn("saving datasets failed", zap.String("session", sess.ID), zap.Error(err))
		}
	}
	return out, nil
}

// AdHocSession builds an unsaved session from use cases given directly by
// the caller, for searching without a generation step.
func AdHocSession(cases []string) types.Session {
	trimmed := make([]string, 0, len(cases))
	for _, c := range cases {
		trimmed = append(trimmed, strings.TrimSpace(c))
	}
	return types.Session{
		UseCases: trimmed,
		Keywords: usecase.Derive(trimmed).Keywords(),
	}
}

// Run generates use cases and then fetches datasets for them.
func (p *Pipeline) Run(ctx context.Context, industry, trends string) (types.Session, search.Output, error) {
	sess, err := p.GenerateUseCases(ctx, industry, trends)
	if err != nil {
		return sess, search.Output{}, err
	}
	out, err := p.FetchDatasets(ctx, sess)
	return sess, out, err
}

// joinGeneration returns the text to extract from. The prompt ends inside the
// first list item, so a completion-style continuation needs it prepended for
// the first item to be found. A continuation that already starts with its own
// numbered line is used as is.
func joinGeneration(prompt, continuation string, echo bool) string {
	if !echo || usecase.StartsNumbered(continuation) {
		return continuation
	}
	return prompt + continuation
}
