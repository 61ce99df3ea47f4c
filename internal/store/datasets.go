// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/pdiddy/usecase-scout/internal/search"
	"github.com/pdiddy/usecase-scout/pkg/types"
)

// SaveDatasets stores the results of a fetch against a session, replacing
// any results saved for it earlier. The session must already exist.
func (s *Store) SaveDatasets(ctx context.Context, sessionID string, out search.Output) error {
	var providers []string
	if len(out.Groups) > 0 {
		for _, p := range out.Groups[0].Providers {
			providers = append(providers, p.Provider)
		}
	}

	keywordsJSON, err := json.Marshal(nonNil(out.Keywords))
	if err != nil {
		return fmt.Errorf("marshaling keywords: %w", err)
	}
	providersJSON, err := json.Marshal(nonNil(providers))
	if err != nil {
		return fmt.Errorf("marshaling providers: %w", err)
	}
	warningsJSON, err := json.Marshal(nonNil(out.Warnings))
	if err != nil {
		return fmt.Errorf("marshaling warnings: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM dataset_results WHERE session_id = ?`, sessionID); err != nil {
		return fmt.Errorf("clearing dataset results: %w", err)
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO dataset_runs (session_id, keywords, providers, warnings, fetched_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(session_id) DO UPDATE SET
			keywords=excluded.keywords, providers=excluded.providers,
			warnings=excluded.warnings, fetched_at=excluded.fetched_at`,
		sessionID, string(keywordsJSON), string(providersJSON), string(warningsJSON),
		time.Now().UTC().Format(timeLayout),
	)
	if err != nil {
		if isForeignKeyErr(err) {
			return fmt.Errorf("%w: %s", ErrNotFound, sessionID)
		}
		return fmt.Errorf("saving dataset run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO dataset_results (session_id, keyword, provider, rank, identifier, title, url)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing result insert: %w", err)
	}
	defer stmt.Close()

	for _, g := range out.Groups {
		for _, p := range g.Providers {
			for i, r := range p.Records {
				rank := r.Rank
				if rank <= 0 {
					rank = i + 1
				}
				if _, err := stmt.ExecContext(ctx, sessionID, g.Keyword, p.Provider, rank,
					r.Identifier, r.Title, r.URL); err != nil {
					return fmt.Errorf("inserting result %s/%s/%d: %w", g.Keyword, p.Provider, rank, err)
				}
			}
		}
	}

	return tx.Commit()
}

// Datasets returns the stored fetch for a session in the same shape Fetch
// produced it. It returns ErrNotFound when nothing was saved for the session.
func (s *Store) Datasets(ctx context.Context, sessionID string) (search.Output, error) {
	var keywordsJSON, providersJSON, warningsJSON string
	err := s.db.QueryRowContext(ctx,
		`SELECT keywords, providers, warnings FROM dataset_runs WHERE session_id = ?`, sessionID,
	).Scan(&keywordsJSON, &providersJSON, &warningsJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return search.Output{}, fmt.Errorf("%w: no datasets for %s", ErrNotFound, sessionID)
	}
	if err != nil {
		return search.Output{}, fmt.Errorf("loading dataset run: %w", err)
	}

	var (
		out       search.Output
		providers []string
	)
	if err := json.Unmarshal([]byte(keywordsJSON), &out.Keywords); err != nil {
		return search.Output{}, fmt.Errorf("decoding keywords: %w", err)
	}
	if err := json.Unmarshal([]byte(providersJSON), &providers); err != nil {
		return search.Output{}, fmt.Errorf("decoding providers: %w", err)
	}
	if err := json.Unmarshal([]byte(warningsJSON), &out.Warnings); err != nil {
		return search.Output{}, fmt.Errorf("decoding warnings: %w", err)
	}
	if len(out.Warnings) == 0 {
		out.Warnings = nil
	}

	out.Groups = make([]search.KeywordResults, len(out.Keywords))
	for i, kw := range out.Keywords {
		out.Groups[i] = search.KeywordResults{Keyword: kw, Providers: make([]search.ProviderResults, len(providers))}
		for j, p := range providers {
			out.Groups[i].Providers[j] = search.ProviderResults{Provider: p, Records: []types.DatasetRecord{}}
		}
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT keyword, provider, rank, identifier, title, url
		 FROM dataset_results WHERE session_id = ? ORDER BY rank`, sessionID)
	if err != nil {
		return search.Output{}, fmt.Errorf("querying dataset results: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			kw, provider    string
			rec             types.DatasetRecord
			id, title, link sql.NullString
		)
		if err := rows.Scan(&kw, &provider, &rec.Rank, &id, &title, &link); err != nil {
			return search.Output{}, fmt.Errorf("scanning dataset result: %w", err)
		}
		rec.Identifier, rec.Title, rec.URL, rec.Provider = id.String, title.String, link.String, provider
		if slot := findSlot(out.Groups, kw, provider); slot != nil {
			slot.Records = append(slot.Records, rec)
		}
	}
	return out, rows.Err()
}

func findSlot(groups []search.KeywordResults, keyword, provider string) *search.ProviderResults {
	for i := range groups {
		if groups[i].Keyword != keyword {
			continue
		}
		for j := range groups[i].Providers {
			if groups[i].Providers[j].Provider == provider {
				return &groups[i].Providers[j]
			}
		}
	}
	return nil
}

func isForeignKeyErr(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey
}
