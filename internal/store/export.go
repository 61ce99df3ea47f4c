// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/usecase-scout/internal/search"
	"github.com/pdiddy/usecase-scout/pkg/types"
)

// ExportEntry is a session together with its saved dataset results.
type ExportEntry struct {
	types.Session `yaml:",inline"`
	Datasets      *search.Output `json:"datasets,omitempty" yaml:"datasets,omitempty"`
}

const exportLimit = 100000

// ExportYAML writes every session to path as YAML. An empty path writes
// index/export.yaml under the data directory. It returns the path written.
func (s *Store) ExportYAML(ctx context.Context, path string) (string, error) {
	entries, err := s.exportEntries(ctx)
	if err != nil {
		return "", err
	}
	data, err := yaml.Marshal(entries)
	if err != nil {
		return "", fmt.Errorf("marshaling YAML: %w", err)
	}
	return s.writeExport(path, "export.yaml", data)
}

// ExportJSON writes every session to path as indented JSON. An empty path
// writes index/export.json under the data directory.
func (s *Store) ExportJSON(ctx context.Context, path string) (string, error) {
	entries, err := s.exportEntries(ctx)
	if err != nil {
		return "", err
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling JSON: %w", err)
	}
	return s.writeExport(path, "export.json", data)
}

func (s *Store) writeExport(path, defaultName string, data []byte) (string, error) {
	if path == "" {
		path = filepath.Join(s.dataDir, indexDir, defaultName)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

func (s *Store) exportEntries(ctx context.Context) ([]ExportEntry, error) {
	sessions, err := s.ListSessions(ctx, exportLimit)
	if err != nil {
		return nil, err
	}

	entries := make([]ExportEntry, 0, len(sessions))
	for _, sess := range sessions {
		entry := ExportEntry{Session: sess}
		out, err := s.Datasets(ctx, sess.ID)
		switch {
		case err == nil:
			entry.Datasets = &out
		case !errors.Is(err, ErrNotFound):
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
