// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/usecase-scout/internal/pipeline"
	"github.com/pdiddy/usecase-scout/internal/search"
	"github.com/pdiddy/usecase-scout/internal/store"
	"github.com/pdiddy/usecase-scout/pkg/types"
)

var datasetsCmd = &cobra.Command{
	Use:   "datasets",
	Short: "Search Hugging Face and Kaggle for datasets related to use cases",
	Long: `Datasets takes the first word of each use case as a search keyword and
queries every enabled dataset provider for it. Use cases come from a saved
session (the latest one by default, or --session), or directly from
--use-case flags.

A provider that fails is reported as having no results; the search itself
only fails when no provider is enabled.`,
	RunE: runDatasets,
}

func runDatasets(cmd *cobra.Command, args []string) error {
	sessionID, _ := cmd.Flags().GetString("session")
	useCases, _ := cmd.Flags().GetStringArray("use-case")
	format, _ := cmd.Flags().GetString("format")
	if err := checkFormat(format); err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	if st != nil {
		defer st.Close()
	}

	sess, err := resolveSession(cmd, st, sessionID, useCases)
	if err != nil {
		return err
	}

	p, err := newPipeline(st, false)
	if err != nil {
		return err
	}
	out, err := p.FetchDatasets(cmd.Context(), sess)
	if err != nil {
		return err
	}
	return printDatasets(out, format, os.Stdout)
}

func resolveSession(cmd *cobra.Command, st *store.Store, sessionID string, useCases []string) (types.Session, error) {
	switch {
	case len(useCases) > 0:
		if sessionID != "" {
			return types.Session{}, fmt.Errorf("--session and --use-case are mutually exclusive")
		}
		return pipeline.AdHocSession(useCases), nil
	case st == nil:
		return types.Session{}, fmt.Errorf("session storage is disabled; pass --use-case")
	case sessionID != "":
		return st.GetSession(cmd.Context(), sessionID)
	default:
		sess, err := st.LatestSession(cmd.Context())
		if errors.Is(err, store.ErrNotFound) {
			return types.Session{}, fmt.Errorf("no saved session; run \"usecase-scout generate\" first: %w", pipeline.ErrNoUseCases)
		}
		return sess, err
	}
}

func checkFormat(format string) error {
	switch format {
	case "markdown", "json", "yaml":
		return nil
	default:
		return fmt.Errorf("unknown format %q: use markdown, json, or yaml", format)
	}
}

func printDatasets(out search.Output, format string, w io.Writer) error {
	switch format {
	case "json":
		return search.FormatJSON(out, w)
	case "yaml":
		return search.FormatYAML(out, w)
	default:
		search.FormatMarkdown(out, w)
		return nil
	}
}

func init() {
	datasetsCmd.Flags().String("session", "", "session ID to search for (default: latest session)")
	datasetsCmd.Flags().StringArray("use-case", nil, "use case text to search for (repeatable)")
	datasetsCmd.Flags().String("format", "markdown", "output format: markdown, json, yaml")
	datasetsCmd.Flags().Int("max-results", 0, "maximum datasets per provider and keyword")

	rootCmd.AddCommand(datasetsCmd)
}
