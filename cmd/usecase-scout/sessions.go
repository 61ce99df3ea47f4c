// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/pdiddy/usecase-scout/internal/search"
	"github.com/pdiddy/usecase-scout/internal/store"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List, show, export, or delete saved sessions",
}

// --- list subcommand ---

var sessionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved sessions, newest first",
	RunE:  runSessionsList,
}

func runSessionsList(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	st, err := requireStore()
	if err != nil {
		return err
	}
	defer st.Close()

	sessions, err := st.ListSessions(cmd.Context(), limit)
	if err != nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(sessions)
	}

	if len(sessions) == 0 {
		fmt.Println("No sessions found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-36s  %-16s  %-24s  %s\n", "ID", "Created", "Industry", "Use cases")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 90))
	for _, s := range sessions {
		fmt.Fprintf(os.Stdout, "%-36s  %-16s  %-24s  %d\n",
			s.ID, s.CreatedAt.Local().Format("2006-01-02 15:04"), truncate(s.Industry, 24), len(s.UseCases))
	}
	fmt.Fprintf(os.Stdout, "\n%d sessions\n", len(sessions))
	return nil
}

// truncate shortens s to at most n runes, ending in "..." when cut.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n-3]) + "..."
}

// --- show subcommand ---

var sessionsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a session's use cases and any saved datasets",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionsShow,
}

func runSessionsShow(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	if err := checkFormat(format); err != nil {
		return err
	}

	st, err := requireStore()
	if err != nil {
		return err
	}
	defer st.Close()

	sess, err := st.GetSession(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	out, err := st.Datasets(cmd.Context(), sess.ID)
	hasDatasets := err == nil
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return err
	}

	if format != "markdown" {
		entry := store.ExportEntry{Session: sess}
		if hasDatasets {
			entry.Datasets = &out
		}
		if format == "json" {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(entry)
		}
		return printYAML(entry)
	}

	fmt.Printf("Session %s (%s)\n", sess.ID, sess.CreatedAt.Local().Format(time.DateTime))
	fmt.Printf("Industry: %s\nTrends: %s\nModel: %s\n\n", sess.Industry, sess.Trends, sess.Model)
	search.FormatUseCases(sess.UseCases, os.Stdout)
	if hasDatasets {
		fmt.Println()
		search.FormatMarkdown(out, os.Stdout)
	}
	return nil
}

// --- export subcommand ---

var sessionsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all sessions with their datasets to YAML or JSON",
	Long: `Export writes every saved session and its datasets to a file, by default
index/export.yaml or index/export.json under the data directory.`,
	RunE: runSessionsExport,
}

func runSessionsExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	output, _ := cmd.Flags().GetString("output")

	st, err := requireStore()
	if err != nil {
		return err
	}
	defer st.Close()

	var path string
	switch format {
	case "yaml":
		path, err = st.ExportYAML(cmd.Context(), output)
	case "json":
		path, err = st.ExportJSON(cmd.Context(), output)
	default:
		return fmt.Errorf("unknown export format %q: use yaml or json", format)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "exported to %s\n", path)
	return nil
}

// --- delete subcommand ---

var sessionsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a session and its datasets",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := requireStore()
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.DeleteSession(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "deleted %s\n", args[0])
		return nil
	},
}

func requireStore() (*store.Store, error) {
	st, err := openStore()
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, fmt.Errorf("session storage is disabled")
	}
	return st, nil
}

func init() {
	sessionsListCmd.Flags().Int("limit", 20, "maximum number of sessions to list")
	sessionsListCmd.Flags().Bool("json", false, "output as JSON")

	sessionsShowCmd.Flags().String("format", "markdown", "output format: markdown, json, yaml")

	sessionsExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	sessionsExportCmd.Flags().String("output", "", "output file (default: <data-dir>/index/export.<format>)")

	sessionsCmd.AddCommand(sessionsListCmd, sessionsShowCmd, sessionsExportCmd, sessionsDeleteCmd)
	rootCmd.AddCommand(sessionsCmd)
}
