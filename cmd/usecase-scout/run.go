// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/usecase-scout/internal/search"
	"github.com/pdiddy/usecase-scout/pkg/types"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Generate use cases and search datasets for them in one step",
	RunE:  runRun,
}

// runResult is the combined output of "run" in json and yaml formats.
type runResult struct {
	Session  types.Session `json:"session" yaml:"session"`
	Datasets search.Output `json:"datasets" yaml:"datasets"`
}

func runRun(cmd *cobra.Command, args []string) error {
	industry, _ := cmd.Flags().GetString("industry")
	trends, _ := cmd.Flags().GetString("trends")
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

	p, err := newPipeline(st, true)
	if err != nil {
		return err
	}

	sess, out, err := p.Run(cmd.Context(), industry, trends)
	if err != nil {
		return err
	}

	switch format {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(runResult{Session: sess, Datasets: out})
	case "yaml":
		return printYAML(runResult{Session: sess, Datasets: out})
	}

	fmt.Println("## Generated use cases")
	fmt.Println()
	search.FormatUseCases(sess.UseCases, os.Stdout)
	fmt.Println()
	fmt.Println("## Related datasets")
	fmt.Println()
	search.FormatMarkdown(out, os.Stdout)
	fmt.Fprintf(os.Stderr, "\nsession: %s\n", sess.ID)
	return nil
}

func init() {
	runCmd.Flags().String("industry", "", "industry to suggest use cases for")
	runCmd.Flags().String("trends", "", "current trends in the industry")
	runCmd.Flags().String("format", "markdown", "output format: markdown, json, yaml")
	runCmd.Flags().Int("max-results", 0, "maximum datasets per provider and keyword")
	addGenerationFlags(runCmd)

	rootCmd.AddCommand(runCmd)
}
