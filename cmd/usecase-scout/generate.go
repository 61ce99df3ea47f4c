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

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate AI use cases for an industry",
	Long: `Generate asks the configured model for up to three AI/ML/GenAI use cases
for an industry and its trends, prints them, and saves the session so that
"datasets" can search for them later.`,
	RunE: runGenerate,
}

func runGenerate(cmd *cobra.Command, args []string) error {
	industry, _ := cmd.Flags().GetString("industry")
	trends, _ := cmd.Flags().GetString("trends")
	jsonOutput, _ := cmd.Flags().GetBool("json")

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

	sess, err := p.GenerateUseCases(cmd.Context(), industry, trends)
	if err != nil {
		return err
	}
	return printSession(sess, jsonOutput)
}

func printSession(sess types.Session, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(sess)
	}

	search.FormatUseCases(sess.UseCases, os.Stdout)
	if sess.ID != "" {
		fmt.Fprintf(os.Stderr, "\nsession: %s\n", sess.ID)
	}
	return nil
}

func init() {
	generateCmd.Flags().String("industry", "", "industry to suggest use cases for")
	generateCmd.Flags().String("trends", "", "current trends in the industry")
	generateCmd.Flags().Bool("json", false, "print the session as JSON")
	addGenerationFlags(generateCmd)

	rootCmd.AddCommand(generateCmd)
}

// addGenerationFlags registers model selection flags on cmd.
func addGenerationFlags(cmd *cobra.Command) {
	cmd.Flags().String("backend", "", "generation backend: ollama, openai, anthropic")
	cmd.Flags().String("model", "", "model name passed to the backend")
}
