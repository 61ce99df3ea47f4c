// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"encoding/json"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"
)

// FormatUseCases writes use cases as a 1-indexed Markdown list.
func FormatUseCases(cases []string, w io.Writer) {
	if len(cases) == 0 {
		fmt.Fprintln(w, "No use cases found in the generated text.")
		return
	}
	for i, c := range cases {
		fmt.Fprintf(w, "**Use Case %d:** %s\n", i+1, c)
	}
}

// FormatMarkdown writes results grouped by keyword, then provider.
func FormatMarkdown(out Output, w io.Writer) {
	if len(out.Groups) == 0 {
		fmt.Fprintln(w, "No keywords to search.")
		return
	}

	for i, g := range out.Groups {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "### Datasets related to: %s\n", g.Keyword)
		for _, p := range g.Providers {
			name := DisplayName(p.Provider)
			fmt.Fprintf(w, "\n#### %s Datasets\n", name)
			if len(p.Records) == 0 {
				fmt.Fprintf(w, "No relevant datasets found on %s.\n", name)
				continue
			}
			for _, r := range p.Records {
				fmt.Fprintf(w, "- [%s](%s)\n", r.Title, r.URL)
			}
		}
	}

	if len(out.Warnings) > 0 {
		fmt.Fprintf(w, "\n%d provider request(s) failed:\n", len(out.Warnings))
		for _, warn := range out.Warnings {
			fmt.Fprintf(w, "- %s\n", warn)
		}
	}
}

// FormatJSON writes out as indented JSON.
func FormatJSON(out Output, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// FormatYAML writes out as YAML.
func FormatYAML(out Output, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return err
	}
	return enc.Close()
}
