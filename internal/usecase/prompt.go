// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package usecase

import (
	"bytes"
	"strings"
	"text/template"
)

// promptTmpl asks the model for a numbered list and primes the first item
// with a trailing "1. " so the continuation starts inside the list.
var promptTmpl = template.Must(template.New("usecases").Parse(`Industry: {{.Industry}}
Trends: {{.Trends}}
Suggest {{.Count}} AI/ML/GenAI use cases with a brief debrief for each to improve operations and customer satisfaction:
1. `))

// RenderPrompt builds the generation prompt for an industry and a trend description.
func RenderPrompt(industry, trends string) (string, error) {
	var buf bytes.Buffer
	err := promptTmpl.Execute(&buf, struct {
		Industry string
		Trends   string
		Count    int
	}{
		Industry: strings.TrimSpace(industry),
		Trends:   strings.TrimSpace(trends),
		Count:    MaxUseCases,
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
