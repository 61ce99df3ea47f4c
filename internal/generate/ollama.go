// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	ollama "github.com/ollama/ollama/api"
)

// OllamaGenerator runs a locally served model through the Ollama API. It
// sends raw prompts so the model continues the primed list instead of
// answering through a chat template.
type OllamaGenerator struct {
	client *ollama.Client
	model  string
}

// NewOllama connects to baseURL, or to OLLAMA_HOST when baseURL is empty.
func NewOllama(baseURL, model string, httpClient *http.Client) (*OllamaGenerator, error) {
	var client *ollama.Client
	if baseURL == "" {
		c, err := ollama.ClientFromEnvironment()
		if err != nil {
			return nil, fmt.Errorf("could not create ollama client: %w", err)
		}
		client = c
	} else {
		u, err := url.Parse(baseURL)
		if err != nil {
			return nil, fmt.Errorf("parsing ollama base URL: %w", err)
		}
		if httpClient == nil {
			httpClient = http.DefaultClient
		}
		client = ollama.NewClient(u, httpClient)
	}
	return &OllamaGenerator{client: client, model: strings.TrimPrefix(model, "ollama:")}, nil
}

// Name returns the backend identifier.
func (g *OllamaGenerator) Name() string { return "ollama/" + g.model }

// Generate returns the model's continuation of req.Prompt.
func (g *OllamaGenerator) Generate(ctx context.Context, req Request) (string, error) {
	stream := false
	gr := &ollama.GenerateRequest{
		Model:  g.model,
		Prompt: req.Prompt,
		Raw:    true,
		Stream: &stream,
		Options: map[string]any{
			"num_predict": req.maxTokens(),
		},
	}

	var b strings.Builder
	err := g.client.Generate(ctx, gr, func(resp ollama.GenerateResponse) error {
		b.WriteString(resp.Response)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("ollama generate failed: %w", err)
	}
	return b.String(), nil
}
