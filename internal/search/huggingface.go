// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pdiddy/usecase-scout/internal/httputil"
	"github.com/pdiddy/usecase-scout/pkg/types"
)

// huggingFaceAPIBase is the Hugging Face Hub API root. Declared as a var so
// tests can substitute an httptest server.
var huggingFaceAPIBase = "https://huggingface.co/api"

// huggingFaceSiteBase prefixes record URLs.
const huggingFaceSiteBase = "https://huggingface.co"

// HuggingFaceProvider searches the Hugging Face Hub model or dataset catalog.
type HuggingFaceProvider struct {
	Client *http.Client
	// Kind selects /api/models or /api/datasets. Empty means models.
	Kind types.HuggingFaceKind
	// Token is an optional bearer token.
	Token      string
	UserAgent  string
	MaxResults int
}

// Name returns the provider identifier.
func (p *HuggingFaceProvider) Name() string { return "huggingface" }

// Search returns up to MaxResults hub entries matching keyword.
func (p *HuggingFaceProvider) Search(ctx context.Context, keyword string) ([]types.DatasetRecord, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, fmt.Errorf("empty Hugging Face query")
	}

	kind := p.Kind
	if kind == "" {
		kind = types.HuggingFaceModels
	}
	limit := p.MaxResults
	if limit <= 0 {
		limit = DefaultMaxResults
	}

	params := url.Values{
		"search": {keyword},
		"limit":  {strconv.Itoa(limit)},
	}
	reqURL := huggingFaceAPIBase + "/" + string(kind) + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if p.UserAgent != "" {
		req.Header.Set("User-Agent", p.UserAgent)
	}
	if p.Token != "" {
		req.Header.Set("Authorization", "Bearer "+p.Token)
	}

	resp, err := httputil.DoWithRetry(ctx, p.Client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("Hugging Face API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Provider: p.Name(), StatusCode: resp.StatusCode}
	}

	var entries []huggingFaceEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("parsing Hugging Face response: %w", err)
	}

	if len(entries) > limit {
		entries = entries[:limit]
	}

	records := make([]types.DatasetRecord, 0, len(entries))
	for i, e := range entries {
		id := e.identifier()
		records = append(records, types.DatasetRecord{
			Identifier: id,
			Title:      id,
			URL:        huggingFaceURL(kind, id),
			Provider:   p.Name(),
			Rank:       i + 1,
		})
	}
	return records, nil
}

// huggingFaceEntry is the subset of a Hub listing entry that is used.
// Model listings carry modelId; dataset listings only id.
type huggingFaceEntry struct {
	ID      string `json:"id"`
	ModelID string `json:"modelId"`
}

func (e huggingFaceEntry) identifier() string {
	switch {
	case e.ModelID != "":
		return e.ModelID
	case e.ID != "":
		return e.ID
	default:
		return "Unknown ID"
	}
}

func huggingFaceURL(kind types.HuggingFaceKind, id string) string {
	if kind == types.HuggingFaceDatasets {
		return huggingFaceSiteBase + "/datasets/" + id
	}
	return huggingFaceSiteBase + "/" + id
}
