// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/pdiddy/usecase-scout/internal/httputil"
	"github.com/pdiddy/usecase-scout/pkg/types"
)

// kaggleAPIBase is the Kaggle public API root. Declared as a var so tests
// can substitute an httptest server.
var kaggleAPIBase = "https://www.kaggle.com/api/v1"

const (
	kaggleUnknownTitle = "Unknown Title"
	kaggleUnknownURL   = "#"
)

// KaggleProvider searches the Kaggle dataset catalog.
type KaggleProvider struct {
	Client *http.Client
	// Username and Key are sent as basic auth when both are set.
	Username   string
	Key        string
	UserAgent  string
	MaxResults int
}

// Name returns the provider identifier.
func (p *KaggleProvider) Name() string { return "kaggle" }

// Search returns up to MaxResults Kaggle datasets matching keyword.
func (p *KaggleProvider) Search(ctx context.Context, keyword string) ([]types.DatasetRecord, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, fmt.Errorf("empty Kaggle query")
	}

	limit := p.MaxResults
	if limit <= 0 {
		limit = DefaultMaxResults
	}

	reqURL := kaggleAPIBase + "/datasets/list?" + url.Values{"search": {keyword}}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if p.UserAgent != "" {
		req.Header.Set("User-Agent", p.UserAgent)
	}
	if p.Username != "" && p.Key != "" {
		req.SetBasicAuth(p.Username, p.Key)
	}

	resp, err := httputil.DoWithRetry(ctx, p.Client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("Kaggle API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Provider: p.Name(), StatusCode: resp.StatusCode}
	}

	var datasets []kaggleDataset
	if err := json.NewDecoder(resp.Body).Decode(&datasets); err != nil {
		return nil, fmt.Errorf("parsing Kaggle response: %w", err)
	}

	if len(datasets) > limit {
		datasets = datasets[:limit]
	}

	records := make([]types.DatasetRecord, 0, len(datasets))
	for i, d := range datasets {
		title := d.Title
		if title == "" {
			title = kaggleUnknownTitle
		}
		link := d.URL
		if link == "" {
			link = kaggleUnknownURL
		}
		id := d.Ref
		if id == "" {
			id = title
		}
		records = append(records, types.DatasetRecord{
			Identifier: id,
			Title:      title,
			URL:        link,
			Provider:   p.Name(),
			Rank:       i + 1,
		})
	}
	return records, nil
}

// kaggleDataset is the subset of a Kaggle dataset listing entry that is used.
type kaggleDataset struct {
	Ref   string `json:"ref"`
	Title string `json:"title"`
	URL   string `json:"url"`
}
