// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/usecase-scout/pkg/types"
)

const sampleKaggleJSON = `[
  {"ref": "owner/retail-sales", "title": "Retail Sales", "url": "https://www.kaggle.com/datasets/owner/retail-sales", "totalBytes": 1024},
  {"ref": "owner/untitled"},
  {"title": "No Ref", "url": "https://www.kaggle.com/x"}
]`

func withKaggleServer(t *testing.T, handler http.HandlerFunc) {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	old := kaggleAPIBase
	kaggleAPIBase = ts.URL + "/api/v1"
	t.Cleanup(func() { kaggleAPIBase = old })
}

func TestKaggleProvider_Search(t *testing.T) {
	withKaggleServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/datasets/list", r.URL.Path)
		assert.Equal(t, "retail demand", r.URL.Query().Get("search"))
		_, _, hasAuth := r.BasicAuth()
		assert.False(t, hasAuth)
		io.WriteString(w, sampleKaggleJSON)
	})

	got, err := (&KaggleProvider{Client: http.DefaultClient}).Search(context.Background(), "retail demand")
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, types.DatasetRecord{
		Identifier: "owner/retail-sales",
		Title:      "Retail Sales",
		URL:        "https://www.kaggle.com/datasets/owner/retail-sales",
		Provider:   "kaggle",
		Rank:       1,
	}, got[0])

	assert.Equal(t, "Unknown Title", got[1].Title)
	assert.Equal(t, "#", got[1].URL)
	assert.Equal(t, "owner/untitled", got[1].Identifier)

	assert.Equal(t, "No Ref", got[2].Identifier)
}

func TestKaggleProvider_BasicAuthAndLimit(t *testing.T) {
	withKaggleServer(t, func(w http.ResponseWriter, r *http.Request) {
		user, key, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "analyst", user)
		assert.Equal(t, "secret", key)
		io.WriteString(w, sampleKaggleJSON)
	})

	p := &KaggleProvider{Username: "analyst", Key: "secret", MaxResults: 1}
	got, err := p.Search(context.Background(), "sales")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestKaggleProvider_NonSuccess(t *testing.T) {
	withKaggleServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	got, err := (&KaggleProvider{}).Search(context.Background(), "sales")
	assert.Nil(t, got)
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "kaggle", se.Provider)
}
