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

const sampleHFModelsJSON = `[
  {"_id": "a1", "id": "google-bert/bert-base-uncased", "modelId": "google-bert/bert-base-uncased", "downloads": 10},
  {"_id": "a2", "id": "distilbert/distilbert-base-uncased"},
  {"_id": "a3"},
  {"_id": "a4", "id": "m4"},
  {"_id": "a5", "id": "m5"},
  {"_id": "a6", "id": "m6"}
]`

func withHuggingFaceServer(t *testing.T, handler http.HandlerFunc) {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	old := huggingFaceAPIBase
	huggingFaceAPIBase = ts.URL + "/api"
	t.Cleanup(func() { huggingFaceAPIBase = old })
}

func TestHuggingFaceProvider_Models(t *testing.T) {
	withHuggingFaceServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/models", r.URL.Path)
		assert.Equal(t, "Reduce", r.URL.Query().Get("search"))
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		assert.Equal(t, "test/0.1", r.Header.Get("User-Agent"))
		assert.Empty(t, r.Header.Get("Authorization"))
		io.WriteString(w, sampleHFModelsJSON)
	})

	p := &HuggingFaceProvider{Client: http.DefaultClient, UserAgent: "test/0.1"}
	got, err := p.Search(context.Background(), "Reduce")
	require.NoError(t, err)
	require.Len(t, got, 5)

	assert.Equal(t, types.DatasetRecord{
		Identifier: "google-bert/bert-base-uncased",
		Title:      "google-bert/bert-base-uncased",
		URL:        "https://huggingface.co/google-bert/bert-base-uncased",
		Provider:   "huggingface",
		Rank:       1,
	}, got[0])
	assert.Equal(t, "distilbert/distilbert-base-uncased", got[1].Identifier)
	assert.Equal(t, "Unknown ID", got[2].Identifier)
	assert.Equal(t, 5, got[4].Rank)
}

func TestHuggingFaceProvider_DatasetsWithToken(t *testing.T) {
	withHuggingFaceServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/datasets", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("limit"))
		assert.Equal(t, "Bearer hf_token", r.Header.Get("Authorization"))
		io.WriteString(w, `[{"id": "rajpurkar/squad"}]`)
	})

	p := &HuggingFaceProvider{Client: http.DefaultClient, Kind: types.HuggingFaceDatasets, Token: "hf_token", MaxResults: 2}
	got, err := p.Search(context.Background(), "squad")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "https://huggingface.co/datasets/rajpurkar/squad", got[0].URL)
}

func TestHuggingFaceProvider_Errors(t *testing.T) {
	t.Run("non-200 returns StatusError", func(t *testing.T) {
		withHuggingFaceServer(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})
		_, err := (&HuggingFaceProvider{}).Search(context.Background(), "x")
		var se *StatusError
		require.True(t, errors.As(err, &se))
		assert.Equal(t, http.StatusInternalServerError, se.StatusCode)
	})

	t.Run("malformed JSON", func(t *testing.T) {
		withHuggingFaceServer(t, func(w http.ResponseWriter, _ *http.Request) {
			io.WriteString(w, `{"error": "not a list"}`)
		})
		_, err := (&HuggingFaceProvider{}).Search(context.Background(), "x")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parsing Hugging Face response")
	})

	t.Run("empty keyword", func(t *testing.T) {
		_, err := (&HuggingFaceProvider{}).Search(context.Background(), "  ")
		require.Error(t, err)
	})
}
