// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/usecase-scout/internal/search"
	"github.com/pdiddy/usecase-scout/pkg/types"
)

func testStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	st, err := NewStore(types.StoreConfig{DataDir: dir})
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st, dir
}

func sampleSession(id string, created time.Time) types.Session {
	return types.Session{
		ID:         id,
		Industry:   "Retail",
		Trends:     "personalization",
		Generation: "1. Demand forecasting\n2. Chatbots",
		UseCases:   []string{"Demand forecasting", "Chatbots"},
		Keywords:   []string{"Demand", "Chatbots"},
		Model:      "ollama/llama3.2",
		CreatedAt:  created,
	}
}

func sampleOutput() search.Output {
	return search.Output{
		Keywords: []string{"Demand", "Chatbots"},
		Groups: []search.KeywordResults{
			{Keyword: "Demand", Providers: []search.ProviderResults{
				{Provider: "huggingface", Records: []types.DatasetRecord{
					{Identifier: "org/demand", Title: "org/demand", URL: "https://huggingface.co/org/demand", Provider: "huggingface", Rank: 1},
					{Identifier: "org/demand-2", Title: "org/demand-2", URL: "https://huggingface.co/org/demand-2", Provider: "huggingface", Rank: 2},
				}},
				{Provider: "kaggle", Records: []types.DatasetRecord{}},
			}},
			{Keyword: "Chatbots", Providers: []search.ProviderResults{
				{Provider: "huggingface", Records: []types.DatasetRecord{}},
				{Provider: "kaggle", Records: []types.DatasetRecord{
					{Identifier: "u/chat", Title: "Chat logs", URL: "https://www.kaggle.com/datasets/u/chat", Provider: "kaggle", Rank: 1},
				}},
			}},
		},
		Warnings: []string{`kaggle "Demand": kaggle API returned HTTP 500`},
	}
}

func TestNewStoreCreatesDatabase(t *testing.T) {
	_, dir := testStore(t)
	_, err := os.Stat(filepath.Join(dir, indexDir, dbFile))
	assert.NoError(t, err)
}

func TestNewStoreReopen(t *testing.T) {
	dir := t.TempDir()
	st, err := NewStore(types.StoreConfig{DataDir: dir})
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, st.SaveSession(ctx, sampleSession("a", time.Now())))
	require.NoError(t, st.Close())

	st, err = NewStore(types.StoreConfig{DataDir: dir})
	require.NoError(t, err)
	defer st.Close()
	got, err := st.GetSession(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "Retail", got.Industry)
}

func TestSaveAndGetSession(t *testing.T) {
	st, _ := testStore(t)
	ctx := context.Background()
	created := time.Date(2026, 3, 1, 12, 0, 0, 500, time.UTC)
	want := sampleSession("s1", created)

	require.NoError(t, st.SaveSession(ctx, want))
	got, err := st.GetSession(ctx, "s1")
	require.NoError(t, err)

	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.Industry, got.Industry)
	assert.Equal(t, want.Trends, got.Trends)
	assert.Equal(t, want.Generation, got.Generation)
	assert.Equal(t, want.UseCases, got.UseCases)
	assert.Equal(t, want.Keywords, got.Keywords)
	assert.Equal(t, want.Model, got.Model)
	assert.True(t, created.Equal(got.CreatedAt), "created_at %v != %v", got.CreatedAt, created)
}

func TestSaveSessionKeepsBlankUseCases(t *testing.T) {
	st, _ := testStore(t)
	ctx := context.Background()
	sess := sampleSession("blank", time.Now())
	sess.UseCases = []string{"", "Something"}
	sess.Keywords = nil

	require.NoError(t, st.SaveSession(ctx, sess))
	got, err := st.GetSession(ctx, "blank")
	require.NoError(t, err)
	assert.Equal(t, []string{"", "Something"}, got.UseCases)
	assert.Equal(t, []string{}, got.Keywords)
}

func TestSaveSessionUpserts(t *testing.T) {
	st, _ := testStore(t)
	ctx := context.Background()
	sess := sampleSession("s1", time.Now())
	require.NoError(t, st.SaveSession(ctx, sess))

	sess.Industry = "Healthcare"
	require.NoError(t, st.SaveSession(ctx, sess))

	got, err := st.GetSession(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "Healthcare", got.Industry)

	list, err := st.ListSessions(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestSaveSessionRequiresID(t *testing.T) {
	st, _ := testStore(t)
	assert.Error(t, st.SaveSession(context.Background(), types.Session{}))
}

func TestGetSessionNotFound(t *testing.T) {
	st, _ := testStore(t)
	_, err := st.GetSession(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLatestSession(t *testing.T) {
	st, _ := testStore(t)
	ctx := context.Background()

	_, err := st.LatestSession(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, st.SaveSession(ctx, sampleSession("old", base)))
	require.NoError(t, st.SaveSession(ctx, sampleSession("new", base.Add(time.Hour))))
	require.NoError(t, st.SaveSession(ctx, sampleSession("mid", base.Add(time.Minute))))

	got, err := st.LatestSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, "new", got.ID)
}

func TestListSessions(t *testing.T) {
	st, _ := testStore(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"a", "b", "c"} {
		require.NoError(t, st.SaveSession(ctx, sampleSession(id, base.Add(time.Duration(i)*time.Second))))
	}

	tests := []struct {
		name  string
		limit int
		want  []string
	}{
		{"default limit", 0, []string{"c", "b", "a"}},
		{"limited", 2, []string{"c", "b"}},
		{"larger than count", 10, []string{"c", "b", "a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, err := st.ListSessions(ctx, tt.limit)
			require.NoError(t, err)
			ids := make([]string, len(list))
			for i, s := range list {
				ids[i] = s.ID
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestListSessionsEmpty(t *testing.T) {
	st, _ := testStore(t)
	list, err := st.ListSessions(context.Background(), 5)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestDeleteSession(t *testing.T) {
	st, _ := testStore(t)
	ctx := context.Background()
	require.NoError(t, st.SaveSession(ctx, sampleSession("s1", time.Now())))
	require.NoError(t, st.SaveDatasets(ctx, "s1", sampleOutput()))

	require.NoError(t, st.DeleteSession(ctx, "s1"))
	_, err := st.GetSession(ctx, "s1")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = st.Datasets(ctx, "s1")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, st.DeleteSession(ctx, "s1"), ErrNotFound)
}

func TestSaveAndLoadDatasets(t *testing.T) {
	st, _ := testStore(t)
	ctx := context.Background()
	require.NoError(t, st.SaveSession(ctx, sampleSession("s1", time.Now())))

	want := sampleOutput()
	require.NoError(t, st.SaveDatasets(ctx, "s1", want))

	got, err := st.Datasets(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSaveDatasetsReplaces(t *testing.T) {
	st, _ := testStore(t)
	ctx := context.Background()
	require.NoError(t, st.SaveSession(ctx, sampleSession("s1", time.Now())))
	require.NoError(t, st.SaveDatasets(ctx, "s1", sampleOutput()))

	second := search.Output{
		Keywords: []string{"Fraud"},
		Groups: []search.KeywordResults{
			{Keyword: "Fraud", Providers: []search.ProviderResults{
				{Provider: "kaggle", Records: []types.DatasetRecord{
					{Identifier: "x/fraud", Title: "Fraud", URL: "u", Provider: "kaggle", Rank: 1},
				}},
			}},
		},
	}
	require.NoError(t, st.SaveDatasets(ctx, "s1", second))

	got, err := st.Datasets(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, second, got)
	assert.Equal(t, 1, got.Total())
}

func TestSaveDatasetsUnknownSession(t *testing.T) {
	st, _ := testStore(t)
	err := st.SaveDatasets(context.Background(), "ghost", sampleOutput())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDatasetsNotSaved(t *testing.T) {
	st, _ := testStore(t)
	ctx := context.Background()
	require.NoError(t, st.SaveSession(ctx, sampleSession("s1", time.Now())))
	_, err := st.Datasets(ctx, "s1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestExportJSON(t *testing.T) {
	st, dir := testStore(t)
	ctx := context.Background()
	require.NoError(t, st.SaveSession(ctx, sampleSession("s1", time.Now())))
	require.NoError(t, st.SaveSession(ctx, sampleSession("s2", time.Now().Add(time.Second))))
	require.NoError(t, st.SaveDatasets(ctx, "s1", sampleOutput()))

	path, err := st.ExportJSON(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, indexDir, "export.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var entries []map[string]any
	require.NoError(t, json.Unmarshal(data, &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "s2", entries[0]["id"])
	assert.NotContains(t, entries[0], "datasets")
	assert.Equal(t, "s1", entries[1]["id"])
	assert.Contains(t, entries[1], "datasets")
}

func TestExportYAML(t *testing.T) {
	st, dir := testStore(t)
	ctx := context.Background()
	require.NoError(t, st.SaveSession(ctx, sampleSession("s1", time.Now())))
	require.NoError(t, st.SaveDatasets(ctx, "s1", sampleOutput()))

	target := filepath.Join(dir, "out.yaml")
	path, err := st.ExportYAML(ctx, target)
	require.NoError(t, err)
	assert.Equal(t, target, path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var entries []map[string]any
	require.NoError(t, yaml.Unmarshal(data, &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "s1", entries[0]["id"])
	assert.Equal(t, "Retail", entries[0]["industry"])
	assert.Contains(t, entries[0], "datasets")
}
