package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmbeddingService_RequiresAPIKey(t *testing.T) {
	_, err := NewEmbeddingService(Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key")
}

func TestNewEmbeddingService_ModelDimensions(t *testing.T) {
	svc, err := NewEmbeddingService(Config{APIKey: "test", Model: "text-embedding-3-large"})
	require.NoError(t, err)
	assert.Equal(t, 3072, svc.Dimensions())
	assert.Equal(t, "text-embedding-3-large", svc.ModelName())
}

func TestNewEmbeddingService_DimensionOverride(t *testing.T) {
	svc, err := NewEmbeddingService(Config{APIKey: "test", Dimensions: 256})
	require.NoError(t, err)
	assert.Equal(t, 256, svc.Dimensions())
}

func TestEmbedBatch_OrdersByIndex(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/embeddings", r.URL.Path)
		assert.Equal(t, "Bearer test", r.Header.Get("Authorization"))

		// Return data out of order to exercise index-based placement.
		json.NewEncoder(w).Encode(map[string]any{
			"object": "list",
			"model":  DefaultModel,
			"data": []map[string]any{
				{"object": "embedding", "index": 1, "embedding": []float32{2, 2}},
				{"object": "embedding", "index": 0, "embedding": []float32{1, 1}},
			},
		})
	}))
	defer srv.Close()

	svc, err := NewEmbeddingService(Config{APIKey: "test", BaseURL: srv.URL, Dimensions: 2})
	require.NoError(t, err)

	vecs, err := svc.EmbedBatch(context.Background(), []string{"first", "second"})
	require.NoError(t, err)
	require.Len(t, vecs, 2)
	assert.Equal(t, []float32{1, 1}, vecs[0])
	assert.Equal(t, []float32{2, 2}, vecs[1])
}

func TestEmbedBatch_EmptyInput(t *testing.T) {
	svc, err := NewEmbeddingService(Config{APIKey: "test"})
	require.NoError(t, err)

	vecs, err := svc.EmbedBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, vecs)
}

func TestEmbedBatch_CountMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"object": "list",
			"model":  DefaultModel,
			"data": []map[string]any{
				{"object": "embedding", "index": 0, "embedding": []float32{1}},
			},
		})
	}))
	defer srv.Close()

	svc, err := NewEmbeddingService(Config{APIKey: "test", BaseURL: srv.URL, Dimensions: 1})
	require.NoError(t, err)

	_, err = svc.EmbedBatch(context.Background(), []string{"a", "b"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 2 embeddings")
}
