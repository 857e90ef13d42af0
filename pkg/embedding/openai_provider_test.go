package embedding

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type embeddingsRequest struct {
	Model      string   `json:"model"`
	Input      []string `json:"input"`
	Dimensions int      `json:"dimensions"`
}

func newEmbeddingsServer(t *testing.T, width int, got *embeddingsRequest) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/embeddings", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(got))

		values := make([]float32, width)
		values[0], values[1] = 3, 4
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"object": "list",
			"model":  got.Model,
			"data": []map[string]interface{}{
				{"object": "embedding", "index": 0, "embedding": values},
			},
			"usage": map[string]int{"prompt_tokens": 3, "total_tokens": 3},
		})
	}))
}

func TestOpenAIProvider_RequestsStoredDimension(t *testing.T) {
	var got embeddingsRequest
	srv := newEmbeddingsServer(t, Dimension, &got)
	defer srv.Close()

	p := NewOpenAIProvider("sk-test", srv.URL+"/v1", "")
	res, err := p.Generate(context.Background(), "refund policy", TaskRetrievalDocument)
	require.NoError(t, err)

	assert.Equal(t, "text-embedding-3-small", got.Model)
	assert.Equal(t, []string{"refund policy"}, got.Input)
	assert.Equal(t, Dimension, got.Dimensions)

	require.Len(t, res.Embedding.Values, Dimension)
	assert.InDelta(t, 0.6, res.Embedding.Values[0], 1e-6)
	assert.InDelta(t, 0.8, res.Embedding.Values[1], 1e-6)

	var norm float64
	for _, v := range res.Embedding.Values {
		norm += float64(v) * float64(v)
	}
	assert.InDelta(t, 1.0, math.Sqrt(norm), 1e-6)
}

func TestOpenAIProvider_RejectsWrongWidth(t *testing.T) {
	var got embeddingsRequest
	srv := newEmbeddingsServer(t, 1536, &got)
	defer srv.Close()

	_, err := NewOpenAIProvider("sk-test", srv.URL+"/v1", "text-embedding-ada-002").Generate(context.Background(), "x", TaskRetrievalQuery)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1536 dimensions")
}
