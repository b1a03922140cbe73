package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/poiesic/landmark/ai"
	"github.com/poiesic/landmark/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type embeddingServer struct {
	*httptest.Server
	requests atomic.Int32
	texts    atomic.Int32
}

// newEmbeddingServer answers /v1/embeddings with [len(text), index, 1] per input.
func newEmbeddingServer(t *testing.T) *embeddingServer {
	t.Helper()
	s := &embeddingServer{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/embeddings" {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		var req struct {
			Input []string `json:"input"`
			Model string   `json:"model"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		s.requests.Add(1)
		s.texts.Add(int32(len(req.Input)))

		type item struct {
			Object    string    `json:"object"`
			Embedding []float32 `json:"embedding"`
			Index     int       `json:"index"`
		}
		data := make([]item, len(req.Input))
		for i, text := range req.Input {
			data[i] = item{Object: "embedding", Embedding: []float32{float32(len(text)), float32(i), 1}, Index: i}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"object": "list",
			"data":   data,
			"model":  req.Model,
			"usage":  map[string]int{"prompt_tokens": 0, "total_tokens": 0},
		})
	}))
	t.Cleanup(s.Close)
	return s
}

func TestEmbedder_EmbedTexts(t *testing.T) {
	srv := newEmbeddingServer(t)
	e, err := NewEmbedder(ai.NewConfig(ai.WithEmbeddingHost(srv.URL)))
	require.NoError(t, err)

	vectors, err := e.EmbedTexts(context.Background(), []string{"a", "bcd"})
	require.NoError(t, err)
	require.Len(t, vectors, 2)
	assert.Equal(t, float32(1), vectors[0][0])
	assert.Equal(t, float32(3), vectors[1][0])

	v, err := e.EmbedText(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, float32(5), v[0])
}

func TestNewEmbedder_InvalidConfig(t *testing.T) {
	_, err := NewEmbedder(&ai.Config{})
	assert.Error(t, err)
}

func TestProvider_CachesAcrossCalls(t *testing.T) {
	srv := newEmbeddingServer(t)
	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	defer backend.Close()

	cfg := ai.NewConfig(ai.WithEmbeddingHost(srv.URL), ai.WithContextRadius(0), ai.WithRetry(1, 0))
	p, err := NewProvider(cfg, WithCache(repo))
	require.NoError(t, err)
	defer p.Close()

	ctx := context.Background()
	tokens := []string{"the", "term", "\n", "the"}

	first, err := p.TokenEmbedder().EmbedTokens(ctx, tokens)
	require.NoError(t, err)
	require.Len(t, first, 4)
	assert.Equal(t, []float32{0, 0, 0}, first[2])
	assert.Equal(t, int32(2), srv.texts.Load())
	requests := srv.requests.Load()

	second, err := p.TokenEmbedder().EmbedTokens(ctx, tokens)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, requests, srv.requests.Load(), "second run is served from cache")
}
