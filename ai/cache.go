// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package ai

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/poiesic/landmark/core"
	"github.com/poiesic/landmark/storage"
)

// CachingEmbedder serves embeddings from a repository and only sends
// misses to the wrapped Embedder. Keys are core.EmbeddingKey(model, text).
type CachingEmbedder struct {
	embedder Embedder
	repo     storage.EmbeddingRepository
	model    string
	logger   *slog.Logger
}

var _ Embedder = (*CachingEmbedder)(nil)

// NewCachingEmbedder wraps e with repo. model namespaces the cache.
func NewCachingEmbedder(e Embedder, repo storage.EmbeddingRepository, model string) (*CachingEmbedder, error) {
	if e == nil {
		return nil, ErrEmbedderRequired
	}
	if repo == nil {
		return nil, fmt.Errorf("caching embedder: repository is required")
	}
	if model == "" {
		return nil, fmt.Errorf("caching embedder: model is required")
	}
	return &CachingEmbedder{
		embedder: e,
		repo:     repo,
		model:    model,
		logger:   slog.Default().With("component", "embedding-cache", "model", model),
	}, nil
}

// EmbedText generates or loads the embedding of a single text.
func (c *CachingEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	vectors, err := c.EmbedTexts(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedTexts generates or loads embeddings, in input order.
// A failed cache read or write is logged and otherwise ignored.
func (c *CachingEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	ids := make([]core.ID, len(texts))
	for i, t := range texts {
		ids[i] = core.EmbeddingKey(c.model, t)
	}

	cached := make(map[core.ID][]float32, len(texts))
	found, err := c.repo.GetEmbeddings(ctx, ids...)
	if err != nil {
		c.logger.Warn("cache read failed", "err", err)
	}
	for _, e := range found {
		if e.Model == c.model {
			cached[e.Id] = e.Vector
		}
	}

	var missing []string
	var missingIdx []int
	for i, id := range ids {
		if _, ok := cached[id]; !ok {
			missing = append(missing, texts[i])
			missingIdx = append(missingIdx, i)
		}
	}
	c.logger.Debug("cache lookup", "requested", len(texts), "hits", len(texts)-len(missing))

	out := make([][]float32, len(texts))
	if len(missing) > 0 {
		fresh, err := c.embedder.EmbedTexts(ctx, missing)
		if err != nil {
			return nil, err
		}
		if len(fresh) != len(missing) {
			return nil, fmt.Errorf("%w: sent %d, got %d", ErrEmbeddingCount, len(missing), len(fresh))
		}

		records := make([]*core.Embedding, 0, len(fresh))
		for j, v := range fresh {
			i := missingIdx[j]
			out[i] = v
			cached[ids[i]] = v
			records = append(records, &core.Embedding{Id: ids[i], Model: c.model, Vector: v})
		}
		if err := c.repo.PutEmbeddings(ctx, records...); err != nil {
			c.logger.Warn("cache write failed", "count", len(records), "err", err)
		}
	}

	for i, id := range ids {
		if out[i] == nil {
			out[i] = cached[id]
		}
	}
	return out, nil
}
