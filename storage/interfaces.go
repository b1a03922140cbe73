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


package storage

import (
	"context"

	"github.com/poiesic/landmark/core"
)

// Repository defines the base interface for storage operations.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// EmbeddingRepository caches embedding vectors keyed by core.EmbeddingKey.
type EmbeddingRepository interface {
	Repository

	// PutEmbeddings stores or replaces embeddings.
	// Sets InsertedAt if not already set.
	PutEmbeddings(ctx context.Context, embeddings ...*core.Embedding) error

	// GetEmbedding retrieves a single embedding by ID.
	// Returns ErrNotFound if the embedding doesn't exist.
	GetEmbedding(ctx context.Context, id core.ID) (*core.Embedding, error)

	// GetEmbeddings retrieves multiple embeddings by their IDs.
	// Returns only the embeddings that exist (no error for missing ones).
	GetEmbeddings(ctx context.Context, ids ...core.ID) ([]*core.Embedding, error)

	// DeleteEmbeddings removes embeddings by ID. Missing IDs are ignored.
	DeleteEmbeddings(ctx context.Context, ids ...core.ID) error

	// ClearEmbeddings removes every cached embedding.
	ClearEmbeddings(ctx context.Context) error

	// CountEmbeddings returns the number of cached embeddings for model,
	// or for every model when model is empty.
	CountEmbeddings(ctx context.Context, model string) (int, error)
}
