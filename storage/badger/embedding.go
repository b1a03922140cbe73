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


package badger

import (
	"context"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/landmark/core"
	"github.com/poiesic/landmark/storage"
)

// EmbeddingRepository implements storage.EmbeddingRepository for BadgerDB.
type EmbeddingRepository struct {
	backend *Backend
}

var _ storage.EmbeddingRepository = (*EmbeddingRepository)(nil)

// NewEmbeddingRepository creates a repository on an open backend.
// The backend stays owned by the caller.
func NewEmbeddingRepository(backend *Backend) (storage.EmbeddingRepository, error) {
	if backend == nil {
		return nil, errors.New("backend is required")
	}
	return &EmbeddingRepository{backend: backend}, nil
}

// Close releases resources. EmbeddingRepository has no resources to release.
func (r *EmbeddingRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *EmbeddingRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// PutEmbeddings stores or replaces embeddings in one transaction.
// Large batches are split when badger reports the transaction is too big.
func (r *EmbeddingRepository) PutEmbeddings(ctx context.Context, embeddings ...*core.Embedding) error {
	if len(embeddings) == 0 {
		return nil
	}
	now := time.Now().UTC()
	for _, e := range embeddings {
		if e.InsertedAt.IsZero() {
			e.InsertedAt = now
		}
	}

	pending := embeddings
	for len(pending) > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
		written := 0
		err := r.backend.WithTx(func(tx *badger.Txn) error {
			for _, e := range pending {
				err := tx.Set(makeEmbeddingKey(e.Id), storage.MarshalEmbedding(e))
				if errors.Is(err, badger.ErrTxnTooBig) && written > 0 {
					break
				}
				if err != nil {
					return err
				}
				written++
			}
			return tx.Commit()
		}, true)
		if err != nil {
			return err
		}
		pending = pending[written:]
	}
	return nil
}

// GetEmbedding retrieves a single embedding by ID.
func (r *EmbeddingRepository) GetEmbedding(ctx context.Context, id core.ID) (*core.Embedding, error) {
	var embedding *core.Embedding
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		embedding, err = readEmbedding(tx, id)
		return err
	}, false)
	if err != nil {
		return nil, err
	}
	if embedding == nil {
		return nil, storage.ErrNotFound
	}
	return embedding, nil
}

// GetEmbeddings retrieves the embeddings that exist among ids, in input order.
func (r *EmbeddingRepository) GetEmbeddings(ctx context.Context, ids ...core.ID) ([]*core.Embedding, error) {
	embeddings := make([]*core.Embedding, 0, len(ids))
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			e, err := readEmbedding(tx, id)
			if err != nil {
				return err
			}
			if e != nil {
				embeddings = append(embeddings, e)
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return embeddings, nil
}

// DeleteEmbeddings removes embeddings by ID.
func (r *EmbeddingRepository) DeleteEmbeddings(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			if err := tx.Delete(makeEmbeddingKey(id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// ClearEmbeddings removes every cached embedding.
func (r *EmbeddingRepository) ClearEmbeddings(ctx context.Context) error {
	return r.backend.DropPrefix([]byte(embeddingPrefix))
}

// CountEmbeddings counts cached embeddings, optionally for one model only.
func (r *EmbeddingRepository) CountEmbeddings(ctx context.Context, model string) (int, error) {
	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(embeddingPrefix)
		opts.PrefetchValues = model != ""
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			if model == "" {
				count++
				continue
			}
			err := iter.Item().Value(func(val []byte) error {
				e, err := storage.UnmarshalEmbedding(val)
				if err != nil {
					return err
				}
				if e.Model == model {
					count++
				}
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	}, false)
	return count, err
}

// readEmbedding returns nil, nil when the key is absent.
func readEmbedding(tx *badger.Txn, id core.ID) (*core.Embedding, error) {
	item, err := tx.Get(makeEmbeddingKey(id))
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var embedding *core.Embedding
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		embedding, unmarshalErr = storage.UnmarshalEmbedding(val)
		return unmarshalErr
	})
	return embedding, err
}
