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


// Package storage provides the storage abstraction for landmark's embedding cache.
//
// Embedding a long document token by token is the expensive part of pattern
// matching, and the same windows recur across runs. The repository defined
// here caches vectors keyed by core.EmbeddingKey(model, text), so a cache
// filled by one model is never read back for another.
//
// # Constructor Return Type Pattern
//
// Public constructors in backend packages return interfaces:
//
//	repo, err := badger.NewEmbeddingRepository(backend)  // returns storage.EmbeddingRepository
//
// # Encoding
//
// Records are encoded with mus-go primitives: varint integers, a
// length-prefixed string for the model and raw little-endian float32
// values for the vector.
//
// # Usage
//
//	backend, err := badger.OpenBackend("/path/to/cache", false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer backend.Close()
//
//	repo, err := badger.NewEmbeddingRepository(backend)
//
// Use in tests with in-memory storage:
//
//	repo, backend, err := badger.NewMemoryRepository()
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support
// concurrent access from multiple goroutines.
package storage
