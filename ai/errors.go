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

import "errors"

var (
	// ErrNoEmbeddableTokens indicates a token stream with nothing but line breaks or blanks.
	ErrNoEmbeddableTokens = errors.New("no embeddable tokens")

	// ErrEmbeddingCount indicates the embedding service returned a different
	// number of vectors than texts sent.
	ErrEmbeddingCount = errors.New("embedding count mismatch")

	// ErrEmptyEmbedding indicates the embedding service returned a zero-length vector.
	ErrEmptyEmbedding = errors.New("empty embedding returned")

	// ErrEmbedderRequired indicates a nil Embedder was supplied.
	ErrEmbedderRequired = errors.New("embedder is required")

	// ErrInvalidMaxAttempts indicates a retry loop was configured with no attempts.
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")
)
