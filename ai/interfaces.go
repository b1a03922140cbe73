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

	"github.com/poiesic/landmark/core"
)

// Embedder generates vector embeddings for text.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// TokenEmbedder turns token streams into per-token embedding matrices.
//
// EmbedTokens returns exactly one row per input token, in order. Line-break
// tokens get a zero row so positions stay aligned with the outline.
// EmbedPhrases returns one matrix per phrase covering only the phrase body;
// prefix and suffix only provide context.
type TokenEmbedder interface {
	EmbedTokens(ctx context.Context, tokens []string) ([][]float32, error)
	EmbedPhrases(ctx context.Context, phrases []core.Phrase) ([][][]float32, error)
}

// Provider aggregates embedding services for convenient initialization and lifecycle management.
type Provider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// TokenEmbedder returns a token-level embedder built on Embedder.
	TokenEmbedder() TokenEmbedder

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
