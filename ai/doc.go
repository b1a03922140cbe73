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


// Package ai provides the embedding collaborator used by landmark.
//
// Pattern matching compares token embeddings against phrase embeddings.
// Producing those vectors is delegated to the interfaces in this package so
// the matching code never depends on a particular model or service.
//
// # Design Principles
//
// The package is designed around three interfaces:
//
//   - Embedder: generates one vector per text
//   - TokenEmbedder: generates one row per token of a stream, and one
//     matrix per phrase
//   - Provider: aggregates both for convenient initialization
//
// ContextEmbedder implements TokenEmbedder over any Embedder. Each token is
// embedded together with a few neighbours (Config.ContextRadius), identical
// windows are sent once, requests are batched (Config.BatchSize) and failed
// batches are retried with exponential backoff. Line-break tokens get zero
// rows so embeddings stay aligned with the document outline.
//
// CachingEmbedder sits between ContextEmbedder and the service and keeps
// vectors in a storage.EmbeddingRepository.
//
// # Implementation Packages
//
//   - ai/openai: production implementation using OpenAI-compatible APIs
//   - ai/mock: deterministic test doubles
//
// # Constructor Return Type Pattern
//
// Public constructors in implementation packages (openai.NewProvider,
// openai.NewEmbedder) return INTERFACE types. Test utility constructors
// (mock.NewMockEmbedder) return CONCRETE types so tests can inspect call
// counts and inject behavior.
//
// # Usage Example
//
//	config := ai.NewConfig(ai.WithEmbeddingModel("embeddinggemma"))
//	provider, err := openai.NewProvider(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	rows, err := provider.TokenEmbedder().EmbedTokens(ctx, doc.Tokens)
package ai
