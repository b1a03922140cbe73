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


package mock

import "github.com/poiesic/landmark/ai"

// MockProvider is a test double for ai.Provider.
type MockProvider struct {
	embedder *MockEmbedder
	tokens   *ai.ContextEmbedder
}

var _ ai.Provider = (*MockProvider)(nil)

// NewMockProvider creates a provider over a default MockEmbedder.
// The token embedder embeds tokens alone (context radius 0) with no retry delay.
func NewMockProvider() *MockProvider {
	return NewMockProviderWithEmbedder(NewMockEmbedder(), ai.NewConfig(
		ai.WithContextRadius(0),
		ai.WithRetry(1, 0),
	))
}

// NewMockProviderWithEmbedder creates a provider with a custom embedder and config.
func NewMockProviderWithEmbedder(embedder *MockEmbedder, cfg *ai.Config) *MockProvider {
	tokens, err := ai.NewTokenEmbedder(embedder, cfg)
	if err != nil {
		panic(err)
	}
	return &MockProvider{
		embedder: embedder,
		tokens:   tokens,
	}
}

// Embedder returns the mock embedder.
func (p *MockProvider) Embedder() ai.Embedder {
	return p.embedder
}

// TokenEmbedder returns a token embedder over the mock embedder.
func (p *MockProvider) TokenEmbedder() ai.TokenEmbedder {
	return p.tokens
}

// Close is a no-op for mock provider.
func (p *MockProvider) Close() error {
	return nil
}

// GetMockEmbedder returns the underlying mock embedder for test assertions.
func (p *MockProvider) GetMockEmbedder() *MockEmbedder {
	return p.embedder
}
