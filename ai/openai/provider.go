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


package openai

import (
	"log/slog"

	"github.com/poiesic/landmark/ai"
	"github.com/poiesic/landmark/storage"
)

// Provider implements ai.Provider using OpenAI-compatible services.
type Provider struct {
	config   *ai.Config
	embedder ai.Embedder
	tokens   *ai.ContextEmbedder
	logger   *slog.Logger
}

var _ ai.Provider = (*Provider)(nil)

// ProviderOption configures a Provider.
type ProviderOption func(*providerOptions)

type providerOptions struct {
	cache     storage.EmbeddingRepository
	tokenOpts []ai.TokenOption
}

// WithCache serves embeddings from repo and stores new ones there.
func WithCache(repo storage.EmbeddingRepository) ProviderOption {
	return func(o *providerOptions) {
		o.cache = repo
	}
}

// WithTokenOptions passes options to the token embedder.
func WithTokenOptions(opts ...ai.TokenOption) ProviderOption {
	return func(o *providerOptions) {
		o.tokenOpts = append(o.tokenOpts, opts...)
	}
}

// NewProvider creates a new provider backed by an OpenAI-compatible service.
// The config is validated and normalized before use.
//
// Returns ai.Provider interface (not *Provider) to enforce abstraction.
func NewProvider(config *ai.Config, opts ...ProviderOption) (ai.Provider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	var o providerOptions
	for _, opt := range opts {
		opt(&o)
	}

	base, err := newEmbedder(config)
	if err != nil {
		return nil, err
	}

	var embedder ai.Embedder = base
	if o.cache != nil {
		embedder, err = ai.NewCachingEmbedder(base, o.cache, config.EmbeddingModel)
		if err != nil {
			return nil, err
		}
	}

	tokens, err := ai.NewTokenEmbedder(embedder, config, o.tokenOpts...)
	if err != nil {
		return nil, err
	}

	return &Provider{
		config:   config,
		embedder: embedder,
		tokens:   tokens,
		logger:   slog.Default().With("component", "openai-provider"),
	}, nil
}

// Embedder returns the text embedding service.
func (p *Provider) Embedder() ai.Embedder {
	return p.embedder
}

// TokenEmbedder returns the token-level embedder.
func (p *Provider) TokenEmbedder() ai.TokenEmbedder {
	return p.tokens
}

// Close releases resources held by the provider.
// The cache repository, if any, stays owned by the caller.
func (p *Provider) Close() error {
	p.logger.Debug("closing OpenAI provider")
	return nil
}
