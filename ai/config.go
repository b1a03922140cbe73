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
	"errors"
	"strings"
	"time"
)

const (
	DefaultHost          = "http://localhost:11434/v1"
	DefaultModel         = "embeddinggemma"
	DefaultBatchSize     = 64
	DefaultContextRadius = 2
	DefaultMaxRetries    = 3
	DefaultRetryDelay    = 500 * time.Millisecond
)

// Config holds configuration for embedding providers.
type Config struct {
	// EmbeddingHost is the base URL for the embedding service API.
	// Example: "http://localhost:11434/v1" for local OpenAI-compatible server
	EmbeddingHost string

	// EmbeddingModel is the model identifier to use for text embeddings.
	// Example: "embeddinggemma", "text-embedding-3-small"
	EmbeddingModel string

	// APIKey is sent as the bearer token. Local servers usually ignore it.
	APIKey string

	// BatchSize caps the number of texts sent in one embedding request.
	BatchSize int

	// ContextRadius is the number of neighbouring tokens on each side
	// included when embedding a single token. Zero embeds tokens alone.
	ContextRadius int

	// MaxRetries is the number of attempts made for each batch.
	MaxRetries int

	// RetryDelay is the base delay between attempts; it doubles each retry.
	RetryDelay time.Duration
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithEmbeddingHost sets the embedding service host URL.
func WithEmbeddingHost(host string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingHost = host
	}
}

// WithEmbeddingModel sets the embedding model identifier.
func WithEmbeddingModel(model string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingModel = model
	}
}

// WithAPIKey sets the bearer token sent to the embedding service.
func WithAPIKey(key string) ConfigOption {
	return func(c *Config) {
		c.APIKey = key
	}
}

// WithBatchSize sets the maximum request batch size.
func WithBatchSize(size int) ConfigOption {
	return func(c *Config) {
		c.BatchSize = size
	}
}

// WithContextRadius sets how many neighbouring tokens accompany each token.
func WithContextRadius(radius int) ConfigOption {
	return func(c *Config) {
		c.ContextRadius = radius
	}
}

// WithRetry sets the attempt count and base delay used for failed batches.
func WithRetry(maxRetries int, delay time.Duration) ConfigOption {
	return func(c *Config) {
		c.MaxRetries = maxRetries
		c.RetryDelay = delay
	}
}

// DefaultConfig returns a Config with sensible defaults for a local OpenAI-compatible service.
func DefaultConfig() *Config {
	return &Config{
		EmbeddingHost:  DefaultHost,
		EmbeddingModel: DefaultModel,
		BatchSize:      DefaultBatchSize,
		ContextRadius:  DefaultContextRadius,
		MaxRetries:     DefaultMaxRetries,
		RetryDelay:     DefaultRetryDelay,
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
//
// Example:
//
//	cfg := NewConfig(
//	    WithEmbeddingHost("http://localhost:11434"),
//	    WithEmbeddingModel("nomic-embed-text"),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form.
// It adds the /v1 suffix to the host if missing, which is required
// by most OpenAI-compatible APIs (Ollama, LocalAI, vLLM, etc).
func (c *Config) Normalize() {
	if c.EmbeddingHost != "" && !strings.HasSuffix(c.EmbeddingHost, "/v1") {
		c.EmbeddingHost = strings.TrimSuffix(c.EmbeddingHost, "/") + "/v1"
	}
}

// Validate checks that the configuration is valid and complete.
// It normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if c.EmbeddingHost == "" {
		return errors.New("ai config: EmbeddingHost is required")
	}
	if c.EmbeddingModel == "" {
		return errors.New("ai config: EmbeddingModel is required")
	}
	if c.BatchSize < 1 {
		return errors.New("ai config: BatchSize must be positive")
	}
	if c.ContextRadius < 0 {
		return errors.New("ai config: ContextRadius cannot be negative")
	}
	if c.MaxRetries < 1 {
		return errors.New("ai config: MaxRetries must be at least 1")
	}
	if c.RetryDelay < 0 {
		return errors.New("ai config: RetryDelay cannot be negative")
	}
	return nil
}
