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
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/poiesic/landmark/core"
	"github.com/poiesic/landmark/text"
)

// ContextEmbedder implements TokenEmbedder on top of a text Embedder.
//
// Each token is embedded together with up to radius neighbours on either
// side, so the same word gets different vectors in different surroundings.
// Identical window texts are embedded once per call.
type ContextEmbedder struct {
	embedder   Embedder
	tokenizer  text.Tokenizer
	batchSize  int
	radius     int
	maxRetries int
	retryDelay time.Duration
	logger     *slog.Logger
}

var _ TokenEmbedder = (*ContextEmbedder)(nil)

// TokenOption configures a ContextEmbedder.
type TokenOption func(*ContextEmbedder) error

// WithPhraseTokenizer sets the tokenizer used to split phrases.
// It must match the tokenizer used on documents.
func WithPhraseTokenizer(t text.Tokenizer) TokenOption {
	return func(c *ContextEmbedder) error {
		if t == nil {
			return errors.New("tokenizer cannot be nil")
		}
		c.tokenizer = t
		return nil
	}
}

// WithTokenLogger sets a custom logger.
func WithTokenLogger(logger *slog.Logger) TokenOption {
	return func(c *ContextEmbedder) error {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger.With("component", "token-embedder")
		return nil
	}
}

// NewTokenEmbedder wraps e. A nil cfg means DefaultConfig.
func NewTokenEmbedder(e Embedder, cfg *Config, opts ...TokenOption) (*ContextEmbedder, error) {
	if e == nil {
		return nil, ErrEmbedderRequired
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.BatchSize < 1 || cfg.MaxRetries < 1 || cfg.ContextRadius < 0 {
		return nil, fmt.Errorf("invalid token embedder settings: batch=%d retries=%d radius=%d",
			cfg.BatchSize, cfg.MaxRetries, cfg.ContextRadius)
	}

	c := &ContextEmbedder{
		embedder:   e,
		tokenizer:  text.WordTokenizer,
		batchSize:  cfg.BatchSize,
		radius:     cfg.ContextRadius,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
		logger:     slog.Default().With("component", "token-embedder"),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// EmbedTokens returns one row per token. Line breaks map to zero rows.
func (c *ContextEmbedder) EmbedTokens(ctx context.Context, tokens []string) ([][]float32, error) {
	windows := c.windows(tokens, 0, len(tokens))
	vectors, dim, err := c.embedWindows(ctx, windows)
	if err != nil {
		return nil, err
	}
	return assemble(windows, vectors, dim), nil
}

// EmbedPhrases embeds every phrase body in context of its prefix and suffix.
// All phrases share one round of requests.
func (c *ContextEmbedder) EmbedPhrases(ctx context.Context, phrases []core.Phrase) ([][][]float32, error) {
	perPhrase := make([][]string, len(phrases))
	var all []string
	for i, p := range phrases {
		pre := text.Lower(c.tokenizer.Tokenize(p.Prefix))
		body := text.Lower(c.tokenizer.Tokenize(p.Text))
		if embeddableCount(body) == 0 {
			return nil, fmt.Errorf("%w: phrase %d %q", core.ErrEmptyPhraseText, i, p.Text)
		}
		suf := text.Lower(c.tokenizer.Tokenize(p.Suffix))

		joined := make([]string, 0, len(pre)+len(body)+len(suf))
		joined = append(joined, pre...)
		joined = append(joined, body...)
		joined = append(joined, suf...)

		perPhrase[i] = c.windows(joined, len(pre), len(pre)+len(body))
		all = append(all, perPhrase[i]...)
	}

	vectors, dim, err := c.embedWindows(ctx, all)
	if err != nil {
		return nil, err
	}

	out := make([][][]float32, len(phrases))
	for i, w := range perPhrase {
		out[i] = assemble(w, vectors, dim)
	}
	return out, nil
}

// windows builds the context text for tokens[from:to]. Breaks yield "".
func (c *ContextEmbedder) windows(tokens []string, from, to int) []string {
	out := make([]string, 0, to-from)
	for i := from; i < to; i++ {
		if isBreak(tokens[i]) {
			out = append(out, "")
			continue
		}
		lo := max(0, i-c.radius)
		hi := min(len(tokens), i+c.radius+1)
		ctxTokens := make([]string, 0, hi-lo)
		for _, t := range tokens[lo:hi] {
			if !isBreak(t) {
				ctxTokens = append(ctxTokens, t)
			}
		}
		out = append(out, text.Untokenize(ctxTokens))
	}
	return out
}

func (c *ContextEmbedder) embedWindows(ctx context.Context, windows []string) (map[string][]float32, int, error) {
	var unique []string
	seen := make(map[string]struct{}, len(windows))
	for _, w := range windows {
		if w == "" {
			continue
		}
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		unique = append(unique, w)
	}
	if len(unique) == 0 {
		return nil, 0, ErrNoEmbeddableTokens
	}

	c.logger.Debug("embedding token windows", "tokens", len(windows), "unique", len(unique))

	vectors := make(map[string][]float32, len(unique))
	dim := 0
	for start := 0; start < len(unique); start += c.batchSize {
		batch := unique[start:min(start+c.batchSize, len(unique))]

		var embedded [][]float32
		err := RetryWithBackoff(ctx, func() error {
			var err error
			embedded, err = c.embedder.EmbedTexts(ctx, batch)
			return err
		}, c.maxRetries, c.retryDelay)
		if err != nil {
			c.logger.Error("failed to embed batch", "start", start, "size", len(batch), "err", err)
			return nil, 0, err
		}
		if len(embedded) != len(batch) {
			return nil, 0, fmt.Errorf("%w: sent %d, got %d", ErrEmbeddingCount, len(batch), len(embedded))
		}

		for i, v := range embedded {
			if len(v) == 0 {
				return nil, 0, fmt.Errorf("%w: %q", ErrEmptyEmbedding, batch[i])
			}
			if dim == 0 {
				dim = len(v)
			} else if len(v) != dim {
				return nil, 0, fmt.Errorf("%w: got %d, want %d", core.ErrDimensionMismatch, len(v), dim)
			}
			vectors[batch[i]] = v
		}
	}
	return vectors, dim, nil
}

func assemble(windows []string, vectors map[string][]float32, dim int) [][]float32 {
	out := make([][]float32, len(windows))
	for i, w := range windows {
		if w == "" {
			out[i] = make([]float32, dim)
			continue
		}
		out[i] = vectors[w]
	}
	return out
}

func isBreak(tok string) bool {
	return tok == text.Newline || strings.TrimSpace(tok) == ""
}

func embeddableCount(tokens []string) int {
	n := 0
	for _, t := range tokens {
		if !isBreak(t) {
			n++
		}
	}
	return n
}
