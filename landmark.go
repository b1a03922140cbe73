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


package landmark

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/poiesic/landmark/ai"
	"github.com/poiesic/landmark/ai/openai"
	"github.com/poiesic/landmark/batch"
	"github.com/poiesic/landmark/pattern"
	"github.com/poiesic/landmark/section"
	"github.com/poiesic/landmark/storage"
	"github.com/poiesic/landmark/storage/badger"
	"github.com/poiesic/landmark/structure"
)

var (
	// ErrNoPatterns is returned when a pattern operation runs against an empty registry.
	ErrNoPatterns = errors.New("no patterns registered")
	// ErrAnalyzerClosed is returned by operations on a closed Analyzer.
	ErrAnalyzerClosed = errors.New("analyzer closed")
)

// Analysis is a document together with its token embeddings.
type Analysis struct {
	Document   *structure.Document
	Embeddings [][]float32
}

// Analyzer wires structure detection, token embedding, pattern matching
// and section location behind one handle.
type Analyzer struct {
	backend  *badger.Backend
	cache    storage.EmbeddingRepository
	provider ai.Provider
	registry *pattern.Registry
	detector *structure.Detector
	runner   *batch.Runner
	locator  *section.Locator
	logger   *slog.Logger
	closed   bool
}

// AnalyzerOption configures an Analyzer.
type AnalyzerOption func(*analyzerOptions)

type analyzerOptions struct {
	aiConfig    *ai.Config
	cachePath   string
	provider    ai.Provider
	definitions *pattern.Definitions
	poolSize    int
	progress    io.Writer
	interval    int
	sectionOpts []section.Option
	logger      *slog.Logger
}

// WithAIConfig sets the embedding service configuration.
func WithAIConfig(cfg *ai.Config) AnalyzerOption {
	return func(o *analyzerOptions) {
		o.aiConfig = cfg
	}
}

// WithCache persists token and phrase embeddings in a BadgerDB directory.
func WithCache(path string) AnalyzerOption {
	return func(o *analyzerOptions) {
		o.cachePath = path
	}
}

// WithProvider uses p instead of an OpenAI-compatible provider.
// The cache is not applied to an injected provider.
func WithProvider(p ai.Provider) AnalyzerOption {
	return func(o *analyzerOptions) {
		o.provider = p
	}
}

// WithDefinitions registers the given patterns, groups and compounds.
func WithDefinitions(defs *pattern.Definitions) AnalyzerOption {
	return func(o *analyzerOptions) {
		o.definitions = defs
	}
}

// WithPoolSize sets the worker pool size used for batch work.
func WithPoolSize(size int) AnalyzerOption {
	return func(o *analyzerOptions) {
		o.poolSize = size
	}
}

// WithProgress reports batch progress to w every interval documents.
func WithProgress(w io.Writer, interval int) AnalyzerOption {
	return func(o *analyzerOptions) {
		o.progress = w
		o.interval = interval
	}
}

// WithSectionOptions passes options through to the section locator.
func WithSectionOptions(opts ...section.Option) AnalyzerOption {
	return func(o *analyzerOptions) {
		o.sectionOpts = append(o.sectionOpts, opts...)
	}
}

// WithLogger sets the logger. A nil logger selects slog.Default().
func WithLogger(logger *slog.Logger) AnalyzerOption {
	return func(o *analyzerOptions) {
		o.logger = logger
	}
}

// NewAnalyzer creates an Analyzer. Patterns are not embedded until
// Prepare or the first pattern operation.
func NewAnalyzer(opts ...AnalyzerOption) (*Analyzer, error) {
	options := &analyzerOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}
	if options.logger == nil {
		options.logger = slog.Default()
	}

	a := &Analyzer{logger: options.logger.With("component", "analyzer")}
	if err := a.init(options); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func (a *Analyzer) init(options *analyzerOptions) error {
	a.provider = options.provider
	if a.provider == nil {
		var providerOpts []openai.ProviderOption
		if options.cachePath != "" {
			backend, err := badger.OpenBackend(options.cachePath, false)
			if err != nil {
				return err
			}
			a.backend = backend
			repo, err := badger.NewEmbeddingRepository(backend)
			if err != nil {
				return err
			}
			a.cache = repo
			providerOpts = append(providerOpts, openai.WithCache(repo))
		}
		provider, err := openai.NewProvider(options.aiConfig, providerOpts...)
		if err != nil {
			return err
		}
		a.provider = provider
	}

	a.registry = pattern.NewRegistry(pattern.WithRegistryLogger(options.logger))
	if options.definitions != nil {
		if err := options.definitions.Register(a.registry); err != nil {
			return fmt.Errorf("registering patterns: %w", err)
		}
	}

	detector, err := structure.NewDetector(structure.WithLogger(options.logger))
	if err != nil {
		return err
	}
	a.detector = detector

	runnerOpts := []batch.Option{batch.WithLogger(options.logger)}
	if options.poolSize > 0 {
		runnerOpts = append(runnerOpts, batch.WithPoolSize(options.poolSize))
	}
	if options.progress != nil {
		runnerOpts = append(runnerOpts, batch.WithProgress(options.progress, options.interval))
	}
	runner, err := batch.NewRunner(runnerOpts...)
	if err != nil {
		return err
	}
	a.runner = runner

	sectionOpts := append([]section.Option{
		section.WithRunner(runner),
		section.WithLogger(options.logger),
	}, options.sectionOpts...)
	locator, err := section.NewLocator(a.registry, sectionOpts...)
	if err != nil {
		return err
	}
	a.locator = locator
	return nil
}

// Close releases the worker pool, the provider and the cache, in that order.
func (a *Analyzer) Close() error {
	if a.closed {
		return nil
	}
	a.closed = true

	if a.runner != nil {
		a.runner.Release()
	}
	if a.provider != nil {
		if err := a.provider.Close(); err != nil {
			a.logger.Error("error closing AI provider", "err", err)
		}
	}
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.logger.Error("error closing embedding cache", "err", err)
			return err
		}
	}
	if a.backend != nil {
		if err := a.backend.Close(); err != nil {
			a.logger.Error("error closing backend storage", "err", err)
			return err
		}
	}
	return nil
}

// Registry returns the pattern registry. Patterns may be added until Prepare.
func (a *Analyzer) Registry() *pattern.Registry {
	return a.registry
}

// Cache returns the embedding cache, or nil when none is configured.
func (a *Analyzer) Cache() storage.EmbeddingRepository {
	return a.cache
}

// SectionTypes lists the section types the registry has headline patterns for.
func (a *Analyzer) SectionTypes() []string {
	return a.locator.Types()
}

// Prepare embeds the registered patterns. It is a no-op once they are embedded.
func (a *Analyzer) Prepare(ctx context.Context) error {
	if a.closed {
		return ErrAnalyzerClosed
	}
	if a.registry.Embedded() {
		return nil
	}
	if len(a.registry.Patterns()) == 0 {
		return ErrNoPatterns
	}
	return a.registry.Embed(ctx, a.provider.TokenEmbedder())
}

// Outline infers the structure of raw without embedding anything.
func (a *Analyzer) Outline(raw string) *structure.Document {
	return a.detector.Detect(raw)
}

// Analyze detects the structure of raw and embeds its tokens.
func (a *Analyzer) Analyze(ctx context.Context, raw string) (*Analysis, error) {
	if a.closed {
		return nil, ErrAnalyzerClosed
	}
	doc := a.detector.Detect(raw)
	rows, err := a.provider.TokenEmbedder().EmbedTokens(ctx, doc.Tokens)
	if err != nil {
		return nil, fmt.Errorf("embedding document: %w", err)
	}
	return &Analysis{Document: doc, Embeddings: rows}, nil
}

// AnalyzeAll analyzes every text on the worker pool. Results keep input order.
func (a *Analyzer) AnalyzeAll(ctx context.Context, texts []string) ([]*Analysis, error) {
	if a.closed {
		return nil, ErrAnalyzerClosed
	}
	docs, err := a.runner.DetectAll(ctx, texts, a.detector)
	if err != nil {
		return nil, err
	}
	rows, err := a.runner.EmbedAll(ctx, docs, a.provider.TokenEmbedder())
	if err != nil {
		return nil, err
	}
	out := make([]*Analysis, len(docs))
	for i, doc := range docs {
		out[i] = &Analysis{Document: doc, Embeddings: rows[i]}
	}
	return out, nil
}

// Find locates the best position of each named matcher in an analysis.
// Every registered pattern, group and compound is searched when names is empty.
func (a *Analyzer) Find(ctx context.Context, an *Analysis, rightPadding int, names ...string) (map[string]pattern.Match, error) {
	if err := a.Prepare(ctx); err != nil {
		return nil, err
	}
	if len(names) == 0 {
		names = a.registry.Names()
	}
	matchers := make([]pattern.Matcher, 0, len(names))
	for _, name := range names {
		m, err := a.registry.Matcher(name)
		if err != nil {
			return nil, err
		}
		matchers = append(matchers, m)
	}
	return a.runner.FindAll(ctx, matchers, an.Embeddings, rightPadding)
}

// Sections locates the given section types in an analysis; all known types
// when none are given.
func (a *Analyzer) Sections(ctx context.Context, an *Analysis, types ...string) ([]section.Section, error) {
	if err := a.Prepare(ctx); err != nil {
		return nil, err
	}
	return a.locator.Locate(ctx, an.Document, an.Embeddings, types...)
}
