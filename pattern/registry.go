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


package pattern

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/poiesic/landmark/core"
)

// PhraseEmbedder turns phrases into embedding matrices, one row per token
// of the phrase body. The result must have one matrix per phrase, in order.
type PhraseEmbedder interface {
	EmbedPhrases(ctx context.Context, phrases []core.Phrase) ([][][]float32, error)
}

// Registry owns a set of named patterns and combinators.
//
// Patterns are registered first and embedded together with one Embed call.
// Registering patterns after Embed fails with ErrRegistrySealed.
type Registry struct {
	mu        sync.RWMutex
	patterns  []*Pattern
	matchers  map[string]Matcher
	groups    []*ExclusiveGroup
	compounds []*Compound
	embedded  bool
	defaults  []PatternOption
	logger    *slog.Logger
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithRegistryLogger sets a custom logger for the registry and its patterns.
func WithRegistryLogger(logger *slog.Logger) RegistryOption {
	return func(r *Registry) {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger.With("component", "pattern")
	}
}

// WithDefaults sets options applied to every pattern before its own options.
func WithDefaults(opts ...PatternOption) RegistryOption {
	return func(r *Registry) {
		r.defaults = append(r.defaults, opts...)
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		matchers: make(map[string]Matcher),
		logger:   defaultLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Create registers a pattern from its prefix, body text and suffix.
func (r *Registry) Create(name, prefix, text, suffix string, opts ...PatternOption) (*Pattern, error) {
	return r.CreatePattern(name, core.Phrase{Prefix: prefix, Text: text, Suffix: suffix}, opts...)
}

// CreatePattern registers a pattern for phrase.
func (r *Registry) CreatePattern(name string, phrase core.Phrase, opts ...PatternOption) (*Pattern, error) {
	if err := core.ValidatePhrase(phrase); err != nil {
		return nil, fmt.Errorf("pattern %q: %w", name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkRegisterable(name); err != nil {
		return nil, err
	}

	all := append(append([]PatternOption(nil), r.defaults...), opts...)
	p := newPattern(name, phrase, r.logger, all...)
	r.patterns = append(r.patterns, p)
	r.matchers[name] = p
	return p, nil
}

// AddGroup registers an exclusive group under its name.
func (r *Registry) AddGroup(g *ExclusiveGroup) error {
	if g == nil {
		return ErrMemberRequired
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.matchers[g.Name()]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateName, g.Name())
	}
	g.logger = r.logger
	r.groups = append(r.groups, g)
	r.matchers[g.Name()] = g
	return nil
}

// AddCompound registers a compound pattern under its name.
func (r *Registry) AddCompound(c *Compound) error {
	if c == nil {
		return ErrMemberRequired
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.matchers[c.Name()]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateName, c.Name())
	}
	c.logger = r.logger
	r.compounds = append(r.compounds, c)
	r.matchers[c.Name()] = c
	return nil
}

func (r *Registry) checkRegisterable(name string) error {
	if r.embedded {
		return fmt.Errorf("%w: cannot add %q", ErrRegistrySealed, name)
	}
	if _, exists := r.matchers[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateName, name)
	}
	return nil
}

// Embed assigns embeddings to every registered pattern with a single call
// to e. It can succeed only once.
func (r *Registry) Embed(ctx context.Context, e PhraseEmbedder) error {
	if e == nil {
		return ErrEmbedderRequired
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.embedded {
		return ErrRegistrySealed
	}

	phrases := make([]core.Phrase, len(r.patterns))
	for i, p := range r.patterns {
		phrases[i] = p.phrase
	}

	r.logger.Info("embedding patterns", "count", len(phrases))
	embeddings, err := e.EmbedPhrases(ctx, phrases)
	if err != nil {
		return fmt.Errorf("embedding patterns: %w", err)
	}
	if len(embeddings) != len(r.patterns) {
		return fmt.Errorf("%w: got %d, want %d", ErrEmbeddingCount, len(embeddings), len(r.patterns))
	}

	// validate everything before assigning anything
	for i, p := range r.patterns {
		if _, err := core.ValidateMatrix(embeddings[i]); err != nil {
			return fmt.Errorf("pattern %q: %w", p.name, err)
		}
	}
	for i, p := range r.patterns {
		if err := p.setEmbeddings(embeddings[i]); err != nil {
			return err
		}
	}

	r.embedded = true
	return nil
}

// Embedded reports whether Embed has succeeded.
func (r *Registry) Embedded() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.embedded
}

// Get returns the named pattern.
func (r *Registry) Get(name string) (*Pattern, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.matchers[name].(*Pattern)
	return p, ok
}

// Matcher returns the named pattern, group or compound.
func (r *Registry) Matcher(name string) (Matcher, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.matchers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPattern, name)
	}
	return m, nil
}

// Patterns returns all patterns in registration order.
func (r *Registry) Patterns() []*Pattern {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*Pattern(nil), r.patterns...)
}

// ByPrefix returns the patterns whose names start with prefix, in registration order.
func (r *Registry) ByPrefix(prefix string) []*Pattern {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*Pattern
	for _, p := range r.patterns {
		if strings.HasPrefix(p.name, prefix) {
			out = append(out, p)
		}
	}
	return out
}

// Groups returns the registered exclusive groups.
func (r *Registry) Groups() []*ExclusiveGroup {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*ExclusiveGroup(nil), r.groups...)
}

// Compounds returns the registered compound patterns.
func (r *Registry) Compounds() []*Compound {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*Compound(nil), r.compounds...)
}

// Names returns every registered name, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.matchers))
	for name := range r.matchers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
