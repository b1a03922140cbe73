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
	"fmt"
	"log/slog"
	"slices"

	"github.com/poiesic/landmark/core"
	"github.com/poiesic/landmark/distance"
)

// Window is a sliding window configuration. The window size is
// Multiplier * len(pattern) + Padding tokens.
type Window struct {
	Padding    int
	Multiplier int
}

// Size returns the window length for a pattern of patternLen vectors.
func (w Window) Size(patternLen int) int {
	return w.Multiplier*patternLen + w.Padding
}

var (
	// CanonicalWindow has exactly the pattern's length.
	CanonicalWindow = Window{Padding: 0, Multiplier: 1}

	softWindows = []Window{
		{Padding: 2, Multiplier: 1},
		{Padding: 1, Multiplier: 2},
		{Padding: 7, Multiplier: 0},
	}
)

// Matcher produces one distance per token position.
type Matcher interface {
	Name() string
	Distances(text [][]float32) ([]float64, error)
}

// Pattern is a named reference embedding.
type Pattern struct {
	name        string
	phrase      core.Phrase
	embeddings  [][]float32
	dim         int
	softBorders bool
	kind        distance.Kind
	logger      *slog.Logger
}

var _ Matcher = (*Pattern)(nil)

// PatternOption configures a Pattern.
type PatternOption func(*Pattern)

// WithSoftBorders enables the additional window configurations.
func WithSoftBorders(enabled bool) PatternOption {
	return func(p *Pattern) {
		p.softBorders = enabled
	}
}

// WithDistance selects the distance strategy. Default is distance.MeanCosine.
func WithDistance(kind distance.Kind) PatternOption {
	return func(p *Pattern) {
		p.kind = kind
	}
}

func newPattern(name string, phrase core.Phrase, logger *slog.Logger, opts ...PatternOption) *Pattern {
	p := &Pattern{
		name:   name,
		phrase: phrase,
		kind:   distance.MeanCosine,
		logger: logger,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// FromEmbeddings creates an already embedded pattern that belongs to no
// registry, e.g. a meta pattern cut out of a document.
func FromEmbeddings(name string, embeddings [][]float32, opts ...PatternOption) (*Pattern, error) {
	p := newPattern(name, core.Phrase{}, defaultLogger(), opts...)
	if err := p.setEmbeddings(embeddings); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Pattern) setEmbeddings(embeddings [][]float32) error {
	dim, err := core.ValidateMatrix(embeddings)
	if err != nil {
		return fmt.Errorf("pattern %q: %w", p.name, err)
	}
	p.embeddings = embeddings
	p.dim = dim
	return nil
}

// Name returns the pattern name.
func (p *Pattern) Name() string { return p.name }

// Phrase returns the phrase the pattern was created from.
func (p *Pattern) Phrase() core.Phrase { return p.phrase }

// Distance returns the configured distance strategy.
func (p *Pattern) Distance() distance.Kind { return p.kind }

// SoftBorders reports whether the additional windows are used.
func (p *Pattern) SoftBorders() bool { return p.softBorders }

// Embedded reports whether embeddings have been assigned.
func (p *Pattern) Embedded() bool { return p.embeddings != nil }

// Len returns the number of vectors in the pattern.
func (p *Pattern) Len() int { return len(p.embeddings) }

// Dimension returns the embedding width, or 0 before embedding.
func (p *Pattern) Dimension() int { return p.dim }

// Embeddings returns a copy of the pattern's embedding matrix.
func (p *Pattern) Embeddings() [][]float32 {
	out := make([][]float32, len(p.embeddings))
	for i, row := range p.embeddings {
		out[i] = slices.Clone(row)
	}
	return out
}

// Windows returns the window configurations used for matching.
func (p *Pattern) Windows() []Window {
	if !p.softBorders {
		return []Window{CanonicalWindow}
	}
	return append([]Window{CanonicalWindow}, softWindows...)
}

// Scored returns how many leading positions of an n-token text are covered
// by every window that fits it. Later positions average in the zeros of
// overrunning windows. It is 0 when no window fits.
func (p *Pattern) Scored(n int) int {
	largest := 0
	for _, w := range p.Windows() {
		if size := w.Size(len(p.embeddings)); size <= n && size > largest {
			largest = size
		}
	}
	if largest == 0 {
		return 0
	}
	return n - largest + 1
}

// Distances slides every window configuration over text and averages the
// resulting distance vectors. A configuration that does not fit the text is
// skipped with a warning; positions where a window would overrun the text
// stay 0 in that configuration.
func (p *Pattern) Distances(text [][]float32) ([]float64, error) {
	if !p.Embedded() {
		return nil, fmt.Errorf("%w: %s", ErrNotEmbedded, p.name)
	}
	dim, err := core.ValidateMatrix(text)
	if err != nil {
		return nil, fmt.Errorf("text: %w", err)
	}
	if dim != p.dim {
		return nil, fmt.Errorf("%w: text has %d, pattern %q has %d", core.ErrDimensionMismatch, dim, p.name, p.dim)
	}

	dist := p.kind.Func()
	if dist == nil {
		return nil, fmt.Errorf("%w: %d", distance.ErrUnknownKind, int(p.kind))
	}

	n := len(text)
	sum := make([]float64, n)
	fitted := 0
	for _, w := range p.Windows() {
		size := w.Size(len(p.embeddings))
		if size < 1 || size > n {
			p.logger.Warn("window does not fit text",
				"pattern", p.name,
				"window", size,
				"tokens", n)
			continue
		}
		for i := 0; i+size <= n; i++ {
			sum[i] += dist(text[i:i+size], p.embeddings)
		}
		fitted++
	}

	if fitted == 0 {
		return nil, fmt.Errorf("%w: pattern %q, %d tokens", ErrNoWindowFits, p.name, n)
	}
	for i := range sum {
		sum[i] /= float64(fitted)
	}
	return sum, nil
}

// Find returns the best match of the pattern in text.
func (p *Pattern) Find(text [][]float32, rightPadding int) (Match, error) {
	return Find(p, text, rightPadding)
}

func (p *Pattern) String() string {
	return fmt.Sprintf("Pattern(%s %s)", p.name, p.phrase)
}

func (p *Pattern) log() *slog.Logger { return p.logger }

func defaultLogger() *slog.Logger {
	return slog.Default().With("component", "pattern")
}
