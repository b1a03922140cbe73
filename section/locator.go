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


package section

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"strings"

	"github.com/poiesic/landmark/batch"
	"github.com/poiesic/landmark/core"
	"github.com/poiesic/landmark/pattern"
	"github.com/poiesic/landmark/signal"
	"github.com/poiesic/landmark/structure"
	"github.com/poiesic/landmark/text"
)

const (
	// DefaultHeadlinePrefix starts the names of headline patterns.
	DefaultHeadlinePrefix = "headline."
	// DefaultThreshold is the attention below which a pattern is ignored.
	DefaultThreshold = 0.3
	// DefaultSmoothWindow is the smoothing window for context attention.
	DefaultSmoothWindow = 6
	// DefaultMaxLen caps a section body, in tokens.
	DefaultMaxLen = 5000

	contextRelu = 0.5
)

// Section is a located section of a document.
type Section struct {
	Type string
	// Line is the outline index of the headline line, or -1.
	Line int
	// Headline covers the headline tokens, without the line break.
	Headline core.Span
	// Body runs from the headline to the next section.
	Body       core.Span
	Confidence float64
	// Attention is the combined score over Body.
	Attention []float64
}

// Title returns the headline text in original case.
func (s *Section) Title(doc *structure.Document) string {
	return text.Untokenize(doc.TokensCased[s.Headline.Start:s.Headline.End])
}

// Locator finds sections by headline patterns.
type Locator struct {
	registry       *pattern.Registry
	runner         *batch.Runner
	headlinePrefix string
	contextPrefix  string
	threshold      float64
	smoothWindow   int
	maxLen         int
	logger         *slog.Logger
}

// Option configures a Locator.
type Option func(*Locator) error

// WithHeadlinePrefix sets the name prefix of headline patterns.
func WithHeadlinePrefix(prefix string) Option {
	return func(l *Locator) error {
		if prefix == "" {
			return errors.New("headline prefix cannot be empty")
		}
		l.headlinePrefix = prefix
		return nil
	}
}

// WithContextPrefix enables context attention from patterns named with prefix.
func WithContextPrefix(prefix string) Option {
	return func(l *Locator) error {
		l.contextPrefix = prefix
		return nil
	}
}

// WithThreshold sets the attention below which a pattern hit is ignored.
func WithThreshold(threshold float64) Option {
	return func(l *Locator) error {
		if threshold < 0 || threshold >= 1 {
			return fmt.Errorf("threshold must be in [0, 1), got %v", threshold)
		}
		l.threshold = threshold
		return nil
	}
}

// WithMaxSectionLen caps the body length in tokens.
func WithMaxSectionLen(n int) Option {
	return func(l *Locator) error {
		if n < 1 {
			return fmt.Errorf("max section length must be positive, got %d", n)
		}
		l.maxLen = n
		return nil
	}
}

// WithRunner computes pattern distances on the runner's pool.
func WithRunner(r *batch.Runner) Option {
	return func(l *Locator) error {
		l.runner = r
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Locator) error {
		if logger == nil {
			logger = slog.Default()
		}
		l.logger = logger.With("component", "section-locator")
		return nil
	}
}

// NewLocator creates a Locator over an embedded or soon to be embedded registry.
func NewLocator(registry *pattern.Registry, opts ...Option) (*Locator, error) {
	if registry == nil {
		return nil, ErrRegistryRequired
	}
	l := &Locator{
		registry:       registry,
		headlinePrefix: DefaultHeadlinePrefix,
		threshold:      DefaultThreshold,
		smoothWindow:   DefaultSmoothWindow,
		maxLen:         DefaultMaxLen,
		logger:         slog.Default().With("component", "section-locator"),
	}
	for _, opt := range opts {
		if err := opt(l); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// Types lists the section types that have headline patterns, sorted.
// The type of "headline.payment.2" is "payment".
func (l *Locator) Types() []string {
	seen := map[string]bool{}
	for _, p := range l.registry.ByPrefix(l.headlinePrefix) {
		t, _, _ := strings.Cut(strings.TrimPrefix(p.Name(), l.headlinePrefix), ".")
		if t != "" {
			seen[t] = true
		}
	}
	types := make([]string, 0, len(seen))
	for t := range seen {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// Locate finds the given section types in doc; all types when none are given.
// embeddings must hold one row per document token. Types whose best score is
// not positive are left out. Sections are returned in document order.
func (l *Locator) Locate(ctx context.Context, doc *structure.Document, embeddings [][]float32, types ...string) ([]Section, error) {
	if len(embeddings) != len(doc.Tokens) {
		return nil, fmt.Errorf("%w: %d rows for %d tokens", ErrEmbeddingsMismatch, len(embeddings), len(doc.Tokens))
	}
	if !l.registry.Embedded() {
		return nil, pattern.ErrNotEmbedded
	}
	if len(types) == 0 {
		types = l.Types()
	}

	byType := make(map[string][]pattern.Matcher, len(types))
	var matchers []pattern.Matcher
	for _, t := range types {
		ms := l.typePatterns(t)
		if len(ms) == 0 {
			return nil, fmt.Errorf("%w: %q", ErrNoHeadlinePatterns, t)
		}
		byType[t] = ms
		matchers = append(matchers, ms...)
	}
	var contextMatchers []pattern.Matcher
	if l.contextPrefix != "" {
		for _, p := range l.registry.ByPrefix(l.contextPrefix) {
			contextMatchers = append(contextMatchers, p)
		}
		matchers = append(matchers, contextMatchers...)
	}

	attention, err := l.attention(ctx, dedupe(matchers), embeddings)
	if err != nil {
		return nil, err
	}

	structural := HeadlineAttention(doc)
	contextual, err := l.contextAttention(attention, contextMatchers, embeddings)
	if err != nil {
		return nil, err
	}

	found := map[int]*Section{}
	for _, t := range types {
		s := l.locateType(doc, t, subset(attention, byType[t]), contextual, structural)
		if s == nil {
			continue
		}
		if prev, ok := found[s.Headline.Start]; ok && prev.Confidence >= s.Confidence {
			l.logger.Debug("headline claimed by a more confident type", "type", t, "winner", prev.Type)
			continue
		}
		found[s.Headline.Start] = s
	}

	return l.cut(doc, found), nil
}

func (l *Locator) typePatterns(t string) []pattern.Matcher {
	exact := l.headlinePrefix + t
	var out []pattern.Matcher
	for _, p := range l.registry.ByPrefix(exact) {
		if p.Name() == exact || strings.HasPrefix(p.Name(), exact+".") {
			out = append(out, p)
		}
	}
	return out
}

// attention maps each matcher name to 1 - distance.
func (l *Locator) attention(ctx context.Context, matchers []pattern.Matcher, embeddings [][]float32) (map[string][]float64, error) {
	var distances map[string][]float64
	if l.runner != nil {
		var err error
		distances, err = l.runner.DistancesAll(ctx, matchers, embeddings)
		if err != nil {
			return nil, err
		}
	} else {
		distances = make(map[string][]float64, len(matchers))
		for _, m := range matchers {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			d, err := m.Distances(embeddings)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", m.Name(), err)
			}
			distances[m.Name()] = d
		}
	}

	n := len(embeddings)
	for _, m := range matchers {
		d := distances[m.Name()]
		// positions where any window overruns the text are not real matches
		tail := n
		if p, ok := m.(interface{ Scored(n int) int }); ok {
			tail = p.Scored(n)
		}
		for i := range d {
			if i >= tail {
				d[i] = 0
				continue
			}
			d[i] = 1 - d[i]
		}
	}
	return distances, nil
}

// contextAttention is the smoothed, sharpened sum of context pattern attention, or nil.
func (l *Locator) contextAttention(attention map[string][]float64, matchers []pattern.Matcher, embeddings [][]float32) ([]float64, error) {
	if len(matchers) == 0 {
		return nil, nil
	}
	sum, n := pattern.RectifiedSumByPrefix(subset(attention, matchers), "", l.threshold)
	if n == 0 || signal.NanMax(sum) <= 0 {
		l.logger.Warn("context patterns never match", "prefix", l.contextPrefix)
		return nil, nil
	}
	improved, _, err := pattern.ImproveAttention(embeddings, sum, contextRelu, 1)
	if err != nil {
		return nil, err
	}
	return signal.SmoothSafe(improved, l.smoothWindow), nil
}

func (l *Locator) locateType(doc *structure.Document, t string, attention map[string][]float64, contextual, structural []float64) *Section {
	v, _ := pattern.RectifiedSumByPrefix(attention, "", l.threshold)
	for i := range v {
		if contextual != nil {
			v[i] += contextual[i]
		}
		v[i] *= structural[i]
	}

	best := signal.ArgMax(v)
	if best < 0 || v[best] <= 0 {
		l.logger.Info("section not found", "type", t)
		return nil
	}

	start, end := text.SentenceBoundsAtIndex(doc.Tokens, best)
	return &Section{
		Type:       t,
		Line:       doc.Outline.LineAt(best),
		Headline:   core.Span{Start: start, End: end},
		Confidence: v[best],
		Attention:  v,
	}
}

// cut assigns bodies: each section ends at the next section start, at the
// next numbered line of the same or a higher level, or after maxLen tokens.
func (l *Locator) cut(doc *structure.Document, found map[int]*Section) []Section {
	starts := make([]int, 0, len(found))
	for s := range found {
		starts = append(starts, s)
	}
	sort.Ints(starts)

	out := make([]Section, 0, len(starts))
	for i, start := range starts {
		s := found[start]
		end := len(doc.Tokens)
		if i+1 < len(starts) {
			end = starts[i+1]
		}
		end = min(end, l.structuralEnd(doc, s.Line), start+l.maxLen)

		s.Body = core.Span{Start: start, End: end}
		s.Attention = slices.Clone(s.Attention[start:end])
		out = append(out, *s)
	}
	return out
}

func (l *Locator) structuralEnd(doc *structure.Document, line int) int {
	if line < 0 || !doc.Outline[line].Numbered() {
		return len(doc.Tokens)
	}
	level := doc.Outline[line].Level
	for j := line + 1; j < len(doc.Outline); j++ {
		next := &doc.Outline[j]
		if next.Numbered() && next.Level <= level {
			return next.Span.Start
		}
	}
	return len(doc.Tokens)
}

// HeadlineAttention spreads each line's headline score over its tokens,
// clamped to [0, 1]. Line breaks and tokens outside any line get 0.
func HeadlineAttention(doc *structure.Document) []float64 {
	v := make([]float64, len(doc.Tokens))
	for i, score := range structure.HeadlineScores(doc) {
		span := doc.Outline[i].Span
		for t := span.Start; t < span.End && t < len(v); t++ {
			if doc.Tokens[t] != text.Newline {
				v[t] = score
			}
		}
	}
	return signal.Relu(signal.CutAbove(v, 1), 0)
}

func subset(attention map[string][]float64, matchers []pattern.Matcher) map[string][]float64 {
	out := make(map[string][]float64, len(matchers))
	for _, m := range matchers {
		if v, ok := attention[m.Name()]; ok {
			out[m.Name()] = v
		}
	}
	return out
}

func dedupe(matchers []pattern.Matcher) []pattern.Matcher {
	seen := map[string]bool{}
	out := matchers[:0:0]
	for _, m := range matchers {
		if !seen[m.Name()] {
			seen[m.Name()] = true
			out = append(out, m)
		}
	}
	return out
}
