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


package structure

import (
	"log/slog"
	"strings"
	"unicode"

	"github.com/poiesic/landmark/core"
	"github.com/poiesic/landmark/text"
)

// headlineCueRunes is how many leading runes must be upper-case for a line
// to be hinted as a top-level headline.
const headlineCueRunes = 15

// Detector infers document structure.
// A Detector holds no per-document state and is safe for concurrent use.
type Detector struct {
	tokenizer text.Tokenizer
	logger    *slog.Logger
}

// Option configures a Detector.
type Option func(*Detector) error

// WithTokenizer replaces the default word tokenizer.
func WithTokenizer(t text.Tokenizer) Option {
	return func(d *Detector) error {
		if t == nil {
			return ErrTokenizerRequired
		}
		d.tokenizer = t
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(d *Detector) error {
		if logger == nil {
			logger = slog.Default()
		}
		d.logger = logger.With("component", "structure")
		return nil
	}
}

// NewDetector creates a Detector.
func NewDetector(opts ...Option) (*Detector, error) {
	d := &Detector{
		tokenizer: text.WordTokenizer,
		logger:    slog.Default().With("component", "structure"),
	}
	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// Detect tokenizes raw and builds its outline.
// Blank lines contribute their newline token to the stream but no outline entry.
func (d *Detector) Detect(raw string) *Document {
	doc := &Document{}
	lastLevel := 0

	for _, row := range strings.Split(raw, "\n") {
		row = strings.TrimSuffix(row, "\r")

		cased := append(d.tokenizer.Tokenize(strings.TrimSpace(row)), text.Newline)
		start := len(doc.Tokens)
		doc.TokensCased = append(doc.TokensCased, cased...)
		doc.Tokens = append(doc.Tokens, text.Lower(cased)...)

		if len(cased) < 2 {
			continue
		}

		numbering := ParseLineNumber(doc.Tokens[start:], lastLevel)
		if len(numbering.Number) > 0 {
			lastLevel = numbering.Level
		}

		line := Line{
			Level:      numbering.Level,
			Number:     numbering.Number,
			Bullet:     numbering.Bullet,
			Span:       core.Span{Start: start, End: len(doc.Tokens)},
			TextOffset: numbering.TextOffset,
			LineNumber: len(doc.Outline),
		}
		if looksLikeHeadline(row) {
			line.AddPossibleLevel(0)
		}
		doc.Outline = append(doc.Outline, line)
	}

	refine(doc.Outline)

	d.logger.Debug("structure detected",
		"tokens", len(doc.Tokens),
		"lines", len(doc.Outline),
		"numbered", len(doc.Outline.Numbered()))
	return doc
}

// looksLikeHeadline reports whether the first runes of row are unchanged by
// upper-casing. Rows without letters, such as "1.1 2020", qualify.
func looksLikeHeadline(row string) bool {
	n := 0
	for _, r := range row {
		if n == headlineCueRunes {
			break
		}
		n++
		if unicode.ToUpper(r) != r {
			return false
		}
	}
	return true
}

// refine runs the level passes. Outlines without numbered lines are left as detected.
func refine(o Outline) {
	if len(o.Numbered()) == 0 {
		return
	}

	uplevelNonNumbered(o)
	o.NormalizeLevels()

	updateLevels(o)

	uplevelNonNumbered(o)
	o.NormalizeLevels()
}

// uplevelNonNumbered keeps unnumbered lines below the last numbered line
// unless they carry level hints.
func uplevelNonNumbered(o Outline) {
	last := 0
	for i := range o {
		l := &o[i]
		if l.Numbered() {
			last = l.Level
			continue
		}
		if len(l.possibleLevels) > 0 {
			l.Level = l.ModalPossibleLevel()
		} else if l.Level < last+1 {
			l.Level = last + 1
		}
	}
}

// updateLevels lets level hints override shallow numbering.
func updateLevels(o Outline) {
	for i := range o {
		if len(o[i].Number) < 2 {
			o[i].Level = o[i].ModalPossibleLevel()
		}
	}
}
