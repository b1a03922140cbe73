package structure

import (
	"slices"

	"github.com/poiesic/landmark/core"
	"github.com/poiesic/landmark/text"
)

// Line describes one non-empty physical line of a document.
type Line struct {
	// Level is the nesting depth; 0 is the top of the outline.
	Level int
	// Number is the numbering path, empty when the line is unnumbered.
	Number []int
	// Bullet is set when the line starts with a bullet glyph.
	Bullet bool
	// Span covers the line's tokens including its trailing newline.
	Span core.Span
	// TextOffset is the number of label tokens before the body text.
	TextOffset int
	// LineNumber is the position of the line in the outline.
	LineNumber int
	// SequenceEnd marks the end of an enumerated run. Detection leaves it 0.
	SequenceEnd int

	possibleLevels []int
}

// Numbered reports whether the line carries a numbering path.
func (l *Line) Numbered() bool {
	return len(l.Number) > 0
}

// MinorNumber returns the last component of the numbering path.
func (l *Line) MinorNumber() (int, bool) {
	if !l.Numbered() {
		return 0, false
	}
	return l.Number[len(l.Number)-1], true
}

// ParentNumber returns the second to last component of the numbering path.
func (l *Line) ParentNumber() (int, bool) {
	if len(l.Number) < 2 {
		return 0, false
	}
	return l.Number[len(l.Number)-2], true
}

// AddPossibleLevel records a level hint.
func (l *Line) AddPossibleLevel(level int) {
	l.possibleLevels = append(l.possibleLevels, level)
}

// PossibleLevels returns a copy of the recorded level hints.
func (l *Line) PossibleLevels() []int {
	return slices.Clone(l.possibleLevels)
}

// ModalPossibleLevel returns the most frequent level hint, preferring the
// lowest level on ties. Without hints the current level is returned.
func (l *Line) ModalPossibleLevel() int {
	if len(l.possibleLevels) == 0 {
		return l.Level
	}
	counts := make(map[int]int, len(l.possibleLevels))
	for _, v := range l.possibleLevels {
		counts[v]++
	}
	best, bestCount := 0, 0
	for v, c := range counts {
		if c > bestCount || (c == bestCount && v < best) {
			best, bestCount = v, c
		}
	}
	return best
}

// Tokens returns the slice of tokens covered by the line.
func (l *Line) Tokens(tokens []string) []string {
	return tokens[l.Span.Start:min(l.Span.End, len(tokens))]
}

// Text renders the whole line.
func (l *Line) Text(tokens []string) string {
	return text.Untokenize(trimNewline(l.Tokens(tokens)))
}

// TextNoNumber renders the line without its numbering label.
func (l *Line) TextNoNumber(tokens []string) string {
	body := l.Tokens(tokens)
	if l.TextOffset < len(body) {
		body = body[l.TextOffset:]
	} else {
		body = nil
	}
	return text.Untokenize(trimNewline(body))
}

func trimNewline(tokens []string) []string {
	if n := len(tokens); n > 0 && tokens[n-1] == text.Newline {
		return tokens[:n-1]
	}
	return tokens
}

// Outline is the ordered sequence of structural lines of one document.
type Outline []Line

// Numbered returns the indexes of numbered lines.
func (o Outline) Numbered() []int {
	var out []int
	for i := range o {
		if o[i].Numbered() {
			out = append(out, i)
		}
	}
	return out
}

// MinLevel returns the shallowest level, or 0 for an empty outline.
func (o Outline) MinLevel() int {
	if len(o) == 0 {
		return 0
	}
	m := o[0].Level
	for i := range o {
		m = min(m, o[i].Level)
	}
	return m
}

// NormalizeLevels shifts all levels so that the shallowest is 0.
func (o Outline) NormalizeLevels() {
	m := o.MinLevel()
	for i := range o {
		o[i].Level -= m
	}
}

// LineAt returns the index of the line whose span contains the token index, or -1.
func (o Outline) LineAt(token int) int {
	i, found := slices.BinarySearchFunc(o, token, func(l Line, t int) int {
		switch {
		case l.Span.End <= t:
			return -1
		case l.Span.Start > t:
			return 1
		}
		return 0
	})
	if !found {
		return -1
	}
	return i
}

// Document is the result of structure detection.
type Document struct {
	// Tokens is the lower-cased token stream used for matching.
	Tokens []string
	// TokensCased is aligned with Tokens and keeps the original case.
	TokensCased []string
	// Outline holds one entry per non-empty line.
	Outline Outline
}
