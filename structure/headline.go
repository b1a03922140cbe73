package structure

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/poiesic/landmark/text"
)

const (
	notHeadline        = -1.0
	maxHeadlineTokens  = 30
	shortHeadline      = 15
	maxHeadlineMinor   = 40
	headlinePreviewLen = 40
)

// HeadlineProbability scores how much a line looks like a section headline.
//
// tokens and cased are the lower-cased and original-case tokens of the line,
// prevTokens the tokens of the preceding line and prevValue its score, so a
// headline directly after another headline is penalized. The score is not
// bounded; negative values mean "not a headline".
func HeadlineProbability(tokens, cased, prevTokens []string, prevValue float64) float64 {
	if len(tokens) < 2 || len(tokens) > maxHeadlineTokens {
		return notHeadline
	}

	var value float64
	if prevValue > 0 {
		value -= prevValue
	}

	numbering := ParseLineNumber(tokens, 0)
	row := headlinePreview(cased, numbering.TextOffset)

	if numbering.Found() {
		if articleMarkers[tokens[0]] {
			value += 3
		}
		if numbering.Bullet {
			return notHeadline
		}

		minor := numbering.Number[len(numbering.Number)-1]
		if minor > 0 {
			value++
		}
		if minor > maxHeadlineMinor {
			value--
		}

		if numbering.Level == 0 {
			value++
		}
		if numbering.Level > 1 {
			return -float64(numbering.Level)
		}
	}

	if utf8.RuneCountInString(row) > 1 {
		if r, _ := utf8.DecodeRuneInString(row); unicode.ToLower(r) == r {
			value--
		}
	}

	if len(tokens) < shortHeadline {
		value++
	}

	if strings.ToUpper(row) == row {
		value += 2
	}

	if len(prevTokens) == 1 && prevTokens[0] == text.Newline {
		value++
	}

	return value
}

// headlinePreview is the body text of the line, capped and left-trimmed.
func headlinePreview(cased []string, offset int) string {
	if offset > len(cased) {
		offset = len(cased)
	}
	row := text.Untokenize(cased[offset:])
	if r := []rune(row); len(r) > headlinePreviewLen {
		row = string(r[:headlinePreviewLen])
	}
	return strings.TrimLeftFunc(row, unicode.IsSpace)
}

// HeadlineScores scores every outline line with HeadlineProbability, chaining
// each line's score into the next.
func HeadlineScores(doc *Document) []float64 {
	scores := make([]float64, len(doc.Outline))
	var prevTokens []string
	prev := 0.0
	for i := range doc.Outline {
		l := &doc.Outline[i]
		if i > 0 && doc.Outline[i-1].Span.End < l.Span.Start {
			// a blank line precedes this one
			prevTokens = []string{text.Newline}
			prev = notHeadline
		}
		scores[i] = HeadlineProbability(l.Tokens(doc.Tokens), l.Tokens(doc.TokensCased), prevTokens, prev)
		prev = scores[i]
		prevTokens = l.Tokens(doc.Tokens)
	}
	return scores
}
