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


package text

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// FindTokenBefore returns the last index before index holding token, or def.
func FindTokenBefore(tokens []string, index int, token string, def int) int {
	if index > len(tokens) {
		index = len(tokens)
	}
	for i := index - 1; i >= 0; i-- {
		if tokens[i] == token {
			return i
		}
	}
	return def
}

// FindTokenAfter returns the first index at or after index holding token, or def.
func FindTokenAfter(tokens []string, index int, token string, def int) int {
	for i := max(index, 0); i < len(tokens); i++ {
		if tokens[i] == token {
			return i
		}
	}
	return def
}

// SentenceBoundsAtIndex returns the [start, end) range of the line containing
// index, excluding its Newline token.
func SentenceBoundsAtIndex(tokens []string, index int) (int, int) {
	start := FindTokenBefore(tokens, index, Newline, -1) + 1
	end := FindTokenAfter(tokens, index, Newline, len(tokens))
	return start, end
}

// SplitByToken splits tokens into runs separated by sep. Separators are dropped.
func SplitByToken(tokens []string, sep string) [][]string {
	var out [][]string
	var run []string
	for _, t := range tokens {
		if t == sep {
			out = append(out, run)
			run = nil
			continue
		}
		run = append(run, t)
	}
	return append(out, run)
}

// FindNEREnd returns the index of the token that ends a named entity
// starting at start: a closing quote, Newline, period or semicolon. Without
// one the entity is capped at maxLen tokens.
func FindNEREnd(tokens []string, start, maxLen int) int {
	for i := max(start, 0); i < len(tokens); i++ {
		switch tokens[i] {
		case `"`, "»", Newline, ".", ";":
			return i
		}
	}
	return min(len(tokens), start+maxLen)
}

const (
	openingQuotes = `'"«<{[`
	closingQuotes = `'"»>]`
	punctuation   = `!"#$%&'*+,-./:;<=>?@[\]^_` + "`" + `{|}~–«»()[] `
)

// HotQuotes marks tokens that start with an opening or closing quote.
func HotQuotes(tokens []string) (opening, closing []float64) {
	opening = make([]float64, len(tokens))
	closing = make([]float64, len(tokens))
	for i, t := range tokens {
		r, _ := utf8.DecodeRuneInString(t)
		if strings.ContainsRune(openingQuotes, r) {
			opening[i] = 1
		}
		if strings.ContainsRune(closingQuotes, r) {
			closing[i] = 1
		}
	}
	return opening, closing
}

// HotPunkt marks tokens that start with punctuation.
func HotPunkt(tokens []string) []float64 {
	out := make([]float64, len(tokens))
	for i, t := range tokens {
		r, _ := utf8.DecodeRuneInString(t)
		if t != "" && strings.ContainsRune(punctuation, r) {
			out[i] = 1
		}
	}
	return out
}

// ToFloat parses a number written with spaces as thousands separators and a
// comma or a dot as the decimal mark.
func ToFloat(s string) (float64, error) {
	clean := strings.ReplaceAll(strings.ReplaceAll(s, " ", ""), ",", ".")
	v, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrNotANumber, s)
	}
	return v, nil
}

// RemoveEmptyLines trims every line, drops blank ones and replaces tabs with spaces.
func RemoveEmptyLines(s string) string {
	var kept []string
	for _, line := range strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			kept = append(kept, line)
		}
	}
	return strings.ReplaceAll(strings.Join(kept, "\n"), "\t", " ")
}

// Acronym builds an upper-case acronym from the first letters of words longer than one rune.
func Acronym(s string) string {
	var b strings.Builder
	for _, w := range strings.Split(s, " ") {
		if utf8.RuneCountInString(w) > 1 {
			r, _ := utf8.DecodeRuneInString(w)
			b.WriteRune(r)
		}
	}
	return strings.ToUpper(b.String())
}
