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
	"strings"
	"unicode"

	"github.com/clipperhouse/uax29/v2/words"
	"golang.org/x/text/unicode/norm"
)

// Newline is the token emitted for a line break.
const Newline = "\n"

// Tokenizer splits text into tokens.
type Tokenizer interface {
	Tokenize(s string) []string
}

// TokenizerFunc adapts a function to the Tokenizer interface.
type TokenizerFunc func(s string) []string

// Tokenize calls f(s).
func (f TokenizerFunc) Tokenize(s string) []string {
	return f(s)
}

// WordTokenizer is the default Tokenizer backed by Tokenize.
var WordTokenizer Tokenizer = TokenizerFunc(Tokenize)

// Tokenize splits s on Unicode word boundaries.
// Whitespace-only segments are dropped except line breaks, which become Newline.
func Tokenize(s string) []string {
	s = norm.NFC.String(s)

	var tokens []string
	seg := words.FromString(s)
	for seg.Next() {
		tok := seg.Value()
		if !isBlank(tok) {
			tokens = append(tokens, tok)
			continue
		}
		if strings.ContainsAny(tok, "\n\r") {
			tokens = append(tokens, Newline)
		}
	}
	return tokens
}

// Lower returns a lower-cased copy of tokens.
func Lower(tokens []string) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = strings.ToLower(t)
	}
	return out
}

var (
	noSpaceBefore = map[string]bool{
		".": true, ",": true, ";": true, ":": true, "!": true, "?": true,
		")": true, "]": true, "}": true, "»": true, "%": true,
	}
	noSpaceAfter = map[string]bool{
		"(": true, "[": true, "{": true, "«": true,
	}
)

// Untokenize joins tokens back into readable text.
// Punctuation is attached to its neighbour and Newline tokens break lines.
func Untokenize(tokens []string) string {
	var b strings.Builder
	prev := Newline
	for _, tok := range tokens {
		if tok == Newline {
			b.WriteString(Newline)
			prev = tok
			continue
		}
		if prev != Newline && !noSpaceAfter[prev] && !noSpaceBefore[tok] {
			b.WriteByte(' ')
		}
		b.WriteString(tok)
		prev = tok
	}
	return b.String()
}

func isBlank(s string) bool {
	for _, r := range s {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}
