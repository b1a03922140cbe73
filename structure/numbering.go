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
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

var (
	romanValues = map[rune]int{
		'I': 1, 'V': 5, 'X': 10, 'L': 50, 'C': 100, 'D': 500, 'M': 1000,
	}

	invalidRoman = []string{"IIII", "VV", "XXXX", "LL", "CCCC", "DD", "MMMM"}

	romanTable = []struct {
		value  int
		symbol string
	}{
		{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"},
		{100, "C"}, {90, "XC"}, {50, "L"}, {40, "XL"},
		{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"},
	}

	arabicNumber = regexp.MustCompile(`^(\d{1,6}(\.|$)){1,6}`)

	articleMarkers = map[string]bool{"статья": true, "article": true}

	bulletGlyphs = "-•–—*·▪●○■"
)

// RomanToArabic converts a Roman numeral to its value, ignoring case.
// Only canonical numerals between 1 and 3999 are accepted; anything else,
// including repeated letters such as "IIII" or "VV" and any digit, fails.
func RomanToArabic(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	upper := strings.ToUpper(s)
	for _, bad := range invalidRoman {
		if strings.Contains(upper, bad) {
			return 0, false
		}
	}

	runes := []rune(upper)
	total, prev := 0, 0
	for i := len(runes) - 1; i >= 0; i-- {
		v, ok := romanValues[runes[i]]
		if !ok {
			return 0, false
		}
		if v < prev {
			total -= v
		} else {
			total += v
			prev = v
		}
	}

	if ArabicToRoman(total) != upper {
		return 0, false
	}
	return total, true
}

// ArabicToRoman renders n as an upper-case Roman numeral.
// Values outside 1..3999 yield an empty string.
func ArabicToRoman(n int) string {
	if n < 1 || n > 3999 {
		return ""
	}
	var b strings.Builder
	for _, r := range romanTable {
		for n >= r.value {
			b.WriteString(r.symbol)
			n -= r.value
		}
	}
	return b.String()
}

// Numbering describes the label found at the start of a line.
type Numbering struct {
	// Number is the numbering path, e.g. [2 1 3] for "2.1.3". Empty when unnumbered.
	Number []int
	// TextOffset is the number of leading tokens occupied by the label.
	TextOffset int
	// Level is the depth implied by the label, or the inherited level.
	Level int
	// Bullet is set when the line starts with a bullet glyph.
	Bullet bool
}

// Found reports whether any label, numeric or bullet, was recognized.
func (n Numbering) Found() bool {
	return len(n.Number) > 0 || n.Bullet
}

// ParseLineNumber classifies the leading tokens of a lower-cased line.
// lastLevel is returned as the level of lines without a numeric label.
func ParseLineNumber(tokens []string, lastLevel int) Numbering {
	if len(tokens) == 0 {
		return Numbering{Level: lastLevel}
	}

	if v, ok := RomanToArabic(tokens[0]); ok {
		return Numbering{
			Number:     []int{v},
			TextOffset: 1 + skipFiller(tokens[1:]),
			Level:      0,
		}
	}

	ti := 0
	if articleMarkers[tokens[0]] && len(tokens) >= 2 {
		ti = 1
	}

	if m := arabicNumber.FindString(tokens[ti]); m != "" {
		number := parseDotted(m)
		level := len(number)
		offset := ti + 1
		if len(tokens) > 2 && tokens[ti+1] == ")" {
			level++
			offset++
		}
		offset += skipFiller(tokens[offset:])
		return Numbering{Number: number, TextOffset: offset, Level: level}
	}

	if r, _ := utf8.DecodeRuneInString(tokens[ti]); strings.ContainsRune(bulletGlyphs, r) {
		offset := ti + 1
		offset += skipFiller(tokens[offset:])
		return Numbering{Bullet: true, TextOffset: offset, Level: lastLevel}
	}

	return Numbering{Level: lastLevel}
}

// parseDotted splits "2.1.3" into [2 1 3], skipping empty segments.
func parseDotted(s string) []int {
	var out []int
	for _, part := range strings.Split(s, ".") {
		if n, err := strconv.Atoi(part); err == nil {
			out = append(out, n)
		}
	}
	return out
}

// skipFiller counts leading dots and blanks.
func skipFiller(tokens []string) int {
	for i, t := range tokens {
		if t != "." && t != " " && t != "\t" {
			return i
		}
	}
	return len(tokens)
}
