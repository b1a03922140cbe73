package core

import (
	"encoding/binary"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier derived from content.
// It is used to key cached embeddings.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// EmbeddingKey returns the cache ID for text embedded by model.
func EmbeddingKey(model, text string) ID {
	return IDFromContent(model + "\x00" + text)
}

// Embedding is a cached embedding vector.
type Embedding struct {
	Id         ID
	Model      string
	Vector     []float32
	InsertedAt time.Time
}

// Span is a half-open [Start, End) range of token indexes.
type Span struct {
	Start int
	End   int
}

// Len returns the number of tokens covered by the span.
func (s Span) Len() int {
	if s.End < s.Start {
		return 0
	}
	return s.End - s.Start
}

// Contains reports whether token index i falls inside the span.
func (s Span) Contains(i int) bool {
	return i >= s.Start && i < s.End
}

// Phrase is the text a pattern is built from.
// Prefix and Suffix are embedded together with Text to give it context,
// but only the tokens of Text end up in the pattern.
type Phrase struct {
	Prefix string
	Text   string
	Suffix string
}

// NewPhrase returns a Phrase with no surrounding context.
func NewPhrase(text string) Phrase {
	return Phrase{Text: text}
}

// String renders the phrase with its context in brackets, e.g. "[prefix] text [suffix]".
func (p Phrase) String() string {
	var b strings.Builder
	if p.Prefix != "" {
		b.WriteString("[" + p.Prefix + "] ")
	}
	b.WriteString(p.Text)
	if p.Suffix != "" {
		b.WriteString(" [" + p.Suffix + "]")
	}
	return b.String()
}
