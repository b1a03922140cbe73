package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"words and punctuation", "Hello, world!", []string{"Hello", ",", "world", "!"}},
		{"dotted number stays whole", "2.1.3 Scope", []string{"2.1.3", "Scope"}},
		{"trailing dot splits", "1. Introduction", []string{"1", ".", "Introduction"}},
		{"parenthesis splits", "1) item", []string{"1", ")", "item"}},
		{"line breaks", "a\nb\r\nc", []string{"a", Newline, "b", Newline, "c"}},
		{"guillemets", "«Газпром»", []string{"«", "Газпром", "»"}},
		{"tabs dropped", "a\t\tb", []string{"a", "b"}},
		{"empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.input))
		})
	}
}

func TestUntokenize(t *testing.T) {
	assert.Equal(t, "Hello, world!", Untokenize([]string{"Hello", ",", "world", "!"}))
	assert.Equal(t, "see (a) now", Untokenize([]string{"see", "(", "a", ")", "now"}))
	assert.Equal(t, "one\ntwo", Untokenize([]string{"one", Newline, "two"}))
	assert.Equal(t, "", Untokenize(nil))
}

func TestLower(t *testing.T) {
	in := []string{"ABC", "Статья"}
	assert.Equal(t, []string{"abc", "статья"}, Lower(in))
	assert.Equal(t, "ABC", in[0])
}

func TestFindTokens(t *testing.T) {
	tokens := []string{"a", Newline, "b", "c", Newline, "d"}

	assert.Equal(t, 1, FindTokenBefore(tokens, 3, Newline, -1))
	assert.Equal(t, -1, FindTokenBefore(tokens, 1, Newline, -1))
	assert.Equal(t, 4, FindTokenAfter(tokens, 2, Newline, -1))
	assert.Equal(t, 99, FindTokenAfter(tokens, 5, Newline, 99))

	start, end := SentenceBoundsAtIndex(tokens, 3)
	assert.Equal(t, 2, start)
	assert.Equal(t, 4, end)

	start, end = SentenceBoundsAtIndex(tokens, 5)
	assert.Equal(t, 5, start)
	assert.Equal(t, 6, end)
}

func TestSplitByToken(t *testing.T) {
	got := SplitByToken([]string{"a", "b", Newline, "c", Newline}, Newline)
	assert.Equal(t, [][]string{{"a", "b"}, {"c"}, nil}, got)
}

func TestFindNEREnd(t *testing.T) {
	tokens := []string{"«", "Рога", "и", "копыта", "»", "далее"}
	assert.Equal(t, 4, FindNEREnd(tokens, 1, 20))
	assert.Equal(t, 3, FindNEREnd([]string{"a", "b", "c"}, 1, 2))
}

func TestHotMarkers(t *testing.T) {
	tokens := []string{"«", "x", "»", ",", "y"}

	opening, closing := HotQuotes(tokens)
	assert.Equal(t, []float64{1, 0, 0, 0, 0}, opening)
	assert.Equal(t, []float64{0, 0, 1, 0, 0}, closing)

	assert.Equal(t, []float64{1, 0, 1, 1, 0}, HotPunkt(tokens))
}

func TestToFloat(t *testing.T) {
	v, err := ToFloat("1 250,50")
	require.NoError(t, err)
	assert.InDelta(t, 1250.5, v, 1e-9)

	_, err = ToFloat("двадцать")
	assert.ErrorIs(t, err, ErrNotANumber)
}

func TestRemoveEmptyLines(t *testing.T) {
	assert.Equal(t, "a b\nc", RemoveEmptyLines("  a\tb \n\n   \nc\n"))
}

func TestAcronym(t *testing.T) {
	assert.Equal(t, "ООО", Acronym("Общество с ограниченной ответственностью"))
	assert.Equal(t, "", Acronym(""))
}

func TestWordTokenizer(t *testing.T) {
	assert.Equal(t, []string{"x", "y"}, WordTokenizer.Tokenize("x y"))
}
