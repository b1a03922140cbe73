package landmark

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/poiesic/landmark/ai/mock"
	"github.com/poiesic/landmark/pattern"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var agreement = strings.Join([]string{
	"1. Definitions",
	"The words used here mean what they say.",
	"2. Payment Terms",
	"The buyer pays within thirty days.",
	"3. Governing Law",
	"This agreement follows the law of Ruritania.",
}, "\n")

const patternsYAML = `
patterns:
  - name: headline.payment
    text: payment terms
  - name: headline.law
    text: governing law
`

func newTestAnalyzer(t *testing.T, opts ...AnalyzerOption) (*Analyzer, *mock.MockProvider) {
	t.Helper()
	defs, err := pattern.LoadDefinitions(strings.NewReader(patternsYAML))
	require.NoError(t, err)

	provider := mock.NewMockProvider()
	opts = append([]AnalyzerOption{
		WithProvider(provider),
		WithDefinitions(defs),
		WithPoolSize(2),
	}, opts...)
	a, err := NewAnalyzer(opts...)
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })
	return a, provider
}

func TestNewAnalyzer(t *testing.T) {
	t.Run("with cache directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "cache")
		a, err := NewAnalyzer(WithCache(dir))
		require.NoError(t, err)
		require.NotNil(t, a)
		defer a.Close()

		assert.NotNil(t, a.Cache())
		assert.NotNil(t, a.backend)
		assert.NotNil(t, a.Registry())
	})

	t.Run("without cache", func(t *testing.T) {
		a, err := NewAnalyzer()
		require.NoError(t, err)
		defer a.Close()

		assert.Nil(t, a.Cache())
	})

	t.Run("error with invalid cache path", func(t *testing.T) {
		tmpFile := filepath.Join(t.TempDir(), "not_a_dir")
		require.NoError(t, os.WriteFile(tmpFile, []byte("test"), 0644))

		a, err := NewAnalyzer(WithCache(tmpFile))
		assert.Error(t, err)
		assert.Nil(t, a)
	})

	t.Run("error with broken definitions", func(t *testing.T) {
		defs := &pattern.Definitions{
			Groups: []pattern.GroupDefinition{{Name: "g", Members: []string{"missing"}}},
		}
		a, err := NewAnalyzer(WithProvider(mock.NewMockProvider()), WithDefinitions(defs))
		assert.ErrorIs(t, err, pattern.ErrUnknownPattern)
		assert.Nil(t, a)
	})
}

func TestAnalyzer_Close(t *testing.T) {
	a, err := NewAnalyzer(WithCache(t.TempDir()))
	require.NoError(t, err)

	assert.NoError(t, a.Close())
	assert.NoError(t, a.Close())

	_, err = a.Analyze(context.Background(), agreement)
	assert.ErrorIs(t, err, ErrAnalyzerClosed)
}

func TestAnalyzer_Outline(t *testing.T) {
	a, provider := newTestAnalyzer(t)

	doc := a.Outline(agreement)
	require.Len(t, doc.Outline, 6)
	assert.Equal(t, []int{0, 2, 4}, doc.Outline.Numbered())
	assert.Zero(t, provider.GetMockEmbedder().CallCount())
}

func TestAnalyzer_Analyze(t *testing.T) {
	a, _ := newTestAnalyzer(t)

	an, err := a.Analyze(context.Background(), agreement)
	require.NoError(t, err)
	assert.Len(t, an.Embeddings, len(an.Document.Tokens))
}

func TestAnalyzer_AnalyzeAll(t *testing.T) {
	a, _ := newTestAnalyzer(t)
	texts := []string{agreement, "Only one line", "1. A\n2. B"}

	all, err := a.AnalyzeAll(context.Background(), texts)
	require.NoError(t, err)
	require.Len(t, all, len(texts))
	for i, an := range all {
		assert.Len(t, an.Embeddings, len(an.Document.Tokens), "text %d", i)
	}
	assert.Equal(t, "only", all[1].Document.Tokens[0])
}

func TestAnalyzer_Find(t *testing.T) {
	ctx := context.Background()
	a, _ := newTestAnalyzer(t)

	an, err := a.Analyze(ctx, agreement)
	require.NoError(t, err)

	matches, err := a.Find(ctx, an, 0)
	require.NoError(t, err)
	require.Len(t, matches, 2)

	law := matches["headline.law"]
	assert.Equal(t, "governing", an.Document.Tokens[law.Index])
	assert.InDelta(t, 0.0, law.Distance, 1e-6)
	assert.True(t, a.Registry().Embedded())

	t.Run("named subset", func(t *testing.T) {
		matches, err := a.Find(ctx, an, 0, "headline.payment")
		require.NoError(t, err)
		require.Len(t, matches, 1)
		assert.Equal(t, "payment", an.Document.Tokens[matches["headline.payment"].Index])
	})

	t.Run("unknown name", func(t *testing.T) {
		_, err := a.Find(ctx, an, 0, "nope")
		assert.ErrorIs(t, err, pattern.ErrUnknownPattern)
	})
}

func TestAnalyzer_Sections(t *testing.T) {
	ctx := context.Background()
	a, _ := newTestAnalyzer(t)
	assert.Equal(t, []string{"law", "payment"}, a.SectionTypes())

	an, err := a.Analyze(ctx, agreement)
	require.NoError(t, err)

	sections, err := a.Sections(ctx, an)
	require.NoError(t, err)
	require.Len(t, sections, 2)
	assert.Equal(t, "payment", sections[0].Type)
	assert.Equal(t, "2. Payment Terms", sections[0].Title(an.Document))
	assert.Equal(t, "law", sections[1].Type)
	assert.Equal(t, "3. Governing Law", sections[1].Title(an.Document))
}

func TestAnalyzer_PrepareWithoutPatterns(t *testing.T) {
	a, err := NewAnalyzer(WithProvider(mock.NewMockProvider()))
	require.NoError(t, err)
	defer a.Close()

	assert.ErrorIs(t, a.Prepare(context.Background()), ErrNoPatterns)
}

func TestAnalyzer_PrepareEmbedsOnce(t *testing.T) {
	ctx := context.Background()
	a, provider := newTestAnalyzer(t)

	require.NoError(t, a.Prepare(ctx))
	calls := provider.GetMockEmbedder().CallCount()
	require.NoError(t, a.Prepare(ctx))
	assert.Equal(t, calls, provider.GetMockEmbedder().CallCount())
}
