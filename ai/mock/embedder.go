package mock

import (
	"context"
	"hash/fnv"
	"strings"
	"sync"

	"github.com/poiesic/landmark/ai"
	"github.com/poiesic/landmark/distance"
)

// DefaultDimension is the vector size produced by NewMockEmbedder.
const DefaultDimension = 64

// MockEmbedder is a test double for ai.Embedder.
// It allows custom behavior injection via function fields.
// It is safe for concurrent use as long as the function fields are not
// reassigned while calls are in flight.
type MockEmbedder struct {
	// EmbedTextFunc is called by EmbedText if set.
	// If nil, uses default deterministic behavior.
	EmbedTextFunc func(ctx context.Context, text string) ([]float32, error)

	// EmbedTextsFunc is called by EmbedTexts if set.
	// If nil, uses default deterministic behavior.
	EmbedTextsFunc func(ctx context.Context, texts []string) ([][]float32, error)

	dim int

	mu        sync.Mutex
	callCount int
	textCount int
}

var _ ai.Embedder = (*MockEmbedder)(nil)

// NewMockEmbedder creates a mock embedder with default deterministic behavior.
func NewMockEmbedder() *MockEmbedder {
	return NewMockEmbedderWithDimension(DefaultDimension)
}

// NewMockEmbedderWithDimension creates a mock embedder producing dim-sized vectors.
func NewMockEmbedderWithDimension(dim int) *MockEmbedder {
	if dim < 1 {
		dim = DefaultDimension
	}
	return &MockEmbedder{dim: dim}
}

// EmbedText generates a deterministic embedding for text.
func (m *MockEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	m.record(1)

	if m.EmbedTextFunc != nil {
		return m.EmbedTextFunc(ctx, text)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return BagOfWords(text, m.dim), nil
}

// EmbedTexts generates deterministic embeddings for multiple texts.
func (m *MockEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	m.record(len(texts))

	if m.EmbedTextsFunc != nil {
		return m.EmbedTextsFunc(ctx, texts)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	embeddings := make([][]float32, len(texts))
	for i, text := range texts {
		embeddings[i] = BagOfWords(text, m.dim)
	}
	return embeddings, nil
}

func (m *MockEmbedder) record(texts int) {
	m.mu.Lock()
	m.callCount++
	m.textCount += texts
	m.mu.Unlock()
}

// CallCount returns the number of times any method was called.
func (m *MockEmbedder) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// TextCount returns the total number of texts embedded across all calls.
func (m *MockEmbedder) TextCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.textCount
}

// Dimension returns the vector size.
func (m *MockEmbedder) Dimension() int {
	return m.dim
}

// Reset clears the counters and injected behavior.
func (m *MockEmbedder) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
	m.textCount = 0
	m.EmbedTextFunc = nil
	m.EmbedTextsFunc = nil
}

// BagOfWords embeds text as the normalized sum of per-word hash vectors.
// Words are split on whitespace and lower-cased.
func BagOfWords(text string, dim int) []float32 {
	sum := make([]float32, dim)
	for _, w := range strings.Fields(strings.ToLower(text)) {
		for i, v := range WordVector(w, dim) {
			sum[i] += v
		}
	}
	return distance.NormalizeVector(sum)
}

// WordVector returns the fixed unit vector for a single word.
func WordVector(word string, dim int) []float32 {
	h := fnv.New32a()
	h.Write([]byte(word))
	seed := h.Sum32()

	vector := make([]float32, dim)
	for i := range vector {
		seed = seed*1664525 + 1013904223 // LCG constants
		vector[i] = float32(seed%2001)/1000.0 - 1.0
	}
	return distance.NormalizeVector(vector)
}
