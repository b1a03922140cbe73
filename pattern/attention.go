package pattern

import (
	"fmt"
	"slices"
	"strings"

	"github.com/poiesic/landmark/core"
	"github.com/poiesic/landmark/signal"
)

// AttentionVector turns the distances of m over text into similarities
// (1 - distance), so that better matches get higher attention.
func AttentionVector(m Matcher, text [][]float32) ([]float64, error) {
	d, err := m.Distances(text)
	if err != nil {
		return nil, err
	}
	for i := range d {
		d[i] = 1 - d[i]
	}
	return d, nil
}

// MetaPattern builds a single-vector pattern from the token embedding at
// the attention peak. It returns the pattern, the peak attention value and
// the peak position.
func MetaPattern(name string, attention []float64, text [][]float32, opts ...PatternOption) (*Pattern, float64, int, error) {
	if len(attention) != len(text) {
		return nil, 0, 0, fmt.Errorf("%w: attention has %d positions, text %d", core.ErrDimensionMismatch, len(attention), len(text))
	}
	best := signal.ArgMax(attention)
	if best < 0 {
		return nil, 0, 0, ErrEmptyAttention
	}

	p, err := FromEmbeddings(name, [][]float32{slices.Clone(text[best])}, opts...)
	if err != nil {
		return nil, 0, 0, err
	}
	return p, attention[best], best, nil
}

// ImproveAttention sharpens an attention vector: the token at its peak
// becomes a meta pattern, whose rectified attention over the whole text is
// blended with the original vector. mix = 1 keeps only the meta pattern's
// attention. The peak position is returned alongside.
func ImproveAttention(text [][]float32, attention []float64, reluThreshold, mix float64) ([]float64, int, error) {
	meta, _, best, err := MetaPattern("meta", attention, text)
	if err != nil {
		return nil, 0, err
	}
	metaAttention, err := AttentionVector(meta, text)
	if err != nil {
		return nil, 0, err
	}
	metaAttention = signal.Relu(metaAttention, reluThreshold)

	for i := range metaAttention {
		metaAttention[i] = metaAttention[i]*mix + attention[i]*(1-mix)
	}
	return metaAttention, best, nil
}

// MaxByPrefix returns the elementwise maximum of the vectors whose names
// start with prefix, floored at 0. Returns nil when no name matches.
func MaxByPrefix(vectors map[string][]float64, prefix string) []float64 {
	var out []float64
	for _, name := range sortedKeys(vectors) {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		v := vectors[name]
		if out == nil {
			out = make([]float64, len(v))
		}
		for i := range out {
			out[i] = max(out[i], v[i])
		}
	}
	return out
}

// RectifiedSumByPrefix sums the vectors whose names start with prefix after
// zeroing values at or below threshold. It also returns how many vectors
// contributed.
func RectifiedSumByPrefix(vectors map[string][]float64, prefix string, threshold float64) ([]float64, int) {
	var out []float64
	count := 0
	for _, name := range sortedKeys(vectors) {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		v := signal.Relu(vectors[name], threshold)
		if out == nil {
			out = make([]float64, len(v))
		}
		for i := range out {
			out[i] += v[i]
		}
		count++
	}
	return out, count
}

func sortedKeys(m map[string][]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
