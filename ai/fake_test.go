package ai

import (
	"context"
	"strings"
	"sync"
)

// recordingEmbedder maps each text to [len(text), words, 1] and remembers batches.
type recordingEmbedder struct {
	mu      sync.Mutex
	batches [][]string
	failFor int
	err     error
	short   bool
}

func (r *recordingEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	vs, err := r.EmbedTexts(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vs[0], nil
}

func (r *recordingEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.batches = append(r.batches, append([]string(nil), texts...))
	if r.failFor > 0 {
		r.failFor--
		return nil, r.err
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = []float32{float32(len(t)), float32(len(strings.Fields(t))), 1}
	}
	if r.short {
		out = out[:len(out)-1]
	}
	return out, nil
}

func (r *recordingEmbedder) sent() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []string
	for _, b := range r.batches {
		all = append(all, b...)
	}
	return all
}
