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


package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/landmark/ai"
	"github.com/poiesic/landmark/pattern"
	"github.com/poiesic/landmark/structure"
)

// Runner executes independent tasks on a bounded worker pool.
type Runner struct {
	pool           *ants.Pool
	progress       io.Writer
	reportInterval int
	logger         *slog.Logger
}

// Option configures a Runner.
type Option func(*Runner) error

// WithPoolSize sets the worker pool size.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(r *Runner) error {
		if size < 1 {
			size = 1
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		if r.pool != nil {
			r.pool.Release()
		}
		r.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger.With("component", "batch")
		return nil
	}
}

// WithProgress reports per-document progress to w every interval documents.
func WithProgress(w io.Writer, interval int) Option {
	return func(r *Runner) error {
		if interval < 1 {
			interval = 1
		}
		r.progress = w
		r.reportInterval = interval
		return nil
	}
}

// NewRunner creates a Runner with its own pool.
func NewRunner(opts ...Option) (*Runner, error) {
	size := runtime.NumCPU() / 2
	if size < 1 {
		size = 1
	}
	pool, err := ants.NewPool(size)
	if err != nil {
		return nil, err
	}

	r := &Runner{
		pool:   pool,
		logger: slog.Default().With("component", "batch"),
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			r.Release()
			return nil, err
		}
	}
	return r, nil
}

// Size returns the pool capacity.
func (r *Runner) Size() int {
	return r.pool.Cap()
}

// Release releases the worker pool.
// The runner should not be used after calling Release.
func (r *Runner) Release() {
	if r.pool != nil {
		r.pool.Release()
	}
}

// DetectAll infers the structure of every text. Documents are returned in input order.
func (r *Runner) DetectAll(ctx context.Context, texts []string, d *structure.Detector) ([]*structure.Document, error) {
	if d == nil {
		return nil, ErrDetectorRequired
	}
	docs := make([]*structure.Document, len(texts))
	err := r.run(ctx, len(texts), r.tracker(len(texts)), func(i int) error {
		docs[i] = d.Detect(texts[i])
		return nil
	})
	if err != nil {
		return nil, err
	}
	return docs, nil
}

// EmbedAll embeds the token stream of every document.
func (r *Runner) EmbedAll(ctx context.Context, docs []*structure.Document, e ai.TokenEmbedder) ([][][]float32, error) {
	if e == nil {
		return nil, ErrEmbedderRequired
	}
	out := make([][][]float32, len(docs))
	err := r.run(ctx, len(docs), r.tracker(len(docs)), func(i int) error {
		rows, err := e.EmbedTokens(ctx, docs[i].Tokens)
		if err != nil {
			return fmt.Errorf("document %d: %w", i, err)
		}
		out[i] = rows
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DistancesAll computes every matcher's distance vector against text.
// The result is keyed by matcher name.
func (r *Runner) DistancesAll(ctx context.Context, matchers []pattern.Matcher, text [][]float32) (map[string][]float64, error) {
	vectors := make([][]float64, len(matchers))
	err := r.run(ctx, len(matchers), nil, func(i int) error {
		d, err := matchers[i].Distances(text)
		if err != nil {
			return fmt.Errorf("%s: %w", matchers[i].Name(), err)
		}
		vectors[i] = d
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := make(map[string][]float64, len(matchers))
	for i, m := range matchers {
		out[m.Name()] = vectors[i]
	}
	return out, nil
}

// FindAll runs pattern.Find for every matcher against text.
func (r *Runner) FindAll(ctx context.Context, matchers []pattern.Matcher, text [][]float32, rightPadding int) (map[string]pattern.Match, error) {
	matches := make([]pattern.Match, len(matchers))
	err := r.run(ctx, len(matchers), nil, func(i int) error {
		m, err := pattern.Find(matchers[i], text, rightPadding)
		if err != nil {
			return fmt.Errorf("%s: %w", matchers[i].Name(), err)
		}
		matches[i] = m
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := make(map[string]pattern.Match, len(matchers))
	for i, m := range matchers {
		out[m.Name()] = matches[i]
	}
	return out, nil
}

func (r *Runner) tracker(total int) *ProgressTracker {
	if r.progress == nil || total == 0 {
		return nil
	}
	return NewProgressTracker(r.progress, total, r.reportInterval)
}

// run calls task(i) for i in [0, n) on the pool and waits for all of them.
// Tasks not yet started when ctx is done, or after a task fails, are skipped.
func (r *Runner) run(parent context.Context, n int, progress *ProgressTracker, task func(i int) error) error {
	if r.pool.IsClosed() {
		return ErrRunnerReleased
	}
	if n == 0 {
		return parent.Err()
	}

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	if progress != nil {
		progress.Start()
	}

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	fail := func(err error) {
		mu.Lock()
		errs = append(errs, err)
		mu.Unlock()
		cancel()
	}

	for i := 0; i < n; i++ {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		err := r.pool.Submit(func() {
			defer wg.Done()
			if ctx.Err() != nil {
				return
			}
			if err := task(i); err != nil {
				fail(err)
				return
			}
			if progress != nil {
				progress.Increment(1)
			}
		})
		if err != nil {
			wg.Done()
			if errors.Is(err, ants.ErrPoolClosed) {
				err = ErrRunnerReleased
			}
			fail(err)
			break
		}
	}
	wg.Wait()

	if len(errs) > 0 {
		r.logger.Error("batch failed", "tasks", n, "failures", len(errs), "err", errs[0])
		return errors.Join(errs...)
	}
	if err := parent.Err(); err != nil {
		return err
	}
	if progress != nil {
		progress.Finish()
	}
	r.logger.Debug("batch complete", "tasks", n)
	return nil
}
