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


package pattern

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/poiesic/landmark/signal"
)

// Match is the result of searching a matcher in a text.
type Match struct {
	// Index is the start position with the smallest distance.
	Index int
	// Distance is the distance at Index.
	Distance float64
	// Distances has one value per token position, padding included.
	Distances []float64
	// Confidence is std / |best - mean| over the searchable range. Low values
	// mean a sharp minimum, high values a flat landscape.
	Confidence float64
	// Degenerate is set when the best distance equals the mean, so no
	// confidence can be computed.
	Degenerate bool
}

type logged interface {
	log() *slog.Logger
}

// Find computes the distance vector of m over text and picks the best
// position outside the last rightPadding positions.
func Find(m Matcher, text [][]float32, rightPadding int) (Match, error) {
	d, err := m.Distances(text)
	if err != nil {
		return Match{}, err
	}
	if rightPadding < 0 || rightPadding >= len(d) {
		return Match{}, fmt.Errorf("%w: %d of %d positions", ErrInvalidPadding, rightPadding, len(d))
	}

	searchable := d[:len(d)-rightPadding]
	best := signal.MinIndex(searchable)
	if best < 0 {
		best = 0
	}

	match := Match{
		Index:     best,
		Distance:  d[best],
		Distances: d,
	}

	deviation := math.Abs(match.Distance - signal.Mean(searchable))
	if deviation == 0 || math.IsNaN(deviation) {
		match.Degenerate = true
		loggerOf(m).Warn("degenerate match, best distance equals the mean",
			"matcher", m.Name(),
			"positions", len(searchable))
		return match, nil
	}
	match.Confidence = signal.Std(searchable) / deviation
	return match, nil
}

func loggerOf(m Matcher) *slog.Logger {
	if l, ok := m.(logged); ok && l.log() != nil {
		return l.log()
	}
	return defaultLogger()
}
