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


package distance

import (
	"fmt"
	"math"

	"github.com/poiesic/landmark/core"
)

// Func computes the distance between two validated vector sets.
type Func func(u, v [][]float32) float64

var funcs = [...]Func{
	MeanCosine:                 meanCosine,
	MeanEuclidean:              meanEuclidean,
	SumCosine:                  sumCosine,
	CosineMinMean:              minMean(cosine),
	EuclideanMinMean:           minMean(euclidean),
	CorrelationMinMean:         minMean(correlation),
	FrechetCosineDirected:      frechetDirected(cosine),
	FrechetCosineUndirected:    undirected(frechetDirected(cosine)),
	FrechetEuclideanDirected:   frechetDirected(euclidean),
	FrechetEuclideanUndirected: undirected(frechetDirected(euclidean)),
	HausdorffCosineDirected:    hausdorffDirected(cosine),
	HausdorffCosineUndirected:  undirected(hausdorffDirected(cosine)),
	Hausdorff:                  hausdorff,
	MeanCosineFrechet:          meanCosineFrechet,
}

// Func returns the implementation of k, or nil for an unknown kind.
// The returned function does not validate its arguments.
func (k Kind) Func() Func {
	if !k.Valid() {
		return nil
	}
	return funcs[k]
}

// Compute validates u and v and returns their distance under kind.
// Both sets must be non-empty rectangular matrices of the same width.
func Compute(kind Kind, u, v [][]float32) (float64, error) {
	f := kind.Func()
	if f == nil {
		return 0, fmt.Errorf("%w: %d", ErrUnknownKind, int(kind))
	}
	du, err := core.ValidateMatrix(u)
	if err != nil {
		return 0, fmt.Errorf("first set: %w", err)
	}
	dv, err := core.ValidateMatrix(v)
	if err != nil {
		return 0, fmt.Errorf("second set: %w", err)
	}
	if du != dv {
		return 0, fmt.Errorf("%w: %d != %d", core.ErrDimensionMismatch, du, dv)
	}
	return f(u, v), nil
}

func meanCosine(u, v [][]float32) float64 {
	return cosine64(Centroid(u), Centroid(v))
}

func meanEuclidean(u, v [][]float32) float64 {
	return euclidean64(Centroid(u), Centroid(v))
}

func sumCosine(u, v [][]float32) float64 {
	return cosine64(columnSum(u), columnSum(v))
}

func meanCosineFrechet(u, v [][]float32) float64 {
	return undirected(frechetDirected(cosine))(u, v) + meanCosine(u, v)
}

func hausdorff(u, v [][]float32) float64 {
	d := hausdorffDirected(euclidean)
	return math.Max(d(u, v), d(v, u)) / 40
}

// minMean averages, over every vector of the shorter set, the distance to its
// nearest neighbour in the longer set. With equal lengths u is the shorter.
func minMean(pair pairFunc) Func {
	return func(u, v [][]float32) float64 {
		short, long := u, v
		if len(u) > len(v) {
			short, long = v, u
		}
		var sum float64
		for _, a := range short {
			sum += nearest(pair, a, long)
		}
		return sum / float64(len(short))
	}
}

// frechetDirected sums, over every vector of v, the distance to its nearest neighbour in u.
func frechetDirected(pair pairFunc) Func {
	return func(u, v [][]float32) float64 {
		var sum float64
		for _, b := range v {
			sum += nearest(pair, b, u)
		}
		return sum
	}
}

// hausdorffDirected is the largest nearest-neighbour distance from v to u.
func hausdorffDirected(pair pairFunc) Func {
	return func(u, v [][]float32) float64 {
		var worst float64
		for _, b := range v {
			worst = math.Max(worst, nearest(pair, b, u))
		}
		return worst
	}
}

func undirected(directed Func) Func {
	return func(u, v [][]float32) float64 {
		return (directed(u, v) + directed(v, u)) / 2
	}
}

func nearest(pair pairFunc, a []float32, set [][]float32) float64 {
	best := math.Inf(1)
	for _, b := range set {
		if d := pair(a, b); d < best {
			best = d
		}
	}
	return best
}
