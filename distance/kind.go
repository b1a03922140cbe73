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
	"strings"
)

// Kind selects a set-to-set distance strategy.
type Kind int

const (
	// MeanCosine is the cosine distance between the two centroids.
	MeanCosine Kind = iota
	// MeanEuclidean is the euclidean distance between the two centroids.
	MeanEuclidean
	// SumCosine is the cosine distance between the two column sums.
	SumCosine
	// CosineMinMean is the mean nearest-neighbour cosine distance of the shorter set.
	CosineMinMean
	// EuclideanMinMean is the mean nearest-neighbour euclidean distance of the shorter set.
	EuclideanMinMean
	// CorrelationMinMean is the mean nearest-neighbour correlation distance of the shorter set.
	CorrelationMinMean
	// FrechetCosineDirected sums, for every vector of v, its nearest cosine distance in u.
	FrechetCosineDirected
	// FrechetCosineUndirected averages FrechetCosineDirected in both directions.
	FrechetCosineUndirected
	// FrechetEuclideanDirected sums, for every vector of v, its nearest euclidean distance in u.
	FrechetEuclideanDirected
	// FrechetEuclideanUndirected averages FrechetEuclideanDirected in both directions.
	FrechetEuclideanUndirected
	// HausdorffCosineDirected is the largest nearest-neighbour cosine distance from v to u.
	HausdorffCosineDirected
	// HausdorffCosineUndirected averages HausdorffCosineDirected in both directions.
	HausdorffCosineUndirected
	// Hausdorff is the symmetric euclidean Hausdorff distance scaled down by 40.
	Hausdorff
	// MeanCosineFrechet is FrechetCosineUndirected plus MeanCosine.
	MeanCosineFrechet
)

var kindNames = [...]string{
	MeanCosine:                 "mean_cosine",
	MeanEuclidean:              "mean_euclidean",
	SumCosine:                  "sum_cosine",
	CosineMinMean:              "cosine_min_mean",
	EuclideanMinMean:           "euclidean_min_mean",
	CorrelationMinMean:         "correlation_min_mean",
	FrechetCosineDirected:      "frechet_cosine_directed",
	FrechetCosineUndirected:    "frechet_cosine_undirected",
	FrechetEuclideanDirected:   "frechet_euclidean_directed",
	FrechetEuclideanUndirected: "frechet_euclidean_undirected",
	HausdorffCosineDirected:    "hausdorff_cosine_directed",
	HausdorffCosineUndirected:  "hausdorff_cosine_undirected",
	Hausdorff:                  "hausdorff",
	MeanCosineFrechet:          "mean_cosine_frechet",
}

// Kinds returns every supported strategy in declaration order.
func Kinds() []Kind {
	out := make([]Kind, len(kindNames))
	for i := range out {
		out[i] = Kind(i)
	}
	return out
}

// Valid reports whether k is a known strategy.
func (k Kind) Valid() bool {
	return k >= 0 && int(k) < len(kindNames)
}

// Symmetric reports whether d(u, v) == d(v, u) for this strategy.
// The min-mean kinds pick u when both sets have the same length, so they
// are not symmetric.
func (k Kind) Symmetric() bool {
	switch k {
	case FrechetCosineDirected, FrechetEuclideanDirected, HausdorffCosineDirected,
		CosineMinMean, EuclideanMinMean, CorrelationMinMean:
		return false
	}
	return k.Valid()
}

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind resolves a strategy by its String name.
// Dashes are accepted in place of underscores.
func ParseKind(name string) (Kind, error) {
	name = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
	for i, n := range kindNames {
		if n == name {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	parsed, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
