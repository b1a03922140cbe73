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

import "math"

type pairFunc func(a, b []float32) float64

// Centroid returns the column-wise mean of m.
func Centroid(m [][]float32) []float64 {
	out := columnSum(m)
	n := float64(len(m))
	for i := range out {
		out[i] /= n
	}
	return out
}

func columnSum(m [][]float32) []float64 {
	if len(m) == 0 {
		return nil
	}
	out := make([]float64, len(m[0]))
	for _, row := range m {
		for i, x := range row {
			out[i] += float64(x)
		}
	}
	return out
}

func widen(v []float32) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = float64(x)
	}
	return out
}

func cosine(a, b []float32) float64 {
	return cosine64(widen(a), widen(b))
}

func euclidean(a, b []float32) float64 {
	return euclidean64(widen(a), widen(b))
}

func correlation(a, b []float32) float64 {
	return correlation64(widen(a), widen(b))
}

// cosine64 is 1 - cos(a, b). A zero vector is treated as orthogonal to everything.
func cosine64(a, b []float64) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 1
	}
	return clampDistance(1 - dot/math.Sqrt(na*nb))
}

func euclidean64(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

// correlation64 is the cosine distance of the mean-centered vectors.
func correlation64(a, b []float64) float64 {
	ma, mb := mean(a), mean(b)
	ca := make([]float64, len(a))
	cb := make([]float64, len(b))
	for i := range a {
		ca[i] = a[i] - ma
		cb[i] = b[i] - mb
	}
	return cosine64(ca, cb)
}

func mean(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	var s float64
	for _, v := range x {
		s += v
	}
	return s / float64(len(x))
}

// clampDistance removes tiny negative values left by rounding.
func clampDistance(d float64) float64 {
	if d < 0 {
		return 0
	}
	return d
}

// NormalizeVector normalizes a vector to unit length.
// Returns a new vector. If the input is a zero vector, returns a zero vector.
func NormalizeVector(v []float32) []float32 {
	if len(v) == 0 {
		return v
	}

	var magnitude float64
	for _, val := range v {
		magnitude += float64(val) * float64(val)
	}
	magnitude = math.Sqrt(magnitude)

	result := make([]float32, len(v))
	if magnitude == 0 {
		return result
	}
	for i, val := range v {
		result[i] = float32(float64(val) / magnitude)
	}
	return result
}
