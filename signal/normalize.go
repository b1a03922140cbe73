package signal

import "math"

// Normalize linearly maps x onto [lo, hi].
// A constant signal has no range to map and yields lo for every element.
func Normalize(x []float64, lo, hi float64) []float64 {
	out := make([]float64, len(x))
	if len(x) == 0 {
		return out
	}

	minV, maxV := NanMin(x), NanMax(x)
	span := maxV - minV
	if span == 0 || math.IsInf(span, 0) || math.IsNaN(span) {
		for i := range out {
			out[i] = lo
		}
		return out
	}

	mid := (maxV + minV) / 2
	outMid := (hi + lo) / 2
	for i, v := range x {
		out[i] = (v-mid)/span*(hi-lo) + outMid
	}
	return out
}

// Softmax normalizes x onto [0, 1] and divides by its length so the values
// can be compared across signals of different size.
func Softmax(x []float64) []float64 {
	out := Normalize(x, 0, 1)
	n := float64(len(out))
	for i := range out {
		out[i] /= n
	}
	return out
}

// EstimateThreshold returns 70% of the signal maximum, but never less than minThreshold.
func EstimateThreshold(x []float64, minThreshold float64) float64 {
	if len(x) == 0 {
		return minThreshold
	}
	return math.Max(minThreshold, NanMax(x)*0.7)
}
