package signal

import "math"

// Mean returns the arithmetic mean of x, or NaN for an empty signal.
func Mean(x []float64) float64 {
	if len(x) == 0 {
		return math.NaN()
	}
	var sum float64
	for _, v := range x {
		sum += v
	}
	return sum / float64(len(x))
}

// Std returns the population standard deviation of x.
func Std(x []float64) float64 {
	if len(x) == 0 {
		return math.NaN()
	}
	mean := Mean(x)
	var acc float64
	for _, v := range x {
		d := v - mean
		acc += d * d
	}
	return math.Sqrt(acc / float64(len(x)))
}

// NanMin returns the minimum of x ignoring NaN; +Inf if nothing remains.
func NanMin(x []float64) float64 {
	out := math.Inf(1)
	for _, v := range x {
		if v < out {
			out = v
		}
	}
	return out
}

// NanMax returns the maximum of x ignoring NaN; -Inf if nothing remains.
func NanMax(x []float64) float64 {
	out := math.Inf(-1)
	for _, v := range x {
		if v > out {
			out = v
		}
	}
	return out
}

// NanMean returns the mean of the non-NaN values of x and how many there were.
func NanMean(x []float64) (float64, int) {
	var sum float64
	var n int
	for _, v := range x {
		if math.IsNaN(v) {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return math.NaN(), 0
	}
	return sum / float64(n), n
}
