package signal

// Relu zeroes every value at or below threshold.
func Relu(x []float64, threshold float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		if v > threshold {
			out[i] = v
		}
	}
	return out
}

// CutAbove clamps values above threshold to threshold.
// Values below it pass through, so the curve stays continuous at the ceiling.
func CutAbove(x []float64, threshold float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		if v > threshold {
			out[i] = threshold
		} else {
			out[i] = v
		}
	}
	return out
}

// Momentum is a running maximum that decays by the given factor at every step.
// A peak therefore casts a fading shadow over the positions that follow it.
func Momentum(x []float64, decay float64) []float64 {
	out := make([]float64, len(x))
	var m float64
	for i, v := range x {
		if v > m {
			m = v
		}
		out[i] = m
		m *= decay
	}
	return out
}

// MomentumSum accumulates x with exponential decay.
func MomentumSum(x []float64, decay float64) []float64 {
	out := make([]float64, len(x))
	var m float64
	for i, v := range x {
		m += v
		out[i] = m
		m *= decay
	}
	return out
}

// Echo holds the last value that exceeded trigger until the next value
// exceeding trigger replaces it. Positions before the first trigger are 0.
func Echo(x []float64, trigger float64) []float64 {
	out := make([]float64, len(x))
	var held float64
	for i, v := range x {
		if v > trigger {
			held = v
		}
		out[i] = held
	}
	return out
}
