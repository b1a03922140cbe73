package signal

import (
	"fmt"
	"math"
	"strings"
)

// Window selects the weighting used by Smooth.
type Window int

const (
	// Hanning is a raised-cosine window with zero endpoints.
	Hanning Window = iota
	// Flat gives a plain moving average.
	Flat
	// Hamming is a raised cosine with non-zero endpoints.
	Hamming
	// Bartlett is a triangular window.
	Bartlett
	// Blackman is a three-term cosine window.
	Blackman
)

var windowNames = map[Window]string{
	Hanning:  "hanning",
	Flat:     "flat",
	Hamming:  "hamming",
	Bartlett: "bartlett",
	Blackman: "blackman",
}

// String returns the lowercase window name.
func (w Window) String() string {
	if name, ok := windowNames[w]; ok {
		return name
	}
	return fmt.Sprintf("window(%d)", int(w))
}

// ParseWindow resolves a window by name.
func ParseWindow(name string) (Window, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for w, n := range windowNames {
		if n == name {
			return w, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownWindow, name)
}

// weights returns the n window coefficients.
func (w Window) weights(n int) []float64 {
	out := make([]float64, n)
	m := float64(n - 1)
	for i := range out {
		k := float64(i)
		switch w {
		case Flat:
			out[i] = 1
		case Hamming:
			out[i] = 0.54 - 0.46*math.Cos(2*math.Pi*k/m)
		case Bartlett:
			out[i] = 2 / m * (m/2 - math.Abs(k-m/2))
		case Blackman:
			out[i] = 0.42 - 0.5*math.Cos(2*math.Pi*k/m) + 0.08*math.Cos(4*math.Pi*k/m)
		default:
			out[i] = 0.5 - 0.5*math.Cos(2*math.Pi*k/m)
		}
	}
	return out
}

// Smooth convolves x with a normalized window of length windowLen.
//
// Both ends of the signal are extended with reflected copies before the
// convolution so the edges are not pulled towards zero, and the result has
// the same length as x. A constant signal comes back unchanged.
//
// Windows shorter than 3 return a copy of x. A window longer than the
// signal is an error.
func Smooth(x []float64, windowLen int, window Window) ([]float64, error) {
	if len(x) < windowLen {
		return nil, fmt.Errorf("%w: %d < %d", ErrSignalTooShort, len(x), windowLen)
	}
	if windowLen < 3 {
		return append([]float64(nil), x...), nil
	}
	if _, ok := windowNames[window]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownWindow, window)
	}

	n := len(x)
	// x[wl-1:0:-1] + x + x[-2:-wl-1:-1]
	s := make([]float64, 0, n+2*(windowLen-1))
	for i := windowLen - 1; i > 0; i-- {
		s = append(s, x[i])
	}
	s = append(s, x...)
	for i := n - 2; i >= n-windowLen; i-- {
		s = append(s, x[i])
	}

	w := window.weights(windowLen)
	var total float64
	for _, v := range w {
		total += v
	}

	// output index i is centered on x[i]
	start := (windowLen - 1) / 2
	out := make([]float64, n)
	for i := range out {
		k := i + start
		var acc float64
		for j, wj := range w {
			acc += wj * s[k+j]
		}
		out[i] = acc / total
	}
	return out, nil
}

// SmoothSafe smooths with a Hanning window whose length is capped by the
// signal length (at most 2 + len/3, rounded down to even). Signals too short
// to smooth are returned as a copy.
func SmoothSafe(x []float64, windowLen int) []float64 {
	blur := windowLen
	if limit := int(2 + float64(len(x))/3.0); limit < blur {
		blur = limit
	}
	blur = blur / 2 * 2
	if blur > len(x) || blur < 3 {
		return append([]float64(nil), x...)
	}

	out, err := Smooth(x, blur, Hanning)
	if err != nil {
		return append([]float64(nil), x...)
	}
	return out
}
