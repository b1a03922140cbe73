package signal

import (
	"fmt"
	"math"
)

// MinIndex returns the index of the first minimum of x, ignoring NaN.
// Returns -1 when x has no comparable value.
func MinIndex(x []float64) int {
	idx := -1
	best := math.Inf(1)
	for i, v := range x {
		if v < best {
			best = v
			idx = i
		}
	}
	if idx < 0 {
		// all +Inf
		for i, v := range x {
			if !math.IsNaN(v) {
				return i
			}
		}
	}
	return idx
}

// ArgMax returns the index of the first maximum of x, ignoring NaN.
// Returns -1 when x has no comparable value.
func ArgMax(x []float64) int {
	idx := -1
	best := math.Inf(-1)
	for i, v := range x {
		if v > best {
			best = v
			idx = i
		}
	}
	if idx < 0 {
		for i, v := range x {
			if !math.IsNaN(v) {
				return i
			}
		}
	}
	return idx
}

// ArgMinColumns returns, for every column of m, the row holding the lowest
// value. Ties go to the lowest row index, so every column has exactly one
// winner. NaN never wins unless the whole column is NaN, in which case the
// winner is -1.
func ArgMinColumns(m [][]float64) ([]int, error) {
	width, err := matrixWidth(m)
	if err != nil {
		return nil, err
	}

	winners := make([]int, width)
	for j := 0; j < width; j++ {
		winners[j] = -1
		best := math.NaN()
		for i := range m {
			v := m[i][j]
			if math.IsNaN(v) {
				continue
			}
			if winners[j] < 0 || v < best {
				best = v
				winners[j] = i
			}
		}
	}
	return winners, nil
}

// ExclusiveColumns keeps only the winning value of every column, replacing
// all other entries with mask. Winners are picked by ArgMinColumns.
func ExclusiveColumns(m [][]float64, mask float64) ([][]float64, []int, error) {
	winners, err := ArgMinColumns(m)
	if err != nil {
		return nil, nil, err
	}

	out := make([][]float64, len(m))
	for i, row := range m {
		out[i] = make([]float64, len(row))
		for j, v := range row {
			if winners[j] == i {
				out[i][j] = v
			} else {
				out[i][j] = mask
			}
		}
	}
	return out, winners, nil
}

// Extremums returns 0 followed by the indexes of strict local maxima.
func Extremums(x []float64) []int {
	out := []int{0}
	for i := 1; i < len(x)-1; i++ {
		if x[i-1] < x[i] && x[i] > x[i+1] {
			out = append(out, i)
		}
	}
	return out
}

// RemoveSimilarIndexes drops indexes that follow their predecessor within
// minGap positions. The input is expected to be sorted.
func RemoveSimilarIndexes(indexes []int, minGap int) []int {
	if len(indexes) < 2 {
		return append([]int(nil), indexes...)
	}

	out := []int{indexes[0]}
	for i := 1; i < len(indexes); i++ {
		if indexes[i]-indexes[i-1] > minGap {
			out = append(out, indexes[i])
		}
	}
	return out
}

func matrixWidth(m [][]float64) (int, error) {
	if len(m) == 0 {
		return 0, nil
	}
	width := len(m[0])
	for i, row := range m {
		if len(row) != width {
			return 0, fmt.Errorf("%w: row %d has %d columns, want %d", ErrRaggedMatrix, i, len(row), width)
		}
	}
	return width, nil
}
