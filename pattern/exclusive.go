package pattern

import (
	"fmt"
	"log/slog"
	"math"
	"slices"

	"github.com/poiesic/landmark/signal"
)

// Range summarizes the distances a pattern kept in an exclusive evaluation.
type Range struct {
	Min  float64
	Max  float64
	Mean float64
	Wins int
}

// Winner is the pattern that kept a position.
type Winner struct {
	Pattern  int
	Distance float64
}

// ExclusiveResult is the outcome of ExclusiveGroup.Evaluate.
type ExclusiveResult struct {
	// Distances has one row per member and one column per searchable
	// position. Only the winning member of a column keeps its value; all
	// others are NaN.
	Distances [][]float64
	// Ranges has one entry per member. A member that never wins gets
	// {+Inf, -Inf, 0, 0}.
	Ranges []Range
	// Winners has one entry per searchable position.
	Winners []Winner
	// NeverWinning lists members that won no position.
	NeverWinning []int
}

// ExclusiveGroup lets its members compete for every text position.
type ExclusiveGroup struct {
	name    string
	members []Matcher
	logger  *slog.Logger
}

var _ Matcher = (*ExclusiveGroup)(nil)

// NewExclusiveGroup creates a group with the given members.
func NewExclusiveGroup(name string, members ...Matcher) *ExclusiveGroup {
	return &ExclusiveGroup{
		name:    name,
		members: members,
		logger:  defaultLogger(),
	}
}

// Add appends a member.
func (g *ExclusiveGroup) Add(m Matcher) error {
	if m == nil {
		return ErrMemberRequired
	}
	g.members = append(g.members, m)
	return nil
}

// Name returns the group name.
func (g *ExclusiveGroup) Name() string { return g.name }

// Members returns the members in evaluation order.
func (g *ExclusiveGroup) Members() []Matcher {
	return append([]Matcher(nil), g.members...)
}

func (g *ExclusiveGroup) log() *slog.Logger { return g.logger }

// Evaluate computes every member's distances over the first
// len(text) - rightPadding positions and keeps, at each position, only the
// smallest one. Ties go to the member added first.
func (g *ExclusiveGroup) Evaluate(text [][]float32, rightPadding int) (*ExclusiveResult, error) {
	if len(g.members) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyGroup, g.name)
	}
	if rightPadding < 0 || rightPadding >= len(text) {
		return nil, fmt.Errorf("%w: %d of %d positions", ErrInvalidPadding, rightPadding, len(text))
	}

	width := len(text) - rightPadding
	rows := make([][]float64, len(g.members))
	for i, m := range g.members {
		d, err := m.Distances(text)
		if err != nil {
			return nil, fmt.Errorf("member %q: %w", m.Name(), err)
		}
		rows[i] = d[:width]
	}

	masked, winners, err := signal.ExclusiveColumns(rows, math.NaN())
	if err != nil {
		return nil, err
	}

	result := &ExclusiveResult{
		Distances: masked,
		Ranges:    make([]Range, len(g.members)),
		Winners:   make([]Winner, width),
	}
	for j, w := range winners {
		if w < 0 {
			result.Winners[j] = Winner{Pattern: -1, Distance: math.NaN()}
			continue
		}
		result.Winners[j] = Winner{Pattern: w, Distance: rows[w][j]}
	}

	for i, row := range masked {
		mean, wins := signal.NanMean(row)
		if wins == 0 {
			result.Ranges[i] = Range{Min: math.Inf(1), Max: math.Inf(-1)}
			result.NeverWinning = append(result.NeverWinning, i)
			g.logger.Warn("never winning pattern detected",
				"group", g.name,
				"index", i,
				"pattern", g.members[i].Name())
			continue
		}
		result.Ranges[i] = Range{
			Min:  signal.NanMin(row),
			Max:  signal.NanMax(row),
			Mean: mean,
			Wins: wins,
		}
	}
	return result, nil
}

// Distances returns, for every position, the smallest member distance.
func (g *ExclusiveGroup) Distances(text [][]float32) ([]float64, error) {
	if len(g.members) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyGroup, g.name)
	}
	var out []float64
	for _, m := range g.members {
		d, err := m.Distances(text)
		if err != nil {
			return nil, fmt.Errorf("member %q: %w", m.Name(), err)
		}
		if out == nil {
			out = slices.Clone(d)
			continue
		}
		for i := range out {
			out[i] = math.Min(out[i], d[i])
		}
	}
	return out, nil
}

// Find returns the best position of any member.
func (g *ExclusiveGroup) Find(text [][]float32, rightPadding int) (Match, error) {
	return Find(g, text, rightPadding)
}
