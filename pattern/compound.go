package pattern

import (
	"fmt"
	"log/slog"
	"math"
)

type weighted struct {
	matcher Matcher
	weight  float64
}

// Compound treats a weighted blend of sub-patterns as one pattern.
type Compound struct {
	name    string
	members []weighted
	logger  *slog.Logger
}

var _ Matcher = (*Compound)(nil)

// NewCompound creates an empty compound pattern.
func NewCompound(name string) *Compound {
	return &Compound{name: name, logger: defaultLogger()}
}

// Add adds m with the given weight. Adding a member with the same name
// again replaces its weight.
func (c *Compound) Add(m Matcher, weight float64) error {
	if m == nil {
		return ErrMemberRequired
	}
	for i := range c.members {
		if c.members[i].matcher.Name() == m.Name() {
			c.members[i] = weighted{matcher: m, weight: weight}
			return nil
		}
	}
	c.members = append(c.members, weighted{matcher: m, weight: weight})
	return nil
}

// Name returns the compound name.
func (c *Compound) Name() string { return c.name }

// Weight returns the weight of the named member.
func (c *Compound) Weight(name string) (float64, bool) {
	for _, w := range c.members {
		if w.matcher.Name() == name {
			return w.weight, true
		}
	}
	return 0, false
}

// Len returns the number of members.
func (c *Compound) Len() int { return len(c.members) }

func (c *Compound) log() *slog.Logger { return c.logger }

// Distances returns the weighted sum of member distances divided by the
// total absolute weight.
func (c *Compound) Distances(text [][]float32) ([]float64, error) {
	if len(c.members) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyGroup, c.name)
	}

	var total float64
	for _, w := range c.members {
		total += math.Abs(w.weight)
	}
	if total == 0 {
		return nil, fmt.Errorf("%w: %s", ErrZeroWeight, c.name)
	}

	sum := make([]float64, len(text))
	for _, w := range c.members {
		d, err := w.matcher.Distances(text)
		if err != nil {
			return nil, fmt.Errorf("member %q: %w", w.matcher.Name(), err)
		}
		for i := range sum {
			sum[i] += d[i] * w.weight
		}
	}
	for i := range sum {
		sum[i] /= total
	}
	return sum, nil
}

// Find returns the best match with its confidence.
func (c *Compound) Find(text [][]float32, rightPadding int) (Match, error) {
	return Find(c, text, rightPadding)
}
