package structure

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Print writes a human readable rendering of the outline, one line per
// entry, indented by level. With numberedOnly set, unnumbered lines are skipped.
func (o Outline) Print(w io.Writer, tokensCased []string, numberedOnly bool) error {
	n := 0
	for i := range o {
		l := &o[i]
		if numberedOnly && !l.Numbered() {
			continue
		}
		_, err := fmt.Fprintf(w, "%4d %s%s %s\t[level %d, hints %v]\n",
			n, strings.Repeat("  .  ", l.Level), l.label(), l.TextNoNumber(tokensCased), l.Level, l.possibleLevels)
		if err != nil {
			return err
		}
		n++
	}
	return nil
}

// label renders the numbering path as "2.1.3." or a bullet mark.
func (l *Line) label() string {
	if l.Bullet {
		return "•"
	}
	if !l.Numbered() {
		return ""
	}
	parts := make([]string, len(l.Number))
	for i, n := range l.Number {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ".") + "."
}

// Node is an outline line nested under the closest preceding shallower line.
type Node struct {
	Line     int     // Index into the outline
	Level    int     // Level of the line
	Title    string  // Line text without its label
	Children []*Node // Deeper lines that follow
}

// Tree nests the outline by level and returns the top-level nodes.
func (o Outline) Tree(tokensCased []string) []*Node {
	var roots []*Node
	var stack []*Node
	for i := range o {
		l := &o[i]
		node := &Node{Line: i, Level: l.Level, Title: l.TextNoNumber(tokensCased)}

		for len(stack) > 0 && stack[len(stack)-1].Level >= node.Level {
			stack = stack[:len(stack)-1]
		}
		if len(stack) == 0 {
			roots = append(roots, node)
		} else {
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, node)
		}
		stack = append(stack, node)
	}
	return roots
}
