package structure

// Continuation score weights. The best attainable score is a same-parent,
// consecutive, same-level pair.
const (
	weightSameParent    = 4.0
	weightConsecutive   = 2.0
	weightSameLevel     = 3.0
	weightUnknownParent = 1.0
	weightHole          = 1.0
	maxContinuation     = weightSameParent + weightConsecutive + weightSameLevel
)

// SequenceContinuesFuzzy scores in [0, 1] how likely line i continues the
// enumerated run that line prev belongs to. A negative prev scores 1 and
// an out-of-range index scores 0.
func SequenceContinuesFuzzy(o Outline, i, prev int) float64 {
	if prev < 0 {
		return 1
	}
	if i < 0 || i >= len(o) || prev >= len(o) {
		return 0
	}

	curr, before := &o[i], &o[prev]
	cp, currHasParent := curr.ParentNumber()
	pp, prevHasParent := before.ParentNumber()
	cm, currNumbered := curr.MinorNumber()
	pm, prevNumbered := before.MinorNumber()

	var score float64
	if currHasParent == prevHasParent && cp == pp {
		score += weightSameParent
	}
	if currNumbered && prevNumbered && cm == pm+1 {
		score += weightConsecutive
	}
	if curr.Level == before.Level {
		score += weightSameLevel
	}
	if currHasParent != prevHasParent {
		score += weightUnknownParent
	}
	if currNumbered && prevNumbered && cm == pm+2 {
		score += weightHole
	}
	return score / maxContinuation
}

// SequenceContinues reports whether line i strictly continues the run of
// line prev: its minor number follows prev's with at most maxHole skipped
// numbers, both share a parent number (when checkParent is set and both
// parents are known) and their levels differ by at most levelDelta.
func SequenceContinues(o Outline, i, prev, levelDelta int, checkParent bool, maxHole int) bool {
	if prev < 0 {
		return true
	}
	if i < 0 || i >= len(o) || prev >= len(o) {
		return false
	}

	curr, before := &o[i], &o[prev]
	cm, ok := curr.MinorNumber()
	if !ok {
		return false
	}
	pm, ok := before.MinorNumber()
	if !ok {
		return false
	}

	gap := cm - (pm + 1)
	if gap < 0 || gap > maxHole {
		return false
	}
	if checkParent && !sameParent(curr, before) {
		return false
	}
	return abs(curr.Level-before.Level) <= levelDelta
}

// sameParent treats an unknown parent as matching anything.
func sameParent(a, b *Line) bool {
	ap, aok := a.ParentNumber()
	bp, bok := b.ParentNumber()
	if !aok || !bok {
		return true
	}
	return ap == bp
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
