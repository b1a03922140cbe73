package batch

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressTracker_Basic(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 100, 10)

	tracker.Start()
	tracker.Increment(25)
	tracker.Increment(25)
	tracker.Increment(50)

	assert.Equal(t, 100, tracker.Current())
	output := buf.String()
	assert.Contains(t, output, "100/100")
	assert.Contains(t, output, "100.0%")
}

func TestProgressTracker_IntervalSuppressesReports(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 100, 50)

	tracker.Start()
	tracker.Increment(10)
	tracker.Increment(10)
	assert.Empty(t, buf.String())

	tracker.Increment(30)
	assert.Contains(t, buf.String(), "50/100")
}

func TestProgressTracker_Finish(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 10, 100)

	tracker.Start()
	tracker.Increment(3)
	tracker.Finish()

	output := buf.String()
	assert.Contains(t, output, "10/10")
	assert.True(t, strings.HasSuffix(output, "\n"))
	assert.Zero(t, tracker.Elapsed(), "finished tracker reports no elapsed time")
}

func TestProgressTracker_NotStarted(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 10, 0)

	tracker.Increment(5)
	tracker.Finish()

	assert.Empty(t, buf.String())
	assert.Zero(t, tracker.Current())
}

func TestProgressTracker_CapsAtTotal(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 5, 1)

	tracker.Start()
	tracker.Increment(50)

	assert.Equal(t, 5, tracker.Current())
	assert.Contains(t, buf.String(), "5/5")
}
