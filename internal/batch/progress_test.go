package batch

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressTracker(t *testing.T) {
	var events []ProgressEvent
	p := NewProgressTracker(2, func(e ProgressEvent) { events = append(events, e) })

	p.Done("a.csv", nil)
	p.Done("b.csv", errors.New("bad"))

	assert.Equal(t, 2, p.Current())
	assert.Len(t, events, 2)
	assert.Equal(t, "a.csv", events[0].File)
	assert.Error(t, events[1].Err)
	assert.Equal(t, "done", events[1].ETA)
}

func TestProgressTrackerNilNotify(t *testing.T) {
	p := NewProgressTracker(0, nil)
	p.Done("a.csv", nil)
	assert.Equal(t, 1, p.Current())
}
