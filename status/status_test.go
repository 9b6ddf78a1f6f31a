package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type countingSink struct {
	NoOpSink
	started  int
	finished int
	aborted  int
}

func (c *countingSink) Started()  { c.started++ }
func (c *countingSink) Finished() { c.finished++ }
func (c *countingSink) Aborted(reason AbortReason, op OperationHandle) {
	c.aborted++
}

func TestNoOpSink_SatisfiesSink(t *testing.T) {
	var s Sink = NoOpSink{}
	s.Started()
	s.Finished()
	s.Aborted(AbortReason(1), OperationHandle(2))
	s.PausedOnUserRequest(0)
	s.PausedAtOperation(0)
	s.PausedOnVariableUpdate(0, 0)
	s.Resumed()
	s.ThreadStarted(0)
	s.ThreadPaused(0)
	s.ThreadResumed(0)
	s.ThreadFinished(0)
	s.ThreadAborted(0)
	s.SendToDevice(0, "value")
}

func TestCountingSink_OverridesSelectively(t *testing.T) {
	c := &countingSink{}
	var s Sink = c

	s.Started()
	s.Finished()
	s.Aborted(3, 4)
	s.PausedAtOperation(5) // falls through to NoOpSink, must not panic

	assert.Equal(t, 1, c.started)
	assert.Equal(t, 1, c.finished)
	assert.Equal(t, 1, c.aborted)
}
