package controller

import (
	"time"

	"github.com/joeycumines/go-inem/console"
	"github.com/joeycumines/go-inem/model"
	"github.com/joeycumines/go-inem/perthread"
	"github.com/joeycumines/go-inem/rng"
	"github.com/joeycumines/go-inem/status"
)

var _ model.Runtime = (*Controller)(nil)

// PendingEvent implements model.Runtime: the single relaxed load every
// safepoint performs on the hot path.
func (c *Controller) PendingEvent() bool { return c.pendingEvent.Load() }

// HandleCheckpoint implements model.Runtime's single-handle slow path.
func (c *Controller) HandleCheckpoint(ctx *perthread.Context, op OperationHandle) {
	c.handleSlowPath(ctx, op, 0, false)
}

// HandleCheckpointVariable implements model.Runtime's two-handle slow
// path, used at safepoints tied to a specific identifier.
func (c *Controller) HandleCheckpointVariable(ctx *perthread.Context, op OperationHandle, id model.IdentifierHandle) {
	c.handleSlowPath(ctx, op, id, true)
}

func (c *Controller) handleSlowPath(ctx *perthread.Context, op OperationHandle, id model.IdentifierHandle, isVariable bool) {
	if c.forcedAbort.Load() {
		panic(&AbortedError{Reason: AbortUserRequest, Op: op})
	}

	// Single-step re-arms pause at the first safepoint reached after
	// its release; whichever thread gets here first claims it.
	if c.singleStepRequested.CompareAndSwap(true, false) {
		c.pauseRequested.Store(true)
		c.recomputePendingEvent()
	}

	if c.pauseRequested.Load() {
		c.park(ctx, op, id, isVariable, false)
		return
	}

	if rt := OperationHandle(c.runToLocation.Load()); rt != InvalidOperationHandle && rt == op {
		if c.runToLocation.CompareAndSwap(int64(rt), int64(InvalidOperationHandle)) {
			c.recomputePendingEvent()
			c.park(ctx, op, id, isVariable, false)
			return
		}
	}

	if c.isBreakpointSet(op) {
		c.park(ctx, op, id, isVariable, true)
		return
	}
}

// park is the pause handshake: a bounded-poll sleep loop on the
// pausing-thread indicator, acknowledged by the spec as a known-weak
// spinlock (a condition-variable replacement is an open question, see
// DESIGN.md).
func (c *Controller) park(ctx *perthread.Context, op OperationHandle, id model.IdentifierHandle, isVariable, atBreakpoint bool) {
	// ctx.ThreadID() is the 0-based index the per-thread context promises;
	// statusSink's thread_* callbacks use the same 1-based dispatch id as
	// ThreadStarted/ThreadFinished/ThreadAborted in runWorker.
	threadID := ctx.ThreadID() + 1

	wasFirst := c.pausingThread.CompareAndSwap(noThread, int32(threadID))
	if wasFirst {
		switch {
		case isVariable:
			c.state.Store(PausedOnVariableUpdate)
			c.statusSink.PausedOnVariableUpdate(status.OperationHandle(op), status.IdentifierHandle(id))
		case atBreakpoint:
			c.state.Store(PausedAtOperation)
			c.statusSink.PausedAtOperation(status.OperationHandle(op))
		default:
			c.state.Store(PausedOnUserRequest)
			c.statusSink.PausedOnUserRequest(status.OperationHandle(op))
		}
	}

	c.parkedCount.Add(1)
	c.statusSink.ThreadPaused(threadID)

	for {
		if c.forcedAbort.Load() {
			c.parkedCount.Add(-1)
			panic(&AbortedError{Reason: AbortUserRequest, Op: op})
		}
		if c.pausingThread.Load() == noThread {
			break
		}
		time.Sleep(pausePollInterval)
	}

	c.parkedCount.Add(-1)
	c.statusSink.ThreadResumed(threadID)
}

func (c *Controller) runWorker(threadID int, source rng.PRNG, consoleSink console.Sink) {
	defer c.wg.Done()

	// threadID is the model's 1-based dispatch index (model.Base.SetThread's
	// 1..32 convention); the per-thread context's own ThreadID is the
	// 0-based index the data model promises, so it is translated here.
	ctx := perthread.NewContext(threadID-1, source, consoleSink, c.statusSink)
	ctx.ThreadLocalSetup()
	c.statusSink.ThreadStarted(threadID)

	aborted := c.executeGuarded(ctx, threadID)

	if aborted {
		c.statusSink.ThreadAborted(threadID)
	} else {
		c.statusSink.ThreadFinished(threadID)
	}

	c.threadExit(aborted)
}

func (c *Controller) executeGuarded(ctx *perthread.Context, threadID int) (aborted bool) {
	defer func() {
		if r := recover(); r != nil {
			aborted = true
			if ae, ok := r.(*AbortedError); ok {
				c.recordAbort(ae.Reason, ae.Op)
			} else {
				c.recordAbort(AbortSystem, OperationHandle(ctx.OperationHandle()))
			}
		}
	}()
	c.def.Execute(ctx, threadID)
	return false
}

// recordAbort stores the first (reason, op) pair reported by any
// worker; subsequent callers observe ABORTING and are short-circuited.
func (c *Controller) recordAbort(reason AbortReason, op OperationHandle) {
	if !c.abortReasonClaimed.CompareAndSwap(false, true) {
		return
	}
	c.abortReason.Store(int32(reason))
	c.abortOp.Store(int64(op))
	c.forcedAbort.Store(true)
	c.state.Store(Aborting)
	c.recomputePendingEvent()
	c.releaseParkedWorkers()
}

func (c *Controller) threadExit(aborted bool) {
	if c.activeThreadCount.Add(-1) != 0 {
		return
	}

	if c.forcedAbort.Load() || aborted {
		c.state.Store(Aborted)
		reason := AbortReason(c.abortReason.Load())
		if reason == AbortNone {
			reason = AbortUserRequest
		}
		op := OperationHandle(c.abortOp.Load())
		c.statusSink.Aborted(status.AbortReason(reason), status.OperationHandle(op))
	} else {
		c.state.Store(Stopped)
		c.statusSink.Finished()
	}

	c.mu.Lock()
	done := c.doneCh
	c.mu.Unlock()
	if done != nil {
		close(done)
	}
}
