// Package model implements the model base (C6): the 32 entry-point
// thread dispatch table and the checkpoint instrumentation calls a
// compiled model uses to report reaching a safepoint.
package model

import (
	"github.com/joeycumines/go-inem/identdb"
	"github.com/joeycumines/go-inem/perthread"
)

// MaximumNumberThreads is the largest thread count a Base can dispatch.
const MaximumNumberThreads = 32

// OperationHandle identifies a pausable safepoint in a model. Operation
// handles are numbered zero to one less than the model's
// NumberOperationHandles.
type OperationHandle int

// InvalidOperationHandle clears a run-to location or marks "no
// breakpoint list entry".
const InvalidOperationHandle OperationHandle = -1

// IdentifierHandle identifies a model identifier; an alias of
// identdb.Handle since the two name the same concept.
type IdentifierHandle = identdb.Handle

// ThreadFunc is the body of one of a model's up-to-32 threads.
type ThreadFunc func(ctx *perthread.Context)

// Runtime is the checkpoint callback surface a driver (the controller)
// supplies to a Base so that Checkpoint/CheckpointVariable can consult
// and react to pending pause/abort state without model depending on
// the driver package directly.
type Runtime interface {
	// PendingEvent reports whether there is a pause, abort, or
	// breakpoint condition that Checkpoint/CheckpointVariable should
	// act on. Checked on every safepoint, so it must be cheap.
	PendingEvent() bool
	HandleCheckpoint(ctx *perthread.Context, op OperationHandle)
	HandleCheckpointVariable(ctx *perthread.Context, op OperationHandle, id IdentifierHandle)
}

// Definition is the full surface a compiled model exposes to a driver:
// the constants and identifier database a model author supplies,
// together with the thread dispatch Base provides once embedded.
type Definition interface {
	NumberThreads() int
	NumberOperationHandles() int
	IdentifierDatabase() identdb.Database
	Execute(ctx *perthread.Context, threadID int)
}

// Base is embedded by a compiled model implementation. It holds the
// thread dispatch table (populated via SetThread, one entry per thread
// the model actually uses) and the two checkpoint helpers models call
// at every safepoint.
type Base struct {
	threads [MaximumNumberThreads]ThreadFunc
	runtime Runtime
}

// SetRuntime attaches the driver that answers PendingEvent and handles
// checkpoint events. Must be called before Execute or Checkpoint is
// used by a running thread.
func (b *Base) SetRuntime(r Runtime) {
	b.runtime = r
}

// SetThread registers fn as the body of threadID (1-based, matching
// the spec's thread numbering). Panics if threadID is out of range.
func (b *Base) SetThread(threadID int, fn ThreadFunc) {
	if threadID < 1 || threadID > MaximumNumberThreads {
		panic("model: thread id out of range")
	}
	b.threads[threadID-1] = fn
}

// Execute runs threadID's body against ctx. A threadID with no
// registered function is a no-op, mirroring the original's "you need
// only overload as many functions as you need."
func (b *Base) Execute(ctx *perthread.Context, threadID int) {
	if threadID < 1 || threadID > MaximumNumberThreads {
		return
	}
	if fn := b.threads[threadID-1]; fn != nil {
		fn(ctx)
	}
}

// Checkpoint records the current operation handle and, if a pause or
// abort condition is pending, hands control to the runtime. Call at
// every safepoint that is not tied to a specific identifier.
func (b *Base) Checkpoint(ctx *perthread.Context, op OperationHandle) {
	ctx.SetOperationHandle(int(op))
	if b.runtime != nil && b.runtime.PendingEvent() {
		b.runtime.HandleCheckpoint(ctx, op)
	}
}

// CheckpointVariable is Checkpoint's two-handle form, used at
// safepoints tied to a specific identifier (PAUSED_ON_VARIABLE_UPDATE).
func (b *Base) CheckpointVariable(ctx *perthread.Context, op OperationHandle, id IdentifierHandle) {
	ctx.SetOperationHandle(int(op))
	if b.runtime != nil && b.runtime.PendingEvent() {
		b.runtime.HandleCheckpointVariable(ctx, op, id)
	}
}
