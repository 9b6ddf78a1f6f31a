// Package status implements the status sink (C9): empty-default
// callbacks the embedder may override to observe model lifecycle and
// per-thread events. Aggregate callbacks fire on the thread that
// performs the corresponding global state transition; thread_*
// callbacks fire on the worker thread they describe. Implementations
// must be safe for concurrent use from any of those threads.
package status

// Device identifies a sendToDevice destination; its meaning is
// model-authored and opaque to the core.
type Device int

// Variant is an opaque model-authored value forwarded via SendToDevice.
type Variant = any

// Sink receives model lifecycle notifications. Every method has a
// default no-op implementation via NoOpSink; embedders override only
// the callbacks they need.
type Sink interface {
	Started()
	Finished()
	Aborted(reason AbortReason, op OperationHandle)
	PausedOnUserRequest(op OperationHandle)
	PausedAtOperation(op OperationHandle)
	PausedOnVariableUpdate(op OperationHandle, id IdentifierHandle)
	Resumed()
	ThreadStarted(id int)
	ThreadPaused(id int)
	ThreadResumed(id int)
	ThreadFinished(id int)
	ThreadAborted(id int)
	SendToDevice(device Device, value Variant)
}

// AbortReason, OperationHandle, and IdentifierHandle are declared here
// (rather than imported from controller/identdb) to keep status
// dependency-free of the components it observes; controller.AbortReason
// and controller.OperationHandle convert to these via their underlying
// int types, and identdb.Handle likewise for IdentifierHandle.
type (
	AbortReason      int
	OperationHandle  int
	IdentifierHandle int
)

// NoOpSink is an embeddable, zero-value-safe Sink implementation whose
// methods all do nothing. Embedders compose it into their own type and
// override only the callbacks of interest.
type NoOpSink struct{}

func (NoOpSink) Started()  {}
func (NoOpSink) Finished() {}
func (NoOpSink) Aborted(AbortReason, OperationHandle)           {}
func (NoOpSink) PausedOnUserRequest(OperationHandle)            {}
func (NoOpSink) PausedAtOperation(OperationHandle)              {}
func (NoOpSink) PausedOnVariableUpdate(OperationHandle, IdentifierHandle) {}
func (NoOpSink) Resumed()                                       {}
func (NoOpSink) ThreadStarted(int)                              {}
func (NoOpSink) ThreadPaused(int)                               {}
func (NoOpSink) ThreadResumed(int)                              {}
func (NoOpSink) ThreadFinished(int)                             {}
func (NoOpSink) ThreadAborted(int)                              {}
func (NoOpSink) SendToDevice(Device, Variant)                   {}

var _ Sink = NoOpSink{}
