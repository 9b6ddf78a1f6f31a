// Package perthread implements the per-thread execution context (C3):
// the state owned exclusively by one model worker goroutine for the
// duration of a run.
package perthread

import (
	"github.com/joeycumines/go-inem/console"
	"github.com/joeycumines/go-inem/deviate"
	"github.com/joeycumines/go-inem/rng"
	"github.com/joeycumines/go-inem/status"
)

// temporaryBufferSizeInBytes matches the original engine's fixed
// scratch-region size.
const temporaryBufferSizeInBytes = 2048

// InvalidOperationHandle mirrors controller.InvalidOperationHandle
// without importing the controller package (perthread is a leaf
// dependency of controller, not the reverse).
const InvalidOperationHandle = -1

// Context is the per-thread state handed to a model's entry point: one
// RNG, one deviate engine with its caches, a lazily-allocated scratch
// buffer, the current operation-handle cursor, and weak references to
// the console and status sinks (perthread does not own their
// lifetimes).
type Context struct {
	threadID int

	rngInstance   rng.PRNG
	deviateEngine *deviate.Engine

	scratch []byte

	operationHandle int

	console console.Sink
	status  status.Sink
}

// NewContext constructs a per-thread context for threadID, drawing
// from source for both uniform and non-uniform deviates.
func NewContext(threadID int, source rng.PRNG, consoleSink console.Sink, statusSink status.Sink) *Context {
	return &Context{
		threadID:        threadID,
		rngInstance:     source,
		deviateEngine:   deviate.NewEngine(source),
		operationHandle: InvalidOperationHandle,
		console:         consoleSink,
		status:          statusSink,
	}
}

// ThreadID returns the context's thread index in [0, N_threads).
func (c *Context) ThreadID() int { return c.threadID }

// OperationHandle returns the most recently recorded operation handle.
func (c *Context) OperationHandle() int { return c.operationHandle }

// SetOperationHandle records the current operation handle; called
// unconditionally by the instrumentation helper on every checkpoint.
func (c *Context) SetOperationHandle(h int) { c.operationHandle = h }

// RNG returns the context's uniform random engine.
func (c *Context) RNG() rng.PRNG { return c.rngInstance }

// Deviate returns the context's non-uniform deviate engine.
func (c *Context) Deviate() *deviate.Engine { return c.deviateEngine }

// Console returns the context's console sink, or nil if none was
// configured.
func (c *Context) Console() console.Sink { return c.console }

// TemporaryBuffer lazily allocates a fixed-size scratch region on
// first call; its lifetime matches the context's.
func (c *Context) TemporaryBuffer() []byte {
	if c.scratch == nil {
		c.scratch = make([]byte, temporaryBufferSizeInBytes)
	}
	return c.scratch
}

// SendToDevice forwards value to the configured status sink's
// SendToDevice callback. It is a no-op if no status sink was
// configured.
func (c *Context) SendToDevice(device status.Device, value status.Variant) {
	if c.status != nil {
		c.status.SendToDevice(device, value)
	}
}

// ThreadLocalSetup performs any platform-specific per-thread bring-up
// required before the context's first use on its goroutine. Go's
// runtime needs no per-thread console-callback registration (the
// original's Windows-only thread-local callback re-registration has no
// Go analogue), so this is a deliberate no-op retained as an explicit
// call site for platforms that may need one in the future.
func (c *Context) ThreadLocalSetup() {}
