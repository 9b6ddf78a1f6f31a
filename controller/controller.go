// Package controller implements the controller (C7): the state
// machine that owns start/run/pause/abort/resume/single-step/run-to
// handling and per-thread completion aggregation for a model.
package controller

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/joeycumines/go-inem/console"
	"github.com/joeycumines/go-inem/identdb"
	"github.com/joeycumines/go-inem/model"
	"github.com/joeycumines/go-inem/rng"
	"github.com/joeycumines/go-inem/status"
)

// OperationHandle and InvalidOperationHandle are aliases of model's: the
// model package is the single source of truth (operation handles are
// model-authored), and controller re-exports the name spec.md uses.
type OperationHandle = model.OperationHandle

const InvalidOperationHandle = model.InvalidOperationHandle

const noThread = -1

// pausePollInterval is the sleep-poll granularity of the pause
// handshake; the spec records this as a known-suboptimal spinlock with
// sleep delay, with a condition-variable replacement left open (see
// DESIGN.md).
const pausePollInterval = 200 * time.Microsecond

// RNGHandle identifies an RNG instance created via CreateRNG.
type RNGHandle int

// Controller drives one model's execution. The zero value is not
// usable; construct with New.
type Controller struct {
	def model.Definition

	state                *fastState
	pauseRequested        atomic.Bool
	singleStepRequested   atomic.Bool
	forcedAbort           atomic.Bool
	pendingEvent          atomic.Bool
	pausingThread         atomic.Int32
	runToLocation         atomic.Int64
	activeThreadCount     atomic.Int32
	parkedCount           atomic.Int32
	abortReasonClaimed    atomic.Bool
	abortReason           atomic.Int32
	abortOp               atomic.Int64

	bpMu        sync.Mutex
	breakpoints []uint64

	mu          sync.Mutex
	statusSink  status.Sink
	consoleSink console.Sink
	doneCh      chan struct{}

	rngMu   sync.Mutex
	rngs    map[RNGHandle]rng.PRNG
	nextRNG RNGHandle

	wg sync.WaitGroup
}

// New constructs a Controller for def, initially STOPPED.
func New(def model.Definition) *Controller {
	c := &Controller{
		def:   def,
		state: newFastState(Stopped),
		rngs:  make(map[RNGHandle]rng.PRNG),
	}
	c.pausingThread.Store(noThread)
	c.runToLocation.Store(int64(InvalidOperationHandle))
	c.statusSink = status.NoOpSink{}
	return c
}

// State returns the controller's current state.
func (c *Controller) State() State { return c.state.Load() }

// SetConsoleSink configures the console sink handed to every worker's
// per-thread context on the next Start. It is not part of the Start
// signature since, unlike the status sink, it is not expected to
// change between runs.
func (c *Controller) SetConsoleSink(sink console.Sink) {
	c.mu.Lock()
	c.consoleSink = sink
	c.mu.Unlock()
}

// NumberThreads returns the model-authored thread count.
func (c *Controller) NumberThreads() int { return c.def.NumberThreads() }

// NumberOperationHandles returns the model-authored operation count.
func (c *Controller) NumberOperationHandles() int { return c.def.NumberOperationHandles() }

// IdentifierDatabase returns a fresh identifier database from the
// model.
func (c *Controller) IdentifierDatabase() identdb.Database {
	return c.def.IdentifierDatabase()
}

// Start transitions STOPPED/ABORTED to ACTIVE, spawning one goroutine
// per thread seeded from seed via FanOutSeeds. Returns false (no
// change) if the controller is not in a startable state.
func (c *Controller) Start(kind rng.Kind, seed rng.Seed, sink status.Sink) bool {
	if !c.state.CompareAndSwap(Stopped, Active) && !c.state.CompareAndSwap(Aborted, Active) {
		return false
	}

	c.mu.Lock()
	if sink != nil {
		c.statusSink = sink
	} else {
		c.statusSink = status.NoOpSink{}
	}
	c.mu.Unlock()

	c.forcedAbort.Store(false)
	c.pauseRequested.Store(false)
	c.singleStepRequested.Store(false)
	c.pausingThread.Store(noThread)
	c.abortReasonClaimed.Store(false)
	c.abortReason.Store(int32(AbortNone))
	c.abortOp.Store(int64(InvalidOperationHandle))

	n := c.def.NumberThreads()
	c.activeThreadCount.Store(int32(n))
	c.parkedCount.Store(0)
	c.doneCh = make(chan struct{})
	c.recomputePendingEvent()

	c.statusSink.Started()

	c.mu.Lock()
	consoleSink := c.consoleSink
	c.mu.Unlock()

	seeds := rng.FanOutSeeds(seed, n)
	c.wg.Add(n)
	for i := 0; i < n; i++ {
		threadID := i + 1
		source, err := rng.New(kind, seeds[i])
		if err != nil {
			source, _ = rng.New(rng.KindMT19937_64, seeds[i])
		}
		go c.runWorker(threadID, source, consoleSink)
	}
	return true
}

// Run starts the model and blocks until it completes (STOPPED or
// ABORTED).
func (c *Controller) Run(kind rng.Kind, seed rng.Seed, sink status.Sink) bool {
	started := c.Start(kind, seed, sink)
	if started {
		c.WaitComplete()
	}
	return started
}

// WaitComplete blocks until the current run reaches a terminal state.
// It returns immediately if no run is in flight.
func (c *Controller) WaitComplete() {
	c.mu.Lock()
	done := c.doneCh
	c.mu.Unlock()
	if done == nil {
		return
	}
	<-done
}

// Abort requests immediate termination of the active run. Returns
// false if there is nothing to abort.
func (c *Controller) Abort() bool {
	s := c.state.Load()
	if s == Stopped || s == Aborted {
		return false
	}
	c.forcedAbort.Store(true)
	c.state.Store(Aborting)
	c.recomputePendingEvent()
	c.releaseParkedWorkers()
	return true
}

// Pause requests that the model park at the next safepoint reached by
// any worker. Returns false unless the model is ACTIVE.
func (c *Controller) Pause() bool {
	if c.state.Load() != Active {
		return false
	}
	c.pauseRequested.Store(true)
	c.recomputePendingEvent()
	return true
}

// SingleStep releases a paused model for exactly one safepoint, then
// re-arms the pause. Returns false unless the model is currently
// paused.
func (c *Controller) SingleStep() bool {
	if !isPaused(c.state.Load()) {
		return false
	}
	c.singleStepRequested.Store(true)
	c.state.Store(Active)
	c.releaseParkedWorkers()
	return true
}

// Resume clears any pause condition and releases parked workers.
// Returns false unless the model is currently paused.
func (c *Controller) Resume() bool {
	if !isPaused(c.state.Load()) {
		return false
	}
	c.state.Store(Active)
	c.statusSink.Resumed()
	c.releaseParkedWorkers()
	return true
}

func (c *Controller) releaseParkedWorkers() {
	c.pauseRequested.Store(false)
	c.pausingThread.Store(noThread)
	c.recomputePendingEvent()
}

// SetRunToLocation arms a one-shot breakpoint at op; InvalidOperationHandle
// clears it. Returns false if op is out of range.
func (c *Controller) SetRunToLocation(op OperationHandle) bool {
	if op != InvalidOperationHandle && (op < 0 || int(op) >= c.def.NumberOperationHandles()) {
		return false
	}
	c.runToLocation.Store(int64(op))
	c.recomputePendingEvent()
	return true
}

// RunToLocation returns the currently armed run-to location, or
// InvalidOperationHandle if none is set.
func (c *Controller) RunToLocation() OperationHandle {
	return OperationHandle(c.runToLocation.Load())
}

// SetBreakAtOperation sets or clears a persistent breakpoint at op.
// Returns false if op is out of range.
func (c *Controller) SetBreakAtOperation(op OperationHandle, enable bool) bool {
	n := c.def.NumberOperationHandles()
	if op < 0 || int(op) >= n {
		return false
	}

	c.bpMu.Lock()
	c.ensureBreakpointCapacity(n)
	word, bit := int(op)/64, uint(int(op)%64)
	if enable {
		c.breakpoints[word] |= 1 << bit
	} else {
		c.breakpoints[word] &^= 1 << bit
	}
	c.bpMu.Unlock()

	c.recomputePendingEvent()
	return true
}

func (c *Controller) ensureBreakpointCapacity(n int) {
	words := (n + 63) / 64
	if len(c.breakpoints) < words {
		grown := make([]uint64, words)
		copy(grown, c.breakpoints)
		c.breakpoints = grown
	}
}

func (c *Controller) breakpointsNonEmptyLocked() bool {
	for _, w := range c.breakpoints {
		if w != 0 {
			return true
		}
	}
	return false
}

func (c *Controller) isBreakpointSet(op OperationHandle) bool {
	c.bpMu.Lock()
	defer c.bpMu.Unlock()
	word := int(op) / 64
	if word < 0 || word >= len(c.breakpoints) {
		return false
	}
	return c.breakpoints[word]&(1<<uint(int(op)%64)) != 0
}

// OperationBreakpoints returns every operation handle with a pending
// breakpoint, in ascending order.
func (c *Controller) OperationBreakpoints() []OperationHandle {
	c.bpMu.Lock()
	defer c.bpMu.Unlock()

	var out []OperationHandle
	for word, bits := range c.breakpoints {
		for bit := 0; bit < 64; bit++ {
			if bits&(1<<uint(bit)) != 0 {
				out = append(out, OperationHandle(word*64+bit))
			}
		}
	}
	return out
}

func (c *Controller) recomputePendingEvent() {
	c.bpMu.Lock()
	bitmapSet := c.breakpointsNonEmptyLocked()
	c.bpMu.Unlock()

	pending := c.pauseRequested.Load() ||
		c.forcedAbort.Load() ||
		c.pausingThread.Load() != noThread ||
		c.singleStepRequested.Load() ||
		OperationHandle(c.runToLocation.Load()) != InvalidOperationHandle ||
		bitmapSet
	c.pendingEvent.Store(pending)
}

// CreateRNG constructs and registers a new PRNG of the given kind and
// seed, returning a handle for later retrieval via RNG or release via
// DeleteRNG.
func (c *Controller) CreateRNG(kind rng.Kind, seed rng.Seed) (RNGHandle, error) {
	source, err := rng.New(kind, seed)
	if err != nil {
		return 0, err
	}
	c.rngMu.Lock()
	defer c.rngMu.Unlock()
	c.nextRNG++
	h := c.nextRNG
	c.rngs[h] = source
	return h, nil
}

// CreateDefaultRNG constructs an MT19937-64 RNG seeded from the current
// wall-clock time, per the "no arguments" factory contract: four
// consecutive seconds, each word advanced by one relative to the last.
func (c *Controller) CreateDefaultRNG() (RNGHandle, error) {
	now := time.Now().Unix()
	var seed rng.Seed
	for i := range seed {
		seed[i] = uint64(now + int64(i))
	}
	return c.CreateRNG(rng.KindMT19937_64, seed)
}

// RNG retrieves a previously created RNG by handle.
func (c *Controller) RNG(h RNGHandle) (rng.PRNG, bool) {
	c.rngMu.Lock()
	defer c.rngMu.Unlock()
	source, ok := c.rngs[h]
	return source, ok
}

// DeleteRNG releases a previously created RNG. Returns false if h is
// unknown.
func (c *Controller) DeleteRNG(h RNGHandle) bool {
	c.rngMu.Lock()
	defer c.rngMu.Unlock()
	if _, ok := c.rngs[h]; !ok {
		return false
	}
	delete(c.rngs, h)
	return true
}
