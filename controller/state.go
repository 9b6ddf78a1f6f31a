package controller

import "sync/atomic"

// State is the model's run state, exactly spec.md's closed enumeration.
type State int32

const (
	Stopped State = iota
	Active
	Aborting
	Aborted
	PausedOnUserRequest
	PausedAtOperation
	PausedOnVariableUpdate
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "Stopped"
	case Active:
		return "Active"
	case Aborting:
		return "Aborting"
	case Aborted:
		return "Aborted"
	case PausedOnUserRequest:
		return "PausedOnUserRequest"
	case PausedAtOperation:
		return "PausedAtOperation"
	case PausedOnVariableUpdate:
		return "PausedOnVariableUpdate"
	default:
		return "Unknown"
	}
}

// fastState is a lock-free holder for State, CAS-driven rather than
// mutex-guarded; every transition in the controller's state machine is
// either a single compare-and-swap or an unconditional store performed
// under the guarantee that only one goroutine drives a given
// transition at a time.
type fastState struct {
	v atomic.Int32
}

func newFastState(initial State) *fastState {
	fs := &fastState{}
	fs.v.Store(int32(initial))
	return fs
}

func (fs *fastState) Load() State { return State(fs.v.Load()) }

func (fs *fastState) Store(s State) { fs.v.Store(int32(s)) }

func (fs *fastState) CompareAndSwap(from, to State) bool {
	return fs.v.CompareAndSwap(int32(from), int32(to))
}

// isPaused reports whether s is one of the three PAUSED_* states.
func isPaused(s State) bool {
	return s == PausedOnUserRequest || s == PausedAtOperation || s == PausedOnVariableUpdate
}
