package controller

import "fmt"

// AbortReason is the closed taxonomy of why a run entered ABORTED.
type AbortReason int32

const (
	AbortNone AbortReason = iota
	AbortUserRequest
	AbortInvalidArgument
	AbortArithmeticDomain
	AbortMemoryAllocationError
	AbortSystem
)

func (r AbortReason) String() string {
	switch r {
	case AbortNone:
		return "None"
	case AbortUserRequest:
		return "UserRequest"
	case AbortInvalidArgument:
		return "InvalidArgument"
	case AbortArithmeticDomain:
		return "ArithmeticDomain"
	case AbortMemoryAllocationError:
		return "MemoryAllocationError"
	case AbortSystem:
		return "System"
	default:
		return fmt.Sprintf("AbortReason(%d)", int32(r))
	}
}

// AbortedError is the distinguished exception a worker raises at a
// safepoint once it observes forced-abort; a recover in the worker's
// dispatch loop converts it into the controller's recorded
// (abort-reason, operation-handle) pair, first-writer-wins, mirroring
// the unwind-through-the-model propagation policy.
type AbortedError struct {
	Reason AbortReason
	Op     OperationHandle
}

func (e *AbortedError) Error() string {
	return fmt.Sprintf("inem: aborted (%s) at operation %d", e.Reason, e.Op)
}

// Is implements errors.Is support: any *AbortedError matches the
// sentinel regardless of its Reason/Op payload.
func (e *AbortedError) Is(target error) bool {
	_, ok := target.(*AbortedError)
	return ok
}
