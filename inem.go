// Package inem is the embedding facade for the model execution
// runtime: it wires a compiled model's dispatch table to a driving
// controller and exposes the lifecycle surface an embedder calls
// across the (out of scope) C ABI boundary.
package inem

import (
	"sync"

	"github.com/joeycumines/go-inem/controller"
	"github.com/joeycumines/go-inem/identdb"
	"github.com/joeycumines/go-inem/model"
	"github.com/joeycumines/go-inem/rng"
	"github.com/joeycumines/go-inem/status"
)

// MatrixAPI is the opaque table of numeric-kernel function pointers a
// model relies on; its content is out of scope for this runtime.
type MatrixAPI any

var (
	matrixAPIOnce sync.Once
	matrixAPI     MatrixAPI
)

// SetMatrixAPI stores the process-wide matrix API exactly once.
// Calling it a second time panics: exactly-once initialization is the
// embedder's responsibility.
func SetMatrixAPI(api MatrixAPI) {
	called := false
	matrixAPIOnce.Do(func() {
		matrixAPI = api
		called = true
	})
	if !called {
		panic("inem: SetMatrixAPI called more than once")
	}
}

// CurrentMatrixAPI returns the matrix API set via SetMatrixAPI, or nil
// if none has been set yet.
func CurrentMatrixAPI() MatrixAPI { return matrixAPI }

// Api is the controller's embedding-facing lifecycle surface. Boolean
// returns signal "applicable in the current state", not error codes.
type Api interface {
	Start(kind rng.Kind, seed rng.Seed, sink status.Sink) bool
	Run(kind rng.Kind, seed rng.Seed, sink status.Sink) bool
	State() controller.State
	Abort() bool
	WaitComplete()
	Pause() bool
	SingleStep() bool
	SetRunToLocation(op controller.OperationHandle) bool
	RunToLocation() controller.OperationHandle
	SetBreakAtOperation(op controller.OperationHandle, enable bool) bool
	OperationBreakpoints() []controller.OperationHandle
	Resume() bool
	NumberThreads() int
	NumberOperationHandles() int
	IdentifierDatabase() identdb.Database
	CreateRNG(kind rng.Kind, seed rng.Seed) (controller.RNGHandle, error)
	CreateDefaultRNG() (controller.RNGHandle, error)
	DeleteRNG(h controller.RNGHandle) bool
}

var _ Api = (*controller.Controller)(nil)

// Allocator constructs a model instance bound to the given matrix API,
// mirroring the embedding ABI's "allocator" symbol.
type Allocator func(matrix MatrixAPI) (Api, error)

// Deallocator releases a model instance created by an Allocator,
// mirroring the embedding ABI's "deallocator" symbol.
type Deallocator func(Api)

// New constructs a Controller for def, wiring it as def's model.Runtime
// if def exposes a SetRuntime method (true for any type embedding
// model.Base).
func New(def model.Definition) *controller.Controller {
	c := controller.New(def)
	if wireable, ok := def.(interface{ SetRuntime(model.Runtime) }); ok {
		wireable.SetRuntime(c)
	}
	return c
}
