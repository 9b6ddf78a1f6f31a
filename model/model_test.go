package model

import (
	"testing"

	"github.com/joeycumines/go-inem/identdb"
	"github.com/joeycumines/go-inem/perthread"
	"github.com/joeycumines/go-inem/rng"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingRuntime struct {
	pending       bool
	checkpoints   []OperationHandle
	variableCalls []IdentifierHandle
}

func (r *recordingRuntime) PendingEvent() bool { return r.pending }

func (r *recordingRuntime) HandleCheckpoint(ctx *perthread.Context, op OperationHandle) {
	r.checkpoints = append(r.checkpoints, op)
}

func (r *recordingRuntime) HandleCheckpointVariable(ctx *perthread.Context, op OperationHandle, id IdentifierHandle) {
	r.checkpoints = append(r.checkpoints, op)
	r.variableCalls = append(r.variableCalls, id)
}

type sumModel struct {
	Base
	sum int
}

func newSumModel() *sumModel {
	m := &sumModel{}
	m.SetThread(1, func(ctx *perthread.Context) {
		for i := 0; i < 3; i++ {
			m.Checkpoint(ctx, OperationHandle(i))
			m.sum++
		}
	})
	return m
}

func (m *sumModel) NumberThreads() int             { return 1 }
func (m *sumModel) NumberOperationHandles() int     { return 3 }
func (m *sumModel) IdentifierDatabase() identdb.Database { return identdb.New() }

func TestBase_ExecuteDispatchesRegisteredThread(t *testing.T) {
	m := newSumModel()
	ctx := perthread.NewContext(1, rng.NewMT19937(rng.Seed{1}, 0), nil, nil)

	m.Execute(ctx, 1)
	assert.Equal(t, 3, m.sum)
}

func TestBase_ExecuteUnregisteredThreadIsNoOp(t *testing.T) {
	m := newSumModel()
	ctx := perthread.NewContext(2, rng.NewMT19937(rng.Seed{1}, 0), nil, nil)

	require.NotPanics(t, func() { m.Execute(ctx, 7) })
	assert.Equal(t, 0, m.sum)
}

func TestBase_CheckpointCallsRuntimeOnlyWhenPending(t *testing.T) {
	m := &sumModel{}
	rt := &recordingRuntime{pending: false}
	m.SetRuntime(rt)
	ctx := perthread.NewContext(1, rng.NewMT19937(rng.Seed{1}, 0), nil, nil)

	m.Checkpoint(ctx, 5)
	assert.Empty(t, rt.checkpoints)
	assert.Equal(t, OperationHandle(5), OperationHandle(ctx.OperationHandle()))

	rt.pending = true
	m.Checkpoint(ctx, 6)
	assert.Equal(t, []OperationHandle{6}, rt.checkpoints)
}

func TestBase_CheckpointVariableForwardsIdentifier(t *testing.T) {
	m := &sumModel{}
	rt := &recordingRuntime{pending: true}
	m.SetRuntime(rt)
	ctx := perthread.NewContext(1, rng.NewMT19937(rng.Seed{1}, 0), nil, nil)

	m.CheckpointVariable(ctx, 2, identdb.Handle(9))
	assert.Equal(t, []OperationHandle{2}, rt.checkpoints)
	assert.Equal(t, []IdentifierHandle{9}, rt.variableCalls)
}

func TestBase_SetThreadOutOfRangePanics(t *testing.T) {
	m := &sumModel{}
	assert.Panics(t, func() { m.SetThread(0, func(*perthread.Context) {}) })
	assert.Panics(t, func() { m.SetThread(33, func(*perthread.Context) {}) })
}
