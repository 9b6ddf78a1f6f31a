package perthread

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joeycumines/go-inem/rng"
	"github.com/joeycumines/go-inem/status"
)

type recordingStatusSink struct {
	status.NoOpSink
	devices []status.Device
	values  []status.Variant
}

func (r *recordingStatusSink) SendToDevice(device status.Device, value status.Variant) {
	r.devices = append(r.devices, device)
	r.values = append(r.values, value)
}

func TestContext_OperationHandleRoundTrip(t *testing.T) {
	ctx := NewContext(2, rng.NewMT19937(rng.Seed{1, 2, 3, 4}, 0), nil, nil)

	assert.Equal(t, 2, ctx.ThreadID())
	assert.Equal(t, InvalidOperationHandle, ctx.OperationHandle())

	ctx.SetOperationHandle(7)
	assert.Equal(t, 7, ctx.OperationHandle())
}

func TestContext_TemporaryBufferLazyAndStable(t *testing.T) {
	ctx := NewContext(0, rng.NewMT19937(rng.Seed{}, 0), nil, nil)

	buf1 := ctx.TemporaryBuffer()
	require.Len(t, buf1, temporaryBufferSizeInBytes)

	buf1[0] = 0xAB
	buf2 := ctx.TemporaryBuffer()
	assert.Equal(t, byte(0xAB), buf2[0], "second call must return the same backing buffer")
}

func TestContext_SendToDeviceForwardsToStatusSink(t *testing.T) {
	sink := &recordingStatusSink{}
	ctx := NewContext(0, rng.NewMT19937(rng.Seed{}, 0), nil, sink)

	ctx.SendToDevice(status.Device(4), "payload")

	require.Len(t, sink.devices, 1)
	assert.Equal(t, status.Device(4), sink.devices[0])
	assert.Equal(t, "payload", sink.values[0])
}

func TestContext_SendToDeviceNoSinkIsNoOp(t *testing.T) {
	ctx := NewContext(0, rng.NewMT19937(rng.Seed{}, 0), nil, nil)
	assert.NotPanics(t, func() { ctx.SendToDevice(status.Device(1), nil) })
}

func TestContext_DeviateAndRNGShareStream(t *testing.T) {
	ctx := NewContext(0, rng.NewMT19937(rng.Seed{5, 5, 5, 5}, 0), nil, nil)
	require.NotNil(t, ctx.RNG())
	require.NotNil(t, ctx.Deviate())

	v := ctx.Deviate().RealClosed()
	assert.GreaterOrEqual(t, v, 0.0)
	assert.LessOrEqual(t, v, 1.0)
}
