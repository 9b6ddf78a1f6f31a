package rng

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_AllKinds(t *testing.T) {
	seed := Seed{1, 2, 3, 4}
	kinds := []Kind{KindMT19937_64, KindSFMT216091, KindXoshiro256Plus, KindXoshiro256StarStar, KindOSEntropy}

	for _, k := range kinds {
		p, err := New(k, seed)
		require.NoError(t, err)
		require.NotNil(t, p)
		assert.Equal(t, k, p.Kind())
	}
}

func TestNew_UnknownKind(t *testing.T) {
	_, err := New(Kind(999), Seed{})
	assert.Error(t, err)
}

func TestKind_StringUnknown(t *testing.T) {
	assert.Equal(t, "Kind(999)", Kind(999).String())
}

func TestNewDefault(t *testing.T) {
	p := NewDefault(1700000000)
	assert.Equal(t, KindMT19937_64, p.Kind())
}

func TestFanOutSeeds_Deterministic(t *testing.T) {
	base := Seed{42, 42, 42, 42}

	a := FanOutSeeds(base, 8)
	b := FanOutSeeds(base, 8)

	require.Equal(t, a, b)
	assert.Equal(t, base, a[0], "thread 0 keeps the base seed")

	seen := map[Seed]struct{}{}
	for _, s := range a {
		seen[s] = struct{}{}
	}
	assert.Len(t, seen, len(a), "fanned-out seeds must be distinct per thread")
}

func TestFanOutSeeds_SingleThread(t *testing.T) {
	base := Seed{1, 2, 3, 4}
	seeds := FanOutSeeds(base, 1)
	require.Len(t, seeds, 1)
	assert.Equal(t, base, seeds[0])
}
