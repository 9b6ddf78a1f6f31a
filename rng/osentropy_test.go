package rng

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOSEntropy_ProducesVaryingWords(t *testing.T) {
	o := NewOSEntropy()

	seen := make(map[uint64]struct{})
	for i := 0; i < 32; i++ {
		seen[o.Next64()] = struct{}{}
	}
	assert.Greater(t, len(seen), 1, "successive draws should not collapse to a single value")
}

func TestOSEntropy_SetSeedIsNoOp(t *testing.T) {
	o := NewOSEntropy()
	o.SetSeed(Seed{1, 2, 3, 4}, 9)
	assert.Equal(t, Seed{}, o.Seed())
}

func TestOSEntropy_Fill(t *testing.T) {
	o := NewOSEntropy()
	buf := make([]uint64, 16)
	o.Fill(buf, len(buf))

	var allZero = true
	for _, v := range buf {
		if v != 0 {
			allZero = false
			break
		}
	}
	assert.False(t, allZero)
}

func TestOSEntropy_Kind(t *testing.T) {
	assert.Equal(t, KindOSEntropy, NewOSEntropy().Kind())
}
