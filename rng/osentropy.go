package rng

import (
	"crypto/rand"
	"encoding/binary"
)

// OSEntropy reads 32-bit words directly from the operating system's
// entropy source (crypto/rand.Reader). Its seed is ignored: SetSeed is
// a no-op and Seed always reports the zero seed.
type OSEntropy struct{}

// NewOSEntropy constructs the true-random engine.
func NewOSEntropy() *OSEntropy { return &OSEntropy{} }

func (*OSEntropy) Kind() Kind                    { return KindOSEntropy }
func (*OSEntropy) Seed() Seed                    { return Seed{} }
func (*OSEntropy) SetSeed(_ Seed, _ uint32)      {}

func (*OSEntropy) trng32() uint32 {
	var b [4]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic("rng: OS entropy source failed: " + err.Error())
	}
	return binary.LittleEndian.Uint32(b[:])
}

// Next32 returns one true-random 32-bit word.
func (o *OSEntropy) Next32() uint32 { return o.trng32() }

// Next64 returns two true-random 32-bit words packed high:low, matching
// the original TRNG's random64 = random32()<<32 | random32() composition.
func (o *OSEntropy) Next64() uint64 {
	hi := uint64(o.trng32())
	lo := uint64(o.trng32())
	return hi<<32 | lo
}

// Fill populates buf[:n] with true-random 64-bit words; no discard
// applies since there is no block structure to align to.
func (o *OSEntropy) Fill(buf []uint64, n int) {
	for i := 0; i < n; i++ {
		buf[i] = o.Next64()
	}
}
