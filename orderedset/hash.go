package orderedset

import (
	"encoding/binary"
	"math"

	"golang.org/x/exp/constraints"
)

// FNV-1a 64-bit constants.
const (
	fnvOffset64 = 14695981039346656037
	fnvPrime64  = 1099511628211
)

func fnvWrite(h uint64, b []byte) uint64 {
	for _, c := range b {
		h ^= uint64(c)
		h *= fnvPrime64
	}
	return h
}

// hashValue computes a seeded 64-bit hash of v. The per-instance seed
// lets two sets holding the same values probe independently, avoiding
// adversarial clustering across instances.
func hashValue[V constraints.Ordered](seed uint32, v V) uint64 {
	h := uint64(fnvOffset64)
	h = fnvWrite(h, binary.LittleEndian.AppendUint32(nil, seed))

	var buf [8]byte
	switch x := any(v).(type) {
	case int:
		binary.LittleEndian.PutUint64(buf[:], uint64(x))
		h = fnvWrite(h, buf[:])
	case int8:
		h = fnvWrite(h, []byte{byte(x)})
	case int16:
		binary.LittleEndian.PutUint16(buf[:2], uint16(x))
		h = fnvWrite(h, buf[:2])
	case int32:
		binary.LittleEndian.PutUint32(buf[:4], uint32(x))
		h = fnvWrite(h, buf[:4])
	case int64:
		binary.LittleEndian.PutUint64(buf[:], uint64(x))
		h = fnvWrite(h, buf[:])
	case uint:
		binary.LittleEndian.PutUint64(buf[:], uint64(x))
		h = fnvWrite(h, buf[:])
	case uint8:
		h = fnvWrite(h, []byte{x})
	case uint16:
		binary.LittleEndian.PutUint16(buf[:2], x)
		h = fnvWrite(h, buf[:2])
	case uint32:
		binary.LittleEndian.PutUint32(buf[:4], x)
		h = fnvWrite(h, buf[:4])
	case uint64:
		binary.LittleEndian.PutUint64(buf[:], x)
		h = fnvWrite(h, buf[:])
	case uintptr:
		binary.LittleEndian.PutUint64(buf[:], uint64(x))
		h = fnvWrite(h, buf[:])
	case float32:
		binary.LittleEndian.PutUint32(buf[:4], math.Float32bits(x))
		h = fnvWrite(h, buf[:4])
	case float64:
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(x))
		h = fnvWrite(h, buf[:])
	case string:
		h = fnvWrite(h, []byte(x))
	default:
		// Unreachable for any type satisfying constraints.Ordered.
		panic("orderedset: unsupported ordered value type")
	}

	return h
}

// isPrime reports whether n is prime, via trial division; table sizes
// stay small enough (driven by live set cardinality) that this is
// cheap relative to the resize it guards.
func isPrime(n int) bool {
	if n < 2 {
		return false
	}
	if n%2 == 0 {
		return n == 2
	}
	for d := 3; d*d <= n; d += 2 {
		if n%d == 0 {
			return false
		}
	}
	return true
}

// nextPrime returns the smallest prime >= n.
func nextPrime(n int) int {
	if n < 2 {
		return 2
	}
	for !isPrime(n) {
		n++
	}
	return n
}
