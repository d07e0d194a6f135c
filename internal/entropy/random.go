// Package entropy provides the injectable random sources used by catalog generation.
// Seeded sources are deterministic; crypto/rand only picks a seed when none is given.
package entropy

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"math/rand/v2"
)

// Source is a uniform random source over [0, 1) and over integer ranges.
// *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	// Float64 returns a value in [0, 1).
	Float64() float64
	// IntN returns a value in [0, n). Panics if n <= 0.
	IntN(n int) int
}

// NewSeeded returns a deterministic source. The same seed always yields the
// same sequence.
func NewSeeded(seed int64) *rand.Rand {
	// #nosec G404
	return rand.New(rand.NewPCG(seedWord(seed, "a"), seedWord(seed, "b")))
}

func seedWord(seed int64, salt string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(fmt.Sprintf("%d:%s", seed, salt)))
	return h.Sum64()
}

// ResolveSeed returns seed unchanged, or a fresh non-zero seed when seed is 0.
// Callers keep the resolved value so an unseeded catalog can be stored and
// regenerated later.
func ResolveSeed(seed int64) int64 {
	for seed == 0 {
		seed = int64(cryptoUint64() >> 1)
	}
	return seed
}

// cryptoUint64 draws 64 bits from crypto/rand.
func cryptoUint64() uint64 {
	var buf [8]byte
	_, err := crand.Read(buf[:])
	if err != nil {
		return 0x9e3779b97f4a7c15
	}
	return binary.LittleEndian.Uint64(buf[:])
}
