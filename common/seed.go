package common

import (
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// ParseSeed turns a seed string into a 64-bit seed. Decimal and 0x-prefixed
// integers are used as-is; any other text is hashed.
func ParseSeed(s string) uint64 {
	s = strings.TrimSpace(s)
	if v, err := strconv.ParseUint(s, 0, 64); err == nil {
		return v
	}
	return xxhash.Sum64String(s)
}

// NewSource returns a PCG-backed generator for seed.
func NewSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// SubSource derives an independent generator for the i-th consumer of seed,
// so parallel workers never share state.
func SubSource(seed uint64, i int) *rand.Rand {
	var buf [16]byte
	for b := 0; b < 8; b++ {
		buf[b] = byte(seed >> (8 * b))
		buf[8+b] = byte(uint64(i) >> (8 * b))
	}
	return NewSource(xxhash.Sum64(buf[:]))
}
