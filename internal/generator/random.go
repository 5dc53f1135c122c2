package generator

import (
	"encoding/binary"
	"math/rand"
)

// RNG wraps math/rand.Rand for seeded random generation
type RNG struct {
	*rand.Rand
}

// NewRNG creates a new seeded random number generator
func NewRNG(seed int64) *RNG {
	return &RNG{
		Rand: rand.New(rand.NewSource(seed)),
	}
}

const wordSize = 8

// blockGenerator produces an unbounded deterministic byte sequence for a
// seed, materialized in bounded blocks of 8-byte words. The logical sequence
// depends only on the seed and the number of words drawn so far; block
// boundaries are an allocation detail and never change the bytes.
type blockGenerator struct {
	seed     int64
	maxBlock int
	rng      *RNG
}

func newBlockGenerator(seed int64, maxBlockBytes int) *blockGenerator {
	g := &blockGenerator{
		seed:     seed,
		maxBlock: maxBlockBytes,
	}
	g.reset()
	return g
}

// reset rewinds the generator to the start of its sequence
func (g *blockGenerator) reset() {
	g.rng = NewRNG(g.seed)
}

// block generates the next block of pseudorandom bytes. The block covers at
// most n bytes rounded up to a whole number of words, capped at maxBlock.
func (g *blockGenerator) block(n int64) []byte {
	size := n
	if size > int64(g.maxBlock) {
		size = int64(g.maxBlock)
	}
	if size <= 0 {
		return nil
	}

	words := int((size + wordSize - 1) / wordSize)
	out := make([]byte, words*wordSize)
	for i := 0; i < words; i++ {
		binary.LittleEndian.PutUint64(out[i*wordSize:], g.rng.Uint64())
	}
	return out
}
