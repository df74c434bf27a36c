// Package xxhash32 adapts github.com/pierrec/xxHash/xxHash32 to the
// checksum shapes the LZ4 frame format needs: a one-shot digest over a
// byte slice, and an incremental hash.Hash32 for streaming the content
// checksum across many Write calls.
package xxhash32

import (
	"hash"

	"github.com/pierrec/xxHash/xxHash32"
)

// Seed is the seed LZ4 mandates for every frame-level XXH32 checksum:
// header checksum, block checksum, and content checksum all use 0.
const Seed = 0

// Sum returns the XXH32 digest of data with the LZ4 seed.
func Sum(data []byte) uint32 {
	return xxHash32.Checksum(data, Seed)
}

// New returns an incremental XXH32 hash seeded per LZ4's convention, for
// the content checksum which accumulates across every block's
// uncompressed bytes.
func New() hash.Hash32 {
	return xxHash32.New(Seed)
}
