package chainmap

import (
	"hash/maphash"

	"github.com/cespare/xxhash"
	"github.com/spaolacci/murmur3"
)

type HashFunc func(key []byte) uint64

// MakeDefaultHashFunc returns a maphash based hasher with its own random seed.
// Hashes are not stable across processes.
func MakeDefaultHashFunc() HashFunc {
	seed := maphash.MakeSeed()

	return func(key []byte) uint64 {
		return maphash.Bytes(seed, key)
	}
}

// MurmurHash hashes a key with 64-bit murmur3.
func MurmurHash(key []byte) uint64 {
	return murmur3.Sum64(key)
}

// XXHash hashes a key with xxhash64.
func XXHash(key []byte) uint64 {
	return xxhash.Sum64(key)
}

const (
	polyBase    = 31
	polyModulus = 1_000_000_009
	polyTerms   = 60
)

// polyPowers holds polyBase^i for i in [0, polyTerms), wrapping at 2^64.
var polyPowers = func() (p [polyTerms]uint64) {
	p[0] = 1
	for i := 1; i < polyTerms; i++ {
		p[i] = p[i-1] * polyBase
	}

	return p
}()

// PolyHash is a positional polynomial hash: the sum of key[i]*31^i mod 1e9+9.
// Positions past the power table wrap around.
func PolyHash(key []byte) uint64 {
	var h uint64
	for i, c := range key {
		h += uint64(c) * polyPowers[i%polyTerms] % polyModulus
	}

	return h
}

// HashString hashes s with h without copying it.
func HashString(h HashFunc, s string) uint64 {
	return h(stringBytes(s))
}
