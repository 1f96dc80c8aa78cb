package baseline

import (
	"math/bits"
)

const (
	bitsetLSB = 0x0101010101010101
	bitsetMSB = 0x8080808080808080
)

// bitset represents a set of slots within a group.
//
// The underlying representation uses one byte per slot, where each byte is
// either 0x80 if the slot is part of the set or 0x00 otherwise.
type bitset uint64

// first returns the relative index of the first slot in the set.
// Returns groupSize if the bitset is empty.
func (b bitset) first() uintptr {
	return uintptr(bits.TrailingZeros64(uint64(b)) >> 3)
}

// removeFirst drops the first slot from the set.
func (b bitset) removeFirst() bitset {
	return b & (b - 1)
}

// matchH2 returns the slots whose control byte equals h2.
// It may report false positives for bytes right after a true match, so
// callers always confirm with a key comparison.
//
//go:inline
func matchH2(group uint64, h2 uint8) bitset {
	v := group ^ (bitsetLSB * uint64(h2))
	return bitset(((v - bitsetLSB) &^ v) & bitsetMSB)
}

// matchEmpty returns the slots that were never written.
// The table has no deletes, so any control byte with the MSB set is empty.
//
//go:inline
func matchEmpty(group uint64) bitset {
	return bitset(group & bitsetMSB)
}
