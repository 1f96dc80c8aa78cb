package baseline

import (
	"errors"
	"hash/maphash"
	"math/bits"
	"unsafe"
)

const (
	groupSize = 8

	slotEmpty = 0x80
)

var ErrTableFull = errors.New("baseline: swiss table is full")

type group struct {
	// 8 bytes of metadata (h2 or empty marker)
	// This fits perfectly in a single uint64 load
	ctrls [groupSize]uint8

	// String headers are 16 bytes each, so keys alone span two cache lines.
	slots  [groupSize]string
	values [groupSize]uint32
}

var emptyCtrls = [groupSize]uint8{
	slotEmpty, slotEmpty, slotEmpty, slotEmpty,
	slotEmpty, slotEmpty, slotEmpty, slotEmpty,
}

// swissTable is an insert-only open-addressing table with a fixed capacity.
// It keeps the first value stored for a key.
type swissTable struct {
	groups []group

	numGroupsMask     uintptr
	capacityEffective uintptr
	size              uintptr

	seed maphash.Seed
}

// Returns the next power of 2 for the given value `v`.
func nextPowerOf2(v uint32) uint32 {
	return uint32(1) << min(bits.Len32(v-1), 31)
}

func hashSplit(hash uint64) (uintptr, uint8) {
	h1 := uintptr(hash >> 7)
	h2 := uint8(hash & 0x7F)

	return h1, h2
}

// Sizes the table so that expected keys stay under the 87.5% load limit.
func (t *swissTable) init(expected int) {
	want := max(expected*8/7+1, groupSize)
	normalizedCapacity := uintptr(nextPowerOf2(uint32(want)))
	numGroups := normalizedCapacity / groupSize

	t.groups = make([]group, numGroups)
	t.numGroupsMask = numGroups - 1
	t.capacityEffective = normalizedCapacity * 7 / 8
	t.seed = maphash.MakeSeed()

	for i := range t.groups {
		copy(t.groups[i].ctrls[:], emptyCtrls[:])
	}
}

func (t *swissTable) get(key string) (uint32, bool) {
	h1, h2 := hashSplit(maphash.String(t.seed, key))
	mask := t.numGroupsMask
	start := (h1 / groupSize) & mask

	for p, offset := uintptr(0), start; p <= mask; p++ {
		g := &t.groups[offset]
		ctrl := *(*uint64)(unsafe.Pointer(&g.ctrls))

		// SIMD-like match
		matches := matchH2(ctrl, h2)
		for matches != 0 {
			idx := matches.first()
			if g.slots[idx] == key {
				return g.values[idx], true
			}

			matches = matches.removeFirst()
		}

		// Termination
		if matchEmpty(ctrl) != 0 {
			return 0, false
		}

		// Quadratic probe math
		offset = (start + (p+1)*(p+2)/2) & mask
	}

	return 0, false
}

// put stores key unless it is already present.
// Returns whether the key is new, or ErrTableFull.
func (t *swissTable) put(key string, value uint32) (bool, error) {
	if t.size >= t.capacityEffective {
		return false, ErrTableFull
	}

	h1, h2 := hashSplit(maphash.String(t.seed, key))
	mask := t.numGroupsMask
	start := (h1 / groupSize) & mask

	for p, offset := uintptr(0), start; p <= mask; p++ {
		g := &t.groups[offset]
		ctrl := *(*uint64)(unsafe.Pointer(&g.ctrls))

		// 1. Existing check
		matchMask := matchH2(ctrl, h2)
		for matchMask != 0 {
			if g.slots[matchMask.first()] == key {
				return false, nil
			}

			matchMask = matchMask.removeFirst()
		}

		// 2. Without deletes, the first empty slot on the probe path is the
		// end of the path as well.
		matchMask = matchEmpty(ctrl)
		if matchMask != 0 {
			idx := matchMask.first()
			g.ctrls[idx] = h2
			g.slots[idx] = key
			g.values[idx] = value
			t.size++

			return true, nil
		}

		offset = (start + (p+1)*(p+2)/2) & mask
	}

	return false, ErrTableFull
}
