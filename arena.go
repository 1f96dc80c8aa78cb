package chainmap

// keyRef addresses key bytes copied into a keyArena.
type keyRef struct {
	block uint32
	off   uint32
	n     uint32
}

// keyArena is an append-only byte store for copied keys.
//
// It never moves bytes once written: when the current block runs out of room,
// a new block is allocated and later appends go there. The tail of the
// previous block is left unused. Every keyRef issued stays valid for the
// lifetime of the arena.
type keyArena struct {
	blocks [][]byte

	// Write position within the last block.
	pos int

	growSize int
	used     int
}

func newKeyArena(initialSize, maxKeyLen int) keyArena {
	return keyArena{
		blocks:   [][]byte{make([]byte, initialSize)},
		growSize: max(ceilRatio(initialSize, arenaGrowthNum, arenaGrowthDen), maxKeyLen),
	}
}

// append copies key into the arena and returns a reference to the copy.
// The caller guarantees len(key) <= maxKeyLen.
func (a *keyArena) append(key []byte) keyRef {
	cur := a.blocks[len(a.blocks)-1]
	if len(cur)-a.pos < len(key) {
		cur = make([]byte, a.growSize)
		a.blocks = append(a.blocks, cur)
		a.pos = 0
	}

	ref := keyRef{
		block: uint32(len(a.blocks) - 1),
		off:   uint32(a.pos),
		n:     uint32(len(key)),
	}

	copy(cur[a.pos:], key)
	a.pos += len(key)
	a.used += len(key)

	return ref
}

// bytes resolves ref to the stored key. The result must not be modified.
func (a *keyArena) bytes(ref keyRef) []byte {
	b := a.blocks[ref.block]

	return b[ref.off : ref.off+ref.n : ref.off+ref.n]
}

// Number of key bytes written.
func (a *keyArena) size() int {
	return a.used
}

// Total bytes allocated across all blocks.
func (a *keyArena) capacity() int {
	var n int
	for _, b := range a.blocks {
		n += len(b)
	}

	return n
}
