package chainmap

// nodeHandle addresses a chain node inside an overflowAllocator as
// (block index, slot index), biased by one so that the zero value means "no node".
type nodeHandle uint64

const nilNode nodeHandle = 0

func makeNodeHandle(block, slot int) nodeHandle {
	return nodeHandle(uint64(block)<<32|uint64(slot)) + 1
}

func (h nodeHandle) split() (block, slot int) {
	v := uint64(h - 1)

	return int(v >> 32), int(uint32(v))
}

// overflowAllocator hands out chain nodes from fixed-size blocks.
//
// Allocation always comes from the last block through a single cursor.
// Blocks are only ever appended, so a handle stays valid until the allocator
// is dropped. There is no free.
type overflowAllocator struct {
	blocks    [][]entry
	blockSize int

	// Next free slot in the last block.
	cursor int
}

func newOverflowAllocator(blockSize int) overflowAllocator {
	return overflowAllocator{
		blocks:    [][]entry{make([]entry, blockSize)},
		blockSize: blockSize,
	}
}

func (o *overflowAllocator) allocate() (nodeHandle, *entry) {
	if o.cursor == o.blockSize {
		o.blocks = append(o.blocks, make([]entry, o.blockSize))
		o.cursor = 0
	}

	block := len(o.blocks) - 1
	slot := o.cursor
	o.cursor++

	return makeNodeHandle(block, slot), &o.blocks[block][slot]
}

func (o *overflowAllocator) at(h nodeHandle) *entry {
	block, slot := h.split()

	return &o.blocks[block][slot]
}

// Number of nodes handed out so far.
func (o *overflowAllocator) allocated() int {
	return (len(o.blocks)-1)*o.blockSize + o.cursor
}
