package chainmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyArena_append(t *testing.T) {
	a := newKeyArena(16, 8)

	r1 := a.append([]byte("hello"))
	r2 := a.append([]byte("world"))

	assert.Equal(t, keyRef{block: 0, off: 0, n: 5}, r1)
	assert.Equal(t, keyRef{block: 0, off: 5, n: 5}, r2)
	assert.Equal(t, "hello", string(a.bytes(r1)))
	assert.Equal(t, "world", string(a.bytes(r2)))
	assert.Equal(t, 10, a.size())
	assert.Equal(t, 16, a.capacity())
}

func TestKeyArena_Grow(t *testing.T) {
	// growSize = max(ceil(15/5), 10) = 10
	a := newKeyArena(15, 10)
	require.Equal(t, 10, a.growSize)

	first := a.append([]byte("0123456789"))
	firstBlock := &a.blocks[0][0]

	second := a.append([]byte("abcdefghij"))
	require.Len(t, a.blocks, 2)

	// The old block is never copied or moved.
	assert.Same(t, firstBlock, &a.blocks[0][0])
	assert.Equal(t, keyRef{block: 0, off: 0, n: 10}, first)
	assert.Equal(t, keyRef{block: 1, off: 0, n: 10}, second)
	assert.Equal(t, "0123456789", string(a.bytes(first)))
	assert.Equal(t, "abcdefghij", string(a.bytes(second)))
	assert.Equal(t, 15+10, a.capacity())
}

func TestKeyArena_FitsExactly(t *testing.T) {
	a := newKeyArena(6, 6)

	r := a.append([]byte("abc"))
	r2 := a.append([]byte("def"))

	require.Len(t, a.blocks, 1)
	assert.Equal(t, "abcdef", string(a.blocks[0]))
	assert.Equal(t, "def", string(a.bytes(r2)))

	r3 := a.append([]byte("g"))
	require.Len(t, a.blocks, 2)
	assert.Equal(t, "abc", string(a.bytes(r)))
	assert.Equal(t, "g", string(a.bytes(r3)))
}

func TestKeyArena_bytesCapped(t *testing.T) {
	a := newKeyArena(32, 8)

	r := a.append([]byte("abc"))
	a.append([]byte("xyz"))

	b := a.bytes(r)
	assert.Equal(t, 3, cap(b))
}

func TestKeyArena_EmptyKey(t *testing.T) {
	a := newKeyArena(1, 1)

	r := a.append(nil)
	assert.Empty(t, a.bytes(r))
	assert.Equal(t, 0, a.size())
	assert.Len(t, a.blocks, 1)
}
