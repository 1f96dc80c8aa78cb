package chainmap

import (
	"bytes"
	"errors"
)

var (
	ErrKeyTooLong      = errors.New("chainmap: key exceeds maximum length")
	ErrShardOutOfRange = errors.New("chainmap: shard id out of range")
)

// entry is a bucket slot or a chain node.
type entry struct {
	key   keyRef
	value uint32
	full  bool
	next  nodeHandle
}

// Shard is a string-keyed map of uint32 values built for a bulk insert
// followed by bulk lookups.
//
// The bucket table is sized once from the expected count and never grows.
// Collisions are resolved by chaining nodes taken from an overflow allocator,
// and key bytes are copied into an append-only arena, so steady-state inserts
// do not allocate.
//
// Inserting a key that is already present adds a second entry behind the
// first one. Lookups return the first match, so the earliest value wins and
// later duplicates are unreachable, although they still count towards Size.
//
// A Shard is not safe for concurrent use. A single goroutine may write, and
// readers must not run until the writes happen-before them.
type Shard struct {
	buckets  []entry
	overflow overflowAllocator
	arena    keyArena

	hashFunc  HashFunc
	maxKeyLen int

	size       int
	collisions int
}

// Returns a new shard sized for expectedCount keys.
func New(expectedCount int, opts ...Option) *Shard {
	var s Shard
	s.init(expectedCount, opts...)

	return &s
}

func (s *Shard) init(expectedCount int, opts ...Option) {
	expectedCount = max(expectedCount, 0)
	c := newConfig(expectedCount, opts)

	s.buckets = make([]entry, ceilRatio(expectedCount, bucketHeadroomNum, bucketHeadroomDen))
	s.overflow = newOverflowAllocator(c.overflowBlockSize)
	s.arena = newKeyArena(c.arenaSize, c.maxKeyLen)
	s.hashFunc = c.hashFunc
	s.maxKeyLen = c.maxKeyLen
}

func (s *Shard) bucket(key []byte) int {
	return int(s.hashFunc(key) % uint64(len(s.buckets)))
}

// Insert stores value under key. It never overwrites: a duplicate key is
// appended to the chain and shadowed by the earlier entry.
func (s *Shard) Insert(key []byte, value uint32) error {
	if len(key) > s.maxKeyLen {
		return ErrKeyTooLong
	}

	target := &s.buckets[s.bucket(key)]
	if target.full {
		tail := target
		for tail.next != nilNode {
			tail = s.overflow.at(tail.next)
		}

		h, node := s.overflow.allocate()
		tail.next = h
		target = node
		s.collisions++
	}

	target.key = s.arena.append(key)
	target.value = value
	target.full = true
	s.size++

	return nil
}

func (s *Shard) InsertString(key string, value uint32) error {
	return s.Insert(stringBytes(key), value)
}

// Lookup returns the value of the first entry stored under key.
func (s *Shard) Lookup(key []byte) (uint32, bool) {
	e := &s.buckets[s.bucket(key)]
	if !e.full {
		return 0, false
	}

	for {
		stored := s.arena.bytes(e.key)
		// Cheap first-byte reject before the full compare.
		if len(stored) == len(key) &&
			(len(key) == 0 || stored[0] == key[0]) &&
			bytes.Equal(stored, key) {
			return e.value, true
		}

		if e.next == nilNode {
			return 0, false
		}

		e = s.overflow.at(e.next)
	}
}

func (s *Shard) LookupString(key string) (uint32, bool) {
	return s.Lookup(stringBytes(key))
}

// Number of inserts, duplicates included.
func (s *Shard) Size() int {
	return s.size
}

// Number of buckets.
func (s *Shard) Capacity() int {
	return len(s.buckets)
}

// Stats walks the bucket table, so it costs O(capacity).
func (s *Shard) Stats() Stats {
	st := Stats{
		Size:           s.size,
		Capacity:       len(s.buckets),
		Collisions:     s.collisions,
		ArenaBlocks:    len(s.arena.blocks),
		ArenaBytes:     s.arena.size(),
		ArenaCapacity:  s.arena.capacity(),
		OverflowBlocks: len(s.overflow.blocks),
		OverflowNodes:  s.overflow.allocated(),
	}

	for i := range s.buckets {
		e := &s.buckets[i]
		if !e.full {
			continue
		}

		st.UsedBuckets++

		chain := 1
		for e.next != nilNode {
			e = s.overflow.at(e.next)
			chain++
		}

		st.LongestChain = max(st.LongestChain, chain)
	}

	return st
}
