package chainmap

// ShardedMap is a fixed set of independent shards.
//
// The caller picks the shard for every operation; the map does no routing and
// no locking. Each shard id must have at most one writer at a time, and no
// reader of a shard may run while it is being written. Size and Stats are only
// meaningful when no shard is being mutated.
type ShardedMap struct {
	shards []Shard
}

// Returns a map of shardCount shards, each sized for expectedTotal/shardCount
// keys. Panics if shardCount is not positive.
func NewSharded(shardCount, expectedTotal int, opts ...Option) *ShardedMap {
	if shardCount <= 0 {
		panic("chainmap: shard count must be positive")
	}

	sm := &ShardedMap{shards: make([]Shard, shardCount)}
	for i := range sm.shards {
		sm.shards[i].init(expectedTotal/shardCount, opts...)
	}

	return sm
}

func (sm *ShardedMap) ShardCount() int {
	return len(sm.shards)
}

// Returns the shard with the given id, or nil if it is out of range.
func (sm *ShardedMap) Shard(id int) *Shard {
	if id < 0 || id >= len(sm.shards) {
		return nil
	}

	return &sm.shards[id]
}

func (sm *ShardedMap) Insert(shardID int, key []byte, value uint32) error {
	s := sm.Shard(shardID)
	if s == nil {
		return ErrShardOutOfRange
	}

	return s.Insert(key, value)
}

func (sm *ShardedMap) InsertString(shardID int, key string, value uint32) error {
	return sm.Insert(shardID, stringBytes(key), value)
}

// Lookup reports a miss for an out-of-range shard id.
func (sm *ShardedMap) Lookup(shardID int, key []byte) (uint32, bool) {
	s := sm.Shard(shardID)
	if s == nil {
		return 0, false
	}

	return s.Lookup(key)
}

func (sm *ShardedMap) LookupString(shardID int, key string) (uint32, bool) {
	return sm.Lookup(shardID, stringBytes(key))
}

// Sum of all shard sizes.
func (sm *ShardedMap) Size() int {
	var n int
	for i := range sm.shards {
		n += sm.shards[i].Size()
	}

	return n
}

func (sm *ShardedMap) Stats() Stats {
	var st Stats
	for i := range sm.shards {
		st.add(sm.shards[i].Stats())
	}

	return st
}
