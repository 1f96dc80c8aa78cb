// Package baseline holds the maps the chained engine is measured against.
//
// Every implementation keeps the first value stored for a key, like the
// engine does, and takes a shard id on every call even if it ignores it.
package baseline

import (
	"fmt"
	"sync"

	"github.com/llxisdsh/pb"

	"github.com/homier/chainmap"
)

// Map is the surface the benchmark driver drives.
//
// Unless stated otherwise, a shard id must have a single writer at a time and
// no readers while it is written.
type Map interface {
	Insert(shard int, key string, value uint32) error
	Lookup(shard int, key string) (uint32, bool)
	Size() int
}

// Names accepted by New.
const (
	KindChained    = "chained"
	KindPlain      = "plain"
	KindPerShard   = "pershard"
	KindConcurrent = "concurrent"
	KindSwiss      = "swiss"
)

var Kinds = []string{KindChained, KindPlain, KindPerShard, KindConcurrent, KindSwiss}

// New builds the map named by kind for shards writers and expected keys in total.
func New(kind string, shards, expected int, opts ...chainmap.Option) (Map, error) {
	switch kind {
	case KindChained:
		return NewChained(shards, expected, opts...), nil
	case KindPlain:
		return NewPlain(expected), nil
	case KindPerShard:
		return NewPerShard(shards, expected), nil
	case KindConcurrent:
		return NewConcurrent(), nil
	case KindSwiss:
		return NewSwiss(shards, expected), nil
	default:
		return nil, fmt.Errorf("unknown map kind %q", kind)
	}
}

// Chained adapts chainmap.ShardedMap.
type Chained struct {
	*chainmap.ShardedMap
}

func NewChained(shards, expected int, opts ...chainmap.Option) *Chained {
	return &Chained{ShardedMap: chainmap.NewSharded(shards, expected, opts...)}
}

func (c *Chained) Insert(shard int, key string, value uint32) error {
	return c.InsertString(shard, key, value)
}

func (c *Chained) Lookup(shard int, key string) (uint32, bool) {
	return c.LookupString(shard, key)
}

// Plain is a single built-in map behind a mutex; the shard id is ignored.
// It is safe for concurrent use.
type Plain struct {
	mu sync.RWMutex
	m  map[string]uint32
}

func NewPlain(expected int) *Plain {
	return &Plain{m: make(map[string]uint32, expected)}
}

func (p *Plain) Insert(_ int, key string, value uint32) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.m[key]; !ok {
		p.m[key] = value
	}

	return nil
}

func (p *Plain) Lookup(_ int, key string) (uint32, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	v, ok := p.m[key]
	return v, ok
}

func (p *Plain) Size() int {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return len(p.m)
}

// PerShard keeps one built-in map per shard id, without locking.
type PerShard struct {
	shards []map[string]uint32
}

func NewPerShard(shards, expected int) *PerShard {
	ps := &PerShard{shards: make([]map[string]uint32, shards)}
	for i := range ps.shards {
		ps.shards[i] = make(map[string]uint32, expected/shards)
	}

	return ps
}

func (ps *PerShard) Insert(shard int, key string, value uint32) error {
	if shard < 0 || shard >= len(ps.shards) {
		return chainmap.ErrShardOutOfRange
	}

	m := ps.shards[shard]
	if _, ok := m[key]; !ok {
		m[key] = value
	}

	return nil
}

func (ps *PerShard) Lookup(shard int, key string) (uint32, bool) {
	if shard < 0 || shard >= len(ps.shards) {
		return 0, false
	}

	v, ok := ps.shards[shard][key]
	return v, ok
}

func (ps *PerShard) Size() int {
	var n int
	for _, m := range ps.shards {
		n += len(m)
	}

	return n
}

// Concurrent is one shared pb.MapOf; the shard id is ignored.
// It is safe for concurrent use.
type Concurrent struct {
	m pb.MapOf[string, uint32]
}

func NewConcurrent() *Concurrent {
	return &Concurrent{}
}

func (c *Concurrent) Insert(_ int, key string, value uint32) error {
	c.m.LoadOrStore(key, value)

	return nil
}

func (c *Concurrent) Lookup(_ int, key string) (uint32, bool) {
	return c.m.Load(key)
}

func (c *Concurrent) Size() int {
	return c.m.Size()
}

// Swiss keeps one fixed-capacity swiss table per shard id, without locking.
type Swiss struct {
	shards []swissTable
}

func NewSwiss(shards, expected int) *Swiss {
	s := &Swiss{shards: make([]swissTable, shards)}
	for i := range s.shards {
		s.shards[i].init(expected / shards)
	}

	return s
}

// Insert returns ErrTableFull once the shard reaches its load limit.
func (s *Swiss) Insert(shard int, key string, value uint32) error {
	if shard < 0 || shard >= len(s.shards) {
		return chainmap.ErrShardOutOfRange
	}

	_, err := s.shards[shard].put(key, value)
	return err
}

func (s *Swiss) Lookup(shard int, key string) (uint32, bool) {
	if shard < 0 || shard >= len(s.shards) {
		return 0, false
	}

	return s.shards[shard].get(key)
}

func (s *Swiss) Size() int {
	var n int
	for i := range s.shards {
		n += int(s.shards[i].size)
	}

	return n
}
