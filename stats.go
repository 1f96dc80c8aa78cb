package chainmap

type Stats struct {
	Size         int
	Capacity     int
	UsedBuckets  int
	Collisions   int
	LongestChain int

	ArenaBlocks   int
	ArenaBytes    int
	ArenaCapacity int

	OverflowBlocks int
	OverflowNodes  int
}

// Fraction of buckets holding at least one entry.
func (s Stats) LoadFactor() float64 {
	if s.Capacity == 0 {
		return 0
	}

	return float64(s.UsedBuckets) / float64(s.Capacity)
}

func (s *Stats) add(o Stats) {
	s.Size += o.Size
	s.Capacity += o.Capacity
	s.UsedBuckets += o.UsedBuckets
	s.Collisions += o.Collisions
	s.LongestChain = max(s.LongestChain, o.LongestChain)

	s.ArenaBlocks += o.ArenaBlocks
	s.ArenaBytes += o.ArenaBytes
	s.ArenaCapacity += o.ArenaCapacity

	s.OverflowBlocks += o.OverflowBlocks
	s.OverflowNodes += o.OverflowNodes
}
