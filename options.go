package chainmap

const (
	// Bucket table headroom: capacity = ceil(expected * 6/5).
	bucketHeadroomNum = 6
	bucketHeadroomDen = 5

	// Overflow block capacity = ceil(expected * 1/5).
	overflowRatioNum = 1
	overflowRatioDen = 5

	// Arena initial size = ceil(1.5 * avgKeyLen * expected).
	arenaHeadroomNum = 3
	arenaHeadroomDen = 2

	// Each arena growth block is at least 1/5 of the initial one.
	arenaGrowthNum = 1
	arenaGrowthDen = 5

	DefaultAverageKeyLen = 35
	DefaultMaxKeyLen     = 1 << 16
)

type config struct {
	hashFunc          HashFunc
	avgKeyLen         int
	maxKeyLen         int
	arenaSize         int
	overflowBlockSize int
}

type Option func(c *config)

// Override default hash function.
func WithHashFunc(f HashFunc) Option {
	return func(c *config) {
		c.hashFunc = f
	}
}

// Sets the expected average key length used to size the key arena.
func WithAverageKeyLen(n int) Option {
	return func(c *config) {
		c.avgKeyLen = n
	}
}

// Sets the longest key a shard accepts. Longer keys are rejected with ErrKeyTooLong.
func WithMaxKeyLen(n int) Option {
	return func(c *config) {
		c.maxKeyLen = n
	}
}

// Sets the initial key arena block size in bytes, overriding the estimate
// derived from the expected count.
func WithArenaSize(bytes int) Option {
	return func(c *config) {
		c.arenaSize = bytes
	}
}

// Sets the number of chain nodes per overflow block.
func WithOverflowBlockSize(nodes int) Option {
	return func(c *config) {
		c.overflowBlockSize = nodes
	}
}

func newConfig(expectedCount int, opts []Option) config {
	c := config{
		avgKeyLen: DefaultAverageKeyLen,
		maxKeyLen: DefaultMaxKeyLen,
	}

	for _, opt := range opts {
		opt(&c)
	}

	if c.hashFunc == nil {
		c.hashFunc = MakeDefaultHashFunc()
	}

	c.avgKeyLen = max(c.avgKeyLen, 1)
	c.maxKeyLen = max(c.maxKeyLen, 1)

	if c.arenaSize <= 0 {
		c.arenaSize = ceilRatio(expectedCount*c.avgKeyLen, arenaHeadroomNum, arenaHeadroomDen)
	}

	if c.overflowBlockSize <= 0 {
		c.overflowBlockSize = ceilRatio(expectedCount, overflowRatioNum, overflowRatioDen)
	}

	return c
}
