// Package corpus generates the synthetic key set and its checksums.
package corpus

import (
	"hash/crc32"

	"golang.org/x/exp/rand"
)

const (
	MinKeyLen = 10
	MaxKeyLen = 60
)

// Generate returns n random lowercase keys with lengths in [MinKeyLen, MaxKeyLen].
// The same seed always yields the same keys.
func Generate(n int, seed uint64) []string {
	r := rand.New(rand.NewSource(seed))
	buf := make([]byte, MaxKeyLen)

	keys := make([]string, n)
	for i := range keys {
		l := MinKeyLen + r.Intn(MaxKeyLen-MinKeyLen+1)
		for j := range l {
			buf[j] = 'a' + byte(r.Intn(26))
		}

		keys[i] = string(buf[:l])
	}

	return keys
}

// Checksums returns the IEEE crc32 of every key.
func Checksums(keys []string) []uint32 {
	sums := make([]uint32, len(keys))
	for i, k := range keys {
		sums[i] = crc32.ChecksumIEEE([]byte(k))
	}

	return sums
}

// Range is the half-open index interval [Start, End).
type Range struct {
	Start, End int
}

func (r Range) Len() int {
	return r.End - r.Start
}

// Split cuts [0, n) into parts contiguous ranges. The first n%parts ranges
// get one extra element.
func Split(n, parts int) []Range {
	ranges := make([]Range, parts)

	size, rem := n/parts, n%parts
	start := 0
	for i := range ranges {
		end := start + size
		if i < rem {
			end++
		}

		ranges[i] = Range{Start: start, End: end}
		start = end
	}

	return ranges
}
