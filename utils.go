package chainmap

import "unsafe"

// Returns ceil(n * num / den), but never less than 1.
func ceilRatio(n, num, den int) int {
	v := (n*num + den - 1) / den

	return max(v, 1)
}

// Returns a read-only view over the bytes of s.
// The result must never be written to.
func stringBytes(s string) []byte {
	return unsafe.Slice(unsafe.StringData(s), len(s))
}
