package chainmap

import (
	"strconv"
	"testing"
)

var sizes = []int{
	// 8192,
	1 << 16,
	1 << 20,
	// 1 << 22,
}

func BenchmarkShardLookup_Hit(b *testing.B) {
	b.Run("variant=stdMap", benchSimulateLoad(benchmarkStdMapLookupHit))
	b.Run("variant=shard", func(b *testing.B) {
		b.Run("hash=maphash", benchSimulateLoad(benchmarkShardLookupHit(nil)))
		b.Run("hash=murmur3", benchSimulateLoad(benchmarkShardLookupHit(MurmurHash)))
		b.Run("hash=xxhash", benchSimulateLoad(benchmarkShardLookupHit(XXHash)))
		b.Run("hash=poly", benchSimulateLoad(benchmarkShardLookupHit(PolyHash)))
	})
}

func BenchmarkShardLookup_Miss(b *testing.B) {
	b.Run("variant=stdMap", benchSimulateLoad(benchmarkStdMapLookupMiss))
	b.Run("variant=shard", benchSimulateLoad(benchmarkShardLookupMiss))
}

func BenchmarkShardInsert(b *testing.B) {
	b.Run("variant=stdMap", benchSimulateLoad(benchmarkStdMapInsert))
	b.Run("variant=shard", benchSimulateLoad(benchmarkShardInsert))
}

func benchmarkStdMapLookupHit(b *testing.B, capacity int) {
	keys := genKeys(0, capacity)
	m := make(map[string]uint32, capacity)
	for i, k := range keys {
		m[k] = uint32(i)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = m[keys[i%len(keys)]]
	}
}

func benchmarkShardLookupHit(h HashFunc) func(b *testing.B, capacity int) {
	return func(b *testing.B, capacity int) {
		var opts []Option
		if h != nil {
			opts = append(opts, WithHashFunc(h))
		}

		keys := genKeys(0, capacity)
		s := New(capacity, opts...)
		for i, k := range keys {
			_ = s.InsertString(k, uint32(i))
		}

		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_, _ = s.LookupString(keys[i%len(keys)])
		}
	}
}

func benchmarkStdMapLookupMiss(b *testing.B, capacity int) {
	m := make(map[string]uint32, capacity)
	for i, k := range genKeys(0, capacity) {
		m[k] = uint32(i)
	}

	misses := genKeys(capacity, capacity*2)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = m[misses[i%len(misses)]]
	}
}

func benchmarkShardLookupMiss(b *testing.B, capacity int) {
	s := New(capacity)
	for i, k := range genKeys(0, capacity) {
		_ = s.InsertString(k, uint32(i))
	}

	misses := genKeys(capacity, capacity*2)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = s.LookupString(misses[i%len(misses)])
	}
}

func benchmarkStdMapInsert(b *testing.B, capacity int) {
	keys := genKeys(0, capacity)

	b.ResetTimer()
	m := make(map[string]uint32, capacity)
	for i := 0; i < b.N; i++ {
		if i%capacity == 0 {
			m = make(map[string]uint32, capacity)
		}

		m[keys[i%capacity]] = uint32(i)
	}
}

func benchmarkShardInsert(b *testing.B, capacity int) {
	keys := genKeys(0, capacity)

	b.ResetTimer()
	s := New(capacity)
	for i := 0; i < b.N; i++ {
		if i%capacity == 0 {
			s = New(capacity)
		}

		_ = s.InsertString(keys[i%capacity], uint32(i))
	}
}

func genKeys(start, end int) []string {
	keys := make([]string, end-start)
	for i := range keys {
		keys[i] = "benchmark-key-" + strconv.Itoa(start+i)
	}

	return keys
}

func benchSimulateLoad(benchFunc func(b *testing.B, capacity int)) func(b *testing.B) {
	return func(b *testing.B) {
		for _, size := range sizes {
			b.Run("capacity="+strconv.Itoa(size), func(b *testing.B) {
				benchFunc(b, size)
			})
		}
	}
}
