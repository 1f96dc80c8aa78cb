// Package bench drives a baseline.Map through the insert-then-lookup workload.
//
// Each shard id is owned by one goroutine that works through a contiguous
// slice of the corpus. The lookup phase starts only after every insert
// goroutine has returned, which is the barrier the maps rely on.
package bench

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/homier/chainmap/internal/baseline"
	"github.com/homier/chainmap/internal/corpus"
	"github.com/homier/chainmap/internal/memstat"
)

// How many keys a worker handles between context checks.
const ctxCheckEvery = 4096

var ErrLengthMismatch = errors.New("bench: keys and values differ in length")

type Config struct {
	Shards int

	// Reports resident memory in KiB. Defaults to memstat.CurrentKB.
	MemFunc func() (int64, error)
}

type Report struct {
	Keys   int
	Shards int
	Size   int

	Insert time.Duration
	Lookup time.Duration

	// Resident memory in KiB; -1 when it could not be read.
	MemBeforeKB      int64
	MemAfterInsertKB int64
}

// MismatchError reports a key that did not read back the value it was
// inserted with.
type MismatchError struct {
	Shard int
	Key   string
	Want  uint32
	Got   uint32
	Found bool
}

func (e *MismatchError) Error() string {
	if !e.Found {
		return fmt.Sprintf("shard %d: key %q not found", e.Shard, e.Key)
	}

	return fmt.Sprintf("shard %d: key %q: got %d, want %d", e.Shard, e.Key, e.Got, e.Want)
}

// Run inserts keys[i] -> values[i] into m and reads every key back.
func Run(ctx context.Context, cfg Config, m baseline.Map, keys []string, values []uint32) (Report, error) {
	if len(keys) != len(values) {
		return Report{}, ErrLengthMismatch
	}

	if cfg.Shards <= 0 {
		return Report{}, fmt.Errorf("bench: invalid shard count %d", cfg.Shards)
	}

	if cfg.MemFunc == nil {
		cfg.MemFunc = memstat.CurrentKB
	}

	rep := Report{
		Keys:        len(keys),
		Shards:      cfg.Shards,
		MemBeforeKB: readMem(cfg.MemFunc),
	}

	ranges := corpus.Split(len(keys), cfg.Shards)

	start := time.Now()
	err := runPhase(ctx, ranges, func(shard, i int) error {
		if err := m.Insert(shard, keys[i], values[i]); err != nil {
			return fmt.Errorf("shard %d: insert %q: %w", shard, keys[i], err)
		}

		return nil
	})
	if err != nil {
		return rep, err
	}

	rep.Insert = time.Since(start)
	rep.Size = m.Size()
	rep.MemAfterInsertKB = readMem(cfg.MemFunc)

	start = time.Now()
	err = runPhase(ctx, ranges, func(shard, i int) error {
		got, ok := m.Lookup(shard, keys[i])
		if !ok || got != values[i] {
			return &MismatchError{Shard: shard, Key: keys[i], Want: values[i], Got: got, Found: ok}
		}

		return nil
	})
	if err != nil {
		return rep, err
	}

	rep.Lookup = time.Since(start)

	return rep, nil
}

// runPhase calls fn for every index of every range, one goroutine per range,
// and waits for all of them.
func runPhase(ctx context.Context, ranges []corpus.Range, fn func(shard, i int) error) error {
	g, ctx := errgroup.WithContext(ctx)

	for shard, r := range ranges {
		g.Go(func() error {
			for i := r.Start; i < r.End; i++ {
				if (i-r.Start)%ctxCheckEvery == 0 {
					if err := ctx.Err(); err != nil {
						return err
					}
				}

				if err := fn(shard, i); err != nil {
					return err
				}
			}

			return nil
		})
	}

	return g.Wait()
}

func readMem(f func() (int64, error)) int64 {
	kb, err := f()
	if err != nil {
		return -1
	}

	return kb
}
