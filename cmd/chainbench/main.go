// Command chainbench loads a synthetic corpus into one of the maps and
// reads it back, reporting timings and memory.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/homier/chainmap"
	"github.com/homier/chainmap/internal/baseline"
	"github.com/homier/chainmap/internal/bench"
	"github.com/homier/chainmap/internal/corpus"
	"github.com/homier/chainmap/internal/memstat"
)

type options struct {
	n      int
	shards int
	seed   uint64
	kind   string
	hash   string
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		log.Fatalf("flags: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts); err != nil {
		log.Fatalf("chainbench: %v", err)
	}
}

func parseFlags(args []string) (options, error) {
	var o options

	fs := flag.NewFlagSet("chainbench", flag.ContinueOnError)
	fs.IntVar(&o.n, "n", 10_000_000, "number of keys")
	fs.IntVar(&o.shards, "shards", 24, "number of shards, one writer each")
	fs.Uint64Var(&o.seed, "seed", 1, "corpus seed")
	fs.StringVar(&o.kind, "map", getenv("CHAINBENCH_MAP", baseline.KindChained),
		"map under test: "+strings.Join(baseline.Kinds, "|"))
	fs.StringVar(&o.hash, "hash", getenv("CHAINBENCH_HASH", "maphash"),
		"hash for the chained map: maphash|murmur3|xxhash|poly")

	if err := fs.Parse(args); err != nil {
		return o, err
	}

	if o.n < 0 {
		return o, fmt.Errorf("-n must not be negative, got %d", o.n)
	}

	if o.shards <= 0 {
		return o, fmt.Errorf("-shards must be positive, got %d", o.shards)
	}

	return o, nil
}

func hashOption(name string) (chainmap.Option, error) {
	switch name {
	case "maphash":
		return chainmap.WithHashFunc(chainmap.MakeDefaultHashFunc()), nil
	case "murmur3":
		return chainmap.WithHashFunc(chainmap.MurmurHash), nil
	case "xxhash":
		return chainmap.WithHashFunc(chainmap.XXHash), nil
	case "poly":
		return chainmap.WithHashFunc(chainmap.PolyHash), nil
	default:
		return nil, fmt.Errorf("unknown hash %q", name)
	}
}

func run(ctx context.Context, o options) error {
	hashOpt, err := hashOption(o.hash)
	if err != nil {
		return err
	}

	log.Printf("generating %d keys (seed %d)", o.n, o.seed)
	keys := corpus.Generate(o.n, o.seed)
	values := corpus.Checksums(keys)

	if kb, err := memstat.CurrentKB(); err == nil {
		log.Printf("init mem usage kb: %d", kb)
	}

	m, err := baseline.New(o.kind, o.shards, o.n, hashOpt)
	if err != nil {
		return err
	}

	rep, err := bench.Run(ctx, bench.Config{Shards: o.shards}, m, keys, values)
	if err != nil {
		return err
	}

	log.Printf("map=%s shards=%d keys=%d", o.kind, rep.Shards, rep.Keys)
	log.Printf("insert cost %v, map size %d", rep.Insert, rep.Size)
	log.Printf("mem usage kb after insert: %d (before %d)", rep.MemAfterInsertKB, rep.MemBeforeKB)
	log.Printf("search cost %v", rep.Lookup)

	if c, ok := m.(*baseline.Chained); ok {
		st := c.Stats()
		log.Printf("collisions %d, longest chain %d, load factor %.3f, arena blocks %d, overflow blocks %d",
			st.Collisions, st.LongestChain, st.LoadFactor(), st.ArenaBlocks, st.OverflowBlocks)
	}

	if peak, err := memstat.PeakKB(); err == nil {
		log.Printf("peak mem usage kb: %d", peak)
	}

	return nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
