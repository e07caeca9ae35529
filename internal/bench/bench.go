package bench

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"

	"github.com/lojhan/hashbench/internal/movie"
	"github.com/lojhan/hashbench/internal/store"
)

type Strategy string

const (
	SeparateChaining Strategy = "separate-chaining"
	OpenAddressing   Strategy = "open-addressing"
)

const cancelCheckInterval = 256

var ErrTooFewTables = errors.New("bench: at least two table sizes are required")

var DefaultSizes = []uint64{1001, 2000, 3000, 4000, 5000, 6000, 7000, 8000, 9000, 10000}

type KeyFunc func(movie.Movie) string

// Options configures Run. PrimaryKey and SecondaryKey default to
// movie.TitleGenreKey and movie.TitleRatingKey.
type Options struct {
	Sizes        []uint64
	PrimaryKey   KeyFunc
	SecondaryKey KeyFunc
	Observers    func(strategy Strategy, index int) store.Observer
}

type TableStats struct {
	Strategy   Strategy
	Index      int
	Requested  uint64
	Capacity   uint64
	Collisions uint64
	Entries    int
	Rejected   int
}

type Result struct {
	Chained  []*store.ChainedTable[movie.Movie]
	Probing  []*store.ProbingTable[movie.Movie]
	Stats    []TableStats
	Attempts int64
}

func (r *Result) StatsFor(strategy Strategy) []TableStats {
	var out []TableStats
	for _, s := range r.Stats {
		if s.Strategy == strategy {
			out = append(out, s)
		}
	}
	return out
}

// table is the surface shared by both strategies.
type table interface {
	Insert(key string, value movie.Movie) bool
	Collisions() uint64
	Len() int
	Capacity() uint64
}

// Assign returns the tables that movie number i goes into under the
// title/genre key and the title/rating key respectively.
func Assign(i, tables int) (first, second int) {
	half := tables / 2
	return i % tables, half + i%(tables-half)
}

// Run builds one table per size for each strategy. The two strategies are
// built on separate goroutines; every table is owned by exactly one of them.
func Run(ctx context.Context, movies []movie.Movie, opts Options) (*Result, error) {
	sizes := opts.Sizes
	if len(sizes) == 0 {
		sizes = DefaultSizes
	}
	if len(sizes) < 2 {
		return nil, ErrTooFewTables
	}

	keys := [2]KeyFunc{opts.PrimaryKey, opts.SecondaryKey}
	if keys[0] == nil {
		keys[0] = movie.TitleGenreKey
	}
	if keys[1] == nil {
		keys[1] = movie.TitleRatingKey
	}

	observer := func(strategy Strategy, index int) store.Option {
		if opts.Observers == nil {
			return store.WithObserver(nil)
		}
		return store.WithObserver(opts.Observers(strategy, index))
	}

	res := &Result{
		Chained: make([]*store.ChainedTable[movie.Movie], len(sizes)),
		Probing: make([]*store.ProbingTable[movie.Movie], len(sizes)),
	}
	chainedTables := make([]table, len(sizes))
	probingTables := make([]table, len(sizes))

	for i, size := range sizes {
		c, err := store.NewChainedTable[movie.Movie](size, observer(SeparateChaining, i))
		if err != nil {
			return nil, fmt.Errorf("failed to create chained table %d: %w", i, err)
		}
		p, err := store.NewProbingTable[movie.Movie](size, observer(OpenAddressing, i))
		if err != nil {
			return nil, fmt.Errorf("failed to create probing table %d: %w", i, err)
		}
		res.Chained[i], chainedTables[i] = c, c
		res.Probing[i], probingTables[i] = p, p
	}

	var attempts atomic.Int64
	chainedRejected := make([]int, len(sizes))
	probingRejected := make([]int, len(sizes))

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return fill(ctx, movies, keys, chainedTables, chainedRejected, &attempts)
	})
	g.Go(func() error {
		return fill(ctx, movies, keys, probingTables, probingRejected, &attempts)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res.Attempts = attempts.Load()
	res.Stats = append(stats(SeparateChaining, sizes, chainedTables, chainedRejected),
		stats(OpenAddressing, sizes, probingTables, probingRejected)...)
	return res, nil
}

func fill(ctx context.Context, movies []movie.Movie, keys [2]KeyFunc, tables []table, rejected []int, attempts *atomic.Int64) error {
	for i, m := range movies {
		if i%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		first, second := Assign(i, len(tables))
		if !tables[first].Insert(keys[0](m), m) {
			rejected[first]++
		}
		if !tables[second].Insert(keys[1](m), m) {
			rejected[second]++
		}
		attempts.Add(2)
	}
	return nil
}

func stats(strategy Strategy, sizes []uint64, tables []table, rejected []int) []TableStats {
	out := make([]TableStats, len(tables))
	for i, t := range tables {
		out[i] = TableStats{
			Strategy:   strategy,
			Index:      i,
			Requested:  sizes[i],
			Capacity:   t.Capacity(),
			Collisions: t.Collisions(),
			Entries:    t.Len(),
			Rejected:   rejected[i],
		}
	}
	return out
}
