// Package runner schedules Monte Carlo batches across a worker pool until
// every state-action estimate reaches the target precision or the iteration
// budget runs out.
package runner

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/cardroom/blackjacksim/internal/deck"
	"github.com/cardroom/blackjacksim/internal/engine"
	"github.com/cardroom/blackjacksim/internal/stats"
	"github.com/cardroom/blackjacksim/internal/table"
)

// Config controls a convergence run. Zero fields fall back to the defaults
// the original rule set was tuned with.
type Config struct {
	Rules         engine.Rules
	CardWeights   deck.Weights
	TargetSEM     float64
	BatchSize     int
	MaxIterations int
	Workers       int
	Seed          int64

	Logger   *log.Logger
	Clock    quartz.Clock
	Progress func(Progress)
}

// Progress is emitted after each scheduler iteration.
type Progress struct {
	Iteration int
	Converged int
	Total     int
	Elapsed   time.Duration
}

// Results maps every decision state to the accumulated statistics of each of
// its legal actions. It is fully populated in every terminal case, including
// an exhausted iteration budget.
type Results map[table.State]map[table.Action]*stats.Stats

// Outcome is the terminal report of a run.
type Outcome struct {
	Results    Results
	Iterations int
	Converged  int
	Pairs      int
	Elapsed    time.Duration
}

// FullyConverged reports whether every state-action pair reached the target
// standard error. A false value is a degraded-precision outcome, not an
// error: the results still carry whatever precision was reached.
func (o *Outcome) FullyConverged() bool {
	return o.Converged == o.Pairs
}

// task pairs a decision state with one committed first action and the
// representative hand it is simulated from.
type task struct {
	state  table.State
	action table.Action
	hand   deck.Hand
}

func (c *Config) fillDefaults() {
	if c.CardWeights == nil {
		c.CardWeights = deck.DefaultWeights()
	}
	if c.TargetSEM <= 0 {
		c.TargetSEM = 0.005
	}
	if c.BatchSize <= 0 {
		c.BatchSize = 10_000
	}
	if c.MaxIterations <= 0 {
		c.MaxIterations = 1000
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.Seed == 0 {
		c.Seed = time.Now().UnixNano()
	}
	if c.Logger == nil {
		c.Logger = log.New(io.Discard)
	}
	if c.Clock == nil {
		c.Clock = quartz.NewReal()
	}
	if c.Rules.BlackjackPayout == 0 && c.Rules.MaxSplitHands == 0 {
		// Zero-valued rules mean "the house defaults".
		c.Rules = engine.EvolutionLive()
	}
	if c.Rules.HitPolicy == nil {
		c.Rules.HitPolicy = engine.ThresholdHitPolicy
	}
	if c.Rules.SplitDoublePolicy == nil {
		c.Rules.SplitDoublePolicy = engine.ThresholdSplitDoublePolicy
	}
}

// Run drives every state-action pair to the target standard error. Each
// iteration fans one fixed-size batch per pending pair out across the worker
// pool, merges the partial accumulators into the persistent store, then drops
// the pairs whose SEM fell below target. Batches run on private card sources,
// so partitioning across workers does not change the distribution of the
// answer.
func Run(ctx context.Context, states []table.State, cfg Config) (*Outcome, error) {
	cfg.fillDefaults()

	results := make(Results, len(states))
	var pending []task
	for _, s := range states {
		actions := cfg.Rules.FirstActions(s.Pair)
		store := make(map[table.Action]*stats.Stats, len(actions))
		for _, a := range actions {
			store[a] = &stats.Stats{}
			pending = append(pending, task{state: s, action: a, hand: table.StartingHand(s)})
		}
		results[s] = store
	}

	pairs := len(pending)
	cfg.Logger.Info("starting convergence run",
		"states", len(states), "pairs", pairs,
		"target_sem", cfg.TargetSEM, "batch_size", cfg.BatchSize, "workers", cfg.Workers)

	// Master RNG hands every batch its own seed so each worker's card stream
	// is private and the run is reproducible for a fixed seed and worker
	// count.
	masterRng := rand.New(rand.NewSource(cfg.Seed))

	start := cfg.Clock.Now()
	converged := 0
	iterations := 0

	for iter := 1; iter <= cfg.MaxIterations && len(pending) > 0; iter++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		iterations = iter

		batches := make([]stats.Stats, len(pending))
		seeds := make([]int64, len(pending))
		for i := range seeds {
			seeds[i] = masterRng.Int63()
		}

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(cfg.Workers)
		for i, t := range pending {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				shoe, err := deck.NewShoeWeighted(seeds[i], cfg.CardWeights)
				if err != nil {
					return err
				}
				eng := engine.New(shoe, cfg.Rules)
				batch, err := eng.SimulateBatch(t.hand, t.state.Dealer, t.action, cfg.BatchSize)
				if err != nil {
					return fmt.Errorf("%s %s: %w", t.state, t.action, err)
				}
				// Disjoint indices; no lock needed for the map phase.
				batches[i] = batch
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}

		// Single-threaded reduce: merge is associative and commutative, so
		// batch order within the iteration is immaterial.
		for i, t := range pending {
			results[t.state][t.action].Merge(batches[i])
		}

		next := pending[:0]
		for _, t := range pending {
			if results[t.state][t.action].SEM() >= cfg.TargetSEM {
				next = append(next, t)
			} else {
				converged++
			}
		}
		pending = next

		elapsed := cfg.Clock.Since(start)
		if cfg.Progress != nil {
			cfg.Progress(Progress{Iteration: iter, Converged: converged, Total: pairs, Elapsed: elapsed})
		}
		if iter%5 == 1 || len(pending) == 0 {
			cfg.Logger.Info("iteration complete",
				"iteration", iter, "converged", converged, "pairs", pairs,
				"pending", len(pending), "elapsed", elapsed.Round(time.Millisecond))
		}
	}

	outcome := &Outcome{
		Results:    results,
		Iterations: iterations,
		Converged:  converged,
		Pairs:      pairs,
		Elapsed:    cfg.Clock.Since(start),
	}
	if !outcome.FullyConverged() {
		cfg.Logger.Warn("iteration budget exhausted before full convergence",
			"converged", converged, "pairs", pairs, "iterations", iterations)
	}
	return outcome, nil
}
