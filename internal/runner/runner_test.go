package runner

import (
	"context"
	"testing"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardroom/blackjacksim/internal/deck"
	"github.com/cardroom/blackjacksim/internal/engine"
	"github.com/cardroom/blackjacksim/internal/table"
)

func testStates() []table.State {
	return []table.State{
		{Total: 16, Dealer: deck.Ten},
		{Total: 18, Dealer: deck.Six, Soft: true},
		{Total: 16, Dealer: deck.Nine, Pair: true},
	}
}

// A one-iteration budget must terminate and return a fully populated mapping
// with whatever precision one batch bought.
func TestRunIterationCapReturnsFullMapping(t *testing.T) {
	states := testStates()
	outcome, err := Run(context.Background(), states, Config{
		Rules:         engine.EvolutionLive(),
		TargetSEM:     0.000001, // unreachable in one batch
		BatchSize:     200,
		MaxIterations: 1,
		Workers:       4,
		Seed:          7,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, outcome.Iterations)
	assert.False(t, outcome.FullyConverged())
	require.Len(t, outcome.Results, len(states))

	for _, s := range states {
		actions := outcome.Results[s]
		require.NotNil(t, actions, "state %s missing from results", s)
		legal := engine.EvolutionLive().FirstActions(s.Pair)
		require.Len(t, actions, len(legal))
		for _, a := range legal {
			st := actions[a]
			require.NotNil(t, st, "%s %s missing", s, a)
			assert.Equal(t, uint64(200), st.N, "%s %s ran exactly one batch", s, a)
		}
	}
}

func TestRunSplitOnlyForPairs(t *testing.T) {
	states := testStates()
	outcome, err := Run(context.Background(), states, Config{
		TargetSEM:     10, // converge after the first batch
		BatchSize:     50,
		MaxIterations: 5,
		Seed:          3,
	})
	require.NoError(t, err)

	for _, s := range states {
		_, hasSplit := outcome.Results[s][table.Split]
		assert.Equal(t, s.Pair, hasSplit, "state %s", s)
	}
}

func TestRunConverges(t *testing.T) {
	var progress []Progress
	outcome, err := Run(context.Background(), testStates(), Config{
		TargetSEM:     0.05,
		BatchSize:     2_000,
		MaxIterations: 100,
		Seed:          11,
		Clock:         quartz.NewMock(t),
		Progress:      func(p Progress) { progress = append(progress, p) },
	})
	require.NoError(t, err)

	assert.True(t, outcome.FullyConverged(),
		"converged %d of %d pairs", outcome.Converged, outcome.Pairs)
	for s, actions := range outcome.Results {
		for a, st := range actions {
			assert.Less(t, st.SEM(), 0.05, "%s %s", s, a)
		}
	}

	require.NotEmpty(t, progress)
	last := progress[len(progress)-1]
	assert.Equal(t, outcome.Iterations, last.Iteration)
	assert.Equal(t, outcome.Pairs, last.Converged)
}

// Partitioning across workers must not change the totals for a fixed seed:
// the per-task seed sequence depends only on the pending order.
func TestRunWorkerCountInvariantTotals(t *testing.T) {
	run := func(workers int) *Outcome {
		outcome, err := Run(context.Background(), testStates(), Config{
			TargetSEM:     0.000001,
			BatchSize:     100,
			MaxIterations: 2,
			Workers:       workers,
			Seed:          19,
		})
		require.NoError(t, err)
		return outcome
	}

	one, many := run(1), run(8)
	for s, actions := range one.Results {
		for a, st := range actions {
			other := many.Results[s][a]
			assert.Equal(t, st.N, other.N, "%s %s", s, a)
			assert.Equal(t, st.Sum, other.Sum, "%s %s", s, a)
			assert.Equal(t, st.SumSq, other.SumSq, "%s %s", s, a)
		}
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, testStates(), Config{
		TargetSEM:     0.000001,
		BatchSize:     100,
		MaxIterations: 10,
		Seed:          5,
	})
	assert.ErrorIs(t, err, context.Canceled)
}
