package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardroom/blackjacksim/internal/deck"
	"github.com/cardroom/blackjacksim/internal/engine"
	"github.com/cardroom/blackjacksim/internal/runner"
	"github.com/cardroom/blackjacksim/internal/stats"
	"github.com/cardroom/blackjacksim/internal/table"
)

func withMean(mean float64, n int) *stats.Stats {
	s := &stats.Stats{}
	for i := 0; i < n; i++ {
		s.Update(mean)
	}
	return s
}

func fakeResults() runner.Results {
	return runner.Results{
		{Total: 16, Dealer: deck.Ten}: {
			table.Hit:       withMean(-0.41, 100),
			table.Stand:     withMean(-0.54, 100),
			table.Surrender: withMean(-0.50, 100),
		},
		{Total: 17, Dealer: deck.Six}: {
			table.Hit:   withMean(-0.48, 100),
			table.Stand: withMean(-0.01, 100),
		},
		{Total: 12, Dealer: deck.Five, Soft: true, Pair: true}: {
			table.Split: withMean(0.45, 100),
			table.Hit:   withMean(0.10, 100),
		},
	}
}

func TestStrategyTablesSymbols(t *testing.T) {
	out := StrategyTables(fakeResults(), engine.EvolutionLive())

	assert.Contains(t, out, "## Hard Totals")
	assert.Contains(t, out, "## Soft Totals")
	assert.Contains(t, out, "## Pairs")

	// Hard 16 vs 10: hit narrowly beats surrender.
	require.Contains(t, out, "| **16** |")
	row16 := lineContaining(t, out, "| **16** |")
	cells := strings.Split(row16, "|")
	// Cells: "", " **16** ", then dealer 2..10, A.
	assert.Equal(t, "H", strings.TrimSpace(cells[10]), "hard 16 vs 10")

	row17 := lineContaining(t, out, "| **17** |")
	cells = strings.Split(row17, "|")
	assert.Equal(t, "S", strings.TrimSpace(cells[6]), "hard 17 vs 6")
	assert.Equal(t, "-", strings.TrimSpace(cells[2]), "hard 17 vs 2 has no data")

	rowAA := lineContaining(t, out, "| **A,A** |")
	cells = strings.Split(rowAA, "|")
	assert.Equal(t, "P", strings.TrimSpace(cells[5]), "A,A vs 5")
}

func TestStrategyTablesLegendReflectsRules(t *testing.T) {
	rules := engine.EvolutionLive()
	out := StrategyTables(runner.Results{}, rules)
	assert.Contains(t, out, "S17")
	assert.Contains(t, out, "ENHC")
	assert.Contains(t, out, "Late surrender")

	rules.DealerHitsSoft17 = true
	rules.DealerPeeks = true
	out = StrategyTables(runner.Results{}, rules)
	assert.Contains(t, out, "H17")
	assert.Contains(t, out, "Dealer peeks")
}

func TestCloseDecisions(t *testing.T) {
	out := CloseDecisions(fakeResults(), 0.12, 25)

	// Hit vs surrender on hard 16 vs 10 differ by 0.09: listed.
	assert.Contains(t, out, "Hard 16 vs 10")
	// The A,A gap (0.35) exceeds the threshold.
	assert.NotContains(t, out, "A,A vs 5")
}

func TestStateDetail(t *testing.T) {
	res := fakeResults()
	out := StateDetail(res, table.State{Total: 16, Dealer: deck.Ten})
	assert.Contains(t, out, "Hard 16 vs 10")
	assert.Contains(t, out, "hit")
	assert.Contains(t, out, "100")

	out = StateDetail(res, table.State{Total: 5, Dealer: deck.Two})
	assert.Contains(t, out, "no data")
}

func TestWriteMarkdownAtomic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "strategy.md")
	require.NoError(t, WriteMarkdown(path, "Optimal Blackjack Strategy", "body\n"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "# Optimal Blackjack Strategy\n"))
	assert.Contains(t, string(data), "body")

	// No stray temp files left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func lineContaining(t *testing.T, s, substr string) string {
	t.Helper()
	for _, line := range strings.Split(s, "\n") {
		if strings.Contains(line, substr) {
			return line
		}
	}
	t.Fatalf("no line containing %q", substr)
	return ""
}
