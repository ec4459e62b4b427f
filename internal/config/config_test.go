package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardroom/blackjacksim/internal/deck"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "blackjacksim.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)

	assert.False(t, cfg.Rules.DealerHitsSoft17)
	assert.True(t, cfg.Rules.DoubleAfterSplit)
	assert.False(t, cfg.Rules.DealerPeeks)
	assert.True(t, cfg.Rules.LateSurrender)
	assert.Equal(t, 1.5, cfg.Rules.BlackjackPayout)
	assert.Equal(t, 2, cfg.Rules.MaxSplitHands)
	assert.Equal(t, 0.005, cfg.TargetSEM)
	assert.Equal(t, 10_000, cfg.BatchSize)
	assert.Equal(t, 1000, cfg.MaxIterations)
}

func TestLoadOverridesOnlyWhatIsSet(t *testing.T) {
	path := writeConfig(t, `
rules {
  dealer_hits_soft_17 = true
  late_surrender      = false
  blackjack_payout    = 1.2
}

simulation {
  target_sem = 0.01
  batch_size = 5000
}
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.Rules.DealerHitsSoft17)
	assert.False(t, cfg.Rules.LateSurrender)
	assert.Equal(t, 1.2, cfg.Rules.BlackjackPayout)
	assert.Equal(t, 0.01, cfg.TargetSEM)
	assert.Equal(t, 5000, cfg.BatchSize)

	// Untouched fields keep their defaults.
	assert.True(t, cfg.Rules.DoubleAfterSplit)
	assert.Equal(t, 2, cfg.Rules.MaxSplitHands)
	assert.Equal(t, 1000, cfg.MaxIterations)
}

func TestLoadTenWeight(t *testing.T) {
	path := writeConfig(t, `
rules {
  ten_weight = 3
}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.CardWeights[deck.Ten])
	assert.Equal(t, 1, cfg.CardWeights[deck.Ace])
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"zero target sem", "simulation {\n  target_sem = 0\n}\n"},
		{"negative payout", "rules {\n  blackjack_payout = -1.5\n}\n"},
		{"resplits", "rules {\n  max_split_hands = 4\n}\n"},
		{"zero batch", "simulation {\n  batch_size = 0\n}\n"},
		{"malformed", "rules {\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}
