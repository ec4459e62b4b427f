// Package config loads house rules and simulation parameters from an HCL
// file. A missing file yields the defaults; the CLI overlays its flags on
// whatever this package returns.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/cardroom/blackjacksim/internal/deck"
	"github.com/cardroom/blackjacksim/internal/engine"
)

// Config is the merged configuration consumed by the CLI.
type Config struct {
	Rules       engine.Rules
	CardWeights deck.Weights

	TargetSEM     float64
	BatchSize     int
	MaxIterations int
	Workers       int
}

// Default returns Evolution Live rules with the standard simulation
// parameters: SEM target 0.005, 10k-trial batches, 1000-iteration budget.
func Default() *Config {
	return &Config{
		Rules:         engine.EvolutionLive(),
		CardWeights:   deck.DefaultWeights(),
		TargetSEM:     0.005,
		BatchSize:     10_000,
		MaxIterations: 1000,
	}
}

// file mirrors the HCL layout. Pointer fields distinguish "absent" from a
// zero value so partial files only override what they mention.
type file struct {
	Rules      *rulesBlock      `hcl:"rules,block"`
	Simulation *simulationBlock `hcl:"simulation,block"`
}

type rulesBlock struct {
	DealerHitsSoft17 *bool    `hcl:"dealer_hits_soft_17,optional"`
	DoubleAfterSplit *bool    `hcl:"double_after_split,optional"`
	DealerPeeks      *bool    `hcl:"dealer_peeks,optional"`
	LateSurrender    *bool    `hcl:"late_surrender,optional"`
	BlackjackPayout  *float64 `hcl:"blackjack_payout,optional"`
	MaxSplitHands    *int     `hcl:"max_split_hands,optional"`
	OneCardSplitAces *bool    `hcl:"one_card_split_aces,optional"`
	TenWeight        *int     `hcl:"ten_weight,optional"`
}

type simulationBlock struct {
	TargetSEM     *float64 `hcl:"target_sem,optional"`
	BatchSize     *int     `hcl:"batch_size,optional"`
	MaxIterations *int     `hcl:"max_iterations,optional"`
	Workers       *int     `hcl:"workers,optional"`
}

// Load reads an HCL config file and merges it over the defaults. A missing
// file is not an error; a malformed one is.
func Load(filename string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return cfg, nil
	}

	parser := hclparse.NewParser()
	f, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse %s: %s", filename, diags.Error())
	}

	var parsed file
	if diags := gohcl.DecodeBody(f.Body, nil, &parsed); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode %s: %s", filename, diags.Error())
	}

	if r := parsed.Rules; r != nil {
		setBool(&cfg.Rules.DealerHitsSoft17, r.DealerHitsSoft17)
		setBool(&cfg.Rules.DoubleAfterSplit, r.DoubleAfterSplit)
		setBool(&cfg.Rules.DealerPeeks, r.DealerPeeks)
		setBool(&cfg.Rules.LateSurrender, r.LateSurrender)
		if r.BlackjackPayout != nil {
			if *r.BlackjackPayout <= 0 {
				return nil, fmt.Errorf("blackjack_payout must be positive, got %v", *r.BlackjackPayout)
			}
			cfg.Rules.BlackjackPayout = *r.BlackjackPayout
		}
		if r.MaxSplitHands != nil {
			if *r.MaxSplitHands < 1 || *r.MaxSplitHands > 2 {
				return nil, fmt.Errorf("max_split_hands must be 1 or 2, got %d", *r.MaxSplitHands)
			}
			cfg.Rules.MaxSplitHands = *r.MaxSplitHands
		}
		setBool(&cfg.Rules.OneCardSplitAces, r.OneCardSplitAces)
		if r.TenWeight != nil {
			if *r.TenWeight < 1 {
				return nil, fmt.Errorf("ten_weight must be at least 1, got %d", *r.TenWeight)
			}
			cfg.CardWeights[deck.Ten] = *r.TenWeight
		}
	}

	if s := parsed.Simulation; s != nil {
		if s.TargetSEM != nil {
			if *s.TargetSEM <= 0 {
				return nil, fmt.Errorf("target_sem must be positive, got %v", *s.TargetSEM)
			}
			cfg.TargetSEM = *s.TargetSEM
		}
		if s.BatchSize != nil {
			if *s.BatchSize < 1 {
				return nil, fmt.Errorf("batch_size must be at least 1, got %d", *s.BatchSize)
			}
			cfg.BatchSize = *s.BatchSize
		}
		if s.MaxIterations != nil {
			if *s.MaxIterations < 1 {
				return nil, fmt.Errorf("max_iterations must be at least 1, got %d", *s.MaxIterations)
			}
			cfg.MaxIterations = *s.MaxIterations
		}
		if s.Workers != nil {
			if *s.Workers < 1 {
				return nil, fmt.Errorf("workers must be at least 1, got %d", *s.Workers)
			}
			cfg.Workers = *s.Workers
		}
	}

	return cfg, nil
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}
