// blackjacksim estimates the EV of every player action in every reachable
// blackjack decision state by parallel Monte Carlo simulation, converging
// each estimate to a target standard error, and renders the resulting
// optimal-strategy tables.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/cardroom/blackjacksim/internal/config"
	"github.com/cardroom/blackjacksim/internal/report"
	"github.com/cardroom/blackjacksim/internal/runner"
	"github.com/cardroom/blackjacksim/internal/table"
)

type CLI struct {
	Config        string  `short:"c" default:"blackjacksim.hcl" help:"HCL config file with house rules and simulation parameters"`
	Seed          int64   `default:"0" help:"RNG seed (0 for random)"`
	TargetSEM     float64 `name:"target-sem" default:"0" help:"Target standard error of the mean (overrides config)"`
	BatchSize     int     `default:"0" help:"Trials per state-action batch per iteration (overrides config)"`
	MaxIterations int     `default:"0" help:"Iteration budget (overrides config)"`
	Workers       int     `default:"0" help:"Parallel workers (0 for NumCPU)"`
	Output        string  `short:"o" default:"strategy.md" help:"Markdown output path"`
	CloseGap      float64 `default:"0.02" help:"EV gap threshold for the close-decision listing"`
	Detail        bool    `help:"Print per-state EV detail for every state"`
	Verbose       bool    `short:"v" help:"Verbose logging"`
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("blackjacksim"),
		kong.Description("Monte Carlo blackjack strategy optimizer"))

	level := log.InfoLevel
	if cli.Verbose {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{Level: level})

	cfg, err := config.Load(cli.Config)
	if err != nil {
		logger.Fatal("failed to load config", "path", cli.Config, "error", err)
	}
	if cli.TargetSEM > 0 {
		cfg.TargetSEM = cli.TargetSEM
	}
	if cli.BatchSize > 0 {
		cfg.BatchSize = cli.BatchSize
	}
	if cli.MaxIterations > 0 {
		cfg.MaxIterations = cli.MaxIterations
	}
	if cli.Workers > 0 {
		cfg.Workers = cli.Workers
	}

	states := table.GenerateStates()
	logger.Info("generated decision space", "states", len(states))

	outcome, err := runner.Run(context.Background(), states, runner.Config{
		Rules:         cfg.Rules,
		CardWeights:   cfg.CardWeights,
		TargetSEM:     cfg.TargetSEM,
		BatchSize:     cfg.BatchSize,
		MaxIterations: cfg.MaxIterations,
		Workers:       cfg.Workers,
		Seed:          cli.Seed,
		Logger:        logger,
	})
	if err != nil {
		logger.Fatal("simulation failed", "error", err)
	}

	fmt.Println(report.Summary(outcome))

	tables := report.StrategyTables(outcome.Results, cfg.Rules)
	fmt.Println(tables)

	if err := report.WriteMarkdown(cli.Output, "Optimal Blackjack Strategy", tables); err != nil {
		logger.Fatal("failed to write strategy file", "path", cli.Output, "error", err)
	}
	logger.Info("strategy written", "path", cli.Output)

	fmt.Println(report.CloseDecisions(outcome.Results, cli.CloseGap, 25))

	if cli.Detail {
		for _, s := range states {
			fmt.Println(report.StateDetail(outcome.Results, s))
		}
	}

	kctx.Exit(0)
}
