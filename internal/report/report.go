// Package report renders converged simulation results as strategy tables and
// supporting analyses. It is a pure consumer of the runner's output: the core
// knows nothing about formatting.
package report

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/cardroom/blackjacksim/internal/deck"
	"github.com/cardroom/blackjacksim/internal/engine"
	"github.com/cardroom/blackjacksim/internal/runner"
	"github.com/cardroom/blackjacksim/internal/table"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))
)

var dealerColumns = []deck.Card{
	deck.Two, deck.Three, deck.Four, deck.Five, deck.Six,
	deck.Seven, deck.Eight, deck.Nine, deck.Ten, deck.Ace,
}

// StrategyTables renders the hard, soft and pair tables as markdown, one
// best-action symbol per cell, "-" where a state has no recorded trials.
func StrategyTables(results runner.Results, rules engine.Rules) string {
	var b strings.Builder

	writeHeader := func(title string) {
		b.WriteString("## " + title + "\n\n")
		b.WriteString("| Hand |")
		for _, d := range dealerColumns {
			b.WriteString(" " + d.String() + " |")
		}
		b.WriteString("\n|------|")
		b.WriteString(strings.Repeat("---|", len(dealerColumns)))
		b.WriteString("\n")
	}

	writeRow := func(label string, state func(dealer deck.Card) table.State) {
		b.WriteString(fmt.Sprintf("| **%s** |", label))
		for _, d := range dealerColumns {
			symbol := "-"
			if actions, ok := results[state(d)]; ok {
				if best, _, ok := table.BestAction(actions); ok {
					symbol = best.Symbol()
				}
			}
			b.WriteString(" " + symbol + " |")
		}
		b.WriteString("\n")
	}

	writeHeader("Hard Totals")
	for total := 17; total >= 5; total-- {
		t := total
		writeRow(fmt.Sprintf("%d", t), func(d deck.Card) table.State {
			return table.State{Total: t, Dealer: d}
		})
	}
	b.WriteString("\n")

	writeHeader("Soft Totals")
	for total := 20; total >= 13; total-- {
		t := total
		writeRow(fmt.Sprintf("A,%d", t-11), func(d deck.Card) table.State {
			return table.State{Total: t, Dealer: d, Soft: true}
		})
	}
	b.WriteString("\n")

	writeHeader("Pairs")
	for card := deck.Ace; card >= deck.Two; card-- {
		c := card
		label := fmt.Sprintf("%s,%s", c, c)
		total := int(c) * 2
		soft := c == deck.Ace
		if soft {
			total = 12
		}
		writeRow(label, func(d deck.Card) table.State {
			return table.State{Total: total, Dealer: d, Soft: soft, Pair: true}
		})
	}
	b.WriteString("\n")

	b.WriteString(legend(rules))
	return b.String()
}

func legend(rules engine.Rules) string {
	var b strings.Builder
	b.WriteString("## Legend\n\n")
	b.WriteString("- **H** = Hit\n")
	b.WriteString("- **S** = Stand\n")
	b.WriteString("- **D** = Double (if not allowed, hit)\n")
	b.WriteString("- **P** = Split\n")
	b.WriteString("- **R** = Surrender (if not allowed, hit)\n\n")
	b.WriteString("### Rules Used\n\n")
	b.WriteString("- Infinite deck approximation\n")
	if rules.DealerHitsSoft17 {
		b.WriteString("- Dealer hits soft 17 (H17)\n")
	} else {
		b.WriteString("- Dealer stands on all 17s (S17)\n")
	}
	if rules.DoubleAfterSplit {
		b.WriteString("- Double after split (DAS) allowed\n")
	}
	if rules.LateSurrender {
		b.WriteString("- Late surrender allowed\n")
	}
	if rules.DealerPeeks {
		b.WriteString("- Dealer peeks for blackjack\n")
	} else {
		b.WriteString("- No peek / European no hole card (ENHC)\n")
	}
	b.WriteString(fmt.Sprintf("- Split once only (max %d hands)\n", rules.MaxSplitHands))
	if rules.OneCardSplitAces {
		b.WriteString("- One card only to split Aces\n")
	}
	b.WriteString(fmt.Sprintf("- Blackjack pays %g:1\n", rules.BlackjackPayout))
	return b.String()
}

// closeDecision is a state whose top two actions are nearly tied.
type closeDecision struct {
	state          table.State
	best, second   table.Action
	bestEV, secEV  float64
	margin         float64
}

// CloseDecisions lists the states where the EV gap between the best and
// second-best action is below threshold, tightest first, capped at limit.
// These are the cells most sensitive to simulation noise and rule nuances.
func CloseDecisions(results runner.Results, threshold float64, limit int) string {
	var close []closeDecision
	for state, actions := range results {
		ranked := table.RankedActions(actions)
		if len(ranked) < 2 {
			continue
		}
		bestEV := actions[ranked[0]].Mean()
		secEV := actions[ranked[1]].Mean()
		if margin := bestEV - secEV; margin < threshold {
			close = append(close, closeDecision{
				state: state, best: ranked[0], second: ranked[1],
				bestEV: bestEV, secEV: secEV, margin: margin,
			})
		}
	}
	sort.Slice(close, func(i, j int) bool { return close[i].margin < close[j].margin })
	if len(close) > limit {
		close = close[:limit]
	}

	var b strings.Builder
	b.WriteString(sectionStyle.Render(fmt.Sprintf("Close decisions (EV gap < %g)", threshold)))
	b.WriteString("\n\n")

	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "State\tBest\tEV\t2nd\tEV\tGap")
	for _, c := range close {
		fmt.Fprintf(w, "%s\t%s\t%+.4f\t%s\t%+.4f\t%.4f\n",
			c.state, c.best.Symbol(), c.bestEV, c.second.Symbol(), c.secEV, c.margin)
	}
	w.Flush()
	return b.String()
}

// StateDetail dumps every action's estimate for one state: mean, 95% CI,
// standard error and trial count.
func StateDetail(results runner.Results, state table.State) string {
	actions, ok := results[state]
	if !ok {
		return dimStyle.Render(fmt.Sprintf("no data for %s", state)) + "\n"
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(state.String()))
	b.WriteString("\n")

	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Action\tEV\t95% CI\tSEM\tTrials")
	for _, a := range table.AllActions {
		s, present := actions[a]
		if !present {
			continue
		}
		if s.N == 0 {
			fmt.Fprintf(w, "%s\t-\t-\t-\t0\n", a)
			continue
		}
		low, high := s.ConfidenceInterval95()
		fmt.Fprintf(w, "%s\t%+.4f\t[%+.4f, %+.4f]\t%.5f\t%d\n",
			a, s.Mean(), low, high, s.SEM(), s.N)
	}
	w.Flush()
	return b.String()
}

// Summary renders the terminal report of a run.
func Summary(outcome *runner.Outcome) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Simulation complete"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %d/%d state-action pairs converged in %d iterations (%s)\n",
		outcome.Converged, outcome.Pairs, outcome.Iterations,
		outcome.Elapsed.Round(10*time.Millisecond)))
	if !outcome.FullyConverged() {
		b.WriteString(dimStyle.Render(
			"  iteration budget exhausted; remaining pairs report their reached precision"))
		b.WriteString("\n")
	}
	return b.String()
}
