// Package table enumerates the blackjack decision space: every distinct
// player situation, the actions available in it, and the representative hand
// used to simulate it.
package table

import (
	"fmt"

	"github.com/cardroom/blackjacksim/internal/deck"
)

// Action is a player decision. Double and Surrender are first-action choices
// only; Split additionally requires a paired hand.
type Action uint8

const (
	Hit Action = iota
	Stand
	Double
	Split
	Surrender
)

// Symbol returns the one-letter strategy-chart code for the action.
func (a Action) Symbol() string {
	switch a {
	case Hit:
		return "H"
	case Stand:
		return "S"
	case Double:
		return "D"
	case Split:
		return "P"
	case Surrender:
		return "R"
	default:
		return "?"
	}
}

func (a Action) String() string {
	switch a {
	case Hit:
		return "hit"
	case Stand:
		return "stand"
	case Double:
		return "double"
	case Split:
		return "split"
	case Surrender:
		return "surrender"
	default:
		return "unknown"
	}
}

// AllActions lists every action, in chart order.
var AllActions = []Action{Hit, Stand, Double, Split, Surrender}

// State is a decision-state key: an equivalence class over hands sharing the
// same total, softness and pair-ness against a given dealer up-card.
type State struct {
	Total  int
	Dealer deck.Card
	Soft   bool
	Pair   bool
}

// String renders the state the way strategy charts label it, e.g.
// "Hard 16 vs 10", "A,7 vs A" or "8,8 vs 6".
func (s State) String() string {
	switch {
	case s.Pair && s.Soft:
		return fmt.Sprintf("A,A vs %s", s.Dealer)
	case s.Pair:
		return fmt.Sprintf("%d,%d vs %s", s.Total/2, s.Total/2, s.Dealer)
	case s.Soft:
		return fmt.Sprintf("A,%d vs %s", s.Total-11, s.Dealer)
	default:
		return fmt.Sprintf("Hard %d vs %s", s.Total, s.Dealer)
	}
}
