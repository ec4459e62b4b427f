// Package engine plays blackjack hands to resolution and prices each player
// action as a signed multiple of the original bet.
package engine

import "github.com/cardroom/blackjacksim/internal/table"

// Rules carries every house-rule toggle as data. Nothing in the playout path
// hard-codes a rule; varying the rule set is a first-class use of the engine.
type Rules struct {
	// DealerHitsSoft17 selects H17; false is S17 (stand on all 17s).
	DealerHitsSoft17 bool

	// DoubleAfterSplit permits doubling on hands formed by splitting.
	DoubleAfterSplit bool

	// DealerPeeks resolves a dealer natural before the player acts (US
	// style). False is ENHC: the hole card is drawn up-front but only
	// revealed at resolution, and a dealer natural then beats doubled and
	// split hands for their full wager.
	DealerPeeks bool

	// LateSurrender offers surrender as a first action.
	LateSurrender bool

	// BlackjackPayout is the win multiple for a player natural,
	// conventionally 1.5 (3:2).
	BlackjackPayout float64

	// MaxSplitHands caps the hands a pair may become. 2 means one split and
	// no resplit; 1 disables splitting.
	MaxSplitHands int

	// OneCardSplitAces deals exactly one card to each split Ace with no
	// further action.
	OneCardSplitAces bool

	// HitPolicy decides further hits after the first committed action.
	HitPolicy HitPolicy

	// SplitDoublePolicy decides whether a fresh post-split hand doubles
	// under DoubleAfterSplit.
	SplitDoublePolicy SplitDoublePolicy
}

// EvolutionLive returns the rule set of Evolution Live Blackjack: eight decks
// approximated as infinite, S17, DAS, ENHC, late surrender, one split only,
// one card to split Aces, 3:2 naturals.
func EvolutionLive() Rules {
	return Rules{
		DealerHitsSoft17:  false,
		DoubleAfterSplit:  true,
		DealerPeeks:       false,
		LateSurrender:     true,
		BlackjackPayout:   1.5,
		MaxSplitHands:     2,
		OneCardSplitAces:  true,
		HitPolicy:         ThresholdHitPolicy,
		SplitDoublePolicy: ThresholdSplitDoublePolicy,
	}
}

// FirstActions returns the legal first actions under r for a hand that is or
// is not a pair, in chart order.
func (r Rules) FirstActions(pair bool) []table.Action {
	actions := []table.Action{table.Hit, table.Stand, table.Double}
	if pair && r.MaxSplitHands >= 2 {
		actions = append(actions, table.Split)
	}
	if r.LateSurrender {
		actions = append(actions, table.Surrender)
	}
	return actions
}
