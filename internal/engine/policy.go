package engine

import "github.com/cardroom/blackjacksim/internal/deck"

// HitPolicy decides whether a hand keeps drawing after the player's first
// committed action. The EV estimator prices only the first action; subsequent
// decisions still have to pick something, and that something is this fixed
// deterministic policy. It is a basic-strategy approximation, not the output
// of the EV computation itself, and is swappable precisely because it is an
// approximation.
type HitPolicy func(total int, soft bool, upcard deck.Card) bool

// SplitDoublePolicy decides whether a fresh two-card post-split hand doubles
// when the rules allow doubling after a split.
type SplitDoublePolicy func(total int, soft bool) bool

// ThresholdHitPolicy is the default secondary policy: stand on hard 17+,
// soft 18+, and on hard 12-16 against a weak dealer up-card (2-6); otherwise
// keep hitting.
func ThresholdHitPolicy(total int, soft bool, upcard deck.Card) bool {
	if soft {
		return total < 18
	}
	if total >= 17 {
		return false
	}
	if total >= 12 && upcard >= deck.Two && upcard <= deck.Six {
		return false
	}
	return true
}

// ThresholdSplitDoublePolicy is the default DAS policy: double hard 9, 10 or
// 11 and soft 16, 17 or 18.
func ThresholdSplitDoublePolicy(total int, soft bool) bool {
	if soft {
		return total >= 16 && total <= 18
	}
	return total >= 9 && total <= 11
}
