package engine

import (
	"errors"
	"fmt"

	"github.com/cardroom/blackjacksim/internal/deck"
	"github.com/cardroom/blackjacksim/internal/stats"
	"github.com/cardroom/blackjacksim/internal/table"
)

// ErrNotPair signals a Split requested on a hand that is not a two-card
// pair. That is a defect in the caller, never a priced outcome.
var ErrNotPair = errors.New("split requires a paired two-card hand")

// Engine plays single hands to resolution under a fixed rule set. It owns a
// private card source and is not safe for concurrent use; each worker builds
// its own.
type Engine struct {
	src   deck.Source
	rules Rules
}

// New returns an engine drawing from src under rules.
func New(src deck.Source, rules Rules) *Engine {
	return &Engine{src: src, rules: rules}
}

// SimulateAction plays one hand from the given start, committing to action as
// the first decision, and returns the payoff as a signed multiple of the
// original bet: -1 a full loss, +1.5 a 3:2 natural, 0 a push, +/-2 doubled
// outcomes, -0.5 a surrender.
func (e *Engine) SimulateAction(hand deck.Hand, upcard deck.Card, action table.Action) (float64, error) {
	// ENHC: the hole card exists in the random stream from the start; it is
	// only consulted at resolution unless the rules say the dealer peeks.
	hole := e.src.Draw()

	if hand.IsBlackjack() {
		if dealerBlackjack(upcard, hole) {
			return 0, nil
		}
		return e.rules.BlackjackPayout, nil
	}

	if e.rules.DealerPeeks && dealerBlackjack(upcard, hole) {
		// Peek ends the hand before the player commits further chips.
		return -1, nil
	}

	switch action {
	case table.Stand:
		return e.resolve(hand, upcard, hole), nil
	case table.Hit:
		return e.playHit(hand, upcard, hole), nil
	case table.Double:
		return e.playDouble(hand, upcard, hole), nil
	case table.Split:
		return e.playSplit(hand, upcard, hole)
	case table.Surrender:
		if !e.rules.LateSurrender {
			return 0, fmt.Errorf("surrender is not offered under these rules")
		}
		if dealerBlackjack(upcard, hole) {
			// ENHC surrender does not protect against a dealer natural.
			return -1, nil
		}
		return -0.5, nil
	default:
		return 0, fmt.Errorf("unknown action %d", action)
	}
}

// SimulateBatch runs n independent trials of the same state-action pair into
// a fresh accumulator. A playout error aborts the batch: it indicates a
// configuration or logic defect, not a bad sample.
func (e *Engine) SimulateBatch(hand deck.Hand, upcard deck.Card, action table.Action, n int) (stats.Stats, error) {
	var s stats.Stats
	for i := 0; i < n; i++ {
		payoff, err := e.SimulateAction(hand, upcard, action)
		if err != nil {
			return stats.Stats{}, fmt.Errorf("trial %d of %s %s: %w", i, action, hand.Cards(), err)
		}
		s.Update(payoff)
	}
	return s, nil
}

func (e *Engine) playHit(hand deck.Hand, upcard, hole deck.Card) float64 {
	hand.Add(e.src.Draw())
	if hand.IsBust() {
		return -1
	}

	// The first hit was the committed action; from here the fixed secondary
	// policy decides. MaxHandSize guards the loop against any pathological
	// policy.
	for hand.Len() < deck.MaxHandSize {
		total, soft := hand.Value()
		if !e.rules.HitPolicy(total, soft, upcard) {
			break
		}
		hand.Add(e.src.Draw())
		if hand.IsBust() {
			return -1
		}
	}

	return e.resolve(hand, upcard, hole)
}

func (e *Engine) playDouble(hand deck.Hand, upcard, hole deck.Card) float64 {
	hand.Add(e.src.Draw())
	if hand.IsBust() {
		return -2
	}
	return e.resolve(hand, upcard, hole) * 2
}

func (e *Engine) playSplit(hand deck.Hand, upcard, hole deck.Card) (float64, error) {
	if hand.Len() != 2 || hand.Cards()[0] != hand.Cards()[1] {
		return 0, fmt.Errorf("%w: %v", ErrNotPair, hand.Cards())
	}
	if e.rules.MaxSplitHands < 2 {
		return 0, fmt.Errorf("splitting is disabled under these rules")
	}

	splitCard := hand.First()
	aces := splitCard == deck.Ace

	var total float64
	for i := 0; i < 2; i++ {
		h := deck.NewHand(splitCard, e.src.Draw())
		if aces && e.rules.OneCardSplitAces {
			// Split Aces receive exactly one card and stand.
			total += e.resolve(h, upcard, hole)
			continue
		}
		total += e.playSplitHand(h, upcard, hole)
	}
	return total, nil
}

// playSplitHand plays one of the two hands formed by a split: double first if
// the DAS policy says so, otherwise hit under the secondary policy.
func (e *Engine) playSplitHand(hand deck.Hand, upcard, hole deck.Card) float64 {
	if e.rules.DoubleAfterSplit {
		total, soft := hand.Value()
		if e.rules.SplitDoublePolicy(total, soft) {
			return e.playDouble(hand, upcard, hole)
		}
	}

	for hand.Len() < deck.MaxHandSize {
		total, soft := hand.Value()
		if !e.rules.HitPolicy(total, soft, upcard) {
			break
		}
		hand.Add(e.src.Draw())
		if hand.IsBust() {
			return -1
		}
	}

	return e.resolve(hand, upcard, hole)
}

// resolve plays out the dealer and compares. The dealer's hand starts from
// the up-card and the hole card drawn at the top of the trial.
func (e *Engine) resolve(hand deck.Hand, upcard, hole deck.Card) float64 {
	if dealerBlackjack(upcard, hole) {
		// ENHC: a dealer natural beats everything short of a player natural,
		// which never reaches here.
		return -1
	}

	dealer := deck.NewHand(upcard, hole)
	for dealer.Len() < deck.MaxHandSize {
		total, soft := dealer.Value()
		if total > 17 {
			break
		}
		if total == 17 && !(e.rules.DealerHitsSoft17 && soft) {
			break
		}
		dealer.Add(e.src.Draw())
	}

	if dealer.IsBust() {
		return 1
	}

	playerTotal := hand.Total()
	dealerTotal := dealer.Total()
	switch {
	case playerTotal > dealerTotal:
		return 1
	case playerTotal < dealerTotal:
		return -1
	default:
		return 0
	}
}

func dealerBlackjack(upcard, hole deck.Card) bool {
	return deck.NewHand(upcard, hole).IsBlackjack()
}
