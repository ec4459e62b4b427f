package table

import "github.com/cardroom/blackjacksim/internal/deck"

// GenerateStates enumerates the full decision space in a fixed order:
// hard totals 5-21, soft totals 13-20 (A,10 is blackjack, not a decision),
// then pairs 2,2 through A,A, each against dealer up-cards 2 through Ace.
// The function is pure; the scheduler and the reporter both consume it.
func GenerateStates() []State {
	var states []State

	for total := 5; total <= 21; total++ {
		for dealer := deck.Two; dealer <= deck.Ace; dealer++ {
			states = append(states, State{Total: total, Dealer: dealer})
		}
	}

	for total := 13; total <= 20; total++ {
		for dealer := deck.Two; dealer <= deck.Ace; dealer++ {
			states = append(states, State{Total: total, Dealer: dealer, Soft: true})
		}
	}

	for card := deck.Two; card <= deck.Ace; card++ {
		total := int(card) * 2
		soft := card == deck.Ace
		if soft {
			total = 12
		}
		for dealer := deck.Two; dealer <= deck.Ace; dealer++ {
			states = append(states, State{Total: total, Dealer: dealer, Soft: soft, Pair: true})
		}
	}

	return states
}

// StartingHand maps a state to one concrete two-card hand with that state's
// total, softness and pair-ness. The simulation only needs some hand matching
// the state: play from there is driven by totals, except Split, which needs
// the literal paired card.
func StartingHand(s State) deck.Hand {
	switch {
	case s.Pair && s.Soft:
		return deck.NewHand(deck.Ace, deck.Ace)
	case s.Pair:
		half := deck.Card(s.Total / 2)
		return deck.NewHand(half, half)
	case s.Soft:
		return deck.NewHand(deck.Ace, deck.Card(s.Total-11))
	case s.Total <= 11:
		if s.Total >= 4 {
			return deck.NewHand(deck.Two, deck.Card(s.Total-2))
		}
		// Totals below 4 never occur in the generated space.
		return deck.SingleCard(deck.Card(s.Total))
	case s.Total <= 19:
		return deck.NewHand(deck.Ten, deck.Card(s.Total-10))
	case s.Total == 20:
		return deck.NewHand(deck.Ten, deck.Ten)
	default:
		// Hard 21 cannot be a two-card hand (that is blackjack); use a
		// three-card 10,10,A which softens to a hard 21.
		h := deck.NewHand(deck.Ten, deck.Ten)
		h.Add(deck.Ace)
		return h
	}
}
