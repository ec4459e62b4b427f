package deck

// MaxHandSize bounds the cards a hand can hold. A hand that keeps drawing the
// lowest cards busts or stands well before twelve cards, so this is a
// defensive ceiling, not a rule.
const MaxHandSize = 12

// Hand is a fixed-capacity, append-only sequence of card values. It is a
// value type: copying is cheap and trial-local hands never touch the heap.
type Hand struct {
	cards [MaxHandSize]Card
	n     uint8
}

// NewHand returns a two-card starting hand.
func NewHand(first, second Card) Hand {
	var h Hand
	h.cards[0] = first
	h.cards[1] = second
	h.n = 2
	return h
}

// SingleCard returns a degenerate one-card hand. Only the defensive fallback
// for unreachable sub-4 hard totals uses it.
func SingleCard(c Card) Hand {
	var h Hand
	h.cards[0] = c
	h.n = 1
	return h
}

// Add appends a freshly drawn card. Adding beyond capacity is a logic error.
func (h *Hand) Add(c Card) {
	h.cards[h.n] = c
	h.n++
}

// Len returns the number of cards held.
func (h Hand) Len() int {
	return int(h.n)
}

// Cards returns the cards held, in deal order.
func (h Hand) Cards() []Card {
	return h.cards[:h.n]
}

// First returns the first dealt card.
func (h Hand) First() Card {
	return h.cards[0]
}

// Value computes the hand total and softness. Aces count 11 and are softened
// to 1 one at a time, only while the total exceeds 21. The hand is soft iff
// an Ace is still counted as 11 afterwards.
func (h Hand) Value() (total int, soft bool) {
	aces := 0
	for _, c := range h.cards[:h.n] {
		total += int(c)
		if c == Ace {
			aces++
		}
	}
	for total > 21 && aces > 0 {
		total -= 10
		aces--
	}
	return total, aces > 0
}

// Total returns the softened hand total.
func (h Hand) Total() int {
	total, _ := h.Value()
	return total
}

// IsBlackjack reports whether the hand is a natural: exactly two cards
// totalling 21.
func (h Hand) IsBlackjack() bool {
	return h.n == 2 && h.Total() == 21
}

// IsBust reports whether the hand exceeds 21 after softening.
func (h Hand) IsBust() bool {
	return h.Total() > 21
}
