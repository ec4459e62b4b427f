// Package deck models blackjack cards under the infinite-deck approximation:
// each draw is independent and only the numeric value of a card matters.
package deck

import "strconv"

// Card is a blackjack card value. Ten stands in for 10, J, Q and K, which are
// indistinguishable in blackjack. Ace carries its high value of 11; hand
// valuation softens it to 1 as needed.
type Card uint8

const (
	Two   Card = 2
	Three Card = 3
	Four  Card = 4
	Five  Card = 5
	Six   Card = 6
	Seven Card = 7
	Eight Card = 8
	Nine  Card = 9
	Ten   Card = 10
	Ace   Card = 11
)

// String returns the table label for a card value.
func (c Card) String() string {
	switch {
	case c == Ace:
		return "A"
	case c >= Two && c <= Ten:
		return strconv.Itoa(int(c))
	default:
		return "?"
	}
}

// Valid reports whether c is a drawable card value.
func (c Card) Valid() bool {
	return c >= Two && c <= Ace
}
