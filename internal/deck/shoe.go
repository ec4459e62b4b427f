package deck

import (
	"fmt"
	rand "math/rand/v2"
)

const goldenRatio64 = 0x9e3779b97f4a7c15

// Source draws single card values. Implementations are not safe for
// concurrent use; each worker owns its own Source.
type Source interface {
	Draw() Card
}

// Weights maps each card value to its relative draw weight. A real
// composition gives 2-9 and Ace weight 1 each and Ten weight 4, since four
// ranks map to the ten value.
type Weights map[Card]int

// DefaultWeights returns the standard blackjack composition:
// P(2)=...=P(9)=P(A)=1/13, P(10)=4/13.
func DefaultWeights() Weights {
	w := Weights{Ten: 4}
	for c := Two; c <= Nine; c++ {
		w[c] = 1
	}
	w[Ace] = 1
	return w
}

// Shoe is an infinite shoe: draws are independent and identically
// distributed, with no memory of earlier cards (continuous-shuffle
// approximation). Drawing is a single table lookup over a uniform variate.
type Shoe struct {
	rng   *rand.Rand
	table []Card
}

// NewShoe returns a shoe with the standard composition, seeded
// deterministically from seed.
func NewShoe(seed int64) *Shoe {
	s, err := NewShoeWeighted(seed, DefaultWeights())
	if err != nil {
		// DefaultWeights is always valid.
		panic(err)
	}
	return s
}

// NewShoeWeighted returns a shoe drawing from the given composition. The
// weights are expanded into a lookup table once so Draw stays O(1) and
// allocation free.
func NewShoeWeighted(seed int64, weights Weights) (*Shoe, error) {
	var table []Card
	for c := Two; c <= Ace; c++ {
		w := weights[c]
		if w < 0 {
			return nil, fmt.Errorf("negative weight %d for card %s", w, c)
		}
		for i := 0; i < w; i++ {
			table = append(table, c)
		}
	}
	if len(table) == 0 {
		return nil, fmt.Errorf("card weights sum to zero")
	}
	return &Shoe{rng: newRand(seed), table: table}, nil
}

// Draw returns a single card value with the shoe's marginal distribution.
func (s *Shoe) Draw() Card {
	return s.table[s.rng.IntN(len(s.table))]
}

// newRand derives the two 64-bit seeds required by rand/v2's PCG from a
// single int64 so call sites get reproducible sequences.
func newRand(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
