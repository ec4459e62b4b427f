package deck

import (
	"math"
	"testing"
)

// The draw distribution is a design contract: 2-9 and Ace at 1/13 each, Ten
// at 4/13.
func TestShoeDistribution(t *testing.T) {
	const draws = 1_300_000
	shoe := NewShoe(42)

	counts := make(map[Card]int)
	for i := 0; i < draws; i++ {
		c := shoe.Draw()
		if !c.Valid() {
			t.Fatalf("drew invalid card %d", c)
		}
		counts[c]++
	}

	expect := func(c Card, p float64) {
		got := float64(counts[c]) / draws
		// ~4.4 sigma at a million-plus draws for the rarest value.
		if math.Abs(got-p) > 0.003 {
			t.Errorf("P(%s) = %.4f, want %.4f", c, got, p)
		}
	}

	for c := Two; c <= Nine; c++ {
		expect(c, 1.0/13)
	}
	expect(Ten, 4.0/13)
	expect(Ace, 1.0/13)
}

func TestShoeDeterministicForSeed(t *testing.T) {
	a, b := NewShoe(99), NewShoe(99)
	for i := 0; i < 1000; i++ {
		if ca, cb := a.Draw(), b.Draw(); ca != cb {
			t.Fatalf("draw %d diverged: %s vs %s", i, ca, cb)
		}
	}
}

func TestShoeWeighted(t *testing.T) {
	// A degenerate single-value composition draws only that value.
	shoe, err := NewShoeWeighted(1, Weights{Five: 1})
	if err != nil {
		t.Fatalf("NewShoeWeighted: %v", err)
	}
	for i := 0; i < 100; i++ {
		if c := shoe.Draw(); c != Five {
			t.Fatalf("drew %s from a five-only shoe", c)
		}
	}

	if _, err := NewShoeWeighted(1, Weights{}); err == nil {
		t.Error("expected error for empty weights")
	}
	if _, err := NewShoeWeighted(1, Weights{Two: -1}); err == nil {
		t.Error("expected error for negative weight")
	}
}
