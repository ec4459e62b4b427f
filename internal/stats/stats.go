// Package stats accumulates trial outcomes for one state-action pair and
// exposes the moment estimates the convergence loop steers by.
package stats

import "math"

// Stats is an online accumulator of trial outcomes. It keeps raw moment sums
// rather than Welford's recurrence: outcomes are bounded multiples of the bet
// and trial counts stay within ~1e7, where the direct form loses no precision
// that matters at the target standard error.
type Stats struct {
	N     uint64
	Sum   float64
	SumSq float64
}

// Update records one trial outcome.
func (s *Stats) Update(x float64) {
	s.N++
	s.Sum += x
	s.SumSq += x * x
}

// Merge folds another accumulator into s. Merging is associative and
// commutative, so partial accumulators from parallel batches combine in any
// order or grouping.
func (s *Stats) Merge(other Stats) {
	s.N += other.N
	s.Sum += other.Sum
	s.SumSq += other.SumSq
}

// Mean returns the sample mean, or -Inf when no trials have been recorded so
// an empty accumulator never wins a best-action comparison.
func (s Stats) Mean() float64 {
	if s.N == 0 {
		return math.Inf(-1)
	}
	return s.Sum / float64(s.N)
}

// Variance returns the population variance, clamped at zero to absorb
// floating-point drift, or +Inf with fewer than two trials.
func (s Stats) Variance() float64 {
	if s.N < 2 {
		return math.Inf(1)
	}
	mean := s.Sum / float64(s.N)
	v := s.SumSq/float64(s.N) - mean*mean
	if v < 0 {
		return 0
	}
	return v
}

// SEM returns the standard error of the mean, the convergence stopping
// metric, or +Inf with fewer than two trials.
func (s Stats) SEM() float64 {
	if s.N < 2 {
		return math.Inf(1)
	}
	return math.Sqrt(s.Variance() / float64(s.N))
}
