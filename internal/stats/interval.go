package stats

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// ConfidenceInterval95 returns the two-tailed 95% confidence interval for the
// mean using Student's t with N-1 degrees of freedom. With fewer than two
// trials the interval is unbounded.
func (s Stats) ConfidenceInterval95() (low, high float64) {
	if s.N < 2 {
		return math.Inf(-1), math.Inf(1)
	}

	tDist := distuv.StudentsT{
		Mu:    0,
		Sigma: 1,
		Nu:    float64(s.N - 1),
	}
	margin := tDist.Quantile(0.975) * s.SEM()

	mean := s.Mean()
	return mean - margin, mean + margin
}
