package interval

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Standard z critical values. The two common confidence levels keep
// their conventional constants so results reproduce exactly; any other
// level goes through the inverse normal CDF.
const (
	Z95 = 1.96
	Z99 = 2.576
)

// Confidence95 is the default confidence level for verdict intervals.
const Confidence95 = 0.95

// ZScore returns the two-sided z critical value for a confidence level
// in (0, 1).
func ZScore(confidence float64) float64 {
	switch confidence {
	case 0.95:
		return Z95
	case 0.99:
		return Z99
	}
	norm := distuv.Normal{Mu: 0, Sigma: 1}
	return norm.Quantile(1 - (1-confidence)/2)
}

// Wilson computes the Wilson score confidence interval for a binomial
// proportion, returned as percentage bounds in [0,100]. The Wilson
// interval stays reliable at small samples and proportions near 0 or 1,
// where the normal approximation breaks down. Zero trials is a defined
// input and yields (0, 0).
func Wilson(successes, trials int, confidence float64) (low, high float64) {
	if trials == 0 {
		return 0, 0
	}

	p := float64(successes) / float64(trials)
	z := ZScore(confidence)
	n := float64(trials)

	denominator := 1 + z*z/n
	center := (p + z*z/(2*n)) / denominator
	margin := z * math.Sqrt(p*(1-p)/n+z*z/(4*n*n)) / denominator

	low = (center - margin) * 100
	high = (center + margin) * 100

	// Floating point can push the bounds fractionally outside [0,100].
	return clamp(low), clamp(high)
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
