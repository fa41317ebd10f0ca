package classifier

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"gobalance/adapters/stats/interval"
	"gobalance/domain/balance"
)

// Classifier turns aggregated win/loss/draw counts into a balance
// verdict: rates, a decisive-game chi-square test, Wilson confidence
// intervals and the categorical labels from the shared threshold
// tables.
type Classifier struct {
	confidence float64
}

// NewClassifier creates a classifier using 95% confidence intervals.
func NewClassifier() *Classifier {
	return &Classifier{confidence: interval.Confidence95}
}

// Classify computes the verdict for one aggregated configuration.
// Absence of data is a defined degenerate case, not an error: zero
// total games yields a zero-rate verdict, and zero decisive games
// yields a zero statistic with significance "not applicable".
func (c *Classifier) Classify(p1Wins, p2Wins, draws int) balance.Verdict {
	total := p1Wins + p2Wins + draws
	if total == 0 {
		return balance.Verdict{
			Significance: balance.SignificanceNone,
			Balance:      balance.ClassifyBalance(0),
			SampleSize:   balance.SampleVerySmall,
			PValue:       1,
		}
	}

	p1Rate := float64(p1Wins) / float64(total) * 100
	p2Rate := float64(p2Wins) / float64(total) * 100
	drawRate := float64(draws) / float64(total) * 100
	rateDiff := math.Abs(p1Rate - p2Rate)

	chiSquare, significance, pValue := c.chiSquareBalance(p1Wins, p2Wins)

	p1Low, p1High := interval.Wilson(p1Wins, total, c.confidence)
	p2Low, p2High := interval.Wilson(p2Wins, total, c.confidence)

	return balance.Verdict{
		P1Rate:         p1Rate,
		P2Rate:         p2Rate,
		DrawRate:       drawRate,
		RateDifference: rateDiff,
		IntervalP1:     balance.Interval{Low: p1Low, High: p1High},
		IntervalP2:     balance.Interval{Low: p2Low, High: p2High},
		ChiSquare:      chiSquare,
		PValue:         pValue,
		Significance:   significance,
		Balance:        balance.ClassifyBalance(rateDiff),
		SampleSize:     balance.ClassifySampleSize(total),
	}
}

// chiSquareBalance tests the decisive games against a perfectly
// balanced expectation, one degree of freedom. Draws carry no
// information about seat bias and stay out of the statistic. The label
// comes from the fixed df=1 critical values; the p-value from the
// chi-squared CDF is carried alongside for reporting and uses the same
// statistic.
func (c *Classifier) chiSquareBalance(p1Wins, p2Wins int) (float64, balance.SignificanceLabel, float64) {
	expected := float64(p1Wins+p2Wins) / 2
	if expected == 0 {
		return 0, balance.SignificanceNotApplicable, 1
	}

	d1 := float64(p1Wins) - expected
	d2 := float64(p2Wins) - expected
	chiSquare := d1*d1/expected + d2*d2/expected

	chiDist := distuv.ChiSquared{K: 1}
	pValue := 1 - chiDist.CDF(chiSquare)

	return chiSquare, balance.ClassifySignificance(chiSquare), pValue
}
