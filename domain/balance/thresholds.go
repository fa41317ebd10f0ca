package balance

// Threshold tables for verdict classification. Each table is an ordered
// list of (upper bound, label) pairs evaluated with strict less-than;
// the final entry is the open-ended catch-all. Production code and
// tests share these tables so the boundary values have a single source
// of truth. The values are fixed design constants, not configuration.

// ChiSquareBound pairs a chi-square critical value (df=1) with the
// significance label assigned below it.
type ChiSquareBound struct {
	UpperBound float64
	Label      SignificanceLabel
}

// SignificanceThresholds holds the df=1 critical values 3.841 (p=0.05),
// 6.635 (p=0.01) and 10.828 (p=0.001).
var SignificanceThresholds = []ChiSquareBound{
	{UpperBound: 3.841, Label: SignificanceNone},
	{UpperBound: 6.635, Label: SignificanceModerate},
	{UpperBound: 10.828, Label: SignificanceHigh},
}

// SignificanceCatchAll labels statistics at or above the last bound.
const SignificanceCatchAll = SignificanceExtreme

// RateBound pairs a win-rate difference (percentage points) with the
// balance label assigned below it.
type RateBound struct {
	UpperBound float64
	Label      BalanceLabel
}

// BalanceThresholds classifies |p1_rate - p2_rate|.
var BalanceThresholds = []RateBound{
	{UpperBound: 5, Label: BalanceExcellent},
	{UpperBound: 10, Label: BalanceGood},
	{UpperBound: 20, Label: BalanceSlight},
}

// BalanceCatchAll labels differences at or above the last bound.
const BalanceCatchAll = BalanceSevere

// CountBound pairs a total game count with the sample-size label
// assigned below it.
type CountBound struct {
	UpperBound int
	Label      SampleSizeLabel
}

// SampleSizeThresholds classifies the aggregated game total.
var SampleSizeThresholds = []CountBound{
	{UpperBound: 10, Label: SampleVerySmall},
	{UpperBound: 50, Label: SampleSmall},
	{UpperBound: 100, Label: SampleModerate},
}

// SampleSizeCatchAll labels totals at or above the last bound.
const SampleSizeCatchAll = SampleLarge

// ClassifySignificance maps a chi-square statistic to its label.
func ClassifySignificance(chiSquare float64) SignificanceLabel {
	for _, b := range SignificanceThresholds {
		if chiSquare < b.UpperBound {
			return b.Label
		}
	}
	return SignificanceCatchAll
}

// ClassifyBalance maps a rate difference to its label.
func ClassifyBalance(rateDifference float64) BalanceLabel {
	for _, b := range BalanceThresholds {
		if rateDifference < b.UpperBound {
			return b.Label
		}
	}
	return BalanceCatchAll
}

// ClassifySampleSize maps a total game count to its label.
func ClassifySampleSize(totalGames int) SampleSizeLabel {
	for _, b := range SampleSizeThresholds {
		if totalGames < b.UpperBound {
			return b.Label
		}
	}
	return SampleSizeCatchAll
}
