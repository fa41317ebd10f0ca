package classifier

import (
	"math"
	"testing"

	"gobalance/domain/balance"
)

func TestClassify_ChiSquareKnownValue(t *testing.T) {
	// 30 vs 20 decisive games: expected 25 each, chi-square
	// (5^2)/25 + (5^2)/25 = 2.0 — below the 3.841 critical value.
	v := NewClassifier().Classify(30, 20, 0)

	if math.Abs(v.ChiSquare-2.0) > 1e-9 {
		t.Errorf("chi-square = %v, want 2.0", v.ChiSquare)
	}
	if v.Significance != balance.SignificanceNone {
		t.Errorf("significance = %s, want not_significant", v.Significance)
	}
	if v.PValue <= 0.05 {
		t.Errorf("approximate p-value should exceed 0.05 for chi=2.0, got %v", v.PValue)
	}
}

func TestClassify_Rates(t *testing.T) {
	v := NewClassifier().Classify(12, 8, 0)

	if math.Abs(v.P1Rate-60) > 1e-9 || math.Abs(v.P2Rate-40) > 1e-9 {
		t.Errorf("rates = (%v, %v), want (60, 40)", v.P1Rate, v.P2Rate)
	}
	if math.Abs(v.RateDifference-20) > 1e-9 {
		t.Errorf("rate difference = %v, want 20", v.RateDifference)
	}
	if v.Balance != balance.BalanceSevere {
		t.Errorf("balance = %s, want significant_imbalance at diff 20", v.Balance)
	}
}

func TestClassify_RateDifferenceExactlyFive(t *testing.T) {
	// 21 vs 19 of 40: 52.5% vs 47.5%, difference exactly 5 — good, not
	// excellent, by the strict less-than rule.
	v := NewClassifier().Classify(21, 19, 0)
	if math.Abs(v.RateDifference-5.0) > 1e-9 {
		t.Fatalf("rate difference = %v, want exactly 5.0", v.RateDifference)
	}
	if v.Balance != balance.BalanceGood {
		t.Errorf("balance = %s, want good", v.Balance)
	}
}

func TestClassify_SampleSizeBoundaries(t *testing.T) {
	// 49 games → small, 50 games → moderate.
	small := NewClassifier().Classify(25, 24, 0)
	if small.SampleSize != balance.SampleSmall {
		t.Errorf("49 games: sample size = %s, want small", small.SampleSize)
	}
	moderate := NewClassifier().Classify(25, 25, 0)
	if moderate.SampleSize != balance.SampleModerate {
		t.Errorf("50 games: sample size = %s, want moderate", moderate.SampleSize)
	}
}

func TestClassify_NoData(t *testing.T) {
	v := NewClassifier().Classify(0, 0, 0)

	if v.P1Rate != 0 || v.P2Rate != 0 || v.DrawRate != 0 {
		t.Error("no data must yield zero rates")
	}
	if v.SampleSize != balance.SampleVerySmall {
		t.Errorf("sample size = %s, want very_small", v.SampleSize)
	}
	if v.Significance != balance.SignificanceNone {
		t.Errorf("significance = %s, want not_significant", v.Significance)
	}
	if v.IntervalP1 != (balance.Interval{}) || v.IntervalP2 != (balance.Interval{}) {
		t.Error("no data must yield empty intervals")
	}
}

func TestClassify_AllDrawsNoDecisiveGames(t *testing.T) {
	v := NewClassifier().Classify(0, 0, 30)

	if v.ChiSquare != 0 {
		t.Errorf("chi-square = %v, want 0 with no decisive games", v.ChiSquare)
	}
	if v.Significance != balance.SignificanceNotApplicable {
		t.Errorf("significance = %s, want not_applicable", v.Significance)
	}
	if math.Abs(v.DrawRate-100) > 1e-9 {
		t.Errorf("draw rate = %v, want 100", v.DrawRate)
	}
}

func TestClassify_ExtremeImbalance(t *testing.T) {
	// 55 vs 5 decisive games: expected 30 each, chi-square
	// (25^2)/30 * 2 = 41.67 — beyond every critical value.
	v := NewClassifier().Classify(55, 5, 0)

	if v.Significance != balance.SignificanceExtreme {
		t.Errorf("significance = %s, want extremely_significant", v.Significance)
	}
	if v.PValue >= 0.001 {
		t.Errorf("p-value should be below 0.001, got %v", v.PValue)
	}
}

func TestClassify_ConfidenceIntervalsBracketRates(t *testing.T) {
	v := NewClassifier().Classify(30, 20, 10)

	if v.IntervalP1.Low > v.P1Rate || v.IntervalP1.High < v.P1Rate {
		t.Errorf("P1 CI (%v, %v) does not bracket rate %v",
			v.IntervalP1.Low, v.IntervalP1.High, v.P1Rate)
	}
	if v.IntervalP2.Low > v.P2Rate || v.IntervalP2.High < v.P2Rate {
		t.Errorf("P2 CI (%v, %v) does not bracket rate %v",
			v.IntervalP2.Low, v.IntervalP2.High, v.P2Rate)
	}
}
