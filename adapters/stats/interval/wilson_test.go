package interval

import (
	"math"
	"testing"
)

func TestWilson_ZeroTrials(t *testing.T) {
	low, high := Wilson(0, 0, 0.95)
	if low != 0 || high != 0 {
		t.Errorf("Wilson(0, 0, 0.95) = (%v, %v), want (0, 0)", low, high)
	}
}

func TestWilson_BoundsWithinRange(t *testing.T) {
	cases := []struct {
		successes, trials int
	}{
		{0, 10},
		{10, 10},
		{1, 2},
		{0, 1},
		{1, 1},
		{500, 1000},
	}
	for _, tc := range cases {
		low, high := Wilson(tc.successes, tc.trials, 0.95)
		if low < 0 || high > 100 || low > high {
			t.Errorf("Wilson(%d, %d) = (%v, %v), bounds out of order or range",
				tc.successes, tc.trials, low, high)
		}
	}
}

func TestWilson_WidthShrinksWithTrials(t *testing.T) {
	// Fixed 50% proportion: more trials must strictly tighten the interval.
	prevWidth := math.Inf(1)
	for _, trials := range []int{10, 40, 160, 640} {
		low, high := Wilson(trials/2, trials, 0.95)
		width := high - low
		if width >= prevWidth {
			t.Errorf("interval width did not shrink at trials=%d: %v >= %v", trials, width, prevWidth)
		}
		prevWidth = width
	}
}

func TestWilson_ExtremeProportionsStayInside(t *testing.T) {
	// Wilson keeps a nonzero band even at 0% and 100% observed rates.
	low, high := Wilson(0, 20, 0.95)
	if low > 1e-9 {
		t.Errorf("expected lower bound 0 at zero successes, got %v", low)
	}
	if high <= 0 {
		t.Errorf("upper bound must stay positive at zero successes, got %v", high)
	}

	low, high = Wilson(20, 20, 0.95)
	if high < 100-1e-9 {
		t.Errorf("expected upper bound 100 at all successes, got %v", high)
	}
	if low >= 100 {
		t.Errorf("lower bound must stay below 100 at all successes, got %v", low)
	}
}

func TestWilson_HigherConfidenceWidens(t *testing.T) {
	low95, high95 := Wilson(30, 60, 0.95)
	low99, high99 := Wilson(30, 60, 0.99)
	if (high99 - low99) <= (high95 - low95) {
		t.Error("99% interval must be wider than 95% interval")
	}
}

func TestZScore_FixedLookup(t *testing.T) {
	if z := ZScore(0.95); z != Z95 {
		t.Errorf("ZScore(0.95) = %v, want %v", z, Z95)
	}
	if z := ZScore(0.99); z != Z99 {
		t.Errorf("ZScore(0.99) = %v, want %v", z, Z99)
	}
}

func TestZScore_GeneralizedQuantile(t *testing.T) {
	// 90% two-sided critical value from the inverse normal CDF.
	if z := ZScore(0.90); math.Abs(z-1.6449) > 1e-3 {
		t.Errorf("ZScore(0.90) = %v, want ~1.6449", z)
	}
}
