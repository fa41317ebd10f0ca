package balance

import (
	"gobalance/domain/core"
	"gobalance/domain/session"
)

// SignificanceLabel classifies the chi-square balance test outcome.
// Ordered: not_significant < significant < very_significant < extremely_significant.
type SignificanceLabel string

const (
	SignificanceNotApplicable SignificanceLabel = "not_applicable" // no decisive games
	SignificanceNone          SignificanceLabel = "not_significant"
	SignificanceModerate      SignificanceLabel = "significant"           // p < 0.05
	SignificanceHigh          SignificanceLabel = "very_significant"      // p < 0.01
	SignificanceExtreme       SignificanceLabel = "extremely_significant" // p < 0.001
)

// BalanceLabel classifies the win-rate difference between seats.
// Ordered: excellent < good < slight_imbalance < significant_imbalance.
type BalanceLabel string

const (
	BalanceExcellent BalanceLabel = "excellent"
	BalanceGood      BalanceLabel = "good"
	BalanceSlight    BalanceLabel = "slight_imbalance"
	BalanceSevere    BalanceLabel = "significant_imbalance"
)

// SampleSizeLabel classifies the reliability of the sample.
// Ordered: very_small < small < moderate < large.
type SampleSizeLabel string

const (
	SampleVerySmall SampleSizeLabel = "very_small"
	SampleSmall     SampleSizeLabel = "small"
	SampleModerate  SampleSizeLabel = "moderate"
	SampleLarge     SampleSizeLabel = "large"
)

// FavoredSeat identifies which seat a configuration's results favor.
type FavoredSeat string

const (
	FavorsPlayer1 FavoredSeat = "player1"
	FavorsPlayer2 FavoredSeat = "player2"
	FavorsNeither FavoredSeat = "balanced"
)

// Interval is a confidence interval as percentage bounds in [0,100].
type Interval struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// Width returns the interval width in percentage points.
func (i Interval) Width() float64 {
	return i.High - i.Low
}

// Verdict is the classification output for one aggregated configuration.
// All labels are pure deterministic functions of the numeric thresholds
// in thresholds.go; they are never hand-assigned.
type Verdict struct {
	P1Rate         float64 `json:"p1_rate"`   // percent
	P2Rate         float64 `json:"p2_rate"`   // percent
	DrawRate       float64 `json:"draw_rate"` // percent
	RateDifference float64 `json:"rate_difference"`

	IntervalP1 Interval `json:"confidence_interval_p1"`
	IntervalP2 Interval `json:"confidence_interval_p2"`

	ChiSquare    float64           `json:"chi_square_statistic"`
	PValue       float64           `json:"p_value"` // approximate, df=1; the label is authoritative
	Significance SignificanceLabel `json:"significance_label"`
	Balance      BalanceLabel      `json:"balance_label"`
	SampleSize   SampleSizeLabel   `json:"sample_size_label"`
}

// FavoredSeat derives the favored seat from the verdict's rates.
func (v Verdict) FavoredSeat() FavoredSeat {
	switch {
	case v.P1Rate > v.P2Rate:
		return FavorsPlayer1
	case v.P2Rate > v.P1Rate:
		return FavorsPlayer2
	default:
		return FavorsNeither
	}
}

// ComparisonResult relates two or more classified configurations.
type ComparisonResult struct {
	FavoredSeats       map[session.ConfigKey]FavoredSeat `json:"favored_seats"`
	OppositeBias       bool                              `json:"opposite_bias_detected"`
	ComplexityRanking  []session.ConfigKey               `json:"complexity_ranking"` // by avg moves, descending
	ConfidenceRanking  []session.ConfigKey               `json:"confidence_ranking"` // by total games, descending
	ComparedGroupCount int                               `json:"compared_group_count"`
}

// ReportRecord is the assembled result for one configuration, handed to
// rendering and persistence collaborators. Numeric fields keep full
// precision; rounding is the renderer's responsibility.
type ReportRecord struct {
	ConfigKey  session.ConfigKey `json:"config_key"`
	TotalGames int               `json:"total_games"`
	P1Wins     int               `json:"p1_wins"`
	P2Wins     int               `json:"p2_wins"`
	Draws      int               `json:"draws"`
	AvgMoves   float64           `json:"avg_moves"`
	AvgTimeMs  float64           `json:"avg_time_ms"`
	Sources    []core.SourceID   `json:"sources,omitempty"`
	Verdict    Verdict           `json:"verdict"`
}

// Report is one analysis run's full output: a record per configuration
// plus the cross-configuration comparison when at least two
// configurations were available.
type Report struct {
	RunID      core.RunID                         `json:"run_id"`
	Records    map[session.ConfigKey]ReportRecord `json:"records"`
	Comparison *ComparisonResult                  `json:"comparison,omitempty"`
	Skipped    []SkippedRecord                    `json:"skipped,omitempty"`
	CreatedAt  core.Timestamp                     `json:"created_at"`
}

// SkippedRecord reports a session record that was rejected during
// aggregation. Skips are surfaced, not silently dropped.
type SkippedRecord struct {
	Source core.SourceID `json:"source,omitempty"`
	Reason string        `json:"reason"`
}
