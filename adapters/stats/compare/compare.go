package compare

import (
	"sort"

	"gobalance/domain/balance"
	"gobalance/domain/core"
	"gobalance/domain/session"
)

// Engine relates classified configurations to each other. It performs
// no statistical inference of its own; it is a pure relational and
// ordering function over already-computed verdicts.
type Engine struct{}

// NewEngine creates a comparison engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Compare derives the favored seat per configuration, detects
// opposite-direction bias and ranks configurations by game complexity
// (average moves) and by sample confidence (total games). Fewer than
// two configurations is a non-fatal insufficient-data condition: no
// comparison is produced, per-configuration verdicts stand on their
// own.
func (e *Engine) Compare(
	verdicts map[session.ConfigKey]balance.Verdict,
	avgMoves map[session.ConfigKey]float64,
	totalGames map[session.ConfigKey]int,
) (balance.ComparisonResult, error) {
	if len(verdicts) < 2 {
		return balance.ComparisonResult{}, core.NewInsufficientDataError(len(verdicts))
	}

	favored := make(map[session.ConfigKey]balance.FavoredSeat, len(verdicts))
	keys := make([]session.ConfigKey, 0, len(verdicts))
	for key, v := range verdicts {
		favored[key] = v.FavoredSeat()
		keys = append(keys, key)
	}
	// Lexical base order makes both rankings deterministic under ties.
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	complexity := make([]session.ConfigKey, len(keys))
	copy(complexity, keys)
	sort.SliceStable(complexity, func(i, j int) bool {
		return avgMoves[complexity[i]] > avgMoves[complexity[j]]
	})

	confidence := make([]session.ConfigKey, len(keys))
	copy(confidence, keys)
	sort.SliceStable(confidence, func(i, j int) bool {
		return totalGames[confidence[i]] > totalGames[confidence[j]]
	})

	return balance.ComparisonResult{
		FavoredSeats:       favored,
		OppositeBias:       oppositeBias(favored),
		ComplexityRanking:  complexity,
		ConfidenceRanking:  confidence,
		ComparedGroupCount: len(verdicts),
	}, nil
}

// oppositeBias reports whether any two configurations favor different
// seats. Two biased-but-opposite configurations point at structural or
// evaluation asymmetry rather than random variance; balanced groups do
// not participate.
func oppositeBias(favored map[session.ConfigKey]balance.FavoredSeat) bool {
	sawP1, sawP2 := false, false
	for _, seat := range favored {
		switch seat {
		case balance.FavorsPlayer1:
			sawP1 = true
		case balance.FavorsPlayer2:
			sawP2 = true
		}
	}
	return sawP1 && sawP2
}
