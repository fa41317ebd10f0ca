package distribution

import (
	"github.com/montanaflynn/stats"

	"gobalance/domain/session"
)

// Summary describes the spread of one per-game measurement across a
// session's games.
type Summary struct {
	Count  int     `json:"count"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"std_dev"`
	Q25    float64 `json:"q25"`
	Q75    float64 `json:"q75"`
}

// Summarize computes distribution statistics over raw values. An empty
// input yields a zero summary; a single value has zero deviation.
func Summarize(values []float64) Summary {
	if len(values) == 0 {
		return Summary{}
	}

	min, _ := stats.Min(values)
	max, _ := stats.Max(values)
	mean, _ := stats.Mean(values)
	median, _ := stats.Median(values)
	q25, _ := stats.Percentile(values, 25)
	q75, _ := stats.Percentile(values, 75)

	stdDev := 0.0
	if len(values) > 1 {
		stdDev, _ = stats.StandardDeviationSample(values)
	}

	return Summary{
		Count:  len(values),
		Min:    min,
		Max:    max,
		Mean:   mean,
		Median: median,
		StdDev: stdDev,
		Q25:    q25,
		Q75:    q75,
	}
}

// GameDistributions holds per-game distribution summaries for one
// session, plus the average game length split by outcome.
type GameDistributions struct {
	Moves  Summary `json:"moves"`
	TimeMs Summary `json:"time_ms"`

	P1WinLength   float64 `json:"p1_win_length"`   // mean moves in Player1 wins
	P2WinLength   float64 `json:"p2_win_length"`   // mean moves in Player2 wins
	DrawLength    float64 `json:"draw_length"`     // mean moves in draws
	DecisiveCount int     `json:"decisive_count"`
}

// FromGames derives move and time distributions from per-game results.
func FromGames(games []session.GameResult) GameDistributions {
	moves := make([]float64, 0, len(games))
	times := make([]float64, 0, len(games))
	var p1Moves, p2Moves, drawMoves []float64

	for _, g := range games {
		moves = append(moves, float64(g.Moves))
		times = append(times, g.TimeMs)
		switch g.Winner {
		case "Player1":
			p1Moves = append(p1Moves, float64(g.Moves))
		case "Player2":
			p2Moves = append(p2Moves, float64(g.Moves))
		default:
			drawMoves = append(drawMoves, float64(g.Moves))
		}
	}

	return GameDistributions{
		Moves:         Summarize(moves),
		TimeMs:        Summarize(times),
		P1WinLength:   meanOrZero(p1Moves),
		P2WinLength:   meanOrZero(p2Moves),
		DrawLength:    meanOrZero(drawMoves),
		DecisiveCount: len(p1Moves) + len(p2Moves),
	}
}

func meanOrZero(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean, _ := stats.Mean(values)
	return mean
}
