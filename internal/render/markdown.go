package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"gobalance/domain/balance"
	"gobalance/domain/session"
)

// Markdown renders an assembled report as a markdown document. All
// rounding happens here, at the display layer; the report itself keeps
// full precision.
func Markdown(report balance.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Self-Play Balance Report\n\n")
	fmt.Fprintf(&b, "Run `%s` — %d configuration(s), generated %s\n\n",
		report.RunID, len(report.Records), report.CreatedAt.String())

	keys := sortedKeys(report.Records)

	fmt.Fprintf(&b, "## Win Rates\n\n")
	for _, key := range keys {
		rec := report.Records[key]
		v := rec.Verdict
		fmt.Fprintf(&b, "### %s\n\n", key)
		fmt.Fprintf(&b, "- Games: %d (P1 %d / P2 %d / draws %d)\n",
			rec.TotalGames, rec.P1Wins, rec.P2Wins, rec.Draws)
		fmt.Fprintf(&b, "- Player 1: %.1f%% (95%% CI: %.1f%% – %.1f%%)\n",
			v.P1Rate, v.IntervalP1.Low, v.IntervalP1.High)
		fmt.Fprintf(&b, "- Player 2: %.1f%% (95%% CI: %.1f%% – %.1f%%)\n",
			v.P2Rate, v.IntervalP2.Low, v.IntervalP2.High)
		fmt.Fprintf(&b, "- Draws: %.1f%%\n", v.DrawRate)
		fmt.Fprintf(&b, "- Chi-square: %.2f (%s)\n", v.ChiSquare, significanceText(v.Significance))
		fmt.Fprintf(&b, "- Win rate difference: %.1f%% — %s\n", v.RateDifference, balanceText(v.Balance))
		fmt.Fprintf(&b, "- Sample size: %s\n", sampleText(v.SampleSize, rec.TotalGames))
		fmt.Fprintf(&b, "- Avg moves: %.1f, avg time: %.1fs\n\n", rec.AvgMoves, rec.AvgTimeMs/1000)
	}

	if cmp := report.Comparison; cmp != nil {
		fmt.Fprintf(&b, "## Cross-Configuration Comparison\n\n")

		fmt.Fprintf(&b, "### Direction of Bias\n\n")
		for _, key := range keys {
			fmt.Fprintf(&b, "- %s favors: %s\n", key, seatText(cmp.FavoredSeats[key]))
		}
		b.WriteString("\n")
		if cmp.OppositeBias {
			b.WriteString("**Warning: configurations favor opposite players.** ")
			b.WriteString("This points at structural or evaluation asymmetry rather than random variance.\n\n")
		}

		fmt.Fprintf(&b, "### Game Complexity (avg moves, descending)\n\n")
		for i, key := range cmp.ComplexityRanking {
			fmt.Fprintf(&b, "%d. %s — %.1f moves\n", i+1, key, report.Records[key].AvgMoves)
		}
		b.WriteString("\n")

		fmt.Fprintf(&b, "### Sample Confidence (total games, descending)\n\n")
		for i, key := range cmp.ConfidenceRanking {
			fmt.Fprintf(&b, "%d. %s — n=%d\n", i+1, key, report.Records[key].TotalGames)
		}
		b.WriteString("\n")
	} else {
		b.WriteString("## Cross-Configuration Comparison\n\n")
		b.WriteString("Not produced: fewer than two configurations available.\n\n")
	}

	if len(report.Skipped) > 0 {
		fmt.Fprintf(&b, "## Skipped Records\n\n")
		for _, skip := range report.Skipped {
			fmt.Fprintf(&b, "- %s: %s\n", skip.Source, skip.Reason)
		}
		b.WriteString("\n")
	}

	return b.String()
}

// HTML renders the markdown report as an HTML fragment.
func HTML(report balance.Report) []byte {
	md := []byte(Markdown(report))
	p := parser.NewWithExtensions(parser.CommonExtensions)
	doc := p.Parse(md)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.Render(doc, renderer)
}

func sortedKeys(records map[session.ConfigKey]balance.ReportRecord) []session.ConfigKey {
	keys := make([]session.ConfigKey, 0, len(records))
	for k := range records {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func significanceText(label balance.SignificanceLabel) string {
	switch label {
	case balance.SignificanceNotApplicable:
		return "N/A (no decisive games)"
	case balance.SignificanceNone:
		return "not significant (p > 0.05)"
	case balance.SignificanceModerate:
		return "significant (p < 0.05)"
	case balance.SignificanceHigh:
		return "very significant (p < 0.01)"
	default:
		return "extremely significant (p < 0.001)"
	}
}

func balanceText(label balance.BalanceLabel) string {
	switch label {
	case balance.BalanceExcellent:
		return "excellent balance"
	case balance.BalanceGood:
		return "good balance"
	case balance.BalanceSlight:
		return "slight imbalance"
	default:
		return "significant imbalance"
	}
}

func sampleText(label balance.SampleSizeLabel, total int) string {
	switch label {
	case balance.SampleVerySmall:
		return fmt.Sprintf("very small (n=%d) — run more games for reliable statistics", total)
	case balance.SampleSmall:
		return fmt.Sprintf("small (n=%d) — consider running more games", total)
	case balance.SampleModerate:
		return fmt.Sprintf("moderate (n=%d) — results are fairly reliable", total)
	default:
		return fmt.Sprintf("large (n=%d) — results are statistically meaningful", total)
	}
}

func seatText(seat balance.FavoredSeat) string {
	switch seat {
	case balance.FavorsPlayer1:
		return "Player 1"
	case balance.FavorsPlayer2:
		return "Player 2"
	default:
		return "neither (balanced)"
	}
}
