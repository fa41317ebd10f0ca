package aggregate

import (
	"context"
	"math"
	"testing"

	"gobalance/domain/core"
	"gobalance/domain/session"
)

func mustRecord(t *testing.T, key session.ConfigKey, source string, total, p1, p2, draws int, avgMoves, avgTimeMs float64) session.Record {
	t.Helper()
	r, err := session.NewRecord(key, core.SourceID(source), total, p1, p2, draws, avgMoves, avgTimeMs)
	if err != nil {
		t.Fatalf("NewRecord failed: %v", err)
	}
	return r
}

func TestAggregator_SumInvariantPreserved(t *testing.T) {
	key := session.NewConfigKey("BoardA", "strong", "strong")
	agg := NewAggregator()

	records := []session.Record{
		mustRecord(t, key, "run1", 20, 12, 8, 0, 45, 1000),
		mustRecord(t, key, "run2", 30, 15, 15, 0, 50, 1200),
		mustRecord(t, key, "run3", 10, 3, 7, 0, 60, 900),
	}
	for _, r := range records {
		if err := agg.Ingest(r); err != nil {
			t.Fatalf("Ingest failed: %v", err)
		}
	}

	groups := agg.Finalize()
	g, ok := groups[key]
	if !ok {
		t.Fatal("expected group for key")
	}
	if g.TotalGames != 60 || g.P1Wins != 30 || g.P2Wins != 30 || g.Draws != 0 {
		t.Errorf("unexpected totals: games=%d p1=%d p2=%d draws=%d",
			g.TotalGames, g.P1Wins, g.P2Wins, g.Draws)
	}
	if g.P1Wins+g.P2Wins+g.Draws != g.TotalGames {
		t.Error("sum invariant violated after aggregation")
	}
}

func TestAggregator_WeightedAverageMoves(t *testing.T) {
	// Sessions of sizes 10 (avg 20 moves) and 90 (avg 100 moves) must
	// average to 92.0 overall, not the naive (20+100)/2 = 60.
	key := session.NewConfigKey("BoardA", "light", "light")
	agg := NewAggregator()

	agg.Ingest(mustRecord(t, key, "small", 10, 5, 5, 0, 20, 500))
	agg.Ingest(mustRecord(t, key, "large", 90, 45, 45, 0, 100, 2000))

	g := agg.Finalize()[key]
	if math.Abs(g.AvgMoves()-92.0) > 1e-9 {
		t.Errorf("expected weighted avg 92.0, got %f", g.AvgMoves())
	}
}

func TestAggregator_ZeroGameRecordIsNoOp(t *testing.T) {
	key := session.NewConfigKey("BoardA", "light", "light")
	agg := NewAggregator()

	agg.Ingest(mustRecord(t, key, "real", 10, 6, 4, 0, 30, 100))
	if err := agg.Ingest(mustRecord(t, key, "empty", 0, 0, 0, 0, 0, 0)); err != nil {
		t.Fatalf("zero-game record must be accepted, got %v", err)
	}

	g := agg.Finalize()[key]
	if g.TotalGames != 10 {
		t.Errorf("expected 10 games, got %d", g.TotalGames)
	}
	if math.Abs(g.AvgMoves()-30) > 1e-9 {
		t.Errorf("zero-game record must not shift the average, got %f", g.AvgMoves())
	}
}

func TestAggregator_MalformedRecordSkippedNotFatal(t *testing.T) {
	key := session.NewConfigKey("BoardA", "light", "light")
	agg := NewAggregator()

	bad := session.Record{ConfigKey: key, Source: "bad", TotalGames: 10, P1Wins: 3, P2Wins: 3, Draws: 3}
	if err := agg.Ingest(bad); err == nil {
		t.Fatal("expected integrity error for counts not summing to total")
	} else if !core.IsDataIntegrityError(err) {
		t.Errorf("expected data integrity error, got %v", err)
	}

	negative := session.Record{ConfigKey: key, Source: "neg", TotalGames: 2, P1Wins: -1, P2Wins: 3, Draws: 0}
	if err := agg.Ingest(negative); !core.IsDataIntegrityError(err) {
		t.Errorf("expected data integrity error for negative count, got %v", err)
	}

	// Aggregation continues past the bad records.
	if err := agg.Ingest(mustRecord(t, key, "good", 10, 6, 4, 0, 30, 100)); err != nil {
		t.Fatalf("good record rejected after bad one: %v", err)
	}

	if got := agg.Finalize()[key].TotalGames; got != 10 {
		t.Errorf("expected only the good record aggregated, got %d games", got)
	}
	if len(agg.Skipped()) != 2 {
		t.Errorf("expected 2 skip events, got %d", len(agg.Skipped()))
	}
}

func TestAggregator_GroupsByConfigKey(t *testing.T) {
	agg := NewAggregator()
	keyA := session.NewConfigKey("BoardA", "strong", "light")
	keyB := session.NewConfigKey("BoardA", "light", "strong") // seat order matters

	agg.Ingest(mustRecord(t, keyA, "a", 10, 6, 4, 0, 30, 100))
	agg.Ingest(mustRecord(t, keyB, "b", 10, 4, 6, 0, 35, 100))

	groups := agg.Finalize()
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[keyA].P1Wins != 6 || groups[keyB].P1Wins != 4 {
		t.Error("records crossed group boundaries")
	}
}

func TestGroup_MergeMatchesSequentialAggregation(t *testing.T) {
	key := session.NewConfigKey("BoardA", "light", "light")
	r1 := mustRecord(t, key, "r1", 10, 5, 5, 0, 20, 500)
	r2 := mustRecord(t, key, "r2", 90, 45, 45, 0, 100, 2000)

	sequential := NewAggregator()
	sequential.Ingest(r1)
	sequential.Ingest(r2)
	want := sequential.Finalize()[key]

	left := NewAggregator()
	left.Ingest(r1)
	right := NewAggregator()
	right.Ingest(r2)

	merged := left.Finalize()[key]
	merged.Merge(right.Finalize()[key])

	if merged.TotalGames != want.TotalGames ||
		merged.P1Wins != want.P1Wins ||
		merged.P2Wins != want.P2Wins ||
		merged.Draws != want.Draws {
		t.Error("merged counts differ from sequential aggregation")
	}
	if math.Abs(merged.AvgMoves()-want.AvgMoves()) > 1e-9 {
		t.Errorf("merged avg moves %f != sequential %f", merged.AvgMoves(), want.AvgMoves())
	}
	if math.Abs(merged.AvgTimeMs()-want.AvgTimeMs()) > 1e-9 {
		t.Errorf("merged avg time %f != sequential %f", merged.AvgTimeMs(), want.AvgTimeMs())
	}
	if len(merged.Sources()) != 2 {
		t.Errorf("expected 2 merged sources, got %d", len(merged.Sources()))
	}
}

func TestAggregateBatches_EqualsSequential(t *testing.T) {
	key := session.NewConfigKey("BoardA", "light", "light")
	other := session.NewConfigKey("BoardB", "light", "light")

	batches := [][]session.Record{
		{mustRecord(t, key, "r1", 20, 12, 8, 0, 45, 1000)},
		{mustRecord(t, key, "r2", 30, 15, 15, 0, 50, 1200), mustRecord(t, other, "r3", 10, 3, 7, 0, 60, 900)},
		{{ConfigKey: key, Source: "bad", TotalGames: 5, P1Wins: 1, P2Wins: 1, Draws: 1}},
	}

	groups, skipped, err := AggregateBatches(context.Background(), batches)
	if err != nil {
		t.Fatalf("AggregateBatches failed: %v", err)
	}

	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	g := groups[key]
	if g.TotalGames != 50 || g.P1Wins != 27 || g.P2Wins != 23 {
		t.Errorf("unexpected merged totals: games=%d p1=%d p2=%d", g.TotalGames, g.P1Wins, g.P2Wins)
	}
	if len(skipped) != 1 {
		t.Errorf("expected 1 skip event from the malformed batch, got %d", len(skipped))
	}
}
