package aggregate

import (
	"context"

	"golang.org/x/sync/errgroup"

	"gobalance/domain/session"
)

// AggregateBatches aggregates several independent record batches
// concurrently, one aggregator per batch, and merges the partial groups
// into a single result. Merging is commutative and associative over the
// additive group fields, so the outcome is identical to a single
// sequential pass. This is a throughput optimization for multi-source
// loads, not a correctness requirement.
func AggregateBatches(ctx context.Context, batches [][]session.Record) (map[session.ConfigKey]*Group, []SkipEvent, error) {
	partials := make([]*Aggregator, len(batches))

	g, ctx := errgroup.WithContext(ctx)
	for i, batch := range batches {
		agg := NewAggregator()
		partials[i] = agg
		batch := batch
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			for _, r := range batch {
				// Integrity failures are skip events, not batch failures.
				_ = agg.Ingest(r)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	merged := NewAggregator()
	for _, agg := range partials {
		for key, group := range agg.Finalize() {
			dst, ok := merged.groups[key]
			if !ok {
				dst = newGroup(key)
				merged.groups[key] = dst
			}
			dst.Merge(group)
		}
		merged.skipped = append(merged.skipped, agg.skipped...)
	}

	return merged.Finalize(), merged.Skipped(), nil
}
