package aggregate

import (
	"fmt"
	"sort"

	"gobalance/domain/core"
	"gobalance/domain/session"
)

// Group is the running accumulation for one configuration key. Weighted
// averages are carried as cumulative products (avg x games) so that
// sessions of different sizes contribute proportionally; a naive mean of
// per-session averages would double-weight small sessions.
type Group struct {
	Key        session.ConfigKey
	TotalGames int
	P1Wins     int
	P2Wins     int
	Draws      int

	moveGameSum float64 // sum of avg_moves_i * total_games_i
	timeGameSum float64 // sum of avg_time_ms_i * total_games_i
	sources     map[core.SourceID]struct{}
}

func newGroup(key session.ConfigKey) *Group {
	return &Group{
		Key:     key,
		sources: make(map[core.SourceID]struct{}),
	}
}

func (g *Group) add(r session.Record) {
	g.TotalGames += r.TotalGames
	g.P1Wins += r.P1Wins
	g.P2Wins += r.P2Wins
	g.Draws += r.Draws
	g.moveGameSum += r.AvgMoves * float64(r.TotalGames)
	g.timeGameSum += r.AvgTimeMs * float64(r.TotalGames)
	if r.Source != "" {
		g.sources[r.Source] = struct{}{}
	}
}

// AvgMoves returns the game-weighted average move count, 0 when the
// group holds no games.
func (g *Group) AvgMoves() float64 {
	if g.TotalGames == 0 {
		return 0
	}
	return g.moveGameSum / float64(g.TotalGames)
}

// AvgTimeMs returns the game-weighted average duration, 0 when the
// group holds no games.
func (g *Group) AvgTimeMs() float64 {
	if g.TotalGames == 0 {
		return 0
	}
	return g.timeGameSum / float64(g.TotalGames)
}

// DecisiveGames returns the number of aggregated games with a winner.
func (g *Group) DecisiveGames() int {
	return g.P1Wins + g.P2Wins
}

// Sources returns the contributing source identifiers, sorted.
func (g *Group) Sources() []core.SourceID {
	out := make([]core.SourceID, 0, len(g.sources))
	for s := range g.sources {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Merge folds other into g. Both groups must share the same key. All
// fields are additive, so merging is commutative and associative; this
// is what makes parallel partial aggregation safe.
func (g *Group) Merge(other *Group) {
	g.TotalGames += other.TotalGames
	g.P1Wins += other.P1Wins
	g.P2Wins += other.P2Wins
	g.Draws += other.Draws
	g.moveGameSum += other.moveGameSum
	g.timeGameSum += other.timeGameSum
	for s := range other.sources {
		g.sources[s] = struct{}{}
	}
}

// SkipEvent records one rejected session record. Skips are reported to
// the caller, never silently dropped.
type SkipEvent struct {
	Source core.SourceID
	Reason string
}

// Aggregator merges session records sharing the same configuration key
// into accumulated statistic bundles. One aggregator owns one
// aggregation pass; concurrent batches need one aggregator each, with
// Group.Merge combining the partials.
type Aggregator struct {
	groups  map[session.ConfigKey]*Group
	skipped []SkipEvent
}

// NewAggregator creates an empty aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{
		groups: make(map[session.ConfigKey]*Group),
	}
}

// Ingest accumulates one session record into its configuration group.
// A malformed record (counts not summing to the game total, negative
// values) is rejected with a data integrity error and skipped;
// aggregation of other records continues. Records with zero games are
// accepted as additive no-ops.
func (a *Aggregator) Ingest(r session.Record) error {
	if err := check(r); err != nil {
		a.skipped = append(a.skipped, SkipEvent{Source: r.Source, Reason: err.Error()})
		return err
	}

	g, ok := a.groups[r.ConfigKey]
	if !ok {
		g = newGroup(r.ConfigKey)
		a.groups[r.ConfigKey] = g
	}
	g.add(r)
	return nil
}

// check re-applies the loader's integrity rules. Validated construction
// already guarantees them for records built through session.NewRecord,
// but the aggregator is the recovery boundary for records assembled any
// other way.
func check(r session.Record) error {
	if r.ConfigKey.IsEmpty() {
		return core.ErrEmptyConfigKey
	}
	if r.TotalGames < 0 || r.P1Wins < 0 || r.P2Wins < 0 || r.Draws < 0 {
		return fmt.Errorf("%w (%s)", core.ErrNegativeCount, r.ConfigKey)
	}
	if r.P1Wins+r.P2Wins+r.Draws != r.TotalGames {
		return core.NewCountMismatchError(r.ConfigKey.String(), r.TotalGames, r.P1Wins, r.P2Wins, r.Draws)
	}
	return nil
}

// Finalize returns the accumulated groups keyed by configuration. The
// returned groups are owned by the caller and treated as read-only.
func (a *Aggregator) Finalize() map[session.ConfigKey]*Group {
	return a.groups
}

// Skipped returns the rejected records seen so far.
func (a *Aggregator) Skipped() []SkipEvent {
	return a.skipped
}

// Keys returns the configuration keys seen so far, sorted.
func (a *Aggregator) Keys() []session.ConfigKey {
	keys := make([]session.ConfigKey, 0, len(a.groups))
	for k := range a.groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
