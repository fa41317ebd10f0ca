package app

import (
	"log"

	"gobalance/adapters/stats/classifier"
	"gobalance/adapters/stats/compare"
	"gobalance/domain/balance"
	"gobalance/domain/core"
	"gobalance/domain/session"
	"gobalance/internal/aggregate"
)

// ReportService assembles the full analysis output for a batch of
// session records: aggregation, per-configuration verdicts and the
// cross-configuration comparison, composed into one report. It holds no
// state across batches; every call is an independent pass.
type ReportService struct {
	classifier *classifier.Classifier
	comparer   *compare.Engine
}

// NewReportService creates a report service with the default
// classifier and comparison engine.
func NewReportService() *ReportService {
	return &ReportService{
		classifier: classifier.NewClassifier(),
		comparer:   compare.NewEngine(),
	}
}

// Assemble aggregates the records, classifies every configuration and
// attaches the comparison when at least two configurations are present.
// Rejected records are reported in the result, never dropped silently.
// Numeric values keep full precision; rounding belongs to renderers.
func (s *ReportService) Assemble(records []session.Record) balance.Report {
	agg := aggregate.NewAggregator()
	for _, r := range records {
		if err := agg.Ingest(r); err != nil {
			log.Printf("skipping session record: %v", err)
		}
	}
	return s.AssembleGroups(agg.Finalize(), agg.Skipped())
}

// AssembleGroups builds the report from already-aggregated groups, for
// callers that ran their own (possibly parallel) aggregation pass.
func (s *ReportService) AssembleGroups(groups map[session.ConfigKey]*aggregate.Group, skipped []aggregate.SkipEvent) balance.Report {
	report := balance.Report{
		RunID:     core.RunID(core.NewID()),
		Records:   make(map[session.ConfigKey]balance.ReportRecord, len(groups)),
		CreatedAt: core.Now(),
	}

	verdicts := make(map[session.ConfigKey]balance.Verdict, len(groups))
	avgMoves := make(map[session.ConfigKey]float64, len(groups))
	totals := make(map[session.ConfigKey]int, len(groups))

	for key, group := range groups {
		verdict := s.classifier.Classify(group.P1Wins, group.P2Wins, group.Draws)
		verdicts[key] = verdict
		avgMoves[key] = group.AvgMoves()
		totals[key] = group.TotalGames

		report.Records[key] = balance.ReportRecord{
			ConfigKey:  key,
			TotalGames: group.TotalGames,
			P1Wins:     group.P1Wins,
			P2Wins:     group.P2Wins,
			Draws:      group.Draws,
			AvgMoves:   group.AvgMoves(),
			AvgTimeMs:  group.AvgTimeMs(),
			Sources:    group.Sources(),
			Verdict:    verdict,
		}
	}

	comparison, err := s.comparer.Compare(verdicts, avgMoves, totals)
	if err != nil {
		// Fewer than two configurations: verdicts stand on their own.
		if !core.IsInsufficientDataError(err) {
			log.Printf("comparison failed: %v", err)
		}
	} else {
		report.Comparison = &comparison
	}

	for _, skip := range skipped {
		report.Skipped = append(report.Skipped, balance.SkippedRecord{
			Source: skip.Source,
			Reason: skip.Reason,
		})
	}

	return report
}
