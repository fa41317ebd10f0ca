package postgres

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"

	"gobalance/domain/balance"
	"gobalance/domain/core"
	"gobalance/domain/session"
)

// ReportRepository archives assembled reports in PostgreSQL and serves
// the historical run comparison (recent runs per configuration).
type ReportRepository struct {
	db *sqlx.DB
}

// NewReportRepository creates a PostgreSQL report repository.
func NewReportRepository(db *sqlx.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// Migrate creates the archive tables if they do not exist.
func (r *ReportRepository) Migrate(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS balance_reports (
			id         TEXT PRIMARY KEY,
			run_id     TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			payload    JSONB NOT NULL
		)`)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS balance_report_configs (
			report_id   TEXT NOT NULL REFERENCES balance_reports(id) ON DELETE CASCADE,
			config_key  TEXT NOT NULL,
			total_games INTEGER NOT NULL,
			p1_wins     INTEGER NOT NULL,
			p2_wins     INTEGER NOT NULL,
			draws       INTEGER NOT NULL,
			p1_rate     DOUBLE PRECISION NOT NULL,
			p2_rate     DOUBLE PRECISION NOT NULL,
			avg_moves   DOUBLE PRECISION NOT NULL,
			created_at  TIMESTAMPTZ NOT NULL
		)`)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		CREATE INDEX IF NOT EXISTS idx_balance_report_configs_key
		ON balance_report_configs (config_key, created_at DESC)`)
	return err
}

// Save archives one report, indexing each configuration row for the
// historical comparison queries.
func (r *ReportRepository) Save(ctx context.Context, report balance.Report) (core.ReportID, error) {
	id := core.ReportID(core.NewID())
	createdAt := report.CreatedAt.Time()

	payload, err := json.Marshal(report)
	if err != nil {
		return "", err
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO balance_reports (id, run_id, created_at, payload)
		VALUES ($1, $2, $3, $4)
	`, id.String(), report.RunID.String(), createdAt, payload)
	if err != nil {
		return "", err
	}

	for key, rec := range report.Records {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO balance_report_configs
				(report_id, config_key, total_games, p1_wins, p2_wins, draws, p1_rate, p2_rate, avg_moves, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`, id.String(), key.String(), rec.TotalGames, rec.P1Wins, rec.P2Wins, rec.Draws,
			rec.Verdict.P1Rate, rec.Verdict.P2Rate, rec.AvgMoves, createdAt)
		if err != nil {
			return "", err
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return id, nil
}

// Get loads an archived report by ID.
func (r *ReportRepository) Get(ctx context.Context, id core.ReportID) (balance.Report, error) {
	var payload []byte
	err := r.db.GetContext(ctx, &payload, `
		SELECT payload FROM balance_reports WHERE id = $1
	`, id.String())
	if err != nil {
		return balance.Report{}, core.ErrReportNotFound
	}

	var report balance.Report
	if err := json.Unmarshal(payload, &report); err != nil {
		return balance.Report{}, err
	}
	return report, nil
}

// HistoricalRun is one archived run's headline numbers for a
// configuration.
type HistoricalRun struct {
	ReportID   string    `db:"report_id" json:"report_id"`
	ConfigKey  string    `db:"config_key" json:"config_key"`
	TotalGames int       `db:"total_games" json:"total_games"`
	P1Rate     float64   `db:"p1_rate" json:"p1_rate"`
	P2Rate     float64   `db:"p2_rate" json:"p2_rate"`
	AvgMoves   float64   `db:"avg_moves" json:"avg_moves"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// RecentRuns returns the most recent archived runs for one
// configuration, newest first.
func (r *ReportRepository) RecentRuns(ctx context.Context, key session.ConfigKey, limit int) ([]HistoricalRun, error) {
	if limit <= 0 {
		limit = 5
	}
	var runs []HistoricalRun
	err := r.db.SelectContext(ctx, &runs, `
		SELECT report_id, config_key, total_games, p1_rate, p2_rate, avg_moves, created_at
		FROM balance_report_configs
		WHERE config_key = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, key.String(), limit)
	return runs, err
}
