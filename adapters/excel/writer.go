package excel

import (
	"fmt"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"gobalance/domain/balance"
	"gobalance/domain/session"
)

// Writer exports an assembled report as an xlsx workbook: one summary
// sheet plus one sheet per configuration.
type Writer struct{}

// NewWriter creates an excel report writer.
func NewWriter() *Writer {
	return &Writer{}
}

var summaryHeaders = []string{
	"Configuration", "Games", "P1 Wins", "P2 Wins", "Draws",
	"P1 Rate %", "P2 Rate %", "Rate Diff %", "Chi-Square",
	"Significance", "Balance", "Sample Size", "Avg Moves", "Avg Time (ms)",
}

// Write saves the report workbook at path.
func (w *Writer) Write(report balance.Report, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	const summary = "Summary"
	f.SetSheetName("Sheet1", summary)

	for col, header := range summaryHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		f.SetCellValue(summary, cell, header)
	}

	keys := make([]session.ConfigKey, 0, len(report.Records))
	for k := range report.Records {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	for row, key := range keys {
		rec := report.Records[key]
		v := rec.Verdict
		values := []interface{}{
			key.String(), rec.TotalGames, rec.P1Wins, rec.P2Wins, rec.Draws,
			v.P1Rate, v.P2Rate, v.RateDifference, v.ChiSquare,
			string(v.Significance), string(v.Balance), string(v.SampleSize),
			rec.AvgMoves, rec.AvgTimeMs,
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return err
			}
			f.SetCellValue(summary, cell, value)
		}

		if err := w.writeConfigSheet(f, rec); err != nil {
			return err
		}
	}

	if cmp := report.Comparison; cmp != nil {
		w.writeComparison(f, summary, len(keys)+3, cmp)
	}

	return f.SaveAs(path)
}

// writeConfigSheet writes the detail sheet for one configuration.
func (w *Writer) writeConfigSheet(f *excelize.File, rec balance.ReportRecord) error {
	name := sheetName(rec.ConfigKey)
	if _, err := f.NewSheet(name); err != nil {
		return err
	}

	v := rec.Verdict
	rows := [][]interface{}{
		{"Configuration", rec.ConfigKey.String()},
		{"Total games", rec.TotalGames},
		{"Player 1 wins", rec.P1Wins},
		{"Player 2 wins", rec.P2Wins},
		{"Draws", rec.Draws},
		{"Player 1 rate %", v.P1Rate},
		{"Player 1 CI low %", v.IntervalP1.Low},
		{"Player 1 CI high %", v.IntervalP1.High},
		{"Player 2 rate %", v.P2Rate},
		{"Player 2 CI low %", v.IntervalP2.Low},
		{"Player 2 CI high %", v.IntervalP2.High},
		{"Draw rate %", v.DrawRate},
		{"Rate difference %", v.RateDifference},
		{"Chi-square", v.ChiSquare},
		{"P-value (approx)", v.PValue},
		{"Significance", string(v.Significance)},
		{"Balance", string(v.Balance)},
		{"Sample size", string(v.SampleSize)},
		{"Avg moves", rec.AvgMoves},
		{"Avg time (ms)", rec.AvgTimeMs},
	}

	for i, row := range rows {
		for j, value := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return err
			}
			f.SetCellValue(name, cell, value)
		}
	}
	return nil
}

func (w *Writer) writeComparison(f *excelize.File, sheet string, startRow int, cmp *balance.ComparisonResult) {
	f.SetCellValue(sheet, fmt.Sprintf("A%d", startRow), "Opposite bias detected")
	f.SetCellValue(sheet, fmt.Sprintf("B%d", startRow), cmp.OppositeBias)

	row := startRow + 1
	f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Complexity ranking")
	for i, key := range cmp.ComplexityRanking {
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row+i), key.String())
	}
}

// sheetName produces a legal xlsx sheet name from a configuration key:
// no []:*?/\ characters, at most 31 characters.
func sheetName(key session.ConfigKey) string {
	name := key.String()
	for _, c := range []string{"[", "]", ":", "*", "?", "/", "\\"} {
		name = strings.ReplaceAll(name, c, "")
	}
	if len(name) > 31 {
		name = name[:31]
	}
	return name
}
