package reporting

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/phamtrung93/fx-sentinel/internal/montecarlo"
)

// WriteReportCSV writes the report as metric/value rows, one section per
// block. Structured enough to diff between runs, flat enough for a pivot
// table.
func WriteReportCSV(report *AuditReport, path string) error {
	if err := EnsureDirectoryExists(path); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"Section", "Metric", "Value"}); err != nil {
		return err
	}

	rows := [][]string{
		{"report", "report_id", report.ReportID},
		{"report", "strategy", report.Strategy},
		{"report", "symbol", report.Symbol},
		{"report", "generated_at", report.GeneratedAt.Format("2006-01-02T15:04:05Z")},

		{"summary", "total_trades", strconv.Itoa(report.Summary.TotalTrades)},
		{"summary", "win_rate_pct", formatValue(report.Summary.WinRate * 100)},
		{"summary", "profit_factor", formatValue(report.Summary.ProfitFactor)},
		{"summary", "sharpe_ratio", formatValue(report.Summary.SharpeRatio)},
		{"summary", "return_pct", formatValue(report.Summary.ReturnPct)},
		{"summary", "max_drawdown_pct", formatValue(report.Summary.MaxDrawdownPct)},
		{"summary", "duration_days", formatValue(report.Summary.DurationDays)},

		{"validation", "is_valid", strconv.FormatBool(report.Validation.IsValid())},
		{"validation", "error_count", strconv.Itoa(len(report.Validation.Errors))},
		{"validation", "warning_count", strconv.Itoa(len(report.Validation.Warnings))},
	}
	for i, e := range report.Validation.Errors {
		rows = append(rows, []string{"validation", fmt.Sprintf("error_%d", i+1), e})
	}
	for i, warning := range report.Validation.Warnings {
		rows = append(rows, []string{"validation", fmt.Sprintf("warning_%d", i+1), warning})
	}

	if report.Overfit != nil {
		rows = append(rows,
			[]string{"overfit", "score", formatValue(report.Overfit.Probability)},
			[]string{"overfit", "verdict", report.Overfit.Verdict},
		)
		for i, finding := range report.Overfit.Findings {
			rows = append(rows, []string{"overfit", fmt.Sprintf("finding_%d", i+1), finding})
		}
	}

	if report.Distribution != nil {
		d := report.Distribution
		rows = append(rows,
			[]string{"montecarlo", "mean_return_pct", formatValue(d.MeanReturn)},
			[]string{"montecarlo", "median_return_pct", formatValue(d.MedianReturn)},
			[]string{"montecarlo", "return_5th_pct", formatValue(d.Return5th)},
			[]string{"montecarlo", "return_95th_pct", formatValue(d.Return95th)},
			[]string{"montecarlo", "drawdown_95th_pct", formatValue(d.Drawdown95th)},
			[]string{"montecarlo", "worst_drawdown_pct", formatValue(d.WorstDrawdown)},
		)
		if report.Simulation != nil {
			rows = append(rows,
				[]string{"montecarlo", "simulations", strconv.Itoa(len(report.Simulation.ReturnSamples))},
				[]string{"montecarlo", "seed", strconv.FormatInt(report.Simulation.Seed, 10)},
				[]string{"montecarlo", "low_sample", strconv.FormatBool(report.Simulation.LowSample)},
			)
		}
	}

	if report.Ruin != nil {
		for _, c := range montecarlo.CapitalMultiples {
			if p, ok := report.Ruin.ByCapitalMultiple[c]; ok {
				rows = append(rows, []string{"risk_of_ruin", fmt.Sprintf("ruin_%dx_pct", c), formatValue(p)})
			}
		}
	}

	return w.WriteAll(rows)
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
