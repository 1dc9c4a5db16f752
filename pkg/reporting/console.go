package reporting

import (
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/phamtrung93/fx-sentinel/internal/montecarlo"
	"github.com/phamtrung93/fx-sentinel/pkg/validation"
)

// ConsoleReporter renders an audit report as terminal tables.
type ConsoleReporter struct {
	out io.Writer
}

func NewConsoleReporter() *ConsoleReporter {
	return &ConsoleReporter{out: os.Stdout}
}

// NewConsoleReporterTo writes tables to w instead of stdout.
func NewConsoleReporterTo(w io.Writer) *ConsoleReporter {
	return &ConsoleReporter{out: w}
}

// PrintReport renders every populated section in reading order.
func (r *ConsoleReporter) PrintReport(report *AuditReport) {
	r.printHeader(report)
	r.printSummary(report)
	r.printValidation(report)
	if report.Overfit != nil {
		r.printOverfit(report)
	}
	r.printProjection(report)
	if report.Distribution != nil {
		r.printDistribution(report)
	}
	if report.Ruin != nil {
		r.printRuin(report)
	}
}

func (r *ConsoleReporter) newTable(title string) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetTitle(title)
	t.SetStyle(table.StyleRounded)
	return t
}

func (r *ConsoleReporter) printHeader(report *AuditReport) {
	t := r.newTable("BACKTEST AUDIT")
	t.AppendRows([]table.Row{
		{"📊 Strategy", report.Strategy},
		{"💱 Symbol", report.Symbol},
		{"🕒 Generated", report.GeneratedAt.Format("2006-01-02 15:04:05 UTC")},
		{"🆔 Report", report.ReportID},
	})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, WidthMin: 14, Align: text.AlignLeft},
		{Number: 2, WidthMin: 38, Align: text.AlignLeft},
	})
	t.Render()
	fmt.Fprintln(r.out)
}

func (r *ConsoleReporter) printSummary(report *AuditReport) {
	s := report.Summary
	t := r.newTable("BACKTEST STATISTICS")
	t.AppendRows([]table.Row{
		{"🔄 Total Trades", fmt.Sprintf("%d", s.TotalTrades)},
		{"✅ Win Rate", fmt.Sprintf("%.1f%%", s.WinRate*100)},
		{"💹 Profit Factor", fmt.Sprintf("%.2f", s.ProfitFactor)},
		{"📊 Sharpe Ratio", fmt.Sprintf("%.2f", s.SharpeRatio)},
		{"📈 Total Return", fmt.Sprintf("%.2f%%", s.ReturnPct)},
		{"📉 Max Drawdown", fmt.Sprintf("%.2f%%", s.MaxDrawdownPct)},
		{"⚖️ Avg Win/Loss", fmt.Sprintf("%.2f", s.AvgWinLossRatio)},
		{"🔥 Max Consec Wins", fmt.Sprintf("%d", s.MaxConsecutiveWins)},
		{"🧊 Max Consec Losses", fmt.Sprintf("%d", s.MaxConsecutiveLosses)},
		{"📅 Span", fmt.Sprintf("%.0f days", s.DurationDays)},
	})
	t.Render()
	fmt.Fprintln(r.out)
}

func (r *ConsoleReporter) printValidation(report *AuditReport) {
	v := report.Validation
	t := r.newTable("VALIDATION")

	if v.IsValid() {
		t.AppendRow(table.Row{"✅ RESULT", "PASSED"})
	} else {
		t.AppendRow(table.Row{"❌ RESULT", fmt.Sprintf("FAILED (%d errors)", len(v.Errors))})
	}
	t.AppendSeparator()
	for _, e := range v.Errors {
		t.AppendRow(table.Row{"❌ error", e})
	}
	for _, w := range v.Warnings {
		t.AppendRow(table.Row{"⚠️ warning", w})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, WidthMax: 70, Align: text.AlignLeft},
	})
	t.Render()
	fmt.Fprintln(r.out)
}

func (r *ConsoleReporter) printOverfit(report *AuditReport) {
	o := report.Overfit
	t := r.newTable("IN-SAMPLE / OUT-OF-SAMPLE")
	t.AppendRows([]table.Row{
		{"🎯 Score", fmt.Sprintf("%.0f", o.Probability)},
		{"🏷 Verdict", o.Verdict},
	})
	t.AppendSeparator()
	for _, f := range o.Findings {
		t.AppendRow(table.Row{"🔍 finding", f})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, WidthMax: 70, Align: text.AlignLeft},
	})
	t.Render()
	fmt.Fprintln(r.out)
}

func (r *ConsoleReporter) printProjection(report *AuditReport) {
	p := report.Projection
	t := r.newTable("LIVE PROJECTION (illustrative)")
	t.AppendHeader(table.Row{"Scenario", "Degradation", "Return", "Sharpe", "Max DD"})
	for _, s := range []validation.LiveScenario{p.Conservative, p.Moderate, p.Optimistic} {
		t.AppendRow(table.Row{
			s.Name,
			fmt.Sprintf("%.0f%%", s.DegradationPct),
			fmt.Sprintf("%.2f%%", s.ReturnPct),
			fmt.Sprintf("%.2f", s.SharpeRatio),
			fmt.Sprintf("%.2f%%", s.MaxDrawdownPct),
		})
	}
	t.Render()
	fmt.Fprintln(r.out)
}

func (r *ConsoleReporter) printDistribution(report *AuditReport) {
	d := report.Distribution
	t := r.newTable("MONTE CARLO")
	if report.Simulation != nil {
		t.AppendRow(table.Row{"🎲 Simulations", fmt.Sprintf("%d", len(report.Simulation.ReturnSamples))})
		t.AppendRow(table.Row{"🌱 Seed", fmt.Sprintf("%d", report.Simulation.Seed)})
		if report.Simulation.LowSample {
			t.AppendRow(table.Row{"⚠️ Low sample", fmt.Sprintf("only %d input trades", report.Simulation.InputSampleCount)})
		}
		t.AppendSeparator()
	}
	t.AppendRows([]table.Row{
		{"📈 Mean Return", fmt.Sprintf("%.2f%%", d.MeanReturn)},
		{"📈 Median Return", fmt.Sprintf("%.2f%%", d.MedianReturn)},
		{"📉 5th pct Return", fmt.Sprintf("%.2f%%", d.Return5th)},
		{"📈 95th pct Return", fmt.Sprintf("%.2f%%", d.Return95th)},
		{"📉 95th pct Drawdown", fmt.Sprintf("%.2f%%", d.Drawdown95th)},
		{"💀 Worst Drawdown", fmt.Sprintf("%.2f%%", d.WorstDrawdown)},
	})
	t.Render()
	fmt.Fprintln(r.out)
}

func (r *ConsoleReporter) printRuin(report *AuditReport) {
	ruin := report.Ruin
	t := r.newTable("RISK OF RUIN (approximation)")
	t.AppendHeader(table.Row{"Capital Multiple", "Probability"})
	for _, c := range montecarlo.CapitalMultiples {
		if p, ok := ruin.ByCapitalMultiple[c]; ok {
			t.AppendRow(table.Row{fmt.Sprintf("%dx risk", c), fmt.Sprintf("%.2f%%", p)})
		}
	}
	t.Render()
	fmt.Fprintln(r.out)
}
