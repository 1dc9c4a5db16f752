package reporting

import (
	"fmt"
	"strings"

	"github.com/phamtrung93/fx-sentinel/internal/montecarlo"
	"github.com/phamtrung93/fx-sentinel/pkg/validation"
)

// ValidationText renders a validation report as plain structured text.
func ValidationText(v validation.ValidationReport) string {
	var b strings.Builder

	b.WriteString("VALIDATION REPORT\n")
	b.WriteString(strings.Repeat("=", 50) + "\n")
	if v.IsValid() {
		b.WriteString("Result: PASSED\n")
	} else {
		fmt.Fprintf(&b, "Result: FAILED (%d errors)\n", len(v.Errors))
	}

	if len(v.Errors) > 0 {
		b.WriteString("\nErrors:\n")
		for i, e := range v.Errors {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, e)
		}
	}
	if len(v.Warnings) > 0 {
		b.WriteString("\nWarnings:\n")
		for i, w := range v.Warnings {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, w)
		}
	}
	if len(v.Errors) == 0 && len(v.Warnings) == 0 {
		b.WriteString("\nNo findings.\n")
	}
	return b.String()
}

// OverfitText renders an in/out-of-sample comparison as plain text.
func OverfitText(o validation.OverfitAnalysis) string {
	var b strings.Builder

	b.WriteString("OVERFIT ANALYSIS\n")
	b.WriteString(strings.Repeat("=", 50) + "\n")
	fmt.Fprintf(&b, "Score:   %.0f (additive, relative ranking only)\n", o.Probability)
	fmt.Fprintf(&b, "Verdict: %s\n", o.Verdict)

	if len(o.Findings) > 0 {
		b.WriteString("\nFindings:\n")
		for i, f := range o.Findings {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, f)
		}
	}
	return b.String()
}

// ProjectionText renders the three live scenarios as plain text.
func ProjectionText(p validation.LivePerformanceExpectation) string {
	var b strings.Builder

	b.WriteString("LIVE PERFORMANCE PROJECTION\n")
	b.WriteString(strings.Repeat("=", 50) + "\n")
	b.WriteString("Illustrative degradation only, not a statistical forecast.\n\n")
	for _, s := range []validation.LiveScenario{p.Conservative, p.Moderate, p.Optimistic} {
		fmt.Fprintf(&b, "%-14s (-%.0f%%): return %.2f%%, Sharpe %.2f, max drawdown %.2f%%\n",
			s.Name, s.DegradationPct, s.ReturnPct, s.SharpeRatio, s.MaxDrawdownPct)
	}
	return b.String()
}

// RuinText renders the risk-of-ruin table as plain text.
func RuinText(r montecarlo.RiskOfRuinAnalysis) string {
	var b strings.Builder

	b.WriteString("RISK OF RUIN\n")
	b.WriteString(strings.Repeat("=", 50) + "\n")
	b.WriteString("Gambler's-ruin approximation: fixed bet size, i.i.d. outcomes.\n\n")
	fmt.Fprintf(&b, "Win rate: %.1f%%  win/loss ratio: %.2f  risk/trade: %.2f%%\n",
		r.WinRate*100, r.WinLossRatio, r.RiskPerTradePct)
	fmt.Fprintf(&b, "Adjusted win probability: %.4f\n\n", r.AdjustedWinProb)
	for _, c := range montecarlo.CapitalMultiples {
		if p, ok := r.ByCapitalMultiple[c]; ok {
			fmt.Fprintf(&b, "  lose %3dx risk capital: %6.2f%%\n", c, p)
		}
	}
	return b.String()
}

// DistributionText renders Monte Carlo percentiles as plain text.
func DistributionText(d montecarlo.DistributionSummary) string {
	var b strings.Builder

	b.WriteString("MONTE CARLO DISTRIBUTION\n")
	b.WriteString(strings.Repeat("=", 50) + "\n")
	fmt.Fprintf(&b, "Mean return:          %8.2f%%\n", d.MeanReturn)
	fmt.Fprintf(&b, "Std deviation:        %8.2f\n", d.StdDev)
	fmt.Fprintf(&b, "5th pct return:       %8.2f%%\n", d.Return5th)
	fmt.Fprintf(&b, "Median return:        %8.2f%%\n", d.MedianReturn)
	fmt.Fprintf(&b, "95th pct return:      %8.2f%%\n", d.Return95th)
	fmt.Fprintf(&b, "95th pct drawdown:    %8.2f%%\n", d.Drawdown95th)
	fmt.Fprintf(&b, "Worst drawdown:       %8.2f%%\n", d.WorstDrawdown)
	return b.String()
}

// ReportText renders every populated section of the report as one document.
func ReportText(report *AuditReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "BACKTEST AUDIT: %s / %s\n", report.Strategy, report.Symbol)
	fmt.Fprintf(&b, "Generated: %s\n", report.GeneratedAt.Format("2006-01-02 15:04:05 UTC"))
	fmt.Fprintf(&b, "Report ID: %s\n\n", report.ReportID)

	b.WriteString(ValidationText(report.Validation))
	b.WriteString("\n")
	if report.Overfit != nil {
		b.WriteString(OverfitText(*report.Overfit))
		b.WriteString("\n")
	}
	b.WriteString(ProjectionText(report.Projection))
	b.WriteString("\n")
	if report.Distribution != nil {
		b.WriteString(DistributionText(*report.Distribution))
		b.WriteString("\n")
	}
	if report.Ruin != nil {
		b.WriteString(RuinText(*report.Ruin))
	}
	return b.String()
}
