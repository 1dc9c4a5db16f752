// Package validation applies heuristic statistical rules to a completed
// backtest before the strategy is allowed anywhere near a demo account.
// Findings are advisory and structured: every rule is evaluated on every call
// so the reviewer sees the full picture at once, never just the first failure.
package validation

import (
	"fmt"

	"github.com/phamtrung93/fx-sentinel/pkg/types"
)

// Validator thresholds. Hard-error bounds mark results that are either
// statistically meaningless or carry the signature of look-ahead bias;
// warning bounds mark results that deserve a second look.
const (
	MinTradesHard     = 30
	MinTradesSoft     = 100
	MaxWinRate        = 0.85
	MinProfitFactor   = 1.0
	MaxProfitFactor   = 5.0
	SoftProfitFactor  = 1.5
	MaxDrawdownHard   = 50.0
	MaxDrawdownSoft   = 30.0
	MinWinLossRatio   = 0.8
	MaxConsecWins     = 20
	SoftConsecLosses  = 10
	MinReturnDrawdown = 1.0
	MinBacktestDays   = 180.0
	SoftSharpeLow     = 1.0
	SoftSharpeHigh    = 3.0
)

// ValidationReport is the outcome of one rule pass. Errors and Warnings keep
// the order the rules ran in, so reports are stable across runs.
type ValidationReport struct {
	Errors   []string
	Warnings []string
}

// IsValid reports whether the backtest passed every hard rule. Warnings never
// block validity.
func (r ValidationReport) IsValid() bool {
	return len(r.Errors) == 0
}

func (r *ValidationReport) addError(format string, args ...interface{}) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *ValidationReport) addWarning(format string, args ...interface{}) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Validate runs the full rule set against a backtest summary. Deterministic
// and stateless: the same summary always produces the same report.
func Validate(summary types.BacktestSummary) ValidationReport {
	var report ValidationReport

	// Hard errors first, in a fixed order.
	if summary.TotalTrades < MinTradesHard {
		report.addError("insufficient trades: %d (minimum %d for statistical significance)",
			summary.TotalTrades, MinTradesHard)
	}
	if summary.WinRate > MaxWinRate {
		report.addError("win rate %.1f%% exceeds %.0f%% - strongly suggests look-ahead bias or curve fitting",
			summary.WinRate*100, MaxWinRate*100)
	}
	if summary.ProfitFactor < MinProfitFactor {
		report.addError("profit factor %.2f below 1.0 - strategy loses money", summary.ProfitFactor)
	}
	if summary.ProfitFactor > MaxProfitFactor {
		report.addError("profit factor %.2f above %.1f - unrealistically high, check for data errors",
			summary.ProfitFactor, MaxProfitFactor)
	}
	if summary.SharpeRatio < 0 {
		report.addError("negative Sharpe ratio %.2f - risk-adjusted returns are negative", summary.SharpeRatio)
	}
	if summary.MaxDrawdownPct > MaxDrawdownHard {
		report.addError("max drawdown %.1f%% exceeds %.0f%% - strategy is unsurvivable",
			summary.MaxDrawdownPct, MaxDrawdownHard)
	}
	if summary.TotalTrades > 0 && summary.MaxConsecutiveLosses == 0 {
		report.addError("zero consecutive losses across %d trades - look-ahead bias red flag",
			summary.TotalTrades)
	}
	if summary.MaxConsecutiveWins > MaxConsecWins {
		report.addError("%d consecutive wins exceeds %d - look-ahead bias red flag",
			summary.MaxConsecutiveWins, MaxConsecWins)
	}
	if !summary.Settings.IncludedCommission {
		report.addError("backtest did not include commission - results are inflated")
	}
	if !summary.Settings.IncludedSpread {
		report.addError("backtest did not include spread - results are inflated")
	}

	// Soft warnings.
	if summary.TotalTrades >= MinTradesHard && summary.TotalTrades < MinTradesSoft {
		report.addWarning("trade count %d below %d - statistics have wide confidence intervals",
			summary.TotalTrades, MinTradesSoft)
	}
	if summary.ProfitFactor >= MinProfitFactor && summary.ProfitFactor < SoftProfitFactor {
		report.addWarning("profit factor %.2f below %.1f - thin edge after slippage",
			summary.ProfitFactor, SoftProfitFactor)
	}
	if summary.SharpeRatio >= 0 && summary.SharpeRatio < SoftSharpeLow {
		report.addWarning("Sharpe ratio %.2f below %.1f - weak risk-adjusted returns",
			summary.SharpeRatio, SoftSharpeLow)
	}
	if summary.SharpeRatio > SoftSharpeHigh {
		report.addWarning("Sharpe ratio %.2f above %.1f - suspiciously smooth, verify data quality",
			summary.SharpeRatio, SoftSharpeHigh)
	}
	if summary.MaxDrawdownPct >= MaxDrawdownSoft && summary.MaxDrawdownPct <= MaxDrawdownHard {
		report.addWarning("max drawdown %.1f%% in the %.0f-%.0f%% range - painful to trade through",
			summary.MaxDrawdownPct, MaxDrawdownSoft, MaxDrawdownHard)
	}
	if summary.AvgWinLossRatio < MinWinLossRatio {
		report.addWarning("average win/loss ratio %.2f below %.1f - wins too small relative to losses",
			summary.AvgWinLossRatio, MinWinLossRatio)
	}
	if summary.MaxConsecutiveLosses > SoftConsecLosses {
		report.addWarning("%d consecutive losses exceeds %d - expect long losing streaks live",
			summary.MaxConsecutiveLosses, SoftConsecLosses)
	}
	if summary.MaxDrawdownPct > 0 && summary.ReturnPct/summary.MaxDrawdownPct < MinReturnDrawdown {
		report.addWarning("return/drawdown ratio %.2f below %.1f - reward does not justify the risk",
			summary.ReturnPct/summary.MaxDrawdownPct, MinReturnDrawdown)
	}
	if !summary.Settings.UsedTickData {
		report.addWarning("backtest did not use tick data - intra-bar fills are modelled, not observed")
	}
	if summary.DurationDays < MinBacktestDays {
		report.addWarning("backtest span %.0f days below %.0f - too short to cover market regimes",
			summary.DurationDays, MinBacktestDays)
	}

	return report
}
