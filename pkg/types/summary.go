package types

import (
	"math"
	"time"
)

// BacktestSettings describes how a backtest was run. Missing spread/commission
// modelling is a validity problem, not a tuning detail, so it travels with the
// summary rather than with the strategy configuration.
type BacktestSettings struct {
	UsedTickData       bool
	IncludedSpread     bool
	IncludedCommission bool
}

// BacktestSummary holds the aggregate statistics of a completed backtest.
// WinRate is a fraction in [0,1]; drawdown and return are percentages.
type BacktestSummary struct {
	TotalTrades          int
	WinRate              float64
	ProfitFactor         float64
	SharpeRatio          float64
	MaxDrawdownPct       float64
	ReturnPct            float64
	AvgWinLossRatio      float64
	MaxConsecutiveWins   int
	MaxConsecutiveLosses int
	DurationDays         float64

	Settings BacktestSettings
}

// SummarizeTrades computes a BacktestSummary from a closed-trade log.
// The equity curve is rebuilt by compounding per-trade percentage returns from a
// normalized base of 100, so drawdown figures are comparable across account sizes.
func SummarizeTrades(trades []TradeRecord, settings BacktestSettings) BacktestSummary {
	summary := BacktestSummary{
		TotalTrades: len(trades),
		Settings:    settings,
	}
	if len(trades) == 0 {
		return summary
	}

	wins := 0
	grossProfit := 0.0
	grossLoss := 0.0
	winSum := 0.0
	lossSum := 0.0
	returns := make([]float64, 0, len(trades))

	consecWins, consecLosses := 0, 0
	for _, t := range trades {
		returns = append(returns, t.ReturnPct)
		if t.IsWin() {
			wins++
			grossProfit += t.NetProfit
			winSum += t.NetProfit
			consecWins++
			consecLosses = 0
		} else {
			grossLoss += math.Abs(t.NetProfit)
			lossSum += math.Abs(t.NetProfit)
			consecLosses++
			consecWins = 0
		}
		if consecWins > summary.MaxConsecutiveWins {
			summary.MaxConsecutiveWins = consecWins
		}
		if consecLosses > summary.MaxConsecutiveLosses {
			summary.MaxConsecutiveLosses = consecLosses
		}
	}

	summary.WinRate = float64(wins) / float64(len(trades))
	summary.ProfitFactor = profitFactor(grossProfit, grossLoss)
	summary.SharpeRatio = sharpeRatio(returns)
	summary.ReturnPct, summary.MaxDrawdownPct = equityCurveStats(returns)
	summary.AvgWinLossRatio = avgWinLossRatio(winSum, lossSum, wins, len(trades)-wins)
	summary.DurationDays = durationDays(trades)

	return summary
}

func profitFactor(grossProfit, grossLoss float64) float64 {
	if grossLoss == 0 {
		if grossProfit > 0 {
			return math.Inf(1)
		}
		return 0
	}
	return grossProfit / grossLoss
}

// sharpeRatio is the per-trade Sharpe with a zero risk-free rate, matching the
// convention used by the backtest engine that produced the trade log.
func sharpeRatio(returns []float64) float64 {
	if len(returns) == 0 {
		return 0
	}

	avg := 0.0
	for _, r := range returns {
		avg += r
	}
	avg /= float64(len(returns))

	variance := 0.0
	for _, r := range returns {
		variance += math.Pow(r-avg, 2)
	}
	variance /= float64(len(returns))
	stdDev := math.Sqrt(variance)

	if stdDev < 1e-10 {
		return 0
	}
	return avg / stdDev
}

// equityCurveStats returns the cumulative return and the max percentage
// drawdown from peak over the compounded equity path.
func equityCurveStats(returns []float64) (totalReturn, maxDrawdown float64) {
	equity := 100.0
	peak := equity
	for _, r := range returns {
		equity *= 1 + r/100
		if equity > peak {
			peak = equity
		}
		if peak > 0 {
			dd := (peak - equity) / peak * 100
			if dd > maxDrawdown {
				maxDrawdown = dd
			}
		}
	}
	totalReturn = equity - 100
	return totalReturn, maxDrawdown
}

func avgWinLossRatio(winSum, lossSum float64, wins, losses int) float64 {
	if wins == 0 {
		return 0
	}
	avgWin := winSum / float64(wins)
	if losses == 0 || lossSum == 0 {
		return math.Inf(1)
	}
	avgLoss := lossSum / float64(losses)
	return avgWin / avgLoss
}

func durationDays(trades []TradeRecord) float64 {
	first := trades[0].EntryTime
	last := trades[0].ExitTime
	for _, t := range trades {
		if t.EntryTime.Before(first) {
			first = t.EntryTime
		}
		if t.ExitTime.After(last) {
			last = t.ExitTime
		}
	}
	return last.Sub(first).Hours() / 24
}

// AverageWinLoss returns the average winning and average losing trade in
// currency units. Used by the risk-of-ruin estimate, which wants raw magnitudes
// rather than the pre-divided ratio.
func AverageWinLoss(trades []TradeRecord) (avgWin, avgLoss float64) {
	winSum, lossSum := 0.0, 0.0
	wins, losses := 0, 0
	for _, t := range trades {
		if t.IsWin() {
			winSum += t.NetProfit
			wins++
		} else {
			lossSum += math.Abs(t.NetProfit)
			losses++
		}
	}
	if wins > 0 {
		avgWin = winSum / float64(wins)
	}
	if losses > 0 {
		avgLoss = lossSum / float64(losses)
	}
	return avgWin, avgLoss
}

// Returns extracts the per-trade percentage return series in log order,
// the input format expected by the Monte Carlo engine.
func Returns(trades []TradeRecord) []float64 {
	out := make([]float64, len(trades))
	for i, t := range trades {
		out[i] = t.ReturnPct
	}
	return out
}

// Span is a convenience pair of first entry / last exit used by reports.
func Span(trades []TradeRecord) (time.Time, time.Time) {
	if len(trades) == 0 {
		return time.Time{}, time.Time{}
	}
	first := trades[0].EntryTime
	last := trades[0].ExitTime
	for _, t := range trades {
		if t.EntryTime.Before(first) {
			first = t.EntryTime
		}
		if t.ExitTime.After(last) {
			last = t.ExitTime
		}
	}
	return first, last
}
