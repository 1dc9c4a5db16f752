package montecarlo

import (
	"fmt"
	"math"

	coreerrors "github.com/phamtrung93/fx-sentinel/internal/errors"
)

// CapitalMultiples are the drawdown-to-ruin depths the estimate is evaluated
// at, in units of risk-per-trade.
var CapitalMultiples = []int{10, 20, 30, 50, 100}

// RiskOfRuinAnalysis holds the gambler's-ruin estimate. Probabilities are in
// percent, capped at 100.
//
// This is the classic approximation: it assumes a fixed bet size and i.i.d.
// trade outcomes, neither of which holds exactly for compounding position
// sizes. Treat it as a conservative risk signal, not an exact probability.
type RiskOfRuinAnalysis struct {
	WinRate           float64
	AvgWin            float64
	AvgLoss           float64
	WinLossRatio      float64
	RiskPerTradePct   float64
	AdjustedWinProb   float64
	ByCapitalMultiple map[int]float64
}

// RiskOfRuin estimates the probability of losing c units of risk capital
// before recovering, for each capital multiple c. Adjusted win probability
// p' = pR / (pR + (1-p)); ruin at depth c is ((1-p')/p')^(c / riskPerTradePct).
func RiskOfRuin(winRate, avgWin, avgLoss, riskPerTradePct float64) (*RiskOfRuinAnalysis, error) {
	if winRate <= 0 || winRate >= 1 {
		return nil, coreerrors.Precondition(coreerrors.ErrInvalidWinRate, "montecarlo", "RiskOfRuin")
	}
	if avgWin <= 0 || avgLoss <= 0 {
		return nil, coreerrors.Precondition(coreerrors.ErrInvalidPayoff, "montecarlo", "RiskOfRuin")
	}
	if riskPerTradePct <= 0 {
		return nil, fmt.Errorf("risk per trade must be positive, got %.2f", riskPerTradePct)
	}

	ratio := avgWin / avgLoss
	adjusted := (winRate * ratio) / (winRate*ratio + (1 - winRate))

	analysis := &RiskOfRuinAnalysis{
		WinRate:           winRate,
		AvgWin:            avgWin,
		AvgLoss:           avgLoss,
		WinLossRatio:      ratio,
		RiskPerTradePct:   riskPerTradePct,
		AdjustedWinProb:   adjusted,
		ByCapitalMultiple: make(map[int]float64, len(CapitalMultiples)),
	}

	for _, c := range CapitalMultiples {
		analysis.ByCapitalMultiple[c] = ruinProbability(adjusted, float64(c), riskPerTradePct)
	}

	return analysis, nil
}

func ruinProbability(adjustedWinProb, capitalMultiple, riskPerTradePct float64) float64 {
	// No edge: ruin is certain given enough trades.
	if adjustedWinProb <= 0.5 {
		return 100
	}

	base := (1 - adjustedWinProb) / adjustedWinProb
	ror := math.Pow(base, capitalMultiple/riskPerTradePct) * 100
	if ror > 100 {
		return 100
	}
	return ror
}
