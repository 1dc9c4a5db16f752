package sizing

import (
	"fmt"
	"math"

	coreerrors "github.com/phamtrung93/fx-sentinel/internal/errors"
	"github.com/phamtrung93/fx-sentinel/internal/monitoring"
)

// Fractional-Kelly output is clamped to this risk band regardless of what the
// raw formula suggests. Unclamped Kelly on noisy statistics can demand
// dangerously large (or negative) positions.
const (
	KellyMinRiskPct = 0.5
	KellyMaxRiskPct = 10.0

	// DefaultMaxEquityFraction is the notional-value warning threshold used by
	// ValidateSize when the caller does not supply one.
	DefaultMaxEquityFraction = 0.05
)

// InstrumentConstraints are the broker-side validity bounds for one instrument.
type InstrumentConstraints struct {
	MinSize  float64
	MaxSize  float64
	SizeStep float64
	PipValue float64
}

// Validate checks the constraints are internally consistent
func (c InstrumentConstraints) Validate() error {
	if c.MinSize <= 0 || c.MaxSize <= 0 || c.SizeStep <= 0 || c.PipValue <= 0 {
		return fmt.Errorf("instrument constraints must all be positive: %+v", c)
	}
	if c.MinSize > c.MaxSize {
		return fmt.Errorf("min size %.4f exceeds max size %.4f", c.MinSize, c.MaxSize)
	}
	return nil
}

// Sizer converts a risk budget and a stop distance into a broker-valid trade
// size. One Sizer per instrument, injected into each strategy by composition;
// every method is pure apart from metrics.
type Sizer struct {
	constraints InstrumentConstraints
}

// NewSizer creates a sizer bound to one instrument's constraints
func NewSizer(constraints InstrumentConstraints) (*Sizer, error) {
	if err := constraints.Validate(); err != nil {
		return nil, err
	}
	return &Sizer{constraints: constraints}, nil
}

// Constraints returns the bound instrument constraints
func (s *Sizer) Constraints() InstrumentConstraints {
	return s.constraints
}

// SizeByFixedRisk sizes a position so that being stopped out loses at most
// riskPct percent of the balance. The result is floored to the nearest size
// step: rounding up would silently push the loss past the requested budget.
func (s *Sizer) SizeByFixedRisk(balance, riskPct, stopLossPips float64) (float64, error) {
	if stopLossPips <= 0 {
		monitoring.RecordSizingRejection("fixed_risk", "invalid_stop_loss")
		return 0, coreerrors.Precondition(coreerrors.ErrInvalidStopLoss, "sizing", "SizeByFixedRisk")
	}
	if riskPct <= 0 {
		monitoring.RecordSizingRejection("fixed_risk", "invalid_risk_pct")
		return 0, coreerrors.Precondition(coreerrors.ErrInvalidRiskPct, "sizing", "SizeByFixedRisk")
	}
	if balance <= 0 {
		monitoring.RecordSizingRejection("fixed_risk", "invalid_balance")
		return 0, fmt.Errorf("balance must be positive, got %.2f", balance)
	}

	riskAmount := balance * riskPct / 100
	rawSize := riskAmount / (stopLossPips * s.constraints.PipValue)

	size, err := s.snapToConstraints(rawSize, "fixed_risk")
	if err != nil {
		return 0, err
	}

	monitoring.RecordPositionSize("fixed_risk", size)
	return size, nil
}

// SizeByVolatility derives the stop distance from current volatility
// (atr * atrMultiplier, in pips) and then applies the fixed-risk formula.
func (s *Sizer) SizeByVolatility(balance, riskPct, atr, atrMultiplier float64) (float64, error) {
	if atr <= 0 {
		monitoring.RecordSizingRejection("volatility", "invalid_atr")
		return 0, coreerrors.Precondition(coreerrors.ErrInvalidVolatility, "sizing", "SizeByVolatility")
	}
	if atrMultiplier <= 0 {
		monitoring.RecordSizingRejection("volatility", "invalid_multiplier")
		return 0, fmt.Errorf("atr multiplier must be positive, got %.2f", atrMultiplier)
	}

	return s.SizeByFixedRisk(balance, riskPct, atr*atrMultiplier)
}

// SizeByFractionalKelly sizes from the strategy's historical edge. The full
// Kelly fraction is scaled down by kellyFraction and hard-clamped to
// [KellyMinRiskPct, KellyMaxRiskPct] percent of balance before being run
// through the fixed-risk formula.
func (s *Sizer) SizeByFractionalKelly(balance, winRate, avgWinLossRatio, kellyFraction, stopLossPips float64) (float64, error) {
	riskPct, err := EffectiveKellyRiskPct(winRate, avgWinLossRatio, kellyFraction)
	if err != nil {
		monitoring.RecordSizingRejection("fractional_kelly", "invalid_statistics")
		return 0, err
	}

	size, err := s.SizeByFixedRisk(balance, riskPct, stopLossPips)
	if err != nil {
		return 0, err
	}

	monitoring.RecordPositionSize("fractional_kelly", size)
	return size, nil
}

// EffectiveKellyRiskPct computes the clamped risk percentage that fractional
// Kelly sizing hands to the fixed-risk formula. Exposed so callers can inspect
// what the statistics suggest before committing a trade.
func EffectiveKellyRiskPct(winRate, avgWinLossRatio, kellyFraction float64) (float64, error) {
	if winRate <= 0 || winRate >= 1 {
		return 0, coreerrors.Precondition(coreerrors.ErrInvalidWinRate, "sizing", "EffectiveKellyRiskPct")
	}
	if avgWinLossRatio <= 0 {
		return 0, coreerrors.Precondition(coreerrors.ErrInvalidPayoff, "sizing", "EffectiveKellyRiskPct")
	}
	if kellyFraction <= 0 || kellyFraction > 1 {
		return 0, fmt.Errorf("kelly fraction must be in (0,1], got %.2f", kellyFraction)
	}

	// f* = (p(R+1) - 1) / R
	fullKelly := (winRate*(avgWinLossRatio+1) - 1) / avgWinLossRatio
	riskPct := fullKelly * kellyFraction * 100

	return math.Min(math.Max(riskPct, KellyMinRiskPct), KellyMaxRiskPct), nil
}

// snapToConstraints floors the raw size onto the instrument's step grid and
// enforces the size bounds. Flooring only: never round a size up.
func (s *Sizer) snapToConstraints(rawSize float64, algorithm string) (float64, error) {
	steps := math.Floor(rawSize/s.constraints.SizeStep + 1e-9)
	size := steps * s.constraints.SizeStep

	if size > s.constraints.MaxSize {
		// Capping shrinks the position, so it only ever reduces risk.
		size = math.Floor(s.constraints.MaxSize/s.constraints.SizeStep) * s.constraints.SizeStep
	}
	if size < s.constraints.MinSize {
		monitoring.RecordSizingRejection(algorithm, "below_minimum")
		return 0, coreerrors.Precondition(coreerrors.ErrBelowMinimum, "sizing", "snapToConstraints")
	}
	return size, nil
}

// SizeCheck is the outcome of validating an externally supplied size.
type SizeCheck struct {
	Valid    bool
	Err      error
	Warnings []string
}

// ValidateSize checks a size against the instrument bounds and, as a warning
// rather than a failure, against the position's notional share of equity.
// A non-positive maxEquityFraction selects DefaultMaxEquityFraction.
func (s *Sizer) ValidateSize(size, price, balance, maxEquityFraction float64) SizeCheck {
	if maxEquityFraction <= 0 {
		maxEquityFraction = DefaultMaxEquityFraction
	}

	if size <= 0 {
		return SizeCheck{Err: fmt.Errorf("size must be positive, got %.4f", size)}
	}
	if size < s.constraints.MinSize {
		return SizeCheck{Err: coreerrors.Precondition(coreerrors.ErrBelowMinimum, "sizing", "ValidateSize")}
	}
	if size > s.constraints.MaxSize {
		return SizeCheck{Err: coreerrors.Precondition(coreerrors.ErrAboveMaximum, "sizing", "ValidateSize")}
	}

	check := SizeCheck{Valid: true}
	if price > 0 && balance > 0 {
		notional := size * price
		if notional > balance*maxEquityFraction {
			check.Warnings = append(check.Warnings, fmt.Sprintf(
				"notional value %.2f exceeds %.1f%% of equity", notional, maxEquityFraction*100))
		}
	}
	return check
}
