// Package reporting renders audit results for humans: console tables, plain
// text, CSV, JSON and Excel. Rendering never mutates its inputs.
package reporting

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/phamtrung93/fx-sentinel/internal/montecarlo"
	"github.com/phamtrung93/fx-sentinel/pkg/types"
	"github.com/phamtrung93/fx-sentinel/pkg/validation"
)

// AuditReport is everything one audit run produced. Optional sections are nil
// when the corresponding stage was skipped.
type AuditReport struct {
	ReportID    string
	Strategy    string
	Symbol      string
	GeneratedAt time.Time

	Summary    types.BacktestSummary
	Validation validation.ValidationReport
	Projection validation.LivePerformanceExpectation

	Overfit      *validation.OverfitAnalysis
	Simulation   *montecarlo.SimulationResult
	Distribution *montecarlo.DistributionSummary
	Ruin         *montecarlo.RiskOfRuinAnalysis
}

// NewAuditReport stamps a fresh report shell; sections are filled in by the
// caller as stages complete.
func NewAuditReport(strategy, symbol string) *AuditReport {
	return &AuditReport{
		ReportID:    uuid.New().String(),
		Strategy:    strategy,
		Symbol:      symbol,
		GeneratedAt: time.Now().UTC(),
	}
}

// DefaultOutputDir returns the directory audit artifacts are written into.
func DefaultOutputDir(strategy string) string {
	s := strings.ToLower(strings.TrimSpace(strategy))
	if s == "" {
		s = "unknown"
	}
	return filepath.Join("reports", fmt.Sprintf("%s_%s", s, time.Now().UTC().Format("20060102")))
}

// EnsureDirectoryExists creates the parent directory of path if needed.
func EnsureDirectoryExists(path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		return os.MkdirAll(dir, 0755)
	}
	return nil
}
