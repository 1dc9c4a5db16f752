package config

import (
	"os"

	"gopkg.in/yaml.v3"

	coreerrors "github.com/phamtrung93/fx-sentinel/internal/errors"
	"github.com/phamtrung93/fx-sentinel/internal/risk"
)

// limitsFile is the YAML shape of a risk-limits file. Fields left out fall
// back to the conservative defaults rather than zero.
type limitsFile struct {
	Risk risk.RiskLimits `yaml:"risk"`
}

// LoadRiskLimits reads session risk limits from a YAML file. An empty path
// returns the defaults. Loaded limits are validated before use; a limits
// file that fails validation never reaches the governor.
func LoadRiskLimits(path string) (risk.RiskLimits, error) {
	limits := risk.DefaultRiskLimits()
	if path == "" {
		return limits, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return limits, coreerrors.WrapError(err, coreerrors.ErrorCategoryConfiguration, "config", "load_limits")
	}

	// Unmarshal over the defaults so a partial file only overrides what it names.
	file := limitsFile{Risk: limits}
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return limits, coreerrors.WrapError(err, coreerrors.ErrorCategoryConfiguration, "config", "parse_limits")
	}
	limits = file.Risk

	if err := limits.Validate(); err != nil {
		return limits, coreerrors.WrapError(err, coreerrors.ErrorCategoryConfiguration, "config", "validate_limits")
	}
	return limits, nil
}
