package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Strategy struct {
		Name         string
		Symbol       string
		EquityAtRisk float64
	}

	Journal struct {
		DatabasePath string
		CSVPath      string
	}

	Simulation struct {
		Iterations int
		Seed       int64
		Workers    int
		Timeout    time.Duration
	}
}

// LoadEnvFile loads a .env file if present. A missing file is not an error;
// explicit environment variables always win.
func LoadEnvFile(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	return godotenv.Load(path)
}

func Load() *Config {
	cfg := &Config{}

	cfg.Strategy.Name = getEnv("STRATEGY_NAME", "default")
	cfg.Strategy.Symbol = getEnv("TRADING_SYMBOL", "EURUSD")
	cfg.Strategy.EquityAtRisk = getEnvFloat("EQUITY_AT_RISK_PCT", 1.0)

	cfg.Journal.DatabasePath = getEnv("JOURNAL_DB_PATH", "trades.db")
	cfg.Journal.CSVPath = getEnv("JOURNAL_CSV_PATH", "")

	cfg.Simulation.Iterations = getEnvInt("MC_ITERATIONS", 1000)
	cfg.Simulation.Seed = int64(getEnvInt("MC_SEED", 0))
	cfg.Simulation.Workers = getEnvInt("MC_WORKERS", 0)
	cfg.Simulation.Timeout = getEnvDuration("MC_TIMEOUT", 2*time.Minute)

	return cfg
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseFloat(val, 64); err == nil {
			return parsed
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}
