package main

import (
	"flag"
	"fmt"

	"github.com/phamtrung93/fx-sentinel/internal/config"
)

// AuditFlags holds all command line flags for the backtest audit command
type AuditFlags struct {
	// Trade log input (exactly one of these)
	DataFile *string
	Database *string

	// Out-of-sample comparison
	OOSDataFile *string
	SplitRatio  *float64

	// Strategy identity
	Strategy *string
	Symbol   *string

	// Backtest settings descriptors
	TickData   *bool
	Spread     *bool
	Commission *bool

	// Monte Carlo options
	Simulations  *int
	TradesPerSim *int
	Seed         *int64
	Workers      *int
	Timeout      *string

	// Risk of ruin
	RiskPerTrade *float64

	// Output options
	OutputDir   *string
	ConsoleOnly *bool
	EnvFile     *string

	// Help and version
	ShowVersion *bool
	ShowHelp    *bool
}

// NewAuditFlags creates and registers all audit command line flags
func NewAuditFlags() *AuditFlags {
	flags := &AuditFlags{
		// Trade log input
		DataFile: flag.String("data", "", "Path to trade log CSV file"),
		Database: flag.String("db", "", "Path to SQLite trade journal"),

		// Out-of-sample comparison
		OOSDataFile: flag.String("oos-data", "", "Out-of-sample trade log CSV for overfit comparison"),
		SplitRatio:  flag.Float64("split-ratio", 0, "Split the trade log in/out-of-sample by ratio (0 = no split, 0.7 = 70% in sample)"),

		// Strategy identity
		Strategy: flag.String("strategy", "default", "Strategy name for reports and logs"),
		Symbol:   flag.String("symbol", "EURUSD", "Traded symbol"),

		// Backtest settings descriptors
		TickData:   flag.Bool("tick-data", false, "Backtest used tick data"),
		Spread:     flag.Bool("spread", true, "Backtest included spread"),
		Commission: flag.Bool("commission", true, "Backtest included commission"),

		// Monte Carlo options
		Simulations:  flag.Int("mc-sims", 1000, "Number of bootstrap simulations (0 disables Monte Carlo)"),
		TradesPerSim: flag.Int("mc-trades", 0, "Trades per simulated path (0 = length of the trade log)"),
		Seed:         flag.Int64("mc-seed", 0, "Random seed (0 = time-based)"),
		Workers:      flag.Int("mc-workers", 0, "Simulation workers (0 = number of CPUs)"),
		Timeout:      flag.String("mc-timeout", "2m", "Simulation timeout (e.g. 30s, 2m)"),

		// Risk of ruin
		RiskPerTrade: flag.Float64("risk-per-trade", 1.0, "Risk per trade in percent for the ruin estimate"),

		// Output options
		OutputDir:   flag.String("output", "", "Report output directory (default reports/<strategy>_<date>)"),
		ConsoleOnly: flag.Bool("console-only", false, "Console output only (no files)"),
		EnvFile:     flag.String("env", ".env", "Environment file path"),

		// Help and version
		ShowVersion: flag.Bool("version", false, "Show version information"),
		ShowHelp:    flag.Bool("help", false, "Show detailed help"),
	}

	return flags
}

// ApplyConfigDefaults fills in flags the user did not pass from the
// environment config, so the .env that drives a live session also drives its
// audit. Explicit flags always win. Must run after flag.Parse.
func ApplyConfigDefaults(flags *AuditFlags, cfg *config.Config) {
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	applyConfigDefaults(flags, cfg, set)
}

func applyConfigDefaults(flags *AuditFlags, cfg *config.Config, set map[string]bool) {
	if !set["data"] && !set["db"] {
		if cfg.Journal.CSVPath != "" {
			*flags.DataFile = cfg.Journal.CSVPath
		} else {
			*flags.Database = cfg.Journal.DatabasePath
		}
	}
	if !set["strategy"] {
		*flags.Strategy = cfg.Strategy.Name
	}
	if !set["symbol"] {
		*flags.Symbol = cfg.Strategy.Symbol
	}
	if !set["mc-sims"] {
		*flags.Simulations = cfg.Simulation.Iterations
	}
	if !set["mc-seed"] {
		*flags.Seed = cfg.Simulation.Seed
	}
	if !set["mc-workers"] {
		*flags.Workers = cfg.Simulation.Workers
	}
	if !set["mc-timeout"] {
		*flags.Timeout = cfg.Simulation.Timeout.String()
	}
	if !set["risk-per-trade"] {
		*flags.RiskPerTrade = cfg.Strategy.EquityAtRisk
	}
}

// ValidateAuditFlags checks flag combinations before any work happens
func ValidateAuditFlags(flags *AuditFlags) error {
	if *flags.DataFile == "" && *flags.Database == "" {
		return fmt.Errorf("a trade log is required: pass -data <csv> or -db <sqlite>")
	}
	if *flags.DataFile != "" && *flags.Database != "" {
		return fmt.Errorf("pass either -data or -db, not both")
	}
	if *flags.OOSDataFile != "" && *flags.SplitRatio != 0 {
		return fmt.Errorf("pass either -oos-data or -split-ratio, not both")
	}
	if *flags.SplitRatio != 0 && (*flags.SplitRatio <= 0 || *flags.SplitRatio >= 1) {
		return fmt.Errorf("split ratio must be in (0,1), got %.2f", *flags.SplitRatio)
	}
	if *flags.Simulations < 0 {
		return fmt.Errorf("simulation count must be >= 0, got %d", *flags.Simulations)
	}
	if *flags.RiskPerTrade <= 0 {
		return fmt.Errorf("risk per trade must be positive, got %.2f", *flags.RiskPerTrade)
	}
	return nil
}

// PrintUsageExamples prints usage examples for the audit command
func PrintUsageExamples() {
	examples := []struct {
		command     string
		description string
	}{
		{
			"backtest-audit -data trades.csv -strategy trend-follow",
			"Audit a CSV trade log: validation, projection, Monte Carlo, risk of ruin",
		},
		{
			"backtest-audit -db trades.db -symbol GBPJPY",
			"Audit the SQLite trade journal written by a live session",
		},
		{
			"backtest-audit -data trades.csv -split-ratio 0.7",
			"Split the log 70/30 and score in-sample vs out-of-sample degradation",
		},
		{
			"backtest-audit -data is.csv -oos-data oos.csv",
			"Compare two separately produced runs of the same strategy",
		},
		{
			"backtest-audit -data trades.csv -mc-sims 10000 -mc-seed 42",
			"Reproducible Monte Carlo with a fixed seed",
		},
		{
			"backtest-audit -data trades.csv -console-only",
			"Print everything to the terminal, write no files",
		},
	}

	fmt.Println("\n📋 Usage Examples:")
	for _, ex := range examples {
		fmt.Printf("\n  %s\n      %s\n", ex.command, ex.description)
	}
	fmt.Println()
}
