package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/phamtrung93/fx-sentinel/internal/config"
	"github.com/phamtrung93/fx-sentinel/internal/journal"
	"github.com/phamtrung93/fx-sentinel/internal/montecarlo"
	"github.com/phamtrung93/fx-sentinel/pkg/reporting"
	"github.com/phamtrung93/fx-sentinel/pkg/types"
	"github.com/phamtrung93/fx-sentinel/pkg/validation"
)

const (
	AppName    = "Backtest Audit"
	AppVersion = "1.0.0"
)

func main() {
	flags := NewAuditFlags()
	flag.Parse()

	if *flags.ShowVersion {
		fmt.Printf("%s v%s\n", AppName, AppVersion)
		return
	}
	if *flags.ShowHelp {
		printUsageHelp()
		return
	}

	loadEnvironment(*flags.EnvFile)
	ApplyConfigDefaults(flags, config.Load())

	if err := ValidateAuditFlags(flags); err != nil {
		log.Fatalf("❌ Flag validation error: %v", err)
	}

	printHeader()

	trades, err := loadTrades(flags)
	if err != nil {
		log.Fatalf("❌ Trade log error: %v", err)
	}
	if len(trades) == 0 {
		log.Fatalf("❌ Trade log is empty, nothing to audit")
	}
	fmt.Printf("📂 Loaded %d trades\n\n", len(trades))

	settings := types.BacktestSettings{
		UsedTickData:       *flags.TickData,
		IncludedSpread:     *flags.Spread,
		IncludedCommission: *flags.Commission,
	}

	report := reporting.NewAuditReport(*flags.Strategy, *flags.Symbol)
	report.Summary = types.SummarizeTrades(trades, settings)
	report.Validation = validation.Validate(report.Summary)
	report.Projection = validation.ProjectLivePerformance(report.Summary)

	if err := runOverfitComparison(flags, trades, settings, report); err != nil {
		log.Fatalf("❌ Overfit comparison error: %v", err)
	}

	if *flags.Simulations > 0 {
		if err := runMonteCarlo(flags, trades, report); err != nil {
			log.Fatalf("❌ Monte Carlo error: %v", err)
		}
	}

	runRiskOfRuin(flags, trades, report)

	reporting.NewConsoleReporter().PrintReport(report)

	if !*flags.ConsoleOnly {
		if err := writeReportFiles(flags, report); err != nil {
			log.Fatalf("❌ Report output error: %v", err)
		}
	}
}

func printHeader() {
	fmt.Println(strings.Repeat("=", 50))
	fmt.Printf("🔍 %s v%s\n", AppName, AppVersion)
	fmt.Println(strings.Repeat("=", 50))
}

func printUsageHelp() {
	fmt.Printf("%s v%s - statistical audit for strategy trade logs\n", AppName, AppVersion)
	PrintUsageExamples()
	fmt.Println("All flags:")
	flag.PrintDefaults()
}

func loadEnvironment(envFile string) {
	if err := config.LoadEnvFile(envFile); err != nil {
		log.Printf("⚠️  Could not load %s (%v)", envFile, err)
	}
}

// loadTrades reads the trade log from whichever source was flagged.
func loadTrades(flags *AuditFlags) ([]types.TradeRecord, error) {
	if *flags.DataFile != "" {
		return journal.ReadTradesCSV(*flags.DataFile)
	}

	j, err := journal.NewSQLite(*flags.Database)
	if err != nil {
		return nil, err
	}
	defer j.Close()
	return j.ListTrades(context.Background())
}

// runOverfitComparison fills the overfit section when an out-of-sample source
// was flagged, either a second file or a split of the main log.
func runOverfitComparison(flags *AuditFlags, trades []types.TradeRecord, settings types.BacktestSettings, report *reporting.AuditReport) error {
	var inSample, outOfSample []types.TradeRecord

	switch {
	case *flags.OOSDataFile != "":
		oosTrades, err := journal.ReadTradesCSV(*flags.OOSDataFile)
		if err != nil {
			return err
		}
		inSample, outOfSample = trades, oosTrades
	case *flags.SplitRatio > 0:
		inSample, outOfSample = validation.SplitByRatio(trades, *flags.SplitRatio)
	default:
		return nil
	}

	if len(outOfSample) == 0 {
		return fmt.Errorf("out-of-sample set is empty")
	}

	analysis := validation.CompareSamples(
		types.SummarizeTrades(inSample, settings),
		types.SummarizeTrades(outOfSample, settings),
	)
	report.Overfit = &analysis
	return nil
}

func runMonteCarlo(flags *AuditFlags, trades []types.TradeRecord, report *reporting.AuditReport) error {
	timeout, err := time.ParseDuration(*flags.Timeout)
	if err != nil {
		return fmt.Errorf("invalid -mc-timeout %q: %w", *flags.Timeout, err)
	}

	seed := *flags.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	tradesPerSim := *flags.TradesPerSim
	if tradesPerSim <= 0 {
		tradesPerSim = len(trades)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	engine := montecarlo.NewEngine(montecarlo.Config{
		Seed:    seed,
		Workers: *flags.Workers,
	})
	result, err := engine.Simulate(ctx, types.Returns(trades), *flags.Simulations, tradesPerSim)
	if err != nil {
		return err
	}

	distribution := result.Summarize()
	report.Simulation = result
	report.Distribution = &distribution
	return nil
}

// runRiskOfRuin is best-effort: a trade log without both wins and losses has
// no payoff ratio, and the report simply omits the section.
func runRiskOfRuin(flags *AuditFlags, trades []types.TradeRecord, report *reporting.AuditReport) {
	avgWin, avgLoss := types.AverageWinLoss(trades)
	ruin, err := montecarlo.RiskOfRuin(report.Summary.WinRate, avgWin, avgLoss, *flags.RiskPerTrade)
	if err != nil {
		log.Printf("⚠️  Skipping risk of ruin: %v", err)
		return
	}
	report.Ruin = ruin
}

func writeReportFiles(flags *AuditFlags, report *reporting.AuditReport) error {
	outputDir := *flags.OutputDir
	if outputDir == "" {
		outputDir = reporting.DefaultOutputDir(*flags.Strategy)
	}

	targets := []struct {
		name  string
		write func(string) error
	}{
		{"report.txt", func(path string) error {
			return writeText(path, reporting.ReportText(report))
		}},
		{"report.csv", func(path string) error { return reporting.WriteReportCSV(report, path) }},
		{"report.json", func(path string) error { return reporting.WriteReportJSON(report, path) }},
		{"report.xlsx", func(path string) error { return reporting.WriteReportXLSX(report, path) }},
	}

	for _, target := range targets {
		path := filepath.Join(outputDir, target.name)
		if err := target.write(path); err != nil {
			return fmt.Errorf("%s: %w", target.name, err)
		}
		fmt.Printf("💾 Wrote %s\n", path)
	}
	return nil
}
