package reporting

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/phamtrung93/fx-sentinel/internal/montecarlo"
)

// ExcelStyles holds the style IDs shared across sheets.
type ExcelStyles struct {
	Header  int
	Label   int
	Percent int
	Bad     int
	Good    int
}

// WriteReportXLSX writes the audit report as a multi-sheet workbook.
func WriteReportXLSX(report *AuditReport, path string) error {
	if err := EnsureDirectoryExists(path); err != nil {
		return err
	}

	fx := excelize.NewFile()
	defer fx.Close()

	const summarySheet = "Summary"
	const validationSheet = "Validation"
	const simulationSheet = "Monte Carlo"
	const ruinSheet = "Risk of Ruin"

	fx.SetSheetName(fx.GetSheetName(0), summarySheet)
	fx.NewSheet(validationSheet)

	styles, err := createStyles(fx)
	if err != nil {
		return err
	}

	if err := writeSummarySheet(fx, summarySheet, report, styles); err != nil {
		return err
	}
	if err := writeValidationSheet(fx, validationSheet, report, styles); err != nil {
		return err
	}
	if report.Distribution != nil {
		fx.NewSheet(simulationSheet)
		if err := writeSimulationSheet(fx, simulationSheet, report, styles); err != nil {
			return err
		}
	}
	if report.Ruin != nil {
		fx.NewSheet(ruinSheet)
		if err := writeRuinSheet(fx, ruinSheet, report, styles); err != nil {
			return err
		}
	}

	return fx.SaveAs(path)
}

func createStyles(fx *excelize.File) (ExcelStyles, error) {
	var styles ExcelStyles
	var err error

	styles.Header, err = fx.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return styles, err
	}

	styles.Label, err = fx.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return styles, err
	}

	styles.Percent, err = fx.NewStyle(&excelize.Style{
		NumFmt: 2,
		Alignment: &excelize.Alignment{
			Horizontal: "right",
		},
	})
	if err != nil {
		return styles, err
	}

	styles.Bad, err = fx.NewStyle(&excelize.Style{
		NumFmt: 2,
		Font:   &excelize.Font{Color: "CC0000"},
	})
	if err != nil {
		return styles, err
	}

	styles.Good, err = fx.NewStyle(&excelize.Style{
		NumFmt: 2,
		Font:   &excelize.Font{Color: "007700"},
	})
	return styles, err
}

func writeSummarySheet(fx *excelize.File, sheet string, report *AuditReport, styles ExcelStyles) error {
	s := report.Summary

	rows := []struct {
		label string
		value interface{}
	}{
		{"Strategy", report.Strategy},
		{"Symbol", report.Symbol},
		{"Generated", report.GeneratedAt.Format("2006-01-02 15:04:05 UTC")},
		{"Report ID", report.ReportID},
		{"", nil},
		{"Total Trades", s.TotalTrades},
		{"Win Rate %", s.WinRate * 100},
		{"Profit Factor", s.ProfitFactor},
		{"Sharpe Ratio", s.SharpeRatio},
		{"Total Return %", s.ReturnPct},
		{"Max Drawdown %", s.MaxDrawdownPct},
		{"Avg Win/Loss", s.AvgWinLossRatio},
		{"Max Consecutive Wins", s.MaxConsecutiveWins},
		{"Max Consecutive Losses", s.MaxConsecutiveLosses},
		{"Span (days)", s.DurationDays},
		{"Used Tick Data", s.Settings.UsedTickData},
		{"Included Spread", s.Settings.IncludedSpread},
		{"Included Commission", s.Settings.IncludedCommission},
	}

	for i, row := range rows {
		cell := fmt.Sprintf("A%d", i+1)
		if err := fx.SetCellValue(sheet, cell, row.label); err != nil {
			return err
		}
		fx.SetCellStyle(sheet, cell, cell, styles.Label)
		if row.value != nil {
			if err := fx.SetCellValue(sheet, fmt.Sprintf("B%d", i+1), row.value); err != nil {
				return err
			}
		}
	}

	return fx.SetColWidth(sheet, "A", "A", 26)
}

func writeValidationSheet(fx *excelize.File, sheet string, report *AuditReport, styles ExcelStyles) error {
	v := report.Validation

	fx.SetCellValue(sheet, "A1", "Severity")
	fx.SetCellValue(sheet, "B1", "Finding")
	fx.SetCellStyle(sheet, "A1", "B1", styles.Header)

	row := 2
	for _, e := range v.Errors {
		fx.SetCellValue(sheet, fmt.Sprintf("A%d", row), "ERROR")
		fx.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), styles.Bad)
		fx.SetCellValue(sheet, fmt.Sprintf("B%d", row), e)
		row++
	}
	for _, w := range v.Warnings {
		fx.SetCellValue(sheet, fmt.Sprintf("A%d", row), "WARNING")
		fx.SetCellValue(sheet, fmt.Sprintf("B%d", row), w)
		row++
	}
	if row == 2 {
		fx.SetCellValue(sheet, "A2", "PASSED")
		fx.SetCellStyle(sheet, "A2", "A2", styles.Good)
		fx.SetCellValue(sheet, "B2", "no findings")
	}

	fx.SetColWidth(sheet, "A", "A", 12)
	return fx.SetColWidth(sheet, "B", "B", 80)
}

func writeSimulationSheet(fx *excelize.File, sheet string, report *AuditReport, styles ExcelStyles) error {
	d := report.Distribution

	fx.SetCellValue(sheet, "A1", "Metric")
	fx.SetCellValue(sheet, "B1", "Value")
	fx.SetCellStyle(sheet, "A1", "B1", styles.Header)

	rows := []struct {
		label string
		value float64
	}{
		{"Mean Return %", d.MeanReturn},
		{"Std Deviation", d.StdDev},
		{"5th Percentile Return %", d.Return5th},
		{"Median Return %", d.MedianReturn},
		{"95th Percentile Return %", d.Return95th},
		{"95th Percentile Drawdown %", d.Drawdown95th},
		{"Worst Drawdown %", d.WorstDrawdown},
	}
	for i, row := range rows {
		fx.SetCellValue(sheet, fmt.Sprintf("A%d", i+2), row.label)
		cell := fmt.Sprintf("B%d", i+2)
		fx.SetCellValue(sheet, cell, row.value)
		fx.SetCellStyle(sheet, cell, cell, styles.Percent)
	}

	if report.Simulation != nil {
		base := len(rows) + 3
		fx.SetCellValue(sheet, fmt.Sprintf("A%d", base), "Simulations")
		fx.SetCellValue(sheet, fmt.Sprintf("B%d", base), len(report.Simulation.ReturnSamples))
		fx.SetCellValue(sheet, fmt.Sprintf("A%d", base+1), "Seed")
		fx.SetCellValue(sheet, fmt.Sprintf("B%d", base+1), report.Simulation.Seed)
		fx.SetCellValue(sheet, fmt.Sprintf("A%d", base+2), "Low Sample")
		fx.SetCellValue(sheet, fmt.Sprintf("B%d", base+2), report.Simulation.LowSample)
	}

	return fx.SetColWidth(sheet, "A", "A", 28)
}

func writeRuinSheet(fx *excelize.File, sheet string, report *AuditReport, styles ExcelStyles) error {
	fx.SetCellValue(sheet, "A1", "Capital Multiple")
	fx.SetCellValue(sheet, "B1", "Ruin Probability %")
	fx.SetCellStyle(sheet, "A1", "B1", styles.Header)

	row := 2
	for _, c := range montecarlo.CapitalMultiples {
		p, ok := report.Ruin.ByCapitalMultiple[c]
		if !ok {
			continue
		}
		fx.SetCellValue(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("%dx risk", c))
		cell := fmt.Sprintf("B%d", row)
		fx.SetCellValue(sheet, cell, p)
		if p >= 50 {
			fx.SetCellStyle(sheet, cell, cell, styles.Bad)
		} else {
			fx.SetCellStyle(sheet, cell, cell, styles.Percent)
		}
		row++
	}

	fx.SetColWidth(sheet, "A", "A", 18)
	return fx.SetColWidth(sheet, "B", "B", 20)
}
