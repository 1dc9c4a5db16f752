package journal

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	coreerrors "github.com/phamtrung93/fx-sentinel/internal/errors"
	"github.com/phamtrung93/fx-sentinel/pkg/types"
)

// csvHeader is the canonical trade-log column order. Exports written here and
// logs produced by the strategy terminal share this layout.
var csvHeader = []string{
	"EntryTime", "ExitTime", "Symbol", "Direction", "Volume",
	"EntryPrice", "ExitPrice", "StopLoss", "TakeProfit",
	"NetProfit", "GrossProfit", "Commission", "Swap", "Pips",
	"DurationHours", "Strategy", "SignalDetails", "ExitReason",
}

// WriteTradesCSV writes the trade log to path, header first.
func WriteTradesCSV(path string, trades []types.TradeRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return coreerrors.WrapError(err, coreerrors.ErrorCategoryStorage, "journal", "write_csv")
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return coreerrors.WrapError(err, coreerrors.ErrorCategoryStorage, "journal", "write_csv")
	}
	for _, t := range trades {
		row := []string{
			t.EntryTime.Format(time.RFC3339),
			t.ExitTime.Format(time.RFC3339),
			t.Symbol,
			string(t.Direction),
			formatFloat(t.Volume),
			formatFloat(t.EntryPrice),
			formatFloat(t.ExitPrice),
			formatFloat(t.StopLoss),
			formatFloat(t.TakeProfit),
			formatFloat(t.NetProfit),
			formatFloat(t.GrossProfit),
			formatFloat(t.Commission),
			formatFloat(t.Swap),
			formatFloat(t.Pips),
			formatFloat(t.DurationHours),
			t.Strategy,
			t.SignalDetails,
			t.ExitReason,
		}
		if err := w.Write(row); err != nil {
			return coreerrors.WrapError(err, coreerrors.ErrorCategoryStorage, "journal", "write_csv")
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return coreerrors.WrapError(err, coreerrors.ErrorCategoryStorage, "journal", "write_csv")
	}
	return nil
}

// ReadTradesCSV loads a trade log exported by a strategy terminal. The file
// carries no per-trade return column, so ReturnPct is derived from net profit
// over the notional at entry.
func ReadTradesCSV(path string) ([]types.TradeRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, coreerrors.WrapError(err, coreerrors.ErrorCategoryStorage, "journal", "read_csv")
	}
	defer f.Close()
	return readTrades(f)
}

func readTrades(r io.Reader) ([]types.TradeRecord, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, coreerrors.WrapError(err, coreerrors.ErrorCategoryStorage, "journal", "read_csv")
	}
	if len(header) != len(csvHeader) {
		return nil, coreerrors.NewCoreError(coreerrors.ErrorCategoryStorage, "journal", "read_csv",
			fmt.Sprintf("expected %d columns, got %d", len(csvHeader), len(header)))
	}

	var trades []types.TradeRecord
	line := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, coreerrors.WrapError(err, coreerrors.ErrorCategoryStorage, "journal", "read_csv")
		}
		line++

		t, err := parseTradeRow(row)
		if err != nil {
			return nil, coreerrors.WrapError(fmt.Errorf("line %d: %w", line, err),
				coreerrors.ErrorCategoryStorage, "journal", "read_csv")
		}
		trades = append(trades, t)
	}
	return trades, nil
}

func parseTradeRow(row []string) (types.TradeRecord, error) {
	var t types.TradeRecord
	var err error

	if t.EntryTime, err = time.Parse(time.RFC3339, row[0]); err != nil {
		return t, fmt.Errorf("entry time: %w", err)
	}
	if t.ExitTime, err = time.Parse(time.RFC3339, row[1]); err != nil {
		return t, fmt.Errorf("exit time: %w", err)
	}
	t.Symbol = row[2]
	t.Direction = types.TradeDirection(row[3])
	if t.Direction != types.DirectionLong && t.Direction != types.DirectionShort {
		return t, fmt.Errorf("unknown direction %q", row[3])
	}

	floats := []struct {
		name string
		dst  *float64
		col  int
	}{
		{"volume", &t.Volume, 4},
		{"entry price", &t.EntryPrice, 5},
		{"exit price", &t.ExitPrice, 6},
		{"stop loss", &t.StopLoss, 7},
		{"take profit", &t.TakeProfit, 8},
		{"net profit", &t.NetProfit, 9},
		{"gross profit", &t.GrossProfit, 10},
		{"commission", &t.Commission, 11},
		{"swap", &t.Swap, 12},
		{"pips", &t.Pips, 13},
		{"duration hours", &t.DurationHours, 14},
	}
	for _, f := range floats {
		if *f.dst, err = strconv.ParseFloat(row[f.col], 64); err != nil {
			return t, fmt.Errorf("%s: %w", f.name, err)
		}
	}

	t.Strategy = row[15]
	t.SignalDetails = row[16]
	t.ExitReason = row[17]

	if notional := t.EntryPrice * t.Volume; notional > 0 {
		t.ReturnPct = t.NetProfit / notional * 100
	}
	return t, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
