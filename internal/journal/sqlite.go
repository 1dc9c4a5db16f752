package journal

import (
	"context"
	"database/sql"

	_ "github.com/mattn/go-sqlite3"

	coreerrors "github.com/phamtrung93/fx-sentinel/internal/errors"
	"github.com/phamtrung93/fx-sentinel/pkg/types"
)

// SQLiteJournal stores closed trades in a local SQLite database. The table is
// insert-only; there are no update or delete paths.
type SQLiteJournal struct {
	db *sql.DB
}

// NewSQLite opens (or creates) the database at path and applies the schema.
func NewSQLite(path string) (*SQLiteJournal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, coreerrors.WrapError(err, coreerrors.ErrorCategoryStorage, "journal", "open")
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, coreerrors.WrapError(err, coreerrors.ErrorCategoryStorage, "journal", "migrate")
	}

	return &SQLiteJournal{db: db}, nil
}

func (j *SQLiteJournal) AppendTrade(ctx context.Context, t types.TradeRecord) error {
	_, err := j.db.ExecContext(ctx, `
		INSERT INTO trades
		(entry_time, exit_time, symbol, direction, volume, entry_price, exit_price,
		 stop_loss, take_profit, net_profit, gross_profit, commission, swap, pips,
		 return_pct, duration_hours, strategy, signal_details, exit_reason)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.EntryTime, t.ExitTime, t.Symbol, string(t.Direction), t.Volume,
		t.EntryPrice, t.ExitPrice, t.StopLoss, t.TakeProfit, t.NetProfit,
		t.GrossProfit, t.Commission, t.Swap, t.Pips, t.ReturnPct,
		t.DurationHours, t.Strategy, t.SignalDetails, t.ExitReason,
	)
	if err != nil {
		return coreerrors.WrapError(err, coreerrors.ErrorCategoryStorage, "journal", "append_trade")
	}
	return nil
}

// ListTrades returns every stored trade ordered by exit time, oldest first.
func (j *SQLiteJournal) ListTrades(ctx context.Context) ([]types.TradeRecord, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT entry_time, exit_time, symbol, direction, volume, entry_price, exit_price,
		       stop_loss, take_profit, net_profit, gross_profit, commission, swap, pips,
		       return_pct, duration_hours, strategy, signal_details, exit_reason
		FROM trades ORDER BY exit_time ASC, id ASC`)
	if err != nil {
		return nil, coreerrors.WrapError(err, coreerrors.ErrorCategoryStorage, "journal", "list_trades")
	}
	defer rows.Close()

	var trades []types.TradeRecord
	for rows.Next() {
		var t types.TradeRecord
		var direction string
		if err := rows.Scan(
			&t.EntryTime, &t.ExitTime, &t.Symbol, &direction, &t.Volume,
			&t.EntryPrice, &t.ExitPrice, &t.StopLoss, &t.TakeProfit, &t.NetProfit,
			&t.GrossProfit, &t.Commission, &t.Swap, &t.Pips, &t.ReturnPct,
			&t.DurationHours, &t.Strategy, &t.SignalDetails, &t.ExitReason,
		); err != nil {
			return nil, coreerrors.WrapError(err, coreerrors.ErrorCategoryStorage, "journal", "scan_trade")
		}
		t.Direction = types.TradeDirection(direction)
		trades = append(trades, t)
	}
	if err := rows.Err(); err != nil {
		return nil, coreerrors.WrapError(err, coreerrors.ErrorCategoryStorage, "journal", "list_trades")
	}
	return trades, nil
}

func (j *SQLiteJournal) CountTrades(ctx context.Context) (int, error) {
	var n int
	if err := j.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM trades`).Scan(&n); err != nil {
		return 0, coreerrors.WrapError(err, coreerrors.ErrorCategoryStorage, "journal", "count_trades")
	}
	return n, nil
}

func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}
