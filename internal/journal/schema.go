package journal

const Schema = `
CREATE TABLE IF NOT EXISTS trades (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	entry_time DATETIME NOT NULL,
	exit_time DATETIME NOT NULL,
	symbol TEXT NOT NULL,
	direction TEXT NOT NULL,
	volume REAL NOT NULL,
	entry_price REAL NOT NULL,
	exit_price REAL NOT NULL,
	stop_loss REAL NOT NULL,
	take_profit REAL NOT NULL,
	net_profit REAL NOT NULL,
	gross_profit REAL NOT NULL,
	commission REAL NOT NULL,
	swap REAL NOT NULL,
	pips REAL NOT NULL,
	return_pct REAL NOT NULL,
	duration_hours REAL NOT NULL,
	strategy TEXT NOT NULL,
	signal_details TEXT NOT NULL,
	exit_reason TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_trades_exit_time ON trades(exit_time);
CREATE INDEX IF NOT EXISTS idx_trades_strategy ON trades(strategy);
`
