// Package journal is the append-only closed-trade log. Records are written
// once at position exit and read back in bulk by the offline analysis tools;
// nothing in this package mutates a record after it is stored.
package journal

import (
	"context"

	"github.com/phamtrung93/fx-sentinel/pkg/types"
)

type Journal interface {
	AppendTrade(ctx context.Context, t types.TradeRecord) error
	ListTrades(ctx context.Context) ([]types.TradeRecord, error)
	CountTrades(ctx context.Context) (int, error)
	Close() error
}
