package types

import "time"

// TradeDirection identifies which side a trade was opened on
type TradeDirection string

const (
	DirectionLong  TradeDirection = "long"
	DirectionShort TradeDirection = "short"
)

// TradeRecord is one closed trade from the strategy's trade log. Records are
// created at position exit and never mutated afterwards; the validation and
// simulation layers consume them as aggregate input only.
type TradeRecord struct {
	EntryTime     time.Time
	ExitTime      time.Time
	Symbol        string
	Direction     TradeDirection
	Volume        float64
	EntryPrice    float64
	ExitPrice     float64
	StopLoss      float64
	TakeProfit    float64
	NetProfit     float64
	GrossProfit   float64
	Commission    float64
	Swap          float64
	Pips          float64
	ReturnPct     float64
	DurationHours float64
	Strategy      string
	SignalDetails string
	ExitReason    string
}

// IsWin reports whether the trade closed with a positive net profit
func (t TradeRecord) IsWin() bool {
	return t.NetProfit > 0
}
