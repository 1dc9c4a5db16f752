package validation

import (
	"time"

	"github.com/phamtrung93/fx-sentinel/pkg/types"
)

// SplitByRatio splits a chronologically ordered trade log into in-sample and
// out-of-sample parts by count. A ratio outside (0,1), or one that would leave
// either part empty, returns everything in sample.
func SplitByRatio(trades []types.TradeRecord, ratio float64) ([]types.TradeRecord, []types.TradeRecord) {
	if ratio <= 0 || ratio >= 1 {
		return trades, nil
	}

	n := int(float64(len(trades)) * ratio)
	if n < 1 || n >= len(trades) {
		return trades, nil
	}

	return trades[:n], trades[n:]
}

// SplitByDate splits a trade log at a calendar boundary: trades that exited
// strictly before cutoff are in sample, the rest out of sample.
func SplitByDate(trades []types.TradeRecord, cutoff time.Time) ([]types.TradeRecord, []types.TradeRecord) {
	var inSample, outOfSample []types.TradeRecord
	for _, t := range trades {
		if t.ExitTime.Before(cutoff) {
			inSample = append(inSample, t)
		} else {
			outOfSample = append(outOfSample, t)
		}
	}
	return inSample, outOfSample
}
