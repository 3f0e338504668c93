package market

import (
	"sort"
	"time"
)

// SignalType is the intent carried by a Signal.
type SignalType string

const (
	Buy  SignalType = "BUY"
	Sell SignalType = "SELL"
	Hold SignalType = "HOLD"
)

// Signal is a single trade intent emitted by a signal generator.
type Signal struct {
	Time       time.Time
	Symbol     string
	Type       SignalType
	Price      float64
	Quantity   float64 // 0 means the engine sizes the order from risk-per-trade
	Confidence float64 // optional, [0,1]
}

// Source generates a sequence of trade intents from a bar series.
// Implementations may return signals in any order and may reference
// timestamps that do not exist in the series; the engine sorts and
// skips accordingly.
type Source func(bars []Bar) ([]Signal, error)

// SortSignals orders signals ascending by timestamp. The sort is stable, so
// signals sharing a timestamp keep their original relative order.
func SortSignals(sigs []Signal) {
	sort.SliceStable(sigs, func(i, j int) bool {
		return sigs[i].Time.Before(sigs[j].Time)
	})
}
