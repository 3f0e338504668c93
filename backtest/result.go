package backtest

import (
	"time"

	"github.com/rustyeddy/backtester/sim"
)

// EquityPoint is one sample of total portfolio value (cash plus marked
// positions), taken once per processed bar.
type EquityPoint struct {
	Time  time.Time
	Value float64
}

// DrawdownPoint is the decline from the running equity peak at one bar,
// as a negative percentage (0 at a new peak).
type DrawdownPoint struct {
	Time time.Time
	Pct  float64
}

// Result is the read-only aggregate of one completed run.
type Result struct {
	Start time.Time
	End   time.Time

	InitialCapital float64
	FinalCapital   float64

	Trades   []sim.Trade
	Orders   []sim.Order
	Equity   []EquityPoint
	Drawdown []DrawdownPoint

	// Positions is the open-position snapshot at the end of the run; empty
	// whenever the final liquidation ran, kept for debuggability.
	Positions []sim.Position

	Summary Summary
}

// DrawdownSeries derives the drawdown curve from an equity curve.
func DrawdownSeries(equity []EquityPoint) []DrawdownPoint {
	if len(equity) == 0 {
		return nil
	}

	out := make([]DrawdownPoint, len(equity))
	peak := equity[0].Value
	for i, p := range equity {
		if p.Value > peak {
			peak = p.Value
		}
		var dd float64
		if peak > 0 {
			dd = (peak - p.Value) / peak
		}
		out[i] = DrawdownPoint{Time: p.Time, Pct: -dd * 100}
	}
	return out
}
