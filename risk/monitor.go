package risk

import (
	"time"

	"github.com/rustyeddy/backtester/sim"
)

// Reason explains why the monitor forced an exit.
type Reason string

const (
	StopLoss   Reason = "StopLoss"
	TakeProfit Reason = "TakeProfit"
)

// Exit is a forced full-quantity market sell emitted by the Monitor.
type Exit struct {
	Symbol   string
	Quantity float64
	Price    float64
	Time     time.Time
	Reason   Reason
}

// Monitor evaluates stop-loss and take-profit thresholds against the
// mark-to-market state of open positions. Thresholds are fractions of the
// cost basis; either may be zero to disable that check.
type Monitor struct {
	stopLoss   float64
	takeProfit float64
}

func NewMonitor(stopLoss, takeProfit float64) *Monitor {
	return &Monitor{stopLoss: stopLoss, takeProfit: takeProfit}
}

// Enabled reports whether the monitor has anything to check.
func (m *Monitor) Enabled() bool {
	return m.stopLoss > 0 || m.takeProfit > 0
}

// Check returns a forced exit for every position breaching a threshold.
// Positions are revalued by the caller before the check; exits fill at the
// price the position was last marked to, which for the active symbol is the
// current bar's close. Both thresholds are evaluated every bar; they require
// opposite-sign P&L, so at most one fires per position.
func (m *Monitor) Check(positions []sim.Position, now time.Time) []Exit {
	var exits []Exit
	for _, p := range positions {
		var reason Reason
		switch {
		case m.stopLoss > 0 && p.UnrealizedPct <= -m.stopLoss*100:
			reason = StopLoss
		case m.takeProfit > 0 && p.UnrealizedPct >= m.takeProfit*100:
			reason = TakeProfit
		default:
			continue
		}

		exits = append(exits, Exit{
			Symbol:   p.Symbol,
			Quantity: p.Quantity,
			Price:    p.MarkPrice,
			Time:     now,
			Reason:   reason,
		})
	}
	return exits
}
