package sim

import "time"

// Trade is one executed fill. The trade log is append-only; records are
// never mutated after creation.
type Trade struct {
	ID         string
	Time       time.Time
	Symbol     string
	Side       Side
	Quantity   float64
	Price      float64 // execution price after slippage
	Value      float64 // Quantity * Price
	Commission float64

	// RealizedPnL is set only on closing/reducing sells.
	RealizedPnL float64
}
