package sim

import "time"

// Position is the open holding for one symbol. The ledger keeps at most one
// Position per symbol and deletes the entry when quantity reaches zero, so
// the position count always reflects the max-positions constraint.
type Position struct {
	Symbol   string
	Quantity float64
	AvgCost  float64 // volume-weighted

	// Mark-to-market state, refreshed by Ledger.MarkToMarket.
	MarkPrice     float64
	UnrealizedPnL float64
	UnrealizedPct float64 // percent, not fraction
	MarketValue   float64

	OpenedAt  time.Time
	UpdatedAt time.Time
}
