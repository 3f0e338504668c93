package sim

// Config is the immutable per-run simulation configuration. All rate and
// fraction fields are expressed as fractions in [0,1]; validation happens
// upstream (see the config package), the engine trusts its input.
type Config struct {
	InitialCapital float64
	MaxPositions   int
	Commission     float64 // per-fill rate on traded value
	Slippage       float64 // price impact rate, always against the trader
	RiskPerTrade   float64 // fraction of available cash committed per BUY
	StopLoss       float64 // fractional loss threshold, 0 disables
	TakeProfit     float64 // fractional gain threshold, 0 disables
}
