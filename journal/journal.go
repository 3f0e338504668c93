package journal

import "time"

// TradeRecord mirrors one executed fill.
type TradeRecord struct {
	RunID       string
	TradeID     string
	Symbol      string
	Side        string
	Quantity    float64
	Price       float64
	Value       float64
	Commission  float64
	RealizedPnL float64
	Time        time.Time
}

// EquitySnapshot is one sampled point of total portfolio value.
type EquitySnapshot struct {
	RunID       string
	Time        time.Time
	Cash        float64
	MarketValue float64
	Equity      float64
}

type Journal interface {
	RecordTrade(TradeRecord) error
	RecordEquity(EquitySnapshot) error
	Close() error
}
