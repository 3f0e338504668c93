package journal

import "time"

// RunRecord mirrors the backtest_runs table: one row per completed run,
// keyed by a UUID assigned when the journal is opened.
type RunRecord struct {
	RunID    string
	Created  time.Time
	Symbol   string
	Strategy string

	Start time.Time
	End   time.Time

	InitialCapital float64
	FinalCapital   float64
	TotalReturn    float64
	MaxDrawdown    float64
	Sharpe         float64
	Trades         int
	WinRate        float64
}
