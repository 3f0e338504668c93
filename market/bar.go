package market

import "time"

// Bar represents one OHLCV candlestick for a single instrument.
type Bar struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Span returns the first and last timestamps of a bar series.
// Both are zero for an empty series.
func Span(bars []Bar) (start, end time.Time) {
	if len(bars) == 0 {
		return
	}
	return bars[0].Time, bars[len(bars)-1].Time
}

// Index maps bar timestamps (unix milliseconds) to their bars so signals
// can be matched against the series in O(1).
func Index(bars []Bar) map[int64]Bar {
	idx := make(map[int64]Bar, len(bars))
	for _, b := range bars {
		idx[b.Time.UnixMilli()] = b
	}
	return idx
}
