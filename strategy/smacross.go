package strategy

import (
	"fmt"

	"github.com/montanaflynn/stats"

	"github.com/rustyeddy/backtester/market"
)

// SMACross returns a signal source that buys when the fast simple moving
// average of closes crosses above the slow one and sells on the cross back
// down. Bars before the slow window fills emit nothing.
func SMACross(symbol string, fast, slow int) (market.Source, error) {
	if fast <= 0 || slow <= 0 {
		return nil, fmt.Errorf("sma-cross: periods must be positive (fast=%d slow=%d)", fast, slow)
	}
	if fast >= slow {
		return nil, fmt.Errorf("sma-cross: fast period %d must be below slow period %d", fast, slow)
	}

	return func(bars []market.Bar) ([]market.Signal, error) {
		closes := make([]float64, len(bars))
		for i, b := range bars {
			closes[i] = b.Close
		}

		var signals []market.Signal
		var wasAbove, primed bool

		for i := slow; i <= len(bars); i++ {
			fastMA, err := stats.Mean(closes[i-fast : i])
			if err != nil {
				return nil, fmt.Errorf("sma-cross: fast mean: %w", err)
			}
			slowMA, err := stats.Mean(closes[i-slow : i])
			if err != nil {
				return nil, fmt.Errorf("sma-cross: slow mean: %w", err)
			}

			above := fastMA > slowMA
			bar := bars[i-1]

			if primed && above != wasAbove {
				typ := market.Sell
				if above {
					typ = market.Buy
				}
				signals = append(signals, market.Signal{
					Time:   bar.Time,
					Symbol: symbol,
					Type:   typ,
					Price:  bar.Close,
				})
			} else if primed {
				// A hold keeps the bar visible to the risk monitor.
				signals = append(signals, market.Signal{
					Time:   bar.Time,
					Symbol: symbol,
					Type:   market.Hold,
					Price:  bar.Close,
				})
			}

			wasAbove = above
			primed = true
		}

		return signals, nil
	}, nil
}
