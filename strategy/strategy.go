package strategy

import (
	"fmt"
	"strings"

	"github.com/rustyeddy/backtester/market"
)

// ByName builds a signal source from a strategy name and its parameters.
// Supported: sma-cross, buy-and-hold.
func ByName(name, symbol string, fast, slow int) (market.Source, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "sma-cross", "smacross":
		return SMACross(symbol, fast, slow)

	case "buy-and-hold", "buyhold":
		return BuyAndHold(symbol), nil

	default:
		return nil, fmt.Errorf("unknown strategy %q (supported: sma-cross, buy-and-hold)", name)
	}
}

// BuyAndHold buys on the first bar and then holds; the engine's final
// liquidation closes the position at the last close.
func BuyAndHold(symbol string) market.Source {
	return func(bars []market.Bar) ([]market.Signal, error) {
		if len(bars) == 0 {
			return nil, nil
		}

		signals := make([]market.Signal, 0, len(bars))
		signals = append(signals, market.Signal{
			Time:   bars[0].Time,
			Symbol: symbol,
			Type:   market.Buy,
			Price:  bars[0].Close,
		})
		for _, b := range bars[1:] {
			signals = append(signals, market.Signal{
				Time:   b.Time,
				Symbol: symbol,
				Type:   market.Hold,
				Price:  b.Close,
			})
		}
		return signals, nil
	}
}
