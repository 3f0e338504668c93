package strategy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/backtester/market"
)

func barsFromCloses(closes ...float64) []market.Bar {
	bars := make([]market.Bar, len(closes))
	for i, c := range closes {
		bars[i] = market.Bar{
			Time: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(i) * 24 * time.Hour),
			Open: c, High: c, Low: c, Close: c,
		}
	}
	return bars
}

func TestSMACrossValidation(t *testing.T) {
	t.Parallel()

	_, err := SMACross("AAPL", 0, 10)
	require.Error(t, err)

	_, err = SMACross("AAPL", 10, 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be below")
}

func TestSMACrossSignals(t *testing.T) {
	t.Parallel()

	// Downtrend then a sharp recovery: fast(2) crosses above slow(4),
	// then a collapse crosses it back down.
	src, err := SMACross("AAPL", 2, 4)
	require.NoError(t, err)

	bars := barsFromCloses(100, 98, 96, 94, 92, 104, 110, 80, 60)
	signals, err := src(bars)
	require.NoError(t, err)
	require.NotEmpty(t, signals)

	var buys, sells int
	for _, s := range signals {
		switch s.Type {
		case market.Buy:
			buys++
		case market.Sell:
			sells++
		}
		assert.Equal(t, "AAPL", s.Symbol)
	}
	assert.Equal(t, 1, buys)
	assert.Equal(t, 1, sells)

	// Signals only start after the slow window is primed.
	assert.False(t, signals[0].Time.Before(bars[4].Time))
}

func TestBuyAndHold(t *testing.T) {
	t.Parallel()

	src := BuyAndHold("AAPL")
	bars := barsFromCloses(100, 101, 102)

	signals, err := src(bars)
	require.NoError(t, err)
	require.Len(t, signals, 3)

	assert.Equal(t, market.Buy, signals[0].Type)
	assert.Equal(t, market.Hold, signals[1].Type)
	assert.Equal(t, market.Hold, signals[2].Type)
}

func TestBuyAndHoldEmpty(t *testing.T) {
	t.Parallel()

	signals, err := BuyAndHold("AAPL")(nil)
	require.NoError(t, err)
	assert.Empty(t, signals)
}

func TestByName(t *testing.T) {
	t.Parallel()

	src, err := ByName("SMA-Cross", "AAPL", 2, 4)
	require.NoError(t, err)
	assert.NotNil(t, src)

	src, err = ByName("buy-and-hold", "AAPL", 0, 0)
	require.NoError(t, err)
	assert.NotNil(t, src)

	_, err = ByName("martingale", "AAPL", 0, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown strategy")
}
