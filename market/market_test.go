package market

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ts(min int) time.Time {
	return time.Date(2024, 1, 1, 0, min, 0, 0, time.UTC)
}

func TestSortSignalsStable(t *testing.T) {
	t.Parallel()

	sigs := []Signal{
		{Time: ts(2), Symbol: "AAPL", Type: Sell},
		{Time: ts(1), Symbol: "AAPL", Type: Buy},
		{Time: ts(2), Symbol: "MSFT", Type: Buy},
		{Time: ts(1), Symbol: "MSFT", Type: Hold},
	}

	SortSignals(sigs)

	require.Len(t, sigs, 4)
	assert.Equal(t, "AAPL", sigs[0].Symbol)
	assert.Equal(t, "MSFT", sigs[1].Symbol)
	// Ties keep original relative order.
	assert.Equal(t, "AAPL", sigs[2].Symbol)
	assert.Equal(t, "MSFT", sigs[3].Symbol)
}

func TestIndex(t *testing.T) {
	t.Parallel()

	bars := []Bar{
		{Time: ts(0), Close: 100},
		{Time: ts(1), Close: 101},
	}

	idx := Index(bars)
	require.Len(t, idx, 2)

	b, ok := idx[ts(1).UnixMilli()]
	require.True(t, ok)
	assert.Equal(t, 101.0, b.Close)

	_, ok = idx[ts(2).UnixMilli()]
	assert.False(t, ok)
}

func TestSpanEmpty(t *testing.T) {
	t.Parallel()

	start, end := Span(nil)
	assert.True(t, start.IsZero())
	assert.True(t, end.IsZero())
}

func TestLoadBarsCSV(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bars.csv")
	data := "time,open,high,low,close,volume\n" +
		"1704067200000,100,105,99,104,1000\n" +
		"1704070800000,104,106,103,105,1200\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	bars, err := LoadBarsCSV(path)
	require.NoError(t, err)
	require.Len(t, bars, 2)

	assert.Equal(t, 104.0, bars[0].Close)
	assert.Equal(t, int64(1704070800000), bars[1].Time.UnixMilli())
	assert.True(t, bars[0].Time.Before(bars[1].Time))
}

func TestLoadBarsCSVOutOfOrder(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bars.csv")
	data := "time,open,high,low,close,volume\n" +
		"1704070800000,104,106,103,105,1200\n" +
		"1704067200000,100,105,99,104,1000\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	_, err := LoadBarsCSV(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of order")
}
