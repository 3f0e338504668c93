package market

import (
	"fmt"
	"os"
	"time"

	"github.com/gocarina/gocsv"
)

// barRow is the CSV layout for a bar file: a header row followed by
// one row per bar, timestamps in unix milliseconds.
type barRow struct {
	Time   int64   `csv:"time"`
	Open   float64 `csv:"open"`
	High   float64 `csv:"high"`
	Low    float64 `csv:"low"`
	Close  float64 `csv:"close"`
	Volume float64 `csv:"volume"`
}

// LoadBarsCSV reads an OHLCV bar series from a CSV file. Timestamps must be
// strictly increasing; the loader is the upstream validation point, the
// engine itself assumes ordered input.
func LoadBarsCSV(path string) ([]Bar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open bars file: %w", err)
	}
	defer f.Close()

	var rows []*barRow
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("parse bars %s: %w", path, err)
	}

	bars := make([]Bar, 0, len(rows))
	var prev int64
	for i, r := range rows {
		if i > 0 && r.Time <= prev {
			return nil, fmt.Errorf("bars out of order at row %d: %d <= %d", i+1, r.Time, prev)
		}
		prev = r.Time

		bars = append(bars, Bar{
			Time:   time.UnixMilli(r.Time).UTC(),
			Open:   r.Open,
			High:   r.High,
			Low:    r.Low,
			Close:  r.Close,
			Volume: r.Volume,
		})
	}
	return bars, nil
}
