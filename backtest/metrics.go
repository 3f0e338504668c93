package backtest

import (
	"math"
	"time"

	"github.com/montanaflynn/stats"

	"github.com/rustyeddy/backtester/sim"
)

// riskFreeRate is the annual risk-free rate used by Sharpe and Sortino.
const riskFreeRate = 0.03

// tradingDaysPerYear annualizes the volatility of per-bar returns.
const tradingDaysPerYear = 252

// Summary holds the derived performance statistics of one run. Every ratio
// resolves to 0 when its denominator is 0; degenerate runs (no trades, flat
// equity) must never produce NaN or Inf.
type Summary struct {
	TotalReturn      float64
	AnnualizedReturn float64

	MaxDrawdown     float64 // fraction of the peak
	MaxDrawdownDays float64 // peak-to-trough span in calendar days
	Volatility      float64 // annualized
	SharpeRatio     float64
	SortinoRatio    float64
	CalmarRatio     float64

	TotalTrades   int // closed (sell) trades
	WinningTrades int
	LosingTrades  int
	WinRate       float64
	AvgWin        float64
	AvgLoss       float64
	ProfitFactor  float64

	AvgHoldingDays float64
}

// Summarize computes the performance summary from a finished equity curve
// and trade log.
func Summarize(equity []EquityPoint, trades []sim.Trade, initialCapital float64, start, end time.Time) Summary {
	var s Summary

	final := initialCapital
	if n := len(equity); n > 0 {
		final = equity[n-1].Value
	}

	if initialCapital > 0 {
		s.TotalReturn = (final - initialCapital) / initialCapital
	}

	years := end.Sub(start).Hours() / (24 * 365)
	if years > 0 && initialCapital > 0 && final > 0 {
		s.AnnualizedReturn = math.Pow(final/initialCapital, 1/years) - 1
	}

	s.MaxDrawdown, s.MaxDrawdownDays = maxDrawdown(equity)

	returns := barReturns(equity)
	s.Volatility = stdDev(returns) * math.Sqrt(tradingDaysPerYear)
	if s.Volatility > 0 {
		s.SharpeRatio = (s.AnnualizedReturn - riskFreeRate) / s.Volatility
	}

	var downside []float64
	for _, r := range returns {
		if r < 0 {
			downside = append(downside, r)
		}
	}
	downsideVol := stdDev(downside) * math.Sqrt(tradingDaysPerYear)
	if downsideVol > 0 {
		s.SortinoRatio = (s.AnnualizedReturn - riskFreeRate) / downsideVol
	}

	if s.MaxDrawdown > 0 {
		s.CalmarRatio = s.AnnualizedReturn / s.MaxDrawdown
	}

	s.tradeStats(trades)
	s.AvgHoldingDays = avgHoldingDays(trades)

	return s
}

// barReturns is the simple percentage change between consecutive equity
// points.
func barReturns(equity []EquityPoint) []float64 {
	if len(equity) < 2 {
		return nil
	}

	out := make([]float64, 0, len(equity)-1)
	for i := 1; i < len(equity); i++ {
		prev := equity[i-1].Value
		if prev <= 0 {
			out = append(out, 0)
			continue
		}
		out = append(out, (equity[i].Value-prev)/prev)
	}
	return out
}

// maxDrawdown returns the deepest decline from a running peak as a fraction,
// plus the peak-to-trough span converted to calendar days using the series'
// average bar spacing.
func maxDrawdown(equity []EquityPoint) (maxDD, days float64) {
	if len(equity) < 2 {
		return 0, 0
	}

	peak := equity[0].Value
	peakIdx := 0
	var ddBars int

	for i, p := range equity {
		if p.Value > peak {
			peak = p.Value
			peakIdx = i
			continue
		}
		if peak <= 0 {
			continue
		}
		dd := (peak - p.Value) / peak
		if dd > maxDD {
			maxDD = dd
			ddBars = i - peakIdx
		}
	}

	if ddBars > 0 {
		span := equity[len(equity)-1].Time.Sub(equity[0].Time)
		avgSpacing := span / time.Duration(len(equity)-1)
		days = float64(ddBars) * avgSpacing.Hours() / 24
	}
	return maxDD, days
}

func (s *Summary) tradeStats(trades []sim.Trade) {
	var wins, losses []float64

	for _, t := range trades {
		if t.Side != sim.SideSell {
			continue
		}
		s.TotalTrades++
		switch {
		case t.RealizedPnL > 0:
			wins = append(wins, t.RealizedPnL)
		case t.RealizedPnL < 0:
			losses = append(losses, t.RealizedPnL)
		}
	}

	s.WinningTrades = len(wins)
	s.LosingTrades = len(losses)
	if s.TotalTrades > 0 {
		s.WinRate = float64(s.WinningTrades) / float64(s.TotalTrades)
	}

	s.AvgWin = mean(wins)
	s.AvgLoss = mean(losses)
	if s.AvgLoss != 0 {
		s.ProfitFactor = s.AvgWin / math.Abs(s.AvgLoss)
	}
}

// avgHoldingDays pairs each sell with the most recent unmatched buy of the
// same symbol and averages the elapsed calendar days over all round-trips.
func avgHoldingDays(trades []sim.Trade) float64 {
	open := make(map[string][]time.Time)
	var total float64
	var n int

	for _, t := range trades {
		switch t.Side {
		case sim.SideBuy:
			open[t.Symbol] = append(open[t.Symbol], t.Time)
		case sim.SideSell:
			pending := open[t.Symbol]
			if len(pending) == 0 {
				continue
			}
			entry := pending[len(pending)-1]
			open[t.Symbol] = pending[:len(pending)-1]

			total += t.Time.Sub(entry).Hours() / 24
			n++
		}
	}

	if n == 0 {
		return 0
	}
	return total / float64(n)
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	m, err := stats.Mean(xs)
	if err != nil {
		return 0
	}
	return m
}

func stdDev(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sd, err := stats.StandardDeviation(xs)
	if err != nil {
		return 0
	}
	return sd
}
