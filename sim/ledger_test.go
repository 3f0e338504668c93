package sim

import (
	"math"
	"testing"
	"time"
)

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestLedgerOpenOrAddWeightedCost(t *testing.T) {
	l := NewLedger(100000)
	t0 := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	l.OpenOrAdd("AAPL", 100, 100, t0)
	l.OpenOrAdd("AAPL", 100, 110, t0.Add(time.Hour))

	p, ok := l.Position("AAPL")
	if !ok {
		t.Fatal("expected open position")
	}
	if p.Quantity != 200 {
		t.Fatalf("quantity mismatch: got %.2f", p.Quantity)
	}
	if !approxEqual(p.AvgCost, 105, 1e-9) {
		t.Fatalf("avg cost mismatch: got %.4f want 105", p.AvgCost)
	}
}

func TestLedgerReduceOrClose(t *testing.T) {
	l := NewLedger(0)
	t0 := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	l.OpenOrAdd("AAPL", 100, 100, t0)

	realized := l.ReduceOrClose("AAPL", 40, 110, t0.Add(time.Hour))
	if !approxEqual(realized, 400, 1e-9) {
		t.Fatalf("realized mismatch: got %.4f want 400", realized)
	}

	p, ok := l.Position("AAPL")
	if !ok {
		t.Fatal("expected remaining position")
	}
	if p.Quantity != 60 {
		t.Fatalf("remaining quantity: got %.2f want 60", p.Quantity)
	}
	if !approxEqual(p.AvgCost, 100, 1e-9) {
		t.Fatalf("cost basis must not change on reduce: got %.4f", p.AvgCost)
	}

	// Full close deletes the entry rather than leaving a zero record.
	l.ReduceOrClose("AAPL", 1000, 90, t0.Add(2*time.Hour))
	if _, ok := l.Position("AAPL"); ok {
		t.Fatal("position should be deleted on full close")
	}
	if l.OpenPositions() != 0 {
		t.Fatalf("open positions: got %d want 0", l.OpenPositions())
	}
}

func TestLedgerMarkToMarket(t *testing.T) {
	l := NewLedger(0)
	t0 := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	l.OpenOrAdd("AAPL", 100, 100, t0)
	l.MarkToMarket("AAPL", 94, t0.Add(time.Hour))

	p, _ := l.Position("AAPL")
	if !approxEqual(p.UnrealizedPnL, -600, 1e-9) {
		t.Fatalf("unrealized pnl: got %.4f want -600", p.UnrealizedPnL)
	}
	if !approxEqual(p.UnrealizedPct, -6, 1e-9) {
		t.Fatalf("unrealized pct: got %.4f want -6", p.UnrealizedPct)
	}
	if !approxEqual(p.MarketValue, 9400, 1e-9) {
		t.Fatalf("market value: got %.4f want 9400", p.MarketValue)
	}
	if !approxEqual(p.AvgCost, 100, 1e-9) {
		t.Fatal("mark-to-market must not touch cost basis")
	}

	// Marking an unknown symbol is a no-op.
	l.MarkToMarket("MSFT", 50, t0)
}

func TestLedgerPositionsSorted(t *testing.T) {
	l := NewLedger(0)
	t0 := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	l.OpenOrAdd("MSFT", 10, 50, t0)
	l.OpenOrAdd("AAPL", 10, 100, t0)
	l.OpenOrAdd("GOOG", 10, 150, t0)

	ps := l.Positions()
	if len(ps) != 3 {
		t.Fatalf("positions: got %d want 3", len(ps))
	}
	if ps[0].Symbol != "AAPL" || ps[1].Symbol != "GOOG" || ps[2].Symbol != "MSFT" {
		t.Fatalf("positions not sorted by symbol: %v %v %v", ps[0].Symbol, ps[1].Symbol, ps[2].Symbol)
	}
}

func TestLedgerEquity(t *testing.T) {
	l := NewLedger(5000)
	t0 := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	l.OpenOrAdd("AAPL", 10, 100, t0)
	l.MarkToMarket("AAPL", 120, t0)

	if !approxEqual(l.Equity(), 5000+1200, 1e-9) {
		t.Fatalf("equity: got %.4f want 6200", l.Equity())
	}
}
