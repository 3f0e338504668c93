package sim

import (
	"sort"
	"time"
)

// Ledger owns the authoritative mutable state of one backtest run: cash,
// the symbol-keyed position map and the trade log. A Ledger must never be
// shared across concurrent runs; each run constructs its own.
type Ledger struct {
	cash      float64
	positions map[string]*Position
	trades    []Trade
}

func NewLedger(cash float64) *Ledger {
	return &Ledger{
		cash:      cash,
		positions: make(map[string]*Position),
	}
}

func (l *Ledger) Cash() float64 { return l.cash }

// Credit adds to cash; Debit removes from it. The executor is the only
// caller, keeping every cash mutation tied to a fill.
func (l *Ledger) Credit(amount float64) { l.cash += amount }
func (l *Ledger) Debit(amount float64)  { l.cash -= amount }

func (l *Ledger) OpenPositions() int { return len(l.positions) }

// Position returns a copy of the open position for symbol, if any.
func (l *Ledger) Position(symbol string) (Position, bool) {
	p, ok := l.positions[symbol]
	if !ok {
		return Position{}, false
	}
	return *p, true
}

// Positions returns copies of all open positions ordered by symbol. The
// deterministic order matters: forced risk exits iterate this slice, and
// identical runs must produce identical trade logs.
func (l *Ledger) Positions() []Position {
	out := make([]Position, 0, len(l.positions))
	for _, p := range l.positions {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Symbol < out[j].Symbol })
	return out
}

// OpenOrAdd opens a new position or adds to an existing one, folding the
// fill into a volume-weighted average cost.
func (l *Ledger) OpenOrAdd(symbol string, qty, price float64, ts time.Time) {
	p, ok := l.positions[symbol]
	if !ok {
		l.positions[symbol] = &Position{
			Symbol:      symbol,
			Quantity:    qty,
			AvgCost:     price,
			MarkPrice:   price,
			MarketValue: qty * price,
			OpenedAt:    ts,
			UpdatedAt:   ts,
		}
		return
	}

	total := p.Quantity + qty
	p.AvgCost = (p.AvgCost*p.Quantity + price*qty) / total
	p.Quantity = total
	p.UpdatedAt = ts
	l.mark(p, price, ts)
}

// ReduceOrClose sells qty out of the position and returns the realized
// P&L against the average cost. A full close deletes the map entry so the
// position never lingers as a zero-quantity record.
func (l *Ledger) ReduceOrClose(symbol string, qty, price float64, ts time.Time) float64 {
	p, ok := l.positions[symbol]
	if !ok {
		return 0
	}
	if qty > p.Quantity {
		qty = p.Quantity
	}

	realized := (price - p.AvgCost) * qty

	p.Quantity -= qty
	if p.Quantity <= 0 {
		delete(l.positions, symbol)
		return realized
	}

	p.UpdatedAt = ts
	l.mark(p, price, ts)
	return realized
}

// MarkToMarket revalues the position for symbol at the given price without
// touching its cost basis. A no-op when no position is open.
func (l *Ledger) MarkToMarket(symbol string, price float64, ts time.Time) {
	if p, ok := l.positions[symbol]; ok {
		l.mark(p, price, ts)
	}
}

func (l *Ledger) mark(p *Position, price float64, ts time.Time) {
	p.MarkPrice = price
	p.MarketValue = p.Quantity * price
	p.UnrealizedPnL = (price - p.AvgCost) * p.Quantity
	if p.AvgCost > 0 {
		p.UnrealizedPct = (price - p.AvgCost) / p.AvgCost * 100
	} else {
		p.UnrealizedPct = 0
	}
	p.UpdatedAt = ts
}

// MarketValue sums the marked value of all open positions.
func (l *Ledger) MarketValue() float64 {
	var total float64
	for _, p := range l.positions {
		total += p.MarketValue
	}
	return total
}

// Equity is cash plus the mark-to-market value of open positions.
func (l *Ledger) Equity() float64 {
	return l.cash + l.MarketValue()
}

func (l *Ledger) AppendTrade(t Trade) { l.trades = append(l.trades, t) }

// Trades returns the append-only trade log in execution order.
func (l *Ledger) Trades() []Trade { return l.trades }
