package sim

import (
	"math"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/rustyeddy/backtester/market"
	"github.com/rustyeddy/backtester/pkg/id"
)

// Executor converts trade intents into synchronous fills against a Ledger.
// Infeasible intents (no cash, position limit reached, nothing to sell) are
// dropped silently: they are expected, frequent conditions in strategy
// simulation, not faults.
type Executor struct {
	cfg    Config
	ledger *Ledger
	orders []Order
}

func NewExecutor(cfg Config, ledger *Ledger) *Executor {
	return &Executor{cfg: cfg, ledger: ledger}
}

// Orders returns every order created so far, in creation order.
func (x *Executor) Orders() []Order { return x.orders }

// Buy sizes and fills a buy intent. When the signal carries no explicit
// quantity, size is floor(cash * riskPerTrade / price). Returns the fill
// trade and true, or a zero Trade and false when the intent is rejected.
func (x *Executor) Buy(sig market.Signal) (Trade, bool) {
	qty := sig.Quantity
	if qty <= 0 {
		qty = math.Floor((x.ledger.Cash() * x.cfg.RiskPerTrade) / sig.Price)
	}
	if qty <= 0 {
		return Trade{}, false
	}
	if x.ledger.Cash() < qty*sig.Price {
		log.WithFields(log.Fields{
			"symbol": sig.Symbol,
			"qty":    qty,
			"cash":   x.ledger.Cash(),
		}).Debug("buy rejected: insufficient cash")
		return Trade{}, false
	}
	if x.ledger.OpenPositions() >= x.cfg.MaxPositions {
		log.WithField("symbol", sig.Symbol).Debug("buy rejected: max positions reached")
		return Trade{}, false
	}

	exec := sig.Price * (1 + x.cfg.Slippage)
	return x.fill(sig.Symbol, SideBuy, qty, sig.Price, exec, sig.Time), true
}

// Sell fills a sell intent against the open position for the symbol.
// Sells min(requested-or-full, held); rejected when nothing is held.
func (x *Executor) Sell(sig market.Signal) (Trade, bool) {
	pos, ok := x.ledger.Position(sig.Symbol)
	if !ok {
		log.WithField("symbol", sig.Symbol).Debug("sell rejected: no open position")
		return Trade{}, false
	}

	qty := sig.Quantity
	if qty <= 0 || qty > pos.Quantity {
		qty = pos.Quantity
	}

	exec := sig.Price * (1 - x.cfg.Slippage)
	return x.fill(sig.Symbol, SideSell, qty, sig.Price, exec, sig.Time), true
}

// fill executes atomically: order creation, cash movement, ledger update
// and trade record all happen within this one step.
func (x *Executor) fill(symbol string, side Side, qty, requested, exec float64, ts time.Time) Trade {
	value := qty * exec
	commission := value * x.cfg.Commission

	order := Order{
		ID:       id.New(),
		Time:     ts,
		Symbol:   symbol,
		Side:     side,
		Status:   OrderPending,
		Quantity: qty,
		Price:    requested,
	}

	// The fill is immediate: no latency, no partial fills across bars.
	order.Status = OrderFilled
	order.FilledQuantity = qty
	order.FillPrice = exec
	order.Commission = commission
	order.Slippage = math.Abs(exec-requested) * qty
	x.orders = append(x.orders, order)

	trade := Trade{
		ID:         order.ID,
		Time:       ts,
		Symbol:     symbol,
		Side:       side,
		Quantity:   qty,
		Price:      exec,
		Value:      value,
		Commission: commission,
	}

	switch side {
	case SideBuy:
		x.ledger.Debit(value + commission)
		x.ledger.OpenOrAdd(symbol, qty, exec, ts)
	case SideSell:
		trade.RealizedPnL = x.ledger.ReduceOrClose(symbol, qty, exec, ts)
		x.ledger.Credit(value - commission)
	}

	x.ledger.AppendTrade(trade)

	log.WithFields(log.Fields{
		"symbol":     symbol,
		"side":       side,
		"qty":        qty,
		"price":      exec,
		"commission": commission,
	}).Debug("order filled")

	return trade
}
