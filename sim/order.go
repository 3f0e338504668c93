package sim

import "time"

// Side is the direction of an order or trade.
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// OrderStatus tracks the order lifecycle. Orders are created Pending and
// move to Filled synchronously within the same step; intents that fail the
// feasibility checks never become orders at all.
type OrderStatus string

const (
	OrderPending  OrderStatus = "PENDING"
	OrderFilled   OrderStatus = "FILLED"
	OrderRejected OrderStatus = "REJECTED"
)

type Order struct {
	ID     string
	Time   time.Time
	Symbol string
	Side   Side
	Status OrderStatus

	Quantity float64 // requested
	Price    float64 // requested

	FilledQuantity float64
	FillPrice      float64 // average fill price after slippage

	Commission float64
	Slippage   float64 // cost of slippage on the fill, in account currency
}
