package models

import "time"

type OrderSide string
type OrderType string
type OrderStatus string

const (
	OrderSideBuy  OrderSide = "BUY"
	OrderSideSell OrderSide = "SELL"

	OrderTypeLimit  OrderType = "LMT"
	OrderTypeStop   OrderType = "STP"
	OrderTypeMarket OrderType = "MKT"

	OrderStatusSubmitted    OrderStatus = "Submitted"
	OrderStatusPreSubmitted OrderStatus = "PreSubmitted"
	OrderStatusFilled       OrderStatus = "Filled"
	OrderStatusCancelled    OrderStatus = "Cancelled"
)

// Order is a validated, ready-to-transmit order built by the engine. The side is
// derived from the entry/stop relation, never supplied by the caller.
type Order struct {
	Symbol     string    `json:"symbol"`
	Side       OrderSide `json:"side"`
	Quantity   int64     `json:"quantity"`
	EntryPrice float64   `json:"entry_price,omitempty"`
	StopPrice  float64   `json:"stop_price,omitempty"`
}

// Position is a read-only snapshot owned by the broker gateway.
type Position struct {
	Account  string  `json:"account"`
	Symbol   string  `json:"symbol"`
	SecType  string  `json:"sectype"`
	Currency string  `json:"currency"`
	Quantity float64 `json:"position"`
	AvgCost  float64 `json:"avgcost"`
}

// OpenOrder is a live order as reported by the gateway. TriggerPrice carries the
// stop trigger for STP orders, LimitPrice the limit for LMT orders.
type OpenOrder struct {
	OrderID      int64       `json:"orderid"`
	Symbol       string      `json:"symbol"`
	Side         OrderSide   `json:"action"`
	Type         OrderType   `json:"ordertype"`
	Quantity     float64     `json:"totalqty"`
	LimitPrice   float64     `json:"lmtprice"`
	TriggerPrice float64     `json:"auxprice"`
	Status       OrderStatus `json:"status"`
	Filled       float64     `json:"filled"`
	Remaining    float64     `json:"remaining"`
}

// Execution is a completed fill. Time is normalized to the terminal's canonical
// timezone before it is compared against anything.
type Execution struct {
	TradeID    int64     `json:"tradeid"`
	Symbol     string    `json:"symbol"`
	SecType    string    `json:"sectype"`
	Side       OrderSide `json:"action"`
	Quantity   float64   `json:"quantity"`
	Price      float64   `json:"price"`
	Time       time.Time `json:"time"`
	Exchange   string    `json:"exchange"`
	Commission float64   `json:"commission"`
}

type Quote struct {
	Symbol string  `json:"symbol"`
	Bid    float64 `json:"bid"`
	Ask    float64 `json:"ask"`
}

type AccountSummary struct {
	Account        string  `json:"account"`
	NetLiquidation float64 `json:"net_liquidation"`
	TotalCash      float64 `json:"total_cash"`
	BuyingPower    float64 `json:"buying_power"`
}

// RiskRow is one line of the open-risk table. Recomputed on every request,
// never stored. Allocation is nil when net liquidation is unknown or zero.
type RiskRow struct {
	Symbol     string   `json:"symbol"`
	Allocation *float64 `json:"allocation"`
	Size       float64  `json:"size"`
	AvgCost    float64  `json:"avgcost"`
	StopPrice  float64  `json:"stop_price"`
	Position   float64  `json:"position"`
	OpenRisk   float64  `json:"open_risk"`
}

// Signal is an inbound trading-signal event, typically raised by an alarm.
type Signal struct {
	Symbol    string    `json:"symbol"`
	AlarmKind string    `json:"alarm_kind"`
	Timestamp time.Time `json:"timestamp"`
}

// ExitFlag mirrors one row of the exit_requests table. requested=true is a
// standing permission to flatten, not an instruction.
type ExitFlag struct {
	Symbol    string    `json:"symbol"`
	Requested bool      `json:"requested"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AutoOrder is a database-resident conditional order awaiting activation.
type AutoOrder struct {
	ID     int64   `json:"id"`
	Symbol string  `json:"symbol"`
	Stop   float64 `json:"stop"`
	Status string  `json:"status"`
}

// ManualOrder is an open order from the manual (Alpaca) feed.
type ManualOrder struct {
	ID         string  `json:"id"`
	Symbol     string  `json:"symbol"`
	StopPrice  float64 `json:"stop_price"`
	LimitPrice float64 `json:"limit_price"`
}

// PendingOrder is one row of the pending-orders sweep: a normalized manual or
// auto order enriched with the latest ask and the size it would trade at.
type PendingOrder struct {
	ID           string  `json:"id"`
	Symbol       string  `json:"symbol"`
	StopPrice    float64 `json:"stop_price"`
	LatestPrice  float64 `json:"latest_price"`
	PositionSize int64   `json:"position_size"`
	Source       string  `json:"source"`
}
