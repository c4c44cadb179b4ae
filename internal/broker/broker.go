package broker

import (
	"context"

	"tradeterm/internal/models"
)

// OrderTicket is the wire-level order handed to the gateway. A zero OrderID asks
// the gateway for a fresh id; re-submitting a ticket with an existing OrderID
// updates that order in place instead of creating a new one.
type OrderTicket struct {
	OrderID      int64
	ClientRef    string
	Symbol       string
	Side         models.OrderSide
	Type         models.OrderType
	Quantity     float64
	LimitPrice   float64
	TriggerPrice float64
	ParentID     int64
	OutsideRTH   bool
}

// Gateway is the broker connectivity contract. Every call returns a live
// snapshot; nothing is cached on this side and no streaming is assumed.
type Gateway interface {
	GetPositions(ctx context.Context) ([]models.Position, error)
	GetOpenOrders(ctx context.Context) ([]models.OpenOrder, error)
	GetAccountSummary(ctx context.Context) (models.AccountSummary, error)
	GetTrades(ctx context.Context) ([]models.Execution, error)
	GetQuote(ctx context.Context, symbol string) (models.Quote, error)
	PlaceOrder(ctx context.Context, ticket OrderTicket, transmit bool) (int64, error)
	CancelOrder(ctx context.Context, orderID int64) error
}
