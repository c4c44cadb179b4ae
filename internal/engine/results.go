package engine

import "tradeterm/internal/models"

type EntryResult struct {
	Allowed       bool   `json:"allowed"`
	Message       string `json:"message"`
	Symbol        string `json:"symbol"`
	ParentOrderID *int64 `json:"parent_order_id,omitempty"`
	StopOrderID   *int64 `json:"stop_order_id,omitempty"`
}

type AddResult struct {
	Allowed              bool          `json:"allowed"`
	Message              string        `json:"message"`
	Symbol               string        `json:"symbol"`
	NewOrder             *models.Order `json:"new_order,omitempty"`
	PlacedOrderID        *int64        `json:"placed_order_id,omitempty"`
	ModifiedStopQuantity *int64        `json:"modified_stop_quantity,omitempty"`
}

type ExitResult struct {
	Symbol  string `json:"symbol"`
	Message string `json:"message"`
	OrderID *int64 `json:"order_id,omitempty"`
}

type BreakevenStatus string

const (
	BreakevenSuccess  BreakevenStatus = "success"
	BreakevenNotFound BreakevenStatus = "not_found"
	BreakevenError    BreakevenStatus = "error"
)

type BreakevenResult struct {
	Status       BreakevenStatus `json:"status"`
	Message      string          `json:"message"`
	Symbol       string          `json:"symbol"`
	OrderID      int64           `json:"order_id,omitempty"`
	NewStopPrice float64         `json:"new_stop_price,omitempty"`
}
