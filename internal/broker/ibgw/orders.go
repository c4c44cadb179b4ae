package ibgw

import (
	"context"
	"fmt"
	"net/http"

	"tradeterm/internal/broker"
	"tradeterm/internal/models"
)

func (c *Client) GetOpenOrders(ctx context.Context) ([]models.OpenOrder, error) {
	var resp []struct {
		OrderID   int64   `json:"orderId"`
		Symbol    string  `json:"symbol"`
		Side      string  `json:"side"`
		OrderType string  `json:"orderType"`
		TotalQty  float64 `json:"totalQuantity"`
		LmtPrice  float64 `json:"lmtPrice"`
		AuxPrice  float64 `json:"auxPrice"`
		Status    string  `json:"status"`
		Filled    float64 `json:"filled"`
		Remaining float64 `json:"remaining"`
	}

	if err := c.doRequest(ctx, http.MethodGet, "/v1/orders", nil, nil, &resp); err != nil {
		return nil, err
	}

	var orders []models.OpenOrder
	for _, item := range resp {
		orders = append(orders, models.OpenOrder{
			OrderID:      item.OrderID,
			Symbol:       item.Symbol,
			Side:         models.OrderSide(item.Side),
			Type:         models.OrderType(item.OrderType),
			Quantity:     item.TotalQty,
			LimitPrice:   item.LmtPrice,
			TriggerPrice: item.AuxPrice,
			Status:       models.OrderStatus(item.Status),
			Filled:       item.Filled,
			Remaining:    item.Remaining,
		})
	}
	return orders, nil
}

func (c *Client) PlaceOrder(ctx context.Context, ticket broker.OrderTicket, transmit bool) (int64, error) {
	body := map[string]any{
		"account":       c.account,
		"symbol":        ticket.Symbol,
		"side":          ticket.Side,
		"orderType":     ticket.Type,
		"totalQuantity": ticket.Quantity,
		"transmit":      transmit,
	}
	if ticket.OrderID != 0 {
		body["orderId"] = ticket.OrderID
	}
	if ticket.ClientRef != "" {
		body["clientRef"] = ticket.ClientRef
	}
	if ticket.LimitPrice != 0 {
		body["lmtPrice"] = ticket.LimitPrice
	}
	if ticket.TriggerPrice != 0 {
		body["auxPrice"] = ticket.TriggerPrice
	}
	if ticket.ParentID != 0 {
		body["parentId"] = ticket.ParentID
	}
	if ticket.OutsideRTH {
		body["outsideRth"] = true
	}

	var resp struct {
		OrderID int64 `json:"orderId"`
	}

	if err := c.doRequest(ctx, http.MethodPost, "/v1/orders", nil, body, &resp); err != nil {
		return 0, err
	}
	if resp.OrderID == 0 {
		return 0, fmt.Errorf("gateway accepted order but returned no order id")
	}

	c.logEntry().WithField("order_id", resp.OrderID).WithField("symbol", ticket.Symbol).Debug("Order ticket submitted.")
	return resp.OrderID, nil
}

func (c *Client) CancelOrder(ctx context.Context, orderID int64) error {
	path := fmt.Sprintf("/v1/orders/%d", orderID)
	return c.doRequest(ctx, http.MethodDelete, path, nil, nil, nil)
}
