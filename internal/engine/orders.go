package engine

import (
	"context"
	"fmt"

	"tradeterm/internal/broker"
	"tradeterm/internal/metrics"
	"tradeterm/internal/models"
)

// PlaceBracket submits an entry order with transmission suppressed, settles,
// then submits the protective stop with transmission enabled so the gateway
// transmits both together. If the parent submission fails the stop is never
// sent. A stop failure after a transmitted parent is surfaced, not rolled back.
func (e *Engine) PlaceBracket(ctx context.Context, order models.Order) (int64, int64, error) {
	parent := broker.OrderTicket{
		ClientRef:  newClientRef("entry"),
		Symbol:     order.Symbol,
		Side:       order.Side,
		Type:       models.OrderTypeLimit,
		Quantity:   float64(order.Quantity),
		LimitPrice: order.EntryPrice,
	}

	parentID, err := e.gw.PlaceOrder(ctx, parent, false)
	if err != nil {
		return 0, 0, gatewayError("place_bracket", order.Symbol, err)
	}

	// The gateway must acknowledge the parent before the stop can reference it.
	if err := e.settle(ctx); err != nil {
		return parentID, 0, gatewayError("place_bracket", order.Symbol, err)
	}

	stop := broker.OrderTicket{
		ClientRef:    newClientRef("stop"),
		Symbol:       order.Symbol,
		Side:         oppositeSide(order.Side),
		Type:         models.OrderTypeStop,
		Quantity:     float64(order.Quantity),
		TriggerPrice: order.StopPrice,
		ParentID:     parentID,
		OutsideRTH:   true,
	}

	stopID, err := e.gw.PlaceOrder(ctx, stop, true)
	if err != nil {
		return parentID, 0, gatewayError("place_bracket", order.Symbol, err)
	}

	metrics.OrderPlaced(string(models.OrderTypeLimit), string(order.Side))
	metrics.OrderPlaced(string(models.OrderTypeStop), string(stop.Side))
	e.logEntry("place_bracket", order.Symbol).WithFields(map[string]interface{}{
		"parent_order_id": parentID,
		"stop_order_id":   stopID,
		"side":            order.Side,
		"quantity":        order.Quantity,
		"entry":           order.EntryPrice,
		"stop":            order.StopPrice,
	}).Info("Bracket orders submitted.")

	return parentID, stopID, nil
}

// PlaceLimit submits a standalone limit order at the order's entry price.
func (e *Engine) PlaceLimit(ctx context.Context, order models.Order) (int64, error) {
	ticket := broker.OrderTicket{
		ClientRef:  newClientRef("limit"),
		Symbol:     order.Symbol,
		Side:       order.Side,
		Type:       models.OrderTypeLimit,
		Quantity:   float64(order.Quantity),
		LimitPrice: order.EntryPrice,
	}

	orderID, err := e.gw.PlaceOrder(ctx, ticket, true)
	if err != nil {
		return 0, gatewayError("place_limit", order.Symbol, err)
	}

	metrics.OrderPlaced(string(models.OrderTypeLimit), string(order.Side))
	e.logEntry("place_limit", order.Symbol).WithFields(map[string]interface{}{
		"order_id": orderID,
		"side":     order.Side,
		"quantity": order.Quantity,
		"price":    order.EntryPrice,
	}).Info("Limit order submitted.")

	return orderID, nil
}

// PlaceMarket submits a market order on the order's side.
func (e *Engine) PlaceMarket(ctx context.Context, order models.Order) (int64, error) {
	ticket := broker.OrderTicket{
		ClientRef: newClientRef("mkt"),
		Symbol:    order.Symbol,
		Side:      order.Side,
		Type:      models.OrderTypeMarket,
		Quantity:  float64(order.Quantity),
	}

	orderID, err := e.gw.PlaceOrder(ctx, ticket, true)
	if err != nil {
		return 0, gatewayError("place_market", order.Symbol, err)
	}

	metrics.OrderPlaced(string(models.OrderTypeMarket), string(order.Side))
	e.logEntry("place_market", order.Symbol).WithFields(map[string]interface{}{
		"order_id": orderID,
		"side":     order.Side,
		"quantity": order.Quantity,
	}).Info("Market order submitted.")

	return orderID, nil
}

// ModifyQuantity re-submits the open order identified by orderID with a new
// quantity. Re-submitting with the same broker order id updates the working
// order in place, so calling this twice with the same quantity is a no-op.
func (e *Engine) ModifyQuantity(ctx context.Context, orderID int64, newQty int64) error {
	if newQty <= 0 {
		return validationError("modify_quantity", "", fmt.Sprintf("quantity must be greater than 0, got %d", newQty))
	}

	existing, err := e.findOpenOrderByID(ctx, orderID)
	if err != nil {
		return err
	}
	if existing == nil {
		return notFoundError("modify_quantity", "", fmt.Sprintf("no open order found with id %d", orderID))
	}

	ticket := resubmitTicket(*existing)
	ticket.Quantity = float64(newQty)

	if _, err := e.gw.PlaceOrder(ctx, ticket, true); err != nil {
		return gatewayError("modify_quantity", existing.Symbol, err)
	}
	if err := e.settle(ctx); err != nil {
		return gatewayError("modify_quantity", existing.Symbol, err)
	}

	e.logEntry("modify_quantity", existing.Symbol).WithFields(map[string]interface{}{
		"order_id": orderID,
		"new_qty":  newQty,
	}).Info("Order quantity modified.")
	return nil
}

// ModifyTriggerPrice re-submits the open order identified by orderID with a
// new stop trigger, quantized to the venue's minimum increment.
func (e *Engine) ModifyTriggerPrice(ctx context.Context, orderID int64, newPrice float64) (float64, error) {
	if newPrice <= 0 {
		return 0, validationError("modify_trigger_price", "", fmt.Sprintf("trigger price must be positive, got %f", newPrice))
	}

	existing, err := e.findOpenOrderByID(ctx, orderID)
	if err != nil {
		return 0, err
	}
	if existing == nil {
		return 0, notFoundError("modify_trigger_price", "", fmt.Sprintf("no open order found with id %d", orderID))
	}

	rounded := roundToTick(newPrice)
	ticket := resubmitTicket(*existing)
	ticket.TriggerPrice = rounded

	if _, err := e.gw.PlaceOrder(ctx, ticket, true); err != nil {
		return 0, gatewayError("modify_trigger_price", existing.Symbol, err)
	}
	if err := e.settle(ctx); err != nil {
		return 0, gatewayError("modify_trigger_price", existing.Symbol, err)
	}

	e.logEntry("modify_trigger_price", existing.Symbol).WithFields(map[string]interface{}{
		"order_id": orderID,
		"new_stop": rounded,
	}).Info("Stop trigger price modified.")
	return rounded, nil
}

// Cancel asks the gateway to cancel a working order.
func (e *Engine) Cancel(ctx context.Context, orderID int64) error {
	if err := e.gw.CancelOrder(ctx, orderID); err != nil {
		return gatewayError("cancel", "", err)
	}
	return nil
}

func (e *Engine) findOpenOrderByID(ctx context.Context, orderID int64) (*models.OpenOrder, error) {
	orders, err := e.gw.GetOpenOrders(ctx)
	if err != nil {
		return nil, gatewayError("find_order", "", err)
	}
	for i := range orders {
		if orders[i].OrderID == orderID {
			return &orders[i], nil
		}
	}
	return nil, nil
}

// resubmitTicket rebuilds a gateway ticket from a working order, keeping the
// broker order id so the submission is an update, not a new order.
func resubmitTicket(order models.OpenOrder) broker.OrderTicket {
	return broker.OrderTicket{
		OrderID:      order.OrderID,
		Symbol:       order.Symbol,
		Side:         order.Side,
		Type:         order.Type,
		Quantity:     order.Quantity,
		LimitPrice:   order.LimitPrice,
		TriggerPrice: order.TriggerPrice,
	}
}
