package engine

import (
	"context"
	"fmt"

	"tradeterm/internal/metrics"
	"tradeterm/internal/models"
)

// isAddAllowed guards the add path: growing a position is only permitted while
// the market trades above the average cost. A failed quote fetch denies the
// add rather than letting it through blind.
func (e *Engine) isAddAllowed(ctx context.Context, position models.Position) (bool, string) {
	quote, err := e.gw.GetQuote(ctx, position.Symbol)
	if err != nil {
		return false, fmt.Sprintf("could not fetch quote for %s: %v", position.Symbol, err)
	}

	if quote.Ask > position.AvgCost {
		return true, fmt.Sprintf("Current ask (%.2f) is above avg cost (%.2f)", quote.Ask, position.AvgCost)
	}
	return false, fmt.Sprintf("Current ask (%.2f) is not above avg cost (%.2f)", quote.Ask, position.AvgCost)
}

// ProcessAdd grows an existing position toward a new blended risk target: it
// re-sizes the whole position against the current ask and the working stop's
// trigger, buys the difference with a limit order, then raises the stop's
// quantity to cover the blended total. Both mutations are attempted even if
// one fails; a partial outcome is reported verbatim, never rolled back.
func (e *Engine) ProcessAdd(ctx context.Context, symbol string, totalRisk float64) AddResult {
	position, err := e.findPositionBySymbol(ctx, symbol)
	if err != nil {
		metrics.EntryBlocked("gateway")
		return AddResult{Allowed: false, Message: err.Error(), Symbol: symbol}
	}
	if position == nil {
		metrics.EntryBlocked("no_position")
		return AddResult{Allowed: false, Message: fmt.Sprintf("no open position for %s", symbol), Symbol: symbol}
	}

	stopOrder, err := e.findStopOrderBySymbol(ctx, symbol)
	if err != nil {
		metrics.EntryBlocked("gateway")
		return AddResult{Allowed: false, Message: err.Error(), Symbol: symbol}
	}
	if stopOrder == nil {
		metrics.EntryBlocked("no_stop")
		return AddResult{Allowed: false, Message: fmt.Sprintf("no open stop order for %s", symbol), Symbol: symbol}
	}

	allowed, reason := e.isAddAllowed(ctx, *position)
	if !allowed {
		metrics.EntryBlocked("add_guard")
		e.logEntry("add", symbol).Info("Add not allowed: " + reason)
		return AddResult{Allowed: false, Message: reason, Symbol: symbol}
	}

	quote, err := e.gw.GetQuote(ctx, symbol)
	if err != nil {
		metrics.EntryBlocked("gateway")
		return AddResult{Allowed: false, Message: fmt.Sprintf("could not fetch quote for %s: %v", symbol, err), Symbol: symbol}
	}

	targetTotal, err := PositionSize(quote.Ask, stopOrder.TriggerPrice, totalRisk)
	if err != nil {
		metrics.EntryBlocked("validation")
		return AddResult{Allowed: false, Message: err.Error(), Symbol: symbol}
	}

	if float64(targetTotal) <= position.Quantity {
		metrics.EntryBlocked("target_met")
		return AddResult{
			Allowed: false,
			Message: fmt.Sprintf("target total %d already met or exceeded by current position %.0f", targetTotal, position.Quantity),
			Symbol:  symbol,
		}
	}

	delta := targetTotal - int64(position.Quantity)
	newOrder, err := BuildOrder(symbol, quote.Ask, stopOrder.TriggerPrice, delta)
	if err != nil {
		metrics.EntryBlocked("validation")
		return AddResult{Allowed: false, Message: err.Error(), Symbol: symbol}
	}

	e.logEntry("add", symbol).WithFields(map[string]interface{}{
		"target_total": targetTotal,
		"existing_qty": position.Quantity,
		"delta":        delta,
		"ask":          quote.Ask,
		"stop":         stopOrder.TriggerPrice,
	}).Info("Add plan computed.")

	result := AddResult{Allowed: true, Symbol: symbol, NewOrder: &newOrder}

	// Both legs are attempted regardless of the other's outcome; there is no
	// compensating transaction for a half-applied add.
	placedID, placeErr := e.PlaceLimit(ctx, newOrder)
	if placeErr == nil {
		result.PlacedOrderID = &placedID
	}

	modifyErr := e.ModifyQuantity(ctx, stopOrder.OrderID, targetTotal)
	if modifyErr == nil {
		result.ModifiedStopQuantity = &targetTotal
	}

	switch {
	case placeErr == nil && modifyErr == nil:
		result.Message = "New order placed and stop quantity updated."
	case placeErr != nil && modifyErr != nil:
		result.Allowed = false
		result.Message = fmt.Sprintf("add failed: place: %v; stop modify: %v", placeErr, modifyErr)
	case placeErr != nil:
		result.Message = fmt.Sprintf("partial: stop quantity updated but order placement failed: %v", placeErr)
	default:
		result.Message = fmt.Sprintf("partial: order placed but stop modify failed: %v", modifyErr)
	}

	return result
}
