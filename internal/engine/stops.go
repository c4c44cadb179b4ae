package engine

import (
	"context"
	"fmt"
)

// MoveStopToBreakeven rewrites the symbol's protective stop so it triggers at
// the position's average cost, eliminating further downside.
func (e *Engine) MoveStopToBreakeven(ctx context.Context, symbol string) BreakevenResult {
	stopOrder, err := e.findStopOrderBySymbol(ctx, symbol)
	if err != nil {
		return BreakevenResult{Status: BreakevenError, Message: err.Error(), Symbol: symbol}
	}
	if stopOrder == nil {
		return BreakevenResult{
			Status:  BreakevenNotFound,
			Message: fmt.Sprintf("no open stop order for %s", symbol),
			Symbol:  symbol,
		}
	}

	position, err := e.findPositionBySymbol(ctx, symbol)
	if err != nil {
		return BreakevenResult{Status: BreakevenError, Message: err.Error(), Symbol: symbol}
	}
	if position == nil {
		return BreakevenResult{
			Status:  BreakevenNotFound,
			Message: fmt.Sprintf("no open position for %s", symbol),
			Symbol:  symbol,
		}
	}

	newStop, err := e.ModifyTriggerPrice(ctx, stopOrder.OrderID, position.AvgCost)
	if err != nil {
		if IsKind(err, KindNotFound) {
			return BreakevenResult{Status: BreakevenNotFound, Message: err.Error(), Symbol: symbol, OrderID: stopOrder.OrderID}
		}
		return BreakevenResult{Status: BreakevenError, Message: err.Error(), Symbol: symbol, OrderID: stopOrder.OrderID}
	}

	return BreakevenResult{
		Status:       BreakevenSuccess,
		Message:      fmt.Sprintf("Stop order for %s moved to breakeven at price %.2f", symbol, newStop),
		Symbol:       symbol,
		OrderID:      stopOrder.OrderID,
		NewStopPrice: newStop,
	}
}
