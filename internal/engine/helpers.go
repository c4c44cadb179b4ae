package engine

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"tradeterm/internal/models"
)

// findStopOrderBySymbol returns the first open STP order for the symbol, or
// nil when none is working.
func (e *Engine) findStopOrderBySymbol(ctx context.Context, symbol string) (*models.OpenOrder, error) {
	orders, err := e.gw.GetOpenOrders(ctx)
	if err != nil {
		return nil, gatewayError("find_stop_order", symbol, err)
	}
	for i := range orders {
		if strings.EqualFold(orders[i].Symbol, symbol) && orders[i].Type == models.OrderTypeStop {
			return &orders[i], nil
		}
	}
	return nil, nil
}

// findPositionBySymbol returns the symbol's non-zero position, or nil when the
// account is flat in it.
func (e *Engine) findPositionBySymbol(ctx context.Context, symbol string) (*models.Position, error) {
	positions, err := e.gw.GetPositions(ctx)
	if err != nil {
		return nil, gatewayError("find_position", symbol, err)
	}
	for i := range positions {
		if strings.EqualFold(positions[i].Symbol, symbol) && positions[i].Quantity != 0 {
			return &positions[i], nil
		}
	}
	return nil, nil
}

// findOpenMarketOrder reports whether a MKT order is already working for the
// symbol. Used as the duplicate-flatten guard.
func (e *Engine) findOpenMarketOrder(ctx context.Context, symbol string) (*models.OpenOrder, error) {
	orders, err := e.gw.GetOpenOrders(ctx)
	if err != nil {
		return nil, gatewayError("find_market_order", symbol, err)
	}
	for i := range orders {
		if strings.EqualFold(orders[i].Symbol, symbol) && orders[i].Type == models.OrderTypeMarket {
			return &orders[i], nil
		}
	}
	return nil, nil
}

func (e *Engine) executionsBySymbol(ctx context.Context, symbol string) ([]models.Execution, error) {
	executions, err := e.gw.GetTrades(ctx)
	if err != nil {
		return nil, gatewayError("executions_by_symbol", symbol, err)
	}
	var filtered []models.Execution
	for _, exec := range executions {
		if strings.EqualFold(exec.Symbol, symbol) {
			filtered = append(filtered, exec)
		}
	}
	return filtered, nil
}

// newClientRef tags every gateway submission so it can be traced end to end.
func newClientRef(suffix string) string {
	raw := strings.ReplaceAll(uuid.New().String(), "-", "")
	if len(raw) > 12 {
		raw = raw[:12]
	}
	return raw + "-" + suffix
}
