package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradeterm/internal/models"
)

func TestMoveStopToBreakeven(t *testing.T) {
	ctx := context.Background()

	t.Run("moves stop to average cost", func(t *testing.T) {
		gw := newFakeGateway()
		gw.positions = []models.Position{{Symbol: "AAPL", Quantity: 100, AvgCost: 92.456}}
		gw.orders = []models.OpenOrder{
			{OrderID: 42, Symbol: "AAPL", Side: models.OrderSideSell, Type: models.OrderTypeStop, Quantity: 100, TriggerPrice: 85},
		}
		eng := newTestEngine(t, gw, newFakeExitStore())

		result := eng.MoveStopToBreakeven(ctx, "AAPL")
		assert.Equal(t, BreakevenSuccess, result.Status, result.Message)
		assert.Equal(t, int64(42), result.OrderID)
		assert.InDelta(t, 92.46, result.NewStopPrice, 1e-9)

		require.Len(t, gw.placed, 1)
		assert.Equal(t, int64(42), gw.placed[0].ticket.OrderID)
		assert.InDelta(t, 92.46, gw.placed[0].ticket.TriggerPrice, 1e-9)
	})

	t.Run("no stop order reports not found", func(t *testing.T) {
		gw := newFakeGateway()
		gw.positions = []models.Position{{Symbol: "AAPL", Quantity: 100, AvgCost: 92}}
		eng := newTestEngine(t, gw, newFakeExitStore())

		result := eng.MoveStopToBreakeven(ctx, "AAPL")
		assert.Equal(t, BreakevenNotFound, result.Status)
		assert.Empty(t, gw.placed)
	})

	t.Run("no position reports not found", func(t *testing.T) {
		gw := newFakeGateway()
		gw.orders = []models.OpenOrder{
			{OrderID: 42, Symbol: "AAPL", Side: models.OrderSideSell, Type: models.OrderTypeStop, Quantity: 100, TriggerPrice: 85},
		}
		eng := newTestEngine(t, gw, newFakeExitStore())

		result := eng.MoveStopToBreakeven(ctx, "AAPL")
		assert.Equal(t, BreakevenNotFound, result.Status)
		assert.Empty(t, gw.placed)
	})
}
