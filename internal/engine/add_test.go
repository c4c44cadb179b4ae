package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradeterm/internal/models"
)

func addFixture() *fakeGateway {
	gw := newFakeGateway()
	gw.positions = []models.Position{
		{Symbol: "AAPL", Quantity: 100, AvgCost: 90},
	}
	gw.orders = []models.OpenOrder{
		{OrderID: 42, Symbol: "AAPL", Side: models.OrderSideSell, Type: models.OrderTypeStop, Quantity: 100, TriggerPrice: 95},
	}
	gw.quotes["AAPL"] = models.Quote{Symbol: "AAPL", Bid: 99.9, Ask: 100}
	return gw
}

func TestProcessAdd(t *testing.T) {
	ctx := context.Background()

	t.Run("places delta and raises stop quantity", func(t *testing.T) {
		gw := addFixture()
		eng := newTestEngine(t, gw, newFakeExitStore())

		result := eng.ProcessAdd(ctx, "AAPL", 1000)
		require.True(t, result.Allowed, result.Message)

		// target = 1000 / (100-95) = 200, delta = 100
		require.NotNil(t, result.NewOrder)
		assert.Equal(t, int64(100), result.NewOrder.Quantity)
		require.NotNil(t, result.ModifiedStopQuantity)
		assert.Equal(t, int64(200), *result.ModifiedStopQuantity)

		require.Len(t, gw.placed, 2)
		assert.Equal(t, models.OrderTypeLimit, gw.placed[0].ticket.Type)
		assert.Equal(t, 100.0, gw.placed[0].ticket.Quantity)
		assert.Equal(t, int64(42), gw.placed[1].ticket.OrderID)
		assert.Equal(t, 200.0, gw.placed[1].ticket.Quantity)
	})

	t.Run("no position blocks the add", func(t *testing.T) {
		gw := addFixture()
		gw.positions = nil
		eng := newTestEngine(t, gw, newFakeExitStore())

		result := eng.ProcessAdd(ctx, "AAPL", 1000)
		assert.False(t, result.Allowed)
		assert.Empty(t, gw.placed)
	})

	t.Run("no stop order blocks the add", func(t *testing.T) {
		gw := addFixture()
		gw.orders = nil
		eng := newTestEngine(t, gw, newFakeExitStore())

		result := eng.ProcessAdd(ctx, "AAPL", 1000)
		assert.False(t, result.Allowed)
		assert.Empty(t, gw.placed)
	})

	t.Run("ask at or below avg cost blocks the add", func(t *testing.T) {
		gw := addFixture()
		gw.quotes["AAPL"] = models.Quote{Symbol: "AAPL", Ask: 90}
		eng := newTestEngine(t, gw, newFakeExitStore())

		result := eng.ProcessAdd(ctx, "AAPL", 1000)
		assert.False(t, result.Allowed)
		assert.Empty(t, gw.placed)
	})

	t.Run("quote failure fails closed", func(t *testing.T) {
		gw := addFixture()
		gw.quoteErr = errors.New("feed down")
		eng := newTestEngine(t, gw, newFakeExitStore())

		result := eng.ProcessAdd(ctx, "AAPL", 1000)
		assert.False(t, result.Allowed)
		assert.Empty(t, gw.placed)
	})

	t.Run("target already met places nothing", func(t *testing.T) {
		gw := addFixture()
		eng := newTestEngine(t, gw, newFakeExitStore())

		// target = 400 / 5 = 80 < position 100
		result := eng.ProcessAdd(ctx, "AAPL", 400)
		assert.False(t, result.Allowed)
		assert.Contains(t, result.Message, "already met or exceeded")
		assert.Empty(t, gw.placed)
	})

	t.Run("stop modify still attempted after place failure", func(t *testing.T) {
		gw := addFixture()
		gw.placeErr = errors.New("rejected")
		gw.placeErrOn = 1
		eng := newTestEngine(t, gw, newFakeExitStore())

		result := eng.ProcessAdd(ctx, "AAPL", 1000)
		assert.True(t, result.Allowed)
		assert.Nil(t, result.PlacedOrderID)
		require.NotNil(t, result.ModifiedStopQuantity)
		assert.Contains(t, result.Message, "partial")

		require.Len(t, gw.placed, 1)
		assert.Equal(t, int64(42), gw.placed[0].ticket.OrderID)
	})
}
