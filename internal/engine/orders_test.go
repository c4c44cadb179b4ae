package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradeterm/internal/models"
)

func TestPlaceBracket(t *testing.T) {
	ctx := context.Background()

	t.Run("parent held back, stop transmits the pair", func(t *testing.T) {
		gw := newFakeGateway()
		eng := newTestEngine(t, gw, newFakeExitStore())

		order, err := BuildOrder("AAPL", 100, 95, 100)
		require.NoError(t, err)

		parentID, stopID, err := eng.PlaceBracket(ctx, order)
		require.NoError(t, err)
		require.Len(t, gw.placed, 2)

		parent := gw.placed[0]
		assert.Equal(t, models.OrderTypeLimit, parent.ticket.Type)
		assert.Equal(t, models.OrderSideBuy, parent.ticket.Side)
		assert.Equal(t, 100.0, parent.ticket.LimitPrice)
		assert.False(t, parent.transmit)

		stop := gw.placed[1]
		assert.Equal(t, models.OrderTypeStop, stop.ticket.Type)
		assert.Equal(t, models.OrderSideSell, stop.ticket.Side)
		assert.Equal(t, 95.0, stop.ticket.TriggerPrice)
		assert.Equal(t, parentID, stop.ticket.ParentID)
		assert.True(t, stop.ticket.OutsideRTH)
		assert.True(t, stop.transmit)

		assert.NotZero(t, parentID)
		assert.NotZero(t, stopID)
	})

	t.Run("parent failure suppresses the stop", func(t *testing.T) {
		gw := newFakeGateway()
		gw.placeErr = errors.New("rejected")
		gw.placeErrOn = 1
		eng := newTestEngine(t, gw, newFakeExitStore())

		order, _ := BuildOrder("AAPL", 100, 95, 100)
		parentID, stopID, err := eng.PlaceBracket(ctx, order)
		require.Error(t, err)
		assert.Zero(t, parentID)
		assert.Zero(t, stopID)
		assert.Empty(t, gw.placed)
	})

	t.Run("stop failure reports the placed parent", func(t *testing.T) {
		gw := newFakeGateway()
		gw.placeErr = errors.New("rejected")
		gw.placeErrOn = 2
		eng := newTestEngine(t, gw, newFakeExitStore())

		order, _ := BuildOrder("AAPL", 100, 95, 100)
		parentID, stopID, err := eng.PlaceBracket(ctx, order)
		require.Error(t, err)
		assert.NotZero(t, parentID)
		assert.Zero(t, stopID)
		require.Len(t, gw.placed, 1)
	})
}

func TestModifyQuantity(t *testing.T) {
	ctx := context.Background()

	t.Run("resubmits with same broker id", func(t *testing.T) {
		gw := newFakeGateway()
		gw.orders = []models.OpenOrder{
			{OrderID: 42, Symbol: "AAPL", Side: models.OrderSideSell, Type: models.OrderTypeStop, Quantity: 100, TriggerPrice: 95},
		}
		eng := newTestEngine(t, gw, newFakeExitStore())

		require.NoError(t, eng.ModifyQuantity(ctx, 42, 150))
		require.Len(t, gw.placed, 1)
		assert.Equal(t, int64(42), gw.placed[0].ticket.OrderID)
		assert.Equal(t, 150.0, gw.placed[0].ticket.Quantity)
		assert.Equal(t, 95.0, gw.placed[0].ticket.TriggerPrice)
	})

	t.Run("unknown order id is not found", func(t *testing.T) {
		gw := newFakeGateway()
		eng := newTestEngine(t, gw, newFakeExitStore())

		err := eng.ModifyQuantity(ctx, 7, 10)
		require.Error(t, err)
		assert.True(t, IsKind(err, KindNotFound))
	})

	t.Run("non-positive quantity rejected", func(t *testing.T) {
		gw := newFakeGateway()
		eng := newTestEngine(t, gw, newFakeExitStore())

		err := eng.ModifyQuantity(ctx, 42, 0)
		require.Error(t, err)
		assert.True(t, IsKind(err, KindValidation))
	})
}

func TestModifyTriggerPrice(t *testing.T) {
	ctx := context.Background()

	t.Run("rounds to tick before submission", func(t *testing.T) {
		gw := newFakeGateway()
		gw.orders = []models.OpenOrder{
			{OrderID: 42, Symbol: "AAPL", Side: models.OrderSideSell, Type: models.OrderTypeStop, Quantity: 100, TriggerPrice: 95},
		}
		eng := newTestEngine(t, gw, newFakeExitStore())

		rounded, err := eng.ModifyTriggerPrice(ctx, 42, 96.12345)
		require.NoError(t, err)
		assert.InDelta(t, 96.12, rounded, 1e-9)
		require.Len(t, gw.placed, 1)
		assert.InDelta(t, 96.12, gw.placed[0].ticket.TriggerPrice, 1e-9)
	})

	t.Run("unknown order id is not found", func(t *testing.T) {
		gw := newFakeGateway()
		eng := newTestEngine(t, gw, newFakeExitStore())

		_, err := eng.ModifyTriggerPrice(ctx, 7, 96)
		require.Error(t, err)
		assert.True(t, IsKind(err, KindNotFound))
	})
}
