package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradeterm/internal/models"
)

func TestProcessEntry(t *testing.T) {
	ctx := context.Background()

	t.Run("sizes from ask and places bracket", func(t *testing.T) {
		gw := newFakeGateway()
		gw.quotes["AAPL"] = models.Quote{Symbol: "AAPL", Bid: 99.9, Ask: 100}
		eng := newTestEngine(t, gw, newFakeExitStore())

		result := eng.ProcessEntry(ctx, "AAPL", 95)
		require.True(t, result.Allowed, result.Message)
		require.NotNil(t, result.ParentOrderID)
		require.NotNil(t, result.StopOrderID)

		require.Len(t, gw.placed, 2)
		// risk 500 / (100-95) = 100 shares
		assert.Equal(t, 100.0, gw.placed[0].ticket.Quantity)
		assert.Equal(t, models.OrderSideBuy, gw.placed[0].ticket.Side)
	})

	t.Run("recent execution throttles the entry", func(t *testing.T) {
		gw := newFakeGateway()
		gw.quotes["AAPL"] = models.Quote{Symbol: "AAPL", Ask: 100}
		eng := newTestEngine(t, gw, newFakeExitStore())
		gw.trades = []models.Execution{
			{Symbol: "AAPL", Time: eng.now().Add(-5 * time.Minute)},
		}

		result := eng.ProcessEntry(ctx, "AAPL", 95)
		assert.False(t, result.Allowed)
		assert.Empty(t, gw.placed)
	})

	t.Run("other symbols do not throttle", func(t *testing.T) {
		gw := newFakeGateway()
		gw.quotes["AAPL"] = models.Quote{Symbol: "AAPL", Ask: 100}
		eng := newTestEngine(t, gw, newFakeExitStore())
		gw.trades = []models.Execution{
			{Symbol: "TSLA", Time: eng.now().Add(-5 * time.Minute)},
		}

		result := eng.ProcessEntry(ctx, "AAPL", 95)
		assert.True(t, result.Allowed, result.Message)
	})

	t.Run("stop equal to ask is rejected", func(t *testing.T) {
		gw := newFakeGateway()
		gw.quotes["AAPL"] = models.Quote{Symbol: "AAPL", Ask: 100}
		eng := newTestEngine(t, gw, newFakeExitStore())

		result := eng.ProcessEntry(ctx, "AAPL", 100)
		assert.False(t, result.Allowed)
		assert.Empty(t, gw.placed)
	})

	t.Run("missing quote blocks entry", func(t *testing.T) {
		gw := newFakeGateway()
		eng := newTestEngine(t, gw, newFakeExitStore())

		result := eng.ProcessEntry(ctx, "AAPL", 95)
		assert.False(t, result.Allowed)
		assert.Empty(t, gw.placed)
	})
}
