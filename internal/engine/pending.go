package engine

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"tradeterm/internal/models"
)

const (
	PendingSourceManual = "manual"
	PendingSourceAuto   = "auto"
)

// ProcessPendingOrders merges the manual feed and the database-resident auto
// orders into one sweep: every candidate with a usable stop is enriched with
// the latest ask and the position size it would trade at. Quote lookups run
// concurrently per candidate; a candidate whose quote or sizing fails is
// dropped from the sweep with a warning, never failing the whole request.
func (e *Engine) ProcessPendingOrders(ctx context.Context) ([]models.PendingOrder, error) {
	candidates, err := e.collectPendingCandidates(ctx)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return []models.PendingOrder{}, nil
	}

	results := make([]*models.PendingOrder, len(candidates))

	var wg sync.WaitGroup
	wg.Add(len(candidates))
	for i := range candidates {
		go func(i int) {
			defer wg.Done()
			results[i] = e.enrichPendingOrder(ctx, candidates[i])
		}(i)
	}
	wg.Wait()

	out := make([]models.PendingOrder, 0, len(candidates))
	for _, row := range results {
		if row != nil {
			out = append(out, *row)
		}
	}

	e.logEntry("pending_orders", "").WithFields(map[string]interface{}{
		"candidates": len(candidates),
		"rows":       len(out),
	}).Info("Pending orders sweep complete.")
	return out, nil
}

// collectPendingCandidates normalizes both feeds into the common shape. The
// manual feed is optional; a nil source contributes nothing.
func (e *Engine) collectPendingCandidates(ctx context.Context) ([]models.PendingOrder, error) {
	var candidates []models.PendingOrder

	if e.manual != nil {
		manualOrders, err := e.manual.ListOpenOrders(ctx)
		if err != nil {
			return nil, gatewayError("pending_orders", "", fmt.Errorf("manual order feed: %w", err))
		}
		for _, mo := range manualOrders {
			stop := mo.StopPrice
			if stop == 0 {
				stop = mo.LimitPrice
			}
			if stop <= 0 {
				continue
			}
			candidates = append(candidates, models.PendingOrder{
				ID:        mo.ID,
				Symbol:    mo.Symbol,
				StopPrice: stop,
				Source:    PendingSourceManual,
			})
		}
	}

	if e.autoOrders != nil {
		autoOrders, err := e.autoOrders.ListActive(ctx)
		if err != nil {
			return nil, gatewayError("pending_orders", "", fmt.Errorf("auto order store: %w", err))
		}
		for _, ao := range autoOrders {
			if ao.Stop <= 0 {
				continue
			}
			candidates = append(candidates, models.PendingOrder{
				ID:        strconv.FormatInt(ao.ID, 10),
				Symbol:    ao.Symbol,
				StopPrice: ao.Stop,
				Source:    PendingSourceAuto,
			})
		}
	}

	return candidates, nil
}

func (e *Engine) enrichPendingOrder(ctx context.Context, candidate models.PendingOrder) *models.PendingOrder {
	quote, err := e.gw.GetQuote(ctx, candidate.Symbol)
	if err != nil {
		e.logEntry("pending_orders", candidate.Symbol).WithError(err).Warn("Skipping pending order: quote unavailable.")
		return nil
	}

	size, err := PositionSize(quote.Ask, candidate.StopPrice, e.cfg.Trading.Risk)
	if err != nil {
		e.logEntry("pending_orders", candidate.Symbol).WithError(err).Warn("Skipping pending order: sizing failed.")
		return nil
	}

	candidate.LatestPrice = quote.Ask
	candidate.PositionSize = size
	return &candidate
}

// DeactivateAutoOrder retires a database-resident conditional order once it is
// no longer wanted.
func (e *Engine) DeactivateAutoOrder(ctx context.Context, orderID int64) error {
	ok, err := e.autoOrders.UpdateStatus(ctx, orderID, "deactive")
	if err != nil {
		return gatewayError("deactivate_auto_order", "", err)
	}
	if !ok {
		return notFoundError("deactivate_auto_order", "", fmt.Sprintf("no auto order found with id %d", orderID))
	}
	e.logEntry("deactivate_auto_order", "").WithField("order_id", orderID).Info("Auto order deactivated.")
	return nil
}
