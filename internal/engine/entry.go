package engine

import (
	"context"
	"fmt"

	"tradeterm/internal/metrics"
)

// ProcessEntry opens a new position: it checks the entry-frequency throttle,
// sizes the order from the current ask against the requested stop using the
// configured per-trade risk, and submits the bracket.
func (e *Engine) ProcessEntry(ctx context.Context, symbol string, stopPrice float64) EntryResult {
	executions, err := e.executionsBySymbol(ctx, symbol)
	if err != nil {
		metrics.EntryBlocked("gateway")
		return EntryResult{Allowed: false, Message: err.Error(), Symbol: symbol}
	}

	decision := e.isEntryAllowed(executions)
	if !decision.Allowed {
		metrics.EntryBlocked("throttled")
		e.logEntry("entry", symbol).Info("Entry throttled: " + decision.Message)
		return EntryResult{Allowed: false, Message: decision.Message, Symbol: symbol}
	}

	quote, err := e.gw.GetQuote(ctx, symbol)
	if err != nil {
		metrics.EntryBlocked("gateway")
		return EntryResult{
			Allowed: false,
			Message: fmt.Sprintf("could not fetch quote for %s: %v", symbol, err),
			Symbol:  symbol,
		}
	}

	quantity, err := PositionSize(quote.Ask, stopPrice, e.cfg.Trading.Risk)
	if err != nil {
		metrics.EntryBlocked("validation")
		return EntryResult{Allowed: false, Message: err.Error(), Symbol: symbol}
	}

	order, err := BuildOrder(symbol, quote.Ask, stopPrice, quantity)
	if err != nil {
		metrics.EntryBlocked("validation")
		return EntryResult{Allowed: false, Message: err.Error(), Symbol: symbol}
	}

	e.logEntry("entry", symbol).WithFields(map[string]interface{}{
		"ask":      quote.Ask,
		"stop":     stopPrice,
		"quantity": quantity,
		"side":     order.Side,
	}).Info("Entry sized. Submitting bracket.")

	parentID, stopID, err := e.PlaceBracket(ctx, order)
	if err != nil {
		result := EntryResult{Allowed: false, Message: err.Error(), Symbol: symbol}
		if parentID != 0 {
			// Parent went in before the stop failed. Report it so the
			// operator knows an unprotected order is working.
			result.ParentOrderID = &parentID
			result.Message = fmt.Sprintf("parent order %d placed but stop failed: %v", parentID, err)
		}
		return result
	}

	return EntryResult{
		Allowed:       true,
		Message:       decision.Message,
		Symbol:        symbol,
		ParentOrderID: &parentID,
		StopOrderID:   &stopID,
	}
}
