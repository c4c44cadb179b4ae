package engine

import (
	"context"
	"fmt"
	"math"

	"tradeterm/internal/metrics"
	"tradeterm/internal/models"
)

// AlarmKindEuforiaExit is the only alarm kind that can trigger an automatic
// exit, and only for symbols whose exit flag is set.
const AlarmKindEuforiaExit = "euforia_exit"

// HandleSignal reconciles an inbound trading signal against the persisted exit
// flag. The position is flattened exactly when the alarm kind matches and the
// flag is set; every other combination is a reported no-op. The market order is
// placed before the flag is cleared, so re-delivery of the same signal is
// possible and the open-MKT-order guard is the real duplicate protection.
func (e *Engine) HandleSignal(ctx context.Context, sig models.Signal) ExitResult {
	if sig.AlarmKind != AlarmKindEuforiaExit {
		metrics.ExitOutcome("wrong_alarm_kind")
		return ExitResult{
			Symbol:  sig.Symbol,
			Message: fmt.Sprintf("alarm kind %q does not trigger exits", sig.AlarmKind),
		}
	}

	flag, err := e.exits.GetBySymbol(ctx, sig.Symbol)
	if err != nil {
		metrics.ExitOutcome("store_error")
		return ExitResult{Symbol: sig.Symbol, Message: fmt.Sprintf("could not read exit flag: %v", err)}
	}
	if flag == nil {
		metrics.ExitOutcome("no_flag")
		return ExitResult{Symbol: sig.Symbol, Message: fmt.Sprintf("no exit request on file for %s", sig.Symbol)}
	}
	if !flag.Requested {
		metrics.ExitOutcome("not_requested")
		return ExitResult{Symbol: sig.Symbol, Message: fmt.Sprintf("exit not requested for %s", sig.Symbol)}
	}

	position, err := e.findPositionBySymbol(ctx, sig.Symbol)
	if err != nil {
		metrics.ExitOutcome("gateway_error")
		return ExitResult{Symbol: sig.Symbol, Message: err.Error()}
	}
	if position == nil || position.Quantity == 0 {
		metrics.ExitOutcome("flat")
		return ExitResult{Symbol: sig.Symbol, Message: fmt.Sprintf("no open position to flatten for %s", sig.Symbol)}
	}

	inFlight, err := e.findOpenMarketOrder(ctx, sig.Symbol)
	if err != nil {
		metrics.ExitOutcome("gateway_error")
		return ExitResult{Symbol: sig.Symbol, Message: err.Error()}
	}
	if inFlight != nil {
		metrics.ExitOutcome("in_flight")
		conflict := conflictError("exit", sig.Symbol,
			fmt.Sprintf("exit already in flight (order %d)", inFlight.OrderID))
		return ExitResult{Symbol: sig.Symbol, Message: conflict.Error()}
	}

	order := models.Order{
		Symbol:   position.Symbol,
		Side:     closingSide(position.Quantity),
		Quantity: int64(math.Abs(position.Quantity)),
	}

	orderID, err := e.PlaceMarket(ctx, order)
	if err != nil {
		metrics.ExitOutcome("place_failed")
		return ExitResult{Symbol: sig.Symbol, Message: err.Error()}
	}

	// Cleared only after a successful submission, so a matched signal that
	// failed to place keeps its standing permission.
	if _, err := e.exits.Delete(ctx, sig.Symbol); err != nil {
		e.logEntry("exit", sig.Symbol).WithError(err).Error("Flattening order placed but exit flag could not be cleared.")
		metrics.ExitOutcome("flag_clear_failed")
		return ExitResult{
			Symbol:  sig.Symbol,
			Message: fmt.Sprintf("position flattened with order %d but exit flag could not be cleared: %v", orderID, err),
			OrderID: &orderID,
		}
	}

	metrics.ExitOutcome("flattened")
	e.logEntry("exit", sig.Symbol).WithFields(map[string]interface{}{
		"order_id": orderID,
		"side":     order.Side,
		"quantity": order.Quantity,
	}).Info("Position flattened on exit signal.")

	return ExitResult{
		Symbol:  sig.Symbol,
		Message: fmt.Sprintf("position flattened with %s %s %d", order.Side, models.OrderTypeMarket, order.Quantity),
		OrderID: &orderID,
	}
}
