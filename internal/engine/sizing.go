package engine

import (
	"fmt"
	"math"
	"strings"

	"tradeterm/internal/models"
)

// PositionSize converts a dollar risk budget into a share count: the number of
// whole shares that lose at most riskBudget if the stop is hit.
func PositionSize(entryPrice, stopPrice, riskBudget float64) (int64, error) {
	riskPerShare := math.Abs(entryPrice - stopPrice)
	if riskPerShare == 0 {
		return 0, validationError("position_size", "", "entry price and stop price cannot be equal")
	}

	size := int64(math.Floor(riskBudget / riskPerShare))
	if size < 0 {
		size = 0
	}
	return size, nil
}

// BuildOrder validates the price pair and quantity and derives the side:
// entry above stop is a long entry, entry below stop a short one.
func BuildOrder(symbol string, entryPrice, stopPrice float64, quantity int64) (models.Order, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return models.Order{}, validationError("build_order", symbol, "symbol is required")
	}
	if quantity <= 0 {
		return models.Order{}, validationError("build_order", symbol, fmt.Sprintf("position size must be greater than 0, got %d", quantity))
	}

	var side models.OrderSide
	switch {
	case entryPrice > stopPrice:
		side = models.OrderSideBuy
	case entryPrice < stopPrice:
		side = models.OrderSideSell
	default:
		return models.Order{}, validationError("build_order", symbol, "entry price and stop price cannot be equal")
	}

	return models.Order{
		Symbol:     symbol,
		Side:       side,
		Quantity:   quantity,
		EntryPrice: entryPrice,
		StopPrice:  stopPrice,
	}, nil
}

// minTick is the minimum price increment of the venue. Trigger prices are
// quantized to it before submission.
const minTick = 0.01

func roundToTick(price float64) float64 {
	return math.Round(price/minTick) * minTick
}

func oppositeSide(side models.OrderSide) models.OrderSide {
	if side == models.OrderSideBuy {
		return models.OrderSideSell
	}
	return models.OrderSideBuy
}

// closingSide returns the side that flattens a signed position.
func closingSide(quantity float64) models.OrderSide {
	if quantity > 0 {
		return models.OrderSideSell
	}
	return models.OrderSideBuy
}
