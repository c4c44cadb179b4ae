package engine

import (
	"context"
	"math"
	"strings"
	"sync"

	"tradeterm/internal/metrics"
	"tradeterm/internal/models"
)

// UnboundedOpenRisk marks a position with no protective stop. It is far above
// any risk the sizer can produce, so the table makes naked positions obvious.
const UnboundedOpenRisk = 999_999_999

// BuildRiskTable aggregates live positions, open stop orders and account
// equity into the per-symbol open-risk view. The three reads are independent
// and fetched concurrently; aggregation starts only after all of them land.
func (e *Engine) BuildRiskTable(ctx context.Context) ([]models.RiskRow, error) {
	var (
		positions []models.Position
		orders    []models.OpenOrder
		summary   models.AccountSummary

		posErr, ordErr, sumErr error
	)

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		positions, posErr = e.gw.GetPositions(ctx)
	}()
	go func() {
		defer wg.Done()
		orders, ordErr = e.gw.GetOpenOrders(ctx)
	}()
	go func() {
		defer wg.Done()
		summary, sumErr = e.gw.GetAccountSummary(ctx)
	}()
	wg.Wait()

	for _, err := range []error{posErr, ordErr, sumErr} {
		if err != nil {
			return nil, gatewayError("risk_table", "", err)
		}
	}

	if len(positions) == 0 {
		return []models.RiskRow{}, nil
	}

	netLiq := summary.NetLiquidation

	rows := make([]models.RiskRow, 0, len(positions))
	totalRisk := 0.0
	for _, pos := range positions {
		if pos.Symbol == "" || pos.Quantity == 0 {
			continue
		}

		size := round2(math.Abs(pos.Quantity * pos.AvgCost))

		var allocation *float64
		if netLiq > 0 {
			alloc := round2(size / netLiq * 100)
			allocation = &alloc
		}

		stopPrice := 0.0
		openRisk := float64(UnboundedOpenRisk)
		if stop := findStopFor(orders, pos.Symbol); stop != nil && stop.TriggerPrice != 0 {
			stopPrice = stop.TriggerPrice
			openRisk = round2(math.Abs(pos.Quantity * (stop.TriggerPrice - pos.AvgCost)))
			totalRisk += openRisk
		}

		rows = append(rows, models.RiskRow{
			Symbol:     pos.Symbol,
			Allocation: allocation,
			Size:       size,
			AvgCost:    pos.AvgCost,
			StopPrice:  stopPrice,
			Position:   pos.Quantity,
			OpenRisk:   openRisk,
		})
	}

	metrics.SetOpenRisk(totalRisk)
	e.logEntry("risk_table", "").WithField("rows", len(rows)).Info("Built open risk table.")
	return rows, nil
}

func findStopFor(orders []models.OpenOrder, symbol string) *models.OpenOrder {
	for i := range orders {
		if strings.EqualFold(orders[i].Symbol, symbol) && orders[i].Type == models.OrderTypeStop {
			return &orders[i]
		}
	}
	return nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
