package ibgw

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"tradeterm/internal/models"
)

func (c *Client) GetPositions(ctx context.Context) ([]models.Position, error) {
	var resp []struct {
		Account  string  `json:"account"`
		Symbol   string  `json:"symbol"`
		SecType  string  `json:"secType"`
		Currency string  `json:"currency"`
		Position float64 `json:"position"`
		AvgCost  float64 `json:"avgCost"`
	}

	if err := c.doRequest(ctx, http.MethodGet, "/v1/portfolio/positions", nil, nil, &resp); err != nil {
		return nil, err
	}

	var positions []models.Position
	for _, item := range resp {
		if item.Position == 0 {
			continue
		}
		positions = append(positions, models.Position{
			Account:  item.Account,
			Symbol:   item.Symbol,
			SecType:  item.SecType,
			Currency: item.Currency,
			Quantity: item.Position,
			AvgCost:  item.AvgCost,
		})
	}
	return positions, nil
}

func (c *Client) GetAccountSummary(ctx context.Context) (models.AccountSummary, error) {
	params := url.Values{}
	params.Set("account", c.account)

	var resp struct {
		Account        string  `json:"account"`
		NetLiquidation float64 `json:"netLiquidation"`
		TotalCash      float64 `json:"totalCashValue"`
		BuyingPower    float64 `json:"buyingPower"`
	}

	if err := c.doRequest(ctx, http.MethodGet, "/v1/account/summary", params, nil, &resp); err != nil {
		return models.AccountSummary{}, err
	}

	return models.AccountSummary{
		Account:        resp.Account,
		NetLiquidation: resp.NetLiquidation,
		TotalCash:      resp.TotalCash,
		BuyingPower:    resp.BuyingPower,
	}, nil
}

func (c *Client) GetTrades(ctx context.Context) ([]models.Execution, error) {
	var resp []struct {
		TradeID    int64   `json:"tradeId"`
		Symbol     string  `json:"symbol"`
		SecType    string  `json:"secType"`
		Side       string  `json:"side"`
		Shares     float64 `json:"shares"`
		Price      float64 `json:"price"`
		Time       string  `json:"time"`
		Exchange   string  `json:"exchange"`
		Commission float64 `json:"commission"`
	}

	if err := c.doRequest(ctx, http.MethodGet, "/v1/account/trades", nil, nil, &resp); err != nil {
		return nil, err
	}

	var executions []models.Execution
	for _, item := range resp {
		ts, err := time.Parse(time.RFC3339, item.Time)
		if err != nil {
			c.logEntry().WithField("time", item.Time).Warn("Skipping execution with unparseable timestamp.")
			continue
		}
		executions = append(executions, models.Execution{
			TradeID:    item.TradeID,
			Symbol:     item.Symbol,
			SecType:    item.SecType,
			Side:       models.OrderSide(item.Side),
			Quantity:   item.Shares,
			Price:      item.Price,
			Time:       ts,
			Exchange:   item.Exchange,
			Commission: item.Commission,
		})
	}
	return executions, nil
}
