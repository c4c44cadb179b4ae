package ibgw

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"tradeterm/internal/models"
)

// GetQuote asks the bridge for a market data snapshot. The bridge qualifies the
// contract, subscribes, waits for the first tick and cancels the subscription;
// one round trip here maps to that whole sequence on the TWS side.
func (c *Client) GetQuote(ctx context.Context, symbol string) (models.Quote, error) {
	params := url.Values{}
	params.Set("symbol", strings.ToUpper(symbol))
	params.Set("exchange", "SMART")
	params.Set("currency", "USD")

	var resp struct {
		Symbol string  `json:"symbol"`
		Bid    float64 `json:"bid"`
		Ask    float64 `json:"ask"`
	}

	if err := c.doRequest(ctx, http.MethodGet, "/v1/marketdata/snapshot", params, nil, &resp); err != nil {
		return models.Quote{}, err
	}

	if resp.Bid == 0 && resp.Ask == 0 {
		return models.Quote{}, fmt.Errorf("no bid/ask data available for %s", symbol)
	}

	return models.Quote{
		Symbol: resp.Symbol,
		Bid:    resp.Bid,
		Ask:    resp.Ask,
	}, nil
}
