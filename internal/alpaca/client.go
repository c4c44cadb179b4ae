package alpaca

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"tradeterm/internal/logger"
	"tradeterm/internal/models"
)

// Client talks to the Alpaca trading API, which serves as the manual-order
// feed for the pending-orders sweep.
type Client struct {
	baseURL    string
	apiKey     string
	apiSecret  string
	httpClient *http.Client
	log        *logger.Logger
}

func New(baseURL, apiKey, apiSecret string, log *logger.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		apiSecret:  apiSecret,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		log:        log,
	}
}

// apiOrder mirrors the fields of Alpaca's order object the sweep cares about.
// Prices come back as strings and are parsed on normalization.
type apiOrder struct {
	ID         string `json:"id"`
	Symbol     string `json:"symbol"`
	StopPrice  string `json:"stop_price"`
	LimitPrice string `json:"limit_price"`
	Status     string `json:"status"`
}

// ListOpenOrders fetches the account's open orders and normalizes them.
func (c *Client) ListOpenOrders(ctx context.Context) ([]models.ManualOrder, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/orders")
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("alpaca request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read alpaca response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("alpaca returned status %s: %s", resp.Status, string(data))
	}

	var raw []apiOrder
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode alpaca orders: %w", err)
	}

	orders := make([]models.ManualOrder, 0, len(raw))
	for _, o := range raw {
		orders = append(orders, models.ManualOrder{
			ID:         o.ID,
			Symbol:     o.Symbol,
			StopPrice:  parsePrice(o.StopPrice),
			LimitPrice: parsePrice(o.LimitPrice),
		})
	}

	c.logEntry().WithField("count", len(orders)).Debug("Fetched open manual orders.")
	return orders, nil
}

// CancelOrder cancels an open order by id. Alpaca answers 204 on success and
// 422 when the order is already filled or cancelled; the latter is reported as
// a distinct error so callers can treat it as already-done.
func (c *Client) CancelOrder(ctx context.Context, orderID string) error {
	req, err := c.newRequest(ctx, http.MethodDelete, "/orders/"+orderID)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("alpaca request failed: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	switch resp.StatusCode {
	case http.StatusNoContent:
		c.logEntry().WithField("order_id", orderID).Info("Manual order cancelled.")
		return nil
	case http.StatusUnprocessableEntity:
		return fmt.Errorf("order %s could not be cancelled, possibly already filled or cancelled", orderID)
	default:
		return fmt.Errorf("alpaca returned status %s cancelling order %s", resp.Status, orderID)
	}
}

func (c *Client) newRequest(ctx context.Context, method, path string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("APCA-API-KEY-ID", c.apiKey)
	req.Header.Set("APCA-API-SECRET-KEY", c.apiSecret)
	return req, nil
}

func (c *Client) logEntry() *logrus.Entry {
	return c.log.WithComponent("alpaca")
}

func parsePrice(s string) float64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
