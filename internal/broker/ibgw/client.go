// Package ibgw talks to the IB gateway bridge over its local REST API. The
// bridge owns the TWS session; this client only moves snapshots and tickets.
package ibgw

import (
	"net/http"
	"time"

	"tradeterm/internal/logger"
)

type Client struct {
	baseURL    string
	account    string
	token      string
	httpClient *http.Client
	log        *logger.Logger
}

func New(baseURL, account, token string, log *logger.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		account: account,
		token:   token,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		log: log,
	}
}
