// Package history is a thin client for the relay network's transfer history
// REST endpoint, used by the recovery flow to locate stuck deposits.
package history

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

const defaultTimeout = 15 * time.Second

// Transfer is one cross-chain transfer as reported by the relay network.
// All numeric fields arrive as strings.
type Transfer struct {
	TransferType string `json:"transfer_type"`
	Status       string `json:"status"`
	Blockchain   string `json:"blockchain"`
	Denom        string `json:"denom"`
	Amount       string `json:"amount"`
	FeeAmount    string `json:"fee_amount"`
	BlockHeight  string `json:"block_height"`
	Timestamp    string `json:"timestamp"`
}

type Client struct {
	opts ClientOpts
	http *http.Client
}

type ClientOpts struct {
	BaseURL string
	Timeout time.Duration
	Logger  *slog.Logger
}

func NewClient(opts ClientOpts) *Client {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Timeout == 0 {
		opts.Timeout = defaultTimeout
	}
	return &Client{
		opts: opts,
		http: &http.Client{Timeout: opts.Timeout},
	}
}

// Transfers fetches all transfers recorded against a relay network account,
// newest first.
func (c *Client) Transfers(ctx context.Context, account string) ([]Transfer, error) {
	endpoint := fmt.Sprintf("%s/transfers?account=%s", c.opts.BaseURL, url.QueryEscape(account))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transfer history: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("transfer history request failed with status %d", res.StatusCode)
	}

	var transfers []Transfer
	if err := json.NewDecoder(res.Body).Decode(&transfers); err != nil {
		return nil, fmt.Errorf("failed to decode transfer history: %w", err)
	}

	c.opts.Logger.Debug("fetched transfer history", "account", account, "count", len(transfers))
	return transfers, nil
}
