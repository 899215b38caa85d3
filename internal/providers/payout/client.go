// Package payout implements the external transfer boundary as a thin HTTP
// client against a payout service.
package payout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"fundledger/internal/domain"
)

// Options configures a payout Client.
type Options struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
	Timeout    time.Duration
	Logger     zerolog.Logger
}

// Client posts transfer orders to a payout endpoint. It satisfies
// ledger.Transferer.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	log     zerolog.Logger
}

func NewClient(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		baseURL: opts.BaseURL,
		token:   opts.Token,
		http:    httpClient,
		log:     opts.Logger,
	}
}

type transferOrder struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount string `json:"amount"`
}

// Transfer submits one transfer order. Any non-2xx response is an error so
// the ledger can roll the donation back.
func (c *Client) Transfer(ctx context.Context, from, to domain.Identity, amount *big.Int) error {
	order := transferOrder{
		From:   string(from),
		To:     string(to),
		Amount: amount.String(),
	}
	body, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("payout: encode order: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/transfers", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("payout: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("payout: send order: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("payout: order rejected: status %d: %s", resp.StatusCode, snippet)
	}

	c.log.Debug().
		Str("from", from.Short()).
		Str("to", to.Short()).
		Str("amount", amount.String()).
		Msg("payout order accepted")
	return nil
}
