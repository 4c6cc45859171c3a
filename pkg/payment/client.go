package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"ai-voiceshop-be/internal/apperr"
)

// Request is the payload the Web3 payment service expects.
type Request struct {
	ProductID        string `json:"productId"`
	ProductName      string `json:"productName"`
	Amount           string `json:"amount"`
	RecipientAddress string `json:"recipientAddress"`
}

// Result is the success/failure envelope the service returns.
type Result struct {
	Success       bool                   `json:"success"`
	TransactionID string                 `json:"transactionId,omitempty"`
	Error         string                 `json:"error,omitempty"`
	Data          map[string]interface{} `json:"data,omitempty"`
}

// Client talks to the external Web3 payment service. The settlement
// protocol is the service's concern; this client only moves envelopes.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Start initiates a payment for a product.
func (c *Client) Start(ctx context.Context, req *Request) (*Result, error) {
	return c.post(ctx, "/payment/start", req)
}

// Confirm finalizes the pending payment.
func (c *Client) Confirm(ctx context.Context) (*Result, error) {
	return c.post(ctx, "/payment/confirm", struct{}{})
}

// Cancel aborts the pending payment.
func (c *Client) Cancel(ctx context.Context) (*Result, error) {
	return c.post(ctx, "/payment/cancel", struct{}{})
}

func (c *Client) post(ctx context.Context, path string, body interface{}) (*Result, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encoding payment request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("building payment request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUpstreamUnavailable, "payment service unreachable", err)
	}
	defer resp.Body.Close()

	// Success is a pointer so an envelope without the field (plain
	// transaction payload) still counts as success.
	var wire struct {
		Success       *bool                  `json:"success"`
		TransactionID string                 `json:"transactionId,omitempty"`
		Error         string                 `json:"error,omitempty"`
		Data          map[string]interface{} `json:"data,omitempty"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, apperr.Wrap(apperr.KindUpstreamUnavailable, "payment service returned malformed response", err)
	}
	if resp.StatusCode != http.StatusOK || wire.Error != "" || (wire.Success != nil && !*wire.Success) {
		msg := wire.Error
		if msg == "" {
			msg = fmt.Sprintf("payment service returned status %d", resp.StatusCode)
		}
		return nil, apperr.New(apperr.KindUpstreamUnavailable, msg)
	}

	return &Result{
		Success:       true,
		TransactionID: wire.TransactionID,
		Data:          wire.Data,
	}, nil
}
