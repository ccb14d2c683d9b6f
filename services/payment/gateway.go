package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Order is a payment intent created with the external gateway.
type Order struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// Gateway is the injected client for the external payment gateway. It is
// constructed explicitly and passed into the payment service so tests can
// substitute a fake.
type Gateway interface {
	CreateOrder(ctx context.Context, amount int64, currency, receipt string, notes map[string]string) (*Order, error)
	Refund(ctx context.Context, gatewayPaymentID string, amount int64, notes map[string]string) (string, error)
}

// HTTPGateway talks to the order/callback gateway over its REST API using
// key-id/secret basic auth.
type HTTPGateway struct {
	BaseURL string
	KeyID   string
	Secret  string
	Client  *http.Client
}

// NewHTTPGateway creates a gateway client with a bounded request timeout.
func NewHTTPGateway(baseURL, keyID, secret string) *HTTPGateway {
	return &HTTPGateway{
		BaseURL: baseURL,
		KeyID:   keyID,
		Secret:  secret,
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type createOrderRequest struct {
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Notes    map[string]string `json:"notes,omitempty"`
}

type refundRequest struct {
	Amount int64             `json:"amount"`
	Notes  map[string]string `json:"notes,omitempty"`
}

type refundResponse struct {
	ID string `json:"id"`
}

// CreateOrder creates a payment order for the given amount in minor units.
func (g *HTTPGateway) CreateOrder(ctx context.Context, amount int64, currency, receipt string, notes map[string]string) (*Order, error) {
	var order Order
	err := g.post(ctx, "/v1/orders", createOrderRequest{
		Amount:   amount,
		Currency: currency,
		Receipt:  receipt,
		Notes:    notes,
	}, &order)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// Refund executes a refund against a captured gateway payment.
func (g *HTTPGateway) Refund(ctx context.Context, gatewayPaymentID string, amount int64, notes map[string]string) (string, error) {
	var resp refundResponse
	path := fmt.Sprintf("/v1/payments/%s/refund", gatewayPaymentID)
	if err := g.post(ctx, path, refundRequest{Amount: amount, Notes: notes}, &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}

func (g *HTTPGateway) post(ctx context.Context, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding gateway request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("building gateway request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(g.KeyID, g.Secret)

	resp, err := g.Client.Do(req)
	if err != nil {
		return fmt.Errorf("calling gateway: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("gateway returned status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding gateway response: %w", err)
	}
	return nil
}
