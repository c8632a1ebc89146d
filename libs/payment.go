package libs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"shopfront/models"
)

// PaymentLinkClient talks to the remote commerce API that issues payment
// links. The exchange is one-shot: a single POST, no retries here; a failed
// attempt is retried only by the user resubmitting the checkout form.
type PaymentLinkClient struct {
	baseURL string
	client  *http.Client
}

func NewPaymentLinkClient(baseURL string, timeout time.Duration) *PaymentLinkClient {
	return &PaymentLinkClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// CreatePaymentLink submits the order details and returns the externally
// hosted payment URL. idempotencyKey guards the remote side against
// duplicate submissions of the same attempt.
func (p *PaymentLinkClient) CreatePaymentLink(ctx context.Context, req *models.PaymentLinkRequest, idempotencyKey string) (string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to encode payment link request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.baseURL+"/api/payment-link", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if idempotencyKey != "" {
		httpReq.Header.Set("X-Idempotency-Key", idempotencyKey)
	}

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("payment link request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("payment link request returned status %d", resp.StatusCode)
	}

	var linkResp models.PaymentLinkResponse
	if err := json.NewDecoder(resp.Body).Decode(&linkResp); err != nil {
		return "", fmt.Errorf("failed to decode payment link response: %w", err)
	}

	if linkResp.PaymentLink.ShortURL == "" {
		return "", fmt.Errorf("payment link response missing short_url")
	}

	return linkResp.PaymentLink.ShortURL, nil
}
