// Package payment implements the hosted-checkout client for the payment
// provider.
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"storefront_backend/internal/feature/orders/usecase"
	platformhttp "storefront_backend/internal/platform/http"
	"storefront_backend/internal/shared/ratelimiter"
)

const maxRetries = 3

// CheckoutClient creates hosted checkout sessions against the provider's
// REST API. Transient 5xx responses are retried with a short backoff; 4xx
// responses fail immediately.
type CheckoutClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    ratelimiter.RateLimiterInterface
}

// NewCheckoutClient reads PAYMENT_API_URL and PAYMENT_API_KEY from the
// environment.
func NewCheckoutClient(limiter ratelimiter.RateLimiterInterface) (*CheckoutClient, error) {
	baseURL := os.Getenv("PAYMENT_API_URL")
	apiKey := os.Getenv("PAYMENT_API_KEY")
	if baseURL == "" || apiKey == "" {
		return nil, fmt.Errorf("PAYMENT_API_URL and PAYMENT_API_KEY must be set")
	}
	return &CheckoutClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: platformhttp.NewHTTPClient(30 * time.Second),
		limiter:    limiter,
	}, nil
}

type sessionLine struct {
	Name       string `json:"name"`
	UnitAmount int64  `json:"unit_amount"`
	Quantity   int    `json:"quantity"`
}

type sessionRequest struct {
	Reference     string        `json:"reference"`
	CustomerEmail string        `json:"customer_email"`
	LineItems     []sessionLine `json:"line_items"`
	SuccessURL    string        `json:"success_url"`
	CancelURL     string        `json:"cancel_url"`
}

type sessionResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// CreateSession opens a hosted checkout session for the given order lines.
func (c *CheckoutClient) CreateSession(ctx context.Context, req usecase.CheckoutRequest) (*usecase.CheckoutSession, error) {
	payload := sessionRequest{
		Reference:     req.Reference,
		CustomerEmail: req.CustomerEmail,
		SuccessURL:    req.SuccessURL,
		CancelURL:     req.CancelURL,
	}
	for _, line := range req.Lines {
		payload.LineItems = append(payload.LineItems, sessionLine(line))
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			slog.Warn("retrying checkout session request", "attempt", attempt+1, "reference", req.Reference)
			time.Sleep(time.Duration(attempt) * 100 * time.Millisecond)
		}
		c.limiter.WaitIfNeeded()

		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
			c.baseURL+"/v1/checkout/sessions", bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		httpReq.Header.Set("Content-Type", "application/json")
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

		resp, err := c.httpClient.Do(httpReq)
		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode >= 500 {
			resp.Body.Close()
			lastErr = fmt.Errorf("payment provider returned status %d", resp.StatusCode)
			continue
		}
		if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
			resp.Body.Close()
			return nil, fmt.Errorf("payment provider returned status %d", resp.StatusCode)
		}

		var result sessionResponse
		err = json.NewDecoder(resp.Body).Decode(&result)
		resp.Body.Close()
		if err != nil {
			return nil, err
		}
		if result.URL == "" {
			return nil, fmt.Errorf("payment provider returned no checkout url")
		}
		return &usecase.CheckoutSession{ID: result.ID, URL: result.URL}, nil
	}

	return nil, fmt.Errorf("checkout session failed after %d retries: %w", maxRetries, lastErr)
}

// Compile-time interface check
var _ usecase.CheckoutClient = (*CheckoutClient)(nil)
