// Package mailer sends transactional email through the mail delivery
// service's template API.
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"storefront_backend/internal/feature/auth/usecase"
	platformhttp "storefront_backend/internal/platform/http"
)

// Client posts templated emails to the mail delivery service.
type Client struct {
	baseURL    string
	apiKey     string
	fromEmail  string
	resetURL   string
	httpClient *http.Client
}

// NewClient reads MAIL_API_URL, MAIL_API_KEY, MAIL_FROM and
// PASSWORD_RESET_URL from the environment.
func NewClient() (*Client, error) {
	baseURL := os.Getenv("MAIL_API_URL")
	apiKey := os.Getenv("MAIL_API_KEY")
	if baseURL == "" || apiKey == "" {
		return nil, fmt.Errorf("MAIL_API_URL and MAIL_API_KEY must be set")
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		fromEmail:  os.Getenv("MAIL_FROM"),
		resetURL:   os.Getenv("PASSWORD_RESET_URL"),
		httpClient: platformhttp.NewHTTPClient(10 * time.Second),
	}, nil
}

type emailRequest struct {
	From     string            `json:"from"`
	To       string            `json:"to"`
	Template string            `json:"template"`
	Data     map[string]string `json:"data"`
}

// SendWelcome sends the post-signup welcome email.
func (c *Client) SendWelcome(ctx context.Context, email, firstName string) error {
	return c.send(ctx, emailRequest{
		From:     c.fromEmail,
		To:       email,
		Template: "welcome",
		Data:     map[string]string{"firstName": firstName},
	})
}

// SendPasswordReset sends the reset link containing the one-time token.
func (c *Client) SendPasswordReset(ctx context.Context, email, firstName, token string) error {
	return c.send(ctx, emailRequest{
		From:     c.fromEmail,
		To:       email,
		Template: "password-reset",
		Data: map[string]string{
			"firstName": firstName,
			"resetLink": c.resetURL + "?token=" + token,
		},
	})
}

func (c *Client) send(ctx context.Context, req emailRequest) error {
	body, err := json.Marshal(req)
	if err != nil {
		return err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/emails", bytes.NewReader(body))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		return fmt.Errorf("mail service returned status %d", resp.StatusCode)
	}
	return nil
}

// Compile-time interface check
var _ usecase.Mailer = (*Client)(nil)
