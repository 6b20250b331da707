// Package payment creates Stripe hosted-checkout sessions. It talks to the
// Stripe REST API directly with form-encoded requests; there is no webhook
// handling and no idempotency key, a session create is a single best-effort
// call.
package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://api.stripe.com"
	requestTimeout = 30 * time.Second
)

// Client is a minimal Stripe Checkout client.
type Client struct {
	secretKey string
	baseURL   string
	client    *http.Client
}

func NewClient(secretKey string) *Client {
	return &Client{
		secretKey: secretKey,
		baseURL:   defaultBaseURL,
		client:    &http.Client{Timeout: requestTimeout},
	}
}

// LineItem is one checkout line in the processor's minor-unit currency.
type LineItem struct {
	Name       string
	UnitAmount int64 // USD cents
	Quantity   int
}

// SessionInput describes the hosted checkout session to create.
type SessionInput struct {
	LineItems  []LineItem
	SuccessURL string
	CancelURL  string
	UserID     string
}

type sessionResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type stripeError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// CreateCheckoutSession creates a card-payment checkout session and returns
// its hosted URL.
func (c *Client) CreateCheckoutSession(ctx context.Context, in SessionInput) (string, error) {
	if c.secretKey == "" {
		return "", errors.New("STRIPE_SECRET_KEY not set")
	}
	if len(in.LineItems) == 0 {
		return "", errors.New("no line items")
	}

	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("payment_method_types[0]", "card")
	form.Set("success_url", in.SuccessURL)
	form.Set("cancel_url", in.CancelURL)
	form.Set("metadata[user_id]", in.UserID)

	for i, item := range in.LineItems {
		prefix := fmt.Sprintf("line_items[%d]", i)
		form.Set(prefix+"[price_data][currency]", "usd")
		form.Set(prefix+"[price_data][product_data][name]", item.Name)
		form.Set(prefix+"[price_data][unit_amount]", strconv.FormatInt(item.UnitAmount, 10))
		form.Set(prefix+"[quantity]", strconv.Itoa(item.Quantity))
	}

	endpoint := c.baseURL + "/v1/checkout/sessions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.secretKey)
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("stripe request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read stripe response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr stripeError
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error.Message != "" {
			return "", fmt.Errorf("stripe error (%d): %s", resp.StatusCode, apiErr.Error.Message)
		}
		return "", fmt.Errorf("stripe error: status %d", resp.StatusCode)
	}

	var session sessionResponse
	if err := json.Unmarshal(respBody, &session); err != nil {
		return "", fmt.Errorf("failed to decode stripe response: %w", err)
	}
	if session.URL == "" {
		return "", errors.New("stripe session has no URL")
	}
	return session.URL, nil
}
