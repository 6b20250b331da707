package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(url string) *Client {
	c := NewClient("sk_test_123")
	c.baseURL = url
	return c
}

func sampleInput() SessionInput {
	return SessionInput{
		LineItems: []LineItem{
			{Name: "Tee", UnitAmount: 1000, Quantity: 2},
			{Name: "Hoodie", UnitAmount: 2500, Quantity: 1},
		},
		SuccessURL: "http://frontend.test/payment-success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:  "http://frontend.test/checkout",
		UserID:     "user-1",
	}
}

func TestCreateCheckoutSession(t *testing.T) {
	var form url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/checkout/sessions", r.URL.Path)
		assert.Equal(t, "Bearer sk_test_123", r.Header.Get("Authorization"))
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))

		require.NoError(t, r.ParseForm())
		form = r.PostForm

		json.NewEncoder(w).Encode(map[string]string{
			"id":  "cs_test_1",
			"url": "https://checkout.stripe.com/c/pay/cs_test_1",
		})
	}))
	defer srv.Close()

	got, err := newTestClient(srv.URL).CreateCheckoutSession(context.Background(), sampleInput())
	require.NoError(t, err)
	assert.Equal(t, "https://checkout.stripe.com/c/pay/cs_test_1", got)

	assert.Equal(t, "payment", form.Get("mode"))
	assert.Equal(t, "card", form.Get("payment_method_types[0]"))
	assert.Equal(t, "http://frontend.test/payment-success?session_id={CHECKOUT_SESSION_ID}", form.Get("success_url"))
	assert.Equal(t, "http://frontend.test/checkout", form.Get("cancel_url"))
	assert.Equal(t, "user-1", form.Get("metadata[user_id]"))

	assert.Equal(t, "usd", form.Get("line_items[0][price_data][currency]"))
	assert.Equal(t, "Tee", form.Get("line_items[0][price_data][product_data][name]"))
	assert.Equal(t, "1000", form.Get("line_items[0][price_data][unit_amount]"))
	assert.Equal(t, "2", form.Get("line_items[0][quantity]"))
	assert.Equal(t, "Hoodie", form.Get("line_items[1][price_data][product_data][name]"))
	assert.Equal(t, "2500", form.Get("line_items[1][price_data][unit_amount]"))
}

func TestCreateCheckoutSessionAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"message": "Your card was declined.", "type": "card_error"},
		})
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).CreateCheckoutSession(context.Background(), sampleInput())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Your card was declined.")
}

func TestCreateCheckoutSessionMissingURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"id": "cs_test_1"})
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).CreateCheckoutSession(context.Background(), sampleInput())
	assert.Error(t, err)
}

func TestCreateCheckoutSessionValidation(t *testing.T) {
	_, err := NewClient("").CreateCheckoutSession(context.Background(), sampleInput())
	assert.Error(t, err)

	_, err = NewClient("sk_test_123").CreateCheckoutSession(context.Background(), SessionInput{})
	assert.Error(t, err)
}
