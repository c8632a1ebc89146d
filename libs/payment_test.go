package libs

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"shopfront/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paymentRequest() *models.PaymentLinkRequest {
	return &models.PaymentLinkRequest{
		TotalAmount: 64.0,
		CartItems: []models.CartItem{
			{ID: 1, ProductID: 10, Name: "Mug", Price: 12.50, Quantity: 2},
		},
		UserName:  "Jane Doe",
		UserEmail: "jane@example.com",
		UserPhone: "+1 555 0100",
		ShippingAddress: models.ShippingAddress{
			Address1:   "1 Main St",
			City:       "Springfield",
			State:      "IL",
			PostalCode: "62701",
			Country:    "US",
		},
	}
}

func TestCreatePaymentLink(t *testing.T) {
	var gotPath, gotContentType, gotKey string
	var gotBody map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		gotKey = r.Header.Get("X-Idempotency-Key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"paymentLink":{"short_url":"https://pay.example/abc"}}`))
	}))
	defer server.Close()

	client := NewPaymentLinkClient(server.URL, 5*time.Second)
	shortURL, err := client.CreatePaymentLink(context.Background(), paymentRequest(), "key-123")

	require.NoError(t, err)
	assert.Equal(t, "https://pay.example/abc", shortURL)
	assert.Equal(t, "/api/payment-link", gotPath)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "key-123", gotKey)

	assert.Equal(t, 64.0, gotBody["totalAmount"])
	assert.Equal(t, "Jane Doe", gotBody["userName"])
	assert.Equal(t, "jane@example.com", gotBody["userEmail"])
	address, ok := gotBody["shippingAddress"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "62701", address["postalCode"])
}

func TestCreatePaymentLinkUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewPaymentLinkClient(server.URL, 5*time.Second)
	_, err := client.CreatePaymentLink(context.Background(), paymentRequest(), "key-123")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestCreatePaymentLinkMissingShortURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"paymentLink":{}}`))
	}))
	defer server.Close()

	client := NewPaymentLinkClient(server.URL, 5*time.Second)
	_, err := client.CreatePaymentLink(context.Background(), paymentRequest(), "key-123")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "short_url")
}

func TestCreatePaymentLinkContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
	}))
	defer server.Close()

	client := NewPaymentLinkClient(server.URL, 5*time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.CreatePaymentLink(ctx, paymentRequest(), "key-123")
	assert.Error(t, err)
}
