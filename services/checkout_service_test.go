package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"shopfront/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCart struct {
	items []models.CartItem
	err   error
}

func (s *stubCart) Items(ctx context.Context, userID int) ([]models.CartItem, error) {
	return s.items, s.err
}

func (s *stubCart) TotalPrice(ctx context.Context, userID int) (float64, error) {
	total := 0.0
	for _, item := range s.items {
		total += item.LineTotal()
	}
	return total, s.err
}

type mockPayments struct {
	mu       sync.Mutex
	calls    int
	requests []*models.PaymentLinkRequest
	keys     []string

	shortURL string
	err      error

	// When set, CreatePaymentLink signals entered and blocks until release
	// is closed. Used to hold a submission in flight.
	entered chan struct{}
	release chan struct{}
}

func (m *mockPayments) CreatePaymentLink(ctx context.Context, req *models.PaymentLinkRequest, key string) (string, error) {
	m.mu.Lock()
	m.calls++
	m.requests = append(m.requests, req)
	m.keys = append(m.keys, key)
	m.mu.Unlock()

	if m.entered != nil {
		m.entered <- struct{}{}
		<-m.release
	}
	return m.shortURL, m.err
}

func (m *mockPayments) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

type mockOrders struct {
	mu      sync.Mutex
	calls   int
	userID  int
	items   []models.CartItem
	pricing models.PricingBreakdown
	err     error
}

func (m *mockOrders) CreateFromCheckout(ctx context.Context, userID int, form *models.ShippingForm,
	items []models.CartItem, pricing models.PricingBreakdown) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.userID = userID
	m.items = items
	m.pricing = pricing
	if m.err != nil {
		return nil, m.err
	}
	return &models.Order{
		OrderNumber: "ORD-TEST",
		Email:       form.Email,
		FullName:    form.FirstName + " " + form.LastName,
		Total:       pricing.Total,
	}, nil
}

func validForm() *models.ShippingForm {
	return &models.ShippingForm{
		Email:      "jane@example.com",
		FirstName:  "Jane",
		LastName:   "Doe",
		Phone:      "+1 555 0100",
		Address1:   "1 Main St",
		Address2:   "Apt 4B",
		City:       "Springfield",
		State:      "IL",
		PostalCode: "62701",
		Country:    "US",
	}
}

func testCartItems() []models.CartItem {
	return []models.CartItem{
		{ID: 1, ProductID: 10, Name: "Mug", Price: 12.50, Quantity: 2},
		{ID: 2, ProductID: 11, Name: "Tote", Price: 25.00, Quantity: 1},
	}
}

func newTestService(cart CartReader, payments PaymentLinkCreator, orders OrderRecorder) *CheckoutService {
	return NewCheckoutService(cart, testRules(), payments, orders, nil)
}

func TestSubmitSuccessReturnsPaymentLink(t *testing.T) {
	payments := &mockPayments{shortURL: "https://pay.example/abc"}
	svc := newTestService(&stubCart{items: testCartItems()}, payments, nil)

	shortURL, err := svc.Submit(context.Background(), 1, validForm())

	require.NoError(t, err)
	assert.Equal(t, "https://pay.example/abc", shortURL)
	assert.Equal(t, 1, payments.callCount())
	assert.Equal(t, models.CheckoutStateIdle, svc.State(1))
}

func TestSubmitBuildsPaymentRequestFromFormAndCart(t *testing.T) {
	payments := &mockPayments{shortURL: "https://pay.example/abc"}
	svc := newTestService(&stubCart{items: testCartItems()}, payments, nil)

	_, err := svc.Submit(context.Background(), 1, validForm())
	require.NoError(t, err)

	require.Len(t, payments.requests, 1)
	req := payments.requests[0]

	// subtotal 50, shipping 10, 8% tax 4
	assert.Equal(t, 64.0, req.TotalAmount)
	assert.Len(t, req.CartItems, 2)
	assert.Equal(t, "Jane Doe", req.UserName)
	assert.Equal(t, "jane@example.com", req.UserEmail)
	assert.Equal(t, "+1 555 0100", req.UserPhone)
	assert.Equal(t, "1 Main St", req.ShippingAddress.Address1)
	assert.Equal(t, "Apt 4B", req.ShippingAddress.Address2)
	assert.Equal(t, "62701", req.ShippingAddress.PostalCode)
}

func TestSubmitValidationErrorSkipsPayment(t *testing.T) {
	payments := &mockPayments{shortURL: "https://pay.example/abc"}
	svc := newTestService(&stubCart{items: testCartItems()}, payments, nil)

	form := validForm()
	form.FirstName = ""

	_, err := svc.Submit(context.Background(), 1, form)

	var vErr *models.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "firstName", vErr.Field)
	assert.Equal(t, "first name is required", vErr.Error())
	assert.Equal(t, 0, payments.callCount())

	// A failed validation leaves no pending submission behind.
	assert.Equal(t, models.CheckoutStateIdle, svc.State(1))
}

func TestSubmitEmptyCartSkipsPayment(t *testing.T) {
	payments := &mockPayments{shortURL: "https://pay.example/abc"}
	svc := newTestService(&stubCart{}, payments, nil)

	_, err := svc.Submit(context.Background(), 1, validForm())

	assert.ErrorIs(t, err, ErrCartEmpty)
	assert.Equal(t, 0, payments.callCount())
}

func TestSubmitPaymentFailureAllowsResubmission(t *testing.T) {
	payments := &mockPayments{err: errors.New("connection refused")}
	svc := newTestService(&stubCart{items: testCartItems()}, payments, nil)

	_, err := svc.Submit(context.Background(), 1, validForm())

	var payErr *PaymentError
	require.ErrorAs(t, err, &payErr)
	assert.Equal(t, models.CheckoutStateFailed, svc.State(1))

	// The next attempt goes through once the upstream recovers.
	payments.err = nil
	payments.shortURL = "https://pay.example/retry"

	shortURL, err := svc.Submit(context.Background(), 1, validForm())
	require.NoError(t, err)
	assert.Equal(t, "https://pay.example/retry", shortURL)
	assert.Equal(t, 2, payments.callCount())
}

func TestSubmitRejectsConcurrentDuplicate(t *testing.T) {
	payments := &mockPayments{
		shortURL: "https://pay.example/abc",
		entered:  make(chan struct{}, 1),
		release:  make(chan struct{}),
	}
	svc := newTestService(&stubCart{items: testCartItems()}, payments, nil)

	done := make(chan error, 1)
	go func() {
		_, err := svc.Submit(context.Background(), 1, validForm())
		done <- err
	}()

	// Wait until the first submission is inside the payment call.
	select {
	case <-payments.entered:
	case <-time.After(time.Second):
		t.Fatal("first submission never reached the payment client")
	}

	_, err := svc.Submit(context.Background(), 1, validForm())
	assert.ErrorIs(t, err, ErrSubmissionInFlight)

	close(payments.release)
	require.NoError(t, <-done)

	// Only the first attempt produced a payment call.
	assert.Equal(t, 1, payments.callCount())
}

func TestSubmitUsesFreshIdempotencyKeyPerAttempt(t *testing.T) {
	payments := &mockPayments{shortURL: "https://pay.example/abc"}
	svc := newTestService(&stubCart{items: testCartItems()}, payments, nil)

	_, err := svc.Submit(context.Background(), 1, validForm())
	require.NoError(t, err)
	_, err = svc.Submit(context.Background(), 1, validForm())
	require.NoError(t, err)

	require.Len(t, payments.keys, 2)
	assert.NotEmpty(t, payments.keys[0])
	assert.NotEqual(t, payments.keys[0], payments.keys[1])
}

func TestSubmitRecordsOrderAfterPaymentLink(t *testing.T) {
	payments := &mockPayments{shortURL: "https://pay.example/abc"}
	orders := &mockOrders{}
	svc := newTestService(&stubCart{items: testCartItems()}, payments, orders)

	_, err := svc.Submit(context.Background(), 7, validForm())
	require.NoError(t, err)

	assert.Equal(t, 1, orders.calls)
	assert.Equal(t, 7, orders.userID)
	assert.Equal(t, 64.0, orders.pricing.Total)

	require.Len(t, orders.items, 2)
	for _, item := range orders.items {
		assert.NotEmpty(t, item.Name)
	}
}

func TestSubmitOrderRecordingFailureDoesNotBlockRedirect(t *testing.T) {
	payments := &mockPayments{shortURL: "https://pay.example/abc"}
	orders := &mockOrders{err: errors.New("db down")}
	svc := newTestService(&stubCart{items: testCartItems()}, payments, orders)

	shortURL, err := svc.Submit(context.Background(), 1, validForm())

	require.NoError(t, err)
	assert.Equal(t, "https://pay.example/abc", shortURL)
}

func TestSubmitNoOrderRecorderDoesNotRecord(t *testing.T) {
	payments := &mockPayments{err: errors.New("timeout")}
	orders := &mockOrders{}
	svc := newTestService(&stubCart{items: testCartItems()}, payments, orders)

	_, err := svc.Submit(context.Background(), 1, validForm())
	require.Error(t, err)

	// Nothing to record when no payment link was produced.
	assert.Equal(t, 0, orders.calls)
}

func TestSummaryBuildsDisplayFields(t *testing.T) {
	svc := newTestService(&stubCart{items: testCartItems()}, &mockPayments{}, nil)

	summary, err := svc.Summary(context.Background(), 1)
	require.NoError(t, err)

	assert.Len(t, summary.Items, 2)
	assert.Equal(t, 25.0, summary.Items[0].LineTotal)
	assert.Equal(t, 64.0, summary.Pricing.Total)
	assert.Equal(t, "$10.00", summary.ShippingDisplay)
	assert.Equal(t, "$64.00", summary.TotalDisplay)
	assert.Equal(t, models.CheckoutStateIdle, summary.State)
	assert.Equal(t, models.RequiredFields(), summary.RequiredFields)
	assert.True(t, summary.CanSubmit)
}

func TestSummaryCanSubmitFalseWhileInFlight(t *testing.T) {
	payments := &mockPayments{
		shortURL: "https://pay.example/abc",
		entered:  make(chan struct{}, 1),
		release:  make(chan struct{}),
	}
	svc := newTestService(&stubCart{items: testCartItems()}, payments, nil)

	done := make(chan error, 1)
	go func() {
		_, err := svc.Submit(context.Background(), 1, validForm())
		done <- err
	}()

	select {
	case <-payments.entered:
	case <-time.After(time.Second):
		t.Fatal("submission never reached the payment client")
	}

	summary, err := svc.Summary(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, models.CheckoutStateSubmitting, summary.State)
	assert.False(t, summary.CanSubmit)

	close(payments.release)
	require.NoError(t, <-done)

	summary, err = svc.Summary(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, summary.CanSubmit)
}

func TestSummaryFreeShippingDisplay(t *testing.T) {
	items := []models.CartItem{{ID: 1, Price: 150, Quantity: 1}}
	svc := newTestService(&stubCart{items: items}, &mockPayments{}, nil)

	summary, err := svc.Summary(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, 0.0, summary.Pricing.Shipping)
	assert.Equal(t, "Free", summary.ShippingDisplay)
}

func TestSummaryEmptyCart(t *testing.T) {
	svc := newTestService(&stubCart{}, &mockPayments{}, nil)

	_, err := svc.Summary(context.Background(), 1)
	assert.ErrorIs(t, err, ErrCartEmpty)
}

func TestStateDefaultsToIdle(t *testing.T) {
	svc := newTestService(&stubCart{}, &mockPayments{}, nil)
	assert.Equal(t, models.CheckoutStateIdle, svc.State(99))
}
