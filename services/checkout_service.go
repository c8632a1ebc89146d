package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"

	"shopfront/models"
	"shopfront/utils"

	"github.com/google/uuid"
)

// CartReader is the read-only view of cart state the checkout flow consumes.
// Cart state is owned by a longer-lived provider; checkout never writes it.
type CartReader interface {
	Items(ctx context.Context, userID int) ([]models.CartItem, error)
	TotalPrice(ctx context.Context, userID int) (float64, error)
}

// PaymentLinkCreator issues the one-shot payment link exchange with the
// remote commerce API.
type PaymentLinkCreator interface {
	CreatePaymentLink(ctx context.Context, req *models.PaymentLinkRequest, idempotencyKey string) (string, error)
}

// OrderRecorder persists the pending order before the redirect. Optional:
// checkout still completes when recording fails.
type OrderRecorder interface {
	CreateFromCheckout(ctx context.Context, userID int, form *models.ShippingForm,
		items []models.CartItem, pricing models.PricingBreakdown) (*models.Order, error)
}

// ConfirmationMailer sends the order confirmation. Optional and best-effort.
type ConfirmationMailer interface {
	SendOrderConfirmationEmail(toEmail, name, orderNumber, totalDisplay string) error
}

var (
	// ErrCartEmpty signals the zero-subtotal guard: the caller must send
	// the user back to the cart page instead of showing an error.
	ErrCartEmpty = errors.New("cart is empty")

	// ErrSubmissionInFlight rejects a second submit while one is pending,
	// so rapid repeated triggers cannot produce duplicate payment links.
	ErrSubmissionInFlight = errors.New("a checkout submission is already in progress")
)

// PaymentError wraps any failure of the payment-link exchange: connectivity,
// non-success status, or a malformed response. The user-visible message is
// the same generic one for all causes.
type PaymentError struct {
	Err error
}

func (e *PaymentError) Error() string {
	return "payment link request failed: " + e.Err.Error()
}

func (e *PaymentError) Unwrap() error {
	return e.Err
}

// CheckoutService orchestrates the checkout flow: form validation, the
// empty-cart guard, pricing, and the payment handoff. All collaborators are
// injected; the service holds no ambient state beyond per-user submission
// tracking.
type CheckoutService struct {
	cart     CartReader
	pricing  *PricingRules
	payments PaymentLinkCreator
	orders   OrderRecorder
	mailer   ConfirmationMailer

	mu     sync.Mutex
	states map[int]models.CheckoutState
}

func NewCheckoutService(cart CartReader, pricing *PricingRules, payments PaymentLinkCreator,
	orders OrderRecorder, mailer ConfirmationMailer) *CheckoutService {
	return &CheckoutService{
		cart:     cart,
		pricing:  pricing,
		payments: payments,
		orders:   orders,
		mailer:   mailer,
		states:   make(map[int]models.CheckoutState),
	}
}

// State reports the user's current submission state. Users with no pending
// submission are Idle.
func (s *CheckoutService) State(userID int) models.CheckoutState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if state, ok := s.states[userID]; ok {
		return state
	}
	return models.CheckoutStateIdle
}

// transition applies a state change if it is legal, holding the lock so two
// concurrent submits cannot both enter Submitting.
func (s *CheckoutService) transition(userID int, next models.CheckoutState) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.states[userID]
	if !ok {
		current = models.CheckoutStateIdle
	}
	if !current.CanTransitionTo(next) {
		return false
	}
	if next == models.CheckoutStateIdle {
		delete(s.states, userID)
	} else {
		s.states[userID] = next
	}
	return true
}

// Summary builds the checkout page's order summary from the live cart.
// Returns ErrCartEmpty when the subtotal is exactly zero so the caller can
// redirect away from checkout.
func (s *CheckoutService) Summary(ctx context.Context, userID int) (*models.CheckoutSummary, error) {
	items, err := s.cart.Items(ctx, userID)
	if err != nil {
		return nil, err
	}

	subtotal := 0.0
	for _, item := range items {
		subtotal += item.LineTotal()
	}
	if subtotal == 0 {
		return nil, ErrCartEmpty
	}

	pricing := s.pricing.Calculate(subtotal)

	summaryItems := make([]models.CheckoutSummaryItem, len(items))
	for i, item := range items {
		summaryItems[i] = models.CheckoutSummaryItem{
			CartItem:         item,
			LineTotal:        item.LineTotal(),
			LineTotalDisplay: utils.FormatPrice(item.LineTotal()),
		}
	}

	state := s.State(userID)
	return &models.CheckoutSummary{
		Items:           summaryItems,
		Pricing:         pricing,
		ShippingDisplay: utils.FormatShipping(pricing.Shipping),
		TotalDisplay:    utils.FormatPrice(pricing.Total),
		RequiredFields:  models.RequiredFields(),
		State:           state,
		CanSubmit:       state.CanTransitionTo(models.CheckoutStateSubmitting),
	}, nil
}

// Submit runs one submission attempt: validate, guard, price, hand off.
// On success it returns the payment link URL for the caller to redirect to.
// Every failure resets to a resubmittable state; resubmission is always a
// fresh, user-initiated attempt.
func (s *CheckoutService) Submit(ctx context.Context, userID int, form *models.ShippingForm) (string, error) {
	if err := form.Validate(); err != nil {
		return "", err
	}

	if !s.transition(userID, models.CheckoutStateSubmitting) {
		return "", ErrSubmissionInFlight
	}

	shortURL, err := s.submit(ctx, userID, form)
	if err != nil {
		s.transition(userID, models.CheckoutStateFailed)
		return "", err
	}

	// Terminal for the page: the browser is about to navigate away.
	s.transition(userID, models.CheckoutStateRedirecting)
	s.transition(userID, models.CheckoutStateIdle)
	return shortURL, nil
}

func (s *CheckoutService) submit(ctx context.Context, userID int, form *models.ShippingForm) (string, error) {
	items, err := s.cart.Items(ctx, userID)
	if err != nil {
		return "", err
	}

	subtotal := 0.0
	for _, item := range items {
		subtotal += item.LineTotal()
	}
	if subtotal == 0 {
		return "", ErrCartEmpty
	}

	pricing := s.pricing.Calculate(subtotal)

	req := &models.PaymentLinkRequest{
		TotalAmount: pricing.Total,
		CartItems:   items,
		UserName:    strings.TrimSpace(form.FirstName + " " + form.LastName),
		UserEmail:   form.Email,
		UserPhone:   form.Phone,
		ShippingAddress: models.ShippingAddress{
			Address1:   form.Address1,
			Address2:   form.Address2,
			City:       form.City,
			State:      form.State,
			PostalCode: form.PostalCode,
			Country:    form.Country,
		},
	}

	shortURL, err := s.payments.CreatePaymentLink(ctx, req, uuid.NewString())
	if err != nil {
		return "", &PaymentError{Err: err}
	}

	s.recordOrder(ctx, userID, form, items, pricing)
	return shortURL, nil
}

// recordOrder persists the pending order and triggers the confirmation
// email. The payment link already exists at this point, so failures here are
// logged, not surfaced: the user still gets redirected.
func (s *CheckoutService) recordOrder(ctx context.Context, userID int, form *models.ShippingForm,
	items []models.CartItem, pricing models.PricingBreakdown) {
	if s.orders == nil {
		return
	}

	order, err := s.orders.CreateFromCheckout(ctx, userID, form, items, pricing)
	if err != nil {
		log.Printf("checkout: failed to record order for user %d: %v", userID, err)
		return
	}

	if s.mailer != nil {
		go func() {
			if err := s.mailer.SendOrderConfirmationEmail(
				order.Email, order.FullName, order.OrderNumber,
				utils.FormatPrice(order.Total)); err != nil {
				log.Printf("checkout: confirmation email for order %s failed: %v", order.OrderNumber, err)
			}
		}()
	}
}
