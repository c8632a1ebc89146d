package models

import (
	"fmt"
	"strings"
	"unicode"
)

// ShippingForm holds the contact and shipping address fields collected on the
// checkout page. Values are stored exactly as submitted; trimming happens only
// at validation time. Field names match the storefront client's payload.
type ShippingForm struct {
	Email      string `json:"email"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Phone      string `json:"phone"`
	Address1   string `json:"address1"`
	Address2   string `json:"address2"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// requiredFields lists every field that must be non-empty before submission,
// in the order they are reported. address2 is the only optional field.
var requiredFields = []string{
	"email", "firstName", "lastName", "phone",
	"address1", "city", "state", "postalCode", "country",
}

// RequiredFields returns the ordered list of required field names.
func RequiredFields() []string {
	out := make([]string, len(requiredFields))
	copy(out, requiredFields)
	return out
}

func (f *ShippingForm) Field(name string) string {
	switch name {
	case "email":
		return f.Email
	case "firstName":
		return f.FirstName
	case "lastName":
		return f.LastName
	case "phone":
		return f.Phone
	case "address1":
		return f.Address1
	case "address2":
		return f.Address2
	case "city":
		return f.City
	case "state":
		return f.State
	case "postalCode":
		return f.PostalCode
	case "country":
		return f.Country
	}
	return ""
}

// SetField replaces a single field's value and leaves all others unchanged.
// Unknown names are ignored. No normalization is applied on input.
func (f *ShippingForm) SetField(name, value string) {
	switch name {
	case "email":
		f.Email = value
	case "firstName":
		f.FirstName = value
	case "lastName":
		f.LastName = value
	case "phone":
		f.Phone = value
	case "address1":
		f.Address1 = value
	case "address2":
		f.Address2 = value
	case "city":
		f.City = value
	case "state":
		f.State = value
	case "postalCode":
		f.PostalCode = value
	case "country":
		f.Country = value
	}
}

// Validate checks every required field in order and fails on the first one
// that is empty after trimming. All-or-nothing: one submission attempt
// reports one missing field, not an aggregate list.
func (f *ShippingForm) Validate() error {
	for _, name := range requiredFields {
		if strings.TrimSpace(f.Field(name)) == "" {
			return &ValidationError{Field: name}
		}
	}
	return nil
}

// IsComplete is true iff every required field is non-empty after trimming.
// It gates the submit control independently of Validate.
func (f *ShippingForm) IsComplete() bool {
	return f.Validate() == nil
}

// ValidationError names the first required field found empty at submit time.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s is required", HumanizeField(e.Field))
}

// HumanizeField turns a camelCase field identifier into the label shown to
// the user: a space before each capital letter, then lower-cased.
// "firstName" becomes "first name".
func HumanizeField(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsUpper(r) {
			b.WriteByte(' ')
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// CheckoutState tracks one user's submission through the payment handoff.
type CheckoutState string

const (
	CheckoutStateIdle        CheckoutState = "IDLE"
	CheckoutStateSubmitting  CheckoutState = "SUBMITTING"
	CheckoutStateRedirecting CheckoutState = "REDIRECTING"
	CheckoutStateFailed      CheckoutState = "FAILED"
)

// CanTransitionTo reports whether moving to next is a legal transition.
// Failed returns to Submitting only through a fresh user resubmission;
// Redirecting is terminal for the page and resets to Idle.
func (s CheckoutState) CanTransitionTo(next CheckoutState) bool {
	switch s {
	case CheckoutStateIdle, CheckoutStateFailed:
		return next == CheckoutStateSubmitting
	case CheckoutStateSubmitting:
		return next == CheckoutStateRedirecting || next == CheckoutStateFailed
	case CheckoutStateRedirecting:
		return next == CheckoutStateIdle
	}
	return false
}

func (s CheckoutState) String() string {
	return string(s)
}

// PricingBreakdown is derived from the live subtotal on every request and
// never stored. Total is always Subtotal + Shipping + Tax.
type PricingBreakdown struct {
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// ShippingAddress is the nested address record of a payment-link request.
type ShippingAddress struct {
	Address1   string `json:"address1"`
	Address2   string `json:"address2"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// PaymentLinkRequest is the one-shot payload sent to the commerce API.
type PaymentLinkRequest struct {
	TotalAmount     float64         `json:"totalAmount"`
	CartItems       []CartItem      `json:"cartItems"`
	UserName        string          `json:"userName"`
	UserEmail       string          `json:"userEmail"`
	UserPhone       string          `json:"userPhone"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
}

// PaymentLinkResponse carries the opaque short URL the browser is sent to.
type PaymentLinkResponse struct {
	PaymentLink struct {
		ShortURL string `json:"short_url"`
	} `json:"paymentLink"`
}

// CheckoutSummaryItem is one cart line on the order summary.
type CheckoutSummaryItem struct {
	CartItem
	LineTotal        float64 `json:"line_total"`
	LineTotalDisplay string  `json:"line_total_display"`
}

// CheckoutSummary is the read path of the checkout page: the cart snapshot
// plus the pricing breakdown, formatted for display.
type CheckoutSummary struct {
	Items           []CheckoutSummaryItem `json:"items"`
	Pricing         PricingBreakdown      `json:"pricing"`
	ShippingDisplay string                `json:"shipping_display"`
	TotalDisplay    string                `json:"total_display"`
	RequiredFields  []string              `json:"required_fields"`
	State           CheckoutState         `json:"state"`

	// CanSubmit is the server half of the submit gate: false while a
	// submission is in flight. Form completeness is the client's half.
	CanSubmit bool `json:"can_submit"`
}

// Notification is a transient user-visible message with a severity.
type Notification struct {
	Severity    string `json:"severity"`
	Title       string `json:"title"`
	Description string `json:"description"`
}
