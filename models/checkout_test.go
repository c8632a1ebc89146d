package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completeForm() *ShippingForm {
	return &ShippingForm{
		Email:      "jane@example.com",
		FirstName:  "Jane",
		LastName:   "Doe",
		Phone:      "+1 555 0100",
		Address1:   "1 Main St",
		City:       "Springfield",
		State:      "IL",
		PostalCode: "62701",
		Country:    "US",
	}
}

func TestShippingFormValidateComplete(t *testing.T) {
	form := completeForm()
	assert.NoError(t, form.Validate())
	assert.True(t, form.IsComplete())
}

func TestShippingFormValidateReportsFirstMissingField(t *testing.T) {
	form := completeForm()
	form.Phone = ""
	form.City = ""

	err := form.Validate()
	require.Error(t, err)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "phone", vErr.Field)
	assert.Equal(t, "phone is required", vErr.Error())
}

func TestShippingFormValidateEachRequiredField(t *testing.T) {
	for _, name := range RequiredFields() {
		form := completeForm()
		form.SetField(name, "")

		err := form.Validate()
		require.Error(t, err, "field %s", name)

		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, name, vErr.Field)
	}
}

func TestShippingFormWhitespaceOnlyIsEmpty(t *testing.T) {
	form := completeForm()
	form.PostalCode = "   "

	err := form.Validate()
	require.Error(t, err)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "postalCode", vErr.Field)
	assert.False(t, form.IsComplete())
}

func TestShippingFormAddress2Optional(t *testing.T) {
	form := completeForm()
	form.Address2 = ""
	assert.NoError(t, form.Validate())

	form.Address2 = "Apt 4B"
	assert.NoError(t, form.Validate())
}

func TestShippingFormSetFieldRoundTrip(t *testing.T) {
	form := &ShippingForm{}
	form.SetField("firstName", "Jane")
	form.SetField("address2", "Apt 4B")
	form.SetField("unknown", "ignored")

	assert.Equal(t, "Jane", form.FirstName)
	assert.Equal(t, "Jane", form.Field("firstName"))
	assert.Equal(t, "Apt 4B", form.Field("address2"))
	assert.Equal(t, "", form.Field("unknown"))
}

func TestHumanizeField(t *testing.T) {
	assert.Equal(t, "first name", HumanizeField("firstName"))
	assert.Equal(t, "last name", HumanizeField("lastName"))
	assert.Equal(t, "postal code", HumanizeField("postalCode"))
	assert.Equal(t, "email", HumanizeField("email"))
	assert.Equal(t, "address1", HumanizeField("address1"))
}

func TestCheckoutStateTransitions(t *testing.T) {
	cases := []struct {
		from    CheckoutState
		to      CheckoutState
		allowed bool
	}{
		{CheckoutStateIdle, CheckoutStateSubmitting, true},
		{CheckoutStateIdle, CheckoutStateRedirecting, false},
		{CheckoutStateIdle, CheckoutStateFailed, false},
		{CheckoutStateSubmitting, CheckoutStateRedirecting, true},
		{CheckoutStateSubmitting, CheckoutStateFailed, true},
		{CheckoutStateSubmitting, CheckoutStateSubmitting, false},
		{CheckoutStateSubmitting, CheckoutStateIdle, false},
		{CheckoutStateFailed, CheckoutStateSubmitting, true},
		{CheckoutStateFailed, CheckoutStateRedirecting, false},
		{CheckoutStateFailed, CheckoutStateIdle, false},
		{CheckoutStateRedirecting, CheckoutStateIdle, true},
		{CheckoutStateRedirecting, CheckoutStateSubmitting, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestCartItemLineTotal(t *testing.T) {
	item := CartItem{Price: 19.99, Quantity: 3}
	assert.InDelta(t, 59.97, item.LineTotal(), 0.0001)
}
