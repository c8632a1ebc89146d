package repositories

import (
	"testing"

	"shopfront/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderItemsFromCartCarriesNameAndPrice(t *testing.T) {
	items := orderItemsFromCart([]models.CartItem{
		{ID: 1, ProductID: 10, Name: "Mug", Price: 12.50, Quantity: 2},
		{ID: 2, ProductID: 11, Name: "Tote", Price: 25.00, Quantity: 1},
	})

	require.Len(t, items, 2)

	// Every snapshotted line must have a non-empty name: order_items.name
	// is NOT NULL, and the recorded order keeps the name the customer saw.
	for _, item := range items {
		assert.NotEmpty(t, item.ProductName)
	}

	assert.Equal(t, 10, items[0].ProductID)
	assert.Equal(t, "Mug", items[0].ProductName)
	assert.Equal(t, 12.50, items[0].Price)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, "Tote", items[1].ProductName)
}

func TestOrderItemsFromCartEmpty(t *testing.T) {
	assert.Empty(t, orderItemsFromCart(nil))
}

func TestFormatAddress(t *testing.T) {
	form := &models.ShippingForm{
		Address1:   "1 Main St",
		Address2:   "Apt 4B",
		City:       "Springfield",
		State:      "IL",
		PostalCode: "62701",
		Country:    "US",
	}
	assert.Equal(t, "1 Main St, Apt 4B, Springfield, IL, 62701, US", formatAddress(form))

	form.Address2 = "  "
	assert.Equal(t, "1 Main St, Springfield, IL, 62701, US", formatAddress(form))
}
