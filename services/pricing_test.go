package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testRules() *PricingRules {
	return NewPricingRules(10, 100, 0.08)
}

func TestCalculateBelowFreeShippingThreshold(t *testing.T) {
	breakdown := testRules().Calculate(50)

	assert.Equal(t, 50.0, breakdown.Subtotal)
	assert.Equal(t, 10.0, breakdown.Shipping)
	assert.Equal(t, 4.0, breakdown.Tax)
	assert.Equal(t, 64.0, breakdown.Total)
}

func TestCalculateAtFreeShippingThreshold(t *testing.T) {
	breakdown := testRules().Calculate(100)

	assert.Equal(t, 0.0, breakdown.Shipping)
	assert.Equal(t, 8.0, breakdown.Tax)
	assert.Equal(t, 108.0, breakdown.Total)
}

func TestCalculateJustBelowThresholdStillCharges(t *testing.T) {
	breakdown := testRules().Calculate(99.99)

	assert.Equal(t, 10.0, breakdown.Shipping)
}

func TestCalculateTaxRoundedToCents(t *testing.T) {
	breakdown := testRules().Calculate(33.33)

	// 33.33 * 0.08 = 2.6664, rounds to 2.67
	assert.Equal(t, 2.67, breakdown.Tax)
}

func TestCalculateTotalIsSumOfParts(t *testing.T) {
	for _, subtotal := range []float64{0.01, 12.5, 99.99, 100, 250.75, 10000} {
		breakdown := testRules().Calculate(subtotal)
		assert.Equal(t, breakdown.Subtotal+breakdown.Shipping+breakdown.Tax, breakdown.Total,
			"subtotal %v", subtotal)
	}
}

func TestCalculateIsDeterministic(t *testing.T) {
	rules := testRules()
	first := rules.Calculate(42.42)
	second := rules.Calculate(42.42)

	assert.Equal(t, first, second)
}
