package services

import (
	"math"

	"shopfront/config"
	"shopfront/models"
)

// PricingRules derives shipping, tax and grand total from a subtotal. The
// rules are fixed at construction, so Calculate is a pure function of the
// subtotal alone and can be recomputed on every request without caching.
type PricingRules struct {
	ShippingFee     float64
	FreeShippingMin float64
	TaxRate         float64
}

func NewPricingRules(shippingFee, freeShippingMin, taxRate float64) *PricingRules {
	return &PricingRules{
		ShippingFee:     shippingFee,
		FreeShippingMin: freeShippingMin,
		TaxRate:         taxRate,
	}
}

// DefaultPricingRules builds the rules from the startup configuration.
func DefaultPricingRules() *PricingRules {
	return NewPricingRules(
		config.AppConfig.ShippingFee,
		config.AppConfig.FreeShippingMin,
		config.AppConfig.TaxRate,
	)
}

// Calculate returns the full breakdown. Shipping is waived at or above the
// free-shipping threshold; tax is rounded to cents. Total is always the
// exact sum of the three parts.
func (r *PricingRules) Calculate(subtotal float64) models.PricingBreakdown {
	shipping := r.ShippingFee
	if subtotal >= r.FreeShippingMin {
		shipping = 0
	}

	tax := math.Round(subtotal*r.TaxRate*100) / 100

	return models.PricingBreakdown{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    subtotal + shipping + tax,
	}
}
