package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "$0.00", FormatPrice(0))
	assert.Equal(t, "$9.99", FormatPrice(9.99))
	assert.Equal(t, "$1,234.50", FormatPrice(1234.5))
	assert.Equal(t, "$1,000,000.00", FormatPrice(1000000))
	assert.Equal(t, "-$42.00", FormatPrice(-42))
}

func TestFormatShipping(t *testing.T) {
	assert.Equal(t, "Free", FormatShipping(0))
	assert.Equal(t, "$10.00", FormatShipping(10))
}
