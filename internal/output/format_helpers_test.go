package output

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "$1,234.57", FormatCurrency(decimal.RequireFromString("1234.567")))
	assert.Equal(t, "-$1,234.50", FormatCurrency(decimal.RequireFromString("-1234.5")))
	assert.Equal(t, "$0.00", FormatCurrency(decimal.Zero))
}

func TestFormatPercentage(t *testing.T) {
	assert.Equal(t, "12.35%", FormatPercentage(decimal.RequireFromString("12.3456")))
	assert.Equal(t, "1.25%", FormatRate(decimal.RequireFromString("0.0125")))
}

func TestIntAndBoolToString(t *testing.T) {
	assert.Equal(t, "42", intToString(42))
	assert.Equal(t, "true", boolToString(true))
	assert.Equal(t, "false", boolToString(false))
}
