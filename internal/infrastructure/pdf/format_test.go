package pdf

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatMoney(t *testing.T) {
	cases := map[string]string{
		"0":         "0.00",
		"999.999":   "1,000.00",
		"1234567.5": "1,234,567.50",
		"-2500":     "-2,500.00",
		"109.95":    "109.95",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatMoney(decimal.RequireFromString(in)), in)
	}
}
