package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mrwaste/wastecrm/internal/pricing"
)

func TestFormatCurrency(t *testing.T) {
	tests := map[string]string{
		"0":          "$0.00",
		"5":          "$5.00",
		"412.5":      "$412.50",
		"999.999":    "$1,000.00",
		"1234.5":     "$1,234.50",
		"1234567.89": "$1,234,567.89",
		"-20":        "-$20.00",
		"-0.001":     "$0.00",
		"0.07":       "$0.07",
		"1000000000": "$1,000,000,000.00",
	}
	for in, want := range tests {
		if got := pricing.FormatCurrency(decimal.RequireFromString(in)); got != want {
			t.Errorf("FormatCurrency(%s) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	if got := pricing.FormatPercent(decimal.RequireFromString("2.50")); got != "2.5%" {
		t.Errorf("got %q", got)
	}
}
