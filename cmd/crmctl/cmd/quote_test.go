package cmd

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/mrwaste/wastecrm/internal/pricing"
)

func runQuoteWith(t *testing.T, input string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	quoteCmd.SetIn(strings.NewReader(input))
	quoteCmd.SetOut(&out)
	quoteCmd.SetErr(&errOut)
	err := runQuote(quoteCmd, []string{"-"})
	return out.String(), errOut.String(), err
}

func TestQuotePrintsBreakdown(t *testing.T) {
	out, _, err := runQuoteWith(t, `{"baseRate": 300, "dumpFee": 75, "additionalCosts": [{"name": "Surcharge", "amount": 10, "isPercentage": true}]}`)
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	for _, want := range []string{"Subtotal", "$375.00", "Surcharge (10%)", "$37.50", "$412.50"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestQuoteRejectsInvalidStructure(t *testing.T) {
	_, errOut, err := runQuoteWith(t, `{"flatRate": 450, "baseRate": 300}`)
	if !errors.Is(err, pricing.ErrInvalidRateStructure) {
		t.Fatalf("expected ErrInvalidRateStructure, got %v", err)
	}
	if !strings.Contains(errOut, "flatRate:") || !strings.Contains(errOut, "baseRate:") {
		t.Fatalf("expected violations on stderr, got %q", errOut)
	}
}
