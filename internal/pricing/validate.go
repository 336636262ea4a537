package pricing

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mrwaste/wastecrm/internal/model"
)

var ErrInvalidRateStructure = errors.New("invalid rate structure")

const (
	maxAmountScale = 4
	// Exponents below this are rejected before any rescaling is attempted.
	minAmountExponent = -32
)

var maxAmount = decimal.New(1, 9)

type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every rule a rate structure breaks.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.Field+": "+v.Message)
	}
	return ErrInvalidRateStructure.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidRateStructure
}

func (e *ValidationError) add(field, message string) {
	e.Violations = append(e.Violations, Violation{Field: field, Message: message})
}

// Validate checks rs and returns a *ValidationError naming all violations, or nil.
// It never modifies rs.
func Validate(rs model.RateStructure) error {
	verr := &ValidationError{}

	hasFlat := rs.FlatRate != nil
	hasBase := rs.BaseRate != nil

	switch {
	case hasFlat && hasBase:
		verr.add("flatRate", "cannot define both flatRate and baseRate")
		verr.add("baseRate", "cannot define both flatRate and baseRate")
	case !hasFlat && !hasBase:
		verr.add("baseRate", "either flatRate or baseRate must be defined")
	}

	checkAmount(verr, "flatRate", rs.FlatRate)
	checkAmount(verr, "baseRate", rs.BaseRate)
	checkAmount(verr, "dumpFee", rs.DumpFee)
	checkAmount(verr, "rentalRate", rs.RentalRate)

	if hasFlat && !rs.FlatRate.IsPositive() {
		verr.add("flatRate", "must be positive")
	}
	if hasBase && !rs.BaseRate.IsPositive() {
		verr.add("baseRate", "must be positive")
	}
	if rs.DumpFee != nil {
		if hasFlat {
			verr.add("dumpFee", "must not be set when flatRate is used")
		}
		if rs.DumpFee.IsNegative() {
			verr.add("dumpFee", "must be non-negative")
		}
	}
	if rs.RentalRate != nil && rs.RentalRate.IsNegative() {
		verr.add("rentalRate", "must be non-negative")
	}

	for i, cost := range rs.AdditionalCosts {
		field := fmt.Sprintf("additionalCosts[%d]", i)
		if strings.TrimSpace(cost.Name) == "" {
			verr.add(field+".name", "is required")
		}
		if cost.Amount.IsNegative() {
			verr.add(field+".amount", "must be non-negative")
		}
		checkAmount(verr, field+".amount", &cost.Amount)
	}

	if len(verr.Violations) > 0 {
		return verr
	}
	return nil
}

// checkAmount bounds magnitude and precision using the exponent first, so an
// input like 1e200000000 is rejected without materialising its digits.
func checkAmount(verr *ValidationError, field string, d *decimal.Decimal) {
	if d == nil || d.IsZero() {
		return
	}
	exp := d.Exponent()
	switch {
	case exp > 9 || (exp >= minAmountExponent && d.Abs().GreaterThan(maxAmount)):
		verr.add(field, "must not exceed "+maxAmount.String())
	case exp < minAmountExponent || !d.Equal(d.Truncate(maxAmountScale)):
		verr.add(field, fmt.Sprintf("must have at most %d decimal places", maxAmountScale))
	}
}
