package pricing_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mrwaste/wastecrm/internal/model"
	"github.com/mrwaste/wastecrm/internal/pricing"
)

func TestValidateExclusiveBasis(t *testing.T) {
	tests := []struct {
		name  string
		rs    model.RateStructure
		valid bool
	}{
		{name: "flat only", rs: model.RateStructure{FlatRate: model.Amount("500")}, valid: true},
		{name: "base only", rs: model.RateStructure{BaseRate: model.Amount("300")}, valid: true},
		{name: "base with dump fee", rs: model.RateStructure{BaseRate: model.Amount("300"), DumpFee: model.Amount("75")}, valid: true},
		{name: "both", rs: model.RateStructure{FlatRate: model.Amount("500"), BaseRate: model.Amount("300")}},
		{name: "neither", rs: model.RateStructure{RentalRate: model.Amount("20")}},
		{name: "zero flat is defined but not positive", rs: model.RateStructure{FlatRate: model.Amount("0")}},
		{name: "negative base", rs: model.RateStructure{BaseRate: model.Amount("-1")}},
		{name: "dump fee with flat", rs: model.RateStructure{FlatRate: model.Amount("500"), DumpFee: model.Amount("10")}},
		{name: "negative dump fee", rs: model.RateStructure{BaseRate: model.Amount("300"), DumpFee: model.Amount("-5")}},
		{name: "negative rental", rs: model.RateStructure{FlatRate: model.Amount("500"), RentalRate: model.Amount("-1")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := pricing.Validate(tt.rs)
			if tt.valid && err != nil {
				t.Fatalf("expected valid, got %v", err)
			}
			if !tt.valid {
				if err == nil {
					t.Fatal("expected validation error")
				}
				if !errors.Is(err, pricing.ErrInvalidRateStructure) {
					t.Fatalf("expected ErrInvalidRateStructure, got %v", err)
				}
			}
		})
	}
}

func TestValidateAdditionalCosts(t *testing.T) {
	rs := model.RateStructure{
		FlatRate: model.Amount("500"),
		AdditionalCosts: []model.AdditionalCost{
			{Name: "Fuel", Amount: decimal.NewFromInt(10)},
			{Name: "", Amount: decimal.NewFromInt(5)},
			{Name: "Discount", Amount: decimal.NewFromInt(-3)},
		},
	}

	err := pricing.Validate(rs)
	var verr *pricing.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}

	want := map[string]bool{
		"additionalCosts[1].name":   true,
		"additionalCosts[2].amount": true,
	}
	if len(verr.Violations) != len(want) {
		t.Fatalf("expected %d violations, got %+v", len(want), verr.Violations)
	}
	for _, v := range verr.Violations {
		if !want[v.Field] {
			t.Errorf("unexpected violation %s: %s", v.Field, v.Message)
		}
	}
}

func TestValidateReportsEveryViolation(t *testing.T) {
	rs := model.RateStructure{
		FlatRate: model.Amount("500"),
		BaseRate: model.Amount("300"),
		DumpFee:  model.Amount("-1"),
	}

	var verr *pricing.ValidationError
	if !errors.As(pricing.Validate(rs), &verr) {
		t.Fatal("expected *ValidationError")
	}
	// both-defined twice, dump fee with flat, negative dump fee
	if len(verr.Violations) != 4 {
		t.Fatalf("expected 4 violations, got %d: %v", len(verr.Violations), verr)
	}
}

func TestValidateDoesNotModifyInput(t *testing.T) {
	rs := model.RateStructure{
		FlatRate: model.Amount("500"),
		DumpFee:  model.Amount("10"),
	}
	_ = pricing.Validate(rs)
	if rs.DumpFee == nil || !rs.DumpFee.Equal(decimal.NewFromInt(10)) {
		t.Fatal("validate must not drop or coerce fields")
	}
}

func TestParseBuildsBasis(t *testing.T) {
	s, err := pricing.Parse(model.RateStructure{BaseRate: model.Amount("300"), DumpFee: model.Amount("75")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	basis, ok := s.Basis.(pricing.LiftAndDump)
	if !ok {
		t.Fatalf("expected LiftAndDump basis, got %T", s.Basis)
	}
	if !basis.Base.Equal(decimal.NewFromInt(300)) {
		t.Errorf("expected base 300, got %s", basis.Base)
	}

	doc := s.Document()
	if doc.FlatRate != nil || doc.BaseRate == nil || doc.DumpFee == nil {
		t.Fatalf("document round trip lost fields: %+v", doc)
	}

	if _, err := pricing.Parse(model.RateStructure{}); err == nil {
		t.Fatal("expected error for empty structure")
	}
}

func TestValidateBoundsAmounts(t *testing.T) {
	tests := []struct {
		name  string
		rs    model.RateStructure
		field string
	}{
		{name: "huge exponent", rs: model.RateStructure{FlatRate: model.Amount("1e200000000")}, field: "flatRate"},
		{name: "above ceiling", rs: model.RateStructure{BaseRate: model.Amount("1000000000.01")}, field: "baseRate"},
		{name: "too many places", rs: model.RateStructure{BaseRate: model.Amount("300"), DumpFee: model.Amount("75.00001")}, field: "dumpFee"},
		{name: "tiny exponent", rs: model.RateStructure{FlatRate: model.Amount("500"), RentalRate: model.Amount("1e-200000000")}, field: "rentalRate"},
		{
			name: "additional cost",
			rs: model.RateStructure{
				FlatRate:        model.Amount("500"),
				AdditionalCosts: []model.AdditionalCost{{Name: "Fuel", Amount: decimal.RequireFromString("1e12")}},
			},
			field: "additionalCosts[0].amount",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var verr *pricing.ValidationError
			if !errors.As(pricing.Validate(tt.rs), &verr) {
				t.Fatal("expected a validation error")
			}
			found := false
			for _, v := range verr.Violations {
				if v.Field == tt.field {
					found = true
				}
			}
			if !found {
				t.Fatalf("expected violation on %s, got %+v", tt.field, verr.Violations)
			}
		})
	}
}

func TestValidateAcceptsAmountsWithinBounds(t *testing.T) {
	rs := model.RateStructure{
		BaseRate:   model.Amount("1000000000"),
		DumpFee:    model.Amount("75.1250"),
		RentalRate: model.Amount("12.50000"),
	}
	if err := pricing.Validate(rs); err != nil {
		t.Fatalf("expected valid, got %v", err)
	}
}
