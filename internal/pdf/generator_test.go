package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mrwaste/wastecrm/internal/model"
	"github.com/mrwaste/wastecrm/internal/pricing"
)

func sampleAgreement() model.Agreement {
	removal := time.Date(2026, 10, 27, 0, 0, 0, 0, time.UTC)
	return model.Agreement{
		Request: model.ServiceRequestDetail{
			ServiceRequest: model.ServiceRequest{
				ID:               uuid.New(),
				Address:          "12 Main St, Milton",
				BinSize:          20,
				ServiceType:      model.ServiceTypeRollOff,
				MaterialType:     model.MaterialTypeConcrete,
				ScheduledStart:   time.Date(2026, 10, 20, 8, 0, 0, 0, time.UTC),
				ScheduledRemoval: &removal,
				AppliedRateStructure: model.RateStructure{
					BaseRate: model.Amount("300"),
					DumpFee:  model.Amount("75"),
					AdditionalCosts: []model.AdditionalCost{
						{Name: "Surcharge", Amount: decimal.NewFromInt(10), IsPercentage: true},
					},
				},
			},
			Customer:      model.Customer{Name: "Jane Smith"},
			Subcontractor: model.Subcontractor{Name: "Sébastien Bins", Phone: "905-555-0100"},
		},
		InvoiceTo: model.Company{
			Name:    "Mr. Waste Inc.",
			Address: []string{"389 Bronte St N", "Milton, ON", "L9T 3N7"},
			Email:   "info@mrwaste.ca",
		},
		IssuedAt: time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC),
	}
}

func TestGenerateProducesPDF(t *testing.T) {
	content, err := NewGenerator().Generate(sampleAgreement())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !bytes.HasPrefix(content, []byte("%PDF-")) {
		t.Fatalf("output is not a PDF")
	}
}

func TestPricingLines(t *testing.T) {
	agreement := sampleAgreement()
	rs := agreement.Request.AppliedRateStructure
	lines := pricingLines(rs, pricing.BreakdownOf(rs))

	want := [][]string{
		{"Base Rate", "$300.00"},
		{"Dump Fee", "$75.00"},
		{"Surcharge (10%)", "$37.50"},
	}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %v", len(want), lines)
	}
	for i := range want {
		if lines[i][0] != want[i][0] || lines[i][1] != want[i][1] {
			t.Fatalf("line %d: expected %v, got %v", i, want[i], lines[i])
		}
	}
}
