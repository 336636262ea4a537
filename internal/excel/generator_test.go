package excel

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/mrwaste/wastecrm/internal/model"
)

func TestGenerateRateSheet(t *testing.T) {
	expiry := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	sheet := model.RateSheet{
		Subcontractor: model.Subcontractor{Name: "Milton Bins", Location: "Milton, ON"},
		AsOf:          time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		Rates: []model.Rate{
			{
				BinSize:      20,
				ServiceType:  model.ServiceTypeRollOff,
				MaterialType: model.MaterialTypeWaste,
				RateStructure: model.RateStructure{
					FlatRate:   model.Amount("500"),
					RentalRate: model.Amount("50"),
					AdditionalCosts: []model.AdditionalCost{
						{Name: "Fuel", Amount: decimal.NewFromInt(10)},
					},
				},
				EffectiveDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			},
			{
				BinSize:       6,
				ServiceType:   model.ServiceTypeFrontEnd,
				MaterialType:  model.MaterialTypeRecycling,
				RateStructure: model.RateStructure{BaseRate: model.Amount("300"), DumpFee: model.Amount("75")},
				EffectiveDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
				ExpiryDate:    &expiry,
			},
		},
	}

	content, err := NewGenerator().Generate(sheet)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	file, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer file.Close()

	checks := map[string]string{
		"B1": "Milton Bins",
		"A5": "Bin Size",
		"B6": "Roll Off",
		"H6": "Fuel: $10.00",
		"I6": "560",
		"L6": "Active",
		"B7": "Front End",
		"C7": "Recycling",
		"I7": "375",
		"K7": "2026-09-01",
		"L7": "Expired",
	}
	for cell, want := range checks {
		got, err := file.GetCellValue(ratesSheet, cell)
		if err != nil {
			t.Fatalf("read %s: %v", cell, err)
		}
		if got != want {
			t.Errorf("%s: expected %q, got %q", cell, want, got)
		}
	}
}
