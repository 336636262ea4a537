package excel

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/mrwaste/wastecrm/internal/model"
	"github.com/mrwaste/wastecrm/internal/pricing"
)

const ratesSheet = "Rates"

var rateHeaders = []string{
	"Bin Size",
	"Service",
	"Material",
	"Flat Rate",
	"Base Rate",
	"Dump Fee",
	"Rental",
	"Additional Costs",
	"Total",
	"Effective",
	"Expiry",
	"Status",
	"Notes",
}

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate writes one row per rate. Money cells hold numbers so the sheet can
// be recalculated; Total is the priced rate structure.
func (g *Generator) Generate(sheet model.RateSheet) ([]byte, error) {
	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName("Sheet1", ratesSheet); err != nil {
		return nil, err
	}
	if err := g.writeRates(file, ratesSheet, sheet); err != nil {
		return nil, err
	}

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) writeRates(file *excelize.File, sheet string, data model.RateSheet) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", "Subcontractor")
	set("B1", data.Subcontractor.Name)
	set("A2", "Location")
	set("B2", data.Subcontractor.Location)
	set("A3", "As of")
	set("B3", formatDate(data.AsOf))

	tableRow := 5
	for i, header := range rateHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, tableRow)
		set(cell, header)
	}

	for i, rate := range data.Rates {
		row := tableRow + 1 + i
		rs := rate.RateStructure
		status := "Active"
		if rate.ExpiredAt(data.AsOf) {
			status = "Expired"
		}

		set(fmt.Sprintf("A%d", row), rate.BinSize)
		set(fmt.Sprintf("B%d", row), rate.ServiceType.Label())
		set(fmt.Sprintf("C%d", row), rate.MaterialType.Label())
		set(fmt.Sprintf("D%d", row), money(rs.FlatRate))
		set(fmt.Sprintf("E%d", row), money(rs.BaseRate))
		set(fmt.Sprintf("F%d", row), money(rs.DumpFee))
		set(fmt.Sprintf("G%d", row), money(rs.RentalRate))
		set(fmt.Sprintf("H%d", row), describeCosts(rs.AdditionalCosts))
		set(fmt.Sprintf("I%d", row), pricing.CalculateTotalCost(rs).InexactFloat64())
		set(fmt.Sprintf("J%d", row), formatDate(rate.EffectiveDate))
		if rate.ExpiryDate != nil {
			set(fmt.Sprintf("K%d", row), formatDate(*rate.ExpiryDate))
		}
		set(fmt.Sprintf("L%d", row), status)
		set(fmt.Sprintf("M%d", row), rate.Notes)
	}

	_ = file.SetColWidth(sheet, "A", "A", 14)
	_ = file.SetColWidth(sheet, "B", "C", 12)
	_ = file.SetColWidth(sheet, "D", "G", 12)
	_ = file.SetColWidth(sheet, "H", "H", 40)
	_ = file.SetColWidth(sheet, "I", "L", 12)
	_ = file.SetColWidth(sheet, "M", "M", 40)
	return nil
}

// money leaves absent amounts as empty cells.
func money(amount *decimal.Decimal) interface{} {
	if amount == nil {
		return ""
	}
	return amount.InexactFloat64()
}

func describeCosts(costs []model.AdditionalCost) string {
	parts := make([]string, 0, len(costs))
	for _, cost := range costs {
		value := pricing.FormatCurrency(cost.Amount)
		if cost.IsPercentage {
			value = pricing.FormatPercent(cost.Amount)
		}
		parts = append(parts, fmt.Sprintf("%s: %s", cost.Name, value))
	}
	return strings.Join(parts, "; ")
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}
