package pdf

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/mrwaste/wastecrm/internal/model"
	"github.com/mrwaste/wastecrm/internal/pricing"
)

const fontName = "Helvetica"

// Generator renders subcontractor agreements with the core Helvetica font, so
// no font files are embedded.
type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

func (g *Generator) Generate(agreement model.Agreement) ([]byte, error) {
	req := agreement.Request
	breakdown := pricing.BreakdownOf(req.AppliedRateStructure)

	pdf := gofpdf.New("P", "mm", "Letter", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont(fontName, "B", 16)
	pdf.SetFillColor(248, 248, 248)
	pdf.CellFormat(0, 12, "Subcontractor Agreement", "B", 1, "C", true, 0, "")
	pdf.SetFont(fontName, "", 10)
	pdf.CellFormat(0, 7, "Date: "+formatDate(agreement.IssuedAt), "", 1, "R", false, 0, "")
	pdf.Ln(2)

	sectionHeader(pdf, "Subcontractor")
	labelRow(pdf, tr, "Company", req.Subcontractor.Name)
	labelRow(pdf, tr, "Contact", req.Subcontractor.Contact)
	labelRow(pdf, tr, "Phone", req.Subcontractor.Phone)
	labelRow(pdf, tr, "Email", req.Subcontractor.Email)
	pdf.Ln(3)

	sectionHeader(pdf, "Service Location")
	labelRow(pdf, tr, "Address", req.Address)
	labelRow(pdf, tr, "Bin Size", fmt.Sprintf("%d yard", req.BinSize))
	labelRow(pdf, tr, "Service", req.ServiceType.Label())
	labelRow(pdf, tr, "Material", req.MaterialType.Label())
	labelRow(pdf, tr, "Delivery", formatDate(req.ScheduledStart))
	if req.ScheduledRemoval != nil {
		labelRow(pdf, tr, "Removal", formatDate(*req.ScheduledRemoval))
	}
	pdf.Ln(3)

	sectionHeader(pdf, "Pricing")
	widths := []float64{120, 65}
	for _, line := range pricingLines(req.AppliedRateStructure, breakdown) {
		drawTableRow(pdf, tr, line, widths, false)
	}
	drawTableRow(pdf, tr, []string{"Total", pricing.FormatCurrency(breakdown.Total)}, widths, true)
	pdf.Ln(3)

	sectionHeader(pdf, "Invoice To")
	pdf.SetFont(fontName, "", 10)
	for _, line := range invoiceLines(agreement.InvoiceTo) {
		pdf.CellFormat(0, 5, tr(line), "", 1, "L", false, 0, "")
	}
	pdf.Ln(3)

	sectionHeader(pdf, "Special Instructions")
	pdf.SetFont(fontName, "", 10)
	pdf.MultiCell(0, 5, tr(safeValue(req.SpecialInstructions)), "1", "L", false)
	pdf.Ln(6)

	signatureBlock(pdf, tr, agreement.InvoiceTo.Name)
	signatureBlock(pdf, tr, "Subcontractor")

	if agreement.InvoiceTo.Email != "" {
		pdf.Ln(4)
		pdf.SetFont(fontName, "I", 9)
		pdf.CellFormat(0, 5, tr("Please fill out details and email back to "+agreement.InvoiceTo.Email), "", 1, "C", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// pricingLines itemises the frozen structure the way it was agreed: flat rate
// or base rate plus dump fee, rental, then each additional cost in order.
func pricingLines(rs model.RateStructure, breakdown pricing.Breakdown) [][]string {
	var lines [][]string
	if rs.FlatRate != nil {
		lines = append(lines, []string{"Flat Rate", pricing.FormatCurrency(*rs.FlatRate)})
	}
	if rs.BaseRate != nil {
		lines = append(lines, []string{"Base Rate", pricing.FormatCurrency(*rs.BaseRate)})
	}
	if rs.DumpFee != nil {
		lines = append(lines, []string{"Dump Fee", pricing.FormatCurrency(*rs.DumpFee)})
	}
	if rs.RentalRate != nil {
		lines = append(lines, []string{"Rental", pricing.FormatCurrency(*rs.RentalRate)})
	}
	for _, cost := range breakdown.AdditionalCosts {
		label := cost.Name
		if cost.IsPercentage {
			label = fmt.Sprintf("%s (%s)", cost.Name, pricing.FormatPercent(cost.Rate))
		}
		lines = append(lines, []string{label, pricing.FormatCurrency(cost.Amount)})
	}
	return lines
}

func invoiceLines(company model.Company) []string {
	lines := []string{company.Name}
	lines = append(lines, company.Address...)
	if company.Email != "" {
		lines = append(lines, company.Email)
	}
	if company.Phone != "" {
		lines = append(lines, company.Phone)
	}
	return lines
}

func sectionHeader(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont(fontName, "B", 12)
	pdf.CellFormat(0, 8, title, "B", 1, "L", false, 0, "")
	pdf.Ln(1)
}

func labelRow(pdf *gofpdf.Fpdf, tr func(string) string, label, value string) {
	pdf.SetFont(fontName, "B", 10)
	pdf.CellFormat(35, 6, label+":", "", 0, "L", false, 0, "")
	pdf.SetFont(fontName, "", 10)
	pdf.CellFormat(0, 6, tr(safeValue(value)), "", 1, "L", false, 0, "")
}

func drawTableRow(pdf *gofpdf.Fpdf, tr func(string) string, cols []string, widths []float64, total bool) {
	style := ""
	if total {
		style = "B"
	}
	pdf.SetFont(fontName, style, 10)
	for i, col := range cols {
		align := "L"
		if i > 0 {
			align = "R"
		}
		pdf.CellFormat(widths[i], 7, tr(col), "1", 0, align, total, 0, "")
	}
	pdf.Ln(-1)
}

func signatureBlock(pdf *gofpdf.Fpdf, tr func(string) string, party string) {
	pdf.SetFont(fontName, "", 11)
	pdf.CellFormat(0, 8, tr(fmt.Sprintf("%s signature: ______________________  Date: __________", safeValue(party))), "", 1, "L", false, 0, "")
}

func safeValue(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02")
}
