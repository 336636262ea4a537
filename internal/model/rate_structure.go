package model

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

type AdditionalCost struct {
	Name         string          `json:"name"`
	Amount       decimal.Decimal `json:"amount"`
	IsPercentage bool            `json:"isPercentage"`
	Description  string          `json:"description,omitempty"`
}

// RateStructure is the stored pricing document of a rate or of a service request.
// Exactly one of FlatRate and BaseRate is set; DumpFee only accompanies BaseRate.
type RateStructure struct {
	FlatRate        *decimal.Decimal `json:"flatRate,omitempty"`
	BaseRate        *decimal.Decimal `json:"baseRate,omitempty"`
	DumpFee         *decimal.Decimal `json:"dumpFee,omitempty"`
	RentalRate      *decimal.Decimal `json:"rentalRate,omitempty"`
	AdditionalCosts []AdditionalCost `json:"additionalCosts"`
}

func (rs RateStructure) MarshalJSON() ([]byte, error) {
	type document RateStructure
	doc := document(rs)
	if doc.AdditionalCosts == nil {
		doc.AdditionalCosts = []AdditionalCost{}
	}
	return json.Marshal(doc)
}

// Clone returns a copy that shares no pointers or backing arrays with rs.
func (rs RateStructure) Clone() RateStructure {
	out := RateStructure{
		FlatRate:        cloneDecimal(rs.FlatRate),
		BaseRate:        cloneDecimal(rs.BaseRate),
		DumpFee:         cloneDecimal(rs.DumpFee),
		RentalRate:      cloneDecimal(rs.RentalRate),
		AdditionalCosts: make([]AdditionalCost, len(rs.AdditionalCosts)),
	}
	copy(out.AdditionalCosts, rs.AdditionalCosts)
	return out
}

func cloneDecimal(d *decimal.Decimal) *decimal.Decimal {
	if d == nil {
		return nil
	}
	v := d.Copy()
	return &v
}

// Amount is a convenience for building optional document fields.
func Amount(value string) *decimal.Decimal {
	d := decimal.RequireFromString(value)
	return &d
}
