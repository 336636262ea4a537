package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/mrwaste/wastecrm/internal/model"
)

// Basis is the mutually exclusive core of a rate structure. The only
// implementations are FlatRate and LiftAndDump.
type Basis interface {
	amount() decimal.Decimal
	fill(doc *model.RateStructure)
}

type FlatRate struct {
	Rate decimal.Decimal
}

func (b FlatRate) amount() decimal.Decimal {
	return b.Rate
}

func (b FlatRate) fill(doc *model.RateStructure) {
	rate := b.Rate
	doc.FlatRate = &rate
}

// LiftAndDump prices a haul as a base (lift) rate plus an optional dump fee.
type LiftAndDump struct {
	Base    decimal.Decimal
	DumpFee *decimal.Decimal
}

func (b LiftAndDump) amount() decimal.Decimal {
	if b.DumpFee == nil {
		return b.Base
	}
	return b.Base.Add(*b.DumpFee)
}

func (b LiftAndDump) fill(doc *model.RateStructure) {
	base := b.Base
	doc.BaseRate = &base
	if b.DumpFee != nil {
		fee := *b.DumpFee
		doc.DumpFee = &fee
	}
}

// Structure is a rate structure that has passed Validate.
type Structure struct {
	Basis           Basis
	RentalRate      *decimal.Decimal
	AdditionalCosts []model.AdditionalCost
}

// Parse validates rs and converts it into a Structure.
func Parse(rs model.RateStructure) (Structure, error) {
	if err := Validate(rs); err != nil {
		return Structure{}, err
	}
	rs = rs.Clone()

	s := Structure{
		RentalRate:      rs.RentalRate,
		AdditionalCosts: rs.AdditionalCosts,
	}
	if rs.FlatRate != nil {
		s.Basis = FlatRate{Rate: *rs.FlatRate}
	} else {
		s.Basis = LiftAndDump{Base: *rs.BaseRate, DumpFee: rs.DumpFee}
	}
	return s, nil
}

// Document converts s back to its stored form.
func (s Structure) Document() model.RateStructure {
	doc := model.RateStructure{
		AdditionalCosts: make([]model.AdditionalCost, len(s.AdditionalCosts)),
	}
	copy(doc.AdditionalCosts, s.AdditionalCosts)
	if s.Basis != nil {
		s.Basis.fill(&doc)
	}
	if s.RentalRate != nil {
		rental := *s.RentalRate
		doc.RentalRate = &rental
	}
	return doc
}
