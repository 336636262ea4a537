package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/mrwaste/wastecrm/internal/model"
)

type CostLine struct {
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	IsPercentage bool            `json:"isPercentage"`
	Rate         decimal.Decimal `json:"rate"`
	Amount       decimal.Decimal `json:"amount"`
}

// Breakdown itemises a total. Percentage costs are taken of Subtotal, never of a
// running total, so their order does not matter.
type Breakdown struct {
	Base            decimal.Decimal `json:"base"`
	Rental          decimal.Decimal `json:"rental"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	AdditionalCosts []CostLine      `json:"additionalCosts"`
	Total           decimal.Decimal `json:"total"`
}

func (s Structure) Breakdown() Breakdown {
	base := decimal.Zero
	if s.Basis != nil {
		base = s.Basis.amount()
	}
	return breakdown(base, s.RentalRate, s.AdditionalCosts)
}

func (s Structure) Total() decimal.Decimal {
	return s.Breakdown().Total
}

// CalculateTotalCost prices a stored document. The document is expected to
// have passed Validate; the function itself never fails.
func CalculateTotalCost(rs model.RateStructure) decimal.Decimal {
	return BreakdownOf(rs).Total
}

func BreakdownOf(rs model.RateStructure) Breakdown {
	base := decimal.Zero
	switch {
	case rs.FlatRate != nil:
		base = *rs.FlatRate
	case rs.BaseRate != nil:
		base = *rs.BaseRate
		if rs.DumpFee != nil {
			base = base.Add(*rs.DumpFee)
		}
	}
	return breakdown(base, rs.RentalRate, rs.AdditionalCosts)
}

func breakdown(base decimal.Decimal, rental *decimal.Decimal, costs []model.AdditionalCost) Breakdown {
	b := Breakdown{
		Base:            base,
		Rental:          decimal.Zero,
		AdditionalCosts: make([]CostLine, 0, len(costs)),
	}
	if rental != nil {
		b.Rental = *rental
	}
	b.Subtotal = b.Base.Add(b.Rental)
	b.Total = b.Subtotal

	for _, cost := range costs {
		line := CostLine{
			Name:         cost.Name,
			Description:  cost.Description,
			IsPercentage: cost.IsPercentage,
			Rate:         cost.Amount,
			Amount:       cost.Amount,
		}
		if cost.IsPercentage {
			line.Amount = b.Subtotal.Mul(cost.Amount).Shift(-2)
		}
		b.AdditionalCosts = append(b.AdditionalCosts, line)
		b.Total = b.Total.Add(line.Amount)
	}
	return b
}
