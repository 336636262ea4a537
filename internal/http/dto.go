package http

import (
	"github.com/shopspring/decimal"

	"github.com/mrwaste/wastecrm/internal/model"
)

// Presence of amount and isPercentage is enforced at binding; every other
// rule belongs to the rate structure validator.
type additionalCostRequest struct {
	Name         string           `json:"name"`
	Amount       *decimal.Decimal `json:"amount" binding:"required"`
	IsPercentage *bool            `json:"isPercentage" binding:"required"`
	Description  string           `json:"description"`
}

type rateStructureRequest struct {
	FlatRate        *decimal.Decimal        `json:"flatRate"`
	BaseRate        *decimal.Decimal        `json:"baseRate"`
	DumpFee         *decimal.Decimal        `json:"dumpFee"`
	RentalRate      *decimal.Decimal        `json:"rentalRate"`
	AdditionalCosts []additionalCostRequest `json:"additionalCosts" binding:"dive"`
}

func (r rateStructureRequest) toModel() model.RateStructure {
	costs := make([]model.AdditionalCost, 0, len(r.AdditionalCosts))
	for _, cost := range r.AdditionalCosts {
		costs = append(costs, model.AdditionalCost{
			Name:         cost.Name,
			Amount:       *cost.Amount,
			IsPercentage: *cost.IsPercentage,
			Description:  cost.Description,
		})
	}
	return model.RateStructure{
		FlatRate:        r.FlatRate,
		BaseRate:        r.BaseRate,
		DumpFee:         r.DumpFee,
		RentalRate:      r.RentalRate,
		AdditionalCosts: costs,
	}
}

type rateRequest struct {
	SubcontractorID string                `json:"subcontractorId"`
	BinSize         int                   `json:"binSize"`
	ServiceType     string                `json:"serviceType"`
	MaterialType    string                `json:"materialType"`
	RateStructure   *rateStructureRequest `json:"rateStructure" binding:"required"`
	EffectiveDate   string                `json:"effectiveDate"`
	ExpiryDate      *string               `json:"expiryDate"`
	Notes           string                `json:"notes"`
}

type subcontractorRequest struct {
	Name      string   `json:"name" binding:"required"`
	Contact   string   `json:"contact"`
	Phone     string   `json:"phone"`
	Email     string   `json:"email"`
	Location  string   `json:"location" binding:"required"`
	Latitude  *float64 `json:"latitude" binding:"required"`
	Longitude *float64 `json:"longitude" binding:"required"`
	Notes     string   `json:"notes"`
}

type customerRequest struct {
	Name  string  `json:"name"`
	Email *string `json:"email"`
	Phone string  `json:"phone"`
	Notes string  `json:"notes"`
}

type serviceRequestRequest struct {
	Customer             customerRequest       `json:"customer"`
	SubcontractorID      string                `json:"subcontractorId" binding:"required"`
	RateID               *string               `json:"rateId"`
	Address              string                `json:"address"`
	Latitude             float64               `json:"latitude"`
	Longitude            float64               `json:"longitude"`
	BinSize              int                   `json:"binSize"`
	ServiceType          string                `json:"serviceType"`
	MaterialType         string                `json:"materialType"`
	ScheduledStart       string                `json:"scheduledStart"`
	ScheduledRemoval     *string               `json:"scheduledRemoval"`
	SpecialInstructions  string                `json:"specialInstructions"`
	AppliedRateStructure *rateStructureRequest `json:"appliedRateStructure" binding:"required"`
}

// Enum values are taken verbatim; the service rejects anything outside the
// canonical set, including case variants.
func serviceType(raw string) model.ServiceType {
	return model.ServiceType(raw)
}

func materialType(raw string) model.MaterialType {
	return model.MaterialType(raw)
}
