package model

import (
	"time"

	"github.com/google/uuid"
)

type Rate struct {
	ID              uuid.UUID     `json:"id"`
	SubcontractorID uuid.UUID     `json:"subcontractorId"`
	BinSize         int           `json:"binSize"`
	ServiceType     ServiceType   `json:"serviceType"`
	MaterialType    MaterialType  `json:"materialType"`
	RateStructure   RateStructure `json:"rateStructure"`
	EffectiveDate   time.Time     `json:"effectiveDate"`
	ExpiryDate      *time.Time    `json:"expiryDate,omitempty"`
	Notes           string        `json:"notes,omitempty"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
}

// ExpiredAt reports whether the rate can no longer be selected at asOf.
func (r Rate) ExpiredAt(asOf time.Time) bool {
	return r.ExpiryDate != nil && !r.ExpiryDate.After(asOf)
}
