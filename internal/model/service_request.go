package model

import (
	"time"

	"github.com/google/uuid"
)

type ServiceRequest struct {
	ID                  uuid.UUID    `json:"id"`
	CustomerID          uuid.UUID    `json:"customerId"`
	SubcontractorID     uuid.UUID    `json:"subcontractorId"`
	RateID              *uuid.UUID   `json:"rateId,omitempty"` // provenance only, never re-read for pricing
	Address             string       `json:"address"`
	Latitude            float64      `json:"latitude"`
	Longitude           float64      `json:"longitude"`
	BinSize             int          `json:"binSize"`
	ServiceType         ServiceType  `json:"serviceType"`
	MaterialType        MaterialType `json:"materialType"`
	ScheduledStart      time.Time    `json:"scheduledStart"`
	ScheduledRemoval    *time.Time   `json:"scheduledRemoval,omitempty"`
	SpecialInstructions string       `json:"specialInstructions,omitempty"`
	// AppliedRateStructure is frozen at creation and is what the customer is charged.
	AppliedRateStructure RateStructure `json:"appliedRateStructure"`
	CreatedAt            time.Time     `json:"createdAt"`
}

type ServiceRequestDetail struct {
	ServiceRequest
	Customer      Customer      `json:"customer"`
	Subcontractor Subcontractor `json:"subcontractor"`
}
