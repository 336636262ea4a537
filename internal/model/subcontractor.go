package model

import (
	"time"

	"github.com/google/uuid"
)

type Subcontractor struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Contact   string    `json:"contact,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	Location  string    `json:"location"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type NearbySubcontractor struct {
	Subcontractor Subcontractor `json:"subcontractor"`
	DistanceKm    float64       `json:"distanceKm"`
	Rates         []RankedRate  `json:"rates"`
}

type RankedRate struct {
	Rate  Rate `json:"rate"`
	Score int  `json:"score"`
}
