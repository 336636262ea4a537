package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mrwaste/wastecrm/internal/geo"
	"github.com/mrwaste/wastecrm/internal/model"
	"github.com/mrwaste/wastecrm/internal/pricing"
)

type SubcontractorService struct {
	subcontractors SubcontractorRepository
	rates          RateRepository
	radiusKm       float64
	now            func() time.Time
}

type SubcontractorInput struct {
	Name      string
	Contact   string
	Phone     string
	Email     string
	Location  string
	Latitude  float64
	Longitude float64
	Notes     string
}

type NearbyQuery struct {
	Latitude  float64
	Longitude float64
	Requested model.ServiceProfile
}

func NewSubcontractorService(subcontractors SubcontractorRepository, rates RateRepository, radiusKm float64) *SubcontractorService {
	return &SubcontractorService{
		subcontractors: subcontractors,
		rates:          rates,
		radiusKm:       radiusKm,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

func (s *SubcontractorService) Create(ctx context.Context, input SubcontractorInput) (*model.Subcontractor, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	location := strings.TrimSpace(input.Location)
	if location == "" {
		return nil, fmt.Errorf("%w: location is required", ErrInvalidInput)
	}
	if err := validateCoordinates(input.Latitude, input.Longitude); err != nil {
		return nil, err
	}

	return s.subcontractors.CreateSubcontractor(ctx, model.Subcontractor{
		Name:      name,
		Contact:   strings.TrimSpace(input.Contact),
		Phone:     strings.TrimSpace(input.Phone),
		Email:     strings.TrimSpace(input.Email),
		Location:  location,
		Latitude:  input.Latitude,
		Longitude: input.Longitude,
		Notes:     input.Notes,
	})
}

func (s *SubcontractorService) Get(ctx context.Context, id uuid.UUID) (*model.Subcontractor, error) {
	sub, err := s.subcontractors.GetSubcontractor(ctx, id)
	if err != nil {
		return nil, translate(err, "subcontractor")
	}
	return sub, nil
}

func (s *SubcontractorService) List(ctx context.Context) ([]model.Subcontractor, error) {
	return s.subcontractors.ListSubcontractors(ctx)
}

// Delete removes the subcontractor together with its rates. It fails with
// ErrConflict while service requests still reference the subcontractor.
func (s *SubcontractorService) Delete(ctx context.Context, id uuid.UUID) error {
	return translate(s.subcontractors.DeleteSubcontractor(ctx, id), "subcontractor")
}

// NearbyWithRates returns the subcontractors within the configured radius of
// the point, nearest first, each with its selectable rates ranked for the
// requested service. Subcontractors without a selectable rate are left out.
func (s *SubcontractorService) NearbyWithRates(ctx context.Context, query NearbyQuery) ([]model.NearbySubcontractor, error) {
	if err := validateCoordinates(query.Latitude, query.Longitude); err != nil {
		return nil, err
	}
	if err := validateProfile(query.Requested); err != nil {
		return nil, err
	}

	box := geo.Around(query.Latitude, query.Longitude, s.radiusKm)
	candidates, err := s.subcontractors.ListSubcontractorsWithin(ctx, box)
	if err != nil {
		return nil, err
	}

	asOf := s.now()
	result := make([]model.NearbySubcontractor, 0, len(candidates))
	for _, sub := range candidates {
		distance := geo.DistanceKm(query.Latitude, query.Longitude, sub.Latitude, sub.Longitude)
		if distance > s.radiusKm {
			continue
		}

		rates, err := s.rates.ListRatesBySubcontractor(ctx, sub.ID)
		if err != nil {
			return nil, err
		}
		ranked := pricing.RankRates(rates, query.Requested, asOf)
		if len(ranked) == 0 {
			continue
		}

		result = append(result, model.NearbySubcontractor{
			Subcontractor: sub,
			DistanceKm:    distance,
			Rates:         ranked,
		})
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].DistanceKm < result[j].DistanceKm
	})
	return result, nil
}

func validateCoordinates(latitude, longitude float64) error {
	if latitude < -90 || latitude > 90 {
		return fmt.Errorf("%w: latitude must be between -90 and 90", ErrInvalidInput)
	}
	if longitude < -180 || longitude > 180 {
		return fmt.Errorf("%w: longitude must be between -180 and 180", ErrInvalidInput)
	}
	return nil
}
