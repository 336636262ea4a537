package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mrwaste/wastecrm/internal/model"
	"github.com/mrwaste/wastecrm/internal/pricing"
)

type RateService struct {
	rates          RateRepository
	subcontractors SubcontractorRepository
	sheets         RateSheetGenerator
	now            func() time.Time
}

type RateInput struct {
	SubcontractorID uuid.UUID
	BinSize         int
	ServiceType     model.ServiceType
	MaterialType    model.MaterialType
	RateStructure   model.RateStructure
	EffectiveDate   time.Time
	ExpiryDate      *time.Time
	Notes           string
}

func NewRateService(rates RateRepository, subcontractors SubcontractorRepository, sheets RateSheetGenerator) *RateService {
	return &RateService{
		rates:          rates,
		subcontractors: subcontractors,
		sheets:         sheets,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

func (s *RateService) Create(ctx context.Context, input RateInput) (*model.Rate, error) {
	if err := validateRateInput(input); err != nil {
		return nil, err
	}
	if input.SubcontractorID == uuid.Nil {
		return nil, fmt.Errorf("%w: subcontractorId is required", ErrInvalidInput)
	}
	if _, err := s.subcontractors.GetSubcontractor(ctx, input.SubcontractorID); err != nil {
		return nil, translate(err, "subcontractor")
	}

	rate, err := s.rates.CreateRate(ctx, model.Rate{
		SubcontractorID: input.SubcontractorID,
		BinSize:         input.BinSize,
		ServiceType:     input.ServiceType,
		MaterialType:    input.MaterialType,
		RateStructure:   input.RateStructure.Clone(),
		EffectiveDate:   dateOnly(input.EffectiveDate),
		ExpiryDate:      dateOnlyPtr(input.ExpiryDate),
		Notes:           input.Notes,
	})
	if err != nil {
		return nil, translate(err, "subcontractor")
	}
	return rate, nil
}

// Update replaces every field of the rate, including the whole rate
// structure. A rate never moves to another subcontractor.
func (s *RateService) Update(ctx context.Context, id uuid.UUID, input RateInput) (*model.Rate, error) {
	if err := validateRateInput(input); err != nil {
		return nil, err
	}

	existing, err := s.rates.GetRate(ctx, id)
	if err != nil {
		return nil, translate(err, "rate")
	}
	if input.SubcontractorID != uuid.Nil && input.SubcontractorID != existing.SubcontractorID {
		return nil, fmt.Errorf("%w: a rate cannot be moved to another subcontractor", ErrInvalidInput)
	}

	rate, err := s.rates.UpdateRate(ctx, model.Rate{
		ID:              id,
		SubcontractorID: existing.SubcontractorID,
		BinSize:         input.BinSize,
		ServiceType:     input.ServiceType,
		MaterialType:    input.MaterialType,
		RateStructure:   input.RateStructure.Clone(),
		EffectiveDate:   dateOnly(input.EffectiveDate),
		ExpiryDate:      dateOnlyPtr(input.ExpiryDate),
		Notes:           input.Notes,
	})
	if err != nil {
		return nil, translate(err, "rate")
	}
	return rate, nil
}

func (s *RateService) Delete(ctx context.Context, id uuid.UUID) error {
	return translate(s.rates.DeleteRate(ctx, id), "rate")
}

func (s *RateService) Get(ctx context.Context, id uuid.UUID) (*model.Rate, error) {
	rate, err := s.rates.GetRate(ctx, id)
	if err != nil {
		return nil, translate(err, "rate")
	}
	return rate, nil
}

func (s *RateService) List(ctx context.Context) ([]model.Rate, error) {
	return s.rates.ListRates(ctx)
}

func (s *RateService) ListBySubcontractor(ctx context.Context, subcontractorID uuid.UUID) ([]model.Rate, error) {
	if _, err := s.subcontractors.GetSubcontractor(ctx, subcontractorID); err != nil {
		return nil, translate(err, "subcontractor")
	}
	return s.rates.ListRatesBySubcontractor(ctx, subcontractorID)
}

// Rank returns the subcontractor's selectable rates ordered best-first for
// the requested service.
func (s *RateService) Rank(ctx context.Context, subcontractorID uuid.UUID, requested model.ServiceProfile) ([]model.RankedRate, error) {
	if err := validateProfile(requested); err != nil {
		return nil, err
	}
	rates, err := s.ListBySubcontractor(ctx, subcontractorID)
	if err != nil {
		return nil, err
	}
	return pricing.RankRates(rates, requested, s.now()), nil
}

// Quote prices a rate structure without storing anything.
func (s *RateService) Quote(rs model.RateStructure) (*pricing.Breakdown, error) {
	structure, err := pricing.Parse(rs)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	breakdown := structure.Breakdown()
	return &breakdown, nil
}

func (s *RateService) ExportRateSheet(ctx context.Context, subcontractorID uuid.UUID) (*File, error) {
	sub, err := s.subcontractors.GetSubcontractor(ctx, subcontractorID)
	if err != nil {
		return nil, translate(err, "subcontractor")
	}
	rates, err := s.rates.ListRatesBySubcontractor(ctx, subcontractorID)
	if err != nil {
		return nil, err
	}

	asOf := s.now()
	content, err := s.sheets.Generate(model.RateSheet{
		Subcontractor: *sub,
		Rates:         rates,
		AsOf:          asOf,
	})
	if err != nil {
		return nil, err
	}

	name := sanitizeFileName(sub.Name)
	if name == "" {
		name = sub.ID.String()
	}
	return &File{
		FileName: fmt.Sprintf("rates-%s-%s.xlsx", name, asOf.Format("20060102")),
		Content:  content,
	}, nil
}

// validateRateInput checks the rate structure first so that a bad document is
// rejected before anything else is looked at.
func validateRateInput(input RateInput) error {
	if err := pricing.Validate(input.RateStructure); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if err := validateProfile(model.ServiceProfile{
		BinSize:      input.BinSize,
		ServiceType:  input.ServiceType,
		MaterialType: input.MaterialType,
	}); err != nil {
		return err
	}
	if input.EffectiveDate.IsZero() {
		return fmt.Errorf("%w: effectiveDate is required", ErrInvalidInput)
	}
	if input.ExpiryDate != nil && dateOnly(*input.ExpiryDate).Before(dateOnly(input.EffectiveDate)) {
		return fmt.Errorf("%w: expiryDate must not be before effectiveDate", ErrInvalidInput)
	}
	return nil
}

func validateProfile(profile model.ServiceProfile) error {
	if profile.BinSize <= 0 {
		return fmt.Errorf("%w: binSize must be positive", ErrInvalidInput)
	}
	if !profile.ServiceType.Valid() {
		return fmt.Errorf("%w: unknown serviceType %q", ErrInvalidInput, profile.ServiceType)
	}
	if !profile.MaterialType.Valid() {
		return fmt.Errorf("%w: unknown materialType %q", ErrInvalidInput, profile.MaterialType)
	}
	return nil
}
